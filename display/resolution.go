/*
 * Copyright (C) 2014 ~ 2018 Deepin Technology Co., Ltd.
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 */

package display

import (
	"fmt"
	"math"
	"strings"
)

// Presentation flags of a resolution. The low byte is the mode mask, only
// those bits take part in mode comparisons.
const (
	FlagInterlaced uint32 = 1 << iota
	FlagWidescreen
	FlagPAL60
	FlagMode3DSBS
	FlagMode3DTB
	FlagMode3DMVC

	FlagModeMask uint32 = 1<<8 - 1
)

// FlagFractional marks a 1000/1001 rate variant reported by the driver.
const FlagFractional uint32 = 1 << 8

const refreshEpsilon = 1e-3

type Overscan struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

type ResolutionInfo struct {
	Width        int
	Height       int
	ScreenWidth  int
	ScreenHeight int
	RefreshRate  float32
	Flags        uint32
	Stereo       StereoMode
	// driver mode name, e.g. 1080p60hz
	Mode     string `json:",omitempty"`
	Overscan Overscan
}

func (r ResolutionInfo) Interlaced() bool {
	return r.Flags&FlagInterlaced != 0
}

func (r ResolutionInfo) modeFlags() uint32 {
	return r.Flags & FlagModeMask
}

func sameRefreshRate(a, b float32) bool {
	return math.Abs(float64(a)-float64(b)) < refreshEpsilon
}

// SameMode reports whether r and o describe the same display timing.
func (r ResolutionInfo) SameMode(o ResolutionInfo) bool {
	return r.Width == o.Width &&
		r.Height == o.Height &&
		r.ScreenWidth == o.ScreenWidth &&
		r.ScreenHeight == o.ScreenHeight &&
		r.modeFlags() == o.modeFlags() &&
		sameRefreshRate(r.RefreshRate, o.RefreshRate)
}

// ResetOverscan drops any calibration and makes the overscan cover the full
// resolution.
func (r *ResolutionInfo) ResetOverscan() {
	r.Overscan = Overscan{
		Right:  r.Width,
		Bottom: r.Height,
	}
}

func (r ResolutionInfo) String() string {
	var scan string
	if r.Interlaced() {
		scan = "i"
	}
	return fmt.Sprintf("%d x %d with %d x %d%s @ %f Hz",
		r.Width, r.Height, r.ScreenWidth, r.ScreenHeight, scan, r.RefreshRate)
}

const defaultFramebuffer = "fb0"

// FramebufferName resolves the active framebuffer device from the
// FRAMEBUFFER environment variable, e.g. /dev/fb1 gives fb1.
func FramebufferName(lookupEnv func(string) (string, bool)) string {
	value, ok := lookupEnv("FRAMEBUFFER")
	if !ok || value == "" {
		return defaultFramebuffer
	}
	idx := strings.Index(value, "fb")
	if idx < 0 {
		logger.Warningf("FRAMEBUFFER=%q does not name a framebuffer, using %s", value, defaultFramebuffer)
		return defaultFramebuffer
	}
	return value[idx:]
}
