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

package amlogic

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/coreelec/amlwinsys/display"
	"github.com/linuxdeepin/go-lib/strv"
)

const (
	guiMaxWidth  = 1920
	guiMaxHeight = 1080
)

var (
	regCustomMode = regexp.MustCompile(`^(\d+)x(\d+)p(\d+)hz`)
	regMode       = regexp.MustCompile(`^(\d+)([ip])(?:(\d+)hz)?`)
	regCvbsMode   = regexp.MustCompile(`^(480|576)cvbs`)
	regSmpteMode  = regexp.MustCompile(`^smpte(\d+)hz`)
	reg4k2kMode   = regexp.MustCompile(`^4k2k(\d+)hz`)
)

var heightToWidth = map[int]int{
	480:  720,
	576:  720,
	720:  1280,
	1080: 1920,
	2160: 3840,
}

// modeToResolution converts a driver mode name such as 1080p60hz or
// 2160p50hz420 into a resolution. A trailing '*' marks the sink's native
// mode and is ignored.
func modeToResolution(mode string) (display.ResolutionInfo, bool) {
	mode = strings.ToLower(strings.TrimSpace(mode))
	mode = strings.TrimSuffix(mode, "*")

	var width, height, rate int
	var interlaced bool
	atoi := func(s string) int {
		v, _ := strconv.Atoi(s)
		return v
	}

	switch {
	case regCustomMode.MatchString(mode):
		m := regCustomMode.FindStringSubmatch(mode)
		width, height, rate = atoi(m[1]), atoi(m[2]), atoi(m[3])

	case regCvbsMode.MatchString(mode):
		m := regCvbsMode.FindStringSubmatch(mode)
		height = atoi(m[1])
		width = heightToWidth[height]
		interlaced = true
		rate = 60
		if height == 576 {
			rate = 50
		}

	case regSmpteMode.MatchString(mode):
		m := regSmpteMode.FindStringSubmatch(mode)
		width, height, rate = 4096, 2160, atoi(m[1])

	case reg4k2kMode.MatchString(mode):
		m := reg4k2kMode.FindStringSubmatch(mode)
		width, height, rate = 3840, 2160, atoi(m[1])

	case regMode.MatchString(mode):
		m := regMode.FindStringSubmatch(mode)
		height = atoi(m[1])
		width = heightToWidth[height]
		interlaced = m[2] == "i"
		if m[3] != "" {
			rate = atoi(m[3])
		} else if height == 576 {
			rate = 50
		} else {
			rate = 60
		}

	default:
		return display.ResolutionInfo{}, false
	}

	if width <= 0 || height <= 0 || rate <= 0 {
		return display.ResolutionInfo{}, false
	}

	res := display.ResolutionInfo{
		Width:        width,
		Height:       height,
		ScreenWidth:  width,
		ScreenHeight: height,
		RefreshRate:  float32(rate),
		Mode:         mode,
	}
	// the GUI is never rendered above 1080p, the output scaler does the rest
	if width > guiMaxWidth {
		res.Width = guiMaxWidth
		res.Height = guiMaxHeight
	}
	if interlaced {
		res.Flags |= display.FlagInterlaced
	}
	return res, true
}

func isFractionalCandidate(rate float32) bool {
	return rate == 24 || rate == 30 || rate == 60
}

func fractionalVariant(res display.ResolutionInfo) display.ResolutionInfo {
	res.RefreshRate = res.RefreshRate / 1.001
	res.Flags |= display.FlagFractional
	return res
}

// parseDisplayCaps turns the content of disp_cap into resolutions. Modes are
// sorted lexically and duplicates dropped.
func parseDisplayCaps(content string, fractional bool) []display.ResolutionInfo {
	lines := strv.Strv(strings.Split(content, "\n")).FilterEmpty()
	sort.Strings(lines)

	var result []display.ResolutionInfo
	add := func(res display.ResolutionInfo) {
		for _, r := range result {
			if r.SameMode(res) {
				return
			}
		}
		result = append(result, res)
	}

	for _, line := range lines {
		res, ok := modeToResolution(line)
		if !ok {
			logger.Debugf("skip unknown mode %q", line)
			continue
		}
		add(res)
		if fractional && isFractionalCandidate(res.RefreshRate) {
			add(fractionalVariant(res))
		}
	}
	return result
}

func stereoConfig(mode display.StereoMode) string {
	switch mode {
	case display.StereoModeSplitVertical:
		return "3dlr"
	case display.StereoModeSplitHorizontal:
		return "3dtb"
	}
	return "3doff"
}

func axis(width, height int) string {
	return fmt.Sprintf("0 0 %d %d", width-1, height-1)
}
