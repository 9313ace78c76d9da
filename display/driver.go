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
	"github.com/davecgh/go-spew/spew"
)

// CPUFamily is the SoC family id reported by the kernel.
type CPUFamily int

const (
	CPUFamilyUnknown CPUFamily = 0
	CPUFamilyM8      CPUFamily = 0x19
	CPUFamilyGXBB    CPUFamily = 0x1f
	CPUFamilyGXTVBB  CPUFamily = 0x20
	CPUFamilyGXL     CPUFamily = 0x21
	CPUFamilyGXM     CPUFamily = 0x22
	CPUFamilyTXL     CPUFamily = 0x23
	CPUFamilyTXLX    CPUFamily = 0x24
	CPUFamilyAXG     CPUFamily = 0x25
	CPUFamilyGXLX    CPUFamily = 0x26
	CPUFamilyTXHD    CPUFamily = 0x27
	CPUFamilyG12A    CPUFamily = 0x28
	CPUFamilyG12B    CPUFamily = 0x29
	CPUFamilySM1     CPUFamily = 0x2b
)

// Driver is the kernel display driver as seen by the window system.
type Driver interface {
	// ProbeResolutions lists every mode the sink supports.
	ProbeResolutions() ([]ResolutionInfo, error)
	// NativeResolution returns the mode currently output by the hardware.
	NativeResolution() (ResolutionInfo, error)
	SetNativeResolution(res ResolutionInfo, fbName string, stereo StereoMode) error
	SetFramebufferResolution(width, height int, fbName string) error
	CPUFamily() CPUFamily
}

// probeModes returns the supported modes, ok is false when the driver
// reported none.
func probeModes(driver Driver) ([]ResolutionInfo, bool) {
	resolutions, err := driver.ProbeResolutions()
	if err != nil {
		logger.Warning("probe resolutions failed:", err)
		return nil, false
	}
	if len(resolutions) == 0 {
		return nil, false
	}
	logger.Debug("probed resolutions:", spew.Sdump(resolutions))
	return resolutions, true
}

func currentMode(driver Driver) (ResolutionInfo, bool) {
	res, err := driver.NativeResolution()
	if err != nil {
		logger.Warning("get native resolution failed:", err)
		return ResolutionInfo{}, false
	}
	return res, true
}
