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

// Package amlogic drives the display of Amlogic SoCs through the sysfs
// interface of the vendor kernel.
package amlogic

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/coreelec/amlwinsys/display"
	"github.com/coreelec/amlwinsys/sysfs"
	"github.com/linuxdeepin/go-lib/log"
	"golang.org/x/xerrors"
)

var logger = log.NewLogger("amlwinsys/amlogic")

const (
	dispCapPath        = "/sys/class/amhdmitx/amhdmitx0/disp_cap"
	fracRatePolicyPath = "/sys/class/amhdmitx/amhdmitx0/frac_rate_policy"
	hdmiConfigPath     = "/sys/class/amhdmitx/amhdmitx0/config"
	displayModePath    = "/sys/class/display/mode"
	freeScalePathFmt   = "/sys/class/graphics/%s/free_scale"
	freeScaleAxisFmt   = "/sys/class/graphics/%s/free_scale_axis"
	windowAxisFmt      = "/sys/class/graphics/%s/window_axis"
	cpuInfoPath        = "/proc/cpuinfo"
)

var errNoModes = xerrors.New("display reports no modes")

type Options struct {
	FS *sysfs.FS
	// DevRoot holds the framebuffer device nodes, /dev by default.
	DevRoot string
	// DispCapOverride, when the file exists, replaces the modes reported by
	// the sink.
	DispCapOverride string
	// Fractional tells whether 1000/1001 rates may be used.
	Fractional func() bool
}

// attrFS is the part of sysfs.FS the driver writes through.
type attrFS interface {
	Exists(path string) bool
	GetString(path string) (string, error)
	SetString(path, value string) error
	GetInt(path string) (int, error)
	SetInt(path string, value int) error
}

type Driver struct {
	fs              attrFS
	devRoot         string
	dispCapOverride string
	fractional      func() bool
	lastStereo      string
	setFramebuffer  func(device string, width, height int) error
}

func New(opts Options) *Driver {
	if opts.FS == nil {
		opts.FS = sysfs.New("/")
	}
	if opts.DevRoot == "" {
		opts.DevRoot = "/dev"
	}
	if opts.Fractional == nil {
		opts.Fractional = func() bool { return true }
	}
	return &Driver{
		fs:              opts.FS,
		devRoot:         opts.DevRoot,
		dispCapOverride: opts.DispCapOverride,
		fractional:      opts.Fractional,
		lastStereo:      stereoConfig(display.StereoModeOff),
		setFramebuffer:  setFramebufferResolution,
	}
}

func (d *Driver) hasFracRatePolicy() bool {
	return d.fs.Exists(fracRatePolicyPath)
}

func (d *Driver) ProbeResolutions() ([]display.ResolutionInfo, error) {
	var content string
	var err error
	if d.dispCapOverride != "" && d.fs.Exists(d.dispCapOverride) {
		logger.Debug("using display caps from", d.dispCapOverride)
		content, err = d.fs.GetString(d.dispCapOverride)
	} else {
		content, err = d.fs.GetString(dispCapPath)
	}
	if err != nil {
		return nil, err
	}

	fractional := d.hasFracRatePolicy() && d.fractional()
	resolutions := parseDisplayCaps(content, fractional)
	if len(resolutions) == 0 {
		return nil, errNoModes
	}
	return resolutions, nil
}

func (d *Driver) NativeResolution() (display.ResolutionInfo, error) {
	mode, err := d.fs.GetString(displayModePath)
	if err != nil {
		return display.ResolutionInfo{}, err
	}
	res, ok := modeToResolution(mode)
	if !ok {
		return display.ResolutionInfo{}, xerrors.Errorf("unknown display mode %q", mode)
	}
	if d.hasFracRatePolicy() {
		policy, err := d.fs.GetInt(fracRatePolicyPath)
		if err != nil {
			logger.Warning(err)
		} else if policy == 1 && isFractionalCandidate(res.RefreshRate) {
			res = fractionalVariant(res)
		}
	}
	return res, nil
}

// SetNativeResolution switches the output mode. With a fractional rate
// policy the mode is reset through "null" when only the rate changes.
func (d *Driver) SetNativeResolution(res display.ResolutionInfo, fbName string, stereo display.StereoMode) error {
	if res.Mode == "" {
		return xerrors.Errorf("resolution %v has no mode name", res)
	}

	if d.hasFracRatePolicy() {
		current, err := d.fs.GetString(displayModePath)
		if err != nil {
			logger.Warning(err)
		}
		if current == res.Mode {
			err = d.fs.SetString(displayModePath, "null")
			if err != nil {
				logger.Warning(err)
			}
		}
		policy := 0
		if float64(res.RefreshRate) != math.Floor(float64(res.RefreshRate)) {
			policy = 1
		}
		err = d.fs.SetInt(fracRatePolicyPath, policy)
		if err != nil {
			logger.Warning(err)
		}
	}

	err := d.fs.SetString(displayModePath, res.Mode)
	if err != nil {
		return xerrors.Errorf("failed to set display mode: %w", err)
	}

	err = d.SetFramebufferResolution(res.Width, res.Height, fbName)
	if err != nil {
		logger.Warning(err)
	}
	d.handleScale(res, fbName)
	d.handleStereoMode(stereo)
	return nil
}

// handleScale lets the output scaler stretch the GUI framebuffer to the
// screen.
func (d *Driver) handleScale(res display.ResolutionInfo, fbName string) {
	var err error
	if res.ScreenWidth > res.Width || res.ScreenHeight > res.Height {
		err = d.fs.SetString(fmt.Sprintf(freeScaleAxisFmt, fbName), axis(res.Width, res.Height))
		if err == nil {
			err = d.fs.SetString(fmt.Sprintf(windowAxisFmt, fbName), axis(res.ScreenWidth, res.ScreenHeight))
		}
		if err == nil {
			err = d.fs.SetString(fmt.Sprintf(freeScalePathFmt, fbName), "0x10001")
		}
	} else {
		err = d.fs.SetString(fmt.Sprintf(freeScalePathFmt, fbName), "0")
	}
	if err != nil {
		logger.Warning("set free scale failed:", err)
	}
}

func (d *Driver) handleStereoMode(stereo display.StereoMode) {
	config := stereoConfig(stereo)
	if config == d.lastStereo {
		return
	}
	d.lastStereo = config
	err := d.fs.SetString(hdmiConfigPath, config)
	if err != nil {
		logger.Warning(err)
	}
}

func (d *Driver) SetFramebufferResolution(width, height int, fbName string) error {
	return d.setFramebuffer(filepath.Join(d.devRoot, fbName), width, height)
}

func (d *Driver) CPUFamily() display.CPUFamily {
	content, err := d.fs.GetString(cpuInfoPath)
	if err != nil {
		logger.Warning(err)
		return display.CPUFamilyUnknown
	}
	return parseCPUFamily(content)
}

func SetLogLevel(level log.Priority) {
	logger.SetLogLevel(level)
}
