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
	"testing"

	"github.com/coreelec/amlwinsys/display"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModeToResolution(t *testing.T) {
	tests := []struct {
		mode         string
		width        int
		height       int
		screenWidth  int
		screenHeight int
		rate         float32
		interlaced   bool
	}{
		{"720p50hz", 1280, 720, 1280, 720, 50, false},
		{"1080p60hz*", 1920, 1080, 1920, 1080, 60, false},
		{"1080i50hz", 1920, 1080, 1920, 1080, 50, true},
		{"576cvbs", 720, 576, 720, 576, 50, true},
		{"480cvbs", 720, 480, 720, 480, 60, true},
		{"576p", 720, 576, 720, 576, 50, false},
		{"2160p24hz", 1920, 1080, 3840, 2160, 24, false},
		{"2160p60hz420", 1920, 1080, 3840, 2160, 60, false},
		{"smpte24hz", 1920, 1080, 4096, 2160, 24, false},
		{"4k2k30hz", 1920, 1080, 3840, 2160, 30, false},
		{"1440x900p60hz", 1440, 900, 1440, 900, 60, false},
	}

	for _, test := range tests {
		res, ok := modeToResolution(test.mode)
		require.True(t, ok, test.mode)
		assert.Equal(t, test.width, res.Width, test.mode)
		assert.Equal(t, test.height, res.Height, test.mode)
		assert.Equal(t, test.screenWidth, res.ScreenWidth, test.mode)
		assert.Equal(t, test.screenHeight, res.ScreenHeight, test.mode)
		assert.Equal(t, test.rate, res.RefreshRate, test.mode)
		assert.Equal(t, test.interlaced, res.Interlaced(), test.mode)
	}

	for _, mode := range []string{"", "null", "panel", "768p60hz", "foo"} {
		_, ok := modeToResolution(mode)
		assert.False(t, ok, mode)
	}
}

func TestModeNameStripsNativeMarker(t *testing.T) {
	res, ok := modeToResolution("1080p60hz*")
	require.True(t, ok)
	assert.Equal(t, "1080p60hz", res.Mode)
}

func TestParseDisplayCaps(t *testing.T) {
	caps := "720p50hz\n1080p60hz*\n\n1080p24hz\n720p50hz\n"

	resolutions := parseDisplayCaps(caps, false)
	require.Len(t, resolutions, 3)
	assert.Equal(t, "1080p24hz", resolutions[0].Mode)
	assert.Equal(t, "1080p60hz", resolutions[1].Mode)
	assert.Equal(t, "720p50hz", resolutions[2].Mode)

	resolutions = parseDisplayCaps(caps, true)
	require.Len(t, resolutions, 5)
	assert.Equal(t, float32(24), resolutions[0].RefreshRate)
	assert.InDelta(t, 23.976, resolutions[1].RefreshRate, 0.001)
	assert.NotZero(t, resolutions[1].Flags&display.FlagFractional)
	assert.Equal(t, "1080p24hz", resolutions[1].Mode)
	assert.InDelta(t, 59.94, resolutions[3].RefreshRate, 0.001)
}

func TestStereoConfig(t *testing.T) {
	assert.Equal(t, "3dlr", stereoConfig(display.StereoModeSplitVertical))
	assert.Equal(t, "3dtb", stereoConfig(display.StereoModeSplitHorizontal))
	assert.Equal(t, "3doff", stereoConfig(display.StereoModeOff))
	assert.Equal(t, "3doff", stereoConfig(display.StereoModeMono))
}

func TestAxis(t *testing.T) {
	assert.Equal(t, "0 0 1919 1079", axis(1920, 1080))
}

func TestParseCPUFamily(t *testing.T) {
	cpuinfo := `processor	: 0
BogoMIPS	: 48.00
Hardware	: Amlogic
Serial		: 290a0c00013d5f8b3833393452c4a3f1
`
	assert.Equal(t, display.CPUFamilyG12B, parseCPUFamily(cpuinfo))
	assert.Equal(t, display.CPUFamilyUnknown, parseCPUFamily("processor	: 0\n"))
	assert.Equal(t, display.CPUFamilyUnknown, parseCPUFamily("Serial : zz\n"))
}
