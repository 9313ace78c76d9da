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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSameMode(t *testing.T) {
	a := res1080p60
	b := res1080p60
	b.RefreshRate = 60.0001
	b.Mode = "other"
	b.Flags |= FlagFractional
	assert.True(t, a.SameMode(b))

	b.RefreshRate = 59.94
	assert.False(t, a.SameMode(b))

	assert.False(t, res1080p60.SameMode(res1080i50))

	c := res1080p60
	c.Flags |= FlagMode3DSBS
	assert.False(t, res1080p60.SameMode(c))

	d := res1080p60
	d.ScreenWidth = 3840
	assert.False(t, res1080p60.SameMode(d))
}

func TestResetOverscan(t *testing.T) {
	r := res720p50
	r.Overscan = Overscan{Left: 10, Top: 12, Right: 1200, Bottom: 700}
	r.ResetOverscan()
	assert.Equal(t, Overscan{Right: 1280, Bottom: 720}, r.Overscan)
}

func TestResolutionString(t *testing.T) {
	assert.Equal(t, "1920 x 1080 with 1920 x 1080i @ 50.000000 Hz", res1080i50.String())
}

func TestFramebufferName(t *testing.T) {
	testdata := []struct {
		env   string
		set   bool
		value string
	}{
		{"", false, "fb0"},
		{"", true, "fb0"},
		{"/dev/fb1", true, "fb1"},
		{"fb2", true, "fb2"},
		{"/dev/graphics", true, "fb0"},
	}
	for _, v := range testdata {
		lookup := func(key string) (string, bool) {
			assert.Equal(t, "FRAMEBUFFER", key)
			return v.env, v.set
		}
		assert.Equal(t, v.value, FramebufferName(lookup), v.env)
	}
}

func TestStereoModeString(t *testing.T) {
	assert.Equal(t, "off", StereoModeOff.String())
	assert.Equal(t, "split_vertical", StereoModeSplitVertical.String())
	assert.Equal(t, "unknown", StereoMode(100).String())
}
