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

type StereoMode int

const (
	StereoModeOff StereoMode = iota
	StereoModeSplitHorizontal
	StereoModeSplitVertical
	StereoModeAnaglyphRedCyan
	StereoModeAnaglyphGreenMagenta
	StereoModeAnaglyphYellowBlue
	StereoModeInterlaced
	StereoModeCheckerboard
	StereoModeHardwareBased
	StereoModeMono
)

var stereoModeNames = []string{
	"off",
	"split_horizontal",
	"split_vertical",
	"anaglyph_red_cyan",
	"anaglyph_green_magenta",
	"anaglyph_yellow_blue",
	"interlaced",
	"checkerboard",
	"hardwarebased",
	"mono",
}

func (m StereoMode) String() string {
	if m < 0 || int(m) >= len(stereoModeNames) {
		return "unknown"
	}
	return stereoModeNames[m]
}
