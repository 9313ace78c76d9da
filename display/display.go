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

// Package display implements the window system of the Amlogic set-top
// platform: display mode probing, the resolution registry, the native
// surface and the notification of resources that depend on the display.
package display

import (
	"github.com/linuxdeepin/go-lib/log"
)

var logger = log.NewLogger("amlwinsys/display")

func SetLogLevel(level log.Priority) {
	logger.SetLogLevel(level)
}
