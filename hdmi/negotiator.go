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

package hdmi

import (
	"github.com/coreelec/amlwinsys/sysfs"
	"github.com/linuxdeepin/go-lib/log"
	"golang.org/x/xerrors"
)

const DefaultAttrPath = "/sys/class/amhdmitx/amhdmitx0/attr"

var logger = log.NewLogger("amlwinsys/hdmi")

type Negotiator struct {
	fs   *sysfs.FS
	path string
}

func NewNegotiator(fs *sysfs.FS, path string) *Negotiator {
	if path == "" {
		path = DefaultAttrPath
	}
	return &Negotiator{fs: fs, path: path}
}

// Apply reads the transmitter attribute, negotiates it and writes the result
// back. The driver is only written when a policy flag is set, every write
// may reset the display.
func (n *Negotiator) Apply(force422, limit8bit bool) (attr string, written bool, err error) {
	if !force422 && !limit8bit {
		return "", false, nil
	}

	current, err := n.fs.GetString(n.path)
	if err != nil {
		return "", false, xerrors.Errorf("failed to get hdmi attr: %w", err)
	}

	if force422 {
		logger.Debug("setting 422 output")
	}
	if limit8bit {
		logger.Debug("limiting display to 8bit colour depth")
	}
	attr = Negotiate(current, force422, limit8bit)
	logger.Debugf("hdmi attr %q -> %q", current, attr)

	err = n.fs.SetString(n.path, attr)
	if err != nil {
		return attr, false, xerrors.Errorf("failed to set hdmi attr: %w", err)
	}
	return attr, true, nil
}

func SetLogLevel(level log.Priority) {
	logger.SetLogLevel(level)
}
