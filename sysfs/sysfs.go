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

// Package sysfs reads and writes kernel attribute files.
//
// All paths are absolute sysfs paths such as /sys/class/display/mode; they
// are resolved below the FS root so tests can run against a scratch tree.
package sysfs

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/linuxdeepin/go-lib/log"
	"github.com/linuxdeepin/go-lib/utils"
	"golang.org/x/xerrors"
)

var logger = log.NewLogger("amlwinsys/sysfs")

type FS struct {
	root string
}

// New returns a FS rooted at root. An empty root means "/".
func New(root string) *FS {
	if root == "" {
		root = "/"
	}
	return &FS{root: root}
}

// Resolve maps an absolute path into the tree.
func (fs *FS) Resolve(path string) string {
	return filepath.Join(fs.root, path)
}

func (fs *FS) Exists(path string) bool {
	return utils.IsFileExist(fs.Resolve(path))
}

func (fs *FS) GetString(path string) (string, error) {
	content, err := ioutil.ReadFile(fs.Resolve(path))
	if err != nil {
		return "", xerrors.Errorf("failed to read %s: %w", path, err)
	}
	return strings.TrimRight(string(content), "\n"), nil
}

// SetString writes value to an existing attribute. Attribute files are never
// created, a missing file means the driver does not expose it.
func (fs *FS) SetString(path, value string) error {
	logger.Debugf("write %q to %s", value, path)
	f, err := os.OpenFile(fs.Resolve(path), os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return xerrors.Errorf("failed to open %s: %w", path, err)
	}
	_, err = f.WriteString(value)
	if err != nil {
		_ = f.Close()
		return xerrors.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

func (fs *FS) GetInt(path string) (int, error) {
	str, err := fs.GetString(path)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(strings.TrimSpace(str))
	if err != nil {
		return 0, xerrors.Errorf("bad integer in %s: %w", path, err)
	}
	return v, nil
}

func (fs *FS) SetInt(path string, value int) error {
	return fs.SetString(path, strconv.Itoa(value))
}

func SetLogLevel(level log.Priority) {
	logger.SetLogLevel(level)
}
