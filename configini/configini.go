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

// Package configini reads and edits the boot configuration kept on the
// read-only /flash partition.
package configini

import (
	"bufio"
	"bytes"
	"io/ioutil"
	"os"
	"os/exec"
	"strings"

	"github.com/linuxdeepin/go-lib/log"
	"github.com/linuxdeepin/go-lib/utils"
	"golang.org/x/xerrors"
)

var logger = log.NewLogger("amlwinsys/configini")

const (
	DefaultPath  = "/flash/config.ini"
	DefaultMount = "/flash"
)

type File struct {
	path string
	// remount switches the backing mount between "rw" and "ro".
	remount func(mode string) error
}

func New(path string) *File {
	return &File{
		path:    path,
		remount: mountRemounter(DefaultMount),
	}
}

// NewWithRemount uses remount instead of mount(8) around writes.
func NewWithRemount(path string, remount func(mode string) error) *File {
	return &File{path: path, remount: remount}
}

func mountRemounter(mountPoint string) func(string) error {
	return func(mode string) error {
		out, err := exec.Command("mount", "-o", "remount,"+mode, mountPoint).CombinedOutput()
		if err != nil {
			return xerrors.Errorf("remount %s %s: %s: %w", mountPoint, mode, bytes.TrimSpace(out), err)
		}
		return nil
	}
}

func (f *File) Path() string {
	return f.path
}

func (f *File) readLines() ([]string, error) {
	if !utils.IsFileExist(f.path) {
		return nil, nil
	}
	fh, err := os.Open(f.path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	var lines []string
	scanner := bufio.NewScanner(fh)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	return lines, scanner.Err()
}

func stripQuotes(s string) string {
	return strings.NewReplacer(`"`, "", `'`, "").Replace(s)
}

// Get returns the value of the last active key=value line, def when there is
// none.
func (f *File) Get(key, def string) string {
	lines, err := f.readLines()
	if err != nil {
		logger.Warning(err)
		return def
	}

	prefix := key + "="
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.HasPrefix(lines[i], prefix) {
			return stripQuotes(lines[i][len(prefix):])
		}
	}
	return def
}

// Set replaces the last active line of key. Without one, the last commented
// line mentioning key is enabled, else the line is appended. Nothing is
// written when the file is missing or empty.
func (f *File) Set(key, value string) error {
	lines, err := f.readLines()
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		logger.Debug("skip set, no content in", f.path)
		return nil
	}

	prefix := key + "="
	newLine := prefix + "'" + stripQuotes(value) + "'"

	found := false
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.HasPrefix(lines[i], prefix) {
			lines[i] = newLine
			found = true
			break
		}
	}
	if !found {
		for i := len(lines) - 1; i >= 0; i-- {
			if strings.HasPrefix(lines[i], "#") && strings.Contains(lines[i], prefix) {
				lines[i] = newLine
				found = true
				break
			}
		}
	}
	if !found {
		lines = append(lines, newLine)
	}

	return f.write(lines)
}

func (f *File) write(lines []string) error {
	err := f.remount("rw")
	if err != nil {
		logger.Warning(err)
	}
	defer func() {
		err := f.remount("ro")
		if err != nil {
			logger.Warning(err)
		}
	}()

	var buf bytes.Buffer
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	err = ioutil.WriteFile(f.path, buf.Bytes(), 0644)
	if err != nil {
		return xerrors.Errorf("failed to write %s: %w", f.path, err)
	}
	return nil
}

func SetLogLevel(level log.Priority) {
	logger.SetLogLevel(level)
}
