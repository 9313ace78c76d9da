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

package sysfs

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAttr(t *testing.T, root, path, content string) {
	full := filepath.Join(root, path)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
	require.NoError(t, ioutil.WriteFile(full, []byte(content), 0644))
}

func TestGetSetString(t *testing.T) {
	root := t.TempDir()
	fs := New(root)
	writeAttr(t, root, "/sys/class/display/mode", "1080p60hz\n")

	v, err := fs.GetString("/sys/class/display/mode")
	require.NoError(t, err)
	assert.Equal(t, "1080p60hz", v)

	require.NoError(t, fs.SetString("/sys/class/display/mode", "720p50hz"))
	v, err = fs.GetString("/sys/class/display/mode")
	require.NoError(t, err)
	assert.Equal(t, "720p50hz", v)
}

func TestSetMissingAttribute(t *testing.T) {
	fs := New(t.TempDir())
	err := fs.SetString("/sys/module/di/parameters/nr2_en", "0")
	assert.Error(t, err)
	assert.False(t, fs.Exists("/sys/module/di/parameters/nr2_en"))
	_, err = os.Stat(fs.Resolve("/sys/module/di/parameters/nr2_en"))
	assert.True(t, os.IsNotExist(err))
}

func TestGetSetInt(t *testing.T) {
	root := t.TempDir()
	fs := New(root)
	writeAttr(t, root, "/sys/class/graphics/fb0/blank", "0\n")

	require.NoError(t, fs.SetInt("/sys/class/graphics/fb0/blank", 1))
	v, err := fs.GetInt("/sys/class/graphics/fb0/blank")
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	writeAttr(t, root, "/sys/class/graphics/fb0/blank", "on\n")
	_, err = fs.GetInt("/sys/class/graphics/fb0/blank")
	assert.Error(t, err)
}

func TestDefaultRoot(t *testing.T) {
	assert.Equal(t, "/sys/class/display/mode", New("").Resolve("/sys/class/display/mode"))
}

func TestResolve(t *testing.T) {
	fs := New("/tmp/root")
	assert.Equal(t, "/tmp/root/proc/cpuinfo", fs.Resolve("/proc/cpuinfo"))
	assert.Equal(t, "/sys/class/display/mode", New("/").Resolve("/sys/class/display/mode"))
}
