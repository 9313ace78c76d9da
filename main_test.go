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

package main

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/coreelec/amlwinsys/display"
	"github.com/coreelec/amlwinsys/settings"
	"github.com/coreelec/amlwinsys/sysfs"
	"github.com/linuxdeepin/go-lib/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_doSetLogLevel(t *testing.T) {
	doSetLogLevel(log.LevelDebug)
	assert.Equal(t, log.LevelDebug, logger.GetLogLevel())
	doSetLogLevel(log.LevelInfo)
}

func Test_hdmiPolicyChanged(t *testing.T) {
	assert.True(t, hdmiPolicyChanged([]string{settings.KeyForce422}))
	assert.True(t, hdmiPolicyChanged([]string{settings.KeyDelayRefreshChange, settings.KeyLimit8bit}))
	assert.False(t, hdmiPolicyChanged([]string{settings.KeyNoiseReduction}))
	assert.False(t, hdmiPolicyChanged(nil))
}

func Test_loadRegistry(t *testing.T) {
	dir := t.TempDir()
	res := display.ResolutionInfo{
		Width: 1280, Height: 720, ScreenWidth: 1280, ScreenHeight: 720,
		RefreshRate: 50, Mode: "720p50hz",
	}
	saved := display.NewRegistry()
	saved.UpdateFromProbe([]display.ResolutionInfo{res}, res, true)
	filename := filepath.Join(dir, "resolutions.json")
	require.NoError(t, saved.Save(filename))

	registry := loadRegistry(filename)
	assert.Equal(t, 2, registry.Len())
	assert.Equal(t, "720p50hz", registry.Desktop().Mode)

	registry = loadRegistry(filepath.Join(dir, "missing.json"))
	assert.Equal(t, 1, registry.Len())
	assert.Equal(t, "", registry.Desktop().Mode)

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, ioutil.WriteFile(broken, []byte("{"), 0644))
	registry = loadRegistry(broken)
	assert.Equal(t, 1, registry.Len())

	assert.Equal(t, 1, loadRegistry("").Len())
}

func Test_createDesktopWindowWithoutDesktop(t *testing.T) {
	ws := display.NewWindowSystem(display.Options{
		Settings:  settings.New(""),
		FS:        sysfs.New(t.TempDir()),
		LookupEnv: func(string) (string, bool) { return "", false },
	})
	assert.False(t, createDesktopWindow(ws))
	assert.Equal(t, display.StateUninitialized, ws.State())
	assert.False(t, ws.Surface().Created())
}
