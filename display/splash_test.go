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
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func writeProc(t *testing.T, root, pid, comm string) {
	dir := filepath.Join(root, pid)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "comm"), []byte(comm+"\n"), 0644))
}

func TestSplashKiller(t *testing.T) {
	root := t.TempDir()
	writeProc(t, root, "12", "splash-image")
	writeProc(t, root, "34", "kodi.bin")
	writeProc(t, root, "self", "splash-image")
	writeProc(t, root, "56", "splash-image")

	k := NewSplashKiller(root, "")
	signaled := make(map[int]unix.Signal)
	k.signal = func(pid int, sig unix.Signal) error {
		signaled[pid] = sig
		return nil
	}

	require.NoError(t, k.Kill())
	assert.Equal(t, map[int]unix.Signal{12: unix.SIGUSR1, 56: unix.SIGUSR1}, signaled)
}

func TestSplashKillerNotRunning(t *testing.T) {
	root := t.TempDir()
	writeProc(t, root, "34", "kodi.bin")

	k := NewSplashKiller(root, DefaultSplashProcess)
	k.signal = func(pid int, sig unix.Signal) error {
		t.Error("unexpected signal")
		return nil
	}
	assert.Equal(t, errNoSplash, k.Kill())

	k = NewSplashKiller(filepath.Join(root, "missing"), "")
	assert.Error(t, k.Kill())
}
