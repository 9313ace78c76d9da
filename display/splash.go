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
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
	"golang.org/x/xerrors"
)

const DefaultSplashProcess = "splash-image"

var errNoSplash = xerrors.New("no splash process running")

// SplashKiller asks the boot animation to terminate by sending it SIGUSR1.
type SplashKiller struct {
	procRoot string
	name     string
	signal   func(pid int, sig unix.Signal) error
}

func NewSplashKiller(procRoot, name string) *SplashKiller {
	if procRoot == "" {
		procRoot = "/proc"
	}
	if name == "" {
		name = DefaultSplashProcess
	}
	return &SplashKiller{
		procRoot: procRoot,
		name:     name,
		signal:   unix.Kill,
	}
}

func (k *SplashKiller) findPids() ([]int, error) {
	entries, err := ioutil.ReadDir(k.procRoot)
	if err != nil {
		return nil, err
	}
	var pids []int
	for _, entry := range entries {
		pid, err := strconv.Atoi(entry.Name())
		if err != nil {
			continue
		}
		comm, err := ioutil.ReadFile(filepath.Join(k.procRoot, entry.Name(), "comm"))
		if err != nil {
			continue
		}
		if strings.TrimSpace(string(comm)) == k.name {
			pids = append(pids, pid)
		}
	}
	return pids, nil
}

// Kill signals every process named like the splash animation.
func (k *SplashKiller) Kill() error {
	pids, err := k.findPids()
	if err != nil {
		return xerrors.Errorf("failed to list processes: %w", err)
	}
	if len(pids) == 0 {
		return errNoSplash
	}
	for _, pid := range pids {
		logger.Debugf("sending SIGUSR1 to '%s' (%d)", k.name, pid)
		err = k.signal(pid, unix.SIGUSR1)
		if err != nil {
			logger.Warningf("signal %s (%d) failed: %v", k.name, pid, err)
		}
	}
	return nil
}
