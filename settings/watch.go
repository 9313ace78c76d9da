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

package settings

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/xerrors"
)

const reloadDelay = 200 * time.Millisecond

// Watch reloads the store whenever its file changes, until quit is closed.
// The directory is watched so that editors replacing the file are seen.
func (s *Store) Watch(quit <-chan struct{}) error {
	if s.filename == "" {
		return xerrors.New("settings store has no file")
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return xerrors.Errorf("failed to create watcher: %w", err)
	}
	err = watcher.Add(filepath.Dir(s.filename))
	if err != nil {
		_ = watcher.Close()
		return xerrors.Errorf("failed to watch %s: %w", s.filename, err)
	}

	dh := newDelayHandler(reloadDelay, func(name string) {
		_, err := s.reload()
		if err != nil {
			logger.Warningf("reload %s failed: %v", name, err)
		}
	})

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-quit:
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != filepath.Clean(s.filename) {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
					continue
				}
				logger.Debug("settings file event:", ev)
				dh.AddTask(s.filename)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warning("watch settings:", err)
			}
		}
	}()
	return nil
}
