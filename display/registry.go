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
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/xerrors"
)

const (
	ResInvalid = -1
	// ResDesktop is the slot holding the mode the hardware currently outputs.
	ResDesktop = 0
)

// Registry keeps the known resolutions. Slots are only ever appended or
// overwritten, an index stays valid for the life of the registry.
type Registry struct {
	mu          sync.Mutex
	resolutions []ResolutionInfo
}

func NewRegistry() *Registry {
	return &Registry{
		resolutions: make([]ResolutionInfo, ResDesktop+1),
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.resolutions)
}

func (r *Registry) Get(index int) (ResolutionInfo, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if index < 0 || index >= len(r.resolutions) {
		return ResolutionInfo{}, false
	}
	return r.resolutions[index], true
}

func (r *Registry) Desktop() ResolutionInfo {
	res, _ := r.Get(ResDesktop)
	return res
}

// List returns a copy of all slots, desktop first.
func (r *Registry) List() []ResolutionInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]ResolutionInfo, len(r.resolutions))
	copy(list, r.resolutions)
	return list
}

// UpdateFromProbe stores the probed modes after the desktop slot, in probe
// order, and copies the entry matching the live mode into the desktop slot.
// The desktop slot is left alone when nothing matches. It returns the index
// of the matching entry or ResInvalid.
func (r *Registry) UpdateFromProbe(probed []ResolutionInfo, live ResolutionInfo, liveOK bool) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	desktop := ResInvalid
	index := ResDesktop + 1
	for _, res := range probed {
		if len(r.resolutions) <= index {
			r.resolutions = append(r.resolutions, ResolutionInfo{})
		}
		res.ResetOverscan()
		r.resolutions[index] = res
		logger.Infof("Found resolution %v", res)

		if liveOK && live.SameMode(res) {
			if desktop != ResInvalid {
				logger.Debugf("resolution at %d also matches desktop, replacing %d", index, desktop)
			}
			desktop = index
		}
		index++
	}

	if desktop == ResInvalid {
		logger.Warningf("no probed resolution matches the desktop mode %v", live)
		return ResInvalid
	}

	logger.Infof("Found (%v) at %d, setting to RES_DESKTOP at %d", live, desktop, ResDesktop)
	r.resolutions[ResDesktop] = r.resolutions[desktop]
	return desktop
}

// Load replaces the registry content with the slots saved at filename.
func (r *Registry) Load(filename string) error {
	content, err := ioutil.ReadFile(filename)
	if err != nil {
		return err
	}
	var resolutions []ResolutionInfo
	err = json.Unmarshal(content, &resolutions)
	if err != nil {
		return xerrors.Errorf("failed to parse %s: %w", filename, err)
	}
	if len(resolutions) == 0 {
		resolutions = make([]ResolutionInfo, ResDesktop+1)
	}

	r.mu.Lock()
	r.resolutions = resolutions
	r.mu.Unlock()
	return nil
}

func (r *Registry) Save(filename string) error {
	err := os.MkdirAll(filepath.Dir(filename), 0755)
	if err != nil {
		return err
	}
	data, err := json.Marshal(r.List())
	if err != nil {
		return err
	}
	return ioutil.WriteFile(filename, data, 0644)
}
