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
	"sync"
	"time"

	"golang.org/x/xerrors"
)

var (
	res720p50 = ResolutionInfo{
		Width: 1280, Height: 720, ScreenWidth: 1280, ScreenHeight: 720,
		RefreshRate: 50, Mode: "720p50hz",
	}
	res1080p60 = ResolutionInfo{
		Width: 1920, Height: 1080, ScreenWidth: 1920, ScreenHeight: 1080,
		RefreshRate: 60, Mode: "1080p60hz",
	}
	res1080i50 = ResolutionInfo{
		Width: 1920, Height: 1080, ScreenWidth: 1920, ScreenHeight: 1080,
		RefreshRate: 50, Flags: FlagInterlaced, Mode: "1080i50hz",
	}
	res2160p24 = ResolutionInfo{
		Width: 1920, Height: 1080, ScreenWidth: 3840, ScreenHeight: 2160,
		RefreshRate: 24, Mode: "2160p24hz",
	}
)

type fakeDriver struct {
	mu        sync.Mutex
	modes     []ResolutionInfo
	probeErr  error
	native    ResolutionInfo
	nativeErr error
	family    CPUFamily

	setCalls []ResolutionInfo
	fbCalls  [][2]int
}

func newFakeDriver(native ResolutionInfo, modes ...ResolutionInfo) *fakeDriver {
	return &fakeDriver{
		modes:  modes,
		native: native,
		family: CPUFamilyG12B,
	}
}

func (d *fakeDriver) ProbeResolutions() ([]ResolutionInfo, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.probeErr != nil {
		return nil, d.probeErr
	}
	modes := make([]ResolutionInfo, len(d.modes))
	copy(modes, d.modes)
	return modes, nil
}

func (d *fakeDriver) NativeResolution() (ResolutionInfo, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.native, d.nativeErr
}

func (d *fakeDriver) SetNativeResolution(res ResolutionInfo, fbName string, stereo StereoMode) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.setCalls = append(d.setCalls, res)
	d.native = res
	d.nativeErr = nil
	return nil
}

func (d *fakeDriver) SetFramebufferResolution(width, height int, fbName string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fbCalls = append(d.fbCalls, [2]int{width, height})
	return nil
}

func (d *fakeDriver) CPUFamily() CPUFamily {
	return d.family
}

func (d *fakeDriver) modeSwitches() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.setCalls)
}

var errNoDevice = xerrors.New("no such device")

type fakeSettings struct {
	bools map[string]bool
	ints  map[string]int
}

func newFakeSettings() *fakeSettings {
	return &fakeSettings{
		bools: make(map[string]bool),
		ints:  make(map[string]int),
	}
}

func (s *fakeSettings) GetBool(key string) bool {
	return s.bools[key]
}

func (s *fakeSettings) GetInt(key string) int {
	return s.ints[key]
}

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// recordingResource logs the notifications it receives into a shared log.
type recordingResource struct {
	name string
	log  *[]string
	lost func()
}

func (r *recordingResource) OnLostDisplay() {
	*r.log = append(*r.log, r.name+":lost")
	if r.lost != nil {
		r.lost()
	}
}

func (r *recordingResource) OnResetDisplay() {
	*r.log = append(*r.log, r.name+":reset")
}
