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
	"time"

	"github.com/coreelec/amlwinsys/settings"
)

// Settings is the read side of the settings service.
type Settings interface {
	GetBool(key string) bool
	GetInt(key string) int
}

// delayUnit is the unit of settings.KeyDelayRefreshChange.
const delayUnit = 100 * time.Millisecond

// NativeWindow is the platform surface handed to EGL.
type NativeWindow struct {
	Width  int
	Height int
}

// PendingResetTimer defers the display reset notification after a mode
// switch. It is polled, nothing fires on its own.
type PendingResetTimer struct {
	armed    bool
	deadline time.Time
}

func (t *PendingResetTimer) Arm(now time.Time, d time.Duration) {
	t.armed = true
	t.deadline = now.Add(d)
}

func (t *PendingResetTimer) Cancel() {
	t.armed = false
	t.deadline = time.Time{}
}

func (t *PendingResetTimer) Armed() bool {
	return t.armed
}

func (t *PendingResetTimer) Expired(now time.Time) bool {
	return t.armed && !now.Before(t.deadline)
}

// SurfaceManager owns the native window and switches the hardware mode when
// a window with a different resolution is requested.
type SurfaceManager struct {
	driver   Driver
	notifier *ResourceNotifier
	settings Settings
	fbName   string
	now      func() time.Time

	created    bool
	fullscreen bool
	stereo     StereoMode
	current    ResolutionInfo
	window     *NativeWindow
	resetTimer PendingResetTimer
}

func NewSurfaceManager(driver Driver, notifier *ResourceNotifier, s Settings,
	fbName string, now func() time.Time) *SurfaceManager {
	if now == nil {
		now = time.Now
	}
	return &SurfaceManager{
		driver:   driver,
		notifier: notifier,
		settings: s,
		fbName:   fbName,
		now:      now,
	}
}

func (m *SurfaceManager) unchanged(res ResolutionInfo, fullscreen bool, stereo StereoMode) bool {
	if !m.created ||
		!m.current.SameMode(res) ||
		m.fullscreen != fullscreen ||
		m.stereo != stereo {
		return false
	}
	live, ok := currentMode(m.driver)
	return ok && live.SameMode(res)
}

// CreateWindow creates the native window for res. The hardware is left
// untouched when the window already exists with the same configuration and
// the hardware still outputs that mode.
func (m *SurfaceManager) CreateWindow(res ResolutionInfo, fullscreen bool, stereo StereoMode) bool {
	if m.unchanged(res, fullscreen, stereo) {
		logger.Debug("CreateWindow: no need to create a new window")
		return true
	}

	if m.resetTimer.Armed() {
		logger.Debug("CreateWindow: cancel pending display reset")
		m.resetTimer.Cancel()
	}
	delay := m.settings.GetInt(settings.KeyDelayRefreshChange)
	if delay > 0 {
		m.resetTimer.Arm(m.now(), time.Duration(delay)*delayUnit)
	}

	m.notifier.NotifyLost()

	m.stereo = stereo
	m.fullscreen = fullscreen

	err := m.driver.SetNativeResolution(res, m.fbName, stereo)
	if err != nil {
		logger.Warningf("set native resolution %v failed: %v", res, err)
	}

	m.window = &NativeWindow{
		Width:  res.Width,
		Height: res.Height,
	}
	m.current = res
	m.created = true

	if !m.resetTimer.Armed() {
		m.notifier.NotifyReset()
	}
	return true
}

func (m *SurfaceManager) DestroyWindow() bool {
	m.window = nil
	m.created = false
	return true
}

// CheckDelayedReset sends the deferred reset notification once its delay
// has passed. It reports whether the notification was sent.
func (m *SurfaceManager) CheckDelayedReset() bool {
	if !m.resetTimer.Expired(m.now()) {
		return false
	}
	m.resetTimer.Cancel()
	logger.Debug("delayed display reset")
	m.notifier.NotifyReset()
	return true
}

func (m *SurfaceManager) Window() *NativeWindow {
	return m.window
}

func (m *SurfaceManager) Created() bool {
	return m.created
}

func (m *SurfaceManager) Current() ResolutionInfo {
	return m.current
}

func (m *SurfaceManager) Fullscreen() bool {
	return m.fullscreen
}

func (m *SurfaceManager) Stereo() StereoMode {
	return m.stereo
}

func (m *SurfaceManager) ResetPending() bool {
	return m.resetTimer.Armed()
}
