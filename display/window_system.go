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
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/coreelec/amlwinsys/hdmi"
	"github.com/coreelec/amlwinsys/providers"
	"github.com/coreelec/amlwinsys/settings"
	"github.com/coreelec/amlwinsys/sysfs"
	"golang.org/x/xerrors"
)

const (
	noiseReductionPath = "/sys/module/di/parameters/nr2_en"
	sdrModePath        = "/sys/module/am_vecm/parameters/sdr_mode"
	hdrModePath        = "/sys/module/am_vecm/parameters/hdr_mode"
	blankPathFmt       = "/sys/class/graphics/%s/blank"

	// framebuffer size used by SoCs up to GXL, the GUI is scaled by the
	// video output
	legacyFramebufferWidth  = 1920
	legacyFramebufferHeight = 1080
)

type State int

const (
	StateUninitialized State = iota
	StateInitialized
	StateWindowCreated
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitialized:
		return "initialized"
	case StateWindowCreated:
		return "window created"
	case StateDestroyed:
		return "destroyed"
	}
	return "unknown"
}

type Options struct {
	Driver    Driver
	Settings  Settings
	FS        *sysfs.FS
	Providers *providers.Registry
	// Registry defaults to an empty registry.
	Registry *Registry
	// RegistryFile, when set, is where the registry is saved after probing.
	RegistryFile string
	HdmiAttrPath string
	// KillSplash stops the boot animation, errors are only logged.
	KillSplash func() error
	LookupEnv  func(string) (string, bool)
	Now        func() time.Time
}

// WindowSystem drives the display of the platform. Apart from Register and
// Unregister its methods must be called from a single goroutine, normally
// through the loop started by StartLoop.
type WindowSystem struct {
	driver       Driver
	settings     Settings
	fs           *sysfs.FS
	providers    *providers.Registry
	registry     *Registry
	registryFile string
	notifier     *ResourceNotifier
	surface      *SurfaceManager
	hdmi         *hdmi.Negotiator
	killSplash   func() error

	fbName string
	state  State
	stereo StereoMode

	quit     chan struct{}
	quitOnce sync.Once
	calls    chan func()
}

func NewWindowSystem(opts Options) *WindowSystem {
	if opts.LookupEnv == nil {
		opts.LookupEnv = os.LookupEnv
	}
	if opts.FS == nil {
		opts.FS = sysfs.New("/")
	}
	if opts.Providers == nil {
		opts.Providers = providers.NewRegistry()
	}
	if opts.Registry == nil {
		opts.Registry = NewRegistry()
	}

	ws := &WindowSystem{
		driver:       opts.Driver,
		settings:     opts.Settings,
		fs:           opts.FS,
		providers:    opts.Providers,
		registry:     opts.Registry,
		registryFile: opts.RegistryFile,
		notifier:     NewResourceNotifier(),
		hdmi:         hdmi.NewNegotiator(opts.FS, opts.HdmiAttrPath),
		killSplash:   opts.KillSplash,
		fbName:       FramebufferName(opts.LookupEnv),
		quit:         make(chan struct{}),
		calls:        make(chan func(), 8),
	}
	ws.surface = NewSurfaceManager(ws.driver, ws.notifier, ws.settings, ws.fbName, opts.Now)
	return ws
}

func (ws *WindowSystem) State() State {
	return ws.state
}

func (ws *WindowSystem) FramebufferName() string {
	return ws.fbName
}

func (ws *WindowSystem) Registry() *Registry {
	return ws.registry
}

func (ws *WindowSystem) Surface() *SurfaceManager {
	return ws.surface
}

// InitWindowSystem applies the hardware policy, registers the platform
// providers and fills the resolution registry. Hardware policy failures are
// logged only, the error comes from the base initialization.
func (ws *WindowSystem) InitWindowSystem() error {
	ws.applyVideoPolicy()
	ws.ApplyHdmiPolicy()
	ws.registerProviders()

	if ws.driver.CPUFamily() <= CPUFamilyGXL {
		err := ws.driver.SetFramebufferResolution(legacyFramebufferWidth, legacyFramebufferHeight, ws.fbName)
		if err != nil {
			logger.Warning("set framebuffer resolution failed:", err)
		}
	}

	if ws.killSplash != nil {
		logger.Debug("stopping splash animation")
		err := ws.killSplash()
		if err != nil {
			logger.Debug("stop splash animation:", err)
		}
	}

	err := ws.initBase()
	if err != nil {
		return err
	}
	ws.state = StateInitialized
	return nil
}

func (ws *WindowSystem) initBase() error {
	ws.UpdateResolutions()
	if ws.registryFile == "" {
		return nil
	}
	err := ws.registry.Save(ws.registryFile)
	if err != nil {
		return xerrors.Errorf("failed to save resolutions: %w", err)
	}
	return nil
}

func (ws *WindowSystem) applyVideoPolicy() {
	if ws.settings.GetBool(settings.KeyNoiseReduction) {
		logger.Debug("disabling noise reduction")
		err := ws.fs.SetString(noiseReductionPath, "0")
		if err != nil {
			logger.Warning(err)
		}
	}

	sdr2hdr := ws.settings.GetInt(settings.KeySDR2HDR)
	if sdr2hdr != settings.SDR2HDROff {
		logger.Debugf("setting sdr2hdr mode to %d", sdr2hdr)
		err := ws.fs.SetInt(sdrModePath, sdr2hdr)
		if err != nil {
			logger.Warning(err)
		}
	}

	hdr2sdr := ws.settings.GetInt(settings.KeyHDR2SDR)
	if hdr2sdr != settings.HDR2SDRAuto {
		logger.Debugf("setting hdr2sdr mode to %d", hdr2sdr)
		err := ws.fs.SetInt(hdrModePath, hdr2sdr)
		if err != nil {
			logger.Warning(err)
		}
	}
}

// ApplyHdmiPolicy negotiates the HDMI color format with the transmitter.
func (ws *WindowSystem) ApplyHdmiPolicy() {
	force422 := ws.settings.GetBool(settings.KeyForce422)
	limit8bit := ws.settings.GetBool(settings.KeyLimit8bit)
	_, _, err := ws.hdmi.Apply(force422, limit8bit)
	if err != nil {
		logger.Warning(err)
	}
}

func (ws *WindowSystem) registerProviders() {
	p := ws.providers
	p.Clear(providers.KindAudioSink)
	p.Register(providers.KindAudioSink, "ALSA")
	p.Register(providers.KindAudioSink, "PULSE")

	p.Register(providers.KindVideoCodec, "amlogic")
	p.Register(providers.KindRenderer, "gles")
	p.Register(providers.KindRetroProcessInfo, "amlogic")
	p.Register(providers.KindRetroRendererFactory, "opengles")
	p.Register(providers.KindRenderer, "aml")
	p.Register(providers.KindScreenshotSurface, "aml")
}

func (ws *WindowSystem) DestroyWindowSystem() bool {
	ws.state = StateDestroyed
	return true
}

// UpdateResolutions probes the driver and refreshes the registry.
func (ws *WindowSystem) UpdateResolutions() {
	resolutions, ok := probeModes(ws.driver)
	if !ok {
		logger.Warning("UpdateResolutions: ProbeResolutions failed.")
	}
	live, liveOK := currentMode(ws.driver)
	ws.registry.UpdateFromProbe(resolutions, live, liveOK)
}

func (ws *WindowSystem) SetStereoMode(mode StereoMode) {
	ws.stereo = mode
}

func (ws *WindowSystem) StereoMode() StereoMode {
	return ws.stereo
}

func (ws *WindowSystem) CreateNewWindow(name string, fullscreen bool, res ResolutionInfo) bool {
	logger.Debugf("create window %q %v fullscreen=%v stereo=%v", name, res, fullscreen, ws.stereo)
	if !ws.surface.CreateWindow(res, fullscreen, ws.stereo) {
		return false
	}
	ws.state = StateWindowCreated
	return true
}

func (ws *WindowSystem) DestroyWindow() bool {
	ws.surface.DestroyWindow()
	ws.state = StateInitialized
	return true
}

// Show blanks or unblanks the framebuffer.
func (ws *WindowSystem) Show(show bool) bool {
	value := 1
	if show {
		value = 0
	}
	err := ws.fs.SetInt(fmt.Sprintf(blankPathFmt, ws.fbName), value)
	if err != nil {
		logger.Warning(err)
	}
	return true
}

// Hide is not supported by the platform.
func (ws *WindowSystem) Hide() bool {
	return false
}

func (ws *WindowSystem) Register(resource DisplayResource) {
	ws.notifier.Register(resource)
}

func (ws *WindowSystem) Unregister(resource DisplayResource) {
	ws.notifier.Unregister(resource)
}

// PresentRender runs once per rendered frame and delivers the delayed
// display reset.
func (ws *WindowSystem) PresentRender() {
	ws.surface.CheckDelayedReset()
}
