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
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/coreelec/amlwinsys/config"
	"github.com/coreelec/amlwinsys/configini"
	"github.com/coreelec/amlwinsys/dbusnotify"
	"github.com/coreelec/amlwinsys/display"
	"github.com/coreelec/amlwinsys/display/amlogic"
	"github.com/coreelec/amlwinsys/hdmi"
	"github.com/coreelec/amlwinsys/providers"
	"github.com/coreelec/amlwinsys/settings"
	"github.com/coreelec/amlwinsys/sysfs"
	"github.com/linuxdeepin/go-lib/log"
	"github.com/linuxdeepin/go-lib/strv"
)

var logger = log.NewLogger("amlwinsys")

var (
	debug      = flag.Bool("d", false, "debug")
	configPath = flag.String("config", "", "config file (default "+config.DefaultConfigPath()+")")
)

func doSetLogLevel(level log.Priority) {
	logger.SetLogLevel(level)
	config.SetLogLevel(level)
	configini.SetLogLevel(level)
	dbusnotify.SetLogLevel(level)
	display.SetLogLevel(level)
	amlogic.SetLogLevel(level)
	hdmi.SetLogLevel(level)
	providers.SetLogLevel(level)
	settings.SetLogLevel(level)
	sysfs.SetLogLevel(level)
}

// hdmiPolicyChanged reports whether a settings change affects the HDMI
// attribute negotiation.
func hdmiPolicyChanged(keys []string) bool {
	changed := strv.Strv(keys)
	return changed.Contains(settings.KeyForce422) || changed.Contains(settings.KeyLimit8bit)
}

// loadRegistry restores the resolutions saved by the previous run so that
// the desktop slot survives a failed or non-matching probe.
func loadRegistry(filename string) *display.Registry {
	registry := display.NewRegistry()
	if filename == "" {
		return registry
	}
	err := registry.Load(filename)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("no saved resolutions at", filename)
		} else {
			logger.Warning("failed to load saved resolutions:", err)
		}
		return display.NewRegistry()
	}
	logger.Debugf("loaded %d resolutions from %s", registry.Len(), filename)
	return registry
}

// createDesktopWindow creates the window at the desktop resolution. Nothing
// is touched when no desktop mode is known.
func createDesktopWindow(ws *display.WindowSystem) bool {
	desktop := ws.Registry().Desktop()
	if desktop.Mode == "" {
		logger.Warning("no desktop resolution known, not creating a window")
		return false
	}
	logger.Info("desktop resolution:", desktop)
	return ws.CreateNewWindow("amlwinsys", true, desktop)
}

func main() {
	flag.Parse()
	if *debug {
		doSetLogLevel(log.LevelDebug)
	}

	var cfg *config.Config
	var err error
	if *configPath == "" {
		cfg, err = config.Load()
	} else {
		cfg, err = config.LoadFromPath(*configPath)
	}
	if err != nil {
		logger.Fatal("failed to load config:", err)
	}
	os.Exit(run(cfg))
}

func run(cfg *config.Config) int {
	quit := make(chan struct{})
	defer close(quit)

	store := settings.New(cfg.SettingsFile)
	err := store.Load()
	if err != nil {
		logger.Warning("failed to load settings:", err)
	}
	logger.Debug("settings file:", store.Filename())
	err = store.Watch(quit)
	if err != nil {
		logger.Warning("failed to watch settings:", err)
	}

	fs := sysfs.New(cfg.SysfsRoot)
	driver := amlogic.New(amlogic.Options{
		FS:              fs,
		DevRoot:         cfg.DevRoot,
		DispCapOverride: cfg.DispCapOverride,
		Fractional: func() bool {
			return store.GetBool(settings.KeyFractionalRates)
		},
	})
	splash := display.NewSplashKiller(fs.Resolve("/proc"), cfg.SplashProcess)

	ws := display.NewWindowSystem(display.Options{
		Driver:       driver,
		Settings:     store,
		FS:           fs,
		Registry:     loadRegistry(cfg.RegistryFile),
		RegistryFile: cfg.RegistryFile,
		HdmiAttrPath: hdmi.DefaultAttrPath,
		KillSplash:   splash.Kill,
	})

	store.OnChanged(func(keys []string) {
		for _, key := range keys {
			logger.Infof("setting %s changed to %q", key, store.GetString(key))
		}
		if !hdmiPolicyChanged(keys) {
			return
		}
		logger.Info("hdmi policy changed, renegotiating")
		ws.Do(ws.ApplyHdmiPolicy)
	})

	if cfg.DBusSignals {
		resource, err := dbusnotify.Connect()
		if err != nil {
			logger.Warning(err)
		} else {
			ws.Register(resource)
			defer ws.Unregister(resource)
		}
	}

	err = ws.InitWindowSystem()
	if err != nil {
		logger.Error("failed to init window system:", err)
		return 1
	}

	if !createDesktopWindow(ws) {
		logger.Error("failed to create window")
		ws.DestroyWindowSystem()
		return 1
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received signal:", sig)
		ws.QuitLoop()
	}()

	ws.StartLoop(cfg.TickInterval)

	ws.DestroyWindow()
	ws.DestroyWindowSystem()
	return 0
}
