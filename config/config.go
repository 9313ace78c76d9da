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

// Package config loads the daemon configuration.
package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	"github.com/linuxdeepin/go-lib/log"
	"github.com/linuxdeepin/go-lib/xdg/basedir"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"
)

var logger = log.NewLogger("amlwinsys/config")

const configDirName = "amlwinsys"

type Config struct {
	// SysfsRoot is prepended to every sysfs and procfs path.
	SysfsRoot string `yaml:"sysfs_root"`
	DevRoot   string `yaml:"dev_root"`

	SettingsFile string `yaml:"settings_file"`
	RegistryFile string `yaml:"registry_file"`
	// DispCapOverride replaces the sink's mode list when the file exists.
	DispCapOverride string `yaml:"disp_cap_override"`

	TickInterval  time.Duration `yaml:"tick_interval"`
	DBusSignals   bool          `yaml:"dbus_signals"`
	SplashProcess string        `yaml:"splash_process"`
}

type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func configDir() string {
	return filepath.Join(basedir.GetUserConfigDir(), configDirName)
}

func DefaultConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

func DefaultConfig() *Config {
	return &Config{
		SysfsRoot:       "/",
		DevRoot:         "/dev",
		SettingsFile:    filepath.Join(configDir(), "settings.yaml"),
		RegistryFile:    filepath.Join(basedir.GetUserCacheDir(), configDirName, "resolutions.json"),
		DispCapOverride: "/storage/.kodi/userdata/disp_cap",
		TickInterval:    16 * time.Millisecond,
		DBusSignals:     true,
		SplashProcess:   "splash-image",
	}
}

// LoadFromPath overlays the file on the defaults. A missing file is not an
// error.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()
	content, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("no config file at", path)
			return cfg, nil
		}
		return nil, xerrors.Errorf("failed to read config: %w", err)
	}

	err = yaml.Unmarshal(content, cfg)
	if err != nil {
		return nil, xerrors.Errorf("failed to parse %s: %w", path, err)
	}
	err = cfg.Validate()
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func Load() (*Config, error) {
	return LoadFromPath(DefaultConfigPath())
}

func (c *Config) Validate() error {
	if c.TickInterval <= 0 {
		return &ValidationError{Path: "tick_interval", Err: xerrors.New("tick_interval must be positive")}
	}
	if c.SysfsRoot == "" {
		return &ValidationError{Path: "sysfs_root", Err: xerrors.New("sysfs_root is required")}
	}
	if c.DevRoot == "" {
		return &ValidationError{Path: "dev_root", Err: xerrors.New("dev_root is required")}
	}
	return nil
}

func SetLogLevel(level log.Priority) {
	logger.SetLogLevel(level)
}
