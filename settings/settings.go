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

// Package settings is the persisted settings service read by the window
// system. Settings live in a YAML file mapping setting ids to values.
package settings

import (
	"io/ioutil"
	"os"
	"reflect"
	"sort"
	"strconv"
	"sync"

	"github.com/linuxdeepin/go-lib/log"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"
)

var logger = log.NewLogger("amlwinsys/settings")

const (
	KeyNoiseReduction     = "coreelec.amlogic.noisereduction"
	KeySDR2HDR            = "coreelec.amlogic.sdr2hdr"
	KeyHDR2SDR            = "coreelec.amlogic.hdr2sdr"
	KeyForce422           = "coreelec.amlogic.force422"
	KeyLimit8bit          = "coreelec.amlogic.limit8bit"
	KeyFractionalRates    = "coreelec.amlogic.fractionalrates"
	KeyDelayRefreshChange = "videoscreen.delayrefreshchange"
)

const (
	// SDR2HDROff is the default of KeySDR2HDR.
	SDR2HDROff = 0
	// HDR2SDRAuto is the default of KeyHDR2SDR.
	HDR2SDRAuto = 2
)

var defaults = map[string]interface{}{
	KeyNoiseReduction:     false,
	KeySDR2HDR:            SDR2HDROff,
	KeyHDR2SDR:            HDR2SDRAuto,
	KeyForce422:           false,
	KeyLimit8bit:          false,
	KeyFractionalRates:    true,
	KeyDelayRefreshChange: 0,
}

type Store struct {
	filename string

	mu       sync.RWMutex
	values   map[string]interface{}
	handlers []func(keys []string)
}

// New returns a store holding the defaults. Call Load to read filename.
func New(filename string) *Store {
	return &Store{
		filename: filename,
		values:   copyValues(defaults),
	}
}

func copyValues(m map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{}, len(m))
	for k, v := range m {
		result[k] = v
	}
	return result
}

func (s *Store) Filename() string {
	return s.filename
}

func (s *Store) read() (map[string]interface{}, error) {
	values := copyValues(defaults)
	if s.filename == "" {
		return values, nil
	}
	content, err := ioutil.ReadFile(s.filename)
	if err != nil {
		if os.IsNotExist(err) {
			return values, nil
		}
		return nil, err
	}
	var fileValues map[string]interface{}
	err = yaml.Unmarshal(content, &fileValues)
	if err != nil {
		return nil, xerrors.Errorf("failed to parse %s: %w", s.filename, err)
	}
	for k, v := range fileValues {
		values[k] = v
	}
	return values, nil
}

// Load reads the settings file. A missing file leaves the defaults.
func (s *Store) Load() error {
	_, err := s.reload()
	return err
}

// reload reads the file again and notifies the change handlers of the keys
// whose value changed.
func (s *Store) reload() ([]string, error) {
	values, err := s.read()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	var changed []string
	for k, v := range values {
		if old, ok := s.values[k]; !ok || !reflect.DeepEqual(old, v) {
			changed = append(changed, k)
		}
	}
	for k := range s.values {
		if _, ok := values[k]; !ok {
			changed = append(changed, k)
		}
	}
	s.values = values
	handlers := make([]func([]string), len(s.handlers))
	copy(handlers, s.handlers)
	s.mu.Unlock()

	if len(changed) == 0 {
		return nil, nil
	}
	sort.Strings(changed)
	logger.Debug("settings changed:", changed)
	for _, h := range handlers {
		h(changed)
	}
	return changed, nil
}

// OnChanged adds a handler called with the sorted ids of changed settings.
func (s *Store) OnChanged(handler func(keys []string)) {
	s.mu.Lock()
	s.handlers = append(s.handlers, handler)
	s.mu.Unlock()
}

func (s *Store) get(key string) (interface{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *Store) GetBool(key string) bool {
	v, ok := s.get(key)
	if !ok {
		logger.Warning("unknown setting", key)
		return false
	}
	switch value := v.(type) {
	case bool:
		return value
	case string:
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b
		}
	case int:
		return value != 0
	}
	logger.Warningf("setting %s is not a bool: %v", key, v)
	return false
}

func (s *Store) GetInt(key string) int {
	v, ok := s.get(key)
	if !ok {
		logger.Warning("unknown setting", key)
		return 0
	}
	switch value := v.(type) {
	case int:
		return value
	case int64:
		return int(value)
	case float64:
		return int(value)
	case string:
		i, err := strconv.Atoi(value)
		if err == nil {
			return i
		}
	}
	logger.Warningf("setting %s is not an int: %v", key, v)
	return 0
}

func (s *Store) GetString(key string) string {
	v, ok := s.get(key)
	if !ok {
		return ""
	}
	switch value := v.(type) {
	case string:
		return value
	case bool:
		return strconv.FormatBool(value)
	case int:
		return strconv.Itoa(value)
	}
	return ""
}

func SetLogLevel(level log.Priority) {
	logger.SetLogLevel(level)
}
