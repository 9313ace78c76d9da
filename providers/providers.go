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

// Package providers records which platform implementations are registered
// with the player: video decoders, renderers, audio sinks and screenshot
// capture.
package providers

import (
	"sync"

	"github.com/linuxdeepin/go-lib/log"
	"github.com/linuxdeepin/go-lib/strv"
)

var logger = log.NewLogger("amlwinsys/providers")

type Kind int

const (
	KindVideoCodec Kind = iota
	KindRenderer
	KindAudioSink
	KindRetroProcessInfo
	KindRetroRendererFactory
	KindScreenshotSurface
)

func (k Kind) String() string {
	switch k {
	case KindVideoCodec:
		return "video codec"
	case KindRenderer:
		return "renderer"
	case KindAudioSink:
		return "audio sink"
	case KindRetroProcessInfo:
		return "retro process info"
	case KindRetroRendererFactory:
		return "retro renderer factory"
	case KindScreenshotSurface:
		return "screenshot surface"
	}
	return "unknown"
}

// Registry is safe for concurrent use. Registering a name twice is a no-op.
type Registry struct {
	mu    sync.Mutex
	names map[Kind]strv.Strv
}

func NewRegistry() *Registry {
	return &Registry{
		names: make(map[Kind]strv.Strv),
	}
}

func (r *Registry) Register(kind Kind, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.names[kind].Contains(name) {
		return
	}
	logger.Debugf("register %s %s", kind, name)
	r.names[kind] = append(r.names[kind], name)
}

func (r *Registry) Clear(kind Kind) {
	r.mu.Lock()
	delete(r.names, kind)
	r.mu.Unlock()
}

// List returns the names registered for kind in registration order.
func (r *Registry) List(kind Kind) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, len(r.names[kind]))
	copy(names, r.names[kind])
	return names
}

func SetLogLevel(level log.Priority) {
	logger.SetLogLevel(level)
}
