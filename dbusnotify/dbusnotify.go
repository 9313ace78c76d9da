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

// Package dbusnotify forwards display loss and reset notifications to the
// system bus.
package dbusnotify

import (
	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
	"github.com/linuxdeepin/go-lib/log"
	"golang.org/x/xerrors"
)

var logger = log.NewLogger("amlwinsys/dbusnotify")

const (
	dbusServiceName = "org.coreelec.WindowSystem"
	dbusPath        = "/org/coreelec/WindowSystem"
	dbusInterface   = dbusServiceName

	signalDisplayLost  = dbusInterface + ".DisplayLost"
	signalDisplayReset = dbusInterface + ".DisplayReset"
)

const introspectXML = `
<node>
	<interface name="` + dbusInterface + `">
		<signal name="DisplayLost"></signal>
		<signal name="DisplayReset"></signal>
	</interface>` + introspect.IntrospectDataString + `</node>`

type emitter interface {
	Emit(path dbus.ObjectPath, name string, values ...interface{}) error
}

// Resource is a display resource that turns callbacks into bus signals.
type Resource struct {
	conn emitter
}

func newResource(conn emitter) *Resource {
	return &Resource{conn: conn}
}

// Connect exports the signal interface on the system bus. Owning the
// service name is optional, signals are still sent without it.
func Connect() (*Resource, error) {
	conn, err := dbus.SystemBus()
	if err != nil {
		return nil, xerrors.Errorf("failed to connect system bus: %w", err)
	}

	err = conn.Export(introspect.Introspectable(introspectXML), dbusPath,
		"org.freedesktop.DBus.Introspectable")
	if err != nil {
		return nil, xerrors.Errorf("failed to export introspection: %w", err)
	}

	reply, err := conn.RequestName(dbusServiceName, dbus.NameFlagDoNotQueue)
	if err != nil {
		logger.Warning("failed to request name:", err)
	} else if reply != dbus.RequestNameReplyPrimaryOwner {
		logger.Warningf("name %s is already owned", dbusServiceName)
	}
	return newResource(conn), nil
}

func (r *Resource) emit(name string) {
	err := r.conn.Emit(dbusPath, name)
	if err != nil {
		logger.Warningf("failed to emit %s: %v", name, err)
		return
	}
	logger.Debug("emitted", name)
}

func (r *Resource) OnLostDisplay() {
	r.emit(signalDisplayLost)
}

func (r *Resource) OnResetDisplay() {
	r.emit(signalDisplayReset)
}

func SetLogLevel(level log.Priority) {
	logger.SetLogLevel(level)
}
