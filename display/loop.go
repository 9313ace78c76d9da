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
)

// Do queues f to run on the loop goroutine. f is dropped once the loop
// has quit.
func (ws *WindowSystem) Do(f func()) {
	select {
	case ws.calls <- f:
	case <-ws.quit:
	}
}

// StartLoop calls PresentRender every interval and runs the queued calls
// until QuitLoop is called.
func (ws *WindowSystem) StartLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ws.quit:
			return
		case f := <-ws.calls:
			f()
		case <-ticker.C:
			ws.PresentRender()
		}
	}
}

// QuitLoop stops the loop, it may be called from any goroutine.
func (ws *WindowSystem) QuitLoop() {
	ws.quitOnce.Do(func() {
		close(ws.quit)
	})
}
