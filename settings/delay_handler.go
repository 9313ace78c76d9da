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

package settings

import (
	"sync"
	"time"
)

// delayHandler collects named tasks and runs each of them once after delay.
// Tasks added again before the delay ran are merged.
type delayHandler struct {
	mutex   sync.Mutex
	task    map[string]bool
	pending bool
	delay   time.Duration
	do      func(string)
}

func newDelayHandler(delay time.Duration, f func(string)) *delayHandler {
	return &delayHandler{
		task:  make(map[string]bool),
		do:    f,
		delay: delay,
	}
}

func (dh *delayHandler) AddTask(name string) {
	dh.mutex.Lock()
	defer dh.mutex.Unlock()
	dh.task[name] = true
	if dh.pending {
		return
	}
	dh.pending = true
	time.AfterFunc(dh.delay, dh.run)
}

func (dh *delayHandler) run() {
	dh.mutex.Lock()
	tasks := dh.task
	dh.task = make(map[string]bool)
	dh.pending = false
	dh.mutex.Unlock()

	if dh.do == nil {
		return
	}
	for name := range tasks {
		dh.do(name)
	}
}
