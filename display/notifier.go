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
)

// DisplayResource is implemented by anything holding state that does not
// survive a display mode change, e.g. a GPU context. Implementations must be
// comparable, normally a pointer.
type DisplayResource interface {
	OnLostDisplay()
	OnResetDisplay()
}

// ResourceNotifier tells the registered resources about display changes.
// It does not own the resources, they must unregister before going away.
type ResourceNotifier struct {
	mu        sync.Mutex
	resources []DisplayResource
}

func NewResourceNotifier() *ResourceNotifier {
	return &ResourceNotifier{}
}

func (n *ResourceNotifier) Register(resource DisplayResource) {
	n.mu.Lock()
	n.resources = append(n.resources, resource)
	n.mu.Unlock()
}

func (n *ResourceNotifier) Unregister(resource DisplayResource) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, r := range n.resources {
		if r == resource {
			n.resources = append(n.resources[:i], n.resources[i+1:]...)
			return
		}
	}
}

// snapshot copies the resource list so handlers may register or unregister
// while being called.
func (n *ResourceNotifier) snapshot() []DisplayResource {
	n.mu.Lock()
	defer n.mu.Unlock()
	resources := make([]DisplayResource, len(n.resources))
	copy(resources, n.resources)
	return resources
}

func (n *ResourceNotifier) NotifyLost() {
	resources := n.snapshot()
	logger.Debugf("notify %d resources of lost display", len(resources))
	for _, r := range resources {
		r.OnLostDisplay()
	}
}

func (n *ResourceNotifier) NotifyReset() {
	resources := n.snapshot()
	logger.Debugf("notify %d resources of reset display", len(resources))
	for _, r := range resources {
		r.OnResetDisplay()
	}
}
