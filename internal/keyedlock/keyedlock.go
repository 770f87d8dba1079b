/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package keyedlock gives every claim and every handle its own exclusive
// lock (spec.md §3: "handles and claims each hold an exclusive lock used
// to serialise their own reconciliations"), without pre-allocating one
// mutex per entity that ever existed.
package keyedlock

import "sync"

// Map hands out one *sync.Mutex per key, created on first use and never
// removed — a reconciler's lock is cheap to keep forever since the
// number of live claims/handles is bounded by what's in the cluster.
type Map struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New returns an empty Map.
func New() *Map {
	return &Map{locks: map[string]*sync.Mutex{}}
}

// Lock acquires the mutex for key, creating it if this is the first
// request for that key. Unlock releases it.
func (m *Map) Lock(key string) func() {
	m.mu.Lock()
	l, ok := m.locks[key]
	if !ok {
		l = &sync.Mutex{}
		m.locks[key] = l
	}
	m.mu.Unlock()

	l.Lock()
	return l.Unlock
}
