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

// Package index holds the two process-wide handle indices spec.md §3/§5
// describe: the bound index (one entry per claim<->handle binding) and
// the unbound index (warm inventory available to the matcher). Both are
// guarded by one lock, held only across index mutation, never across an
// API call — matching a claim to a handle happens under this lock so no
// two claims can ever bind to the same one (spec.md §5).
package index

import (
	"sync"
	"time"
)

// Key identifies a namespaced object without importing api/v1, so this
// package has no dependency on the CRD types it indexes.
type Key struct {
	Namespace string
	Name      string
}

// ResourceSlot is the per-(resource-list-index) state the matcher needs
// from an unbound handle: its assigned provider, logical name and the
// decoded claim-shaped template used for CheckTemplateMatch.
type ResourceSlot struct {
	Provider string
	Name     string
	Template interface{}
}

// UnboundEntry is one handle in the unbound (warm inventory) index.
type UnboundEntry struct {
	Key               Key
	Pool              *Key
	Healthy           *bool
	Ready             *bool
	UnknownReady      bool
	LifespanEnd       *time.Time
	CreationTimestamp time.Time
	Resources         []ResourceSlot
	Ignore            bool
}

// Index is the shared bound/unbound handle registry.
type Index struct {
	mu      sync.Mutex
	bound   map[Key]Key // claim key -> handle key
	byHand  map[Key]Key // handle key -> claim key (reverse of bound)
	unbound map[Key]UnboundEntry
}

// New builds an empty Index.
func New() *Index {
	return &Index{
		bound:   map[Key]Key{},
		byHand:  map[Key]Key{},
		unbound: map[Key]UnboundEntry{},
	}
}

// Bind records claim<->handle as bound and removes the handle from the
// unbound index, atomically with respect to every other index method.
func (idx *Index) Bind(claim, handle Key) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.bound[claim] = handle
	idx.byHand[handle] = claim
	delete(idx.unbound, handle)
}

// Unbind removes a claim<->handle binding, if present.
func (idx *Index) Unbind(claim Key) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if handle, ok := idx.bound[claim]; ok {
		delete(idx.byHand, handle)
	}
	delete(idx.bound, claim)
}

// BoundHandle returns the handle bound to claim, if any.
func (idx *Index) BoundHandle(claim Key) (Key, bool) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	h, ok := idx.bound[claim]
	return h, ok
}

// BoundClaim returns the claim a handle is bound to, if any.
func (idx *Index) BoundClaim(handle Key) (Key, bool) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	c, ok := idx.byHand[handle]
	return c, ok
}

// PutUnbound adds or replaces a handle's unbound-index entry. Calling it
// for a handle that is currently bound is a caller error (callers must
// Unbind first); PutUnbound does not itself clear a bound entry.
func (idx *Index) PutUnbound(entry UnboundEntry) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.unbound[entry.Key] = entry
}

// RemoveUnbound drops a handle from the unbound index, e.g. once it has
// been deleted from the API.
func (idx *Index) RemoveUnbound(handle Key) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	delete(idx.unbound, handle)
}

// RemoveAll drops every trace of a handle from both indices, used when a
// handle is deleted.
func (idx *Index) RemoveAll(handle Key) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if claim, ok := idx.byHand[handle]; ok {
		delete(idx.bound, claim)
		delete(idx.byHand, handle)
	}
	delete(idx.unbound, handle)
}

// UnboundCandidates returns a snapshot of every currently-unbound handle.
// Callers filter and score the result themselves; taking the snapshot
// under the lock and releasing it before scoring keeps the lock held
// only across index access, never across the CheckTemplateMatch work
// that follows (spec.md §5: no suspension point, and no CPU-heavy
// section, while the lock is held).
func (idx *Index) UnboundCandidates() []UnboundEntry {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	out := make([]UnboundEntry, 0, len(idx.unbound))
	for _, e := range idx.unbound {
		out = append(out, e)
	}
	return out
}

// IsBound reports whether claim already has a handle bound.
func (idx *Index) IsBound(claim Key) bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	_, ok := idx.bound[claim]
	return ok
}
