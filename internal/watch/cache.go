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

package watch

import (
	"sync"
	"time"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// objectKey identifies one cached object.
type objectKey struct {
	apiVersion string
	kind       string
	namespace  string
	name       string
}

type cacheEntry struct {
	obj      *unstructured.Unstructured
	observed time.Time
}

// cache is a short-TTL read cache for one watch task's objects. Entries
// observed longer than refreshInterval ago are treated as stale by
// Registry.Get, which falls back to a direct API read; the cache itself
// never expires entries on a timer, since a live watch keeps every
// entry current as long as the task is running.
type cache struct {
	mu      sync.RWMutex
	entries map[objectKey]cacheEntry
}

func newCache() *cache {
	return &cache{entries: map[objectKey]cacheEntry{}}
}

func (c *cache) put(key objectKey, obj *unstructured.Unstructured) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{obj: obj, observed: time.Now()}
}

func (c *cache) delete(key objectKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// get returns the cached object and how long ago it was observed. ok
// is false if nothing is cached for key.
func (c *cache) get(key objectKey) (obj *unstructured.Unstructured, age time.Duration, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, found := c.entries[key]
	if !found {
		return nil, 0, false
	}
	return e.obj, time.Since(e.observed), true
}

// reset clears every entry for one namespace scope, called at the start
// of every new list phase so callers never observe a mix of generations
// (spec.md §4.1 step 4).
func (c *cache) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[objectKey]cacheEntry{}
}

func (c *cache) list() []*unstructured.Unstructured {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*unstructured.Unstructured, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e.obj)
	}
	return out
}
