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

// Package providers is the in-memory ResourceProvider registry from
// spec.md §4.2: a list+watch preloaded index keyed by name, plus the
// matching and template operations the claim and handle reconcilers
// call against it.
package providers

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	poolboyv1 "github.com/redhat-cop/poolboy/api/v1"
	"github.com/redhat-cop/poolboy/internal/perror"
)

// Registry holds every known ResourceProvider keyed by name. Providers
// are mutated only by their own event stream (Upsert/Remove); reads
// never touch the API server once Preload has completed.
type Registry struct {
	mu    sync.RWMutex
	byKey map[string]*poolboyv1.ResourceProvider

	matchGroup singleflight.Group
}

// NewRegistry constructs an empty Registry. Call Preload before serving
// any reads.
func NewRegistry() *Registry {
	return &Registry{byKey: map[string]*poolboyv1.ResourceProvider{}}
}

// Preload seeds the registry from a full list, replacing any existing
// contents. Called once at startup before the provider watch attaches.
func (r *Registry) Preload(providers []poolboyv1.ResourceProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byKey = make(map[string]*poolboyv1.ResourceProvider, len(providers))
	for i := range providers {
		p := providers[i]
		r.byKey[p.Name] = &p
	}
}

// Upsert inserts or replaces one provider, called from the provider
// watch's add/update event handler.
func (r *Registry) Upsert(p *poolboyv1.ResourceProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byKey[p.Name] = p
}

// Remove drops a provider by name, called from the provider watch's
// delete event handler.
func (r *Registry) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byKey, name)
}

// Get returns the cached provider by name, or false if unknown. Unlike
// the original's Get(name), which falls back to a live namespaced read
// on a cache miss, this registry relies entirely on Preload plus the
// watch's event stream being caught up — a miss here means the watch
// has not yet delivered that provider's add event, which is itself
// something the caller should surface as a Temporary error, not paper
// over with a surprise synchronous API call from inside a read path.
func (r *Registry) Get(name string) (*poolboyv1.ResourceProvider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byKey[name]
	return p, ok
}

// All returns a snapshot slice of every registered provider.
func (r *Registry) All() []*poolboyv1.ResourceProvider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*poolboyv1.ResourceProvider, 0, len(r.byKey))
	for _, p := range r.byKey {
		out = append(out, p)
	}
	return out
}

// FindByTemplateMatch returns the unique provider whose spec.match is a
// deep-subset of template. Zero matches is a Temporary error (the
// provider may simply not be registered yet); more than one match is a
// Permanent error (ambiguous provider configuration needs a human to
// fix spec.match on one of the providers). Concurrent identical lookups
// (the same rendered template from several reconciles in flight at
// once) are deduplicated via singleflight, since the scan itself is
// read-only and idempotent.
func (r *Registry) FindByTemplateMatch(template interface{}) (*poolboyv1.ResourceProvider, error) {
	key, err := matchCacheKey(template)
	if err != nil {
		return nil, perror.NewPermanent(fmt.Errorf("encoding template for provider match: %w", err))
	}

	result, err, _ := r.matchGroup.Do(key, func() (interface{}, error) {
		return r.findByTemplateMatchLocked(template)
	})
	if err != nil {
		return nil, err
	}
	return result.(*poolboyv1.ResourceProvider), nil
}

func (r *Registry) findByTemplateMatchLocked(template interface{}) (*poolboyv1.ResourceProvider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []*poolboyv1.ResourceProvider
	for _, p := range r.byKey {
		matchDoc, err := decodeMatch(p)
		if err != nil {
			continue
		}
		if matchDoc == nil {
			continue
		}
		if isSubsetIgnoring(matchDoc, template, p.Spec.MatchIgnore) {
			matches = append(matches, p)
		}
	}

	switch len(matches) {
	case 0:
		return nil, perror.Temporaryf(60*time.Second, "no ResourceProvider matches the candidate template")
	case 1:
		return matches[0], nil
	default:
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = m.Name
		}
		return nil, perror.Permanentf("ambiguous ResourceProvider match: %v", names)
	}
}
