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

// Package controller holds the shared runtime the three first-party
// reconcilers (claim, handle, pool) are built against, plus the
// sub-packages implementing each one. Bundling the cross-entity
// registries spec.md §5 describes (provider registry, bound/unbound
// handle index, watcher registry) into one value handed to every
// reconciler keeps main.go's wiring linear, the way the teacher's
// reconcilers each take their collaborators as constructor fields
// rather than reaching for package-level globals.
package controller

import (
	"sync"

	"k8s.io/apimachinery/pkg/api/meta"
	"k8s.io/client-go/dynamic"

	"github.com/redhat-cop/poolboy/internal/annotations"
	"github.com/redhat-cop/poolboy/internal/config"
	"github.com/redhat-cop/poolboy/internal/index"
	"github.com/redhat-cop/poolboy/internal/keyedlock"
	"github.com/redhat-cop/poolboy/internal/providers"
	"github.com/redhat-cop/poolboy/internal/requester"
	"github.com/redhat-cop/poolboy/internal/watch"
)

// Runtime is the set of long-lived, process-wide collaborators every
// reconciler needs beyond its own client.Client. None of its fields are
// mutated after New returns; the registries and indices it holds are
// themselves internally synchronized.
type Runtime struct {
	Config      *config.Config
	Annotations annotations.Keys
	Providers   *providers.Registry
	Index       *index.Index
	Watch       *watch.Registry
	Requester   *requester.Resolver
	Dynamic     dynamic.Interface
	Mapper      meta.RESTMapper

	// ClaimLocks, HandleLocks and PoolLocks are the per-instance
	// exclusive locks spec.md §3 describes, one keyed map per kind so a
	// claim and a handle that happen to share a namespaced name never
	// contend on the same mutex.
	ClaimLocks  *keyedlock.Map
	HandleLocks *keyedlock.Map
	PoolLocks   *keyedlock.Map

	// MatchLock is the single process-wide lock spec.md §4.4 requires
	// around the entire bind-to-claim sequence (reject-if-bound, scan,
	// score, patch, register) so two claims can never race onto the
	// same unbound handle. It is distinct from HandleLocks, which
	// serialises a single handle's own Reconcile.
	MatchLock sync.Mutex
}

// New builds a Runtime from its already-constructed collaborators.
func New(cfg *config.Config, reg *providers.Registry, idx *index.Index, watchRegistry *watch.Registry, req *requester.Resolver, dyn dynamic.Interface, mapper meta.RESTMapper) *Runtime {
	return &Runtime{
		Config:      cfg,
		Annotations: annotations.New(cfg.OperatorDomain),
		Providers:   reg,
		Index:       idx,
		Watch:       watchRegistry,
		Requester:   req,
		Dynamic:     dyn,
		Mapper:      mapper,
		ClaimLocks:  keyedlock.New(),
		HandleLocks: keyedlock.New(),
		PoolLocks:   keyedlock.New(),
	}
}
