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

// Package watch maintains a live, recoverable stream of change events
// for every (apiVersion, kind, namespace) a caller starts a watch for
// (the handle reconciler does so for each downstream kind its handles
// produce), and a short-TTL read cache for reconciliation reads
// (spec.md §4.1).
package watch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/dynamic"
)

type taskKey struct {
	apiVersion string
	kind       string
	namespace  string
}

// Registry owns every active watch task and the per-task cache it
// feeds, plus the GVK→GVR mapping needed to address the dynamic
// client.
type Registry struct {
	client          dynamic.Interface
	mapper          meta.RESTMapper
	refreshInterval time.Duration
	dispatcher      Dispatcher

	mu    sync.Mutex
	tasks map[taskKey]*runningTask

	group  *errgroup.Group
	ctx    context.Context
	cancel context.CancelFunc
}

type runningTask struct {
	task   *task
	cancel context.CancelFunc
}

// New builds a Registry. ctx bounds the lifetime of every task spawned
// through StartWatch; cancel it (or call StopAll) to shut every task
// down.
func New(ctx context.Context, client dynamic.Interface, mapper meta.RESTMapper, refreshInterval time.Duration, dispatcher Dispatcher) *Registry {
	groupCtx, cancel := context.WithCancel(ctx)
	group, groupCtx := errgroup.WithContext(groupCtx)
	return &Registry{
		client:          client,
		mapper:          mapper,
		refreshInterval: refreshInterval,
		dispatcher:      dispatcher,
		tasks:           map[taskKey]*runningTask{},
		group:           group,
		ctx:             groupCtx,
		cancel:          cancel,
	}
}

// StartWatch is idempotent: the first call for a given (apiVersion,
// kind, namespace) spawns a dedicated task; subsequent calls return
// immediately.
func (r *Registry) StartWatch(apiVersion, kind, namespace string) error {
	key := taskKey{apiVersion: apiVersion, kind: kind, namespace: namespace}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tasks[key]; exists {
		return nil
	}

	gvr, err := r.resolveGVR(apiVersion, kind)
	if err != nil {
		return fmt.Errorf("resolving %s %s to a resource: %w", apiVersion, kind, err)
	}

	taskCtx, cancel := context.WithCancel(r.ctx)
	t := &task{
		key:    key,
		gvr:    gvr,
		client: r.client,
		cache:  newCache(),
		disp:   r.dispatcher,
	}
	r.tasks[key] = &runningTask{task: t, cancel: cancel}

	r.group.Go(func() error {
		return t.run(taskCtx)
	})
	return nil
}

func (r *Registry) resolveGVR(apiVersion, kind string) (schema.GroupVersionResource, error) {
	gv, err := schema.ParseGroupVersion(apiVersion)
	if err != nil {
		return schema.GroupVersionResource{}, err
	}
	mapping, err := r.mapper.RESTMapping(gv.WithKind(kind).GroupKind(), gv.Version)
	if err != nil {
		return schema.GroupVersionResource{}, err
	}
	return mapping.Resource, nil
}

// Get returns the cached object if it was observed within the
// refresh interval, otherwise performs a fresh API read and primes the
// cache. A missing object is reported as absence (found=false), never
// as an error.
func (r *Registry) Get(ctx context.Context, apiVersion, kind, namespace, name string) (obj *unstructured.Unstructured, found bool, err error) {
	tKey := taskKey{apiVersion: apiVersion, kind: kind, namespace: namespace}

	r.mu.Lock()
	rt, exists := r.tasks[tKey]
	r.mu.Unlock()

	oKey := objectKey{apiVersion: apiVersion, kind: kind, namespace: namespace, name: name}
	if exists {
		if cached, age, ok := rt.task.cache.get(oKey); ok && age <= r.refreshInterval {
			return cached, true, nil
		}
	}

	gvr, err := r.resolveGVR(apiVersion, kind)
	if err != nil {
		return nil, false, fmt.Errorf("resolving %s %s to a resource: %w", apiVersion, kind, err)
	}
	var rc dynamic.ResourceInterface = r.client.Resource(gvr)
	if namespace != "" {
		rc = r.client.Resource(gvr).Namespace(namespace)
	}
	live, err := rc.Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			if exists {
				rt.task.cache.delete(oKey)
			}
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading %s %s %s/%s: %w", apiVersion, kind, namespace, name, err)
	}
	if exists {
		rt.task.cache.put(oKey, live)
	}
	return live, true, nil
}

// StopAll cancels every watch task and waits for each to drain.
func (r *Registry) StopAll() error {
	r.cancel()
	return r.group.Wait()
}
