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
	"context"
	"fmt"
	"time"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/apimachinery/pkg/watch"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/tools/pager"
)

const pageSize = 50

// minRestartDelay and minFailureDelay are the "ensure the task has been
// running at least N seconds before reconnect" floors from spec.md
// §4.1 step 3.
const (
	minRestartDelay = 10 * time.Second
	minFailureDelay = 60 * time.Second
)

// task is one (apiVersion, kind, namespace) watch loop: list-prime,
// then a long-lived watch, reconnecting forever under the failure
// taxonomy spec.md §4.1 describes.
type task struct {
	key    taskKey
	gvr    schema.GroupVersionResource
	client dynamic.Interface
	cache  *cache
	disp   Dispatcher
}

func (t *task) resourceClient() dynamic.ResourceInterface {
	if t.key.namespace == "" {
		return t.client.Resource(t.gvr)
	}
	return t.client.Resource(t.gvr).Namespace(t.key.namespace)
}

// run loops until ctx is cancelled, reconnecting after every failure.
func (t *task) run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		started := time.Now()
		err := t.runOnce(ctx)
		elapsed := time.Since(started)

		if ctx.Err() != nil {
			return nil
		}
		if err == nil {
			// Watch channel closed cleanly (e.g. server-initiated
			// reconnect hint); treat like any other disconnect and
			// loop, honoring the same minimum failure delay.
			err = fmt.Errorf("watch for %s %s/%s closed", t.key.apiVersion, t.key.kind, t.key.namespace)
		}

		floor := minFailureDelay
		if isExpiredOrGone(err) {
			floor = minRestartDelay
		}
		if remaining := floor - elapsed; remaining > 0 {
			select {
			case <-time.After(remaining):
			case <-ctx.Done():
				return nil
			}
		}
	}
}

// runOnce performs one full prime-then-watch cycle, returning when the
// watch disconnects or fails.
func (t *task) runOnce(ctx context.Context) error {
	t.cache.reset()

	listPager := pager.New(func(ctx context.Context, opts metav1.ListOptions) (runtime.Object, error) {
		return t.resourceClient().List(ctx, opts)
	})
	listPager.PageSize = pageSize

	var resourceVersion string
	err := listPager.EachListItem(ctx, metav1.ListOptions{}, func(obj runtime.Object) error {
		u, ok := obj.(*unstructured.Unstructured)
		if !ok {
			return fmt.Errorf("unexpected list item type %T", obj)
		}
		resourceVersion = u.GetResourceVersion()
		t.observe(Preload, u)
		return nil
	})
	if err != nil {
		return fmt.Errorf("listing %s %s: %w", t.key.apiVersion, t.key.kind, err)
	}

	watcher, err := t.resourceClient().Watch(ctx, metav1.ListOptions{ResourceVersion: resourceVersion})
	if err != nil {
		return fmt.Errorf("watching %s %s: %w", t.key.apiVersion, t.key.kind, err)
	}
	defer watcher.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.ResultChan():
			if !ok {
				return nil
			}
			if ev.Type == watch.Error {
				return apierrors.FromObject(ev.Object)
			}
			u, ok := ev.Object.(*unstructured.Unstructured)
			if !ok {
				continue
			}
			switch ev.Type {
			case watch.Added:
				t.observe(Added, u)
			case watch.Modified:
				t.observe(Updated, u)
			case watch.Deleted:
				t.remove(u)
			}
		}
	}
}

func (t *task) objectKeyFor(u *unstructured.Unstructured) objectKey {
	return objectKey{apiVersion: t.key.apiVersion, kind: t.key.kind, namespace: u.GetNamespace(), name: u.GetName()}
}

func (t *task) observe(evType EventType, u *unstructured.Unstructured) {
	t.cache.put(t.objectKeyFor(u), u)
	if t.disp != nil {
		t.disp.Handle(Event{APIVersion: t.key.apiVersion, Kind: t.key.kind, Namespace: u.GetNamespace(), Type: evType, Object: u})
	}
}

func (t *task) remove(u *unstructured.Unstructured) {
	t.cache.delete(t.objectKeyFor(u))
	if t.disp != nil {
		t.disp.Handle(Event{APIVersion: t.key.apiVersion, Kind: t.key.kind, Namespace: u.GetNamespace(), Type: Deleted, Object: u})
	}
}

// isExpiredOrGone reports whether err is the "resourceVersion too old"
// class of watch failure (HTTP 410, reason Expired/Gone), which spec.md
// §4.1 step 3 treats as a restart rather than a generic failure.
func isExpiredOrGone(err error) bool {
	return apierrors.IsResourceExpired(err) || apierrors.IsGone(err)
}
