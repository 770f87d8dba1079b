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
	"sync"
	"testing"
	"time"

	"k8s.io/apimachinery/pkg/api/meta"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	dynamicfake "k8s.io/client-go/dynamic/fake"
)

func widgetGVR() schema.GroupVersionResource {
	return schema.GroupVersionResource{Group: "example.com", Version: "v1", Resource: "widgets"}
}

func widgetGVK() schema.GroupVersionKind {
	return schema.GroupVersionKind{Group: "example.com", Version: "v1", Kind: "Widget"}
}

func newTestMapper() meta.RESTMapper {
	m := meta.NewDefaultRESTMapper([]schema.GroupVersion{widgetGVK().GroupVersion()})
	m.Add(widgetGVK(), meta.RESTScopeNamespace)
	return m
}

func widget(namespace, name string) *unstructured.Unstructured {
	return &unstructured.Unstructured{Object: map[string]interface{}{
		"apiVersion": "example.com/v1",
		"kind":       "Widget",
		"metadata":   map[string]interface{}{"namespace": namespace, "name": name},
	}}
}

type recordingDispatcher struct {
	mu     sync.Mutex
	events []Event
}

func (d *recordingDispatcher) Handle(e Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, e)
}

func (d *recordingDispatcher) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.events)
}

func newTestDynamic(objs ...runtime.Object) *dynamicfake.FakeDynamicClient {
	scheme := runtime.NewScheme()
	listKinds := map[schema.GroupVersionResource]string{widgetGVR(): "WidgetList"}
	return dynamicfake.NewSimpleDynamicClientWithCustomListKinds(scheme, listKinds, objs...)
}

func TestStartWatchPrimesCacheAndDispatchesPreload(t *testing.T) {
	dyn := newTestDynamic(widget("ns-a", "one"))
	disp := &recordingDispatcher{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := New(ctx, dyn, newTestMapper(), time.Minute, disp)
	if err := r.StartWatch("example.com/v1", "Widget", "ns-a"); err != nil {
		t.Fatalf("StartWatch: %v", err)
	}
	// Second call is idempotent.
	if err := r.StartWatch("example.com/v1", "Widget", "ns-a"); err != nil {
		t.Fatalf("second StartWatch: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for disp.count() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if disp.count() == 0 {
		t.Fatal("expected at least one dispatched PRELOAD event")
	}

	obj, found, err := r.Get(context.Background(), "example.com/v1", "Widget", "ns-a", "one")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !found || obj.GetName() != "one" {
		t.Fatalf("Get = %v, %v, want the primed widget", obj, found)
	}
}

func TestGetFallsBackToLiveReadOnCacheMiss(t *testing.T) {
	dyn := newTestDynamic(widget("ns-a", "two"))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := New(ctx, dyn, newTestMapper(), time.Minute, nil)
	// No StartWatch call: Get must still work via a direct read.
	obj, found, err := r.Get(context.Background(), "example.com/v1", "Widget", "ns-a", "two")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !found || obj.GetName() != "two" {
		t.Fatalf("Get = %v, %v, want the live-read widget", obj, found)
	}
}

func TestGetMissingObjectIsNotAnError(t *testing.T) {
	dyn := newTestDynamic()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := New(ctx, dyn, newTestMapper(), time.Minute, nil)
	_, found, err := r.Get(context.Background(), "example.com/v1", "Widget", "ns-a", "ghost")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Error("expected found=false for a missing object")
	}
}

func TestStopAllShutsDownTasks(t *testing.T) {
	dyn := newTestDynamic(widget("ns-a", "one"))
	ctx := context.Background()

	r := New(ctx, dyn, newTestMapper(), time.Minute, nil)
	if err := r.StartWatch("example.com/v1", "Widget", "ns-a"); err != nil {
		t.Fatalf("StartWatch: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- r.StopAll() }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("StopAll returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("StopAll did not return in time")
	}
}
