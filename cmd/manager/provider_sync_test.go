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

package main

import (
	"context"
	"testing"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	poolboyv1 "github.com/redhat-cop/poolboy/api/v1"
	"github.com/redhat-cop/poolboy/internal/providers"
)

func syncerScheme(t *testing.T) *runtime.Scheme {
	t.Helper()
	scheme := runtime.NewScheme()
	if err := poolboyv1.AddToScheme(scheme); err != nil {
		t.Fatalf("adding scheme: %v", err)
	}
	return scheme
}

func TestProviderSyncer_UpsertsOnFound(t *testing.T) {
	scheme := syncerScheme(t)
	p := &poolboyv1.ResourceProvider{
		ObjectMeta: metav1.ObjectMeta{Name: "widget-provider", Namespace: "poolboy"},
		Spec: poolboyv1.ResourceProviderSpec{
			Template: poolboyv1.TemplateSpec{Style: poolboyv1.TemplateStyleJinja2},
		},
	}
	c := fake.NewClientBuilder().WithScheme(scheme).WithObjects(p).Build()
	reg := providers.NewRegistry()
	s := &providerSyncer{Client: c, Registry: reg}

	req := ctrl.Request{NamespacedName: types.NamespacedName{Namespace: "poolboy", Name: "widget-provider"}}
	if _, err := s.Reconcile(context.Background(), req); err != nil {
		t.Fatalf("reconcile: %v", err)
	}

	got, ok := reg.Get("widget-provider")
	if !ok {
		t.Fatal("expected provider to be registered after reconcile")
	}
	if got.Namespace != "poolboy" {
		t.Fatalf("expected registered provider namespace poolboy, got %q", got.Namespace)
	}
}

func TestProviderSyncer_RemovesOnNotFound(t *testing.T) {
	scheme := syncerScheme(t)
	c := fake.NewClientBuilder().WithScheme(scheme).Build()
	reg := providers.NewRegistry()
	reg.Upsert(&poolboyv1.ResourceProvider{ObjectMeta: metav1.ObjectMeta{Name: "stale-provider"}})

	s := &providerSyncer{Client: c, Registry: reg}
	req := ctrl.Request{NamespacedName: types.NamespacedName{Name: "stale-provider"}}
	if _, err := s.Reconcile(context.Background(), req); err != nil {
		t.Fatalf("reconcile: %v", err)
	}

	if _, ok := reg.Get("stale-provider"); ok {
		t.Fatal("expected provider to be removed from registry once deleted from the API")
	}
}
