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

package handle

import (
	"testing"
	"time"

	apiextv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	poolboyv1 "github.com/redhat-cop/poolboy/api/v1"
	ctrlshared "github.com/redhat-cop/poolboy/internal/controller"
	"github.com/redhat-cop/poolboy/internal/config"
	"github.com/redhat-cop/poolboy/internal/index"
	"github.com/redhat-cop/poolboy/internal/providers"
	"github.com/redhat-cop/poolboy/internal/value"
)

func jsonOf(t *testing.T, v interface{}) *apiextv1.JSON {
	t.Helper()
	raw, err := value.ToJSON(v)
	if err != nil {
		t.Fatalf("encoding test fixture: %v", err)
	}
	return raw
}

func newTestRuntime(reg *providers.Registry, idx *index.Index) *ctrlshared.Runtime {
	return ctrlshared.New(&config.Config{OperatorNamespace: "poolboy"}, reg, idx, nil, nil, nil, nil)
}

func TestLinkedProviderVars_WaitsForSiblingState(t *testing.T) {
	reg := providers.NewRegistry()
	r := &Reconciler{Runtime: newTestRuntime(reg, index.New())}

	waitFor := "resource_state.ready"
	rp := &poolboyv1.ResourceProvider{
		Spec: poolboyv1.ResourceProviderSpec{
			LinkedProviders: []poolboyv1.LinkedProvider{
				{
					Name:         "database",
					ResourceName: "db",
					WaitFor:      &waitFor,
					TemplateVars: map[string]string{"/host": "db_host"},
				},
			},
		},
	}
	h := &poolboyv1.ResourceHandle{
		Spec: poolboyv1.ResourceHandleSpec{
			Resources: []poolboyv1.ResourceHandleResource{
				{Name: "db", Provider: "database"},
				{Name: "app", Provider: "widget"},
			},
		},
	}

	t.Run("sibling not yet observed", func(t *testing.T) {
		extra, waiting := r.linkedProviderVars(rp, h, nil)
		if waiting != "Linked ResourceProvider" {
			t.Fatalf("expected waitingFor set when sibling state is unknown, got %q", waiting)
		}
		if extra != nil {
			t.Fatalf("expected no vars while waiting, got %v", extra)
		}
	})

	t.Run("sibling observed but not ready", func(t *testing.T) {
		statuses := []poolboyv1.ResourceHandleResourceStatus{
			{Name: "db", State: jsonOf(t, map[string]interface{}{"ready": false, "host": "10.0.0.1"})},
			{},
		}
		_, waiting := r.linkedProviderVars(rp, h, statuses)
		if waiting != "Linked ResourceProvider" {
			t.Fatalf("expected waitingFor set when waitFor is false, got %q", waiting)
		}
	})

	t.Run("sibling satisfied", func(t *testing.T) {
		statuses := []poolboyv1.ResourceHandleResourceStatus{
			{Name: "db", State: jsonOf(t, map[string]interface{}{"ready": true, "host": "10.0.0.1"})},
			{},
		}
		extra, waiting := r.linkedProviderVars(rp, h, statuses)
		if waiting != "" {
			t.Fatalf("expected no waitingFor once satisfied, got %q", waiting)
		}
		if extra["db_host"] != "10.0.0.1" {
			t.Fatalf("expected templateVars to fold in db_host, got %v", extra)
		}
	})
}

func TestLinkedProviderVars_NoLinksIsNoop(t *testing.T) {
	r := &Reconciler{Runtime: newTestRuntime(providers.NewRegistry(), index.New())}
	extra, waiting := r.linkedProviderVars(&poolboyv1.ResourceProvider{}, &poolboyv1.ResourceHandle{}, nil)
	if extra != nil || waiting != "" {
		t.Fatalf("expected no-op for a provider with no linked providers, got extra=%v waiting=%q", extra, waiting)
	}
	extra, waiting = r.linkedProviderVars(nil, &poolboyv1.ResourceHandle{}, nil)
	if extra != nil || waiting != "" {
		t.Fatalf("expected no-op for a nil provider, got extra=%v waiting=%q", extra, waiting)
	}
}

func TestUpdateIndex_BoundHandlePublishesIntoBoundIndex(t *testing.T) {
	idx := index.New()
	r := &Reconciler{Runtime: newTestRuntime(providers.NewRegistry(), idx)}

	h := &poolboyv1.ResourceHandle{
		ObjectMeta: metav1.ObjectMeta{Name: "h1", Namespace: "poolboy"},
		Spec: poolboyv1.ResourceHandleSpec{
			ResourceClaim: &poolboyv1.NamespacedName{Name: "c1", Namespace: "apps"},
		},
	}
	r.updateIndex(h)

	claimKey := index.Key{Namespace: "apps", Name: "c1"}
	handleKey, ok := idx.BoundHandle(claimKey)
	if !ok || handleKey != (index.Key{Namespace: "poolboy", Name: "h1"}) {
		t.Fatalf("expected claim bound to handle h1, got %+v ok=%v", handleKey, ok)
	}
}

func TestUpdateIndex_UnboundHandlePublishesPoolAndLifespan(t *testing.T) {
	idx := index.New()
	r := &Reconciler{Runtime: newTestRuntime(providers.NewRegistry(), idx)}

	end := time.Now().Add(time.Hour).UTC().Format(time.RFC3339)
	healthy := true
	h := &poolboyv1.ResourceHandle{
		ObjectMeta: metav1.ObjectMeta{Name: "h2", Namespace: "poolboy"},
		Spec: poolboyv1.ResourceHandleSpec{
			ResourcePool: &poolboyv1.NamespacedName{Name: "pool-a", Namespace: "poolboy"},
			Lifespan:     &poolboyv1.LifespanSpec{End: &end},
			Resources:    []poolboyv1.ResourceHandleResource{{Name: "app", Provider: "widget"}},
		},
		Status: poolboyv1.ResourceHandleStatus{Healthy: &healthy},
	}
	r.updateIndex(h)

	candidates := idx.UnboundCandidates()
	if len(candidates) != 1 {
		t.Fatalf("expected one unbound candidate, got %d", len(candidates))
	}
	c := candidates[0]
	if c.Pool == nil || c.Pool.Name != "pool-a" {
		t.Fatalf("expected pool reference carried into index entry, got %+v", c.Pool)
	}
	if c.LifespanEnd == nil {
		t.Fatal("expected lifespan end to be parsed into the index entry")
	}
	if len(c.Resources) != 1 || c.Resources[0].Provider != "widget" {
		t.Fatalf("expected resource slots carried into index entry, got %+v", c.Resources)
	}
}

func TestEvaluateHealthAndReadiness(t *testing.T) {
	healthCheck := "resource_state.status == 'ok'"
	readinessCheck := "resource_state.ready"
	provider := &poolboyv1.ResourceProvider{
		Spec: poolboyv1.ResourceProviderSpec{
			HealthCheck:    &healthCheck,
			ReadinessCheck: &readinessCheck,
		},
	}

	healthy, ready := evaluateHealthAndReadiness(provider, map[string]interface{}{"status": "ok", "ready": true})
	if healthy == nil || !*healthy {
		t.Fatalf("expected healthy=true, got %v", healthy)
	}
	if ready == nil || !*ready {
		t.Fatalf("expected ready=true, got %v", ready)
	}

	healthy, ready = evaluateHealthAndReadiness(provider, map[string]interface{}{"status": "degraded", "ready": false})
	if healthy == nil || *healthy {
		t.Fatalf("expected healthy=false, got %v", healthy)
	}
	if ready == nil || *ready {
		t.Fatalf("expected ready=false, got %v", ready)
	}

	if h, rd := evaluateHealthAndReadiness(nil, nil); h != nil || rd != nil {
		t.Fatalf("expected nil/nil for a nil provider, got %v/%v", h, rd)
	}
}
