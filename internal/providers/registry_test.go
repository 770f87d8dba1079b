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

package providers

import (
	"encoding/json"
	"testing"

	poolboyv1 "github.com/redhat-cop/poolboy/api/v1"
	"github.com/redhat-cop/poolboy/internal/perror"
	apiextv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

func jsonOf(t *testing.T, v interface{}) *apiextv1.JSON {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshaling fixture: %v", err)
	}
	return &apiextv1.JSON{Raw: raw}
}

func providerWithMatch(t *testing.T, name string, match map[string]interface{}, matchIgnore []string) poolboyv1.ResourceProvider {
	return poolboyv1.ResourceProvider{
		ObjectMeta: metav1.ObjectMeta{Name: name},
		Spec: poolboyv1.ResourceProviderSpec{
			Match:       jsonOf(t, match),
			MatchIgnore: matchIgnore,
		},
	}
}

func TestFindByTemplateMatchUnique(t *testing.T) {
	r := NewRegistry()
	r.Preload([]poolboyv1.ResourceProvider{
		providerWithMatch(t, "bucket", map[string]interface{}{"kind": "Bucket"}, nil),
		providerWithMatch(t, "vm", map[string]interface{}{"kind": "VirtualMachine"}, nil),
	})

	p, err := r.FindByTemplateMatch(map[string]interface{}{"kind": "Bucket", "spec": map[string]interface{}{"size": "10Gi"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "bucket" {
		t.Errorf("matched %q, want bucket", p.Name)
	}
}

func TestFindByTemplateMatchNoneIsTemporary(t *testing.T) {
	r := NewRegistry()
	r.Preload([]poolboyv1.ResourceProvider{
		providerWithMatch(t, "vm", map[string]interface{}{"kind": "VirtualMachine"}, nil),
	})

	_, err := r.FindByTemplateMatch(map[string]interface{}{"kind": "Bucket"})
	if err == nil {
		t.Fatal("expected an error")
	}
	if _, ok := perror.AsTemporary(err); !ok {
		t.Errorf("expected a Temporary error, got %v", err)
	}
}

func TestFindByTemplateMatchAmbiguousIsPermanent(t *testing.T) {
	r := NewRegistry()
	r.Preload([]poolboyv1.ResourceProvider{
		providerWithMatch(t, "a", map[string]interface{}{"kind": "Bucket"}, nil),
		providerWithMatch(t, "b", map[string]interface{}{"kind": "Bucket"}, nil),
	})

	_, err := r.FindByTemplateMatch(map[string]interface{}{"kind": "Bucket"})
	if err == nil {
		t.Fatal("expected an error")
	}
	if _, ok := perror.AsPermanent(err); !ok {
		t.Errorf("expected a Permanent error, got %v", err)
	}
}

func TestFindByTemplateMatchIgnoresIgnoredPaths(t *testing.T) {
	r := NewRegistry()
	r.Preload([]poolboyv1.ResourceProvider{
		providerWithMatch(t, "vm", map[string]interface{}{
			"kind": "VirtualMachine",
			"spec": map[string]interface{}{"zone": "us-east-1"},
		}, []string{`^/spec/zone$`}),
	})

	p, err := r.FindByTemplateMatch(map[string]interface{}{
		"kind": "VirtualMachine",
		"spec": map[string]interface{}{"zone": "us-west-2"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "vm" {
		t.Errorf("matched %q, want vm", p.Name)
	}
}

func TestRegistryUpsertAndRemove(t *testing.T) {
	r := NewRegistry()
	p := providerWithMatch(t, "vm", map[string]interface{}{"kind": "VirtualMachine"}, nil)
	r.Upsert(&p)

	got, ok := r.Get("vm")
	if !ok || got.Name != "vm" {
		t.Fatalf("Get after Upsert = %v, %v", got, ok)
	}

	r.Remove("vm")
	if _, ok := r.Get("vm"); ok {
		t.Error("expected provider to be removed")
	}
}

func TestCheckTemplateMatch(t *testing.T) {
	handle := map[string]interface{}{"kind": "VirtualMachine", "spec": map[string]interface{}{"cpu": float64(2)}}
	claim := map[string]interface{}{"kind": "VirtualMachine", "spec": map[string]interface{}{"cpu": float64(2)}}

	_, ok, err := CheckTemplateMatch(handle, claim, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected identical templates to match")
	}

	claim["spec"].(map[string]interface{})["cpu"] = float64(4)
	diff, ok, err := CheckTemplateMatch(handle, claim, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected differing cpu to not match")
	}
	if len(diff) != 0 {
		t.Errorf("expected empty diff on a non-match, got %v", diff)
	}
}
