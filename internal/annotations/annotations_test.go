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

package annotations

import "testing"

func TestKeysUseDomainPrefix(t *testing.T) {
	k := New("poolboy.example.com")
	if got, want := k.HandleName(), "poolboy.example.com/resource-handle-name"; got != want {
		t.Fatalf("HandleName() = %q, want %q", got, want)
	}
	if got, want := k.Ignore(), "poolboy.example.com/ignore"; got != want {
		t.Fatalf("Ignore() = %q, want %q", got, want)
	}
}

func TestApplyOmitsEmptyFields(t *testing.T) {
	k := New("poolboy.example.com")
	ann := k.Apply(nil, Stamp{
		HandleName:      "h1",
		HandleNamespace: "ns",
		ResourceIndex:   2,
	})

	if ann[k.HandleName()] != "h1" {
		t.Fatalf("HandleName annotation = %q, want h1", ann[k.HandleName()])
	}
	if ann[k.ResourceIndex()] != "2" {
		t.Fatalf("ResourceIndex annotation = %q, want 2", ann[k.ResourceIndex()])
	}
	if _, ok := ann[k.ClaimName()]; ok {
		t.Fatal("ClaimName annotation present, want omitted for empty Stamp field")
	}
}

func TestApplyPreservesExistingAnnotations(t *testing.T) {
	k := New("poolboy.example.com")
	ann := map[string]string{"other/key": "value"}

	ann = k.Apply(ann, Stamp{HandleName: "h1"})

	if ann["other/key"] != "value" {
		t.Fatal("Apply dropped a pre-existing annotation")
	}
	if ann[k.HandleName()] != "h1" {
		t.Fatal("Apply did not set HandleName annotation")
	}
}
