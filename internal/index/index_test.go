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

package index

import "testing"

func TestBindRemovesFromUnbound(t *testing.T) {
	idx := New()
	h := Key{Namespace: "ns", Name: "h1"}
	c := Key{Namespace: "ns", Name: "c1"}
	idx.PutUnbound(UnboundEntry{Key: h})

	idx.Bind(c, h)

	if got := idx.UnboundCandidates(); len(got) != 0 {
		t.Fatalf("UnboundCandidates = %v, want empty after Bind", got)
	}
	if got, ok := idx.BoundHandle(c); !ok || got != h {
		t.Fatalf("BoundHandle = %v, %v, want %v, true", got, ok, h)
	}
	if got, ok := idx.BoundClaim(h); !ok || got != c {
		t.Fatalf("BoundClaim = %v, %v, want %v, true", got, ok, c)
	}
	if !idx.IsBound(c) {
		t.Fatal("IsBound = false, want true")
	}
}

func TestUnbindClearsBothDirections(t *testing.T) {
	idx := New()
	h := Key{Namespace: "ns", Name: "h1"}
	c := Key{Namespace: "ns", Name: "c1"}
	idx.Bind(c, h)

	idx.Unbind(c)

	if idx.IsBound(c) {
		t.Fatal("IsBound = true after Unbind, want false")
	}
	if _, ok := idx.BoundClaim(h); ok {
		t.Fatal("BoundClaim found an entry after Unbind, want none")
	}
}

func TestRemoveAllDropsBoundAndUnbound(t *testing.T) {
	idx := New()
	h := Key{Namespace: "ns", Name: "h1"}
	c := Key{Namespace: "ns", Name: "c1"}
	idx.Bind(c, h)

	idx.RemoveAll(h)

	if idx.IsBound(c) {
		t.Fatal("IsBound = true after RemoveAll, want false")
	}
	if _, ok := idx.BoundHandle(c); ok {
		t.Fatal("BoundHandle found an entry after RemoveAll, want none")
	}
}

func TestPutUnboundThenRemove(t *testing.T) {
	idx := New()
	h := Key{Namespace: "ns", Name: "h1"}
	idx.PutUnbound(UnboundEntry{Key: h})
	if len(idx.UnboundCandidates()) != 1 {
		t.Fatal("expected one unbound candidate")
	}
	idx.RemoveUnbound(h)
	if len(idx.UnboundCandidates()) != 0 {
		t.Fatal("expected no unbound candidates after RemoveUnbound")
	}
}
