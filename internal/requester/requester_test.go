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

package requester

import (
	"context"
	"testing"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	dynamicfake "k8s.io/client-go/dynamic/fake"
	"k8s.io/client-go/kubernetes/fake"
)

func newFakeDynamic(objs ...runtime.Object) dynamicfake.FakeDynamicClient {
	scheme := runtime.NewScheme()
	listKinds := map[schema.GroupVersionResource]string{
		usersGVR:      "UserList",
		identitiesGVR: "IdentityList",
	}
	return *dynamicfake.NewSimpleDynamicClientWithCustomListKinds(scheme, listKinds, objs...)
}

func unstructuredUser(name string, identities ...string) *unstructured.Unstructured {
	ifaces := make([]interface{}, len(identities))
	for i, id := range identities {
		ifaces[i] = id
	}
	return &unstructured.Unstructured{Object: map[string]interface{}{
		"apiVersion": "user.openshift.io/v1",
		"kind":       "User",
		"metadata":   map[string]interface{}{"name": name},
		"identities": ifaces,
	}}
}

func unstructuredIdentity(name, email, displayName, preferredUsername string) *unstructured.Unstructured {
	return &unstructured.Unstructured{Object: map[string]interface{}{
		"apiVersion": "user.openshift.io/v1",
		"kind":       "Identity",
		"metadata":   map[string]interface{}{"name": name},
		"extra": map[string]interface{}{
			"email":             email,
			"name":              displayName,
			"preferredUsername": preferredUsername,
		},
	}}
}

func TestResolveNoAnnotationReturnsEmpty(t *testing.T) {
	core := fake.NewClientset(&corev1.Namespace{
		ObjectMeta: metav1.ObjectMeta{Name: "proj-a"},
	})
	dyn := newFakeDynamic()
	r := New(core, &dyn)

	info, err := r.Resolve(context.Background(), "proj-a")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if info.UserName != "" {
		t.Errorf("UserName = %q, want empty", info.UserName)
	}
}

func TestResolveUserAndIdentity(t *testing.T) {
	core := fake.NewClientset(&corev1.Namespace{
		ObjectMeta: metav1.ObjectMeta{
			Name:        "proj-a",
			Annotations: map[string]string{RequesterAnnotation: "alice"},
		},
	})
	dyn := newFakeDynamic(
		unstructuredUser("alice", "ldap:alice"),
		unstructuredIdentity("ldap:alice", "alice@example.com", "Alice", "alice"),
	)
	r := New(core, &dyn)

	info, err := r.Resolve(context.Background(), "proj-a")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if info.UserName != "alice" {
		t.Errorf("UserName = %q, want alice", info.UserName)
	}
	if len(info.Identities) != 1 {
		t.Fatalf("Identities = %d, want 1", len(info.Identities))
	}
	id := info.PrimaryIdentity()
	if id.Email != "alice@example.com" || id.Name != "Alice" || id.PreferredUsername != "alice" {
		t.Errorf("PrimaryIdentity = %#v", id)
	}
}

func TestResolveMissingUserIsNotAnError(t *testing.T) {
	core := fake.NewClientset(&corev1.Namespace{
		ObjectMeta: metav1.ObjectMeta{
			Name:        "proj-a",
			Annotations: map[string]string{RequesterAnnotation: "ghost"},
		},
	})
	dyn := newFakeDynamic()
	r := New(core, &dyn)

	info, err := r.Resolve(context.Background(), "proj-a")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if info.UserName != "ghost" {
		t.Errorf("UserName = %q, want ghost", info.UserName)
	}
	if info.User != nil {
		t.Error("expected nil User for a missing object")
	}
}
