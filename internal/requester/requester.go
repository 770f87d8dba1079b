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

// Package requester resolves the claimant behind a ResourceClaim:
// OpenShift stamps the namespace that owns a project with an
// "openshift.io/requester" annotation naming a user.openshift.io/v1
// User; this package reads that User and its linked Identity objects so
// the handle/claim reconcilers can template requester_user and
// requester_identities and stamp the resource-requester-* annotations
// (spec.md §4.2, §6).
package requester

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/kubernetes"
)

// RequesterAnnotation is the namespace annotation OpenShift project
// requests stamp with the requesting user's name.
const RequesterAnnotation = "openshift.io/requester"

var (
	usersGVR      = schema.GroupVersionResource{Group: "user.openshift.io", Version: "v1", Resource: "users"}
	identitiesGVR = schema.GroupVersionResource{Group: "user.openshift.io", Version: "v1", Resource: "identities"}
)

// Resolver looks up requester metadata via a standard Kubernetes client
// (for the namespace read) and a dynamic client (for the cluster-scoped,
// OpenShift-only User/Identity resources, which this module's scheme has
// no typed Go bindings for).
type Resolver struct {
	core    kubernetes.Interface
	dynamic dynamic.Interface
}

// New builds a Resolver over the given clients.
func New(core kubernetes.Interface, dyn dynamic.Interface) *Resolver {
	return &Resolver{core: core, dynamic: dyn}
}

// Identity is the subset of a user.openshift.io/v1 Identity's `extra`
// map Poolboy's annotations care about.
type Identity struct {
	Email             string
	Name              string
	PreferredUsername string
}

// Info is the resolved requester metadata for one namespace.
type Info struct {
	// UserName is the User object's name, or empty if the namespace
	// carries no requester annotation.
	UserName string
	// User is the raw decoded User object, or nil if not found — a
	// missing User is not an error; it means no requester metadata is
	// available, the same as an absent annotation.
	User *unstructured.Unstructured
	// Identities are every Identity object the User references, in the
	// order the User's own identities list names them.
	Identities []*unstructured.Unstructured
}

// PrimaryIdentity returns the first identity's `extra` fields Poolboy's
// annotations use, or a zero Identity if none exist.
func (i Info) PrimaryIdentity() Identity {
	if len(i.Identities) == 0 {
		return Identity{}
	}
	extra, _, _ := unstructured.NestedStringMap(i.Identities[0].Object, "extra")
	return Identity{
		Email:             extra["email"],
		Name:              extra["name"],
		PreferredUsername: extra["preferredUsername"],
	}
}

// Resolve reads the namespace's requester annotation, then the named
// User and its Identities. A namespace with no requester annotation, or
// a User/Identity the cluster no longer has, resolves to an empty Info
// rather than an error — requester metadata is always best-effort
// enrichment, never load-bearing for reconciliation to proceed.
func (r *Resolver) Resolve(ctx context.Context, namespace string) (Info, error) {
	ns, err := r.core.CoreV1().Namespaces().Get(ctx, namespace, metav1.GetOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return Info{}, nil
		}
		return Info{}, fmt.Errorf("reading namespace %q: %w", namespace, err)
	}
	return r.resolveForNamespaceObj(ctx, ns)
}

func (r *Resolver) resolveForNamespaceObj(ctx context.Context, ns *corev1.Namespace) (Info, error) {
	userName := ns.Annotations[RequesterAnnotation]
	if userName == "" {
		return Info{}, nil
	}

	user, err := r.dynamic.Resource(usersGVR).Get(ctx, userName, metav1.GetOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return Info{UserName: userName}, nil
		}
		return Info{}, fmt.Errorf("reading user %q: %w", userName, err)
	}

	identityNames, _, _ := unstructured.NestedStringSlice(user.Object, "identities")
	identities := make([]*unstructured.Unstructured, 0, len(identityNames))
	for _, name := range identityNames {
		identity, err := r.dynamic.Resource(identitiesGVR).Get(ctx, name, metav1.GetOptions{})
		if err != nil {
			if apierrors.IsNotFound(err) {
				continue
			}
			return Info{}, fmt.Errorf("reading identity %q: %w", name, err)
		}
		identities = append(identities, identity)
	}

	return Info{UserName: userName, User: user, Identities: identities}, nil
}
