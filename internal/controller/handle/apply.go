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
	"context"
	"fmt"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/dynamic"

	poolboyv1 "github.com/redhat-cop/poolboy/api/v1"
	ctrlshared "github.com/redhat-cop/poolboy/internal/controller"
	"github.com/redhat-cop/poolboy/internal/jsonpatch"
)

// resourceClientFor resolves the namespaced dynamic client for a
// downstream apiVersion/kind pair via the shared REST mapper.
func resourceClientFor(rt *ctrlshared.Runtime, apiVersion, kind, namespace string) (dynamic.ResourceInterface, schema.GroupVersionResource, error) {
	gv, err := schema.ParseGroupVersion(apiVersion)
	if err != nil {
		return nil, schema.GroupVersionResource{}, fmt.Errorf("parsing apiVersion %q: %w", apiVersion, err)
	}
	mapping, err := rt.Mapper.RESTMapping(schema.GroupKind{Group: gv.Group, Kind: kind}, gv.Version)
	if err != nil {
		return nil, schema.GroupVersionResource{}, fmt.Errorf("resolving REST mapping for %s/%s: %w", apiVersion, kind, err)
	}
	return rt.Dynamic.Resource(mapping.Resource).Namespace(namespace), mapping.Resource, nil
}

// applyProjection creates the downstream object if it does not yet
// exist, or computes and applies an update patch filtered by
// updateFilters plus the implicit allowance for annotation changes
// (spec.md §4.4 step 8/10).
func applyProjection(ctx context.Context, rt *ctrlshared.Runtime, h *poolboyv1.ResourceHandle, p *projection, current *unstructured.Unstructured, filters []jsonpatch.UpdateFilter) (*unstructured.Unstructured, bool, error) {
	namespace := p.object.GetNamespace()
	if namespace == "" {
		namespace = h.Namespace
	}
	client, gvr, err := resourceClientFor(rt, p.apiVer, p.kind, namespace)
	if err != nil {
		return nil, false, err
	}

	if current == nil {
		created, err := client.Create(ctx, p.object, metav1.CreateOptions{})
		if err != nil {
			if apierrors.IsAlreadyExists(err) {
				existing, getErr := client.Get(ctx, p.object.GetName(), metav1.GetOptions{})
				if getErr != nil {
					return nil, false, getErr
				}
				return existing, false, nil
			}
			return nil, false, fmt.Errorf("creating %s %s/%s: %w", gvr.Resource, namespace, p.object.GetName(), err)
		}
		if err := rt.Watch.StartWatch(p.apiVer, p.kind, namespace); err != nil {
			return created, true, fmt.Errorf("starting watch for %s: %w", gvr.Resource, err)
		}
		return created, true, nil
	}

	ops, err := jsonpatch.Diff(current.Object, p.object.Object)
	if err != nil {
		return current, false, err
	}
	ops = jsonpatch.AddReplaceOnly(ops)
	ops = jsonpatch.FilterAllowed(ops, filters)
	if len(ops) == 0 {
		return current, false, nil
	}

	raw, err := jsonpatch.Marshal(ops)
	if err != nil {
		return current, false, err
	}
	patched, err := client.Patch(ctx, current.GetName(), types.JSONPatchType, raw, metav1.PatchOptions{})
	if err != nil {
		return current, false, fmt.Errorf("patching %s %s/%s: %w", gvr.Resource, namespace, current.GetName(), err)
	}
	return patched, false, nil
}
