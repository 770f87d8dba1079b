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

package claim

import (
	"context"
	"time"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"
	logf "sigs.k8s.io/controller-runtime/pkg/log"

	poolboyv1 "github.com/redhat-cop/poolboy/api/v1"
	"github.com/redhat-cop/poolboy/internal/controller/handle"
	"github.com/redhat-cop/poolboy/internal/lifespan"
	"github.com/redhat-cop/poolboy/internal/perror"
	"github.com/redhat-cop/poolboy/internal/value"
)

// bind runs spec.md §4.3 step 6: resolve (match or create) a handle for
// the claim's target resource list, then write status.resourceHandle
// and status.lifespan in one patch.
func (r *Reconciler) bind(ctx context.Context, claim *poolboyv1.ResourceClaim, resources []handle.TargetResource) error {
	h, err := handle.BindToClaim(ctx, r.Client, r.Runtime, claim, resources)
	if err != nil {
		return err
	}

	bounds, err := r.providerLifespanBounds(claim, resources)
	if err != nil {
		return err
	}
	now := time.Now()

	patch := client.MergeFrom(claim.DeepCopy())
	claim.Status.ResourceHandle = &poolboyv1.ResourceHandleRef{
		APIVersion: poolboyv1.GroupVersion.String(),
		Kind:       "ResourceHandle",
		Name:       h.Name,
		Namespace:  h.Namespace,
	}
	claim.Status.Lifespan = &poolboyv1.LifespanStatus{Start: ptrTime(now)}
	if h.Spec.Lifespan != nil && h.Spec.Lifespan.End != nil {
		if end, err := time.Parse(time.RFC3339, *h.Spec.Lifespan.End); err == nil {
			claim.Status.Lifespan.End = ptrTime(end)
		}
	}
	if bounds.Maximum != nil {
		claim.Status.Lifespan.Maximum = ptrTime(now.Add(*bounds.Maximum))
	}
	if bounds.RelativeMaximum != nil {
		claim.Status.Lifespan.RelativeMaximum = ptrTime(now.Add(*bounds.RelativeMaximum))
	}

	return r.Status().Patch(ctx, claim, patch)
}

// propagate runs spec.md §4.3 step 7: once bound, keep the handle's
// resource list and lifespan end in sync with the claim's own spec.
func (r *Reconciler) propagate(ctx context.Context, claim *poolboyv1.ResourceClaim, resources []handle.TargetResource) error {
	if claim.Status.ResourceHandle == nil {
		return nil
	}

	h := &poolboyv1.ResourceHandle{}
	key := types.NamespacedName{Name: claim.Status.ResourceHandle.Name, Namespace: claim.Status.ResourceHandle.Namespace}
	if err := r.Get(ctx, key, h); err != nil {
		if apierrors.IsNotFound(err) {
			return perror.Temporaryf(60*time.Second, "resource handle %s not found", key.Name)
		}
		return err
	}

	patch := client.MergeFrom(h.DeepCopy())
	changed := false

	for i, want := range resources {
		if i >= len(h.Spec.Resources) {
			raw, err := value.ToJSON(want.Template)
			if err != nil {
				return err
			}
			h.Spec.Resources = append(h.Spec.Resources, poolboyv1.ResourceHandleResource{
				Name:     want.Name,
				Provider: want.Provider,
				Template: raw,
			})
			changed = true
			continue
		}

		existing, err := value.FromJSON(h.Spec.Resources[i].Template)
		if err != nil {
			return err
		}
		existingObj, _ := value.AsObject(existing)
		wantObj, _ := value.AsObject(want.Template)
		merged, err := value.MergeOverrides(existingObj, wantObj)
		if err != nil {
			return err
		}
		if !value.Equal(existing, merged) {
			raw, err := value.ToJSON(merged)
			if err != nil {
				return err
			}
			h.Spec.Resources[i].Template = raw
			changed = true
		}
	}

	if claim.Spec.Lifespan != nil && claim.Spec.Lifespan.End != nil {
		if requested, err := time.Parse(time.RFC3339, *claim.Spec.Lifespan.End); err == nil {
			bounds, err := r.providerLifespanBounds(claim, resources)
			if err != nil {
				return err
			}
			start := h.CreationTimestamp.Time
			result := lifespan.ClampEnd(bounds, start, time.Now(), &requested)
			if !result.End.IsZero() {
				newEnd := result.End.Format(time.RFC3339)
				if h.Spec.Lifespan == nil || h.Spec.Lifespan.End == nil || *h.Spec.Lifespan.End != newEnd {
					if result.Clamped {
						logf.FromContext(ctx).Info("warning: requested lifespan end clamped", "resourceclaim", claim.Namespace+"/"+claim.Name, "requested", claim.Spec.Lifespan.End, "end", newEnd)
					}
					if h.Spec.Lifespan == nil {
						h.Spec.Lifespan = &poolboyv1.LifespanSpec{}
					}
					h.Spec.Lifespan.End = &newEnd
					changed = true
				}
			}
		}
	}

	if !changed {
		return nil
	}
	return r.Patch(ctx, h, patch)
}

func (r *Reconciler) providerLifespanBounds(claim *poolboyv1.ResourceClaim, resources []handle.TargetResource) (lifespan.Bounds, error) {
	providerName := ""
	if claim.Status.Provider != nil {
		providerName = claim.Status.Provider.Name
	} else if len(resources) > 0 {
		providerName = resources[0].Provider
	}
	if providerName == "" {
		return lifespan.Bounds{}, nil
	}
	provider, ok := r.Runtime.Providers.Get(providerName)
	if !ok || provider.Spec.Lifespan == nil {
		return lifespan.Bounds{}, nil
	}
	ls := provider.Spec.Lifespan
	return lifespan.ParseBounds(emptyIfNil(ls.Default), emptyIfNil(ls.Maximum), emptyIfNil(ls.RelativeMaximum), emptyIfNil(ls.Unclaimed))
}

func emptyIfNil(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ptrTime(t time.Time) *metav1.Time {
	mt := metav1.NewTime(t)
	return &mt
}
