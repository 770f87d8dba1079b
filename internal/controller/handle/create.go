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
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"
	logf "sigs.k8s.io/controller-runtime/pkg/log"

	poolboyv1 "github.com/redhat-cop/poolboy/api/v1"
	ctrlshared "github.com/redhat-cop/poolboy/internal/controller"
	"github.com/redhat-cop/poolboy/internal/lifespan"
	"github.com/redhat-cop/poolboy/internal/value"
)

// CreateForClaim builds and persists a new handle bound to claim from
// the start, per spec.md §4.4's Create-for-claim.
func CreateForClaim(ctx context.Context, c client.Client, rt *ctrlshared.Runtime, claim *poolboyv1.ResourceClaim, resources []TargetResource) (*poolboyv1.ResourceHandle, error) {
	h, err := newHandle(rt, resources)
	if err != nil {
		return nil, err
	}
	h.Spec.ResourceClaim = &poolboyv1.NamespacedName{Name: claim.Name, Namespace: claim.Namespace}

	bounds, err := lifespanBounds(rt, claim, resources)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	var requested *time.Time
	if claim.Spec.Lifespan != nil && claim.Spec.Lifespan.End != nil {
		if t, err := time.Parse(time.RFC3339, *claim.Spec.Lifespan.End); err == nil {
			requested = &t
		}
	}
	result := lifespan.ClampEnd(bounds, now, now, requested)
	if result.Clamped {
		logf.FromContext(ctx).Info("warning: requested lifespan end clamped", "resourceclaim", claim.Namespace+"/"+claim.Name, "end", result.End.Format(time.RFC3339))
	}
	if !result.End.IsZero() {
		end := metav1.NewTime(result.End)
		h.Spec.Lifespan = &poolboyv1.LifespanSpec{End: strPtr(end.Format(time.RFC3339))}
	}

	if err := c.Create(ctx, h); err != nil {
		return nil, fmt.Errorf("creating resource handle for claim %s/%s: %w", claim.Namespace, claim.Name, err)
	}
	return h, nil
}

// CreateForPool builds and persists a new unbound handle for a pool, per
// spec.md §4.4's Create-for-pool: no claim binding, lifespan end derived
// from the pool's own spec.lifespan.unclaimed duration when configured.
func CreateForPool(ctx context.Context, c client.Client, rt *ctrlshared.Runtime, pool *poolboyv1.ResourcePool, resources []TargetResource) (*poolboyv1.ResourceHandle, error) {
	h, err := newHandle(rt, resources)
	if err != nil {
		return nil, err
	}
	h.Spec.ResourcePool = &poolboyv1.NamespacedName{Name: pool.Name, Namespace: pool.Namespace}

	if pool.Spec.Lifespan != nil && pool.Spec.Lifespan.Unclaimed != nil {
		d, err := lifespan.ParseDuration(*pool.Spec.Lifespan.Unclaimed)
		if err == nil {
			end := metav1.NewTime(time.Now().Add(d))
			h.Spec.Lifespan = &poolboyv1.LifespanSpec{End: strPtr(end.Format(time.RFC3339))}
		}
	}

	if err := c.Create(ctx, h); err != nil {
		return nil, fmt.Errorf("creating resource handle for pool %s/%s: %w", pool.Namespace, pool.Name, err)
	}
	return h, nil
}

func newHandle(rt *ctrlshared.Runtime, resources []TargetResource) (*poolboyv1.ResourceHandle, error) {
	h := &poolboyv1.ResourceHandle{
		ObjectMeta: metav1.ObjectMeta{
			GenerateName: "guid-",
			Namespace:    rt.Config.OperatorNamespace,
			Finalizers:   []string{poolboyv1.PoolboyFinalizer()},
		},
	}
	for _, r := range resources {
		raw, err := value.ToJSON(r.Template)
		if err != nil {
			return nil, fmt.Errorf("encoding resource %q template: %w", r.Name, err)
		}
		h.Spec.Resources = append(h.Spec.Resources, poolboyv1.ResourceHandleResource{
			Name:     r.Name,
			Provider: r.Provider,
			Template: raw,
		})
	}
	return h, nil
}

// lifespanBounds resolves the lifespan bounds governing a new handle: the
// claim's top-level provider in provider mode, or the first resource's
// assigned provider in resources mode (a ResourceHandle carries one
// lifespan, not one per resource, so the first assigned provider's
// bounds govern the whole handle).
func lifespanBounds(rt *ctrlshared.Runtime, claim *poolboyv1.ResourceClaim, resources []TargetResource) (lifespan.Bounds, error) {
	var providerName string
	if claim.Spec.Provider != nil {
		providerName = claim.Spec.Provider.Name
	} else if len(resources) > 0 {
		providerName = resources[0].Provider
	}
	if providerName == "" {
		return lifespan.Bounds{}, nil
	}
	provider, ok := rt.Providers.Get(providerName)
	if !ok || provider.Spec.Lifespan == nil {
		return lifespan.Bounds{}, nil
	}
	ls := provider.Spec.Lifespan
	return lifespan.ParseBounds(strVal(ls.Default), strVal(ls.Maximum), strVal(ls.RelativeMaximum), strVal(ls.Unclaimed))
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func strPtr(s string) *string { return &s }
