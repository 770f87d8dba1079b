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
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"

	poolboyv1 "github.com/redhat-cop/poolboy/api/v1"
	"github.com/redhat-cop/poolboy/internal/index"
)

// reconcileDelete runs spec.md §4.3 step 9: propagate deletion to the
// bound handle (whose own finalizer performs the downstream cascade),
// then clear the claim's finalizer.
func (r *Reconciler) reconcileDelete(ctx context.Context, claim *poolboyv1.ResourceClaim) error {
	if claim.Status.ResourceHandle != nil {
		h := &poolboyv1.ResourceHandle{}
		key := types.NamespacedName{Name: claim.Status.ResourceHandle.Name, Namespace: claim.Status.ResourceHandle.Namespace}
		if err := r.Get(ctx, key, h); err == nil {
			if err := r.Delete(ctx, h); err != nil && !apierrors.IsNotFound(err) {
				return err
			}
		} else if !apierrors.IsNotFound(err) {
			return err
		}
	}

	r.Runtime.Index.Unbind(index.Key{Namespace: claim.Namespace, Name: claim.Name})

	if !controllerutil.ContainsFinalizer(claim, poolboyv1.PoolboyClaimFinalizer()) {
		return nil
	}
	controllerutil.RemoveFinalizer(claim, poolboyv1.PoolboyClaimFinalizer())
	return r.Update(ctx, claim)
}

// reconcileDetached runs spec.md §4.3 step 2's detached branch: a
// detached claim is a record only, never rebinding; once its lifespan
// end has passed, it deletes itself.
func (r *Reconciler) reconcileDetached(ctx context.Context, claim *poolboyv1.ResourceClaim) error {
	if claim.Status.Lifespan == nil || claim.Status.Lifespan.End == nil {
		return nil
	}
	if time.Now().Before(claim.Status.Lifespan.End.Time) {
		return nil
	}
	return r.Delete(ctx, claim)
}

// checkAutoActions runs spec.md §4.3 step 8.
func (r *Reconciler) checkAutoActions(ctx context.Context, claim *poolboyv1.ResourceClaim, provider *poolboyv1.ResourceProvider) error {
	if claim.Spec.AutoDelete != nil && claim.Spec.AutoDelete.When != "" {
		truthy, err := r.evalCondition(claim, provider, claim.Spec.AutoDelete.When)
		if err == nil && truthy {
			return r.Delete(ctx, claim)
		}
	}
	if claim.Spec.AutoDetach != nil && claim.Spec.AutoDetach.When != "" {
		truthy, err := r.evalCondition(claim, provider, claim.Spec.AutoDetach.When)
		if err == nil && truthy && claim.Status.ResourceHandle != nil && !claim.Status.ResourceHandle.Detached {
			return r.detach(ctx, claim)
		}
	}
	return nil
}

func (r *Reconciler) detach(ctx context.Context, claim *poolboyv1.ResourceClaim) error {
	patch := client.MergeFrom(claim.DeepCopy())
	claim.Status.ResourceHandle.Detached = true
	if err := r.Status().Patch(ctx, claim, patch); err != nil {
		return err
	}

	h := &poolboyv1.ResourceHandle{}
	key := types.NamespacedName{Name: claim.Status.ResourceHandle.Name, Namespace: claim.Status.ResourceHandle.Namespace}
	if err := r.Get(ctx, key, h); err != nil {
		if apierrors.IsNotFound(err) {
			return nil
		}
		return err
	}
	if err := r.Delete(ctx, h); err != nil && !apierrors.IsNotFound(err) {
		return err
	}
	return nil
}

func (r *Reconciler) evalCondition(claim *poolboyv1.ResourceClaim, provider *poolboyv1.ResourceProvider, expr string) (bool, error) {
	vars, err := r.baseVars(claim, provider, nil)
	if err != nil {
		return false, err
	}
	style := poolboyv1.TemplateStyleJinja2
	if provider != nil {
		style = provider.Spec.Template.Style
	}
	result, err := render(style, vars, "{{ ("+expr+") | bool }}")
	if err != nil {
		return false, err
	}
	b, _ := result.(bool)
	return b, nil
}
