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

// Package pool implements the ResourcePool reconciler: replenishing warm
// unbound ResourceHandle inventory up to spec.minAvailable and trimming
// it back down when a pool shrinks (spec.md §4.5).
package pool

import (
	"context"
	"sort"
	"time"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/tools/record"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"
	logf "sigs.k8s.io/controller-runtime/pkg/log"

	poolboyv1 "github.com/redhat-cop/poolboy/api/v1"
	ctrlshared "github.com/redhat-cop/poolboy/internal/controller"
	"github.com/redhat-cop/poolboy/internal/controller/handle"
	"github.com/redhat-cop/poolboy/internal/index"
	"github.com/redhat-cop/poolboy/internal/metrics"
	"github.com/redhat-cop/poolboy/internal/perror"
	"github.com/redhat-cop/poolboy/internal/providers"
	"github.com/redhat-cop/poolboy/internal/templating"
	"github.com/redhat-cop/poolboy/internal/value"
)

// Reconciler reconciles ResourcePool objects.
type Reconciler struct {
	client.Client
	Scheme   *runtime.Scheme
	Recorder record.EventRecorder
	Runtime  *ctrlshared.Runtime
}

// +kubebuilder:rbac:groups=poolboy.gpte.redhat.com,resources=resourcepools,verbs=get;list;watch;update;patch
// +kubebuilder:rbac:groups=poolboy.gpte.redhat.com,resources=resourcepools/status,verbs=get;update;patch
// +kubebuilder:rbac:groups=poolboy.gpte.redhat.com,resources=resourcepools/finalizers,verbs=update
// +kubebuilder:rbac:groups=poolboy.gpte.redhat.com,resources=resourcehandles,verbs=get;list;watch;create;delete

func (r *Reconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	log := logf.FromContext(ctx)
	start := time.Now()
	defer metrics.ObserveRequest("reconcile", "resourcepool", start)

	pool := &poolboyv1.ResourcePool{}
	if err := r.Get(ctx, req.NamespacedName, pool); err != nil {
		if apierrors.IsNotFound(err) {
			return ctrl.Result{}, nil
		}
		return ctrl.Result{}, err
	}

	unlock := r.Runtime.PoolLocks.Lock(pool.Namespace + "/" + pool.Name)
	defer unlock()

	err := r.manage(ctx, pool)
	requeueAfter, unclassified := perror.Result(err)
	if unclassified != nil {
		metrics.RecordException("resourcepool")
		log.Error(unclassified, "reconcile failed", "resourcepool", req.NamespacedName)
		return ctrl.Result{}, unclassified
	}
	if requeueAfter > 0 {
		return ctrl.Result{RequeueAfter: requeueAfter}, nil
	}
	return ctrl.Result{RequeueAfter: r.Runtime.Config.ManagePoolsInterval}, nil
}

func (r *Reconciler) manage(ctx context.Context, pool *poolboyv1.ResourcePool) error {
	if pool.DeletionTimestamp != nil {
		return r.reconcileDelete(ctx, pool)
	}

	if !controllerutil.ContainsFinalizer(pool, poolboyv1.PoolboyPoolFinalizer()) {
		controllerutil.AddFinalizer(pool, poolboyv1.PoolboyPoolFinalizer())
		return r.Update(ctx, pool)
	}

	poolKey := index.Key{Namespace: pool.Namespace, Name: pool.Name}
	candidates := r.poolCandidates(poolKey)

	if err := r.reapUnhealthy(ctx, pool, &candidates); err != nil {
		return err
	}

	r.publishStatus(ctx, pool, candidates)

	deficit := pool.Spec.MinAvailable - len(candidates)
	if deficit > 0 {
		maxUnready := deficit
		if pool.Spec.MaxUnready != nil {
			unready := countUnready(candidates)
			room := *pool.Spec.MaxUnready - unready
			if room < maxUnready {
				maxUnready = room
			}
		}
		for i := 0; i < maxUnready; i++ {
			if err := r.createOne(ctx, pool); err != nil {
				return err
			}
		}
		return nil
	}

	// SPEC_FULL.md §D.1: a shrunk pool trims its oldest excess unbound
	// handle back down towards minAvailable, one deletion per reconcile
	// so a pool resize never causes a delete storm.
	if deficit < 0 && len(candidates) > 0 {
		return r.deleteOldest(ctx, candidates)
	}

	return nil
}

func (r *Reconciler) poolCandidates(poolKey index.Key) []index.UnboundEntry {
	var out []index.UnboundEntry
	for _, entry := range r.Runtime.Index.UnboundCandidates() {
		if entry.Pool != nil && *entry.Pool == poolKey {
			out = append(out, entry)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreationTimestamp.Before(out[j].CreationTimestamp)
	})
	return out
}

func countUnready(entries []index.UnboundEntry) int {
	n := 0
	for _, e := range entries {
		if e.Ready != nil && !*e.Ready {
			n++
		}
	}
	return n
}

// reapUnhealthy deletes (at most one, the oldest) unhealthy unbound
// handle when the pool opts in, and drops it from the candidate slice so
// the deficit computed afterwards already accounts for its absence.
func (r *Reconciler) reapUnhealthy(ctx context.Context, pool *poolboyv1.ResourcePool, candidates *[]index.UnboundEntry) error {
	if !pool.Spec.DeleteUnhealthyResourceHandles {
		return nil
	}
	for i, entry := range *candidates {
		if entry.Healthy != nil && !*entry.Healthy {
			h := &poolboyv1.ResourceHandle{}
			if err := r.Get(ctx, client.ObjectKey{Namespace: entry.Key.Namespace, Name: entry.Key.Name}, h); err != nil {
				if apierrors.IsNotFound(err) {
					*candidates = append((*candidates)[:i], (*candidates)[i+1:]...)
					return nil
				}
				return err
			}
			if err := r.Delete(ctx, h); err != nil && !apierrors.IsNotFound(err) {
				return err
			}
			*candidates = append((*candidates)[:i], (*candidates)[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *Reconciler) deleteOldest(ctx context.Context, candidates []index.UnboundEntry) error {
	oldest := candidates[0]
	h := &poolboyv1.ResourceHandle{}
	if err := r.Get(ctx, client.ObjectKey{Namespace: oldest.Key.Namespace, Name: oldest.Key.Name}, h); err != nil {
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

func (r *Reconciler) createOne(ctx context.Context, pool *poolboyv1.ResourcePool) error {
	resources, err := r.targetResources(pool)
	if err != nil {
		return perror.NewPermanent(err)
	}
	_, err = handle.CreateForPool(ctx, r.Client, r.Runtime, pool, resources)
	return err
}

// targetResources resolves spec.md §4.5's "produce a target resource
// list the same way a provider-mode claim binds" requirement: when the
// pool names a provider, the projection is recursive (linked providers
// included) exactly as claim.reconcileProviderMode computes it, just
// without a resource_claim in the render context since no claim exists
// yet for a pool-grown handle.
func (r *Reconciler) targetResources(pool *poolboyv1.ResourcePool) ([]handle.TargetResource, error) {
	if pool.Spec.Provider != nil {
		provider, ok := r.Runtime.Providers.Get(pool.Spec.Provider.Name)
		if !ok {
			return nil, perror.Temporaryf(600*time.Second, "ResourceProvider %s not found", pool.Spec.Provider.Name)
		}
		paramValues := map[string]interface{}{}
		if pool.Spec.Provider.ParameterValues != nil {
			decoded, err := value.FromJSON(pool.Spec.Provider.ParameterValues)
			if err != nil {
				return nil, err
			}
			if m, ok := value.AsObject(decoded); ok {
				paramValues = m
			}
		}
		pv, err := ctrlshared.ToGenericValue(provider)
		if err != nil {
			return nil, err
		}
		vars := templating.Vars{ResourceProvider: pv}
		projected, err := providers.ProjectResources(r.Runtime.Providers.Get, ctrlshared.TemplatingStyle, provider, paramValues, "", vars)
		if err != nil {
			return nil, err
		}
		out := make([]handle.TargetResource, len(projected))
		for i, p := range projected {
			out[i] = handle.TargetResource{Name: p.Name, Provider: p.Provider, Template: p.Template}
		}
		return out, nil
	}
	out := make([]handle.TargetResource, 0, len(pool.Spec.Resources))
	for _, res := range pool.Spec.Resources {
		tmpl, err := value.FromJSON(res.Template)
		if err != nil {
			return nil, err
		}
		out = append(out, handle.TargetResource{Name: res.Name, Provider: res.Provider, Template: tmpl})
	}
	return out, nil
}

func (r *Reconciler) publishStatus(ctx context.Context, pool *poolboyv1.ResourcePool, candidates []index.UnboundEntry) {
	statuses := make([]poolboyv1.ResourcePoolHandleStatus, 0, len(candidates))
	ready := 0
	for _, entry := range candidates {
		statuses = append(statuses, poolboyv1.ResourcePoolHandleStatus{
			Name:    entry.Key.Name,
			Healthy: entry.Healthy,
			Ready:   entry.Ready,
		})
		if entry.Ready != nil && *entry.Ready {
			ready++
		}
	}
	patch := client.MergeFrom(pool.DeepCopy())
	pool.Status.ResourceHandles = statuses
	pool.Status.ResourceHandleCount = poolboyv1.ResourceHandleCount{Available: len(candidates), Ready: ready}
	_ = r.Status().Patch(ctx, pool, patch)
}

func (r *Reconciler) reconcileDelete(ctx context.Context, pool *poolboyv1.ResourcePool) error {
	poolKey := index.Key{Namespace: pool.Namespace, Name: pool.Name}
	for _, entry := range r.poolCandidates(poolKey) {
		h := &poolboyv1.ResourceHandle{}
		if err := r.Get(ctx, client.ObjectKey{Namespace: entry.Key.Namespace, Name: entry.Key.Name}, h); err != nil {
			if apierrors.IsNotFound(err) {
				continue
			}
			return err
		}
		if err := r.Delete(ctx, h); err != nil && !apierrors.IsNotFound(err) {
			return err
		}
	}

	if !controllerutil.ContainsFinalizer(pool, poolboyv1.PoolboyPoolFinalizer()) {
		return nil
	}
	controllerutil.RemoveFinalizer(pool, poolboyv1.PoolboyPoolFinalizer())
	return r.Update(ctx, pool)
}

// SetupWithManager wires the reconciler into the manager.
func (r *Reconciler) SetupWithManager(mgr ctrl.Manager) error {
	return ctrl.NewControllerManagedBy(mgr).
		For(&poolboyv1.ResourcePool{}).
		Named("resourcepool").
		WithOptions(controller.Options{MaxConcurrentReconciles: 2}).
		Complete(r)
}
