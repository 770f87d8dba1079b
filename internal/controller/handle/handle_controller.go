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
	"time"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/tools/record"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"
	"sigs.k8s.io/controller-runtime/pkg/event"
	"sigs.k8s.io/controller-runtime/pkg/handler"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/source"

	poolboyv1 "github.com/redhat-cop/poolboy/api/v1"
	ctrlshared "github.com/redhat-cop/poolboy/internal/controller"
	"github.com/redhat-cop/poolboy/internal/index"
	"github.com/redhat-cop/poolboy/internal/jsonpatch"
	"github.com/redhat-cop/poolboy/internal/metrics"
	"github.com/redhat-cop/poolboy/internal/perror"
	"github.com/redhat-cop/poolboy/internal/providers"
	"github.com/redhat-cop/poolboy/internal/value"
)

// Reconciler reconciles ResourceHandle objects (spec.md §4.4).
type Reconciler struct {
	client.Client
	Scheme   *runtime.Scheme
	Recorder record.EventRecorder
	Runtime  *ctrlshared.Runtime

	// Trigger, if set, re-queues a handle whenever one of its downstream
	// resources changes out from under it (spec.md §4.4 step 8's
	// reconcile-on-drift). main.go feeds it from the watch dispatcher.
	Trigger <-chan event.GenericEvent
}

// +kubebuilder:rbac:groups=poolboy.gpte.redhat.com,resources=resourcehandles,verbs=get;list;watch;create;update;patch;delete
// +kubebuilder:rbac:groups=poolboy.gpte.redhat.com,resources=resourcehandles/status,verbs=get;update;patch
// +kubebuilder:rbac:groups=poolboy.gpte.redhat.com,resources=resourcehandles/finalizers,verbs=update
// +kubebuilder:rbac:groups=poolboy.gpte.redhat.com,resources=resourceclaims,verbs=get;list;watch;delete

func (r *Reconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	log := logf.FromContext(ctx)
	start := time.Now()
	defer metrics.ObserveRequest("reconcile", "resourcehandle", start)

	h := &poolboyv1.ResourceHandle{}
	if err := r.Get(ctx, req.NamespacedName, h); err != nil {
		if apierrors.IsNotFound(err) {
			r.Runtime.Index.RemoveAll(index.Key{Namespace: req.Namespace, Name: req.Name})
			return ctrl.Result{}, nil
		}
		return ctrl.Result{}, err
	}

	if ignore, ok := h.Labels[r.Runtime.Annotations.Ignore()]; ok && ignore != "" {
		return ctrl.Result{}, nil
	}

	unlock := r.Runtime.HandleLocks.Lock(h.Namespace + "/" + h.Name)
	defer unlock()

	err := r.manage(ctx, h)
	requeueAfter, unclassified := perror.Result(err)
	if unclassified != nil {
		metrics.RecordException("resourcehandle")
		log.Error(unclassified, "reconcile failed", "resourcehandle", req.NamespacedName)
		return ctrl.Result{}, unclassified
	}
	if requeueAfter > 0 {
		return ctrl.Result{RequeueAfter: requeueAfter}, nil
	}
	return ctrl.Result{RequeueAfter: r.Runtime.Config.ManageHandlesInterval}, nil
}

func (r *Reconciler) manage(ctx context.Context, h *poolboyv1.ResourceHandle) error {
	if h.DeletionTimestamp != nil {
		return r.reconcileDelete(ctx, h)
	}

	if !controllerutil.ContainsFinalizer(h, poolboyv1.PoolboyFinalizer()) {
		controllerutil.AddFinalizer(h, poolboyv1.PoolboyFinalizer())
		return r.Update(ctx, h)
	}

	// Step 2: bound but claim gone.
	if h.Spec.ResourceClaim != nil {
		claim := &poolboyv1.ResourceClaim{}
		err := r.Get(ctx, types.NamespacedName{Namespace: h.Spec.ResourceClaim.Namespace, Name: h.Spec.ResourceClaim.Name}, claim)
		if apierrors.IsNotFound(err) {
			return r.Delete(ctx, h)
		} else if err != nil {
			return err
		}
	}

	// Step 3: lifespan end passed.
	if h.Spec.Lifespan != nil && h.Spec.Lifespan.End != nil {
		if end, err := time.Parse(time.RFC3339, *h.Spec.Lifespan.End); err == nil && time.Now().After(end) {
			return r.Delete(ctx, h)
		}
	}

	r.updateIndex(h)

	provider := r.topLevelProvider(h)
	req, _ := r.Runtime.Requester.Resolve(ctx, r.requesterNamespace(h))
	guid := ctrlshared.HandleGUID(h.Name, h.GenerateName)

	statuses := make([]poolboyv1.ResourceHandleResourceStatus, len(h.Spec.Resources))
	copy(statuses, h.Status.Resources)
	for len(statuses) < len(h.Spec.Resources) {
		statuses = append(statuses, poolboyv1.ResourceHandleResourceStatus{})
	}

	changed := false
	for i, res := range h.Spec.Resources {
		rp, _ := r.Runtime.Providers.Get(res.Provider)

		// Step 6: linked-provider gating.
		extra, waitingFor := r.linkedProviderVars(rp, h, statuses)
		if waitingFor != "" {
			if statuses[i].WaitingFor != waitingFor {
				statuses[i].WaitingFor = waitingFor
				changed = true
			}
			continue
		}

		// Step 7: resourceRequiresClaim.
		if rp != nil && rp.Spec.ResourceRequiresClaim && h.Spec.ResourceClaim == nil {
			if statuses[i].WaitingFor != "ResourceClaim" {
				statuses[i].WaitingFor = "ResourceClaim"
				changed = true
			}
			continue
		}

		p, err := projectResource(r.Runtime, h, i, res, rp, guid, req, extra)
		if err != nil {
			return perror.NewPermanent(err)
		}

		var current *unstructured.Unstructured
		if res.Reference != nil {
			obj, found, err := r.Runtime.Watch.Get(ctx, res.Reference.APIVersion, res.Reference.Kind, res.Reference.Namespace, res.Reference.Name)
			if err != nil {
				return err
			}
			if found {
				current = obj
			}
		}

		if current == nil && rp != nil && rp.Spec.DisableCreation {
			if statuses[i].WaitingFor != "ResourceProvider creation disabled" {
				statuses[i].WaitingFor = "ResourceProvider creation disabled"
				changed = true
			}
			continue
		}

		var filters []jsonpatch.UpdateFilter
		if rp != nil {
			for _, f := range rp.Spec.UpdateFilters {
				cf, err := jsonpatch.CompileUpdateFilter(f.PathMatch, f.AllowedOps)
				if err != nil {
					return perror.NewPermanent(err)
				}
				filters = append(filters, cf)
			}
		}

		applied, created, err := applyProjection(ctx, r.Runtime, h, p, current, filters)
		if err != nil {
			return err
		}
		if created {
			h.Spec.Resources[i].Reference = &poolboyv1.Reference{
				APIVersion: p.apiVer,
				Kind:       p.kind,
				Name:       applied.GetName(),
				Namespace:  applied.GetNamespace(),
			}
			changed = true
		}

		stateJSON, err := value.ToJSON(applied.Object)
		if err != nil {
			return err
		}
		healthy, ready := evaluateHealthAndReadiness(rp, applied.Object)
		statuses[i] = poolboyv1.ResourceHandleResourceStatus{
			Name:      res.Name,
			Reference: h.Spec.Resources[i].Reference,
			State:     stateJSON,
			Healthy:   healthy,
			Ready:     ready,
		}
		changed = true
	}

	h.Status.Resources = statuses
	rollup(r.Runtime, h, provider)

	if changed || h.Spec.Resources != nil {
		return r.Status().Update(ctx, h)
	}
	return nil
}

func (r *Reconciler) topLevelProvider(h *poolboyv1.ResourceHandle) *poolboyv1.ResourceProvider {
	if h.Spec.Provider == nil {
		return nil
	}
	p, _ := r.Runtime.Providers.Get(h.Spec.Provider.Name)
	return p
}

func (r *Reconciler) requesterNamespace(h *poolboyv1.ResourceHandle) string {
	if h.Spec.ResourceClaim != nil {
		return h.Spec.ResourceClaim.Namespace
	}
	return ""
}

// linkedProviderVars resolves spec.md §4.4 step 6: for every linked
// provider a resource's own provider declares, find the sibling
// resource it names, check waitFor against its observed state, and on
// success fold its configured templateVars into the returned extra map.
func (r *Reconciler) linkedProviderVars(rp *poolboyv1.ResourceProvider, h *poolboyv1.ResourceHandle, statuses []poolboyv1.ResourceHandleResourceStatus) (map[string]interface{}, string) {
	if rp == nil || len(rp.Spec.LinkedProviders) == 0 {
		return nil, ""
	}
	extra := map[string]interface{}{}
	for _, lp := range rp.Spec.LinkedProviders {
		var siblingState interface{}
		for i, res := range h.Spec.Resources {
			if res.Name == lp.ResourceName && i < len(statuses) && statuses[i].State != nil {
				s, err := value.FromJSON(statuses[i].State)
				if err == nil {
					siblingState = s
				}
			}
		}
		if siblingState == nil {
			return nil, "Linked ResourceProvider"
		}
		satisfied, err := providers.WaitForSatisfied(lp, map[string]interface{}{"resource_state": siblingState})
		if err != nil || !satisfied {
			return nil, "Linked ResourceProvider"
		}
		for k, v := range providers.TemplateVarsFromState(lp, siblingState) {
			extra[k] = v
		}
	}
	return extra, ""
}

func (r *Reconciler) updateIndex(h *poolboyv1.ResourceHandle) {
	key := index.Key{Namespace: h.Namespace, Name: h.Name}
	if h.Spec.ResourceClaim != nil {
		r.Runtime.Index.Bind(index.Key{Namespace: h.Spec.ResourceClaim.Namespace, Name: h.Spec.ResourceClaim.Name}, key)
		return
	}

	entry := index.UnboundEntry{
		Key:               key,
		Healthy:           h.Status.Healthy,
		Ready:             h.Status.Ready,
		CreationTimestamp: h.CreationTimestamp.Time,
	}
	if h.Spec.ResourcePool != nil {
		entry.Pool = &index.Key{Namespace: h.Spec.ResourcePool.Namespace, Name: h.Spec.ResourcePool.Name}
	}
	if h.Spec.Lifespan != nil && h.Spec.Lifespan.End != nil {
		if end, err := time.Parse(time.RFC3339, *h.Spec.Lifespan.End); err == nil {
			entry.LifespanEnd = &end
		}
	}
	for _, res := range h.Spec.Resources {
		tmpl, _ := value.FromJSON(res.Template)
		entry.Resources = append(entry.Resources, index.ResourceSlot{Provider: res.Provider, Name: res.Name, Template: tmpl})
	}
	r.Runtime.Index.PutUnbound(entry)
}

func (r *Reconciler) reconcileDelete(ctx context.Context, h *poolboyv1.ResourceHandle) error {
	for _, res := range h.Spec.Resources {
		if res.Reference == nil {
			continue
		}
		dynClient, _, err := resourceClientFor(r.Runtime, res.Reference.APIVersion, res.Reference.Kind, res.Reference.Namespace)
		if err != nil {
			continue
		}
		if err := dynClient.Delete(ctx, res.Reference.Name, metav1.DeleteOptions{}); err != nil && !apierrors.IsNotFound(err) {
			return err
		}
	}

	if h.Spec.ResourceClaim != nil {
		claim := &poolboyv1.ResourceClaim{}
		key := types.NamespacedName{Namespace: h.Spec.ResourceClaim.Namespace, Name: h.Spec.ResourceClaim.Name}
		if err := r.Get(ctx, key, claim); err == nil {
			if claim.Status.ResourceHandle == nil || !claim.Status.ResourceHandle.Detached {
				if err := r.Delete(ctx, claim); err != nil && !apierrors.IsNotFound(err) {
					return err
				}
			}
		} else if !apierrors.IsNotFound(err) {
			return err
		}
	}

	r.Runtime.Index.RemoveAll(index.Key{Namespace: h.Namespace, Name: h.Name})

	if !controllerutil.ContainsFinalizer(h, poolboyv1.PoolboyFinalizer()) {
		return nil
	}
	controllerutil.RemoveFinalizer(h, poolboyv1.PoolboyFinalizer())
	return r.Update(ctx, h)
}

// SetupWithManager wires the reconciler into the manager. When Trigger is
// set, downstream-resource drift events also enqueue the owning handle.
func (r *Reconciler) SetupWithManager(mgr ctrl.Manager) error {
	bldr := ctrl.NewControllerManagedBy(mgr).
		For(&poolboyv1.ResourceHandle{}).
		Named("resourcehandle").
		WithOptions(controller.Options{MaxConcurrentReconciles: 4})
	if r.Trigger != nil {
		bldr = bldr.WatchesRawSource(source.Channel(r.Trigger, &handler.EnqueueRequestForObject{}))
	}
	return bldr.Complete(r)
}
