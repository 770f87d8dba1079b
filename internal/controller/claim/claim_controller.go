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
	"errors"
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
	"github.com/redhat-cop/poolboy/internal/metrics"
	"github.com/redhat-cop/poolboy/internal/perror"
)

// errNotYetStarted backs the step-1 not-yet-started requeue; its text
// never surfaces since perror.Result drops Temporary errors to a bare
// delay.
var errNotYetStarted = errors.New("lifespan start is in the future")

// Reconciler reconciles ResourceClaim objects, the sole writer of
// ResourceClaim.status (spec.md §4.3).
type Reconciler struct {
	client.Client
	Scheme   *runtime.Scheme
	Recorder record.EventRecorder
	Runtime  *ctrlshared.Runtime
}

// +kubebuilder:rbac:groups=poolboy.gpte.redhat.com,resources=resourceclaims,verbs=get;list;watch;create;update;patch;delete
// +kubebuilder:rbac:groups=poolboy.gpte.redhat.com,resources=resourceclaims/status,verbs=get;update;patch
// +kubebuilder:rbac:groups=poolboy.gpte.redhat.com,resources=resourceclaims/finalizers,verbs=update
// +kubebuilder:rbac:groups=poolboy.gpte.redhat.com,resources=resourcehandles,verbs=get;list;watch;create;update;patch;delete
// +kubebuilder:rbac:groups=poolboy.gpte.redhat.com,resources=resourceproviders,verbs=get;list;watch

// Reconcile implements the ResourceClaim state machine of spec.md §4.3.
func (r *Reconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	log := logf.FromContext(ctx)
	start := time.Now()
	defer metrics.ObserveRequest("reconcile", "resourceclaim", start)

	claim := &poolboyv1.ResourceClaim{}
	if err := r.Get(ctx, req.NamespacedName, claim); err != nil {
		if apierrors.IsNotFound(err) {
			return ctrl.Result{}, nil
		}
		return ctrl.Result{}, err
	}

	if ignore, ok := claim.Labels[r.Runtime.Annotations.Ignore()]; ok && ignore != "" {
		return ctrl.Result{}, nil
	}

	unlock := r.Runtime.ClaimLocks.Lock(claim.Namespace + "/" + claim.Name)
	defer unlock()

	err := r.manage(ctx, claim)
	requeueAfter, unclassified := perror.Result(err)
	if unclassified != nil {
		metrics.RecordException("resourceclaim")
		log.Error(unclassified, "reconcile failed", "resourceclaim", req.NamespacedName)
		return ctrl.Result{}, unclassified
	}
	if requeueAfter > 0 {
		return ctrl.Result{RequeueAfter: requeueAfter}, nil
	}
	return ctrl.Result{RequeueAfter: r.Runtime.Config.ManageClaimsInterval}, nil
}

// manage is the idempotent state machine body. Adding the finalizer ends
// the call; the later steps carry on within the same call after their
// own writes, and the call ends early only when the claim has not yet
// started, is detached, is waiting on approval, errors, or fails
// validation.
func (r *Reconciler) manage(ctx context.Context, claim *poolboyv1.ResourceClaim) error {
	if claim.DeletionTimestamp != nil {
		return r.reconcileDelete(ctx, claim)
	}

	if !controllerutil.ContainsFinalizer(claim, poolboyv1.PoolboyClaimFinalizer()) {
		controllerutil.AddFinalizer(claim, poolboyv1.PoolboyClaimFinalizer())
		return r.Update(ctx, claim)
	}

	// Step 1: not-yet-started.
	if claim.Spec.Lifespan != nil && claim.Spec.Lifespan.Start != nil {
		if t, err := time.Parse(time.RFC3339, *claim.Spec.Lifespan.Start); err == nil && t.After(time.Now()) {
			return perror.NewTemporary(time.Until(t), errNotYetStarted)
		}
	}

	// Step 2: detached.
	if claim.Status.ResourceHandle != nil && claim.Status.ResourceHandle.Detached {
		return r.reconcileDetached(ctx, claim)
	}

	// Step 3: provider vs resources mode.
	resources, provider, stop, err := r.reconcileMode(ctx, claim)
	if err != nil || stop {
		return err
	}

	// Step 4: initialization.
	if err := r.initializeIfNeeded(ctx, claim); err != nil {
		return err
	}

	// Step 5: validation.
	ok, err := r.validate(ctx, claim, provider)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	// Step 6/7: bind or propagate.
	if claim.Status.ResourceHandle == nil {
		if err := r.bind(ctx, claim, resources); err != nil {
			return err
		}
	} else if err := r.propagate(ctx, claim, resources); err != nil {
		return err
	}

	// Step 8: auto-delete / auto-detach.
	return r.checkAutoActions(ctx, claim, provider)
}

// SetupWithManager wires the reconciler into the manager.
func (r *Reconciler) SetupWithManager(mgr ctrl.Manager) error {
	return ctrl.NewControllerManagedBy(mgr).
		For(&poolboyv1.ResourceClaim{}).
		Named("resourceclaim").
		WithOptions(controller.Options{MaxConcurrentReconciles: 4}).
		Complete(r)
}
