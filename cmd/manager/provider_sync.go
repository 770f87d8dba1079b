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

package main

import (
	"context"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller"

	poolboyv1 "github.com/redhat-cop/poolboy/api/v1"
	"github.com/redhat-cop/poolboy/internal/providers"
)

// providerSyncer keeps the in-memory providers.Registry (spec.md §4.2)
// current by forwarding every ResourceProvider add/update/delete event
// into Upsert/Remove. It writes nothing back to the API server.
type providerSyncer struct {
	client.Client
	Registry *providers.Registry
}

func (s *providerSyncer) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	p := &poolboyv1.ResourceProvider{}
	if err := s.Get(ctx, req.NamespacedName, p); err != nil {
		if apierrors.IsNotFound(err) {
			s.Registry.Remove(req.Name)
			return ctrl.Result{}, nil
		}
		return ctrl.Result{}, err
	}
	s.Registry.Upsert(p)
	return ctrl.Result{}, nil
}

func (s *providerSyncer) SetupWithManager(mgr ctrl.Manager) error {
	return ctrl.NewControllerManagedBy(mgr).
		For(&poolboyv1.ResourceProvider{}).
		Named("resourceprovider-registry-sync").
		WithOptions(controller.Options{MaxConcurrentReconciles: 1}).
		Complete(s)
}
