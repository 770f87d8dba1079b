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
	"fmt"
	"time"

	"sigs.k8s.io/controller-runtime/pkg/client"

	poolboyv1 "github.com/redhat-cop/poolboy/api/v1"
	ctrlshared "github.com/redhat-cop/poolboy/internal/controller"
	"github.com/redhat-cop/poolboy/internal/controller/handle"
	"github.com/redhat-cop/poolboy/internal/perror"
	"github.com/redhat-cop/poolboy/internal/providers"
	"github.com/redhat-cop/poolboy/internal/value"
)

// reconcileMode resolves spec.md §4.3 step 3: exactly one of provider
// mode or resources mode, returning the target resource list the rest
// of the reconcile works from. stop is true when the claim must wait
// (pending approval) without a classified error.
func (r *Reconciler) reconcileMode(ctx context.Context, claim *poolboyv1.ResourceClaim) (resources []handle.TargetResource, provider *poolboyv1.ResourceProvider, stop bool, err error) {
	hasProvider := claim.Spec.Provider != nil
	hasResources := len(claim.Spec.Resources) > 0

	if hasProvider && hasResources {
		return nil, nil, false, perror.Permanentf("claim %s/%s sets both spec.provider and spec.resources", claim.Namespace, claim.Name)
	}

	if hasProvider {
		return r.reconcileProviderMode(ctx, claim)
	}
	return r.reconcileResourcesMode(ctx, claim)
}

func (r *Reconciler) reconcileProviderMode(ctx context.Context, claim *poolboyv1.ResourceClaim) ([]handle.TargetResource, *poolboyv1.ResourceProvider, bool, error) {
	if claim.Status.Provider == nil {
		patch := client.MergeFrom(claim.DeepCopy())
		claim.Status.Provider = &poolboyv1.ProviderStatus{Name: claim.Spec.Provider.Name}
		if err := r.Status().Patch(ctx, claim, patch); err != nil {
			return nil, nil, false, err
		}
	} else if claim.Status.Provider.Name != claim.Spec.Provider.Name {
		return nil, nil, false, perror.Permanentf("claim %s/%s may not change spec.provider.name from %q to %q", claim.Namespace, claim.Name, claim.Status.Provider.Name, claim.Spec.Provider.Name)
	}

	provider, ok := r.Runtime.Providers.Get(claim.Spec.Provider.Name)
	if !ok {
		return nil, nil, false, perror.Temporaryf(600*time.Second, "ResourceProvider %s not found", claim.Spec.Provider.Name)
	}

	if err := r.copyProviderAnnotationsAndLabels(ctx, claim, provider); err != nil {
		return nil, nil, false, err
	}

	if provider.Spec.Approval != nil && provider.Spec.Approval.Required {
		if claim.Status.Approval == nil {
			patch := client.MergeFrom(claim.DeepCopy())
			message := ""
			if provider.Spec.Approval.Message != nil {
				vars, err := r.baseVars(claim, provider, nil)
				if err != nil {
					return nil, nil, false, err
				}
				rendered, err := render(provider.Spec.Template.Style, vars, *provider.Spec.Approval.Message)
				if err != nil {
					return nil, nil, false, perror.NewPermanent(err)
				}
				message = fmt.Sprint(rendered)
			}
			claim.Status.Approval = &poolboyv1.ApprovalStatus{State: "pending", Message: message}
			if err := r.Status().Patch(ctx, claim, patch); err != nil {
				return nil, nil, false, err
			}
			return nil, nil, true, nil
		}
		if claim.Status.Approval.State != "approved" {
			return nil, nil, true, nil
		}
	}

	// spec.md §4.3 step 6: ask the provider to produce the resource
	// list, recursively including linked providers, before binding.
	paramValues, err := claimParameterValues(claim)
	if err != nil {
		return nil, nil, false, err
	}
	vars, err := r.baseVars(claim, provider, nil)
	if err != nil {
		return nil, nil, false, err
	}
	projected, err := providers.ProjectResources(r.Runtime.Providers.Get, ctrlshared.TemplatingStyle, provider, paramValues, "", vars)
	if err != nil {
		return nil, nil, false, perror.NewPermanent(err)
	}
	resources := make([]handle.TargetResource, len(projected))
	for i, p := range projected {
		resources[i] = handle.TargetResource{Name: p.Name, Provider: p.Provider, Template: p.Template}
	}
	return resources, provider, false, nil
}

// claimParameterValues resolves the parameter values a provider-mode
// claim renders its projection against: the already-reconciled
// status.provider.parameterValues once validate (spec.md §4.3 step 5)
// has run, falling back to the raw spec-supplied values on the first
// pass through the state machine, before that status field exists.
func claimParameterValues(claim *poolboyv1.ResourceClaim) (map[string]interface{}, error) {
	raw := claim.Spec.Provider.ParameterValues
	if claim.Status.Provider != nil && claim.Status.Provider.ParameterValues != nil {
		raw = claim.Status.Provider.ParameterValues
	}
	if raw == nil {
		return map[string]interface{}{}, nil
	}
	decoded, err := value.FromJSON(raw)
	if err != nil {
		return nil, perror.NewPermanent(err)
	}
	m, ok := value.AsObject(decoded)
	if !ok {
		return map[string]interface{}{}, nil
	}
	return m, nil
}

func (r *Reconciler) copyProviderAnnotationsAndLabels(ctx context.Context, claim *poolboyv1.ResourceClaim, provider *poolboyv1.ResourceProvider) error {
	if len(provider.Spec.ResourceClaimAnnotations) == 0 && len(provider.Spec.ResourceClaimLabels) == 0 {
		return nil
	}
	changed := false
	patch := client.MergeFrom(claim.DeepCopy())
	if len(provider.Spec.ResourceClaimAnnotations) > 0 {
		if claim.Annotations == nil {
			claim.Annotations = map[string]string{}
		}
		for k, v := range provider.Spec.ResourceClaimAnnotations {
			if _, exists := claim.Annotations[k]; !exists {
				claim.Annotations[k] = v
				changed = true
			}
		}
	}
	if len(provider.Spec.ResourceClaimLabels) > 0 {
		if claim.Labels == nil {
			claim.Labels = map[string]string{}
		}
		for k, v := range provider.Spec.ResourceClaimLabels {
			if _, exists := claim.Labels[k]; !exists {
				claim.Labels[k] = v
				changed = true
			}
		}
	}
	if !changed {
		return nil
	}
	return r.Patch(ctx, claim, patch)
}

func (r *Reconciler) reconcileResourcesMode(ctx context.Context, claim *poolboyv1.ResourceClaim) ([]handle.TargetResource, *poolboyv1.ResourceProvider, bool, error) {
	if len(claim.Status.Resources) != len(claim.Spec.Resources) {
		if err := r.assignResourceProviders(ctx, claim); err != nil {
			return nil, nil, false, err
		}
	}

	resources := make([]handle.TargetResource, len(claim.Spec.Resources))
	for i, res := range claim.Spec.Resources {
		providerName := ""
		if i < len(claim.Status.Resources) {
			providerName = claim.Status.Resources[i].Provider
		}
		tmpl, err := value.FromJSON(res.Template)
		if err != nil {
			return nil, nil, false, perror.NewPermanent(err)
		}
		resources[i] = handle.TargetResource{Name: res.Name, Provider: providerName, Template: tmpl}
	}
	return resources, nil, false, nil
}

// assignResourceProviders resolves and persists status.resources[i].
// provider for every entry still missing one, either from the resource's
// explicit provider name or by template match (spec.md §4.3 step 3).
func (r *Reconciler) assignResourceProviders(ctx context.Context, claim *poolboyv1.ResourceClaim) error {
	status := make([]poolboyv1.ResourceClaimResourceStatus, len(claim.Spec.Resources))
	for i, res := range claim.Spec.Resources {
		var providerName string
		switch {
		case i < len(claim.Status.Resources) && claim.Status.Resources[i].Provider != "":
			providerName = claim.Status.Resources[i].Provider
		case res.Provider != nil && *res.Provider != "":
			if _, ok := r.Runtime.Providers.Get(*res.Provider); !ok {
				return perror.Temporaryf(600*time.Second, "ResourceProvider %s not found", *res.Provider)
			}
			providerName = *res.Provider
		case res.Template != nil:
			tmpl, err := value.FromJSON(res.Template)
			if err != nil {
				return perror.NewPermanent(err)
			}
			p, err := r.Runtime.Providers.FindByTemplateMatch(tmpl)
			if err != nil {
				return err
			}
			providerName = p.Name
		default:
			return perror.Permanentf("claim %s/%s resource %q requires either provider or template", claim.Namespace, claim.Name, res.Name)
		}

		status[i] = poolboyv1.ResourceClaimResourceStatus{
			Name:     res.Name,
			Provider: providerName,
		}
		if i < len(claim.Status.Resources) {
			status[i].State = claim.Status.Resources[i].State
		}
	}

	patch := client.MergeFrom(claim.DeepCopy())
	claim.Status.Resources = status
	return r.Status().Patch(ctx, claim, patch)
}
