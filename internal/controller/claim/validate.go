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

	"sigs.k8s.io/controller-runtime/pkg/client"

	poolboyv1 "github.com/redhat-cop/poolboy/api/v1"
	"github.com/redhat-cop/poolboy/internal/providers"
	"github.com/redhat-cop/poolboy/internal/value"
)

// validate runs spec.md §4.3 step 5. It returns ok=false (without error)
// when validation failed and was recorded in status, meaning the caller
// must exit without binding.
func (r *Reconciler) validate(ctx context.Context, claim *poolboyv1.ResourceClaim, provider *poolboyv1.ResourceProvider) (ok bool, err error) {
	if provider != nil {
		return r.validateWithProvider(ctx, claim, provider)
	}
	return r.validateResources(ctx, claim)
}

func (r *Reconciler) validateWithProvider(ctx context.Context, claim *poolboyv1.ResourceClaim, provider *poolboyv1.ResourceProvider) (bool, error) {
	vars, err := r.baseVars(claim, provider, nil)
	if err != nil {
		return false, err
	}

	supplied := map[string]interface{}{}
	if claim.Spec.Provider.ParameterValues != nil {
		if v, err := value.FromJSON(claim.Spec.Provider.ParameterValues); err == nil {
			if m, ok := value.AsObject(v); ok {
				supplied = m
			}
		}
	}
	previous := map[string]interface{}{}
	if claim.Status.Provider != nil && claim.Status.Provider.ParameterValues != nil {
		if v, err := value.FromJSON(claim.Status.Provider.ParameterValues); err == nil {
			if m, ok := value.AsObject(v); ok {
				previous = m
			}
		}
	}

	renderFn := func(expr string) (interface{}, error) {
		return render(provider.Spec.Template.Style, vars, expr)
	}
	reconciled, paramErrs := providers.ReconcileParameters(provider.Spec.Parameters, supplied, previous, renderFn, vars.ToMap())

	var validationErrors []string
	for name, msg := range paramErrs {
		validationErrors = append(validationErrors, fmt.Sprintf("%s: %s", name, msg))
	}

	reconciledJSON, err := value.ToJSON(reconciled)
	if err != nil {
		return false, err
	}

	patch := client.MergeFrom(claim.DeepCopy())
	if claim.Status.Provider == nil {
		claim.Status.Provider = &poolboyv1.ProviderStatus{Name: provider.Name}
	}
	claim.Status.Provider.ParameterValues = reconciledJSON
	claim.Status.Provider.ValidationErrors = validationErrors
	if err := r.Status().Patch(ctx, claim, patch); err != nil {
		return false, err
	}

	return len(validationErrors) == 0, nil
}

func (r *Reconciler) validateResources(ctx context.Context, claim *poolboyv1.ResourceClaim) (bool, error) {
	if len(claim.Status.Resources) != len(claim.Spec.Resources) {
		return false, nil
	}

	patch := client.MergeFrom(claim.DeepCopy())
	changed := false
	ok := true

	for i, res := range claim.Spec.Resources {
		provider, found := r.Runtime.Providers.Get(claim.Status.Resources[i].Provider)
		if !found {
			continue
		}

		tmpl, err := value.FromJSON(res.Template)
		if err != nil {
			return false, err
		}
		vars, err := r.baseVars(claim, provider, nil)
		if err != nil {
			return false, err
		}

		verr := providers.ValidateTemplate(provider.Spec.Validation, tmpl, vars.ToMap())
		if verr != nil {
			if claim.Status.Resources[i].ValidationError != verr.Error() {
				claim.Status.Resources[i].ValidationError = verr.Error()
				changed = true
			}
			ok = false
			continue
		}
		if claim.Status.Resources[i].ValidationError != "" {
			claim.Status.Resources[i].ValidationError = ""
			changed = true
		}
	}

	if changed {
		if err := r.Status().Patch(ctx, claim, patch); err != nil {
			return false, err
		}
	}
	return ok, nil
}
