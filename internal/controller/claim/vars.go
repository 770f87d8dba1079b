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

// Package claim implements the ResourceClaim reconciler (spec.md §4.3):
// provider assignment, template defaulting, validation, binding to a
// ResourceHandle and propagation of subsequent template and lifespan
// changes.
package claim

import (
	"time"

	poolboyv1 "github.com/redhat-cop/poolboy/api/v1"
	ctrlshared "github.com/redhat-cop/poolboy/internal/controller"
	"github.com/redhat-cop/poolboy/internal/templating"
)

// baseVars builds the variable context every claim-side render (provider
// parameter defaults, validation checks, auto-delete/detach conditions)
// shares. Handle- and resource-specific fields are layered on by callers
// that need them.
func (r *Reconciler) baseVars(claim *poolboyv1.ResourceClaim, provider *poolboyv1.ResourceProvider, handle *poolboyv1.ResourceHandle) (templating.Vars, error) {
	claimValue, err := ctrlshared.ToGenericValue(claim)
	if err != nil {
		return templating.Vars{}, err
	}
	vars := templating.Vars{
		ResourceClaim: claimValue,
		Now:           time.Now(),
	}
	if provider != nil {
		pv, err := ctrlshared.ToGenericValue(provider)
		if err != nil {
			return templating.Vars{}, err
		}
		vars.ResourceProvider = pv
	}
	if handle != nil {
		hv, err := ctrlshared.ToGenericValue(handle)
		if err != nil {
			return templating.Vars{}, err
		}
		vars.ResourceHandle = hv
		vars.Guid = ctrlshared.HandleGUID(handle.Name, handle.GenerateName)
	}
	return vars, nil
}

func render(style poolboyv1.TemplateStyle, vars templating.Vars, expr string) (interface{}, error) {
	engine := templating.New(ctrlshared.TemplatingStyle(style), vars)
	return engine.Render(expr)
}
