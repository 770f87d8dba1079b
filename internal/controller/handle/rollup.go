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
	"fmt"

	poolboyv1 "github.com/redhat-cop/poolboy/api/v1"
	ctrlshared "github.com/redhat-cop/poolboy/internal/controller"
	"github.com/redhat-cop/poolboy/internal/providers"
	"github.com/redhat-cop/poolboy/internal/templating"
)

// evaluateHealthAndReadiness runs a resource's provider-declared
// healthCheck/readinessCheck expressions against its observed state
// (spec.md §4.4 step 11's per-resource inputs).
func evaluateHealthAndReadiness(provider *poolboyv1.ResourceProvider, state interface{}) (healthy, ready *bool) {
	if provider == nil {
		return nil, nil
	}
	vars := map[string]interface{}{"resource_state": state}
	if provider.Spec.HealthCheck != nil {
		if b, err := providers.EvalBool(*provider.Spec.HealthCheck, vars); err == nil {
			healthy = &b
		}
	}
	if provider.Spec.ReadinessCheck != nil {
		if b, err := providers.EvalBool(*provider.Spec.ReadinessCheck, vars); err == nil {
			ready = &b
		}
	}
	return healthy, ready
}

// rollup recomputes status.healthy, status.ready and status.summary from
// the per-resource statuses (spec.md §4.4 step 11). A handle is healthy
// and ready only if every resource that declares the respective check
// reports true; resources with no check configured are treated as
// healthy/ready by default.
func rollup(rt *ctrlshared.Runtime, h *poolboyv1.ResourceHandle, provider *poolboyv1.ResourceProvider) {
	healthy := true
	ready := true
	for _, rs := range h.Status.Resources {
		if rs.Healthy != nil && !*rs.Healthy {
			healthy = false
		}
		if rs.Ready != nil && !*rs.Ready {
			ready = false
		}
	}
	h.Status.Healthy = &healthy
	h.Status.Ready = &ready

	if provider != nil && provider.Spec.StatusSummaryTemplate != nil {
		handleValue, err := ctrlshared.ToGenericValue(h)
		if err == nil {
			vars := templating.Vars{ResourceHandle: handleValue}
			engine := templating.New(ctrlshared.TemplatingStyle(provider.Spec.Template.Style), vars)
			if rendered, err := engine.Render(*provider.Spec.StatusSummaryTemplate); err == nil {
				if s, ok := rendered.(string); ok {
					h.Status.Summary = s
					return
				}
			}
		}
	}

	h.Status.Summary = fmt.Sprintf("healthy=%t ready=%t", healthy, ready)
}
