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

package providers

import (
	"fmt"

	poolboyv1 "github.com/redhat-cop/poolboy/api/v1"
	"github.com/redhat-cop/poolboy/internal/templating"
	"github.com/redhat-cop/poolboy/internal/value"
)

// ProjectedResource is one entry of a ResourceProvider's resource
// projection: a name/provider pair plus the fully rendered resource body
// a ResourceHandle slot should be created or matched against.
type ProjectedResource struct {
	Name     string
	Provider string
	Template interface{}
}

// ProjectResources walks provider mode's binding step (spec.md §4.3 step
// 6, "ask the provider to produce the resource list, recursively
// including linked providers"), grounded on the original operator's
// ResourceProvider.get_resources/processed_template: every
// linkedProviders entry is expanded depth first, ahead of the provider's
// own entry, and a provider contributes an entry only if it actually
// defines a resource body (template.definition or override). Each
// linked provider's parameterValues are rendered against the parent's
// vars before recursing, and parameterValues are merged into vars as
// flat top-level keys (vars.Extra) at every level, exactly as
// processed_template's vars_ does.
func ProjectResources(get func(name string) (*poolboyv1.ResourceProvider, bool), toStyle func(poolboyv1.TemplateStyle) templating.Style, provider *poolboyv1.ResourceProvider, parameterValues map[string]interface{}, resourceName string, vars templating.Vars) ([]ProjectedResource, error) {
	vars.Extra = parameterValues
	engine := templating.New(toStyle(provider.Spec.Template.Style), vars)

	var out []ProjectedResource
	for _, lp := range provider.Spec.LinkedProviders {
		linked, ok := get(lp.Name)
		if !ok {
			return nil, fmt.Errorf("linked ResourceProvider %s not found", lp.Name)
		}
		linkedParams, err := LinkedParameterValues(lp, engine.Render)
		if err != nil {
			return nil, err
		}
		linkedName := lp.ResourceName
		if linkedName == "" {
			linkedName = lp.Name
		}
		linkedResources, err := ProjectResources(get, toStyle, linked, linkedParams, linkedName, vars)
		if err != nil {
			return nil, err
		}
		out = append(out, linkedResources...)
	}

	if provider.Spec.Template.Definition != nil || provider.Spec.Override != nil {
		tmpl, err := value.FromJSON(provider.Spec.Template.Definition)
		if err != nil {
			return nil, fmt.Errorf("decoding ResourceProvider %s template: %w", provider.Name, err)
		}
		if tmpl == nil {
			tmpl = map[string]interface{}{}
		}
		rendered := tmpl
		if provider.Spec.Template.Enable == nil || *provider.Spec.Template.Enable {
			rendered, err = engine.Render(tmpl)
			if err != nil {
				return nil, fmt.Errorf("rendering ResourceProvider %s template: %w", provider.Name, err)
			}
		}
		out = append(out, ProjectedResource{Name: resourceName, Provider: provider.Name, Template: rendered})
	}

	return out, nil
}
