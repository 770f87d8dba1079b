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

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	poolboyv1 "github.com/redhat-cop/poolboy/api/v1"
	"github.com/redhat-cop/poolboy/internal/annotations"
	ctrlshared "github.com/redhat-cop/poolboy/internal/controller"
	"github.com/redhat-cop/poolboy/internal/requester"
	"github.com/redhat-cop/poolboy/internal/templating"
	"github.com/redhat-cop/poolboy/internal/value"
)

// projection is the computed downstream definition for one resource
// slot, the unstructured object a create or update patch is built from.
type projection struct {
	index    int
	name     string
	provider string
	object   *unstructured.Unstructured
	apiVer   string
	kind     string
}

// projectResource runs spec.md §4.4 reconcile step 5: render the stored
// template, deep-merge any provider override, fill in identity fields,
// and stamp the standard annotation set.
func projectResource(rt *ctrlshared.Runtime, h *poolboyv1.ResourceHandle, index int, res poolboyv1.ResourceHandleResource, provider *poolboyv1.ResourceProvider, guid string, req requester.Info, extra map[string]interface{}) (*projection, error) {
	tmpl, err := value.FromJSON(res.Template)
	if err != nil {
		return nil, fmt.Errorf("decoding resource %d template: %w", index, err)
	}

	style := poolboyv1.TemplateStyleJinja2
	if provider != nil {
		style = provider.Spec.Template.Style
	}

	handleValue, err := ctrlshared.ToGenericValue(h)
	if err != nil {
		return nil, err
	}
	idx := index
	vars := templating.Vars{
		ResourceHandle:      handleValue,
		ResourceIndex:       &idx,
		ResourceName:        res.Name,
		Guid:                guid,
		RequesterUser:       req.UserName,
		RequesterIdentities: req.Identities,
		Extra:               extra,
	}
	if provider != nil {
		pv, err := ctrlshared.ToGenericValue(provider)
		if err != nil {
			return nil, err
		}
		vars.ResourceProvider = pv
	}

	rendered := tmpl
	if provider == nil || provider.Spec.Template.Enable == nil || *provider.Spec.Template.Enable {
		engine := templating.New(ctrlshared.TemplatingStyle(style), vars)
		rendered, err = engine.Render(tmpl)
		if err != nil {
			return nil, fmt.Errorf("rendering resource %d template: %w", index, err)
		}
	}

	renderedObj, ok := value.AsObject(rendered)
	if !ok {
		return nil, fmt.Errorf("resource %d template did not render to an object", index)
	}

	if provider != nil && provider.Spec.Override != nil {
		overrideVal, err := value.FromJSON(provider.Spec.Override)
		if err != nil {
			return nil, err
		}
		vars.ResourceTemplate = renderedObj
		overrideEngine := templating.New(ctrlshared.TemplatingStyle(style), vars)
		renderedOverride, err := overrideEngine.Render(overrideVal)
		if err != nil {
			return nil, fmt.Errorf("rendering resource %d override: %w", index, err)
		}
		overrideObj, _ := value.AsObject(renderedOverride)
		merged, err := value.MergeOverrides(renderedObj, overrideObj)
		if err != nil {
			return nil, err
		}
		renderedObj = merged
	}

	metadata, _ := value.AsObject(renderedObj["metadata"])
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	if _, hasName := metadata["name"]; !hasName {
		if _, hasGenerate := metadata["generateName"]; !hasGenerate {
			metadata["generateName"] = fmt.Sprintf("guid%d-", index)
		}
	}
	renderedObj["metadata"] = metadata

	if res.Reference != nil {
		if renderedObj["apiVersion"] != res.Reference.APIVersion || renderedObj["kind"] != res.Reference.Kind {
			return nil, fmt.Errorf("resource %d may not change apiVersion/kind once created", index)
		}
		metadata["name"] = res.Reference.Name
		if res.Reference.Namespace != "" {
			metadata["namespace"] = res.Reference.Namespace
		}
	}

	apiVersion, _ := renderedObj["apiVersion"].(string)
	kind, _ := renderedObj["kind"].(string)
	if apiVersion == "" || kind == "" {
		return nil, fmt.Errorf("resource %d template missing apiVersion/kind", index)
	}

	stamp := annotations.Stamp{
		HandleName:      h.Name,
		HandleNamespace: h.Namespace,
		HandleUID:       string(h.UID),
		ResourceIndex:   index,
	}
	if provider != nil {
		stamp.ProviderName = provider.Name
		stamp.ProviderNamespace = provider.Namespace
	}
	if h.Spec.ResourceClaim != nil {
		stamp.ClaimName = h.Spec.ResourceClaim.Name
		stamp.ClaimNamespace = h.Spec.ResourceClaim.Namespace
	}
	if h.Spec.ResourcePool != nil {
		stamp.PoolName = h.Spec.ResourcePool.Name
		stamp.PoolNamespace = h.Spec.ResourcePool.Namespace
	}
	stamp.RequesterUser = req.UserName
	stamp.RequesterEmail = req.PrimaryIdentity().Email
	stamp.RequesterName = req.PrimaryIdentity().Name
	stamp.RequesterPreferredUsername = req.PrimaryIdentity().PreferredUsername

	ann, _ := value.AsObject(metadata["annotations"])
	annStrings := map[string]string{}
	for k, v := range ann {
		if s, ok := v.(string); ok {
			annStrings[k] = s
		}
	}
	annStrings = rt.Annotations.Apply(annStrings, stamp)
	annIface := make(map[string]interface{}, len(annStrings))
	for k, v := range annStrings {
		annIface[k] = v
	}
	metadata["annotations"] = annIface

	obj := &unstructured.Unstructured{Object: renderedObj}
	return &projection{index: index, name: res.Name, provider: res.Provider, object: obj, apiVer: apiVersion, kind: kind}, nil
}
