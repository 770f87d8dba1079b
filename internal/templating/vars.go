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

package templating

import "time"

// omitType is the sentinel type spec.md §4.2 names "omit": an expression
// that evaluates to it is stripped from its enclosing mapping or
// sequence rather than rendered.
type omitType struct{}

// Omit is the one value of omitType, exposed to templates as the `omit`
// variable.
var Omit = omitType{}

// Vars is the variable context a template renders against. Every field
// corresponds to one of the recognised variables in spec.md §4.2. Every
// named field is present in the template's view, holding nil or its zero
// value when unset (only resource_index is left out when nil); reading a
// field of an unset object variable fails the render.
type Vars struct {
	ResourceClaim       interface{} `json:"resource_claim,omitempty"`
	ResourceHandle      interface{} `json:"resource_handle,omitempty"`
	ResourceProvider    interface{} `json:"resource_provider,omitempty"`
	ResourceIndex       *int        `json:"resource_index,omitempty"`
	ResourceName        string      `json:"resource_name,omitempty"`
	ResourceReference   interface{} `json:"resource_reference,omitempty"`
	ResourceReferences  interface{} `json:"resource_references,omitempty"`
	ResourceState       interface{} `json:"resource_state,omitempty"`
	ResourceStates      interface{} `json:"resource_states,omitempty"`
	ResourceTemplate    interface{} `json:"resource_template,omitempty"`
	ResourceTemplates   interface{} `json:"resource_templates,omitempty"`
	RequesterUser       interface{} `json:"requester_user,omitempty"`
	RequesterIdentities interface{} `json:"requester_identities,omitempty"`
	Guid                string      `json:"guid,omitempty"`
	Timestamp           string      `json:"timestamp,omitempty"`
	Now                 time.Time   `json:"-"`
	Extra               map[string]interface{} `json:"-"`
}

// toMap flattens Vars plus its Extra overlay (linked-provider templateVars,
// caller-supplied additions) into the map text/template executes against.
// Extra always wins over the named fields, matching the way linked-
// provider templateVars are injected into the context (spec.md §4.4 step
// 6) to shadow same-named built-ins when a provider author chooses to.
func (v Vars) toMap() map[string]interface{} {
	m := map[string]interface{}{
		"resource_claim":       v.ResourceClaim,
		"resource_handle":      v.ResourceHandle,
		"resource_provider":    v.ResourceProvider,
		"resource_name":        v.ResourceName,
		"resource_reference":   v.ResourceReference,
		"resource_references":  v.ResourceReferences,
		"resource_state":       v.ResourceState,
		"resource_states":      v.ResourceStates,
		"resource_template":    v.ResourceTemplate,
		"resource_templates":   v.ResourceTemplates,
		"requester_user":       v.RequesterUser,
		"requester_identities": v.RequesterIdentities,
		"guid":                 v.Guid,
		"timestamp":            v.Timestamp,
		"now":                  v.Now,
		"datetime":             v.Now,
		"timezone":             v.Now.Location().String(),
		"omit":                 Omit,
	}
	if v.ResourceIndex != nil {
		m["resource_index"] = *v.ResourceIndex
	}
	for k, val := range v.Extra {
		m[k] = val
	}
	return m
}

// ToMap exposes the flattened variable map toMap builds, for callers
// that need to hand the same context to a non-template evaluator (CEL
// validation checks, providers.ReconcileParameters).
func (v Vars) ToMap() map[string]interface{} {
	return v.toMap()
}
