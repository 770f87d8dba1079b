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

	"github.com/Masterminds/semver/v3"

	poolboyv1 "github.com/redhat-cop/poolboy/api/v1"
	"github.com/redhat-cop/poolboy/internal/value"
)

// LinkedParameterValues renders a LinkedProvider's parameterValues
// against the canonical variable context decided in SPEC_FULL.md §E.1:
// the parent provider's render context (the projecting claim's variables,
// or the pool's, plus the parent's parameter values), never a synthetic
// claim for the linked resource; the link's own resource_index and
// resource_name are not added. render evaluates one template expression
// and must already be closed over that context.
func LinkedParameterValues(lp poolboyv1.LinkedProvider, render func(interface{}) (interface{}, error)) (map[string]interface{}, error) {
	if lp.ParameterValues == nil {
		return map[string]interface{}{}, nil
	}
	decoded, err := value.FromJSON(lp.ParameterValues)
	if err != nil {
		return nil, fmt.Errorf("decoding linkedProvider %q parameterValues: %w", lp.Name, err)
	}
	rendered, err := render(decoded)
	if err != nil {
		return nil, fmt.Errorf("rendering linkedProvider %q parameterValues: %w", lp.Name, err)
	}
	obj, ok := value.AsObject(rendered)
	if !ok {
		return nil, fmt.Errorf("linkedProvider %q parameterValues did not render to an object", lp.Name)
	}
	return obj, nil
}

// WaitForSatisfied reports whether a LinkedProvider's waitFor
// expression is truthy against vars, or true when unset (nothing to
// wait for). Per spec.md §4.4 step 6, a false result means the
// dependent resource is skipped this reconcile and recorded as
// waiting on "Linked ResourceProvider".
func WaitForSatisfied(lp poolboyv1.LinkedProvider, vars map[string]interface{}) (bool, error) {
	if lp.WaitFor == nil || *lp.WaitFor == "" {
		return true, nil
	}
	return EvalBool(*lp.WaitFor, vars)
}

// TemplateVarsFromState extracts the variables a LinkedProvider's
// templateVars declares from a linked resource's current downstream
// state, keyed by JSON pointer. A pointer that resolves to nothing is
// silently omitted rather than erroring — the linked resource may not
// have populated that field yet, which is exactly the condition
// waitFor exists to gate on.
func TemplateVarsFromState(lp poolboyv1.LinkedProvider, state interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(lp.TemplateVars))
	for pointer, name := range lp.TemplateVars {
		if v, err := value.GetByPointer(state, pointer); err == nil {
			out[name] = v
		}
	}
	return out
}

// CompatibleAPIVersion reports whether a linked ResourceProvider's
// observed apiVersion satisfies a caret-style semver constraint
// recorded against it (e.g. a provider upgrade that bumps a major
// version should not silently re-link against incompatible providers).
// Providers that don't version themselves with semver (the common
// case) are always compatible; this check only fires when both sides
// parse as valid semver.
func CompatibleAPIVersion(observed, constraint string) (bool, error) {
	if constraint == "" {
		return true, nil
	}
	v, err := semver.NewVersion(observed)
	if err != nil {
		return true, nil
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("parsing apiVersion constraint %q: %w", constraint, err)
	}
	return c.Check(v), nil
}
