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
	"github.com/redhat-cop/poolboy/internal/schemavalidate"
	"github.com/redhat-cop/poolboy/internal/value"
)

// ValidateTemplate runs a ResourceProvider's spec.validation (structural
// schema, then named CEL checks in order) against a rendered claim
// template. The first failure short-circuits the remaining checks, the
// same order the schema-then-checks pipeline in spec.md §4.2/§4.3 step 5
// implies: a structurally invalid document can't usefully be evaluated
// by a predicate expecting well-formed fields.
func ValidateTemplate(spec *poolboyv1.ValidationSpec, template interface{}, vars map[string]interface{}) error {
	if spec == nil {
		return nil
	}
	if spec.OpenAPIV3Schema != nil {
		if err := schemavalidate.Validate(spec.OpenAPIV3Schema, template); err != nil {
			return err
		}
	}
	return runChecks(spec.Checks, vars)
}

func runChecks(checks []poolboyv1.ValidationCheck, vars map[string]interface{}) error {
	for _, check := range checks {
		ok, err := EvalBool(check.Expression, vars)
		if err != nil {
			return fmt.Errorf("validation check %q: %w", check.Name, err)
		}
		if !ok {
			if check.Message != "" {
				return fmt.Errorf("%s", check.Message)
			}
			return fmt.Errorf("validation check %q failed", check.Name)
		}
	}
	return nil
}

// ReconcileParameters applies defaults, enforces allowUpdate and runs
// schema/check validation for every declared parameter, mirroring
// spec.md §4.3 step 5's provider-mode parameter_values handling.
// supplied holds the caller-provided parameter_values (possibly
// missing keys); previous holds the values already accepted on a prior
// reconcile (nil on first reconcile); render evaluates a
// defaultTemplate expression or a freshly-supplied value's template
// expressions (see SPEC_FULL.md §D.3 for the render-then-compare
// allowUpdate rule) and must be supplied by the caller since only the
// caller's handle/claim reconciler has the full template variable
// context.
func ReconcileParameters(
	params []poolboyv1.ParameterSpec,
	supplied map[string]interface{},
	previous map[string]interface{},
	render func(expr string) (interface{}, error),
	vars map[string]interface{},
) (map[string]interface{}, map[string]string) {
	out := make(map[string]interface{}, len(params))
	errs := map[string]string{}

	for _, p := range params {
		v, isSupplied := supplied[p.Name]
		switch {
		case isSupplied:
			// use as-is
		case p.Default != nil:
			dv, err := value.FromJSON(p.Default)
			if err != nil {
				errs[p.Name] = fmt.Sprintf("decoding default: %v", err)
				continue
			}
			v = dv
		case p.DefaultTemplate != nil:
			dv, err := render(*p.DefaultTemplate)
			if err != nil {
				errs[p.Name] = fmt.Sprintf("rendering defaultTemplate: %v", err)
				continue
			}
			v = dv
		case p.Required:
			errs[p.Name] = "required parameter not supplied"
			continue
		default:
			continue
		}

		if prev, had := previous[p.Name]; had && !p.AllowUpdate {
			// SPEC_FULL.md §D.3: a changed-looking value is still
			// permitted if it renders to the same value as what was
			// already accepted.
			same := value.Equal(prev, v)
			if s, ok := v.(string); ok && !same {
				if rendered, err := render(s); err == nil {
					same = value.Equal(prev, rendered)
				}
			}
			if !same {
				errs[p.Name] = "parameter value cannot be updated"
				continue
			}
		}

		if p.Schema != nil {
			if err := schemavalidate.Validate(p.Schema, v); err != nil {
				errs[p.Name] = err.Error()
				continue
			}
		}
		paramVars := map[string]interface{}{"parameter_value": v}
		for k, vv := range vars {
			paramVars[k] = vv
		}
		if err := runChecks(p.Validation, paramVars); err != nil {
			errs[p.Name] = err.Error()
			continue
		}

		out[p.Name] = v
	}

	return out, errs
}
