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
	"sync"

	"github.com/google/cel-go/cel"
)

// celEnv is the single shared CEL environment every named check,
// autoDelete.when, autoDetach.when and linkedProvider waitFor
// expression compiles against. Its variable set is the union of every
// site's context so one environment serves all of them; a site that
// doesn't populate a given top-level variable simply never references
// it.
var celEnv = sync.OnceValues(func() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("resource_claim", cel.DynType),
		cel.Variable("resource_handle", cel.DynType),
		cel.Variable("resource_provider", cel.DynType),
		cel.Variable("resource_index", cel.DynType),
		cel.Variable("resource_name", cel.DynType),
		cel.Variable("resource_reference", cel.DynType),
		cel.Variable("resource_references", cel.DynType),
		cel.Variable("resource_state", cel.DynType),
		cel.Variable("resource_states", cel.DynType),
		cel.Variable("parameter_values", cel.DynType),
		cel.Variable("parameter_value", cel.DynType),
		cel.Variable("requester_user", cel.DynType),
		cel.Variable("requester_identities", cel.DynType),
	)
})

// celProgramCache avoids re-parsing and re-checking the same expression
// string on every reconcile; ResourceProvider specs are reconciled far
// more often than they're edited.
var (
	celProgramMu    sync.Mutex
	celProgramCache = map[string]cel.Program{}
)

func compileCheck(expression string) (cel.Program, error) {
	celProgramMu.Lock()
	if prog, ok := celProgramCache[expression]; ok {
		celProgramMu.Unlock()
		return prog, nil
	}
	celProgramMu.Unlock()

	env, err := celEnv()
	if err != nil {
		return nil, fmt.Errorf("building CEL environment: %w", err)
	}
	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compiling expression %q: %w", expression, issues.Err())
	}
	prog, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("building program for %q: %w", expression, err)
	}

	celProgramMu.Lock()
	celProgramCache[expression] = prog
	celProgramMu.Unlock()
	return prog, nil
}

// EvalBool evaluates a CEL predicate against vars and coerces the
// result to bool. Used for spec.validation.checks, autoDelete.when,
// autoDetach.when and linkedProvider.waitFor.
func EvalBool(expression string, vars map[string]interface{}) (bool, error) {
	prog, err := compileCheck(expression)
	if err != nil {
		return false, err
	}
	out, _, err := prog.Eval(vars)
	if err != nil {
		return false, fmt.Errorf("evaluating %q: %w", expression, err)
	}
	b, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression %q did not evaluate to a boolean", expression)
	}
	return b, nil
}
