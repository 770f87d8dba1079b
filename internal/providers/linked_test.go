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
	"testing"

	poolboyv1 "github.com/redhat-cop/poolboy/api/v1"
)

func TestLinkedParameterValuesRenders(t *testing.T) {
	lp := poolboyv1.LinkedProvider{
		Name:            "network",
		ParameterValues: jsonOf(t, map[string]interface{}{"zone": "us-east-1"}),
	}
	render := func(v interface{}) (interface{}, error) { return v, nil }

	out, err := LinkedParameterValues(lp, render)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out["zone"] != "us-east-1" {
		t.Errorf("zone = %v, want us-east-1", out["zone"])
	}
}

func TestLinkedParameterValuesEmptyWhenUnset(t *testing.T) {
	out, err := LinkedParameterValues(poolboyv1.LinkedProvider{Name: "x"}, func(v interface{}) (interface{}, error) { return v, nil })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("expected empty map, got %v", out)
	}
}

func TestWaitForSatisfiedUnsetIsTrue(t *testing.T) {
	ok, err := WaitForSatisfied(poolboyv1.LinkedProvider{Name: "x"}, nil)
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v, want true/nil", ok, err)
	}
}

func TestWaitForSatisfiedEvaluatesExpression(t *testing.T) {
	expr := `resource_state.status.ready == true`
	lp := poolboyv1.LinkedProvider{Name: "x", WaitFor: &expr}

	ok, err := WaitForSatisfied(lp, map[string]interface{}{
		"resource_state": map[string]interface{}{"status": map[string]interface{}{"ready": true}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected waitFor to be satisfied")
	}

	ok, err = WaitForSatisfied(lp, map[string]interface{}{
		"resource_state": map[string]interface{}{"status": map[string]interface{}{"ready": false}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected waitFor to not be satisfied")
	}
}

func TestTemplateVarsFromStateExtractsAndSkipsMissing(t *testing.T) {
	lp := poolboyv1.LinkedProvider{
		Name: "network",
		TemplateVars: map[string]string{
			"/status/address": "network_address",
			"/status/missing": "not_present",
		},
	}
	state := map[string]interface{}{"status": map[string]interface{}{"address": "10.0.0.1"}}

	vars := TemplateVarsFromState(lp, state)
	if vars["network_address"] != "10.0.0.1" {
		t.Errorf("network_address = %v, want 10.0.0.1", vars["network_address"])
	}
	if _, ok := vars["not_present"]; ok {
		t.Error("expected missing pointer to be omitted, not errored")
	}
}

func TestCompatibleAPIVersionNoConstraintAlwaysTrue(t *testing.T) {
	ok, err := CompatibleAPIVersion("v2.3.1", "")
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v, want true/nil", ok, err)
	}
}

func TestCompatibleAPIVersionConstraintSatisfied(t *testing.T) {
	ok, err := CompatibleAPIVersion("2.3.1", "^2.0.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected 2.3.1 to satisfy ^2.0.0")
	}
}

func TestCompatibleAPIVersionConstraintViolated(t *testing.T) {
	ok, err := CompatibleAPIVersion("3.0.0", "^2.0.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected 3.0.0 to violate ^2.0.0")
	}
}

func TestCompatibleAPIVersionNonSemverObservedIsCompatible(t *testing.T) {
	ok, err := CompatibleAPIVersion("not-a-version", "^2.0.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected a non-semver observed version to be treated as compatible")
	}
}
