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

import "testing"

func TestEvalBoolTrue(t *testing.T) {
	ok, err := EvalBool(`resource_claim.spec.size > 5`, map[string]interface{}{
		"resource_claim": map[string]interface{}{"spec": map[string]interface{}{"size": 10}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected true")
	}
}

func TestEvalBoolFalse(t *testing.T) {
	ok, err := EvalBool(`resource_claim.spec.size > 50`, map[string]interface{}{
		"resource_claim": map[string]interface{}{"spec": map[string]interface{}{"size": 10}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected false")
	}
}

func TestEvalBoolNonBooleanIsError(t *testing.T) {
	_, err := EvalBool(`resource_claim.spec.size`, map[string]interface{}{
		"resource_claim": map[string]interface{}{"spec": map[string]interface{}{"size": 10}},
	})
	if err == nil {
		t.Fatal("expected an error for a non-boolean result")
	}
}

func TestEvalBoolCompileErrorIsError(t *testing.T) {
	_, err := EvalBool(`this is not valid cel (((`, nil)
	if err == nil {
		t.Fatal("expected a compile error")
	}
}

func TestEvalBoolUsesProgramCache(t *testing.T) {
	expr := `resource_index == 0`
	for i := 0; i < 3; i++ {
		ok, err := EvalBool(expr, map[string]interface{}{"resource_index": 0})
		if err != nil {
			t.Fatalf("unexpected error on iteration %d: %v", i, err)
		}
		if !ok {
			t.Errorf("iteration %d: expected true", i)
		}
	}
}
