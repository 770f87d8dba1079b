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

package schemavalidate

import (
	"encoding/json"
	"testing"

	apiextv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"
)

func mustJSON(t *testing.T, v interface{}) *apiextv1.JSON {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshaling: %v", err)
	}
	return &apiextv1.JSON{Raw: raw}
}

func TestValidateNilSchemaAlwaysPasses(t *testing.T) {
	if err := Validate(nil, map[string]interface{}{"anything": true}); err != nil {
		t.Errorf("Validate(nil, ...) = %v, want nil", err)
	}
}

func TestValidateRequiredProperty(t *testing.T) {
	schema := &apiextv1.JSONSchemaProps{
		Type:     "object",
		Required: []string{"name"},
		Properties: map[string]apiextv1.JSONSchemaProps{
			"name": {Type: "string"},
		},
	}

	if err := Validate(schema, map[string]interface{}{"name": "db"}); err != nil {
		t.Errorf("Validate with required field present returned error: %v", err)
	}

	if err := Validate(schema, map[string]interface{}{}); err == nil {
		t.Error("expected error for missing required field")
	}
}

func TestValidateTypeMismatch(t *testing.T) {
	schema := &apiextv1.JSONSchemaProps{
		Type: "object",
		Properties: map[string]apiextv1.JSONSchemaProps{
			"count": {Type: "integer"},
		},
	}
	if err := Validate(schema, map[string]interface{}{"count": "not-a-number"}); err == nil {
		t.Error("expected type-mismatch error")
	}
}

func TestDefaultsFromSchemaFlat(t *testing.T) {
	schema := &apiextv1.JSONSchemaProps{
		Type: "object",
		Properties: map[string]apiextv1.JSONSchemaProps{
			"foo": {Type: "string", Default: mustJSON(t, "bar")},
		},
	}
	defaults := DefaultsFromSchema(schema)
	if defaults["foo"] != "bar" {
		t.Errorf("defaults[foo] = %#v, want \"bar\"", defaults["foo"])
	}
}

func TestDefaultsFromSchemaNested(t *testing.T) {
	schema := &apiextv1.JSONSchemaProps{
		Type: "object",
		Properties: map[string]apiextv1.JSONSchemaProps{
			"foo": {
				Type: "object",
				Properties: map[string]apiextv1.JSONSchemaProps{
					"bar": {Type: "string", Default: mustJSON(t, "a")},
				},
			},
		},
	}
	defaults := DefaultsFromSchema(schema)
	foo, ok := defaults["foo"].(map[string]interface{})
	if !ok {
		t.Fatalf("defaults[foo] = %#v, want nested map", defaults["foo"])
	}
	if foo["bar"] != "a" {
		t.Errorf("defaults[foo][bar] = %#v, want \"a\"", foo["bar"])
	}
}

func TestDefaultsFromSchemaEmpty(t *testing.T) {
	schema := &apiextv1.JSONSchemaProps{Type: "object", Properties: map[string]apiextv1.JSONSchemaProps{}}
	defaults := DefaultsFromSchema(schema)
	if len(defaults) != 0 {
		t.Errorf("expected empty defaults, got %#v", defaults)
	}
}
