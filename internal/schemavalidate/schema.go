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

// Package schemavalidate validates decoded JSON values against the
// structural OpenAPI v3 schemas carried in ResourceProvider.spec.
// validation.openAPIV3Schema and ResourceClaim parameter schemas, per
// spec.md §4.2/§4.3, and extracts property defaults the way
// original_source/operator/openapi_schema_util.py's
// defaults_from_schema does.
package schemavalidate

import (
	"encoding/json"
	"fmt"
	"strings"

	apiextv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"
	"k8s.io/kube-openapi/pkg/validation/spec"
	"k8s.io/kube-openapi/pkg/validation/strfmt"
	"k8s.io/kube-openapi/pkg/validation/validate"
)

// Errors is a non-empty list of structural validation failures; it
// implements error by joining messages with "; ".
type Errors []string

func (e Errors) Error() string {
	return strings.Join(e, "; ")
}

// toOpenAPISchema converts a CRD-embedded JSONSchemaProps into the
// kube-openapi spec.Schema the validate package operates on. The two
// types share field-for-field JSON encodings (both describe OpenAPI v3
// structural schemas), so a marshal/unmarshal round trip is a safe,
// dependency-light conversion.
func toOpenAPISchema(props *apiextv1.JSONSchemaProps) (*spec.Schema, error) {
	raw, err := json.Marshal(props)
	if err != nil {
		return nil, fmt.Errorf("encoding schema: %w", err)
	}
	var s spec.Schema
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decoding schema: %w", err)
	}
	return &s, nil
}

// Validate checks value against an OpenAPI v3 structural schema,
// returning nil when schema is nil (no constraint configured).
func Validate(schema *apiextv1.JSONSchemaProps, value interface{}) error {
	if schema == nil {
		return nil
	}
	openAPISchema, err := toOpenAPISchema(schema)
	if err != nil {
		return err
	}
	validator := validate.NewSchemaValidator(openAPISchema, nil, "", strfmt.Default)
	result := validator.Validate(value)
	if result == nil || !result.HasErrors() {
		return nil
	}
	errs := make(Errors, 0, len(result.Errors))
	for _, e := range result.Errors {
		errs = append(errs, e.Error())
	}
	return errs
}

// DefaultsFromSchema recursively collects the `default` values declared
// on a schema's properties, preserving the original's behavior of
// nesting object defaults under their parent property rather than
// flattening them.
func DefaultsFromSchema(schema *apiextv1.JSONSchemaProps) map[string]interface{} {
	defaults := map[string]interface{}{}
	if schema == nil {
		return defaults
	}
	for name, propSchema := range schema.Properties {
		propSchema := propSchema
		if propSchema.Default != nil {
			var v interface{}
			if err := json.Unmarshal(propSchema.Default.Raw, &v); err == nil {
				defaults[name] = v
			}
		}
		if propSchema.Type == "object" {
			if nested := DefaultsFromSchema(&propSchema); len(nested) > 0 {
				defaults[name] = nested
			}
		}
	}
	return defaults
}
