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

// Package value operates on dynamically-typed JSON trees (nil, bool,
// float64/int64, string, []interface{}, map[string]interface{}) the way
// k8s.io/apimachinery/pkg/apis/meta/v1/unstructured.Unstructured does for
// whole objects. Every resource body, template and provider match/default/
// override document in Poolboy is one of these trees; no downstream schema
// is ever bound at compile time.
package value

import (
	"encoding/json"
	"fmt"

	"dario.cat/mergo"
	apiextv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"
	"k8s.io/apimachinery/pkg/runtime"
)

// FromJSON decodes a CRD-embedded apiextensions JSON blob into a generic
// tree. A nil input decodes to nil without error.
func FromJSON(raw *apiextv1.JSON) (interface{}, error) {
	if raw == nil || len(raw.Raw) == 0 {
		return nil, nil
	}
	var v interface{}
	if err := json.Unmarshal(raw.Raw, &v); err != nil {
		return nil, fmt.Errorf("decoding JSON value: %w", err)
	}
	return v, nil
}

// ToJSON encodes a generic tree back into a CRD-embeddable JSON blob.
func ToJSON(v interface{}) (*apiextv1.JSON, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding JSON value: %w", err)
	}
	return &apiextv1.JSON{Raw: raw}, nil
}

// AsObject asserts that v is a JSON object, treating nil as an empty one.
func AsObject(v interface{}) (map[string]interface{}, bool) {
	if v == nil {
		return map[string]interface{}{}, true
	}
	m, ok := v.(map[string]interface{})
	return m, ok
}

// DeepCopy returns an independent copy of a decoded JSON tree.
func DeepCopy(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		return runtime.DeepCopyJSON(t)
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = DeepCopy(e)
		}
		return out
	default:
		return t
	}
}

// MergeDefaults deep-merges src into dst as low-priority defaults: any
// value already present in dst, at any depth, wins. Used for
// ResourceProvider.spec.default and provider/parameter schema defaults.
func MergeDefaults(dst, src map[string]interface{}) (map[string]interface{}, error) {
	out := runtime.DeepCopyJSON(dst)
	overlay := runtime.DeepCopyJSON(src)
	if err := mergo.Merge(&out, overlay); err != nil {
		return nil, fmt.Errorf("merging defaults: %w", err)
	}
	return out, nil
}

// MergeOverrides deep-merges src into dst as high-priority overrides: src
// wins wherever both define a value, at any depth. Used for
// ResourceProvider.spec.override and claim-template propagation onto a
// handle's stored template.
func MergeOverrides(dst, src map[string]interface{}) (map[string]interface{}, error) {
	out := runtime.DeepCopyJSON(dst)
	overlay := runtime.DeepCopyJSON(src)
	if err := mergo.Merge(&out, overlay, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("merging overrides: %w", err)
	}
	return out, nil
}

// IsSubset reports whether deep_merge(template, subset) == template, i.e.
// every value subset defines also appears, identically, in template. This
// is the "Match" relation from the glossary: a provider is a match for a
// template iff its spec.match is a subset of the template.
func IsSubset(subset, template interface{}) bool {
	switch s := subset.(type) {
	case map[string]interface{}:
		t, ok := template.(map[string]interface{})
		if !ok {
			return false
		}
		for k, sv := range s {
			tv, present := t[k]
			if !present || !IsSubset(sv, tv) {
				return false
			}
		}
		return true
	case []interface{}:
		t, ok := template.([]interface{})
		if !ok || len(t) != len(s) {
			return false
		}
		for i := range s {
			if !IsSubset(s[i], t[i]) {
				return false
			}
		}
		return true
	default:
		return jsonEqual(subset, template)
	}
}

func jsonEqual(a, b interface{}) bool {
	// Numbers decoded from JSON are always float64; direct == comparison
	// is correct for all scalar JSON types including nil.
	return a == b
}

// Equal reports deep structural equality between two decoded JSON trees.
func Equal(a, b interface{}) bool {
	switch av := a.(type) {
	case map[string]interface{}:
		bv, ok := b.(map[string]interface{})
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			bvv, present := bv[k]
			if !present || !Equal(v, bvv) {
				return false
			}
		}
		return true
	case []interface{}:
		bv, ok := b.([]interface{})
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	default:
		return jsonEqual(a, b)
	}
}
