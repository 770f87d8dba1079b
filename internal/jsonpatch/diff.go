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

// Package jsonpatch wraps RFC 6902 diff/apply for the handful of
// domain-specific uses Poolboy needs: computing the patch between a
// candidate template and a stored one (provider matching), computing the
// patch to push a rendered resource onto its current downstream state
// (filtered by updateFilters), and a low-level RFC 6902 apply over a
// JSON document. The reconcilers send the computed patches to the API
// server as application/json-patch+json and do not call Apply.
package jsonpatch

import (
	"encoding/json"
	"fmt"
	"regexp"

	evanphx "github.com/evanphx/json-patch/v5"
	gomodules "gomodules.xyz/jsonpatch/v2"
)

// Op is one RFC 6902 operation.
type Op struct {
	Operation string      `json:"op"`
	Path      string      `json:"path"`
	Value     interface{} `json:"value,omitempty"`
}

// Diff computes the RFC 6902 patch that transforms a into b.
func Diff(a, b interface{}) ([]Op, error) {
	aJSON, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("marshaling diff operand a: %w", err)
	}
	bJSON, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("marshaling diff operand b: %w", err)
	}
	ops, err := gomodules.CreatePatch(aJSON, bJSON)
	if err != nil {
		return nil, fmt.Errorf("computing json patch: %w", err)
	}
	out := make([]Op, len(ops))
	for i, op := range ops {
		out[i] = Op{Operation: op.Operation, Path: op.Path, Value: op.Value}
	}
	return out, nil
}

// AddReplaceOnly filters a patch down to add/replace operations, the only
// ops CheckTemplateMatch considers (remove ops indicate the candidate
// template has fields the claim template lacks, which is never
// disqualifying — a handle's template may be a superset of what a new
// claim asks for).
func AddReplaceOnly(ops []Op) []Op {
	out := make([]Op, 0, len(ops))
	for _, op := range ops {
		if op.Operation == "add" || op.Operation == "replace" {
			out = append(out, op)
		}
	}
	return out
}

// FilterIgnored drops operations whose path matches any of the given
// matchIgnore regular expressions.
func FilterIgnored(ops []Op, matchIgnore []string) ([]Op, error) {
	if len(matchIgnore) == 0 {
		return ops, nil
	}
	patterns := make([]*regexp.Regexp, len(matchIgnore))
	for i, p := range matchIgnore {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compiling matchIgnore pattern %q: %w", p, err)
		}
		patterns[i] = re
	}
	out := make([]Op, 0, len(ops))
	for _, op := range ops {
		ignored := false
		for _, re := range patterns {
			if re.MatchString(op.Path) {
				ignored = true
				break
			}
		}
		if !ignored {
			out = append(out, op)
		}
	}
	return out, nil
}

// FilterAllowed keeps only operations permitted by a ResourceProvider's
// updateFilters: a path must match at least one filter's pathMatch regex,
// and if that filter names allowedOps, the operation must be one of them.
// Operations under /metadata/annotations are always allowed, since the
// operator must always be able to refresh its own stamped annotations.
func FilterAllowed(ops []Op, filters []UpdateFilter) []Op {
	annotationPath := regexp.MustCompile(`^/metadata/annotations(/|$)`)
	out := make([]Op, 0, len(ops))
	for _, op := range ops {
		if annotationPath.MatchString(op.Path) {
			out = append(out, op)
			continue
		}
		for _, f := range filters {
			if !f.pathRe.MatchString(op.Path) {
				continue
			}
			if len(f.AllowedOps) == 0 || containsOp(f.AllowedOps, op.Operation) {
				out = append(out, op)
			}
			break
		}
	}
	return out
}

func containsOp(allowed []string, op string) bool {
	for _, a := range allowed {
		if a == op {
			return true
		}
	}
	return false
}

// UpdateFilter is the compiled form of api/v1.UpdateFilter, precompiling
// the pathMatch regex once per reconcile instead of per operation.
type UpdateFilter struct {
	AllowedOps []string
	pathRe     *regexp.Regexp
}

// CompileUpdateFilter compiles one api/v1.UpdateFilter's pathMatch regex.
func CompileUpdateFilter(pathMatch string, allowedOps []string) (UpdateFilter, error) {
	re, err := regexp.Compile(pathMatch)
	if err != nil {
		return UpdateFilter{}, fmt.Errorf("compiling updateFilter pathMatch %q: %w", pathMatch, err)
	}
	return UpdateFilter{AllowedOps: allowedOps, pathRe: re}, nil
}

// Apply applies an RFC 6902 patch to a decoded JSON tree and returns the
// result as a decoded JSON tree, round-tripping through JSON so the
// result's leaf types match what Diff itself would have produced.
func Apply(doc interface{}, ops []Op) (interface{}, error) {
	if len(ops) == 0 {
		return doc, nil
	}
	docJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshaling apply target: %w", err)
	}
	patchJSON, err := json.Marshal(ops)
	if err != nil {
		return nil, fmt.Errorf("marshaling patch operations: %w", err)
	}
	patch, err := evanphx.DecodePatch(patchJSON)
	if err != nil {
		return nil, fmt.Errorf("decoding json patch: %w", err)
	}
	resultJSON, err := patch.Apply(docJSON)
	if err != nil {
		return nil, fmt.Errorf("applying json patch: %w", err)
	}
	var result interface{}
	if err := json.Unmarshal(resultJSON, &result); err != nil {
		return nil, fmt.Errorf("unmarshaling patch result: %w", err)
	}
	return result, nil
}

// Marshal encodes a patch as the application/json-patch+json request body.
func Marshal(ops []Op) ([]byte, error) {
	if ops == nil {
		ops = []Op{}
	}
	return json.Marshal(ops)
}
