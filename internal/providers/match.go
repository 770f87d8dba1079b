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
	"encoding/json"

	poolboyv1 "github.com/redhat-cop/poolboy/api/v1"
	"github.com/redhat-cop/poolboy/internal/jsonpatch"
	"github.com/redhat-cop/poolboy/internal/value"
)

func decodeMatch(p *poolboyv1.ResourceProvider) (interface{}, error) {
	return value.FromJSON(p.Spec.Match)
}

// matchCacheKey produces a stable singleflight dedup key for a
// candidate template: its canonical JSON encoding. Map key order in
// encoding/json is already sorted, so structurally identical templates
// always produce byte-identical keys.
func matchCacheKey(template interface{}) (string, error) {
	raw, err := json.Marshal(template)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// isSubsetIgnoring reports whether match is a subset of template once
// paths named by matchIgnore regexes are disregarded. Most providers
// set no matchIgnore, in which case this is exactly value.IsSubset;
// when matchIgnore is non-empty, a plain subset check would reject a
// template that differs only at an ignored path, so the check instead
// diffs match against template and confirms every remaining add/replace
// op is on an ignored path.
func isSubsetIgnoring(match, template interface{}, matchIgnore []string) bool {
	if len(matchIgnore) == 0 {
		return value.IsSubset(match, template)
	}
	ops, err := jsonpatch.Diff(match, template)
	if err != nil {
		return false
	}
	ops = jsonpatch.AddReplaceOnly(ops)
	ops, err = jsonpatch.FilterIgnored(ops, matchIgnore)
	if err != nil {
		return false
	}
	return len(ops) == 0
}

// CheckTemplateMatch computes the RFC 6902 diff of claimTemplate
// relative to handleTemplate, keeping only add/replace ops and
// dropping those whose path matches any matchIgnore regex. If any op
// remains the templates do not match (ok=false); otherwise the
// remaining (possibly empty) diff is returned, whose length is the
// match score handle selection sorts by (spec.md §4.2, §4.4 step 3-4).
func CheckTemplateMatch(handleTemplate, claimTemplate interface{}, matchIgnore []string) (diff []jsonpatch.Op, ok bool, err error) {
	ops, err := jsonpatch.Diff(handleTemplate, claimTemplate)
	if err != nil {
		return nil, false, err
	}
	ops = jsonpatch.AddReplaceOnly(ops)
	ops, err = jsonpatch.FilterIgnored(ops, matchIgnore)
	if err != nil {
		return nil, false, err
	}
	if len(ops) > 0 {
		return nil, false, nil
	}
	return ops, true, nil
}
