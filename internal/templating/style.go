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

// Package templating implements the resource-projection template engine
// described in spec.md §4.2: two delimiter styles (jinja2, legacy) over a
// single text/template-based evaluator, the raw-type decode rule for
// top-level `{{ … | (bool|int|float|object) }}` expressions, and the
// `omit` sentinel that strips a key or element from its enclosing
// mapping or sequence.
package templating

// Style selects the delimiter set a ResourceProvider's
// spec.template.style configures.
type Style string

const (
	// StyleJinja2 uses the standard Go template delimiters "{{" "}}",
	// matching the delimiters Poolboy templates have always used in the
	// majority of providers (named "jinja2" for continuity with the
	// project's Python-era template engine, not because it runs actual
	// Jinja2 syntax).
	StyleJinja2 Style = "jinja2"

	// StyleLegacy uses an alternate, rarely-seen delimiter set for
	// providers carried over from an older template dialect that needed
	// to coexist with literal "{{ }}" in its resource bodies.
	StyleLegacy Style = "legacy"
)

func delimiters(style Style) (left, right string) {
	switch style {
	case StyleLegacy:
		return "{{:", ":}}"
	default:
		return "{{", "}}"
	}
}
