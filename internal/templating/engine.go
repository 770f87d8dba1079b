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

package templating

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"text/template"
)

// Engine renders Poolboy resource templates: a decoded JSON tree whose
// string leaves may contain template expressions.
type Engine struct {
	style Style
	vars  map[string]interface{}
}

// New builds an Engine for one render pass. Extra vars (linked-provider
// templateVars, per-call additions) are layered on top of the named
// built-ins via Vars.Extra.
func New(style Style, vars Vars) *Engine {
	return &Engine{style: style, vars: vars.toMap()}
}

// Render walks a decoded JSON tree (as produced by internal/value),
// rendering every string leaf. Maps and sequences whose element or key
// evaluated to the `omit` sentinel have that element dropped. Enabling
// is the caller's responsibility (spec.template.enable gates whether
// Render is even called).
func (e *Engine) Render(node interface{}) (interface{}, error) {
	switch t := node.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, v := range t {
			rv, err := e.Render(v)
			if err != nil {
				return nil, fmt.Errorf("rendering key %q: %w", k, err)
			}
			if _, isOmit := rv.(omitType); isOmit {
				continue
			}
			out[k] = rv
		}
		return out, nil
	case []interface{}:
		out := make([]interface{}, 0, len(t))
		for i, v := range t {
			rv, err := e.Render(v)
			if err != nil {
				return nil, fmt.Errorf("rendering index %d: %w", i, err)
			}
			if _, isOmit := rv.(omitType); isOmit {
				continue
			}
			out = append(out, rv)
		}
		return out, nil
	case string:
		return e.renderString(t)
	default:
		return t, nil
	}
}

var rawFilterSuffix = regexp.MustCompile(`\|\s*(bool|int|float|object)\s*$`)

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// funcs returns the filter set plus one zero-argument function per
// variable, so templates can name variables bare ({{ resource_name }})
// as well as through dot ({{ .resource_name }}).
func (e *Engine) funcs() template.FuncMap {
	fm := funcMapFor()
	for k, v := range e.vars {
		if !identPattern.MatchString(k) {
			continue
		}
		v := v
		fm[k] = func() interface{} { return v }
	}
	return fm
}

func (e *Engine) renderString(s string) (interface{}, error) {
	left, right := delimiters(e.style)
	trimmed := strings.TrimSpace(s)
	if inner, ok := pureExpression(trimmed, left, right); ok {
		raw, err := e.evaluatePure(inner, left, right)
		if err != nil {
			return nil, err
		}
		if _, isOmit := raw.(omitType); isOmit {
			return Omit, nil
		}
		if rawFilterSuffix.MatchString(inner) {
			return raw, nil
		}
		return stringifyValue(raw), nil
	}

	tmpl, err := template.New("poolboy").Delims(left, right).Funcs(e.funcs()).
		Option("missingkey=error").Parse(s)
	if err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, e.vars); err != nil {
		return nil, fmt.Errorf("rendering template: %w", err)
	}
	return buf.String(), nil
}

// pureExpression reports whether s is exactly one template action with
// no surrounding literal text, returning its inner expression text.
func pureExpression(s, left, right string) (string, bool) {
	if !strings.HasPrefix(s, left) || !strings.HasSuffix(s, right) || len(s) < len(left)+len(right) {
		return "", false
	}
	inner := s[len(left) : len(s)-len(right)]
	if strings.Contains(inner, left) || strings.Contains(inner, right) {
		return "", false
	}
	return strings.TrimSpace(inner), true
}

// evaluatePure evaluates a pure expression's pipeline and returns its
// raw, un-stringified result by piping the expression through an
// internal capture function instead of writing text output. This is
// the only way to recover a typed value (bool/int64/float64/map/slice)
// out of text/template, which otherwise always stringifies.
func (e *Engine) evaluatePure(inner, left, right string) (interface{}, error) {
	var captured interface{}
	fm := e.funcs()
	fm["__capture"] = func(v interface{}) string {
		captured = v
		return ""
	}
	source := left + " " + inner + " | __capture" + right
	tmpl, err := template.New("poolboy-pure").Delims(left, right).Funcs(fm).
		Option("missingkey=error").Parse(source)
	if err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}
	if err := tmpl.Execute(&bytes.Buffer{}, e.vars); err != nil {
		return nil, fmt.Errorf("rendering template: %w", err)
	}
	return captured, nil
}

func stringifyValue(v interface{}) string {
	if v == nil {
		return "<no value>"
	}
	return fmt.Sprint(v)
}
