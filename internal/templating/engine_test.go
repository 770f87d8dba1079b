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
	"testing"
	"time"
)

func TestRenderStringConcatenation(t *testing.T) {
	e := New(StyleJinja2, Vars{ResourceName: "db"})
	out, err := e.Render("name-{{ resource_name }}-suffix")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if out != "name-db-suffix" {
		t.Errorf("Render = %q, want %q", out, "name-db-suffix")
	}
}

func TestRenderRawBool(t *testing.T) {
	e := New(StyleJinja2, Vars{})
	out, err := e.Render("{{ true | bool }}")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if b, ok := out.(bool); !ok || !b {
		t.Errorf("Render = %#v, want bool true", out)
	}
}

func TestRenderRawInt(t *testing.T) {
	idx := 3
	e := New(StyleJinja2, Vars{ResourceIndex: &idx})
	out, err := e.Render("{{ resource_index | int }}")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if n, ok := out.(int64); !ok || n != 3 {
		t.Errorf("Render = %#v, want int64 3", out)
	}
}

func TestRenderNonFilteredExpressionIsString(t *testing.T) {
	idx := 3
	e := New(StyleJinja2, Vars{ResourceIndex: &idx})
	out, err := e.Render("{{ resource_index }}")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if out != "3" {
		t.Errorf("Render = %#v, want string \"3\"", out)
	}
}

func TestRenderOmitStripsMapKey(t *testing.T) {
	e := New(StyleJinja2, Vars{})
	doc := map[string]interface{}{
		"keep":  "value",
		"strip": "{{ omit }}",
	}
	out, err := e.Render(doc)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	m := out.(map[string]interface{})
	if _, present := m["strip"]; present {
		t.Error("expected \"strip\" key to be removed")
	}
	if m["keep"] != "value" {
		t.Errorf("keep = %#v, want \"value\"", m["keep"])
	}
}

func TestRenderOmitStripsSequenceElement(t *testing.T) {
	e := New(StyleJinja2, Vars{})
	doc := []interface{}{"a", "{{ omit }}", "b"}
	out, err := e.Render(doc)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	s := out.([]interface{})
	if len(s) != 2 || s[0] != "a" || s[1] != "b" {
		t.Errorf("Render = %#v, want [a b]", s)
	}
}

func TestRenderUnknownVariableFails(t *testing.T) {
	e := New(StyleJinja2, Vars{})
	if _, err := e.Render("{{ nonexistent_variable }}"); err == nil {
		t.Fatal("expected error for unknown variable")
	}
}

func TestRenderLegacyDelimiters(t *testing.T) {
	e := New(StyleLegacy, Vars{ResourceName: "db"})
	out, err := e.Render("{{: resource_name :}}")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if out != "db" {
		t.Errorf("Render = %#v, want \"db\"", out)
	}
	// Jinja2-style delimiters are left untouched literal text under the
	// legacy style, since they are not the configured action delimiter.
	literal, err := e.Render("{{ resource_name }}")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if literal != "{{ resource_name }}" {
		t.Errorf("Render = %#v, want literal passthrough", literal)
	}
}

func TestRenderParseTimeIntervalFilter(t *testing.T) {
	e := New(StyleJinja2, Vars{})
	out, err := e.Render("{{ \"1h30m\" | parse_time_interval | object }}")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	d, ok := out.(time.Duration)
	if !ok || d != 90*time.Minute {
		t.Errorf("Render = %#v, want 90m duration", out)
	}
}

func TestRenderToJSONFilter(t *testing.T) {
	e := New(StyleJinja2, Vars{Extra: map[string]interface{}{
		"obj": map[string]interface{}{"a": 1.0},
	}})
	out, err := e.Render("{{ obj | to_json }}")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if out != `{"a":1}` {
		t.Errorf("Render = %#v, want {\"a\":1}", out)
	}
}
