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

package lifespan

import (
	"testing"
	"time"
)

// TestClampEndMaximum reproduces scenario S4 from spec.md §8: a provider
// with lifespan.maximum="8h", a claim requesting now+24h, clamps to
// start+8h.
func TestClampEndMaximum(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := start
	requested := start.Add(24 * time.Hour)
	maximum := 8 * time.Hour
	b := Bounds{Maximum: &maximum}

	result := ClampEnd(b, start, now, &requested)

	want := start.Add(8 * time.Hour)
	if !result.End.Equal(want) {
		t.Errorf("End = %v, want %v", result.End, want)
	}
	if !result.Clamped {
		t.Error("expected Clamped = true")
	}
}

func TestClampEndRelativeMaximum(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := start.Add(2 * time.Hour)
	requested := start.Add(24 * time.Hour)
	relMax := 1 * time.Hour
	b := Bounds{RelativeMaximum: &relMax}

	result := ClampEnd(b, start, now, &requested)

	want := now.Add(1 * time.Hour)
	if !result.End.Equal(want) {
		t.Errorf("End = %v, want %v", result.End, want)
	}
	if !result.Clamped {
		t.Error("expected Clamped = true")
	}
}

func TestClampEndNoRequestUsesDefault(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	def := 4 * time.Hour
	b := Bounds{Default: &def}

	result := ClampEnd(b, start, start, nil)

	want := start.Add(4 * time.Hour)
	if !result.End.Equal(want) {
		t.Errorf("End = %v, want %v", result.End, want)
	}
	if result.Clamped {
		t.Error("expected Clamped = false, default is not a clamp")
	}
}

func TestClampEndWithinBoundsNotClamped(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	requested := start.Add(2 * time.Hour)
	maximum := 8 * time.Hour
	b := Bounds{Maximum: &maximum}

	result := ClampEnd(b, start, start, &requested)

	if !result.End.Equal(requested) {
		t.Errorf("End = %v, want %v", result.End, requested)
	}
	if result.Clamped {
		t.Error("expected Clamped = false")
	}
}

func TestClampEndNoBoundsNoRequest(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	result := ClampEnd(Bounds{}, start, start, nil)
	if !result.End.IsZero() {
		t.Errorf("expected zero End, got %v", result.End)
	}
}

func TestParseBoundsEmptyIsNil(t *testing.T) {
	b, err := ParseBounds("", "", "", "")
	if err != nil {
		t.Fatalf("ParseBounds returned error: %v", err)
	}
	if b.Default != nil || b.Maximum != nil || b.RelativeMaximum != nil || b.Unclaimed != nil {
		t.Error("expected all bounds nil for empty strings")
	}
}

func TestParseBoundsInvalid(t *testing.T) {
	if _, err := ParseBounds("not-a-duration", "", "", ""); err == nil {
		t.Error("expected error for invalid default duration")
	}
}
