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

func TestParseDurationSingleComponent(t *testing.T) {
	cases := map[string]time.Duration{
		"8h":  8 * time.Hour,
		"30d": 30 * 24 * time.Hour,
		"45m": 45 * time.Minute,
		"10s": 10 * time.Second,
	}
	for in, want := range cases {
		got, err := ParseDuration(in)
		if err != nil {
			t.Fatalf("ParseDuration(%q) returned error: %v", in, err)
		}
		if got != want {
			t.Errorf("ParseDuration(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseDurationCompound(t *testing.T) {
	got, err := ParseDuration("1d12h30m")
	if err != nil {
		t.Fatalf("ParseDuration returned error: %v", err)
	}
	want := 24*time.Hour + 12*time.Hour + 30*time.Minute
	if got != want {
		t.Errorf("ParseDuration(\"1d12h30m\") = %v, want %v", got, want)
	}
}

func TestParseDurationInvalid(t *testing.T) {
	for _, in := range []string{"", "8x", "abc", "8"} {
		if _, err := ParseDuration(in); err == nil {
			t.Errorf("ParseDuration(%q) expected error, got nil", in)
		}
	}
}

func TestFormatDurationRoundTrip(t *testing.T) {
	in := "1d12h30m10s"
	d, err := ParseDuration(in)
	if err != nil {
		t.Fatalf("ParseDuration returned error: %v", err)
	}
	out := FormatDuration(d)
	d2, err := ParseDuration(out)
	if err != nil {
		t.Fatalf("ParseDuration(FormatDuration(...)) returned error: %v", err)
	}
	if d != d2 {
		t.Errorf("round trip mismatch: %v != %v", d, d2)
	}
}
