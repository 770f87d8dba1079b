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

// Package lifespan parses the duration-string grammar Poolboy uses for
// every lifespan bound (spec.lifespan.{default,maximum,relativeMaximum,
// unclaimed}) and computes the clamped lifespan-end for claims and
// handles.
package lifespan

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var componentPattern = regexp.MustCompile(`(?i)^([0-9]+)(d|h|m|s)$`)

// ParseDuration parses a duration string built from one or more
// <number><unit> components concatenated with no separator (e.g. "8h",
// "30d", "1d12h30m"), where unit is one of d (day), h (hour), m (minute),
// s (second). This is the fixed grammar referenced throughout the
// lifespan and templating surfaces; unlike time.ParseDuration it
// supports day components and requires no fractional numbers.
func ParseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, fmt.Errorf("empty duration string")
	}
	var total time.Duration
	rest := s
	matched := false
	for len(rest) > 0 {
		loc := findNextUnitIndex(rest)
		if loc < 0 {
			return 0, fmt.Errorf("invalid duration %q: no unit found", s)
		}
		component := rest[:loc+1]
		m := componentPattern.FindStringSubmatch(component)
		if m == nil {
			return 0, fmt.Errorf("invalid duration %q: bad component %q", s, component)
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q: %w", s, err)
		}
		switch m[2] {
		case "d", "D":
			total += time.Duration(n) * 24 * time.Hour
		case "h", "H":
			total += time.Duration(n) * time.Hour
		case "m":
			total += time.Duration(n) * time.Minute
		case "M":
			total += time.Duration(n) * time.Minute
		case "s", "S":
			total += time.Duration(n) * time.Second
		}
		matched = true
		rest = rest[loc+1:]
	}
	if !matched {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return total, nil
}

func findNextUnitIndex(s string) int {
	for i, r := range s {
		switch r {
		case 'd', 'D', 'h', 'H', 'm', 'M', 's', 'S':
			return i
		}
	}
	return -1
}

// FormatDuration renders a time.Duration back into the grammar
// ParseDuration accepts, using the largest unit that divides it evenly
// per component (days, then hours, then minutes, then seconds).
func FormatDuration(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour
	hours := d / time.Hour
	d -= hours * time.Hour
	mins := d / time.Minute
	d -= mins * time.Minute
	secs := d / time.Second

	out := ""
	if days > 0 {
		out += fmt.Sprintf("%dd", days)
	}
	if hours > 0 {
		out += fmt.Sprintf("%dh", hours)
	}
	if mins > 0 {
		out += fmt.Sprintf("%dm", mins)
	}
	if secs > 0 || out == "" {
		out += fmt.Sprintf("%ds", secs)
	}
	return out
}
