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

import "time"

// Bounds is a decoded api/v1.LifespanSpec: the duration-string fields
// parsed once into time.Durations, nil when the field was unset.
type Bounds struct {
	Default         *time.Duration
	Maximum         *time.Duration
	RelativeMaximum *time.Duration
	Unclaimed       *time.Duration
}

// ParseBounds decodes the four duration-string fields of a
// api/v1.LifespanSpec. Empty strings are treated as unset.
func ParseBounds(defaultStr, maximumStr, relativeMaximumStr, unclaimedStr string) (Bounds, error) {
	var b Bounds
	var err error
	if b.Default, err = parseOptional(defaultStr); err != nil {
		return Bounds{}, err
	}
	if b.Maximum, err = parseOptional(maximumStr); err != nil {
		return Bounds{}, err
	}
	if b.RelativeMaximum, err = parseOptional(relativeMaximumStr); err != nil {
		return Bounds{}, err
	}
	if b.Unclaimed, err = parseOptional(unclaimedStr); err != nil {
		return Bounds{}, err
	}
	return b, nil
}

func parseOptional(s string) (*time.Duration, error) {
	if s == "" {
		return nil, nil
	}
	d, err := ParseDuration(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// EndResult is the outcome of clamping a requested lifespan end.
type EndResult struct {
	End     time.Time
	Clamped bool
}

// ClampEnd computes the effective lifespan end given the provider's
// bounds, the claim/handle's start time, and an optionally requested
// end (spec.lifespan.end). It implements the three-way minimum from
// spec.md: min(requested, start+maximum, now+relativeMaximum), falling
// back to start+default when no end was requested at all. now is always
// the evaluation time, not the start time: relativeMaximum bounds from
// "now", not from when the resource started, so a long-lived handle's
// ceiling keeps receding forward with every reconcile that recomputes
// it.
func ClampEnd(b Bounds, start, now time.Time, requested *time.Time) EndResult {
	end := start
	haveEnd := false
	if requested != nil {
		end = *requested
		haveEnd = true
	} else if b.Default != nil {
		end = start.Add(*b.Default)
		haveEnd = true
	}
	if !haveEnd {
		// No requested end and no default: nothing to clamp against,
		// the resource simply has no expiry.
		return EndResult{End: time.Time{}, Clamped: false}
	}

	clamped := false
	if b.Maximum != nil {
		if max := start.Add(*b.Maximum); max.Before(end) {
			end = max
			clamped = true
		}
	}
	if b.RelativeMaximum != nil {
		if max := now.Add(*b.RelativeMaximum); max.Before(end) {
			end = max
			clamped = true
		}
	}
	return EndResult{End: end, Clamped: clamped}
}
