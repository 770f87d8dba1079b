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

package perror

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestTemporaryRoundTrip(t *testing.T) {
	err := Temporaryf(60*time.Second, "provider %q not yet registered", "foo")
	temp, ok := AsTemporary(err)
	if !ok {
		t.Fatal("expected AsTemporary to succeed")
	}
	if temp.Delay != 60*time.Second {
		t.Errorf("Delay = %v, want 60s", temp.Delay)
	}
	if temp.Error() != `provider "foo" not yet registered` {
		t.Errorf("Error() = %q", temp.Error())
	}
}

func TestPermanentRoundTrip(t *testing.T) {
	err := Permanentf("spec.provider and spec.resources are both set")
	_, ok := AsPermanent(err)
	if !ok {
		t.Fatal("expected AsPermanent to succeed")
	}
}

func TestTemporaryWrappedByFmtErrorfStillClassifies(t *testing.T) {
	base := NewTemporary(120*time.Second, errors.New("handle not found"))
	wrapped := fmt.Errorf("binding claim: %w", base)
	temp, ok := AsTemporary(wrapped)
	if !ok {
		t.Fatal("expected wrapped error to still classify as Temporary")
	}
	if temp.Delay != 120*time.Second {
		t.Errorf("Delay = %v, want 120s", temp.Delay)
	}
}

func TestResultClassification(t *testing.T) {
	if delay, err := Result(nil); delay != 0 || err != nil {
		t.Errorf("Result(nil) = (%v, %v), want (0, nil)", delay, err)
	}

	temp := NewTemporary(600*time.Second, errors.New("boom"))
	if delay, err := Result(temp); delay != 600*time.Second || err != nil {
		t.Errorf("Result(temporary) = (%v, %v), want (600s, nil)", delay, err)
	}

	perm := NewPermanent(errors.New("bad config"))
	if delay, err := Result(perm); delay != 0 || err != nil {
		t.Errorf("Result(permanent) = (%v, %v), want (0, nil)", delay, err)
	}

	unclassified := errors.New("unexpected")
	if delay, err := Result(unclassified); delay != 0 || err != unclassified {
		t.Errorf("Result(unclassified) = (%v, %v), want (0, unclassified)", delay, err)
	}
}
