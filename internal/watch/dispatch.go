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

package watch

import "k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

// EventType classifies one dispatched change.
type EventType string

const (
	// Preload marks an object surfaced by the initial list phase rather
	// than a live watch event.
	Preload EventType = "PRELOAD"
	Added   EventType = "ADDED"
	Updated EventType = "MODIFIED"
	Deleted EventType = "DELETED"
)

// Event is one observed change to a watched object.
type Event struct {
	APIVersion string
	Kind       string
	Namespace  string
	Type       EventType
	Object     *unstructured.Unstructured
}

// Dispatcher routes resource events to the reconcilers that care about
// them. Handle returns quickly; it must never block on an API call,
// since it runs on the watch task's own goroutine (spec.md §5: no
// suspension point inside a dispatch).
type Dispatcher interface {
	Handle(Event)
}

// DispatcherFunc adapts a plain function to Dispatcher.
type DispatcherFunc func(Event)

func (f DispatcherFunc) Handle(e Event) { f(e) }

// Annotations reports whether obj carries the resource-handle
// annotation that identifies the handle owning it, and the handle's
// namespaced name if so. domain is the operator's configured API group
// (config.Config.OperatorDomain), the annotation prefix.
func Annotations(obj *unstructured.Unstructured, domain string) (handleNamespace, handleName string, ok bool) {
	ann := obj.GetAnnotations()
	name := ann[domain+"/resource-handle-name"]
	if name == "" {
		return "", "", false
	}
	return ann[domain+"/resource-handle-namespace"], name, true
}

// ClaimAnnotations reports the bound claim's namespaced name from a
// resource's stamped annotations, if the handle that owns it is itself
// bound and not in detached state (detachment state is determined by
// the caller, since it's recorded on the handle, not the resource).
func ClaimAnnotations(obj *unstructured.Unstructured, domain string) (claimNamespace, claimName string, ok bool) {
	ann := obj.GetAnnotations()
	name := ann[domain+"/resource-claim-name"]
	if name == "" {
		return "", "", false
	}
	return ann[domain+"/resource-claim-namespace"], name, true
}
