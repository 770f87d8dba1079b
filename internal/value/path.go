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

package value

import (
	"fmt"

	"github.com/go-openapi/jsonpointer"
)

// GetByPointer resolves an RFC 6901 JSON pointer ("/status/ready") against
// a decoded JSON tree. Used to extract linkedResourceProvider.templateVars
// from a linked resource's current state.
func GetByPointer(document interface{}, pointer string) (interface{}, error) {
	ptr, err := jsonpointer.New(pointer)
	if err != nil {
		return nil, fmt.Errorf("parsing JSON pointer %q: %w", pointer, err)
	}
	v, _, err := ptr.Get(document)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// GetByPointerOrNil is GetByPointer but reports absence instead of error,
// matching the watcher/handle convention that missing state is absence,
// not failure.
func GetByPointerOrNil(document interface{}, pointer string) interface{} {
	v, err := GetByPointer(document, pointer)
	if err != nil {
		return nil
	}
	return v
}
