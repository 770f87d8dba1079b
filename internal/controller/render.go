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

package controller

import (
	"encoding/json"
	"fmt"
	"strings"

	poolboyv1 "github.com/redhat-cop/poolboy/api/v1"
	"github.com/redhat-cop/poolboy/internal/templating"
)

// ToGenericValue round-trips a typed API object through JSON into the
// decoded-tree shape (internal/value, internal/templating) every
// rendering and matching operation works on. Poolboy's CRD types are
// plain structs with json tags; there is no unstructured conversion
// concern the way there is for arbitrary downstream kinds.
func ToGenericValue(obj interface{}) (interface{}, error) {
	raw, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("encoding %T: %w", obj, err)
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decoding %T: %w", obj, err)
	}
	return v, nil
}

// TemplatingStyle maps a ResourceProvider's declared style onto the
// templating package's Style; the two enumerations share their string
// values by construction (api/v1.TemplateStyle's "jinja2"/"legacy" are
// exactly templating.StyleJinja2/StyleLegacy), an unset value defaults
// to jinja2 the same way TemplateSpec.Style's kubebuilder default does.
func TemplatingStyle(s poolboyv1.TemplateStyle) templating.Style {
	if s == poolboyv1.TemplateStyleLegacy {
		return templating.StyleLegacy
	}
	return templating.StyleJinja2
}

// HandleGUID derives a ResourceHandle's guid template variable from its
// own (server-assigned) name, grounded on the original implementation's
// ResourceHandle.guid property: strip the generateName prefix if the
// name still carries it, else strip a literal "guid-" prefix, else fall
// back to the name's last 5 characters (the length of the apiserver's
// random name suffix).
func HandleGUID(name, generateName string) string {
	if generateName != "" && strings.HasPrefix(name, generateName) {
		return name[len(generateName):]
	}
	if strings.HasPrefix(name, "guid-") {
		return name[len("guid-"):]
	}
	if len(name) > 5 {
		return name[len(name)-5:]
	}
	return name
}
