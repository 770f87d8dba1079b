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

package v1

import (
	apiextv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// TemplateStyle selects the expression-delimiter set used when rendering a
// provider's templates.
// +kubebuilder:validation:Enum=jinja2;legacy
type TemplateStyle string

const (
	TemplateStyleJinja2 TemplateStyle = "jinja2"
	TemplateStyleLegacy TemplateStyle = "legacy"
)

// TemplateSpec configures how a ResourceProvider projects a handle's
// resource entry into a downstream resource body.
type TemplateSpec struct {
	// Definition is the resource body to project, with template
	// expressions to be evaluated if Enable is true.
	// +optional
	Definition *apiextv1.JSON `json:"definition,omitempty"`
	// Enable gates expression evaluation of Definition.
	// +optional
	// +kubebuilder:default=true
	Enable *bool `json:"enable,omitempty"`
	// Style selects the delimiter/filter set used to evaluate expressions.
	// +optional
	// +kubebuilder:default=jinja2
	Style TemplateStyle `json:"style,omitempty"`
}

// LifespanSpec bounds how long a claim or handle may live.
type LifespanSpec struct {
	// Start is the earliest time a claim becomes active; unset means
	// immediately.
	// +optional
	Start *string `json:"start,omitempty"`
	// End is the point in time a claim or handle expires.
	// +optional
	End *string `json:"end,omitempty"`
	// Default is the duration applied when no End is requested.
	// +optional
	Default *string `json:"default,omitempty"`
	// Maximum bounds End relative to the claim/handle creation time.
	// +optional
	Maximum *string `json:"maximum,omitempty"`
	// RelativeMaximum bounds End relative to "now" at each reconcile.
	// +optional
	RelativeMaximum *string `json:"relativeMaximum,omitempty"`
	// Unclaimed is the lifespan given to pool-created handles before they
	// are bound to a claim.
	// +optional
	Unclaimed *string `json:"unclaimed,omitempty"`
}

// ValidationCheck is a single named predicate expression evaluated against
// a candidate template plus context.
type ValidationCheck struct {
	// Name identifies the check for error reporting.
	Name string `json:"name"`
	// Expression is a CEL predicate; it must evaluate to a boolean.
	Expression string `json:"expression"`
	// Message overrides the default validation-failure message.
	// +optional
	Message string `json:"message,omitempty"`
}

// ValidationSpec bundles a structural schema and named predicate checks.
type ValidationSpec struct {
	// OpenAPIV3Schema is a structural schema claim templates must satisfy.
	// +optional
	OpenAPIV3Schema *apiextv1.JSONSchemaProps `json:"openAPIV3Schema,omitempty"`
	// Checks are named CEL predicates evaluated in addition to the schema.
	// +optional
	Checks []ValidationCheck `json:"checks,omitempty"`
}

// ParameterSpec declares one provider parameter.
type ParameterSpec struct {
	// Name of the parameter, referenced from templates as
	// resource_provider.parameters.<name> style lookups via parameterValues.
	Name string `json:"name"`
	// Required parameters must be supplied or defaulted before binding.
	// +optional
	Required bool `json:"required,omitempty"`
	// AllowUpdate permits changing the parameter value after it has been
	// accepted once.
	// +optional
	AllowUpdate bool `json:"allowUpdate,omitempty"`
	// Default is a literal default value.
	// +optional
	Default *apiextv1.JSON `json:"default,omitempty"`
	// DefaultTemplate is a template expression producing the default
	// value; evaluated only if Default is unset.
	// +optional
	DefaultTemplate *string `json:"defaultTemplate,omitempty"`
	// Schema structurally validates the supplied or defaulted value.
	// +optional
	Schema *apiextv1.JSONSchemaProps `json:"schema,omitempty"`
	// Validation lists named checks run against the parameter value.
	// +optional
	Validation []ValidationCheck `json:"validation,omitempty"`
}

// LinkedProvider expresses an ordered dependency between resources of a
// single claim that are produced by two different providers.
type LinkedProvider struct {
	// Name of the linked ResourceProvider.
	Name string `json:"name"`
	// ResourceName is the logical resource-list entry name this link
	// produces, used to correlate status.resources entries.
	// +optional
	ResourceName string `json:"resourceName,omitempty"`
	// ParameterValues seeds the linked provider's parameters; values may
	// contain template expressions (see SPEC_FULL.md §E.1 for the
	// canonical variable context used to render them).
	// +optional
	ParameterValues *apiextv1.JSON `json:"parameterValues,omitempty"`
	// WaitFor is a CEL expression; the linked resource is not
	// created until it evaluates true.
	// +optional
	WaitFor *string `json:"waitFor,omitempty"`
	// TemplateVars maps JSON-pointer paths in the linked resource's
	// current state to variable names injected into this resource's
	// template context.
	// +optional
	TemplateVars map[string]string `json:"templateVars,omitempty"`
}

// UpdateFilter restricts which changes may be patched into an
// already-created downstream resource.
type UpdateFilter struct {
	// PathMatch is a regular expression over JSON-pointer paths.
	PathMatch string `json:"pathMatch"`
	// AllowedOps restricts which RFC 6902 ops ("add","remove","replace")
	// are allowed for matching paths; empty means all ops are allowed.
	// +optional
	AllowedOps []string `json:"allowedOps,omitempty"`
}

// Reference identifies a downstream Kubernetes object.
type Reference struct {
	APIVersion string `json:"apiVersion"`
	Kind       string `json:"kind"`
	Name       string `json:"name"`
	// +optional
	Namespace string `json:"namespace,omitempty"`
}

// ResourceHandleRef identifies the handle bound to a claim.
type ResourceHandleRef struct {
	// +optional
	APIVersion string `json:"apiVersion,omitempty"`
	// +optional
	Kind string `json:"kind,omitempty"`
	Name string `json:"name"`
	// +optional
	Namespace string `json:"namespace,omitempty"`
	// Detached marks that the binding has been severed while the claim
	// record is retained for bookkeeping.
	// +optional
	Detached bool `json:"detached,omitempty"`
}

// ProviderRef names a provider and the parameter values supplied to it.
type ProviderRef struct {
	Name string `json:"name"`
	// +optional
	ParameterValues *apiextv1.JSON `json:"parameterValues,omitempty"`
}

// LifespanStatus is the authoritative lifespan projection written back to
// the user.
type LifespanStatus struct {
	// +optional
	Start *metav1.Time `json:"start,omitempty"`
	// +optional
	End *metav1.Time `json:"end,omitempty"`
	// +optional
	Maximum *metav1.Time `json:"maximum,omitempty"`
	// +optional
	RelativeMaximum *metav1.Time `json:"relativeMaximum,omitempty"`
}

// NamespacedName identifies a namespaced object, used for claim<->handle
// and handle<->pool back-references resolved through the in-memory
// registries rather than modeled as shared-ownership cycles.
type NamespacedName struct {
	Name string `json:"name"`
	// +optional
	Namespace string `json:"namespace,omitempty"`
}
