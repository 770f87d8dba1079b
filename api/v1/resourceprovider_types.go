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

// +kubebuilder:object:root=true
// +kubebuilder:resource:scope=Namespaced,shortName=rp
// ResourceProvider is a registry entry describing how to match, default,
// validate and project one kind of downstream resource.
type ResourceProvider struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`
	Spec              ResourceProviderSpec `json:"spec"`
}

// ApprovalSpec gates binding until an external approval decision is
// recorded on the claim.
type ApprovalSpec struct {
	// +optional
	Required bool `json:"required,omitempty"`
	// Message is a template expression rendered into status.approval.message.
	// +optional
	Message *string `json:"message,omitempty"`
}

// ResourceProviderSpec configures one provider entry.
type ResourceProviderSpec struct {
	// Match is a partial template that must be a deep-subset of a claim's
	// template for this provider to be considered.
	// +optional
	Match *apiextv1.JSON `json:"match,omitempty"`
	// MatchIgnore lists regexes over JSON-pointer paths that may differ
	// between a handle template and a claim template yet still match.
	// +optional
	MatchIgnore []string `json:"matchIgnore,omitempty"`
	// Default is deep-merged into a claim template as low-priority
	// defaults; may contain template expressions.
	// +optional
	Default *apiextv1.JSON `json:"default,omitempty"`
	// Override is deep-merged into a handle-derived resource as
	// high-priority overrides; may contain template expressions.
	// +optional
	Override *apiextv1.JSON `json:"override,omitempty"`
	// Template configures projection of a handle's resource entry into a
	// downstream resource body.
	Template TemplateSpec `json:"template"`
	// Validation structurally and semantically validates claim templates.
	// +optional
	Validation *ValidationSpec `json:"validation,omitempty"`
	// Parameters are named, ordered provider inputs.
	// +optional
	Parameters []ParameterSpec `json:"parameters,omitempty"`
	// LinkedProviders expresses ordered resource dependencies within one
	// claim.
	// +optional
	LinkedProviders []LinkedProvider `json:"linkedProviders,omitempty"`
	// Lifespan bounds how long claims/handles produced by this provider
	// may live.
	// +optional
	Lifespan *LifespanSpec `json:"lifespan,omitempty"`
	// UpdateFilters restrict which changes may be patched into an
	// already-created downstream resource.
	// +optional
	UpdateFilters []UpdateFilter `json:"updateFilters,omitempty"`
	// DisableCreation, if true, skips creating the downstream resource and
	// instead reports it as waiting.
	// +optional
	DisableCreation bool `json:"disableCreation,omitempty"`
	// ResourceRequiresClaim, if true, skips creating the downstream
	// resource until a claim is bound.
	// +optional
	ResourceRequiresClaim bool `json:"resourceRequiresClaim,omitempty"`
	// HealthCheck is a CEL expression evaluated against the current
	// downstream state to populate status.resources[i].healthy.
	// +optional
	HealthCheck *string `json:"healthCheck,omitempty"`
	// ReadinessCheck is a CEL expression evaluated against the
	// current downstream state to populate status.resources[i].ready.
	// +optional
	ReadinessCheck *string `json:"readinessCheck,omitempty"`
	// StatusSummaryTemplate renders status.summary on the handle.
	// +optional
	StatusSummaryTemplate *string `json:"statusSummaryTemplate,omitempty"`
	// ResourceClaimAnnotations are defaulted onto claims bound through
	// this provider (keys the claim does not already set).
	// +optional
	ResourceClaimAnnotations map[string]string `json:"resourceClaimAnnotations,omitempty"`
	// ResourceClaimLabels are defaulted onto claims bound through this
	// provider (keys the claim does not already set).
	// +optional
	ResourceClaimLabels map[string]string `json:"resourceClaimLabels,omitempty"`
	// Approval gates binding on an external decision.
	// +optional
	Approval *ApprovalSpec `json:"approval,omitempty"`
}

// +kubebuilder:object:root=true
// ResourceProviderList contains a list of ResourceProvider.
type ResourceProviderList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []ResourceProvider `json:"items"`
}

func init() {
	SchemeBuilder.Register(&ResourceProvider{}, &ResourceProviderList{})
}
