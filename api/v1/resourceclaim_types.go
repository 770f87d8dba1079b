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

// PoolboyClaimFinalizer guards propagation of claim deletion to its bound
// handle (spec.md §4.3 step 9).
func PoolboyClaimFinalizer() string {
	return GroupName + "/resource-claim"
}

// +kubebuilder:object:root=true
// +kubebuilder:resource:scope=Namespaced,shortName=rc
// +kubebuilder:subresource:status
// ResourceClaim is a user-visible request for one or more parameterized
// downstream resources, bound to a ResourceHandle by the broker.
type ResourceClaim struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`
	Spec              ResourceClaimSpec   `json:"spec"`
	Status            ResourceClaimStatus `json:"status,omitempty"`
}

// ResourceClaimSpec is exactly one of Provider (top-level provider path)
// or Resources (explicit-resources path).
type ResourceClaimSpec struct {
	// Provider selects a single provider for every resource the claim
	// requests; mutually exclusive with Resources.
	// +optional
	Provider *ProviderRef `json:"provider,omitempty"`
	// Resources lists resources explicitly, each with its own optional
	// provider and template; mutually exclusive with Provider.
	// +optional
	Resources []ResourceClaimResource `json:"resources,omitempty"`
	// Lifespan carries user lifespan intent.
	// +optional
	Lifespan *LifespanSpec `json:"lifespan,omitempty"`
	// AutoDelete deletes the claim once When evaluates truthy.
	// +optional
	AutoDelete *AutoAction `json:"autoDelete,omitempty"`
	// AutoDetach severs the handle binding once When evaluates truthy.
	// +optional
	AutoDetach *AutoAction `json:"autoDetach,omitempty"`
}

// AutoAction gates an automatic claim-lifecycle action on a template
// expression.
type AutoAction struct {
	When string `json:"when"`
}

// ResourceClaimResource is one entry of the explicit-resources path.
type ResourceClaimResource struct {
	// +optional
	Name string `json:"name,omitempty"`
	// +optional
	Provider *string `json:"provider,omitempty"`
	// +optional
	Template *apiextv1.JSON `json:"template,omitempty"`
}

// ResourceClaimResourceStatus reports per-resource assignment/validation
// state.
type ResourceClaimResourceStatus struct {
	// +optional
	Name string `json:"name,omitempty"`
	Provider string `json:"provider,omitempty"`
	// +optional
	State *apiextv1.JSON `json:"state,omitempty"`
	// +optional
	ValidationError string `json:"validationError,omitempty"`
	// +optional
	WaitingFor string `json:"waitingFor,omitempty"`
}

// ProviderStatus reports the resolved provider for a provider-mode claim.
type ProviderStatus struct {
	Name string `json:"name"`
	// +optional
	ParameterValues *apiextv1.JSON `json:"parameterValues,omitempty"`
	// +optional
	ValidationErrors []string `json:"validationErrors,omitempty"`
}

// ApprovalStatus reports the state of an approval gate.
type ApprovalStatus struct {
	// +kubebuilder:validation:Enum=pending;approved;rejected
	State string `json:"state"`
	// +optional
	Message string `json:"message,omitempty"`
}

// ResourceClaimStatus is populated entirely by the broker.
type ResourceClaimStatus struct {
	// +optional
	Resources []ResourceClaimResourceStatus `json:"resources,omitempty"`
	// +optional
	ResourceHandle *ResourceHandleRef `json:"resourceHandle,omitempty"`
	// +optional
	Lifespan *LifespanStatus `json:"lifespan,omitempty"`
	// +optional
	Provider *ProviderStatus `json:"provider,omitempty"`
	// +optional
	Approval *ApprovalStatus `json:"approval,omitempty"`
}

// +kubebuilder:object:root=true
// ResourceClaimList contains a list of ResourceClaim.
type ResourceClaimList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []ResourceClaim `json:"items"`
}

func init() {
	SchemeBuilder.Register(&ResourceClaim{}, &ResourceClaimList{})
}
