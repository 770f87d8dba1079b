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

// PoolboyFinalizer guards cascading delete of downstream resources. It is
// derived from GroupName so a rebranded CRD group carries its own
// finalizer domain.
func PoolboyFinalizer() string {
	return GroupName + "/resource-handle"
}

// +kubebuilder:object:root=true
// +kubebuilder:resource:scope=Namespaced,shortName=rh
// +kubebuilder:subresource:status
// ResourceHandle drives creation and ongoing reconciliation of one or more
// downstream resources, either bound to a claim or held warm in a pool.
type ResourceHandle struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`
	Spec              ResourceHandleSpec   `json:"spec"`
	Status            ResourceHandleStatus `json:"status,omitempty"`
}

// ResourceHandleResource is one downstream resource slot.
type ResourceHandleResource struct {
	// +optional
	Name string `json:"name,omitempty"`
	Provider string `json:"provider"`
	// +optional
	Template *apiextv1.JSON `json:"template,omitempty"`
	// +optional
	Reference *Reference `json:"reference,omitempty"`
}

// ResourceHandleSpec describes the handle's resource slots and bindings.
type ResourceHandleSpec struct {
	Resources []ResourceHandleResource `json:"resources"`
	// +optional
	ResourceClaim *NamespacedName `json:"resourceClaim,omitempty"`
	// +optional
	ResourcePool *NamespacedName `json:"resourcePool,omitempty"`
	// +optional
	Provider *ProviderRef `json:"provider,omitempty"`
	// Vars carries provider/pool-supplied template variables.
	// +optional
	Vars *apiextv1.JSON `json:"vars,omitempty"`
	// +optional
	Lifespan *LifespanSpec `json:"lifespan,omitempty"`
}

// ResourceHandleResourceStatus reports per-resource-slot rollups.
type ResourceHandleResourceStatus struct {
	// +optional
	Name string `json:"name,omitempty"`
	// +optional
	Reference *Reference `json:"reference,omitempty"`
	// +optional
	State *apiextv1.JSON `json:"state,omitempty"`
	// +optional
	Healthy *bool `json:"healthy,omitempty"`
	// +optional
	Ready *bool `json:"ready,omitempty"`
	// +optional
	WaitingFor string `json:"waitingFor,omitempty"`
}

// ResourceHandleStatus reports the handle's overall rollups.
type ResourceHandleStatus struct {
	// +optional
	Resources []ResourceHandleResourceStatus `json:"resources,omitempty"`
	// +optional
	Healthy *bool `json:"healthy,omitempty"`
	// +optional
	Ready *bool `json:"ready,omitempty"`
	// +optional
	Summary string `json:"summary,omitempty"`
}

// +kubebuilder:object:root=true
// ResourceHandleList contains a list of ResourceHandle.
type ResourceHandleList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []ResourceHandle `json:"items"`
}

func init() {
	SchemeBuilder.Register(&ResourceHandle{}, &ResourceHandleList{})
}
