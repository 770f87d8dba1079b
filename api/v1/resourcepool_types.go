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
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// PoolboyPoolFinalizer guards deletion of a pool's unbound handles.
func PoolboyPoolFinalizer() string {
	return GroupName + "/resource-pool"
}

// +kubebuilder:object:root=true
// +kubebuilder:resource:scope=Namespaced,shortName=rpool
// +kubebuilder:subresource:status
// ResourcePool maintains minAvailable warm ResourceHandles so claims can
// bind to pre-provisioned inventory instead of waiting on cold creation.
type ResourcePool struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`
	Spec              ResourcePoolSpec   `json:"spec"`
	Status            ResourcePoolStatus `json:"status,omitempty"`
}

// ResourcePoolSpec configures replenishment for one pool. Either Provider
// or Resources must be set, mirroring ResourceHandleSpec's own shape.
type ResourcePoolSpec struct {
	MinAvailable int `json:"minAvailable"`
	// +optional
	MaxUnready *int `json:"maxUnready,omitempty"`
	// +optional
	DeleteUnhealthyResourceHandles bool `json:"deleteUnhealthyResourceHandles,omitempty"`
	// +optional
	Provider *ProviderRef `json:"provider,omitempty"`
	// +optional
	Resources []ResourceHandleResource `json:"resources,omitempty"`
	// +optional
	Lifespan *LifespanSpec `json:"lifespan,omitempty"`
}

// ResourcePoolHandleStatus is one tracked handle's observability entry.
type ResourcePoolHandleStatus struct {
	Name string `json:"name"`
	// +optional
	Healthy *bool `json:"healthy,omitempty"`
	// +optional
	Ready *bool `json:"ready,omitempty"`
	// +optional
	Bound bool `json:"bound,omitempty"`
}

// ResourceHandleCount summarizes pool inventory.
type ResourceHandleCount struct {
	Available int `json:"available"`
	Ready     int `json:"ready"`
}

// ResourcePoolStatus reports pool inventory for observability.
type ResourcePoolStatus struct {
	// +optional
	ResourceHandles []ResourcePoolHandleStatus `json:"resourceHandles,omitempty"`
	// +optional
	ResourceHandleCount ResourceHandleCount `json:"resourceHandleCount,omitempty"`
}

// +kubebuilder:object:root=true
// ResourcePoolList contains a list of ResourcePool.
type ResourcePoolList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []ResourcePool `json:"items"`
}

func init() {
	SchemeBuilder.Register(&ResourcePool{}, &ResourcePoolList{})
}
