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

// Package v1 contains the ResourceProvider, ResourceClaim, ResourceHandle
// and ResourcePool API types brokered by Poolboy.
// +kubebuilder:object:generate=true
// +groupName=poolboy.gpte.redhat.com
package v1

import (
	"os"

	"k8s.io/apimachinery/pkg/runtime/schema"
	"sigs.k8s.io/controller-runtime/pkg/scheme"
)

// GroupName is the API group served by the operator, overridable via
// OPERATOR_DOMAIN so the same binary can run under a rebranded CRD group.
var GroupName = envOr("OPERATOR_DOMAIN", "poolboy.gpte.redhat.com")

// GroupVersionValue is the API version served, overridable via
// OPERATOR_VERSION.
var GroupVersionValue = envOr("OPERATOR_VERSION", "v1")

// GroupVersion is group poolboy.gpte.redhat.com, version v1 (by default).
var GroupVersion = schema.GroupVersion{Group: GroupName, Version: GroupVersionValue}

// SchemeBuilder is used to add go types to the GroupVersionKind scheme.
var SchemeBuilder = &scheme.Builder{GroupVersion: GroupVersion}

// AddToScheme adds the types in this group-version to the given scheme.
var AddToScheme = SchemeBuilder.AddToScheme

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func resource(resource string) schema.GroupResource {
	return GroupVersion.WithResource(resource).GroupResource()
}
