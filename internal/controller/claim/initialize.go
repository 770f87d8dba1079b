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

package claim

import (
	"context"
	"time"

	"sigs.k8s.io/controller-runtime/pkg/client"

	poolboyv1 "github.com/redhat-cop/poolboy/api/v1"
	"github.com/redhat-cop/poolboy/internal/value"
)

// initializeIfNeeded runs spec.md §4.3 step 4 exactly once per claim: in
// resources mode, deep-merge each assigned provider's spec.default into
// the claim's own spec.resources[i].template (the claim's values always
// win), then stamp the init-timestamp annotation so the step never runs
// again. Provider mode has no per-resource template to default; only
// the timestamp is stamped.
func (r *Reconciler) initializeIfNeeded(ctx context.Context, claim *poolboyv1.ResourceClaim) error {
	key := r.Runtime.Annotations.ClaimInitTimestamp()
	if claim.Annotations != nil && claim.Annotations[key] != "" {
		return nil
	}

	patch := client.MergeFrom(claim.DeepCopy())

	for i, res := range claim.Spec.Resources {
		if i >= len(claim.Status.Resources) {
			continue
		}
		providerName := claim.Status.Resources[i].Provider
		provider, ok := r.Runtime.Providers.Get(providerName)
		if !ok || provider.Spec.Default == nil {
			continue
		}

		dst, err := value.FromJSON(res.Template)
		if err != nil {
			return err
		}
		dstObj, _ := value.AsObject(dst)
		defaults, err := value.FromJSON(provider.Spec.Default)
		if err != nil {
			return err
		}
		defaultsObj, _ := value.AsObject(defaults)

		merged, err := value.MergeDefaults(dstObj, defaultsObj)
		if err != nil {
			return err
		}
		raw, err := value.ToJSON(merged)
		if err != nil {
			return err
		}
		claim.Spec.Resources[i].Template = raw
	}

	if claim.Annotations == nil {
		claim.Annotations = map[string]string{}
	}
	claim.Annotations[key] = time.Now().UTC().Format(time.RFC3339)

	return r.Patch(ctx, claim, patch)
}
