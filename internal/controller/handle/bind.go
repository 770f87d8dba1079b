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

// Package handle implements the ResourceHandle reconciler and the
// claim-binding matcher spec.md §4.4 describes.
package handle

import (
	"context"
	"fmt"
	"sort"
	"time"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"

	poolboyv1 "github.com/redhat-cop/poolboy/api/v1"
	ctrlshared "github.com/redhat-cop/poolboy/internal/controller"
	"github.com/redhat-cop/poolboy/internal/index"
	"github.com/redhat-cop/poolboy/internal/providers"
	"github.com/redhat-cop/poolboy/internal/value"
)

// TargetResource is one entry of the resource list a claim asks to be
// bound against, decoded from either spec.resources (resources mode) or
// a provider's get_resources projection (provider mode).
type TargetResource struct {
	Name     string
	Provider string
	Template interface{}
}

// candidate is an unbound handle paired with the score that ranked it.
type candidate struct {
	entry index.UnboundEntry
	score matchScore
}

// matchScore is spec.md §4.4 step 4's ordering tuple, smallest wins.
type matchScore struct {
	resourceCountDiff    int
	resourceNameDiff     int
	templateDiff         int
	unhealthy            int
	unready              int
	unknownReady         int
	creationTimestampUTC int64
}

func less(a, b matchScore) bool {
	if a.resourceCountDiff != b.resourceCountDiff {
		return a.resourceCountDiff < b.resourceCountDiff
	}
	if a.resourceNameDiff != b.resourceNameDiff {
		return a.resourceNameDiff < b.resourceNameDiff
	}
	if a.templateDiff != b.templateDiff {
		return a.templateDiff < b.templateDiff
	}
	if a.unhealthy != b.unhealthy {
		return a.unhealthy < b.unhealthy
	}
	if a.unready != b.unready {
		return a.unready < b.unready
	}
	if a.unknownReady != b.unknownReady {
		return a.unknownReady < b.unknownReady
	}
	return a.creationTimestampUTC < b.creationTimestampUTC
}

// BindToClaim runs the matcher of spec.md §4.4 under the Runtime's
// process-wide match lock: reject instantly if already bound, otherwise
// scan the unbound index for the best-scoring candidate and patch it
// onto the claim, falling back to Create when nothing matches.
func BindToClaim(ctx context.Context, c client.Client, rt *ctrlshared.Runtime, claim *poolboyv1.ResourceClaim, resources []TargetResource) (*poolboyv1.ResourceHandle, error) {
	claimKey := index.Key{Namespace: claim.Namespace, Name: claim.Name}

	rt.MatchLock.Lock()
	defer rt.MatchLock.Unlock()

	if handleKey, ok := rt.Index.BoundHandle(claimKey); ok {
		existing := &poolboyv1.ResourceHandle{}
		if err := c.Get(ctx, types.NamespacedName{Namespace: handleKey.Namespace, Name: handleKey.Name}, existing); err == nil {
			return existing, nil
		} else if !apierrors.IsNotFound(err) {
			return nil, fmt.Errorf("checking existing binding: %w", err)
		}
		rt.Index.RemoveAll(handleKey)
	}

	for {
		candidates := scoreCandidates(rt, claim, resources)
		if len(candidates) == 0 {
			return CreateForClaim(ctx, c, rt, claim, resources)
		}

		winner := candidates[0]
		h := &poolboyv1.ResourceHandle{}
		if err := c.Get(ctx, types.NamespacedName{Namespace: winner.entry.Key.Namespace, Name: winner.entry.Key.Name}, h); err != nil {
			if apierrors.IsNotFound(err) {
				rt.Index.RemoveAll(winner.entry.Key)
				continue
			}
			return nil, fmt.Errorf("fetching candidate handle %s: %w", winner.entry.Key.Name, err)
		}

		patched, err := patchWinner(ctx, c, h, claim, resources)
		if err != nil {
			if apierrors.IsNotFound(err) {
				rt.Index.RemoveAll(winner.entry.Key)
				continue
			}
			return nil, err
		}

		rt.Index.Bind(claimKey, winner.entry.Key)
		return patched, nil
	}
}

// scoreCandidates filters the unbound index per spec.md §4.4 steps 2-4
// and returns survivors sorted best-first.
func scoreCandidates(rt *ctrlshared.Runtime, claim *poolboyv1.ResourceClaim, resources []TargetResource) []candidate {
	now := time.Now()
	var out []candidate

	for _, entry := range rt.Index.UnboundCandidates() {
		if entry.Ignore {
			continue
		}
		if entry.Healthy != nil && !*entry.Healthy {
			continue
		}
		if entry.LifespanEnd != nil && entry.LifespanEnd.Sub(now) < 120*time.Second {
			continue
		}
		if len(entry.Resources) > len(resources) {
			continue
		}

		templateDiff := 0
		nameDiff := 0
		ok := true
		for i, slot := range entry.Resources {
			want := resources[i]
			if slot.Provider != want.Provider {
				ok = false
				break
			}
			if slot.Name != want.Name {
				nameDiff++
			}
			provider, _ := rt.Providers.Get(want.Provider)
			var matchIgnore []string
			if provider != nil {
				matchIgnore = provider.Spec.MatchIgnore
			}
			diff, matched, err := providers.CheckTemplateMatch(slot.Template, want.Template, matchIgnore)
			if err != nil || !matched {
				ok = false
				break
			}
			templateDiff += len(diff)
		}
		if !ok {
			continue
		}

		unready := 0
		if entry.Ready != nil && !*entry.Ready {
			unready = 1
		}
		unknownReady := 0
		if entry.UnknownReady {
			unknownReady = 1
		}

		out = append(out, candidate{
			entry: entry,
			score: matchScore{
				resourceCountDiff:    len(resources) - len(entry.Resources),
				resourceNameDiff:     nameDiff,
				templateDiff:         templateDiff,
				unready:              unready,
				unknownReady:         unknownReady,
				creationTimestampUTC: entry.CreationTimestamp.UTC().UnixNano(),
			},
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i].score, out[j].score) })
	return out
}

// patchWinner sets spec.resourceClaim on the chosen handle, appends any
// resource the handle doesn't yet carry, and re-reads the result.
func patchWinner(ctx context.Context, c client.Client, h *poolboyv1.ResourceHandle, claim *poolboyv1.ResourceClaim, resources []TargetResource) (*poolboyv1.ResourceHandle, error) {
	patch := client.MergeFrom(h.DeepCopy())
	h.Spec.ResourceClaim = &poolboyv1.NamespacedName{Name: claim.Name, Namespace: claim.Namespace}

	for i := len(h.Spec.Resources); i < len(resources); i++ {
		raw, err := value.ToJSON(resources[i].Template)
		if err != nil {
			return nil, fmt.Errorf("encoding resource %d template: %w", i, err)
		}
		h.Spec.Resources = append(h.Spec.Resources, poolboyv1.ResourceHandleResource{
			Name:     resources[i].Name,
			Provider: resources[i].Provider,
			Template: raw,
		})
	}

	if err := c.Patch(ctx, h, patch); err != nil {
		return nil, err
	}
	return h, nil
}
