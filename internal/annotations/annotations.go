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

// Package annotations names and stamps the annotation/label contract
// spec.md §6 defines: the keys a downstream resource carries so the
// watcher (internal/watch) can route its events back to the handle and
// claim that produced it.
package annotations

import "strconv"

// Keys is the domain-scoped annotation/label key set, built once from
// config.Config.OperatorDomain.
type Keys struct {
	domain string
}

// New builds a Keys for the given operator domain (config.Config.
// OperatorDomain).
func New(domain string) Keys {
	return Keys{domain: domain}
}

func (k Keys) key(suffix string) string { return k.domain + "/" + suffix }

func (k Keys) ProviderName() string      { return k.key("resource-provider-name") }
func (k Keys) ProviderNamespace() string { return k.key("resource-provider-namespace") }
func (k Keys) HandleName() string        { return k.key("resource-handle-name") }
func (k Keys) HandleNamespace() string   { return k.key("resource-handle-namespace") }
func (k Keys) HandleUID() string         { return k.key("resource-handle-uid") }
func (k Keys) ResourceIndex() string     { return k.key("resource-index") }
func (k Keys) ClaimName() string         { return k.key("resource-claim-name") }
func (k Keys) ClaimNamespace() string    { return k.key("resource-claim-namespace") }
func (k Keys) PoolName() string          { return k.key("resource-pool-name") }
func (k Keys) PoolNamespace() string     { return k.key("resource-pool-namespace") }
func (k Keys) RequesterUser() string     { return k.key("resource-requester-user") }
func (k Keys) RequesterEmail() string    { return k.key("resource-requester-email") }
func (k Keys) RequesterName() string     { return k.key("resource-requester-name") }
func (k Keys) RequesterPreferredUsername() string {
	return k.key("resource-requester-preferred-username")
}

// Ignore is the reserved label whose presence disables reconciliation
// for an object, regardless of value.
func (k Keys) Ignore() string { return k.key("ignore") }

// ClaimInitTimestamp marks a claim as having completed its one-time
// template-defaulting step (spec.md §4.3 step 4). It is not part of the
// emitted-onto-downstream-resources contract; it lives only on the
// claim itself.
func (k Keys) ClaimInitTimestamp() string { return k.key("resource-claim-init-timestamp") }

// Stamp is the decoded set of values to write onto a downstream
// resource's annotations; empty string fields are omitted, while
// ResourceIndex is always written.
type Stamp struct {
	ProviderName      string
	ProviderNamespace string
	HandleName        string
	HandleNamespace   string
	HandleUID         string
	ResourceIndex     int
	ClaimName         string
	ClaimNamespace    string
	PoolName          string
	PoolNamespace     string
	RequesterUser     string
	RequesterEmail    string
	RequesterName     string
	RequesterPreferredUsername string
}

// Apply writes every non-empty string field of s, plus ResourceIndex
// (including 0), into ann (creating it if nil) and returns the result.
func (k Keys) Apply(ann map[string]string, s Stamp) map[string]string {
	if ann == nil {
		ann = map[string]string{}
	}
	set := func(key, value string) {
		if value != "" {
			ann[key] = value
		}
	}
	set(k.ProviderName(), s.ProviderName)
	set(k.ProviderNamespace(), s.ProviderNamespace)
	set(k.HandleName(), s.HandleName)
	set(k.HandleNamespace(), s.HandleNamespace)
	set(k.HandleUID(), s.HandleUID)
	ann[k.ResourceIndex()] = strconv.Itoa(s.ResourceIndex)
	set(k.ClaimName(), s.ClaimName)
	set(k.ClaimNamespace(), s.ClaimNamespace)
	set(k.PoolName(), s.PoolName)
	set(k.PoolNamespace(), s.PoolNamespace)
	set(k.RequesterUser(), s.RequesterUser)
	set(k.RequesterEmail(), s.RequesterEmail)
	set(k.RequesterName(), s.RequesterName)
	set(k.RequesterPreferredUsername(), s.RequesterPreferredUsername)
	return ann
}
