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

// Package config loads the operator's environment-variable contract into a
// single typed, immutable Config, matching spec.md §6.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config is the operator's runtime configuration, populated once at
// startup from the environment.
type Config struct {
	// OperatorDomain is the API group the four first-party kinds are
	// served under, and the prefix for every annotation/label/finalizer
	// key the operator emits or reads.
	OperatorDomain string
	// OperatorVersion is the API version the four first-party kinds are
	// served under.
	OperatorVersion string
	// OperatorNamespace is where ResourceProvider, ResourceHandle and
	// ResourcePool objects live.
	OperatorNamespace string

	// ManageClaimsInterval is the periodic self-poll period for the claim
	// reconciler's daemon sweep.
	ManageClaimsInterval time.Duration
	// ManageHandlesInterval is the periodic self-poll period for the
	// handle reconciler's daemon sweep.
	ManageHandlesInterval time.Duration
	// ManagePoolsInterval is the periodic sweep period for the pool
	// reconciler.
	ManagePoolsInterval time.Duration
	// ResourceRefreshInterval is the cache TTL the watcher honors before
	// falling back to a live API read in Get.
	ResourceRefreshInterval time.Duration

	// MetricsPort is the port the Prometheus metrics endpoint listens on.
	MetricsPort int
}

const (
	envOperatorDomain          = "OPERATOR_DOMAIN"
	envOperatorVersion         = "OPERATOR_VERSION"
	envOperatorNamespace       = "OPERATOR_NAMESPACE"
	envManageClaimsInterval    = "MANAGE_CLAIMS_INTERVAL"
	envManageHandlesInterval   = "MANAGE_HANDLES_INTERVAL"
	envManagePoolsInterval     = "MANAGE_POOLS_INTERVAL"
	envResourceRefreshInterval = "RESOURCE_REFRESH_INTERVAL"
	envMetricsPort             = "METRICS_PORT"
)

// defaults mirror spec.md §6 exactly.
const (
	defaultOperatorDomain          = "poolboy.gpte.redhat.com"
	defaultOperatorVersion         = "v1"
	defaultManageClaimsInterval    = 60 * time.Second
	defaultManageHandlesInterval   = 60 * time.Second
	defaultManagePoolsInterval     = 60 * time.Second
	defaultResourceRefreshInterval = 600 * time.Second
	defaultMetricsPort             = 8000
)

// Load reads the environment-variable contract into a Config, applying the
// spec.md §6 defaults for anything unset. It never mutates process state
// beyond reading os.Getenv.
func Load() (*Config, error) {
	claimsInterval, err := durationEnv(envManageClaimsInterval, defaultManageClaimsInterval)
	if err != nil {
		return nil, err
	}
	handlesInterval, err := durationEnv(envManageHandlesInterval, defaultManageHandlesInterval)
	if err != nil {
		return nil, err
	}
	poolsInterval, err := durationEnv(envManagePoolsInterval, defaultManagePoolsInterval)
	if err != nil {
		return nil, err
	}
	refreshInterval, err := durationEnv(envResourceRefreshInterval, defaultResourceRefreshInterval)
	if err != nil {
		return nil, err
	}
	metricsPort, err := intEnv(envMetricsPort, defaultMetricsPort)
	if err != nil {
		return nil, err
	}

	return &Config{
		OperatorDomain:          stringEnv(envOperatorDomain, defaultOperatorDomain),
		OperatorVersion:         stringEnv(envOperatorVersion, defaultOperatorVersion),
		OperatorNamespace:       os.Getenv(envOperatorNamespace),
		ManageClaimsInterval:    claimsInterval,
		ManageHandlesInterval:   handlesInterval,
		ManagePoolsInterval:     poolsInterval,
		ResourceRefreshInterval: refreshInterval,
		MetricsPort:             metricsPort,
	}, nil
}

func stringEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	// Bare integers are seconds, matching the env contract's "60" style;
	// suffixed values ("60s", "10m") use Go's own grammar. Duration
	// strings embedded in CRD specs use the fuller d/h/m/s grammar in
	// internal/lifespan instead.
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s=%q: %w", key, v, err)
	}
	return d, nil
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for %s=%q: %w", key, v, err)
	}
	return n, nil
}
