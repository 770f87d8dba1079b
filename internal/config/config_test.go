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

package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{
		envOperatorDomain, envOperatorVersion, envOperatorNamespace,
		envManageClaimsInterval, envManageHandlesInterval, envManagePoolsInterval,
		envResourceRefreshInterval, envMetricsPort,
	} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.OperatorDomain != defaultOperatorDomain {
		t.Errorf("OperatorDomain = %q, want %q", cfg.OperatorDomain, defaultOperatorDomain)
	}
	if cfg.OperatorVersion != defaultOperatorVersion {
		t.Errorf("OperatorVersion = %q, want %q", cfg.OperatorVersion, defaultOperatorVersion)
	}
	if cfg.ManageClaimsInterval != defaultManageClaimsInterval {
		t.Errorf("ManageClaimsInterval = %v, want %v", cfg.ManageClaimsInterval, defaultManageClaimsInterval)
	}
	if cfg.ResourceRefreshInterval != defaultResourceRefreshInterval {
		t.Errorf("ResourceRefreshInterval = %v, want %v", cfg.ResourceRefreshInterval, defaultResourceRefreshInterval)
	}
	if cfg.MetricsPort != defaultMetricsPort {
		t.Errorf("MetricsPort = %d, want %d", cfg.MetricsPort, defaultMetricsPort)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv(envOperatorDomain, "example.com")
	t.Setenv(envManageClaimsInterval, "90")
	t.Setenv(envResourceRefreshInterval, "5m")
	t.Setenv(envMetricsPort, "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.OperatorDomain != "example.com" {
		t.Errorf("OperatorDomain = %q, want %q", cfg.OperatorDomain, "example.com")
	}
	if cfg.ManageClaimsInterval != 90*time.Second {
		t.Errorf("ManageClaimsInterval = %v, want 90s", cfg.ManageClaimsInterval)
	}
	if cfg.ResourceRefreshInterval != 5*time.Minute {
		t.Errorf("ResourceRefreshInterval = %v, want 5m", cfg.ResourceRefreshInterval)
	}
	if cfg.MetricsPort != 9090 {
		t.Errorf("MetricsPort = %d, want 9090", cfg.MetricsPort)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv(envManagePoolsInterval, "not-a-duration")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid duration")
	}
}

func TestLoadInvalidInt(t *testing.T) {
	t.Setenv(envMetricsPort, "not-an-int")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid integer")
	}
}
