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

// Package metrics declares the Prometheus series named in spec.md §6:
// request duration per method and resource kind, a handler-exception
// counter, and per-pool availability gauges.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"sigs.k8s.io/controller-runtime/pkg/metrics"
)

var (
	// RequestDuration observes how long each Kubernetes API call the
	// operator issues takes, labeled by HTTP method and the resource
	// kind it targeted.
	RequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "poolboy",
		Name:      "api_request_duration_seconds",
		Help:      "Duration of Kubernetes API requests issued by the operator.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "resource"})

	// HandlerExceptions counts unhandled errors raised out of a
	// reconcile handler, labeled by the handler name.
	HandlerExceptions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "poolboy",
		Name:      "handler_exceptions_total",
		Help:      "Count of unhandled exceptions raised from reconcile handlers.",
	}, []string{"handler"})

	// PoolMinAvailable mirrors a ResourcePool's spec.minAvailable.
	PoolMinAvailable = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "poolboy",
		Name:      "resource_pool_min_available",
		Help:      "Configured minimum available ResourceHandle count for a pool.",
	}, []string{"name", "namespace"})

	// PoolAvailable is the current count of unbound, healthy handles.
	PoolAvailable = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "poolboy",
		Name:      "resource_pool_available",
		Help:      "Current available (unbound, healthy) ResourceHandle count for a pool.",
	}, []string{"name", "namespace"})

	// PoolUsedTotal counts handles created from a pool over its
	// lifetime, regardless of current binding state.
	PoolUsedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "poolboy",
		Name:      "resource_pool_used_total",
		Help:      "Total ResourceHandles ever created from a pool.",
	}, []string{"name", "namespace"})

	// PoolState reports one ResourceHandle's membership in a named
	// pool state ("available", "unready", "unhealthy", "bound"); it is
	// a gauge rather than a counter because a handle's state changes
	// over its lifetime and the series value is 0/1 membership.
	PoolState = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "poolboy",
		Name:      "resource_pool_state",
		Help:      "ResourceHandle membership (0/1) in a named pool state.",
	}, []string{"name", "namespace", "state"})
)

func init() {
	metrics.Registry.MustRegister(
		RequestDuration,
		HandlerExceptions,
		PoolMinAvailable,
		PoolAvailable,
		PoolUsedTotal,
		PoolState,
	)
}

// ObserveRequest records one API request's duration under its method
// and resource-kind labels.
func ObserveRequest(method, resource string, start time.Time) {
	RequestDuration.WithLabelValues(method, resource).Observe(time.Since(start).Seconds())
}

// RecordException increments the handler-exception counter for the
// named handler.
func RecordException(handler string) {
	HandlerExceptions.WithLabelValues(handler).Inc()
}
