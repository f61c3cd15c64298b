/*
 * Copyright 2018 The Trickster Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package metrics defines the Prometheus collectors reported by hydra and
// the handler that serves them
package metrics

import (
	"net/http"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hydra"

var requestLabels = []string{"handler", "method", "path", "http_status"}

// latency buckets, in seconds; resolutions are in-memory and fast
var defaultBuckets = []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1}

var (
	// BuildInfo is a constant 1 labeled with the running binary's build
	BuildInfo = gaugeVec("build", "info",
		"A metric with a constant '1' value labeled by version, revision, "+
			"and goversion from which hydra was built.",
		"goversion", "revision", "version")

	// FrontendRequestStatus counts front end requests by handler and status class
	FrontendRequestStatus = counterVec("frontend", "requests_total",
		"Count of front end requests handled by hydra.", requestLabels...)

	// FrontendRequestDuration observes front end request latency
	FrontendRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "frontend",
		Name:      "requests_duration_seconds",
		Help:      "Histogram of front end request durations handled by hydra.",
		Buckets:   defaultBuckets,
	}, requestLabels)

	// FrontendRequestWrittenBytes counts response body bytes written
	FrontendRequestWrittenBytes = counterVec("frontend", "written_bytes_total",
		"Count of bytes written in front end requests handled by hydra.",
		requestLabels...)

	// ResolverResolutions counts GUID resolutions by outcome
	ResolverResolutions = counterVec("resolver", "resolutions_total",
		"Count of GUID resolutions by outcome.", "outcome")

	// LookupTableEntries is the number of GUIDs in the lookup table
	LookupTableEntries = gauge("lookup", "table_entries",
		"Number of GUIDs in the lookup table.")

	// LookupLoadDuration is the time spent loading the lookup table at startup
	LookupLoadDuration = gauge("lookup", "load_duration_seconds",
		"Time in seconds taken to load the lookup table at startup.")

	// LandingRenderFailures counts landing requests whose template could not
	// be read or rendered
	LandingRenderFailures = counter("landing", "render_failures_total",
		"Count of landing page requests that failed to render.")
)

// Connection accounting for the front end listeners
var (
	FrontendMaxConnections = gauge("frontend", "max_connections",
		"Maximum number of concurrent connections accepted by the listener.")
	FrontendActiveConnections = gauge("frontend", "active_connections",
		"Number of currently open front end connections.")
	FrontendConnectionRequested = counter("frontend", "requested_connections_total",
		"Total number of connections requested by clients.")
	FrontendConnectionAccepted = counter("frontend", "accepted_connections_total",
		"Total number of accepted connections.")
	FrontendConnectionClosed = counter("frontend", "closed_connections_total",
		"Total number of closed connections.")
	FrontendConnectionFailed = counter("frontend", "failed_connections_total",
		"Total number of connections that failed to be accepted.")
)

func init() {
	prometheus.MustRegister(
		BuildInfo,
		FrontendRequestStatus,
		FrontendRequestDuration,
		FrontendRequestWrittenBytes,
		ResolverResolutions,
		LookupTableEntries,
		LookupLoadDuration,
		LandingRenderFailures,
		FrontendMaxConnections,
		FrontendActiveConnections,
		FrontendConnectionRequested,
		FrontendConnectionAccepted,
		FrontendConnectionClosed,
		FrontendConnectionFailed,
	)
}

func counter(subsystem, name, help string) prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: subsystem, Name: name, Help: help,
	})
}

func counterVec(subsystem, name, help string, labels ...string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: subsystem, Name: name, Help: help,
	}, labels)
}

func gauge(subsystem, name, help string) prometheus.Gauge {
	return prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace, Subsystem: subsystem, Name: name, Help: help,
	})
}

func gaugeVec(subsystem, name, help string, labels ...string) *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace, Subsystem: subsystem, Name: name, Help: help,
	}, labels)
}

// SetBuildInfo sets the constant BuildInfo gauge for the running binary
func SetBuildInfo(version, revision string) {
	BuildInfo.WithLabelValues(runtime.Version(), revision, version).Set(1)
}

// Handler returns the http handler for the metrics listener
func Handler() http.Handler {
	return promhttp.Handler()
}
