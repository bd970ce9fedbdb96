// Package metrics exposes the Prometheus collectors served on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adscontrol_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "adscontrol_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adscontrol_analyses_total",
			Help: "Total number of project analyses by scope",
		},
		[]string{"scope"},
	)

	AnalysisDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "adscontrol_analysis_duration_seconds",
			Help:    "Duration of project analyses in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 2, 5},
		},
	)

	SuggestionsEmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adscontrol_suggestions_emitted_total",
			Help: "Total number of suggestions returned by analyses",
		},
		[]string{"priority"},
	)

	HostMemoryUsedBytes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "adscontrol_host_memory_used_bytes",
		Help: "System memory in use",
	})
	HostMemoryTotalBytes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "adscontrol_host_memory_total_bytes",
		Help: "Total system memory",
	})
	HostDiskUsedBytes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "adscontrol_host_disk_used_bytes",
		Help: "Disk usage of the log volume",
	})
	HostCPULoad = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "adscontrol_host_cpu_load_ratio",
		Help: "System CPU load between 0 and 1",
	})
	ProcessRSSBytes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "adscontrol_process_rss_bytes",
		Help: "Resident set size of the server process",
	})
)

// RecordAPIRequest records one served request under its route pattern.
func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordAnalysis counts one analysis run and the priorities it produced.
func RecordAnalysis(scope string, priorities []string, duration time.Duration) {
	AnalysesTotal.WithLabelValues(scope).Inc()
	AnalysisDuration.Observe(duration.Seconds())
	for _, p := range priorities {
		SuggestionsEmitted.WithLabelValues(p).Inc()
	}
}
