package metrics

import (
	"regexp"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// ScansIngested counts scans accepted into the store, by site.
	ScansIngested = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scans_ingested_total",
			Help: "Total number of scans ingested, by site",
		},
		[]string{"site"},
	)

	// IncidentsOpen is the number of currently unresolved incidents.
	IncidentsOpen = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "incidents_open",
			Help: "Number of currently open incidents",
		},
	)

	// IncidentsResolved counts incident resolutions.
	IncidentsResolved = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "incidents_resolved_total",
			Help: "Total number of incidents resolved",
		},
	)
)

var (
	// Entity ids look like AST-0001 or SCN-<uuid>; collapse them so metric
	// cardinality stays bounded.
	idPathSegment = regexp.MustCompile(`/(?:AST|SCN|INC|AUD)-[0-9A-Za-z-]+(/|$)`)
	initOnce      sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, ScansIngested, IncidentsOpen, IncidentsResolved)
	})
}

// NormalizePath reduces cardinality by replacing entity-id path segments with
// {id}. E.g. /assets/AST-0001 -> /assets/{id}.
func NormalizePath(path string) string {
	return idPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest records duration and count for an HTTP request. Call from
// middleware with method, path, statusCode, duration.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// RecordScanIngested increments the scan counter for a site.
func RecordScanIngested(site string) {
	ScansIngested.WithLabelValues(site).Inc()
}

// SetOpenIncidents sets the open-incident gauge.
func SetOpenIncidents(n int) {
	IncidentsOpen.Set(float64(n))
}

// RecordIncidentResolved increments the resolution counter.
func RecordIncidentResolved() {
	IncidentsResolved.Inc()
}
