package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Workflow metrics
	DeploysTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "device_workflow_deploys_total",
			Help: "Total number of deploy workflow invocations by outcome",
		},
		[]string{"outcome"},
	)

	SyncFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "device_workflow_sync_failures_total",
			Help: "Total number of sync requests that failed after a successful upsert",
		},
	)

	ProvisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "device_workflow_provisions_total",
			Help: "Total number of repository provisioning runs by outcome",
		},
		[]string{"outcome"},
	)

	InventoryFetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "device_workflow_inventory_fetches_total",
			Help: "Total number of controller inventory fetches by outcome",
		},
		[]string{"outcome"},
	)

	// API metrics
	APIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "device_workflow_api_requests_total",
			Help: "Total number of API requests by handler and status",
		},
		[]string{"handler", "status"},
	)

	APIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "device_workflow_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"handler"},
	)
)

func init() {
	// Register all metrics
	prometheus.MustRegister(DeploysTotal)
	prometheus.MustRegister(SyncFailuresTotal)
	prometheus.MustRegister(ProvisionsTotal)
	prometheus.MustRegister(InventoryFetchesTotal)
	prometheus.MustRegister(APIRequestsTotal)
	prometheus.MustRegister(APIRequestDuration)
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}
