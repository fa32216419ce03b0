/*
Package metrics exposes Prometheus metrics and health state for the device
workflow service.

Metrics are package-level collectors registered in init: deploy outcomes,
post-upsert sync failures, provisioning runs, inventory fetches, and API
request counts/latency. Handler serves them on /metrics.

The health checker tracks collaborator health (controller, source-control
host) registered by the API server; HealthHandler serves the aggregate as
JSON on /healthz, returning 503 when any component is unhealthy.
*/
package metrics
