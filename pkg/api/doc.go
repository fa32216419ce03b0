// Package api exposes the device workflow over HTTP.
//
// Endpoints:
//
//	POST /create-device-repo   provision a device git repository
//	POST /deploy-argocd-app    render or upsert the application manifest
//	GET  /argocd/apps          list the projected device inventory
//	POST /argocd/sync          trigger a manual application sync
//	GET  /healthz              component health report
//	GET  /metrics              prometheus metrics
//
// Mutating endpoints accept form-encoded requests and all endpoints respond
// with JSON. Every request carries a correlation ID, echoed in the
// X-Request-ID response header.
package api
