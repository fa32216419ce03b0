package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/davidc-dev/device-workflow/pkg/deploy"
	"github.com/davidc-dev/device-workflow/pkg/log"
	"github.com/davidc-dev/device-workflow/pkg/metrics"
	"github.com/davidc-dev/device-workflow/pkg/provision"
	"github.com/davidc-dev/device-workflow/pkg/types"
)

// Deployer runs the manifest upsert workflow. *deploy.Orchestrator
// satisfies it.
type Deployer interface {
	Deploy(ctx context.Context, req deploy.Request) (*types.DeployResult, error)
}

// Provisioner runs the repository creation flow. *provision.Provisioner
// satisfies it.
type Provisioner interface {
	Provision(ctx context.Context, req provision.Request) (*types.ProvisionResult, error)
}

// Inventory lists the projected device records. *inventory.Reconciler
// satisfies it.
type Inventory interface {
	List(ctx context.Context) ([]types.DeviceRecord, error)
}

// Syncer triggers a manual application sync. *argocd.Client satisfies it.
type Syncer interface {
	SyncApplication(ctx context.Context, appName string) (string, error)
}

// Options holds server settings.
type Options struct {
	ListenAddr  string
	CORSOrigins []string
	// AppsDomain is the fallback cluster FQDN used when a request
	// does not carry one.
	AppsDomain string
}

// Server exposes the device workflow over HTTP.
type Server struct {
	opts        Options
	deployer    Deployer
	provisioner Provisioner
	inventory   Inventory
	syncer      Syncer

	httpServer *http.Server
}

// NewServer creates a server from its collaborators. Any collaborator may be
// nil, in which case the matching endpoints respond 503.
func NewServer(opts Options, deployer Deployer, provisioner Provisioner, inventory Inventory, syncer Syncer) *Server {
	return &Server{
		opts:        opts,
		deployer:    deployer,
		provisioner: provisioner,
		inventory:   inventory,
		syncer:      syncer,
	}
}

// Handler builds the full route table with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /create-device-repo", instrument("create-device-repo", s.handleCreateDeviceRepo))
	mux.HandleFunc("POST /deploy-argocd-app", instrument("deploy-argocd-app", s.handleDeploy))
	mux.HandleFunc("GET /argocd/apps", instrument("argocd-apps", s.handleListApps))
	mux.HandleFunc("POST /argocd/apps", instrument("argocd-apps", s.handleListApps))
	mux.HandleFunc("POST /argocd/sync", instrument("argocd-sync", s.handleSync))
	mux.Handle("GET /healthz", metrics.HealthHandler())
	mux.Handle("GET /metrics", metrics.Handler())

	var handler http.Handler = mux
	handler = accessLog(handler)
	handler = requestID(handler)
	handler = corsMiddleware(s.opts.CORSOrigins, handler)
	return handler
}

// Start runs the HTTP server until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.opts.ListenAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger := log.WithComponent("api")
	logger.Info().Str("addr", s.opts.ListenAddr).Msg("http server listening")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
