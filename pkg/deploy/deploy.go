package deploy

import (
	"context"
	"errors"
	"fmt"

	"github.com/davidc-dev/device-workflow/pkg/argocd"
	"github.com/davidc-dev/device-workflow/pkg/log"
	"github.com/davidc-dev/device-workflow/pkg/manifest"
	"github.com/davidc-dev/device-workflow/pkg/metrics"
	"github.com/davidc-dev/device-workflow/pkg/types"
)

// State is one step of the upsert workflow.
type State string

const (
	StateBuilding State = "building"
	StateCreating State = "creating"
	StateCreated  State = "created"
	StateConflict State = "conflict"
	StateUpdating State = "updating"
	StateSyncing  State = "syncing"
	StateDeployed State = "deployed"
	StateFailed   State = "failed"
)

// ErrNoController is returned when a deploy needs the controller API but the
// orchestrator was built without one. YAML-only rendering never hits it.
var ErrNoController = errors.New("controller is not configured")

// Controller is the subset of the controller API the orchestrator uses.
// *argocd.Client satisfies it; tests substitute mocks. A nil controller is
// valid for YAML-only rendering.
type Controller interface {
	CreateApplication(ctx context.Context, app *types.Application) (string, error)
	UpdateApplication(ctx context.Context, app *types.Application) (string, error)
	SyncApplication(ctx context.Context, appName string) (string, error)
}

// Request describes one upsert invocation.
type Request struct {
	Identity             types.DeviceIdentity
	RepoURL              string
	DestinationServer    string
	DestinationNamespace string

	// YAMLOnly renders the manifest without touching the controller.
	YAMLOnly bool
}

// Orchestrator drives the create-or-replace-then-sync workflow against the
// controller. It holds no state between invocations; idempotence comes from
// keying create and update on the same canonical application name.
type Orchestrator struct {
	controller Controller
}

// NewOrchestrator creates a new orchestrator.
func NewOrchestrator(controller Controller) *Orchestrator {
	return &Orchestrator{controller: controller}
}

// workflow carries one invocation through the state machine.
type workflow struct {
	req    Request
	state  State
	app    *types.Application
	result *types.DeployResult
	err    error
}

// Deploy runs the upsert workflow:
//
//	Building -> Creating -> {Created | Conflict} -> Updating? -> Syncing -> {Deployed | Failed}
//
// A sync failure after a successful create or update does not fail the
// operation: the resource definition reached the controller and convergence
// is the controller's job on later reconcile loops. The failure is reported
// in the result's SyncError field instead.
func (o *Orchestrator) Deploy(ctx context.Context, req Request) (*types.DeployResult, error) {
	wf := &workflow{req: req, state: StateBuilding}

	for {
		switch wf.state {
		case StateBuilding:
			o.build(wf)
		case StateCreating:
			o.create(ctx, wf)
		case StateCreated:
			wf.state = StateSyncing
		case StateConflict:
			wf.state = StateUpdating
		case StateUpdating:
			o.update(ctx, wf)
		case StateSyncing:
			o.sync(ctx, wf)
		case StateDeployed:
			metrics.DeploysTotal.WithLabelValues(string(wf.result.Status)).Inc()
			return wf.result, nil
		case StateFailed:
			metrics.DeploysTotal.WithLabelValues("failed").Inc()
			return nil, wf.err
		default:
			return nil, fmt.Errorf("deploy workflow reached unknown state %q", wf.state)
		}
	}
}

// build renders the descriptor and manifest. In YAML-only mode the workflow
// terminates here without any network call.
func (o *Orchestrator) build(wf *workflow) {
	app, err := manifest.Build(wf.req.Identity, wf.req.RepoURL, wf.req.DestinationServer, wf.req.DestinationNamespace)
	if err != nil {
		wf.err = err
		wf.state = StateFailed
		return
	}

	rendered, err := manifest.RenderYAML(app)
	if err != nil {
		wf.err = err
		wf.state = StateFailed
		return
	}

	wf.app = app
	wf.result = &types.DeployResult{
		AppName:    app.Metadata.Name,
		Descriptor: app,
		YAML:       rendered,
	}

	if wf.req.YAMLOnly {
		wf.result.Status = types.StatusYAMLOnly
		wf.state = StateDeployed
		return
	}
	wf.state = StateCreating
}

func (o *Orchestrator) create(ctx context.Context, wf *workflow) {
	if o.controller == nil {
		wf.err = ErrNoController
		wf.state = StateFailed
		return
	}
	appLog := log.WithApp(wf.app.Metadata.Name)

	resp, err := o.controller.CreateApplication(ctx, wf.app)
	switch {
	case err == nil:
		appLog.Info().Msg("application created")
		wf.result.ControllerResponse = resp
		wf.state = StateCreated
	case argocd.IsConflict(err):
		appLog.Debug().Msg("application exists, replacing")
		wf.state = StateConflict
	default:
		wf.err = err
		wf.state = StateFailed
	}
}

func (o *Orchestrator) update(ctx context.Context, wf *workflow) {
	resp, err := o.controller.UpdateApplication(ctx, wf.app)
	if err != nil {
		wf.err = err
		wf.state = StateFailed
		return
	}

	appLog := log.WithApp(wf.app.Metadata.Name)
	appLog.Info().Msg("application replaced")
	wf.result.ControllerResponse = resp
	wf.state = StateSyncing
}

func (o *Orchestrator) sync(ctx context.Context, wf *workflow) {
	resp, err := o.controller.SyncApplication(ctx, wf.app.Metadata.Name)
	if err != nil {
		// Best-effort sync: the resource is in place, only immediate
		// drift-correction failed.
		appLog := log.WithApp(wf.app.Metadata.Name)
		appLog.Warn().Err(err).Msg("sync request failed after upsert")
		metrics.SyncFailuresTotal.Inc()
		wf.result.SyncError = err.Error()
	} else {
		wf.result.SyncResponse = resp
	}

	wf.result.Status = types.StatusDeployed
	wf.state = StateDeployed
}
