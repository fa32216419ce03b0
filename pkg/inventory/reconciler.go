package inventory

import (
	"context"
	"fmt"

	"github.com/davidc-dev/device-workflow/pkg/identity"
	"github.com/davidc-dev/device-workflow/pkg/log"
	"github.com/davidc-dev/device-workflow/pkg/metrics"
	"github.com/davidc-dev/device-workflow/pkg/types"
)

// Lister is the controller call the reconciler depends on. *argocd.Client
// satisfies it.
type Lister interface {
	ListApplications(ctx context.Context) (*types.ApplicationList, error)
}

// Reconciler projects the controller's live application inventory into
// device records. It is read-only and holds no state between fetches.
type Reconciler struct {
	lister      Lister
	clusterFQDN string
}

// NewReconciler creates a reconciler. clusterFQDN is caller-supplied context
// used only for building externally visible route hosts; it is not part of
// controller identity.
func NewReconciler(lister Lister, clusterFQDN string) *Reconciler {
	return &Reconciler{
		lister:      lister,
		clusterFQDN: clusterFQDN,
	}
}

// List fetches the full application inventory and projects every item into
// a DeviceRecord, preserving controller order. The fetch is all-or-nothing:
// any transport or controller error aborts the whole listing, because a
// half-populated dashboard is worse than a clear failure signal.
//
// Filtering, sorting and pagination are presentation concerns of the caller.
func (r *Reconciler) List(ctx context.Context) ([]types.DeviceRecord, error) {
	list, err := r.lister.ListApplications(ctx)
	if err != nil {
		metrics.InventoryFetchesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("fetching application inventory: %w", err)
	}

	records := make([]types.DeviceRecord, 0, len(list.Items))
	for i := range list.Items {
		records = append(records, r.project(&list.Items[i]))
	}

	metrics.InventoryFetchesTotal.WithLabelValues("ok").Inc()
	logger := log.WithComponent("inventory")
	logger.Debug().Int("count", len(records)).Msg("inventory projected")
	return records, nil
}

// project maps one controller application onto a device record. Only the
// dashboard fields are kept; missing health or sync state normalizes to
// Unknown rather than failing the item.
func (r *Reconciler) project(app *types.Application) types.DeviceRecord {
	record := types.DeviceRecord{
		Identity:    identity.Decode(app.Metadata.Name),
		AppName:     app.Metadata.Name,
		Namespace:   app.Spec.Destination.Namespace,
		Cluster:     app.Spec.Destination.Server,
		RepoURL:     app.Spec.Source.RepoURL,
		Health:      types.HealthUnknown,
		SyncStatus:  types.SyncUnknown,
		ClusterFQDN: r.clusterFQDN,
	}

	if app.Status != nil {
		if app.Status.Health != nil {
			record.Health = types.NormalizeHealth(app.Status.Health.Status)
		}
		if app.Status.Sync != nil {
			record.SyncStatus = types.NormalizeSyncStatus(app.Status.Sync.Status)
		}
		if app.Status.OperationState != nil {
			record.LastSyncAt = app.Status.OperationState.FinishedAt
		}
	}

	if r.clusterFQDN != "" && record.Namespace != "" {
		record.RouteHost = fmt.Sprintf("%s-%s.%s", record.AppName, record.Namespace, r.clusterFQDN)
	}

	return record
}
