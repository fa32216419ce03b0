package types

import (
	"fmt"
	"time"
)

// DeviceIdentity identifies a single managed device.
// Name is the human-assigned device name, ID the stable device token.
// Instances are constructed once per workflow invocation and never mutated.
type DeviceIdentity struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// Health represents application health as reported by the CD controller.
// Values are passed through from the controller, never computed locally.
type Health string

const (
	HealthHealthy  Health = "Healthy"
	HealthDegraded Health = "Degraded"
	HealthError    Health = "Error"
	HealthUnknown  Health = "Unknown"
)

// NormalizeHealth maps a raw controller health string onto the Health enum.
// Empty or unrecognized values normalize to HealthUnknown.
func NormalizeHealth(raw string) Health {
	switch Health(raw) {
	case HealthHealthy, HealthDegraded, HealthError:
		return Health(raw)
	default:
		return HealthUnknown
	}
}

// SyncStatus represents the controller's sync state for an application.
type SyncStatus string

const (
	SyncSynced    SyncStatus = "Synced"
	SyncOutOfSync SyncStatus = "OutOfSync"
	SyncUnknown   SyncStatus = "Unknown"
)

// NormalizeSyncStatus maps a raw controller sync string onto SyncStatus.
func NormalizeSyncStatus(raw string) SyncStatus {
	switch SyncStatus(raw) {
	case SyncSynced, SyncOutOfSync:
		return SyncStatus(raw)
	default:
		return SyncUnknown
	}
}

// Application is the declarative payload exchanged with the CD controller's
// application API. Field names follow the controller's wire format.
type Application struct {
	Metadata ApplicationMetadata `json:"metadata" yaml:"metadata"`
	Spec     ApplicationSpec     `json:"spec" yaml:"spec"`
	Status   *ApplicationStatus  `json:"status,omitempty" yaml:"-"`
}

// ApplicationMetadata holds application identity within the controller.
type ApplicationMetadata struct {
	Name      string `json:"name" yaml:"name"`
	Namespace string `json:"namespace" yaml:"namespace"`
}

// ApplicationSpec defines the desired state of a device application.
type ApplicationSpec struct {
	Project     string                 `json:"project" yaml:"project"`
	Source      ApplicationSource      `json:"source" yaml:"source"`
	Destination ApplicationDestination `json:"destination" yaml:"destination"`
	SyncPolicy  *SyncPolicy            `json:"syncPolicy,omitempty" yaml:"syncPolicy,omitempty"`
}

// ApplicationSource points at the device's GitOps repository.
type ApplicationSource struct {
	RepoURL        string `json:"repoURL" yaml:"repoURL"`
	TargetRevision string `json:"targetRevision" yaml:"targetRevision"`
	Path           string `json:"path" yaml:"path"`
}

// ApplicationDestination is the cluster and namespace the application
// deploys into.
type ApplicationDestination struct {
	Server    string `json:"server" yaml:"server"`
	Namespace string `json:"namespace" yaml:"namespace"`
}

// SyncPolicy configures automated convergence for an application.
type SyncPolicy struct {
	Automated   *AutomatedSync `json:"automated,omitempty" yaml:"automated,omitempty"`
	SyncOptions []string       `json:"syncOptions,omitempty" yaml:"syncOptions,omitempty"`
}

// AutomatedSync enables controller-driven pruning and self healing.
type AutomatedSync struct {
	Prune    bool `json:"prune" yaml:"prune"`
	SelfHeal bool `json:"selfHeal" yaml:"selfHeal"`
}

// ApplicationStatus is the controller-reported live state of an application.
type ApplicationStatus struct {
	Sync           *SyncStatusInfo `json:"sync,omitempty"`
	Health         *HealthInfo     `json:"health,omitempty"`
	OperationState *OperationState `json:"operationState,omitempty"`
}

// SyncStatusInfo holds the raw sync state string from the controller.
type SyncStatusInfo struct {
	Status string `json:"status"`
}

// HealthInfo holds the raw health state string from the controller.
type HealthInfo struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// OperationState reports the most recent sync operation.
type OperationState struct {
	Phase      string    `json:"phase,omitempty"`
	FinishedAt time.Time `json:"finishedAt,omitempty"`
}

// ApplicationList is the controller's list response envelope.
type ApplicationList struct {
	Items []Application `json:"items"`
}

// DeviceRecord is the dashboard projection of one controller application.
// It is derived read-only from the controller inventory on every fetch and
// never persisted.
type DeviceRecord struct {
	Identity    DeviceIdentity `json:"device"`
	AppName     string         `json:"appName"`
	Namespace   string         `json:"namespace"`
	Cluster     string         `json:"cluster"`
	Health      Health         `json:"health"`
	SyncStatus  SyncStatus     `json:"syncStatus"`
	LastSyncAt  time.Time      `json:"lastSync,omitempty"`
	RepoURL     string         `json:"repoUrl"`
	ClusterFQDN string         `json:"clusterFqdn,omitempty"`
	RouteHost   string         `json:"routeHost,omitempty"`
}

// DeployStatus is the terminal status of a deploy workflow invocation.
type DeployStatus string

const (
	// StatusDeployed means the application resource exists in the controller
	// with the submitted spec. A failed sync does not revoke this status.
	StatusDeployed DeployStatus = "deployed"

	// StatusYAMLOnly means the manifest was rendered without any network call.
	StatusYAMLOnly DeployStatus = "yaml_only"
)

// DeployResult is the outcome of an upsert workflow.
type DeployResult struct {
	Status             DeployStatus `json:"status"`
	AppName            string       `json:"app_name"`
	YAML               string       `json:"argocd_yaml"`
	Descriptor         *Application `json:"-"`
	ControllerResponse string       `json:"argocd_response,omitempty"`
	SyncResponse       string       `json:"argocd_sync_response,omitempty"`
	SyncError          string       `json:"sync_error,omitempty"`
}

// ProvisionResult is the outcome of a device repository provisioning run.
type ProvisionResult struct {
	RepoName string `json:"repo_name"`
	RepoURL  string `json:"repo_url"`
}

// ValidationError reports malformed or missing required input. It is
// returned before any network call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for the given input field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
