/*
Package types defines the core data structures of the device workflow
service.

This package contains the fundamental types shared by all other packages:

Device Identity:
  - DeviceIdentity: device name and id, encoded into the canonical
    application name by pkg/identity

Controller Application Model:
  - Application, ApplicationSpec, ApplicationSource, ApplicationDestination,
    SyncPolicy: the declarative payload sent to the CD controller
  - ApplicationStatus, ApplicationList: the controller's reported live state

Dashboard Projection:
  - DeviceRecord: read-only projection of one controller application,
    recomputed on every inventory fetch, never persisted
  - Health, SyncStatus: typed string enums passed through from the
    controller; unknown raw values normalize to Unknown

Workflow Results:
  - DeployResult with DeployStatus (deployed vs yaml_only)
  - ProvisionResult for repository provisioning
  - ValidationError for pre-network input rejection

All enums use typed string constants. The controller owns the authoritative
Application resource; nothing in this package is cached locally.
*/
package types
