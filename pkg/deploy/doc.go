/*
Package deploy orchestrates the create-or-replace-then-sync workflow that
puts a device's application resource into the CD controller.

The workflow is an explicit state machine:

	Building -> Creating -> {Created | Conflict} -> Updating? -> Syncing -> {Deployed | Failed}

Creating submits the descriptor; a 409 means the application already exists
and the same descriptor is resubmitted as a full replace (the descriptor is
authoritative, drift is overwritten). After a successful create or update a
synchronize-with-prune is requested. Sync failures are reported in the result
but never fail the operation: the resource definition is in place and the
controller converges it on later reconcile loops.

YAMLOnly requests short-circuit after Building and perform no network calls.

The orchestrator keeps no state between invocations and never retries;
idempotence comes entirely from keying create and update on the same
canonical application name, so concurrent or repeated upserts for one device
converge to a single resource.
*/
package deploy
