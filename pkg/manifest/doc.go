/*
Package manifest builds the declarative application descriptor for a device.

Build is a pure function from (identity, repoURL, destinationServer,
destinationNamespace) to a complete application descriptor. Identical inputs
always produce identical output, which is what makes the upsert path
idempotent: resubmitting the descriptor is always safe because it cannot
drift between calls.

RenderYAML wraps the descriptor in the apiVersion/kind envelope for callers
that want a manifest to apply by hand instead of deploying through the
controller API.
*/
package manifest
