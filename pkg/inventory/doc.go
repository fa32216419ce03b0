/*
Package inventory projects the CD controller's live application list into
the device dashboard view.

The reconciler fetches the full inventory on every call and projects each
item into a DeviceRecord: name decoded through the identity codec, health
and sync state normalized (missing or unknown values become Unknown), the
last sync time and source repo carried through, and the caller-supplied
cluster FQDN attached for route-host construction.

The projection is complete and order-preserving; any fetch error aborts the
whole listing rather than returning partial data. Nothing is cached: the
controller owns the authoritative state.
*/
package inventory
