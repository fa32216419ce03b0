/*
Package argocd is the REST client for the continuous-delivery controller's
application API.

The client covers the four calls the workflow needs: create, full replace,
synchronize-with-prune, and inventory list. Errors are classified so callers
can branch without string matching:

  - APIError: any non-2xx controller response, carrying the verbatim status
    and body. IsConflict detects the 409 create response that triggers the
    update path.
  - TransportError: network-level failures (refused, timeout, TLS), kept
    distinct so callers can decide whether retrying is worthwhile.

All calls take a context; timeouts are the caller's policy, the client never
retries on its own.
*/
package argocd
