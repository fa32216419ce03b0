package argocd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/davidc-dev/device-workflow/pkg/types"
)

const applicationsPath = "/api/v1/applications"

// CreateApplication submits a new application resource. A 409 comes back as
// an APIError for which IsConflict is true; it signals that the application
// already exists and should be replaced instead.
func (c *Client) CreateApplication(ctx context.Context, app *types.Application) (string, error) {
	status, body, err := c.do(ctx, "create", http.MethodPost, applicationsPath, app)
	if err != nil {
		return "", err
	}
	if status < 200 || status >= 300 {
		return "", &APIError{Op: "create", StatusCode: status, Body: string(body)}
	}
	return string(body), nil
}

// UpdateApplication replaces an existing application resource wholesale.
// The submitted spec is authoritative and overwrites any drift.
func (c *Client) UpdateApplication(ctx context.Context, app *types.Application) (string, error) {
	path := applicationsPath + "/" + url.PathEscape(app.Metadata.Name)
	status, body, err := c.do(ctx, "update", http.MethodPut, path, app)
	if err != nil {
		return "", err
	}
	if status < 200 || status >= 300 {
		return "", &APIError{Op: "update", StatusCode: status, Body: string(body)}
	}
	return string(body), nil
}

// syncRequest is the body of a synchronize call.
type syncRequest struct {
	Prune    bool         `json:"prune"`
	DryRun   bool         `json:"dryRun"`
	Strategy syncStrategy `json:"strategy"`
}

type syncStrategy struct {
	Hook struct{} `json:"hook"`
}

// SyncApplication requests an immediate synchronize-with-prune for the named
// application.
func (c *Client) SyncApplication(ctx context.Context, appName string) (string, error) {
	path := applicationsPath + "/" + url.PathEscape(appName) + "/sync"
	status, body, err := c.do(ctx, "sync", http.MethodPost, path, syncRequest{Prune: true})
	if err != nil {
		return "", err
	}
	if status < 200 || status >= 300 {
		return "", &APIError{Op: "sync", StatusCode: status, Body: string(body)}
	}
	return string(body), nil
}

// ListApplications fetches the controller's full live application inventory.
func (c *Client) ListApplications(ctx context.Context) (*types.ApplicationList, error) {
	status, body, err := c.do(ctx, "list", http.MethodGet, applicationsPath, nil)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, &APIError{Op: "list", StatusCode: status, Body: string(body)}
	}

	var list types.ApplicationList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("decoding application list: %w", err)
	}
	return &list, nil
}
