package argocd

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client wraps the CD controller's application REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	authToken  string
}

// Config holds controller client configuration.
type Config struct {
	APIURL      string
	AuthToken   string
	InsecureTLS bool
	Timeout     time.Duration
}

// NewClient creates a new controller API client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIURL == "" {
		return nil, fmt.Errorf("controller API URL is required")
	}
	if cfg.AuthToken == "" {
		return nil, fmt.Errorf("controller auth token is required")
	}

	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	transport := &http.Transport{}
	if cfg.InsecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &Client{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		baseURL:   strings.TrimRight(cfg.APIURL, "/"),
		authToken: cfg.AuthToken,
	}, nil
}

// Ping checks if the controller API is reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return fmt.Errorf("creating ping request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.authToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: "ping", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ping returned status %d", resp.StatusCode)
	}

	return nil
}

// do sends one request with bearer auth and returns status and raw body.
// Network failures come back as TransportError; HTTP status handling is the
// caller's concern.
func (c *Client) do(ctx context.Context, op, method, path string, payload interface{}) (int, []byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("marshaling %s payload: %w", op, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("creating %s request: %w", op, err)
	}

	req.Header.Set("Authorization", "Bearer "+c.authToken)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, &TransportError{Op: op, Err: err}
	}

	return resp.StatusCode, body, nil
}
