// Package grafana is a thin external collaborator: it knows how to reach
// Grafana's HTTP API for dashboards and data sources and how to fan a
// write out across a master plus zero or more slave instances, but
// nothing about patch or selector semantics. There is no Grafana client
// SDK to build on, so it talks to the REST API directly over net/http.
package grafana

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-logr/logr"

	"github.com/dashpatch/dashpatch/internal/grafana/config"
)

// Client is a single Grafana instance's HTTP endpoint, authenticated with
// either a bearer token or basic auth.
type Client struct {
	baseURL    string
	httpClient *http.Client
	creds      config.Credentials
	log        logr.Logger
}

// NewClient builds a Client for one instance. No network call happens
// here; TestConnection is the explicit health check.
func NewClient(inst config.InstanceConfig, log logr.Logger) *Client {
	return &Client{
		baseURL:    inst.URL,
		httpClient: http.DefaultClient,
		creds:      inst.Credentials,
		log:        log,
	}
}

func (c *Client) authenticate(req *http.Request) {
	if c.creds.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.creds.Token)
		return
	}
	if c.creds.Username != "" {
		req.SetBasicAuth(c.creds.Username, c.creds.Password)
	}
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("grafana: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authenticate(req)

	c.log.V(1).Info("grafana request", "method", method, "path", path)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("grafana: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("grafana: read response body: %w", err)
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("grafana: %s %s: status %d: %s", method, path, resp.StatusCode, string(respBody))
	}
	return respBody, nil
}

// TestConnection checks reachability and authentication with a
// best-effort boolean probe.
func (c *Client) TestConnection(ctx context.Context) bool {
	_, err := c.do(ctx, http.MethodGet, "/api/health", nil)
	return err == nil
}
