/*
Copyright 2026 The kqlsight Authors
SPDX-License-Identifier: Apache-2.0
*/

package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	// DefaultBaseURL is the public Log Analytics query endpoint.
	DefaultBaseURL = "https://api.loganalytics.io"

	tokenURLFormat = "https://login.microsoftonline.com/%s/oauth2/v2.0/token"
	scope          = "https://api.loganalytics.io/.default"

	defaultTimeout = 60 * time.Second

	// maxResponseBytes caps how much of a query response is read.
	maxResponseBytes = 16 << 20

	// probeQuery verifies workspace access without touching real tables.
	probeQuery = "print 'Connection successful'"
)

// Credentials identifies the Azure AD application allowed to read workspaces.
type Credentials struct {
	TenantID     string
	ClientID     string
	ClientSecret string
}

// Validate reports the first missing field.
func (c Credentials) Validate() error {
	switch {
	case c.TenantID == "":
		return errors.New("tenant id is required")
	case c.ClientID == "":
		return errors.New("client id is required")
	case c.ClientSecret == "":
		return errors.New("client secret is required")
	}
	return nil
}

// TokenSource builds the client-credentials token source for the Log
// Analytics resource. Tokens are cached and refreshed automatically.
func (c Credentials) TokenSource(ctx context.Context) oauth2.TokenSource {
	cfg := &clientcredentials.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		TokenURL:     fmt.Sprintf(tokenURLFormat, c.TenantID),
		Scopes:       []string{scope},
	}
	return cfg.TokenSource(ctx)
}

// Client runs KQL queries against the Log Analytics REST API.
type Client struct {
	base   string
	source oauth2.TokenSource
	http   *http.Client
}

// Option adjusts a Client.
type Option func(*Client)

// WithBaseURL points the client at a different query endpoint, such as a
// sovereign cloud or a test server.
func WithBaseURL(base string) Option {
	return func(c *Client) { c.base = strings.TrimRight(base, "/") }
}

// WithTimeout bounds each query round trip.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// New returns a client that authenticates every request with a bearer
// token from source.
func New(source oauth2.TokenSource, opts ...Option) *Client {
	c := &Client{
		base:   DefaultBaseURL,
		source: source,
		http:   &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is a failure reported by the query service itself.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("query api: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("query api: %s: %s", e.Code, e.Message)
}

type queryRequest struct {
	Query    string `json:"query"`
	Timespan string `json:"timespan,omitempty"`
}

type wireColumn struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type wireTable struct {
	Name    string       `json:"name"`
	Columns []wireColumn `json:"columns"`
	Rows    [][]any      `json:"rows"`
}

type wireError struct {
	Code       string     `json:"code"`
	Message    string     `json:"message"`
	InnerError *wireError `json:"innererror"`
}

// deepest follows innererror chains to the most specific entry, which is
// where the service puts syntax errors and the like.
func (e *wireError) deepest() *wireError {
	for e.InnerError != nil {
		e = e.InnerError
	}
	return e
}

type queryResponse struct {
	Tables []wireTable `json:"tables"`
	Error  *wireError  `json:"error"`
}

// Query runs kql against the workspace over the given trailing window and
// returns every result table. A zero timespan lets the service pick its
// default window. Tables arriving alongside a service error mark the run
// PARTIAL rather than failing it.
func (c *Client) Query(ctx context.Context, workspaceID, kql string, timespan time.Duration) (*Result, error) {
	start := time.Now()

	body, err := json.Marshal(queryRequest{Query: kql, Timespan: Timespan(timespan)})
	if err != nil {
		return nil, fmt.Errorf("encode query request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/workspaces/%s/query", c.base, url.PathEscape(workspaceID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create query request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	tok, err := c.source.Token()
	if err != nil {
		return nil, fmt.Errorf("acquire token: %w", err)
	}
	tok.SetAuthHeader(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query workspace %s: %w", workspaceID, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read query response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp.StatusCode, raw)
	}

	var decoded queryResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("decode query response: %w", err)
	}

	result := &Result{
		Tables: make([]Table, 0, len(decoded.Tables)),
		Stats:  ExecStats{Status: StatusSuccess},
	}
	for _, t := range decoded.Tables {
		columns := make([]string, len(t.Columns))
		for i, col := range t.Columns {
			columns[i] = col.Name
		}
		rows := t.Rows
		if rows == nil {
			rows = [][]any{}
		}
		result.Tables = append(result.Tables, Table{Name: t.Name, Columns: columns, Rows: rows})
		result.TotalRows += len(rows)
	}
	if decoded.Error != nil {
		deep := decoded.Error.deepest()
		result.Stats.Status = StatusPartial
		result.Stats.Error = fmt.Sprintf("%s: %s", deep.Code, deep.Message)
	}
	result.Stats.ElapsedSec = time.Since(start).Seconds()
	return result, nil
}

// TestConnection proves the credential and workspace id work by running a
// trivial probe query.
func (c *Client) TestConnection(ctx context.Context, workspaceID string) error {
	_, err := c.Query(ctx, workspaceID, probeQuery, time.Hour)
	return err
}

// apiError builds the error for a non-200 reply, preferring the service's
// own code and message when the body carries them.
func apiError(status int, raw []byte) error {
	var decoded queryResponse
	if err := json.Unmarshal(raw, &decoded); err == nil && decoded.Error != nil {
		deep := decoded.Error.deepest()
		return &APIError{StatusCode: status, Code: deep.Code, Message: deep.Message}
	}
	msg := strings.TrimSpace(string(raw))
	if len(msg) > 300 {
		msg = msg[:300]
	}
	return &APIError{StatusCode: status, Message: msg}
}
