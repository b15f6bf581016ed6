/*
Copyright 2026 SAP SE.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package client is a REST client for the share service API. Every request
// carries a microversion header, every response must echo a request
// correlation ID, and every operation checks the response status against
// the code documented for it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sapcc/manila-tempest-plugin/pkg/wait"
)

const (
	// MicroversionHeader gates which fields and behaviours the backend
	// exposes for a request.
	MicroversionHeader = "X-Openstack-Manila-Api-Version"

	// ExperimentalHeader must accompany requests to experimental APIs.
	ExperimentalHeader = "X-Openstack-Manila-Api-Experimental"

	// RequestIDHeader is the correlation ID the service stamps on every
	// response. Its absence fails the request.
	RequestIDHeader = "X-Compute-Request-Id"

	// AuthTokenHeader carries the caller's token.
	AuthTokenHeader = "X-Auth-Token"
)

// DefaultMicroversion is the ceiling sent when none is configured.
const DefaultMicroversion = "2.40"

var (
	v2_7  = Microversion{Major: 2, Minor: 7}
	v2_25 = Microversion{Major: 2, Minor: 25}
)

// Options configures a Client.
type Options struct {
	// BaseURL is the versioned endpoint, e.g. http://host:8786/v2.
	BaseURL string

	// AuthToken is sent as X-Auth-Token when non-empty.
	AuthToken string

	// Microversion is the version token sent on every request unless an
	// operation overrides it.
	Microversion string

	// RequestTimeout bounds a single HTTP round trip.
	RequestTimeout time.Duration

	// BuildInterval and BuildTimeout bound the status waiters.
	BuildInterval time.Duration
	BuildTimeout  time.Duration

	// Logf receives request logging. Nil disables it.
	Logf func(format string, args ...any)
}

// Client talks to one share service endpoint with one identity.
type Client struct {
	baseURL   string
	http      *http.Client
	authToken string
	version   string
	parsed    Microversion
	build     wait.Config
	logf      func(format string, args ...any)
	endpoints *Endpoints
}

// New creates a client. The configured microversion must parse.
func New(opts Options) (*Client, error) {
	if opts.Microversion == "" {
		opts.Microversion = DefaultMicroversion
	}

	parsed, err := ParseMicroversion(opts.Microversion)
	if err != nil {
		return nil, err
	}

	if opts.RequestTimeout == 0 {
		opts.RequestTimeout = 30 * time.Second
	}

	if opts.BuildInterval == 0 {
		opts.BuildInterval = 3 * time.Second
	}

	if opts.BuildTimeout == 0 {
		opts.BuildTimeout = 5 * time.Minute
	}

	logf := opts.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	return &Client{
		baseURL:   strings.TrimSuffix(opts.BaseURL, "/"),
		http:      &http.Client{Timeout: opts.RequestTimeout},
		authToken: opts.AuthToken,
		version:   opts.Microversion,
		parsed:    parsed,
		build: wait.Config{
			Interval: opts.BuildInterval,
			Timeout:  opts.BuildTimeout,
		},
		logf:      logf,
		endpoints: NewEndpoints(),
	}, nil
}

// Microversion returns the version token the client negotiates with.
func (c *Client) Microversion() string {
	return c.version
}

// Supports reports whether the client's negotiated microversion is at
// least v. Malformed v counts as unsupported.
func (c *Client) Supports(v string) bool {
	parsed, err := ParseMicroversion(v)
	if err != nil {
		return false
	}

	return c.parsed.AtLeast(parsed)
}

// BuildConfig exposes the waiter bounds so fixtures can reuse them.
func (c *Client) BuildConfig() wait.Config {
	return c.build
}

type requestOptions struct {
	version      string
	experimental bool
	noVersion    bool
}

// RequestOption adjusts a single request.
type RequestOption func(*requestOptions)

// WithMicroversion overrides the version header for one request.
func WithMicroversion(v string) RequestOption {
	return func(o *requestOptions) {
		o.version = v
	}
}

// WithExperimental marks the request as targeting an experimental API.
func WithExperimental() RequestOption {
	return func(o *requestOptions) {
		o.experimental = true
	}
}

// WithoutMicroversion omits the version header entirely, used by the
// version negotiation tests.
func WithoutMicroversion() RequestOption {
	return func(o *requestOptions) {
		o.noVersion = true
	}
}

// do performs one request and enforces the response envelope invariants:
// the correlation header must be present and the status code must match
// expected. Expected 0 skips the status check.
func (c *Client) do(ctx context.Context, method, path string, payload any, expected int, opts ...RequestOption) ([]byte, *http.Response, error) {
	options := requestOptions{version: c.version}
	for _, opt := range opts {
		opt(&options)
	}

	var body io.Reader

	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, fmt.Errorf("marshaling request body: %w", err)
		}

		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, nil, fmt.Errorf("creating request: %w", err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if !options.noVersion {
		req.Header.Set(MicroversionHeader, options.version)
	}

	if options.experimental {
		req.Header.Set(ExperimentalHeader, "True")
	}

	if c.authToken != "" {
		req.Header.Set(AuthTokenHeader, c.authToken)
	}

	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("http request failed: %w", err)
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp, fmt.Errorf("reading response body: %w", err)
	}

	requestID := resp.Header.Get(RequestIDHeader)

	c.logf("[%s %s] status=%d duration=%s request-id=%s", method, path, resp.StatusCode, time.Since(start), requestID)

	if requestID == "" {
		return respBody, resp, fmt.Errorf("response for %s %s is missing the %s header", method, path, RequestIDHeader)
	}

	if expected > 0 && resp.StatusCode != expected {
		return respBody, resp, &APIError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Expected:   expected,
			Body:       string(respBody),
			RequestID:  requestID,
		}
	}

	return respBody, resp, nil
}

// Get issues a GET expecting the given status.
func (c *Client) Get(ctx context.Context, path string, expected int, opts ...RequestOption) ([]byte, error) {
	body, _, err := c.do(ctx, http.MethodGet, path, nil, expected, opts...)
	return body, err
}

// Post issues a POST with a JSON payload expecting the given status.
func (c *Client) Post(ctx context.Context, path string, payload any, expected int, opts ...RequestOption) ([]byte, error) {
	body, _, err := c.do(ctx, http.MethodPost, path, payload, expected, opts...)
	return body, err
}

// Put issues a PUT with a JSON payload expecting the given status.
func (c *Client) Put(ctx context.Context, path string, payload any, expected int, opts ...RequestOption) ([]byte, error) {
	body, _, err := c.do(ctx, http.MethodPut, path, payload, expected, opts...)
	return body, err
}

// Patch issues a PATCH with a JSON payload expecting the given status.
func (c *Client) Patch(ctx context.Context, path string, payload any, expected int, opts ...RequestOption) ([]byte, error) {
	body, _, err := c.do(ctx, http.MethodPatch, path, payload, expected, opts...)
	return body, err
}

// Delete issues a DELETE expecting the given status.
func (c *Client) Delete(ctx context.Context, path string, expected int, opts ...RequestOption) ([]byte, error) {
	body, _, err := c.do(ctx, http.MethodDelete, path, nil, expected, opts...)
	return body, err
}

// Head issues a HEAD expecting the given status.
func (c *Client) Head(ctx context.Context, path string, expected int, opts ...RequestOption) (*http.Response, error) {
	_, resp, err := c.do(ctx, http.MethodHead, path, nil, expected, opts...)
	return resp, err
}

// unwrapObject extracts the single-object envelope the API wraps responses
// in, e.g. {"share": {...}}.
func unwrapObject(body []byte, key string) (map[string]any, error) {
	var envelope map[string]json.RawMessage

	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	raw, ok := envelope[key]
	if !ok {
		return nil, fmt.Errorf("response is missing the %q envelope", key)
	}

	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decoding %q envelope: %w", key, err)
	}

	return out, nil
}

// unwrapList extracts a list envelope, e.g. {"shares": [...]}.
func unwrapList(body []byte, key string) ([]map[string]any, error) {
	var envelope map[string]json.RawMessage

	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	raw, ok := envelope[key]
	if !ok {
		return nil, fmt.Errorf("response is missing the %q envelope", key)
	}

	var out []map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decoding %q envelope: %w", key, err)
	}

	return out, nil
}

// decodeJSON decodes a response body into out.
func decodeJSON(resp *http.Response, out any) error {
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

// stringField fetches a string attribute from a decoded resource body.
func stringField(resource map[string]any, attr string) string {
	value, _ := resource[attr].(string)
	return value
}

// actionName returns the action's modern name, or the os- prefixed legacy
// form for versions predating microversion 2.7.
func actionName(version Microversion, name string) string {
	if version.AtLeast(v2_7) {
		return name
	}

	return "os-" + name
}
