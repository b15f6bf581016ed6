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

package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// servicesPrefix returns the service list URL for the client's
// microversion. The os- prefixed form predates microversion 2.7.
func (c *Client) servicesPrefix() string {
	if c.parsed.AtLeast(v2_7) {
		return "/services"
	}

	return "/os-services"
}

// availabilityZonesPrefix returns the availability zone list URL. The
// os-availability-zone form predates microversion 2.7.
func (c *Client) availabilityZonesPrefix() string {
	if c.parsed.AtLeast(v2_7) {
		return "/availability-zones"
	}

	return "/os-availability-zone"
}

// ListServices lists the deployment's scheduler and share services,
// admin only.
func (c *Client) ListServices(ctx context.Context, params url.Values, opts ...RequestOption) ([]map[string]any, error) {
	path := c.servicesPrefix()
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	body, err := c.Get(ctx, path, http.StatusOK, opts...)
	if err != nil {
		return nil, fmt.Errorf("listing services: %w", err)
	}

	return unwrapList(body, "services")
}

// ListAvailabilityZones lists the availability zones shares can be
// scheduled into.
func (c *Client) ListAvailabilityZones(ctx context.Context, opts ...RequestOption) ([]map[string]any, error) {
	body, err := c.Get(ctx, c.availabilityZonesPrefix(), http.StatusOK, opts...)
	if err != nil {
		return nil, fmt.Errorf("listing availability zones: %w", err)
	}

	return unwrapList(body, "availability_zones")
}

// ListPools lists the scheduler's storage pools, admin only.
func (c *Client) ListPools(ctx context.Context, detailed bool, params url.Values, opts ...RequestOption) ([]map[string]any, error) {
	path := c.endpoints.Pools()
	if detailed {
		path = c.endpoints.PoolsDetail()
	}

	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	body, err := c.Get(ctx, path, http.StatusOK, opts...)
	if err != nil {
		return nil, fmt.Errorf("listing pools: %w", err)
	}

	return unwrapList(body, "pools")
}

// APIVersion describes one version the endpoint advertises.
type APIVersion struct {
	ID         string
	Status     string
	MinVersion string
	MaxVersion string
}

// ListAPIVersions queries the unversioned endpoint root for the versions
// the service advertises, used for microversion negotiation.
func (c *Client) ListAPIVersions(ctx context.Context, opts ...RequestOption) ([]APIVersion, error) {
	// The version document lives above the versioned base URL.
	root := strings.TrimSuffix(strings.TrimSuffix(c.baseURL, "/v2"), "/v1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, root+"/", nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	if c.authToken != "" {
		req.Header.Set(AuthTokenHeader, c.authToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("listing api versions: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusMultipleChoices {
		return nil, fmt.Errorf("listing api versions: unexpected status %d", resp.StatusCode)
	}

	var envelope struct {
		Versions []struct {
			ID         string `json:"id"`
			Status     string `json:"status"`
			MinVersion string `json:"min_version"`
			MaxVersion string `json:"version"`
		} `json:"versions"`
	}

	if err := decodeJSON(resp, &envelope); err != nil {
		return nil, err
	}

	versions := make([]APIVersion, 0, len(envelope.Versions))

	for _, v := range envelope.Versions {
		versions = append(versions, APIVersion{
			ID:         v.ID,
			Status:     v.Status,
			MinVersion: v.MinVersion,
			MaxVersion: v.MaxVersion,
		})
	}

	return versions, nil
}

// NegotiateMicroversion clamps the client's configured microversion to
// the range the endpoint advertises for the v2 API, returning the token
// it settles on.
func (c *Client) NegotiateMicroversion(ctx context.Context) (string, error) {
	versions, err := c.ListAPIVersions(ctx)
	if err != nil {
		return "", err
	}

	for _, v := range versions {
		if v.ID != "v2.0" && v.ID != "v2" {
			continue
		}

		if v.MaxVersion == "" {
			break
		}

		ceiling, err := ParseMicroversion(v.MaxVersion)
		if err != nil {
			return "", err
		}

		if c.parsed.Compare(ceiling) > 0 {
			c.version = v.MaxVersion
			c.parsed = ceiling
		}

		return c.version, nil
	}

	return c.version, nil
}
