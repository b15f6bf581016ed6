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
)

// quotaSetsPrefix returns the quota URL prefix for the client's
// microversion. The os- prefixed form predates microversion 2.7.
func (c *Client) quotaSetsPrefix() string {
	if c.parsed.AtLeast(v2_7) {
		return "/quota-sets"
	}

	return "/os-quota-sets"
}

func (c *Client) quotaSetPath(projectID, suffix string, userID, shareTypeID string) string {
	path := fmt.Sprintf("%s/%s%s", c.quotaSetsPrefix(), url.PathEscape(projectID), suffix)

	params := url.Values{}

	if userID != "" {
		params.Set("user_id", userID)
	}

	if shareTypeID != "" {
		params.Set("share_type", shareTypeID)
	}

	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	return path
}

// GetQuotas shows the effective quotas of a project, optionally scoped to
// one user or one share type.
func (c *Client) GetQuotas(ctx context.Context, projectID, userID, shareTypeID string, opts ...RequestOption) (map[string]any, error) {
	body, err := c.Get(ctx, c.quotaSetPath(projectID, "", userID, shareTypeID), http.StatusOK, opts...)
	if err != nil {
		return nil, fmt.Errorf("getting quotas: %w", err)
	}

	return unwrapObject(body, "quota_set")
}

// GetDefaultQuotas shows the deployment defaults for a project.
func (c *Client) GetDefaultQuotas(ctx context.Context, projectID string, opts ...RequestOption) (map[string]any, error) {
	body, err := c.Get(ctx, c.quotaSetPath(projectID, "/defaults", "", ""), http.StatusOK, opts...)
	if err != nil {
		return nil, fmt.Errorf("getting default quotas: %w", err)
	}

	return unwrapObject(body, "quota_set")
}

// GetDetailedQuotas shows quotas with in_use and reserved breakdowns,
// available from microversion 2.25.
func (c *Client) GetDetailedQuotas(ctx context.Context, projectID, userID, shareTypeID string, opts ...RequestOption) (map[string]any, error) {
	if !c.parsed.AtLeast(v2_25) {
		return nil, fmt.Errorf("detailed quotas require microversion %s, client negotiates %s", v2_25, c.version)
	}

	body, err := c.Get(ctx, c.quotaSetPath(projectID, "/detail", userID, shareTypeID), http.StatusOK, opts...)
	if err != nil {
		return nil, fmt.Errorf("getting detailed quotas: %w", err)
	}

	return unwrapObject(body, "quota_set")
}

// UpdateQuotas updates a project's quotas. The quotas map carries the
// limits to change, e.g. shares, gigabytes, snapshots, share_networks.
func (c *Client) UpdateQuotas(ctx context.Context, projectID, userID, shareTypeID string, quotas map[string]any, opts ...RequestOption) (map[string]any, error) {
	body, err := c.Put(ctx, c.quotaSetPath(projectID, "", userID, shareTypeID), map[string]any{"quota_set": quotas}, http.StatusOK, opts...)
	if err != nil {
		return nil, fmt.Errorf("updating quotas: %w", err)
	}

	return unwrapObject(body, "quota_set")
}

// ResetQuotas reverts a project's quotas to the deployment defaults.
func (c *Client) ResetQuotas(ctx context.Context, projectID, userID, shareTypeID string, opts ...RequestOption) error {
	if _, err := c.Delete(ctx, c.quotaSetPath(projectID, "", userID, shareTypeID), http.StatusAccepted, opts...); err != nil {
		return fmt.Errorf("resetting quotas: %w", err)
	}

	return nil
}
