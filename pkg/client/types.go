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

// DriverHandlesShareServers is the extra spec every share type must carry.
const DriverHandlesShareServers = "driver_handles_share_servers"

// CreateShareType creates a share type. The extra specs must include
// driver_handles_share_servers.
func (c *Client) CreateShareType(ctx context.Context, name string, public bool, extraSpecs map[string]string, opts ...RequestOption) (map[string]any, error) {
	inner := map[string]any{
		"name":                        name,
		"os-share-type-access:is_public": public,
		"extra_specs":                 extraSpecs,
	}

	body, err := c.Post(ctx, c.endpoints.ShareTypes(), map[string]any{"share_type": inner}, http.StatusOK, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating share type: %w", err)
	}

	return unwrapObject(body, "share_type")
}

// GetShareType retrieves one share type.
func (c *Client) GetShareType(ctx context.Context, typeID string, opts ...RequestOption) (map[string]any, error) {
	body, err := c.Get(ctx, c.endpoints.ShareType(typeID), http.StatusOK, opts...)
	if err != nil {
		return nil, err
	}

	return unwrapObject(body, "share_type")
}

// GetDefaultShareType retrieves the deployment's default share type.
func (c *Client) GetDefaultShareType(ctx context.Context, opts ...RequestOption) (map[string]any, error) {
	body, err := c.Get(ctx, c.endpoints.ShareTypesDefault(), http.StatusOK, opts...)
	if err != nil {
		return nil, fmt.Errorf("getting default share type: %w", err)
	}

	return unwrapObject(body, "share_type")
}

// ListShareTypes lists share types. Params carries optional filters such
// as is_public.
func (c *Client) ListShareTypes(ctx context.Context, params url.Values, opts ...RequestOption) ([]map[string]any, error) {
	path := c.endpoints.ShareTypes()
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	body, err := c.Get(ctx, path, http.StatusOK, opts...)
	if err != nil {
		return nil, fmt.Errorf("listing share types: %w", err)
	}

	return unwrapList(body, "share_types")
}

// DeleteShareType deletes a share type.
func (c *Client) DeleteShareType(ctx context.Context, typeID string, opts ...RequestOption) error {
	if _, err := c.Delete(ctx, c.endpoints.ShareType(typeID), http.StatusAccepted, opts...); err != nil {
		return err
	}

	return nil
}

// SetShareTypeExtraSpecs merges extra specs into a share type.
func (c *Client) SetShareTypeExtraSpecs(ctx context.Context, typeID string, specs map[string]string, opts ...RequestOption) (map[string]any, error) {
	body, err := c.Post(ctx, c.endpoints.ShareTypeExtraSpecs(typeID), map[string]any{"extra_specs": specs}, http.StatusOK, opts...)
	if err != nil {
		return nil, fmt.Errorf("setting share type extra specs: %w", err)
	}

	return unwrapObject(body, "extra_specs")
}

// GetShareTypeExtraSpecs retrieves a share type's extra specs.
func (c *Client) GetShareTypeExtraSpecs(ctx context.Context, typeID string, opts ...RequestOption) (map[string]any, error) {
	body, err := c.Get(ctx, c.endpoints.ShareTypeExtraSpecs(typeID), http.StatusOK, opts...)
	if err != nil {
		return nil, fmt.Errorf("getting share type extra specs: %w", err)
	}

	return unwrapObject(body, "extra_specs")
}

// DeleteShareTypeExtraSpec removes one extra spec key from a share type.
func (c *Client) DeleteShareTypeExtraSpec(ctx context.Context, typeID, key string, opts ...RequestOption) error {
	if _, err := c.Delete(ctx, c.endpoints.ShareTypeExtraSpec(typeID, key), http.StatusAccepted, opts...); err != nil {
		return fmt.Errorf("deleting share type extra spec: %w", err)
	}

	return nil
}

// ListShareTypeAccess lists the projects granted access to a private
// share type.
func (c *Client) ListShareTypeAccess(ctx context.Context, typeID string, opts ...RequestOption) ([]map[string]any, error) {
	body, err := c.Get(ctx, c.endpoints.ShareTypeAccess(typeID), http.StatusOK, opts...)
	if err != nil {
		return nil, fmt.Errorf("listing share type access: %w", err)
	}

	return unwrapList(body, "share_type_access")
}

// AddShareTypeAccess grants a project access to a private share type.
func (c *Client) AddShareTypeAccess(ctx context.Context, typeID, projectID string, opts ...RequestOption) error {
	payload := map[string]any{
		"addProjectAccess": map[string]any{"project": projectID},
	}

	if _, err := c.Post(ctx, c.endpoints.ShareTypeAction(typeID), payload, http.StatusAccepted, opts...); err != nil {
		return fmt.Errorf("adding share type access: %w", err)
	}

	return nil
}

// RemoveShareTypeAccess revokes a project's access to a private share type.
func (c *Client) RemoveShareTypeAccess(ctx context.Context, typeID, projectID string, opts ...RequestOption) error {
	payload := map[string]any{
		"removeProjectAccess": map[string]any{"project": projectID},
	}

	if _, err := c.Post(ctx, c.endpoints.ShareTypeAction(typeID), payload, http.StatusAccepted, opts...); err != nil {
		return fmt.Errorf("removing share type access: %w", err)
	}

	return nil
}
