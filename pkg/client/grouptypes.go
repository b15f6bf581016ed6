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

// CreateShareGroupType creates a share group type bound to the given
// share type IDs.
func (c *Client) CreateShareGroupType(ctx context.Context, name string, shareTypeIDs []string, public bool, groupSpecs map[string]string, opts ...RequestOption) (map[string]any, error) {
	inner := map[string]any{
		"name":        name,
		"share_types": shareTypeIDs,
		"is_public":   public,
	}

	if groupSpecs != nil {
		inner["group_specs"] = groupSpecs
	}

	body, err := c.Post(ctx, c.endpoints.ShareGroupTypes(), map[string]any{"share_group_type": inner}, http.StatusOK, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating share group type: %w", err)
	}

	return unwrapObject(body, "share_group_type")
}

// GetShareGroupType retrieves one share group type.
func (c *Client) GetShareGroupType(ctx context.Context, groupTypeID string, opts ...RequestOption) (map[string]any, error) {
	body, err := c.Get(ctx, c.endpoints.ShareGroupType(groupTypeID), http.StatusOK, opts...)
	if err != nil {
		return nil, err
	}

	return unwrapObject(body, "share_group_type")
}

// GetDefaultShareGroupType retrieves the deployment's default group type.
func (c *Client) GetDefaultShareGroupType(ctx context.Context, opts ...RequestOption) (map[string]any, error) {
	body, err := c.Get(ctx, c.endpoints.ShareGroupTypesDefault(), http.StatusOK, opts...)
	if err != nil {
		return nil, fmt.Errorf("getting default share group type: %w", err)
	}

	return unwrapObject(body, "share_group_type")
}

// ListShareGroupTypes lists share group types.
func (c *Client) ListShareGroupTypes(ctx context.Context, params url.Values, opts ...RequestOption) ([]map[string]any, error) {
	path := c.endpoints.ShareGroupTypes()
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	body, err := c.Get(ctx, path, http.StatusOK, opts...)
	if err != nil {
		return nil, fmt.Errorf("listing share group types: %w", err)
	}

	return unwrapList(body, "share_group_types")
}

// DeleteShareGroupType deletes a share group type.
func (c *Client) DeleteShareGroupType(ctx context.Context, groupTypeID string, opts ...RequestOption) error {
	if _, err := c.Delete(ctx, c.endpoints.ShareGroupType(groupTypeID), http.StatusAccepted, opts...); err != nil {
		return err
	}

	return nil
}

// SetShareGroupTypeSpecs merges group specs into a share group type.
func (c *Client) SetShareGroupTypeSpecs(ctx context.Context, groupTypeID string, specs map[string]string, opts ...RequestOption) (map[string]any, error) {
	body, err := c.Post(ctx, c.endpoints.ShareGroupTypeSpecs(groupTypeID), map[string]any{"group_specs": specs}, http.StatusOK, opts...)
	if err != nil {
		return nil, fmt.Errorf("setting share group type specs: %w", err)
	}

	return unwrapObject(body, "group_specs")
}

// GetShareGroupTypeSpecs retrieves a group type's specs.
func (c *Client) GetShareGroupTypeSpecs(ctx context.Context, groupTypeID string, opts ...RequestOption) (map[string]any, error) {
	body, err := c.Get(ctx, c.endpoints.ShareGroupTypeSpecs(groupTypeID), http.StatusOK, opts...)
	if err != nil {
		return nil, fmt.Errorf("getting share group type specs: %w", err)
	}

	return unwrapObject(body, "group_specs")
}

// DeleteShareGroupTypeSpec removes one group spec key.
func (c *Client) DeleteShareGroupTypeSpec(ctx context.Context, groupTypeID, key string, opts ...RequestOption) error {
	if _, err := c.Delete(ctx, c.endpoints.ShareGroupTypeSpec(groupTypeID, key), http.StatusNoContent, opts...); err != nil {
		return fmt.Errorf("deleting share group type spec: %w", err)
	}

	return nil
}

// ListShareGroupTypeAccess lists projects granted access to a private
// group type.
func (c *Client) ListShareGroupTypeAccess(ctx context.Context, groupTypeID string, opts ...RequestOption) ([]map[string]any, error) {
	body, err := c.Get(ctx, c.endpoints.ShareGroupTypeAccess(groupTypeID), http.StatusOK, opts...)
	if err != nil {
		return nil, fmt.Errorf("listing share group type access: %w", err)
	}

	return unwrapList(body, "share_group_type_access")
}

// AddShareGroupTypeAccess grants a project access to a private group type.
func (c *Client) AddShareGroupTypeAccess(ctx context.Context, groupTypeID, projectID string, opts ...RequestOption) error {
	payload := map[string]any{
		"addProjectAccess": map[string]any{"project": projectID},
	}

	if _, err := c.Post(ctx, c.endpoints.ShareGroupTypeAction(groupTypeID), payload, http.StatusAccepted, opts...); err != nil {
		return fmt.Errorf("adding share group type access: %w", err)
	}

	return nil
}

// RemoveShareGroupTypeAccess revokes a project's access to a private
// group type.
func (c *Client) RemoveShareGroupTypeAccess(ctx context.Context, groupTypeID, projectID string, opts ...RequestOption) error {
	payload := map[string]any{
		"removeProjectAccess": map[string]any{"project": projectID},
	}

	if _, err := c.Post(ctx, c.endpoints.ShareGroupTypeAction(groupTypeID), payload, http.StatusAccepted, opts...); err != nil {
		return fmt.Errorf("removing share group type access: %w", err)
	}

	return nil
}
