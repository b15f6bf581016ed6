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

	"github.com/sapcc/manila-tempest-plugin/pkg/wait"
)

// StatusAvailable is the settled status of a healthy resource.
const StatusAvailable = "available"

// CreateShare provisions a share. The share map is the inner body of the
// {"share": ...} envelope, provisioning is asynchronous, callers wait for
// the share to become available separately.
func (c *Client) CreateShare(ctx context.Context, share map[string]any, opts ...RequestOption) (map[string]any, error) {
	body, err := c.Post(ctx, c.endpoints.Shares(), map[string]any{"share": share}, http.StatusOK, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating share: %w", err)
	}

	return unwrapObject(body, "share")
}

// GetShare retrieves one share.
func (c *Client) GetShare(ctx context.Context, shareID string, opts ...RequestOption) (map[string]any, error) {
	body, err := c.Get(ctx, c.endpoints.Share(shareID), http.StatusOK, opts...)
	if err != nil {
		return nil, err
	}

	return unwrapObject(body, "share")
}

// ListShares lists shares, optionally with full detail and query filters.
func (c *Client) ListShares(ctx context.Context, detailed bool, params url.Values, opts ...RequestOption) ([]map[string]any, error) {
	path := c.endpoints.Shares()
	if detailed {
		path = c.endpoints.SharesDetail()
	}

	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	body, err := c.Get(ctx, path, http.StatusOK, opts...)
	if err != nil {
		return nil, fmt.Errorf("listing shares: %w", err)
	}

	return unwrapList(body, "shares")
}

// DeleteShare requests asynchronous deletion of a share. Params carries
// optional filters such as share_group_id.
func (c *Client) DeleteShare(ctx context.Context, shareID string, params url.Values, opts ...RequestOption) error {
	path := c.endpoints.Share(shareID)
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	if _, err := c.Delete(ctx, path, http.StatusAccepted, opts...); err != nil {
		return err
	}

	return nil
}

// ExtendShare grows a share to newSize gibibytes.
func (c *Client) ExtendShare(ctx context.Context, shareID string, newSize int, opts ...RequestOption) error {
	payload := map[string]any{
		actionName(c.parsed, "extend"): map[string]any{"new_size": newSize},
	}

	if _, err := c.Post(ctx, c.endpoints.ShareAction(shareID), payload, http.StatusAccepted, opts...); err != nil {
		return fmt.Errorf("extending share: %w", err)
	}

	return nil
}

// ShrinkShare shrinks a share to newSize gibibytes.
func (c *Client) ShrinkShare(ctx context.Context, shareID string, newSize int, opts ...RequestOption) error {
	payload := map[string]any{
		actionName(c.parsed, "shrink"): map[string]any{"new_size": newSize},
	}

	if _, err := c.Post(ctx, c.endpoints.ShareAction(shareID), payload, http.StatusAccepted, opts...); err != nil {
		return fmt.Errorf("shrinking share: %w", err)
	}

	return nil
}

// RevertToSnapshot reverts a share to one of its snapshots.
func (c *Client) RevertToSnapshot(ctx context.Context, shareID, snapshotID string, opts ...RequestOption) error {
	payload := map[string]any{
		"revert": map[string]any{"snapshot_id": snapshotID},
	}

	if _, err := c.Post(ctx, c.endpoints.ShareAction(shareID), payload, http.StatusAccepted, opts...); err != nil {
		return fmt.Errorf("reverting share to snapshot: %w", err)
	}

	return nil
}

// ManageShare brings an existing backend export under service management.
func (c *Client) ManageShare(ctx context.Context, share map[string]any, opts ...RequestOption) (map[string]any, error) {
	body, err := c.Post(ctx, c.endpoints.SharesManage(), map[string]any{"share": share}, http.StatusOK, opts...)
	if err != nil {
		return nil, fmt.Errorf("managing share: %w", err)
	}

	return unwrapObject(body, "share")
}

// UnmanageShare removes a share from service management without deleting
// the backend export.
func (c *Client) UnmanageShare(ctx context.Context, shareID string, opts ...RequestOption) error {
	payload := map[string]any{actionName(c.parsed, "unmanage"): nil}

	if _, err := c.Post(ctx, c.endpoints.ShareAction(shareID), payload, http.StatusAccepted, opts...); err != nil {
		return fmt.Errorf("unmanaging share: %w", err)
	}

	return nil
}

// ResetShareStatus forces a share's status, an admin-only recovery action.
func (c *Client) ResetShareStatus(ctx context.Context, shareID, status string, opts ...RequestOption) error {
	payload := map[string]any{
		actionName(c.parsed, "reset_status"): map[string]any{"status": status},
	}

	if _, err := c.Post(ctx, c.endpoints.ShareAction(shareID), payload, http.StatusAccepted, opts...); err != nil {
		return fmt.Errorf("resetting share status: %w", err)
	}

	return nil
}

// ForceDeleteShare deletes a share regardless of its state, admin only.
func (c *Client) ForceDeleteShare(ctx context.Context, shareID string, opts ...RequestOption) error {
	payload := map[string]any{actionName(c.parsed, "force_delete"): nil}

	if _, err := c.Post(ctx, c.endpoints.ShareAction(shareID), payload, http.StatusAccepted, opts...); err != nil {
		return fmt.Errorf("force deleting share: %w", err)
	}

	return nil
}

// ListShareExportLocations lists a share's export locations.
func (c *Client) ListShareExportLocations(ctx context.Context, shareID string, opts ...RequestOption) ([]map[string]any, error) {
	body, err := c.Get(ctx, c.endpoints.ShareExportLocations(shareID), http.StatusOK, opts...)
	if err != nil {
		return nil, fmt.Errorf("listing share export locations: %w", err)
	}

	return unwrapList(body, "export_locations")
}

// GetShareExportLocation retrieves one export location.
func (c *Client) GetShareExportLocation(ctx context.Context, shareID, exportLocationID string, opts ...RequestOption) (map[string]any, error) {
	body, err := c.Get(ctx, c.endpoints.ShareExportLocation(shareID, exportLocationID), http.StatusOK, opts...)
	if err != nil {
		return nil, fmt.Errorf("getting share export location: %w", err)
	}

	return unwrapObject(body, "export_location")
}

// SetShareMetadata merges metadata into a share.
func (c *Client) SetShareMetadata(ctx context.Context, shareID string, metadata map[string]string, opts ...RequestOption) (map[string]any, error) {
	body, err := c.Post(ctx, c.endpoints.ShareMetadata(shareID), map[string]any{"metadata": metadata}, http.StatusOK, opts...)
	if err != nil {
		return nil, fmt.Errorf("setting share metadata: %w", err)
	}

	return unwrapObject(body, "metadata")
}

// GetShareMetadata retrieves a share's metadata.
func (c *Client) GetShareMetadata(ctx context.Context, shareID string, opts ...RequestOption) (map[string]any, error) {
	body, err := c.Get(ctx, c.endpoints.ShareMetadata(shareID), http.StatusOK, opts...)
	if err != nil {
		return nil, fmt.Errorf("getting share metadata: %w", err)
	}

	return unwrapObject(body, "metadata")
}

// DeleteShareMetadata removes one metadata key.
func (c *Client) DeleteShareMetadata(ctx context.Context, shareID, key string, opts ...RequestOption) error {
	if _, err := c.Delete(ctx, c.endpoints.ShareMetadataKey(shareID, key), http.StatusOK, opts...); err != nil {
		return fmt.Errorf("deleting share metadata: %w", err)
	}

	return nil
}

// WaitForShareStatus blocks until the share's status attribute reaches
// status, fails fast on an error state and times out per the build config.
func (c *Client) WaitForShareStatus(ctx context.Context, shareID, status string) error {
	return c.WaitForShareStatusAttr(ctx, shareID, "status", status)
}

// WaitForShareStatusAttr waits on an arbitrary status-bearing attribute,
// e.g. task_state during migration.
func (c *Client) WaitForShareStatusAttr(ctx context.Context, shareID, attr, status string) error {
	fetch := func(ctx context.Context) (string, error) {
		share, err := c.GetShare(ctx, shareID)
		if err != nil {
			return "", err
		}

		return stringField(share, attr), nil
	}

	_, err := wait.ForStatus(ctx, c.build, "share "+shareID, fetch, status)

	return err
}

// WaitForShareDeletion blocks until the share is gone.
func (c *Client) WaitForShareDeletion(ctx context.Context, shareID string) error {
	gone := func(ctx context.Context) (bool, error) {
		_, err := c.GetShare(ctx, shareID)
		if IsNotFound(err) {
			return true, nil
		}

		return false, err
	}

	return wait.ForDeletion(ctx, c.build, "share "+shareID, gone)
}
