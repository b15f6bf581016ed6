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

// CreateShareGroup creates a share group. The group map is the inner body
// of the {"share_group": ...} envelope.
func (c *Client) CreateShareGroup(ctx context.Context, group map[string]any, opts ...RequestOption) (map[string]any, error) {
	body, err := c.Post(ctx, c.endpoints.ShareGroups(), map[string]any{"share_group": group}, http.StatusAccepted, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating share group: %w", err)
	}

	return unwrapObject(body, "share_group")
}

// GetShareGroup retrieves one share group.
func (c *Client) GetShareGroup(ctx context.Context, groupID string, opts ...RequestOption) (map[string]any, error) {
	body, err := c.Get(ctx, c.endpoints.ShareGroup(groupID), http.StatusOK, opts...)
	if err != nil {
		return nil, err
	}

	return unwrapObject(body, "share_group")
}

// ListShareGroups lists share groups, optionally detailed and filtered.
func (c *Client) ListShareGroups(ctx context.Context, detailed bool, params url.Values, opts ...RequestOption) ([]map[string]any, error) {
	path := c.endpoints.ShareGroups()
	if detailed {
		path = c.endpoints.ShareGroupsDetail()
	}

	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	body, err := c.Get(ctx, path, http.StatusOK, opts...)
	if err != nil {
		return nil, fmt.Errorf("listing share groups: %w", err)
	}

	return unwrapList(body, "share_groups")
}

// UpdateShareGroup updates a share group's name and description.
func (c *Client) UpdateShareGroup(ctx context.Context, groupID string, update map[string]any, opts ...RequestOption) (map[string]any, error) {
	body, err := c.Put(ctx, c.endpoints.ShareGroup(groupID), map[string]any{"share_group": update}, http.StatusOK, opts...)
	if err != nil {
		return nil, fmt.Errorf("updating share group: %w", err)
	}

	return unwrapObject(body, "share_group")
}

// DeleteShareGroup requests asynchronous deletion of a share group.
func (c *Client) DeleteShareGroup(ctx context.Context, groupID string, opts ...RequestOption) error {
	if _, err := c.Delete(ctx, c.endpoints.ShareGroup(groupID), http.StatusAccepted, opts...); err != nil {
		return err
	}

	return nil
}

// ResetShareGroupStatus forces a share group's status, admin only.
func (c *Client) ResetShareGroupStatus(ctx context.Context, groupID, status string, opts ...RequestOption) error {
	payload := map[string]any{
		"reset_status": map[string]any{"status": status},
	}

	if _, err := c.Post(ctx, c.endpoints.ShareGroupAction(groupID), payload, http.StatusAccepted, opts...); err != nil {
		return fmt.Errorf("resetting share group status: %w", err)
	}

	return nil
}

// ForceDeleteShareGroup deletes a share group regardless of state.
func (c *Client) ForceDeleteShareGroup(ctx context.Context, groupID string, opts ...RequestOption) error {
	payload := map[string]any{"force_delete": nil}

	if _, err := c.Post(ctx, c.endpoints.ShareGroupAction(groupID), payload, http.StatusAccepted, opts...); err != nil {
		return fmt.Errorf("force deleting share group: %w", err)
	}

	return nil
}

// WaitForShareGroupStatus blocks until the group reaches status.
func (c *Client) WaitForShareGroupStatus(ctx context.Context, groupID, status string) error {
	fetch := func(ctx context.Context) (string, error) {
		group, err := c.GetShareGroup(ctx, groupID)
		if err != nil {
			return "", err
		}

		return stringField(group, "status"), nil
	}

	_, err := wait.ForStatus(ctx, c.build, "share group "+groupID, fetch, status)

	return err
}

// WaitForShareGroupDeletion blocks until the group is gone.
func (c *Client) WaitForShareGroupDeletion(ctx context.Context, groupID string) error {
	gone := func(ctx context.Context) (bool, error) {
		_, err := c.GetShareGroup(ctx, groupID)
		if IsNotFound(err) {
			return true, nil
		}

		return false, err
	}

	return wait.ForDeletion(ctx, c.build, "share group "+groupID, gone)
}

// CreateShareGroupSnapshot snapshots every member of a share group.
func (c *Client) CreateShareGroupSnapshot(ctx context.Context, groupID string, snapshot map[string]any, opts ...RequestOption) (map[string]any, error) {
	payload := map[string]any{"share_group_id": groupID}
	for k, v := range snapshot {
		payload[k] = v
	}

	body, err := c.Post(ctx, c.endpoints.ShareGroupSnapshots(), map[string]any{"share_group_snapshot": payload}, http.StatusAccepted, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating share group snapshot: %w", err)
	}

	return unwrapObject(body, "share_group_snapshot")
}

// GetShareGroupSnapshot retrieves one share group snapshot.
func (c *Client) GetShareGroupSnapshot(ctx context.Context, sgSnapshotID string, opts ...RequestOption) (map[string]any, error) {
	body, err := c.Get(ctx, c.endpoints.ShareGroupSnapshot(sgSnapshotID), http.StatusOK, opts...)
	if err != nil {
		return nil, err
	}

	return unwrapObject(body, "share_group_snapshot")
}

// ListShareGroupSnapshots lists share group snapshots.
func (c *Client) ListShareGroupSnapshots(ctx context.Context, detailed bool, params url.Values, opts ...RequestOption) ([]map[string]any, error) {
	path := c.endpoints.ShareGroupSnapshots()
	if detailed {
		path = c.endpoints.ShareGroupSnapshotsDetail()
	}

	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	body, err := c.Get(ctx, path, http.StatusOK, opts...)
	if err != nil {
		return nil, fmt.Errorf("listing share group snapshots: %w", err)
	}

	return unwrapList(body, "share_group_snapshots")
}

// UpdateShareGroupSnapshot updates a group snapshot's name and description.
func (c *Client) UpdateShareGroupSnapshot(ctx context.Context, sgSnapshotID string, update map[string]any, opts ...RequestOption) (map[string]any, error) {
	body, err := c.Put(ctx, c.endpoints.ShareGroupSnapshot(sgSnapshotID), map[string]any{"share_group_snapshot": update}, http.StatusOK, opts...)
	if err != nil {
		return nil, fmt.Errorf("updating share group snapshot: %w", err)
	}

	return unwrapObject(body, "share_group_snapshot")
}

// DeleteShareGroupSnapshot requests deletion of a group snapshot.
func (c *Client) DeleteShareGroupSnapshot(ctx context.Context, sgSnapshotID string, opts ...RequestOption) error {
	if _, err := c.Delete(ctx, c.endpoints.ShareGroupSnapshot(sgSnapshotID), http.StatusAccepted, opts...); err != nil {
		return err
	}

	return nil
}

// ResetShareGroupSnapshotStatus forces a group snapshot's status.
func (c *Client) ResetShareGroupSnapshotStatus(ctx context.Context, sgSnapshotID, status string, opts ...RequestOption) error {
	payload := map[string]any{
		"reset_status": map[string]any{"status": status},
	}

	if _, err := c.Post(ctx, c.endpoints.ShareGroupSnapshotAction(sgSnapshotID), payload, http.StatusAccepted, opts...); err != nil {
		return fmt.Errorf("resetting share group snapshot status: %w", err)
	}

	return nil
}

// ForceDeleteShareGroupSnapshot deletes a group snapshot regardless of state.
func (c *Client) ForceDeleteShareGroupSnapshot(ctx context.Context, sgSnapshotID string, opts ...RequestOption) error {
	payload := map[string]any{"force_delete": nil}

	if _, err := c.Post(ctx, c.endpoints.ShareGroupSnapshotAction(sgSnapshotID), payload, http.StatusAccepted, opts...); err != nil {
		return fmt.Errorf("force deleting share group snapshot: %w", err)
	}

	return nil
}

// WaitForShareGroupSnapshotStatus blocks until the group snapshot reaches
// status.
func (c *Client) WaitForShareGroupSnapshotStatus(ctx context.Context, sgSnapshotID, status string) error {
	fetch := func(ctx context.Context) (string, error) {
		snapshot, err := c.GetShareGroupSnapshot(ctx, sgSnapshotID)
		if err != nil {
			return "", err
		}

		return stringField(snapshot, "status"), nil
	}

	_, err := wait.ForStatus(ctx, c.build, "share group snapshot "+sgSnapshotID, fetch, status)

	return err
}

// WaitForShareGroupSnapshotDeletion blocks until the group snapshot is gone.
func (c *Client) WaitForShareGroupSnapshotDeletion(ctx context.Context, sgSnapshotID string) error {
	gone := func(ctx context.Context) (bool, error) {
		_, err := c.GetShareGroupSnapshot(ctx, sgSnapshotID)
		if IsNotFound(err) {
			return true, nil
		}

		return false, err
	}

	return wait.ForDeletion(ctx, c.build, "share group snapshot "+sgSnapshotID, gone)
}
