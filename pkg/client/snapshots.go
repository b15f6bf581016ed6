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

// CreateSnapshot snapshots a share. The snapshot map augments the
// mandatory share_id, typically with name, description and force.
func (c *Client) CreateSnapshot(ctx context.Context, shareID string, snapshot map[string]any, opts ...RequestOption) (map[string]any, error) {
	payload := map[string]any{"share_id": shareID}
	for k, v := range snapshot {
		payload[k] = v
	}

	body, err := c.Post(ctx, c.endpoints.Snapshots(), map[string]any{"snapshot": payload}, http.StatusAccepted, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating snapshot: %w", err)
	}

	return unwrapObject(body, "snapshot")
}

// GetSnapshot retrieves one snapshot.
func (c *Client) GetSnapshot(ctx context.Context, snapshotID string, opts ...RequestOption) (map[string]any, error) {
	body, err := c.Get(ctx, c.endpoints.Snapshot(snapshotID), http.StatusOK, opts...)
	if err != nil {
		return nil, err
	}

	return unwrapObject(body, "snapshot")
}

// ListSnapshots lists snapshots, optionally detailed and filtered.
func (c *Client) ListSnapshots(ctx context.Context, detailed bool, params url.Values, opts ...RequestOption) ([]map[string]any, error) {
	path := c.endpoints.Snapshots()
	if detailed {
		path = c.endpoints.SnapshotsDetail()
	}

	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	body, err := c.Get(ctx, path, http.StatusOK, opts...)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}

	return unwrapList(body, "snapshots")
}

// ListSnapshotsForShare lists the snapshots belonging to one share.
func (c *Client) ListSnapshotsForShare(ctx context.Context, shareID string, detailed bool, opts ...RequestOption) ([]map[string]any, error) {
	params := url.Values{}
	params.Set("share_id", shareID)

	return c.ListSnapshots(ctx, detailed, params, opts...)
}

// DeleteSnapshot requests asynchronous deletion of a snapshot.
func (c *Client) DeleteSnapshot(ctx context.Context, snapshotID string, opts ...RequestOption) error {
	if _, err := c.Delete(ctx, c.endpoints.Snapshot(snapshotID), http.StatusAccepted, opts...); err != nil {
		return err
	}

	return nil
}

// ManageSnapshot brings an existing backend snapshot under management.
func (c *Client) ManageSnapshot(ctx context.Context, snapshot map[string]any, opts ...RequestOption) (map[string]any, error) {
	body, err := c.Post(ctx, c.endpoints.SnapshotsManage(), map[string]any{"snapshot": snapshot}, http.StatusAccepted, opts...)
	if err != nil {
		return nil, fmt.Errorf("managing snapshot: %w", err)
	}

	return unwrapObject(body, "snapshot")
}

// UnmanageSnapshot removes a snapshot from management.
func (c *Client) UnmanageSnapshot(ctx context.Context, snapshotID string, opts ...RequestOption) error {
	payload := map[string]any{"unmanage": map[string]any{}}

	if _, err := c.Post(ctx, c.endpoints.SnapshotAction(snapshotID), payload, http.StatusAccepted, opts...); err != nil {
		return fmt.Errorf("unmanaging snapshot: %w", err)
	}

	return nil
}

// ResetSnapshotStatus forces a snapshot's status, admin only.
func (c *Client) ResetSnapshotStatus(ctx context.Context, snapshotID, status string, opts ...RequestOption) error {
	payload := map[string]any{
		actionName(c.parsed, "reset_status"): map[string]any{"status": status},
	}

	if _, err := c.Post(ctx, c.endpoints.SnapshotAction(snapshotID), payload, http.StatusAccepted, opts...); err != nil {
		return fmt.Errorf("resetting snapshot status: %w", err)
	}

	return nil
}

// ForceDeleteSnapshot deletes a snapshot regardless of state, admin only.
func (c *Client) ForceDeleteSnapshot(ctx context.Context, snapshotID string, opts ...RequestOption) error {
	payload := map[string]any{actionName(c.parsed, "force_delete"): nil}

	if _, err := c.Post(ctx, c.endpoints.SnapshotAction(snapshotID), payload, http.StatusAccepted, opts...); err != nil {
		return fmt.Errorf("force deleting snapshot: %w", err)
	}

	return nil
}

// ListSnapshotExportLocations lists a snapshot's export locations.
func (c *Client) ListSnapshotExportLocations(ctx context.Context, snapshotID string, opts ...RequestOption) ([]map[string]any, error) {
	body, err := c.Get(ctx, c.endpoints.SnapshotExportLocations(snapshotID), http.StatusOK, opts...)
	if err != nil {
		return nil, fmt.Errorf("listing snapshot export locations: %w", err)
	}

	return unwrapList(body, "share_snapshot_export_locations")
}

// CreateSnapshotAccessRule grants access to a mountable snapshot.
func (c *Client) CreateSnapshotAccessRule(ctx context.Context, snapshotID, accessType, accessTo string, opts ...RequestOption) (map[string]any, error) {
	payload := map[string]any{
		"allow_access": map[string]any{
			"access_type": accessType,
			"access_to":   accessTo,
		},
	}

	body, err := c.Post(ctx, c.endpoints.SnapshotAction(snapshotID), payload, http.StatusAccepted, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating snapshot access rule: %w", err)
	}

	return unwrapObject(body, "snapshot_access")
}

// GetSnapshotAccessRule looks an access rule up in the snapshot's access
// list. A nil rule without error means the rule no longer exists.
func (c *Client) GetSnapshotAccessRule(ctx context.Context, snapshotID, ruleID string, opts ...RequestOption) (map[string]any, error) {
	body, err := c.Get(ctx, c.endpoints.Snapshot(snapshotID)+"/access-list", http.StatusOK, opts...)
	if err != nil {
		return nil, fmt.Errorf("listing snapshot access rules: %w", err)
	}

	rules, err := unwrapList(body, "snapshot_access_list")
	if err != nil {
		return nil, err
	}

	for _, rule := range rules {
		if stringField(rule, "id") == ruleID {
			return rule, nil
		}
	}

	return nil, nil
}

// DeleteSnapshotAccessRule revokes a snapshot access rule.
func (c *Client) DeleteSnapshotAccessRule(ctx context.Context, snapshotID, ruleID string, opts ...RequestOption) error {
	payload := map[string]any{
		"deny_access": map[string]any{"access_id": ruleID},
	}

	if _, err := c.Post(ctx, c.endpoints.SnapshotAction(snapshotID), payload, http.StatusAccepted, opts...); err != nil {
		return fmt.Errorf("deleting snapshot access rule: %w", err)
	}

	return nil
}

// WaitForSnapshotStatus blocks until the snapshot reaches status.
func (c *Client) WaitForSnapshotStatus(ctx context.Context, snapshotID, status string) error {
	fetch := func(ctx context.Context) (string, error) {
		snapshot, err := c.GetSnapshot(ctx, snapshotID)
		if err != nil {
			return "", err
		}

		return stringField(snapshot, "status"), nil
	}

	_, err := wait.ForStatus(ctx, c.build, "snapshot "+snapshotID, fetch, status)

	return err
}

// WaitForSnapshotDeletion blocks until the snapshot is gone.
func (c *Client) WaitForSnapshotDeletion(ctx context.Context, snapshotID string) error {
	gone := func(ctx context.Context) (bool, error) {
		_, err := c.GetSnapshot(ctx, snapshotID)
		if IsNotFound(err) {
			return true, nil
		}

		return false, err
	}

	return wait.ForDeletion(ctx, c.build, "snapshot "+snapshotID, gone)
}

// WaitForSnapshotAccessRuleState blocks until the rule reaches state.
func (c *Client) WaitForSnapshotAccessRuleState(ctx context.Context, snapshotID, ruleID, state string) error {
	fetch := func(ctx context.Context) (string, error) {
		rule, err := c.GetSnapshotAccessRule(ctx, snapshotID, ruleID)
		if err != nil {
			return "", err
		}

		if rule == nil {
			return "", fmt.Errorf("snapshot access rule %s disappeared while waiting for state %q", ruleID, state)
		}

		return stringField(rule, "state"), nil
	}

	_, err := wait.ForStatus(ctx, c.build, "snapshot access rule "+ruleID, fetch, state)

	return err
}

// WaitForSnapshotAccessRuleDeletion blocks until the rule is gone from the
// snapshot's access list.
func (c *Client) WaitForSnapshotAccessRuleDeletion(ctx context.Context, snapshotID, ruleID string) error {
	gone := func(ctx context.Context) (bool, error) {
		rule, err := c.GetSnapshotAccessRule(ctx, snapshotID, ruleID)
		if err != nil {
			return false, err
		}

		return rule == nil, nil
	}

	return wait.ForDeletion(ctx, c.build, "snapshot access rule "+ruleID, gone)
}
