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

// Replica states, carried in the replica_state attribute as opposed to
// the lifecycle status attribute.
const (
	ReplicaStateActive    = "active"
	ReplicaStateInSync    = "in_sync"
	ReplicaStateOutOfSync = "out_of_sync"
)

// CreateShareReplica creates a replica of a share in the given
// availability zone.
func (c *Client) CreateShareReplica(ctx context.Context, shareID, availabilityZone string, opts ...RequestOption) (map[string]any, error) {
	inner := map[string]any{"share_id": shareID}

	if availabilityZone != "" {
		inner["availability_zone"] = availabilityZone
	}

	body, err := c.Post(ctx, c.endpoints.ShareReplicas(), map[string]any{"share_replica": inner}, http.StatusAccepted, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating share replica: %w", err)
	}

	return unwrapObject(body, "share_replica")
}

// GetShareReplica retrieves one replica.
func (c *Client) GetShareReplica(ctx context.Context, replicaID string, opts ...RequestOption) (map[string]any, error) {
	body, err := c.Get(ctx, c.endpoints.ShareReplica(replicaID), http.StatusOK, opts...)
	if err != nil {
		return nil, err
	}

	return unwrapObject(body, "share_replica")
}

// ListShareReplicas lists replicas, optionally restricted to one share.
func (c *Client) ListShareReplicas(ctx context.Context, shareID string, opts ...RequestOption) ([]map[string]any, error) {
	path := c.endpoints.ShareReplicasDetail()

	if shareID != "" {
		params := url.Values{}
		params.Set("share_id", shareID)
		path += "?" + params.Encode()
	}

	body, err := c.Get(ctx, path, http.StatusOK, opts...)
	if err != nil {
		return nil, fmt.Errorf("listing share replicas: %w", err)
	}

	return unwrapList(body, "share_replicas")
}

// ListShareReplicasSummary lists replicas without detail.
func (c *Client) ListShareReplicasSummary(ctx context.Context, shareID string, opts ...RequestOption) ([]map[string]any, error) {
	path := c.endpoints.ShareReplicas()

	if shareID != "" {
		params := url.Values{}
		params.Set("share_id", shareID)
		path += "?" + params.Encode()
	}

	body, err := c.Get(ctx, path, http.StatusOK, opts...)
	if err != nil {
		return nil, fmt.Errorf("listing share replicas: %w", err)
	}

	return unwrapList(body, "share_replicas")
}

// DeleteShareReplica requests asynchronous deletion of a replica.
func (c *Client) DeleteShareReplica(ctx context.Context, replicaID string, opts ...RequestOption) error {
	if _, err := c.Delete(ctx, c.endpoints.ShareReplica(replicaID), http.StatusAccepted, opts...); err != nil {
		return err
	}

	return nil
}

// PromoteShareReplica makes a secondary replica the active one.
func (c *Client) PromoteShareReplica(ctx context.Context, replicaID string, opts ...RequestOption) (map[string]any, error) {
	payload := map[string]any{"promote": nil}

	body, err := c.Post(ctx, c.endpoints.ShareReplicaAction(replicaID), payload, http.StatusAccepted, opts...)
	if err != nil {
		return nil, fmt.Errorf("promoting share replica: %w", err)
	}

	return unwrapObject(body, "share_replica")
}

// ResyncShareReplica triggers a resync of an out-of-sync replica.
func (c *Client) ResyncShareReplica(ctx context.Context, replicaID string, opts ...RequestOption) error {
	payload := map[string]any{"resync": nil}

	if _, err := c.Post(ctx, c.endpoints.ShareReplicaAction(replicaID), payload, http.StatusAccepted, opts...); err != nil {
		return fmt.Errorf("resyncing share replica: %w", err)
	}

	return nil
}

// ResetShareReplicaStatus forces a replica's lifecycle status, admin only.
func (c *Client) ResetShareReplicaStatus(ctx context.Context, replicaID, status string, opts ...RequestOption) error {
	payload := map[string]any{
		"reset_status": map[string]any{"status": status},
	}

	if _, err := c.Post(ctx, c.endpoints.ShareReplicaAction(replicaID), payload, http.StatusAccepted, opts...); err != nil {
		return fmt.Errorf("resetting share replica status: %w", err)
	}

	return nil
}

// ResetShareReplicaState forces a replica's replica_state, admin only.
func (c *Client) ResetShareReplicaState(ctx context.Context, replicaID, state string, opts ...RequestOption) error {
	payload := map[string]any{
		"reset_replica_state": map[string]any{"replica_state": state},
	}

	if _, err := c.Post(ctx, c.endpoints.ShareReplicaAction(replicaID), payload, http.StatusAccepted, opts...); err != nil {
		return fmt.Errorf("resetting share replica state: %w", err)
	}

	return nil
}

// ForceDeleteShareReplica deletes a replica regardless of state.
func (c *Client) ForceDeleteShareReplica(ctx context.Context, replicaID string, opts ...RequestOption) error {
	payload := map[string]any{"force_delete": nil}

	if _, err := c.Post(ctx, c.endpoints.ShareReplicaAction(replicaID), payload, http.StatusAccepted, opts...); err != nil {
		return fmt.Errorf("force deleting share replica: %w", err)
	}

	return nil
}

// ListShareReplicaExportLocations lists a replica's export locations.
func (c *Client) ListShareReplicaExportLocations(ctx context.Context, replicaID string, opts ...RequestOption) ([]map[string]any, error) {
	body, err := c.Get(ctx, c.endpoints.ShareReplicaExportLocations(replicaID), http.StatusOK, opts...)
	if err != nil {
		return nil, fmt.Errorf("listing share replica export locations: %w", err)
	}

	return unwrapList(body, "export_locations")
}

// WaitForShareReplicaStatus blocks until the replica's lifecycle status
// reaches status.
func (c *Client) WaitForShareReplicaStatus(ctx context.Context, replicaID, status string) error {
	return c.WaitForShareReplicaStatusAttr(ctx, replicaID, "status", status)
}

// WaitForShareReplicaState blocks until the replica_state attribute
// reaches state, used after promotion and resync.
func (c *Client) WaitForShareReplicaState(ctx context.Context, replicaID, state string) error {
	return c.WaitForShareReplicaStatusAttr(ctx, replicaID, "replica_state", state)
}

// WaitForShareReplicaStatusAttr waits on an arbitrary replica attribute.
func (c *Client) WaitForShareReplicaStatusAttr(ctx context.Context, replicaID, attr, status string) error {
	fetch := func(ctx context.Context) (string, error) {
		replica, err := c.GetShareReplica(ctx, replicaID)
		if err != nil {
			return "", err
		}

		return stringField(replica, attr), nil
	}

	_, err := wait.ForStatus(ctx, c.build, "share replica "+replicaID, fetch, status)

	return err
}

// WaitForShareReplicaDeletion blocks until the replica is gone.
func (c *Client) WaitForShareReplicaDeletion(ctx context.Context, replicaID string) error {
	gone := func(ctx context.Context) (bool, error) {
		_, err := c.GetShareReplica(ctx, replicaID)
		if IsNotFound(err) {
			return true, nil
		}

		return false, err
	}

	return wait.ForDeletion(ctx, c.build, "share replica "+replicaID, gone)
}
