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

// Share server states.
const (
	ServerStateActive   = "active"
	ServerStateError    = "error"
	ServerStateManaging = "manage_starting"
)

// ListShareServers lists share servers, admin only. Params carries
// optional filters such as share_network_id.
func (c *Client) ListShareServers(ctx context.Context, params url.Values, opts ...RequestOption) ([]map[string]any, error) {
	path := c.endpoints.ShareServers()
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	body, err := c.Get(ctx, path, http.StatusOK, opts...)
	if err != nil {
		return nil, fmt.Errorf("listing share servers: %w", err)
	}

	return unwrapList(body, "share_servers")
}

// GetShareServer retrieves one share server.
func (c *Client) GetShareServer(ctx context.Context, serverID string, opts ...RequestOption) (map[string]any, error) {
	body, err := c.Get(ctx, c.endpoints.ShareServer(serverID), http.StatusOK, opts...)
	if err != nil {
		return nil, err
	}

	return unwrapObject(body, "share_server")
}

// DeleteShareServer requests asynchronous deletion of a share server.
func (c *Client) DeleteShareServer(ctx context.Context, serverID string, opts ...RequestOption) error {
	if _, err := c.Delete(ctx, c.endpoints.ShareServer(serverID), http.StatusAccepted, opts...); err != nil {
		return err
	}

	return nil
}

// ManageShareServer brings an existing backend share server under
// management. The server map carries host, share_network_id and the
// backend identifier.
func (c *Client) ManageShareServer(ctx context.Context, server map[string]any, opts ...RequestOption) (map[string]any, error) {
	body, err := c.Post(ctx, c.endpoints.ShareServersManage(), map[string]any{"share_server": server}, http.StatusAccepted, opts...)
	if err != nil {
		return nil, fmt.Errorf("managing share server: %w", err)
	}

	return unwrapObject(body, "share_server")
}

// UnmanageShareServer removes a share server from management without
// tearing it down.
func (c *Client) UnmanageShareServer(ctx context.Context, serverID string, force bool, opts ...RequestOption) error {
	payload := map[string]any{
		"unmanage": map[string]any{"force": force},
	}

	if _, err := c.Post(ctx, c.endpoints.ShareServerAction(serverID), payload, http.StatusAccepted, opts...); err != nil {
		return fmt.Errorf("unmanaging share server: %w", err)
	}

	return nil
}

// ResetShareServerState forces a share server's state, admin only.
func (c *Client) ResetShareServerState(ctx context.Context, serverID, state string, opts ...RequestOption) error {
	payload := map[string]any{
		"reset_status": map[string]any{"status": state},
	}

	if _, err := c.Post(ctx, c.endpoints.ShareServerAction(serverID), payload, http.StatusAccepted, opts...); err != nil {
		return fmt.Errorf("resetting share server state: %w", err)
	}

	return nil
}

// WaitForShareServerStatus blocks until the server's status reaches status.
func (c *Client) WaitForShareServerStatus(ctx context.Context, serverID, status string) error {
	fetch := func(ctx context.Context) (string, error) {
		server, err := c.GetShareServer(ctx, serverID)
		if err != nil {
			return "", err
		}

		return stringField(server, "status"), nil
	}

	_, err := wait.ForStatus(ctx, c.build, "share server "+serverID, fetch, status)

	return err
}

// WaitForShareServerDeletion blocks until the server is gone.
func (c *Client) WaitForShareServerDeletion(ctx context.Context, serverID string) error {
	gone := func(ctx context.Context) (bool, error) {
		_, err := c.GetShareServer(ctx, serverID)
		if IsNotFound(err) {
			return true, nil
		}

		return false, err
	}

	return wait.ForDeletion(ctx, c.build, "share server "+serverID, gone)
}
