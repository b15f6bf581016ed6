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

// CreateShareNetwork creates a share network. The network map is the
// inner body, typically neutron_net_id, neutron_subnet_id, name and
// description.
func (c *Client) CreateShareNetwork(ctx context.Context, network map[string]any, opts ...RequestOption) (map[string]any, error) {
	body, err := c.Post(ctx, c.endpoints.ShareNetworks(), map[string]any{"share_network": network}, http.StatusOK, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating share network: %w", err)
	}

	return unwrapObject(body, "share_network")
}

// GetShareNetwork retrieves one share network.
func (c *Client) GetShareNetwork(ctx context.Context, networkID string, opts ...RequestOption) (map[string]any, error) {
	body, err := c.Get(ctx, c.endpoints.ShareNetwork(networkID), http.StatusOK, opts...)
	if err != nil {
		return nil, err
	}

	return unwrapObject(body, "share_network")
}

// ListShareNetworks lists share networks, optionally detailed and filtered.
func (c *Client) ListShareNetworks(ctx context.Context, detailed bool, params url.Values, opts ...RequestOption) ([]map[string]any, error) {
	path := c.endpoints.ShareNetworks()
	if detailed {
		path = c.endpoints.ShareNetworksDetail()
	}

	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	body, err := c.Get(ctx, path, http.StatusOK, opts...)
	if err != nil {
		return nil, fmt.Errorf("listing share networks: %w", err)
	}

	return unwrapList(body, "share_networks")
}

// UpdateShareNetwork updates a share network's mutable fields.
func (c *Client) UpdateShareNetwork(ctx context.Context, networkID string, update map[string]any, opts ...RequestOption) (map[string]any, error) {
	body, err := c.Put(ctx, c.endpoints.ShareNetwork(networkID), map[string]any{"share_network": update}, http.StatusOK, opts...)
	if err != nil {
		return nil, fmt.Errorf("updating share network: %w", err)
	}

	return unwrapObject(body, "share_network")
}

// DeleteShareNetwork deletes a share network.
func (c *Client) DeleteShareNetwork(ctx context.Context, networkID string, opts ...RequestOption) error {
	if _, err := c.Delete(ctx, c.endpoints.ShareNetwork(networkID), http.StatusAccepted, opts...); err != nil {
		return err
	}

	return nil
}

// AddSecurityServiceToShareNetwork associates a security service with a
// share network.
func (c *Client) AddSecurityServiceToShareNetwork(ctx context.Context, networkID, serviceID string, opts ...RequestOption) (map[string]any, error) {
	payload := map[string]any{
		"add_security_service": map[string]any{"security_service_id": serviceID},
	}

	body, err := c.Post(ctx, c.endpoints.ShareNetworkAction(networkID), payload, http.StatusOK, opts...)
	if err != nil {
		return nil, fmt.Errorf("adding security service to share network: %w", err)
	}

	return unwrapObject(body, "share_network")
}

// RemoveSecurityServiceFromShareNetwork dissociates a security service
// from a share network.
func (c *Client) RemoveSecurityServiceFromShareNetwork(ctx context.Context, networkID, serviceID string, opts ...RequestOption) (map[string]any, error) {
	payload := map[string]any{
		"remove_security_service": map[string]any{"security_service_id": serviceID},
	}

	body, err := c.Post(ctx, c.endpoints.ShareNetworkAction(networkID), payload, http.StatusOK, opts...)
	if err != nil {
		return nil, fmt.Errorf("removing security service from share network: %w", err)
	}

	return unwrapObject(body, "share_network")
}

// CreateSecurityService creates a security service. Type is one of ldap,
// kerberos or active_directory.
func (c *Client) CreateSecurityService(ctx context.Context, serviceType string, service map[string]any, opts ...RequestOption) (map[string]any, error) {
	payload := map[string]any{"type": serviceType}
	for k, v := range service {
		payload[k] = v
	}

	body, err := c.Post(ctx, c.endpoints.SecurityServices(), map[string]any{"security_service": payload}, http.StatusOK, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating security service: %w", err)
	}

	return unwrapObject(body, "security_service")
}

// GetSecurityService retrieves one security service.
func (c *Client) GetSecurityService(ctx context.Context, serviceID string, opts ...RequestOption) (map[string]any, error) {
	body, err := c.Get(ctx, c.endpoints.SecurityService(serviceID), http.StatusOK, opts...)
	if err != nil {
		return nil, err
	}

	return unwrapObject(body, "security_service")
}

// ListSecurityServices lists security services.
func (c *Client) ListSecurityServices(ctx context.Context, detailed bool, params url.Values, opts ...RequestOption) ([]map[string]any, error) {
	path := c.endpoints.SecurityServices()
	if detailed {
		path = c.endpoints.SecurityServicesDetail()
	}

	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	body, err := c.Get(ctx, path, http.StatusOK, opts...)
	if err != nil {
		return nil, fmt.Errorf("listing security services: %w", err)
	}

	return unwrapList(body, "security_services")
}

// UpdateSecurityService updates a security service's mutable fields.
func (c *Client) UpdateSecurityService(ctx context.Context, serviceID string, update map[string]any, opts ...RequestOption) (map[string]any, error) {
	body, err := c.Put(ctx, c.endpoints.SecurityService(serviceID), map[string]any{"security_service": update}, http.StatusOK, opts...)
	if err != nil {
		return nil, fmt.Errorf("updating security service: %w", err)
	}

	return unwrapObject(body, "security_service")
}

// DeleteSecurityService deletes a security service.
func (c *Client) DeleteSecurityService(ctx context.Context, serviceID string, opts ...RequestOption) error {
	if _, err := c.Delete(ctx, c.endpoints.SecurityService(serviceID), http.StatusAccepted, opts...); err != nil {
		return err
	}

	return nil
}
