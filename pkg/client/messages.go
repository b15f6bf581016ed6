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

// GetMessage retrieves one user message.
func (c *Client) GetMessage(ctx context.Context, messageID string, opts ...RequestOption) (map[string]any, error) {
	body, err := c.Get(ctx, c.endpoints.Message(messageID), http.StatusOK, opts...)
	if err != nil {
		return nil, err
	}

	return unwrapObject(body, "message")
}

// ListMessages lists user messages. Params carries optional filters such
// as resource_id and sorting keys.
func (c *Client) ListMessages(ctx context.Context, params url.Values, opts ...RequestOption) ([]map[string]any, error) {
	path := c.endpoints.Messages()
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	body, err := c.Get(ctx, path, http.StatusOK, opts...)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}

	return unwrapList(body, "messages")
}

// DeleteMessage deletes a user message.
func (c *Client) DeleteMessage(ctx context.Context, messageID string, opts ...RequestOption) error {
	if _, err := c.Delete(ctx, c.endpoints.Message(messageID), http.StatusNoContent, opts...); err != nil {
		return err
	}

	return nil
}

// WaitForMessage blocks until a message appears for the given resource,
// returning the message. The service emits messages asynchronously after
// scheduling failures.
func (c *Client) WaitForMessage(ctx context.Context, resourceID string) (map[string]any, error) {
	var found map[string]any

	fetch := func(ctx context.Context) (string, error) {
		params := url.Values{}
		params.Set("resource_id", resourceID)

		messages, err := c.ListMessages(ctx, params)
		if err != nil {
			return "", err
		}

		if len(messages) == 0 {
			return "absent", nil
		}

		found = messages[0]

		return "present", nil
	}

	if _, err := wait.ForStatus(ctx, c.build, "message for resource "+resourceID, fetch, "present"); err != nil {
		return nil, err
	}

	return found, nil
}
