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

// Access rule states.
const (
	AccessStateActive   = "active"
	AccessStateQueued   = "queued_to_apply"
	AccessStateApplying = "applying"
)

// AccessRule describes a grant request. AccessType is one of ip, user,
// cert or cephx; AccessLevel defaults to the backend's read-write level
// when empty.
type AccessRule struct {
	AccessType  string
	AccessTo    string
	AccessLevel string
	Metadata    map[string]string
}

// CreateAccessRule grants access to a share via the allow_access action.
func (c *Client) CreateAccessRule(ctx context.Context, shareID string, rule AccessRule, opts ...RequestOption) (map[string]any, error) {
	inner := map[string]any{
		"access_type": rule.AccessType,
		"access_to":   rule.AccessTo,
	}

	if rule.AccessLevel != "" {
		inner["access_level"] = rule.AccessLevel
	}

	if rule.Metadata != nil {
		inner["metadata"] = rule.Metadata
	}

	payload := map[string]any{actionName(c.parsed, "allow_access"): inner}

	body, err := c.Post(ctx, c.endpoints.ShareAction(shareID), payload, http.StatusOK, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating access rule: %w", err)
	}

	return unwrapObject(body, "access")
}

// DeleteAccessRule revokes access via the deny_access action.
func (c *Client) DeleteAccessRule(ctx context.Context, shareID, ruleID string, opts ...RequestOption) error {
	payload := map[string]any{
		actionName(c.parsed, "deny_access"): map[string]any{"access_id": ruleID},
	}

	if _, err := c.Post(ctx, c.endpoints.ShareAction(shareID), payload, http.StatusAccepted, opts...); err != nil {
		return fmt.Errorf("deleting access rule: %w", err)
	}

	return nil
}

// ListAccessRules lists a share's access rules via the access_list action.
func (c *Client) ListAccessRules(ctx context.Context, shareID string, opts ...RequestOption) ([]map[string]any, error) {
	payload := map[string]any{actionName(c.parsed, "access_list"): nil}

	body, err := c.Post(ctx, c.endpoints.ShareAction(shareID), payload, http.StatusOK, opts...)
	if err != nil {
		return nil, fmt.Errorf("listing access rules: %w", err)
	}

	return unwrapList(body, "access_list")
}

// ListAccessRulesDetailed lists a share's access rules through the
// dedicated read API introduced at microversion 2.45.
func (c *Client) ListAccessRulesDetailed(ctx context.Context, shareID string, opts ...RequestOption) ([]map[string]any, error) {
	params := url.Values{}
	params.Set("share_id", shareID)

	body, err := c.Get(ctx, c.endpoints.ShareAccessRules()+"?"+params.Encode(), http.StatusOK, opts...)
	if err != nil {
		return nil, fmt.Errorf("listing access rules: %w", err)
	}

	return unwrapList(body, "access_list")
}

// GetAccessRule retrieves a single access rule by its own ID.
func (c *Client) GetAccessRule(ctx context.Context, accessID string, opts ...RequestOption) (map[string]any, error) {
	body, err := c.Get(ctx, c.endpoints.ShareAccessRule(accessID), http.StatusOK, opts...)
	if err != nil {
		return nil, err
	}

	return unwrapObject(body, "access")
}

// UpdateAccessRuleMetadata merges metadata into an access rule.
func (c *Client) UpdateAccessRuleMetadata(ctx context.Context, accessID string, metadata map[string]string, opts ...RequestOption) (map[string]any, error) {
	body, err := c.Put(ctx, c.endpoints.ShareAccessRuleMetadata(accessID), map[string]any{"metadata": metadata}, http.StatusOK, opts...)
	if err != nil {
		return nil, fmt.Errorf("updating access rule metadata: %w", err)
	}

	return unwrapObject(body, "metadata")
}

// DeleteAccessRuleMetadata removes one metadata key from an access rule.
func (c *Client) DeleteAccessRuleMetadata(ctx context.Context, accessID, key string, opts ...RequestOption) error {
	if _, err := c.Delete(ctx, c.endpoints.ShareAccessRuleMetadataKey(accessID, key), http.StatusOK, opts...); err != nil {
		return fmt.Errorf("deleting access rule metadata: %w", err)
	}

	return nil
}

// WaitForAccessRuleState blocks until the rule on the share reaches state.
// The rule is located through the share's access list, so this works at
// every microversion.
func (c *Client) WaitForAccessRuleState(ctx context.Context, shareID, ruleID, state string) error {
	fetch := func(ctx context.Context) (string, error) {
		rules, err := c.ListAccessRules(ctx, shareID)
		if err != nil {
			return "", err
		}

		for _, rule := range rules {
			if stringField(rule, "id") == ruleID {
				return stringField(rule, "state"), nil
			}
		}

		return "", fmt.Errorf("access rule %s not found on share %s", ruleID, shareID)
	}

	_, err := wait.ForStatus(ctx, c.build, "access rule "+ruleID, fetch, state)

	return err
}

// WaitForAccessRuleDeletion blocks until the rule is gone from the
// share's access list.
func (c *Client) WaitForAccessRuleDeletion(ctx context.Context, shareID, ruleID string) error {
	gone := func(ctx context.Context) (bool, error) {
		rules, err := c.ListAccessRules(ctx, shareID)
		if err != nil {
			return false, err
		}

		for _, rule := range rules {
			if stringField(rule, "id") == ruleID {
				return false, nil
			}
		}

		return true, nil
	}

	return wait.ForDeletion(ctx, c.build, "access rule "+ruleID, gone)
}
