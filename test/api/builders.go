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

package api

import (
	"fmt"
	"sync/atomic"
	"time"
)

var nameCounter atomic.Int64

// UniqueName generates a share-service-safe resource name with the
// standard test prefix, so sweeps can recognize leftovers.
func UniqueName(kind string) string {
	return fmt.Sprintf("tempest-%s-%s-%d", kind, time.Now().Format("20060102-150405"), nameCounter.Add(1))
}

// SharePayloadBuilder builds share creation payloads with defaults from
// the test configuration.
type SharePayloadBuilder struct {
	payload map[string]any
}

// NewSharePayload creates a builder seeded with the configured protocol
// and size and a unique name.
func NewSharePayload(config *TestConfig) *SharePayloadBuilder {
	payload := map[string]any{
		"name":        UniqueName("share"),
		"description": "integration test share",
		"share_proto": config.Protocol,
		"size":        config.ShareSize,
	}

	if config.ShareNetworkID != "" {
		payload["share_network_id"] = config.ShareNetworkID
	}

	if config.ShareTypeID != "" {
		payload["share_type"] = config.ShareTypeID
	}

	return &SharePayloadBuilder{payload: payload}
}

// WithName sets the share name.
func (b *SharePayloadBuilder) WithName(name string) *SharePayloadBuilder {
	b.payload["name"] = name
	return b
}

// WithDescription sets the share description.
func (b *SharePayloadBuilder) WithDescription(desc string) *SharePayloadBuilder {
	b.payload["description"] = desc
	return b
}

// WithSize sets the share size in gibibytes.
func (b *SharePayloadBuilder) WithSize(size int) *SharePayloadBuilder {
	b.payload["size"] = size
	return b
}

// WithProtocol sets the share protocol.
func (b *SharePayloadBuilder) WithProtocol(proto string) *SharePayloadBuilder {
	b.payload["share_proto"] = proto
	return b
}

// WithSnapshotID sources the share from a snapshot.
func (b *SharePayloadBuilder) WithSnapshotID(snapshotID string) *SharePayloadBuilder {
	b.payload["snapshot_id"] = snapshotID
	return b
}

// WithShareGroupID places the share into a share group.
func (b *SharePayloadBuilder) WithShareGroupID(groupID string) *SharePayloadBuilder {
	b.payload["share_group_id"] = groupID
	return b
}

// WithShareNetworkID overrides the configured share network.
func (b *SharePayloadBuilder) WithShareNetworkID(networkID string) *SharePayloadBuilder {
	b.payload["share_network_id"] = networkID
	return b
}

// WithAvailabilityZone pins the share to an availability zone.
func (b *SharePayloadBuilder) WithAvailabilityZone(az string) *SharePayloadBuilder {
	b.payload["availability_zone"] = az
	return b
}

// WithMetadata sets initial share metadata.
func (b *SharePayloadBuilder) WithMetadata(metadata map[string]string) *SharePayloadBuilder {
	b.payload["metadata"] = metadata
	return b
}

// Public marks the share as publicly visible.
func (b *SharePayloadBuilder) Public() *SharePayloadBuilder {
	b.payload["is_public"] = true
	return b
}

// Build returns the payload map.
func (b *SharePayloadBuilder) Build() map[string]any {
	return b.payload
}

// AccessRuleData derives a usable access rule for a protocol. The counter
// keeps concurrently granted IP rules from colliding.
func AccessRuleData(protocol string) (accessType, accessTo string) {
	n := nameCounter.Add(1)

	switch protocol {
	case "CIFS":
		return "user", fmt.Sprintf("tempest-user-%d", n)
	case "CEPHFS":
		return "cephx", fmt.Sprintf("tempest-cephx-%d", n)
	default:
		return "ip", fmt.Sprintf("10.%d.%d.%d", n/65536%256, n/256%256, n%256)
	}
}
