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

//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sapcc/manila-tempest-plugin/pkg/cleanup"
	"github.com/sapcc/manila-tempest-plugin/pkg/client"
	"github.com/sapcc/manila-tempest-plugin/pkg/wait"
)

// Harness bundles a client with a cleanup ledger. Each spec gets its own
// harness so resources are torn down per test in reverse creation order.
type Harness struct {
	Config *TestConfig
	Client *client.Client
	Ledger *cleanup.Ledger
}

// NewHarness builds a harness against the given endpoint.
func NewHarness(config *TestConfig, baseURL string) (*Harness, error) {
	logf := func(string, ...any) {}
	if config.LogRequests {
		logf = func(format string, args ...any) {
			GinkgoWriter.Printf(format+"\n", args...)
		}
	}

	c, err := client.New(client.Options{
		BaseURL:        baseURL,
		AuthToken:      config.AuthToken,
		Microversion:   config.Microversion,
		RequestTimeout: config.RequestTimeout,
		BuildInterval:  config.BuildInterval,
		BuildTimeout:   config.BuildTimeout,
		Logf:           logf,
	})
	if err != nil {
		return nil, err
	}

	options := []cleanup.Option{
		cleanup.WithLogger(func(format string, args ...any) {
			GinkgoWriter.Printf(format+"\n", args...)
		}),
	}

	if config.SuppressCleanupErrors {
		options = append(options, cleanup.WithSuppressAll())
	}

	return &Harness{
		Config: config,
		Client: c,
		Ledger: cleanup.NewLedger(options...),
	}, nil
}

// Cleanup tears down everything the harness created. Wire it into
// DeferCleanup at harness construction time.
func (h *Harness) Cleanup(ctx context.Context) {
	Expect(h.Ledger.Run(ctx)).To(Succeed())
}

// CreateShare provisions a share, registers it for cleanup and waits for
// it to become available.
func (h *Harness) CreateShare(ctx context.Context, payload map[string]any) map[string]any {
	GinkgoHelper()

	share := h.CreateShareNoWait(ctx, payload)

	id := share["id"].(string)
	Expect(h.Client.WaitForShareStatus(ctx, id, client.StatusAvailable)).To(Succeed())

	share, err := h.Client.GetShare(ctx, id)
	Expect(err).NotTo(HaveOccurred())

	return share
}

// CreateShareNoWait provisions a share and registers it for cleanup
// without waiting for it to settle.
func (h *Harness) CreateShareNoWait(ctx context.Context, payload map[string]any) map[string]any {
	GinkgoHelper()

	share, err := h.Client.CreateShare(ctx, payload)
	Expect(err).NotTo(HaveOccurred())

	groupID, _ := payload["share_group_id"].(string)

	h.Ledger.Register(&cleanup.ShareResource{
		Client:       h.Client,
		ShareID:      share["id"].(string),
		ShareGroupID: groupID,
	})

	return share
}

// CreateShares provisions a batch of shares and waits for all of them.
// A share that lands in an error state is deleted and recreated, up to
// the configured retry budget, before the batch fails.
func (h *Harness) CreateShares(ctx context.Context, payloads []map[string]any) []map[string]any {
	GinkgoHelper()

	shares := make([]map[string]any, len(payloads))
	for i, payload := range payloads {
		shares[i] = h.CreateShareNoWait(ctx, payload)
	}

	for i := range shares {
		shares[i] = h.awaitShare(ctx, shares[i], payloads[i], h.Config.CreationRetries)
	}

	return shares
}

func (h *Harness) awaitShare(ctx context.Context, share, payload map[string]any, retries int) map[string]any {
	GinkgoHelper()

	id := share["id"].(string)

	err := h.Client.WaitForShareStatus(ctx, id, client.StatusAvailable)
	if err == nil {
		share, err = h.Client.GetShare(ctx, id)
		Expect(err).NotTo(HaveOccurred())

		return share
	}

	var buildErr *wait.BuildError

	if !errors.As(err, &buildErr) || retries == 0 {
		Expect(err).NotTo(HaveOccurred())
	}

	GinkgoWriter.Printf("share %s failed to build, retrying (%d left)\n", id, retries)

	// Best effort removal of the failed share, the ledger still holds it
	// as a backstop.
	if err := h.Client.DeleteShare(ctx, id, nil); err == nil {
		//nolint:errcheck
		h.Client.WaitForShareDeletion(ctx, id)
	}

	return h.awaitShare(ctx, h.CreateShareNoWait(ctx, payload), payload, retries-1)
}

// CreateSnapshot snapshots a share, registers the snapshot for cleanup
// and waits for it to become available.
func (h *Harness) CreateSnapshot(ctx context.Context, shareID string) map[string]any {
	GinkgoHelper()

	snapshot, err := h.Client.CreateSnapshot(ctx, shareID, map[string]any{
		"name": UniqueName("snapshot"),
	})
	Expect(err).NotTo(HaveOccurred())

	id := snapshot["id"].(string)

	h.Ledger.Register(&cleanup.SnapshotResource{Client: h.Client, SnapshotID: id})

	Expect(h.Client.WaitForSnapshotStatus(ctx, id, client.StatusAvailable)).To(Succeed())

	snapshot, err = h.Client.GetSnapshot(ctx, id)
	Expect(err).NotTo(HaveOccurred())

	return snapshot
}

// CreateAccessRule grants access to a share using protocol-appropriate
// rule data and waits for the rule to apply.
func (h *Harness) CreateAccessRule(ctx context.Context, shareID string) map[string]any {
	GinkgoHelper()

	accessType, accessTo := AccessRuleData(h.Config.Protocol)

	rule, err := h.Client.CreateAccessRule(ctx, shareID, client.AccessRule{
		AccessType: accessType,
		AccessTo:   accessTo,
	})
	Expect(err).NotTo(HaveOccurred())

	id := rule["id"].(string)

	h.Ledger.Register(&cleanup.AccessRuleResource{Client: h.Client, ShareID: shareID, RuleID: id})

	Expect(h.Client.WaitForAccessRuleState(ctx, shareID, id, client.AccessStateActive)).To(Succeed())

	return rule
}

// CreateShareGroup creates a share group, registers it for cleanup and
// waits for it to become available.
func (h *Harness) CreateShareGroup(ctx context.Context, payload map[string]any) map[string]any {
	GinkgoHelper()

	if payload == nil {
		payload = map[string]any{}
	}

	if _, ok := payload["name"]; !ok {
		payload["name"] = UniqueName("share-group")
	}

	group, err := h.Client.CreateShareGroup(ctx, payload)
	Expect(err).NotTo(HaveOccurred())

	id := group["id"].(string)

	h.Ledger.Register(&cleanup.ShareGroupResource{Client: h.Client, GroupID: id})

	Expect(h.Client.WaitForShareGroupStatus(ctx, id, client.StatusAvailable)).To(Succeed())

	return group
}

// CreateReplica adds a replica of a share, registers it for cleanup and
// waits for it to become available.
func (h *Harness) CreateReplica(ctx context.Context, shareID, availabilityZone string) map[string]any {
	GinkgoHelper()

	replica, err := h.Client.CreateShareReplica(ctx, shareID, availabilityZone)
	Expect(err).NotTo(HaveOccurred())

	id := replica["id"].(string)

	h.Ledger.Register(&cleanup.ReplicaResource{Client: h.Client, ReplicaID: id})

	Expect(h.Client.WaitForShareReplicaStatus(ctx, id, client.StatusAvailable)).To(Succeed())

	replica, err = h.Client.GetShareReplica(ctx, id)
	Expect(err).NotTo(HaveOccurred())

	return replica
}

// CreateShareNetwork creates a share network and registers it for
// cleanup.
func (h *Harness) CreateShareNetwork(ctx context.Context) map[string]any {
	GinkgoHelper()

	network, err := h.Client.CreateShareNetwork(ctx, map[string]any{
		"name": UniqueName("share-network"),
	})
	Expect(err).NotTo(HaveOccurred())

	h.Ledger.Register(&cleanup.ShareNetworkResource{
		Client:    h.Client,
		NetworkID: network["id"].(string),
	})

	return network
}

// CreateSecurityService creates a security service and registers it for
// cleanup.
func (h *Harness) CreateSecurityService(ctx context.Context, serviceType string) map[string]any {
	GinkgoHelper()

	service, err := h.Client.CreateSecurityService(ctx, serviceType, map[string]any{
		"name": UniqueName("security-service"),
	})
	Expect(err).NotTo(HaveOccurred())

	h.Ledger.Register(&cleanup.SecurityServiceResource{
		Client:    h.Client,
		ServiceID: service["id"].(string),
	})

	return service
}

// CreateShareType creates a share type and registers it for cleanup.
func (h *Harness) CreateShareType(ctx context.Context, extraSpecs map[string]string) map[string]any {
	GinkgoHelper()

	if extraSpecs == nil {
		extraSpecs = map[string]string{}
	}

	if _, ok := extraSpecs[client.DriverHandlesShareServers]; !ok {
		extraSpecs[client.DriverHandlesShareServers] = "false"
	}

	shareType, err := h.Client.CreateShareType(ctx, UniqueName("type"), true, extraSpecs)
	Expect(err).NotTo(HaveOccurred())

	h.Ledger.Register(&cleanup.ShareTypeResource{
		Client: h.Client,
		TypeID: shareType["id"].(string),
	})

	return shareType
}
