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

//nolint:testpackage,revive // test package in suites is standard for these tests
package suites

import (
	"net/url"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sapcc/manila-tempest-plugin/pkg/client"
	"github.com/sapcc/manila-tempest-plugin/test/api"
)

var _ = Describe("Share Server Operations", func() {
	BeforeEach(func() {
		if !config.RunAdminTests {
			Skip("admin actions disabled")
		}
	})

	Context("When shares land on a share network", func() {
		It("should materialize a share server for the network", func() {
			network := harness.CreateShareNetwork(ctx)
			networkID := network["id"].(string)

			harness.CreateShare(ctx, api.NewSharePayload(config).
				WithShareNetworkID(networkID).
				Build())

			params := url.Values{}
			params.Set("share_network_id", networkID)

			servers, err := harness.Client.ListShareServers(ctx, params)
			Expect(err).NotTo(HaveOccurred())
			Expect(servers).To(HaveLen(1))
			Expect(servers[0]["share_network_id"]).To(Equal(networkID))

			server, err := harness.Client.GetShareServer(ctx, servers[0]["id"].(string))
			Expect(err).NotTo(HaveOccurred())
			Expect(server["status"]).To(Equal(client.ServerStateActive))
		})
	})

	Context("When managing external share servers", func() {
		It("should adopt a server and settle it active", func() {
			network := harness.CreateShareNetwork(ctx)

			server, err := harness.Client.ManageShareServer(ctx, map[string]any{
				"host":             "sim@backend",
				"share_network_id": network["id"].(string),
				"identifier":       api.UniqueName("server"),
			})
			Expect(err).NotTo(HaveOccurred())

			id := server["id"].(string)

			Expect(harness.Client.WaitForShareServerStatus(ctx, id, client.ServerStateActive)).To(Succeed())

			Expect(harness.Client.UnmanageShareServer(ctx, id, false)).To(Succeed())

			_, err = harness.Client.GetShareServer(ctx, id)
			Expect(client.IsNotFound(err)).To(BeTrue(), "unmanaged server should be gone, got %v", err)
		})
	})

	Context("When deleting a share server", func() {
		It("should remove the server once its shares are gone", func() {
			network := harness.CreateShareNetwork(ctx)
			networkID := network["id"].(string)

			share := harness.CreateShare(ctx, api.NewSharePayload(config).
				WithShareNetworkID(networkID).
				Build())

			params := url.Values{}
			params.Set("share_network_id", networkID)

			servers, err := harness.Client.ListShareServers(ctx, params)
			Expect(err).NotTo(HaveOccurred())
			Expect(servers).To(HaveLen(1))

			shareID := share["id"].(string)

			Expect(harness.Client.DeleteShare(ctx, shareID, nil)).To(Succeed())
			Expect(harness.Client.WaitForShareDeletion(ctx, shareID)).To(Succeed())

			serverID := servers[0]["id"].(string)

			Expect(harness.Client.DeleteShareServer(ctx, serverID)).To(Succeed())
			Expect(harness.Client.WaitForShareServerDeletion(ctx, serverID)).To(Succeed())
		})
	})
})
