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

var _ = Describe("Share Operations", func() {
	Context("When managing the share lifecycle", func() {
		It("should create a share and expose it through get and list", func() {
			payload := api.NewSharePayload(config).WithDescription("lifecycle test").Build()

			share := harness.CreateShare(ctx, payload)
			Expect(share["status"]).To(Equal(client.StatusAvailable))
			Expect(share["name"]).To(Equal(payload["name"]))

			id := share["id"].(string)

			fetched, err := harness.Client.GetShare(ctx, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(fetched["description"]).To(Equal("lifecycle test"))

			params := url.Values{}
			params.Set("name", payload["name"].(string))

			shares, err := harness.Client.ListShares(ctx, true, params)
			Expect(err).NotTo(HaveOccurred())
			Expect(shares).To(HaveLen(1))
			Expect(shares[0]["id"]).To(Equal(id))
		})

		It("should delete a share and remove it from listings", func() {
			share := harness.CreateShare(ctx, api.NewSharePayload(config).Build())
			id := share["id"].(string)

			Expect(harness.Client.DeleteShare(ctx, id, nil)).To(Succeed())
			Expect(harness.Client.WaitForShareDeletion(ctx, id)).To(Succeed())

			_, err := harness.Client.GetShare(ctx, id)
			Expect(client.IsNotFound(err)).To(BeTrue(), "deleted share should yield 404, got %v", err)
		})

		It("should normalize the protocol to upper case", func() {
			share := harness.CreateShare(ctx, api.NewSharePayload(config).WithProtocol("nfs").Build())
			Expect(share["share_proto"]).To(Equal("NFS"))
		})
	})

	Context("When resizing a share", func() {
		It("should extend and then shrink the share", func() {
			share := harness.CreateShare(ctx, api.NewSharePayload(config).WithSize(1).Build())
			id := share["id"].(string)

			Expect(harness.Client.ExtendShare(ctx, id, 3)).To(Succeed())
			Expect(harness.Client.WaitForShareStatus(ctx, id, client.StatusAvailable)).To(Succeed())

			extended, err := harness.Client.GetShare(ctx, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(extended["size"]).To(BeNumerically("==", 3))

			Expect(harness.Client.ShrinkShare(ctx, id, 2)).To(Succeed())
			Expect(harness.Client.WaitForShareStatus(ctx, id, client.StatusAvailable)).To(Succeed())

			shrunk, err := harness.Client.GetShare(ctx, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(shrunk["size"]).To(BeNumerically("==", 2))
		})
	})

	Context("When working with share metadata", func() {
		It("should set, read and delete metadata keys", func() {
			share := harness.CreateShare(ctx, api.NewSharePayload(config).Build())
			id := share["id"].(string)

			_, err := harness.Client.SetShareMetadata(ctx, id, map[string]string{
				"purpose": "integration",
				"owner":   "qa",
			})
			Expect(err).NotTo(HaveOccurred())

			metadata, err := harness.Client.GetShareMetadata(ctx, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(metadata).To(HaveKeyWithValue("purpose", "integration"))
			Expect(metadata).To(HaveKeyWithValue("owner", "qa"))

			Expect(harness.Client.DeleteShareMetadata(ctx, id, "owner")).To(Succeed())

			metadata, err = harness.Client.GetShareMetadata(ctx, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(metadata).NotTo(HaveKey("owner"))
		})
	})

	Context("When inspecting export locations", func() {
		It("should list export locations and fetch one by ID", func() {
			share := harness.CreateShare(ctx, api.NewSharePayload(config).Build())
			id := share["id"].(string)

			locations, err := harness.Client.ListShareExportLocations(ctx, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(locations).NotTo(BeEmpty())
			Expect(locations[0]).To(HaveKey("path"))

			location, err := harness.Client.GetShareExportLocation(ctx, id, locations[0]["id"].(string))
			Expect(err).NotTo(HaveOccurred())
			Expect(location["path"]).To(Equal(locations[0]["path"]))
		})
	})

	Context("When creating shares in bulk", func() {
		It("should provision a batch of shares concurrently registered for cleanup", func() {
			payloads := []map[string]any{
				api.NewSharePayload(config).Build(),
				api.NewSharePayload(config).Build(),
				api.NewSharePayload(config).Build(),
			}

			shares := harness.CreateShares(ctx, payloads)
			Expect(shares).To(HaveLen(3))

			for _, share := range shares {
				Expect(share["status"]).To(Equal(client.StatusAvailable))
			}
		})
	})
})
