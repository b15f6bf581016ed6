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
	"errors"
	"net/http"
	"net/url"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sapcc/manila-tempest-plugin/pkg/client"
	"github.com/sapcc/manila-tempest-plugin/test/api"
)

var _ = Describe("Share Group Operations", func() {
	Context("When managing the group lifecycle", func() {
		It("should create a group and expose it through get and list", func() {
			group := harness.CreateShareGroup(ctx, nil)
			Expect(group["status"]).To(Equal(client.StatusAvailable))

			id := group["id"].(string)

			fetched, err := harness.Client.GetShareGroup(ctx, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(fetched["name"]).To(Equal(group["name"]))

			groups, err := harness.Client.ListShareGroups(ctx, true, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(groups).NotTo(BeEmpty())
		})

		It("should update the group's name and description", func() {
			group := harness.CreateShareGroup(ctx, nil)
			id := group["id"].(string)

			updated, err := harness.Client.UpdateShareGroup(ctx, id, map[string]any{
				"name":        "renamed-group",
				"description": "updated by suite",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated["name"]).To(Equal("renamed-group"))
			Expect(updated["description"]).To(Equal("updated by suite"))
		})
	})

	Context("When placing shares into a group", func() {
		It("should create a member share carrying the group ID", func() {
			group := harness.CreateShareGroup(ctx, nil)
			groupID := group["id"].(string)

			share := harness.CreateShare(ctx, api.NewSharePayload(config).
				WithShareGroupID(groupID).
				Build())

			Expect(share["share_group_id"]).To(Equal(groupID))

			params := url.Values{}
			params.Set("share_group_id", groupID)

			members, err := harness.Client.ListShares(ctx, true, params)
			Expect(err).NotTo(HaveOccurred())
			Expect(members).To(HaveLen(1))
		})

		It("should refuse to delete a group that still has members", func() {
			group := harness.CreateShareGroup(ctx, nil)
			groupID := group["id"].(string)

			harness.CreateShare(ctx, api.NewSharePayload(config).
				WithShareGroupID(groupID).
				Build())

			err := harness.Client.DeleteShareGroup(ctx, groupID)

			var apiErr *client.APIError

			Expect(errors.As(err, &apiErr)).To(BeTrue(), "expected API error, got %v", err)
			Expect(apiErr.StatusCode).To(Equal(http.StatusConflict))
		})
	})

	Context("When snapshotting a group", func() {
		It("should create, update and delete a group snapshot", func() {
			group := harness.CreateShareGroup(ctx, nil)
			groupID := group["id"].(string)

			snapshot, err := harness.Client.CreateShareGroupSnapshot(ctx, groupID, map[string]any{
				"name": api.UniqueName("group-snapshot"),
			})
			Expect(err).NotTo(HaveOccurred())

			id := snapshot["id"].(string)

			Expect(harness.Client.WaitForShareGroupSnapshotStatus(ctx, id, client.StatusAvailable)).To(Succeed())

			updated, err := harness.Client.UpdateShareGroupSnapshot(ctx, id, map[string]any{
				"description": "nightly",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated["description"]).To(Equal("nightly"))

			Expect(harness.Client.DeleteShareGroupSnapshot(ctx, id)).To(Succeed())
			Expect(harness.Client.WaitForShareGroupSnapshotDeletion(ctx, id)).To(Succeed())
		})
	})

	Context("When resetting group state", func() {
		It("should override the group status as an administrator", func() {
			if !config.RunAdminTests {
				Skip("admin actions disabled")
			}

			group := harness.CreateShareGroup(ctx, nil)
			id := group["id"].(string)

			Expect(harness.Client.ResetShareGroupStatus(ctx, id, "error")).To(Succeed())

			fetched, err := harness.Client.GetShareGroup(ctx, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(fetched["status"]).To(Equal("error"))

			Expect(harness.Client.ResetShareGroupStatus(ctx, id, client.StatusAvailable)).To(Succeed())
		})
	})
})
