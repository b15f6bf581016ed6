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
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sapcc/manila-tempest-plugin/pkg/client"
	"github.com/sapcc/manila-tempest-plugin/test/api"
)

var _ = Describe("Snapshot Operations", func() {
	Context("When snapshotting a share", func() {
		var shareID string

		BeforeEach(func() {
			share := harness.CreateShare(ctx, api.NewSharePayload(config).Build())
			shareID = share["id"].(string)
		})

		It("should create a snapshot and list it under its share", func() {
			snapshot := harness.CreateSnapshot(ctx, shareID)
			Expect(snapshot["status"]).To(Equal(client.StatusAvailable))
			Expect(snapshot["share_id"]).To(Equal(shareID))

			snapshots, err := harness.Client.ListSnapshotsForShare(ctx, shareID, true)
			Expect(err).NotTo(HaveOccurred())
			Expect(snapshots).To(HaveLen(1))
			Expect(snapshots[0]["id"]).To(Equal(snapshot["id"]))
		})

		It("should delete a snapshot independently of its share", func() {
			snapshot := harness.CreateSnapshot(ctx, shareID)
			id := snapshot["id"].(string)

			Expect(harness.Client.DeleteSnapshot(ctx, id)).To(Succeed())
			Expect(harness.Client.WaitForSnapshotDeletion(ctx, id)).To(Succeed())

			_, err := harness.Client.GetShare(ctx, shareID)
			Expect(err).NotTo(HaveOccurred(), "share must survive snapshot deletion")
		})

		It("should create a new share from a snapshot", func() {
			snapshot := harness.CreateSnapshot(ctx, shareID)

			restored := harness.CreateShare(ctx, api.NewSharePayload(config).
				WithSnapshotID(snapshot["id"].(string)).
				Build())

			Expect(restored["snapshot_id"]).To(Equal(snapshot["id"]))
			Expect(restored["status"]).To(Equal(client.StatusAvailable))
		})

		It("should revert a share to its snapshot", func() {
			snapshot := harness.CreateSnapshot(ctx, shareID)

			Expect(harness.Client.RevertToSnapshot(ctx, shareID, snapshot["id"].(string))).To(Succeed())
			Expect(harness.Client.WaitForShareStatus(ctx, shareID, client.StatusAvailable)).To(Succeed())
		})

		It("should expose snapshot export locations", func() {
			snapshot := harness.CreateSnapshot(ctx, shareID)

			locations, err := harness.Client.ListSnapshotExportLocations(ctx, snapshot["id"].(string))
			Expect(err).NotTo(HaveOccurred())
			Expect(locations).NotTo(BeEmpty())
			Expect(locations[0]).To(HaveKey("path"))
		})
	})

	Context("When granting access to a mountable snapshot", func() {
		It("should apply and revoke a snapshot access rule", func() {
			share := harness.CreateShare(ctx, api.NewSharePayload(config).Build())
			snapshot := harness.CreateSnapshot(ctx, share["id"].(string))
			snapshotID := snapshot["id"].(string)

			accessType, accessTo := api.AccessRuleData(config.Protocol)

			rule, err := harness.Client.CreateSnapshotAccessRule(ctx, snapshotID, accessType, accessTo)
			Expect(err).NotTo(HaveOccurred())

			ruleID := rule["id"].(string)

			Expect(harness.Client.WaitForSnapshotAccessRuleState(ctx, snapshotID, ruleID, client.AccessStateActive)).To(Succeed())

			Expect(harness.Client.DeleteSnapshotAccessRule(ctx, snapshotID, ruleID)).To(Succeed())
			Expect(harness.Client.WaitForSnapshotAccessRuleDeletion(ctx, snapshotID, ruleID)).To(Succeed())
		})
	})

	Context("When snapshotting a missing share", func() {
		It("should return 404", func() {
			_, err := harness.Client.CreateSnapshot(ctx, "no-such-share", nil)
			Expect(client.IsNotFound(err)).To(BeTrue(), "expected 404, got %v", err)
		})
	})
})
