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

var _ = Describe("Share Replica Operations", func() {
	var (
		shareID string
		zone    string
	)

	BeforeEach(func() {
		share := harness.CreateShare(ctx, api.NewSharePayload(config).Build())
		shareID = share["id"].(string)

		zone = ""
		if len(config.AvailabilityZones) > 0 {
			zone = config.AvailabilityZones[0]
		}
	})

	Context("When replicating a share", func() {
		It("should create a replica and list it under its share", func() {
			replica := harness.CreateReplica(ctx, shareID, zone)
			Expect(replica["share_id"]).To(Equal(shareID))

			replicas, err := harness.Client.ListShareReplicas(ctx, shareID)
			Expect(err).NotTo(HaveOccurred())
			Expect(replicas).NotTo(BeEmpty())
		})

		It("should report the first replica as the active one", func() {
			replica := harness.CreateReplica(ctx, shareID, zone)
			Expect(replica["replica_state"]).To(Equal(client.ReplicaStateActive))

			second := harness.CreateReplica(ctx, shareID, zone)
			Expect(second["replica_state"]).To(Equal(client.ReplicaStateInSync))
		})

		It("should expose replica export locations", func() {
			replica := harness.CreateReplica(ctx, shareID, zone)

			locations, err := harness.Client.ListShareReplicaExportLocations(ctx, replica["id"].(string))
			Expect(err).NotTo(HaveOccurred())
			Expect(locations).NotTo(BeEmpty())
		})
	})

	Context("When promoting a replica", func() {
		It("should hand the active role to the promoted replica", func() {
			active := harness.CreateReplica(ctx, shareID, zone)
			secondary := harness.CreateReplica(ctx, shareID, zone)

			secondaryID := secondary["id"].(string)

			_, err := harness.Client.PromoteShareReplica(ctx, secondaryID)
			Expect(err).NotTo(HaveOccurred())

			Expect(harness.Client.WaitForShareReplicaState(ctx, secondaryID, client.ReplicaStateActive)).To(Succeed())

			demoted, err := harness.Client.GetShareReplica(ctx, active["id"].(string))
			Expect(err).NotTo(HaveOccurred())
			Expect(demoted["replica_state"]).NotTo(Equal(client.ReplicaStateActive))
		})
	})

	Context("When resynchronizing a replica", func() {
		It("should bring the replica back in sync", func() {
			harness.CreateReplica(ctx, shareID, zone)
			secondary := harness.CreateReplica(ctx, shareID, zone)

			secondaryID := secondary["id"].(string)

			Expect(harness.Client.ResetShareReplicaState(ctx, secondaryID, client.ReplicaStateOutOfSync)).To(Succeed())
			Expect(harness.Client.ResyncShareReplica(ctx, secondaryID)).To(Succeed())
			Expect(harness.Client.WaitForShareReplicaState(ctx, secondaryID, client.ReplicaStateInSync)).To(Succeed())
		})
	})

	Context("When deleting a replica", func() {
		It("should remove the replica without touching the share", func() {
			replica, err := harness.Client.CreateShareReplica(ctx, shareID, zone)
			Expect(err).NotTo(HaveOccurred())

			id := replica["id"].(string)

			Expect(harness.Client.WaitForShareReplicaStatus(ctx, id, client.StatusAvailable)).To(Succeed())
			Expect(harness.Client.DeleteShareReplica(ctx, id)).To(Succeed())
			Expect(harness.Client.WaitForShareReplicaDeletion(ctx, id)).To(Succeed())

			_, err = harness.Client.GetShare(ctx, shareID)
			Expect(err).NotTo(HaveOccurred())
		})
	})
})
