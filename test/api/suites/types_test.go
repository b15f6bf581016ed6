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

	"github.com/sapcc/manila-tempest-plugin/pkg/cleanup"
	"github.com/sapcc/manila-tempest-plugin/test/api"
)

var _ = Describe("Share Type Operations", func() {
	BeforeEach(func() {
		if !config.RunAdminTests {
			Skip("admin actions disabled")
		}
	})

	Context("When managing share types", func() {
		It("should create a type and expose it through get and list", func() {
			shareType := harness.CreateShareType(ctx, nil)
			id := shareType["id"].(string)

			fetched, err := harness.Client.GetShareType(ctx, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(fetched["name"]).To(Equal(shareType["name"]))

			types, err := harness.Client.ListShareTypes(ctx, nil)
			Expect(err).NotTo(HaveOccurred())

			ids := make([]any, 0, len(types))
			for _, t := range types {
				ids = append(ids, t["id"])
			}

			Expect(ids).To(ContainElement(id))
		})

		It("should manage extra specs on a type", func() {
			shareType := harness.CreateShareType(ctx, nil)
			id := shareType["id"].(string)

			_, err := harness.Client.SetShareTypeExtraSpecs(ctx, id, map[string]string{
				"snapshot_support": "true",
			})
			Expect(err).NotTo(HaveOccurred())

			specs, err := harness.Client.GetShareTypeExtraSpecs(ctx, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(specs).To(HaveKeyWithValue("snapshot_support", "true"))

			Expect(harness.Client.DeleteShareTypeExtraSpec(ctx, id, "snapshot_support")).To(Succeed())

			specs, err = harness.Client.GetShareTypeExtraSpecs(ctx, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(specs).NotTo(HaveKey("snapshot_support"))
		})

		It("should grant and revoke project access on a type", func() {
			shareType := harness.CreateShareType(ctx, nil)
			id := shareType["id"].(string)

			Expect(harness.Client.AddShareTypeAccess(ctx, id, "project-a")).To(Succeed())

			access, err := harness.Client.ListShareTypeAccess(ctx, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(access).To(HaveLen(1))
			Expect(access[0]["project_id"]).To(Equal("project-a"))

			Expect(harness.Client.RemoveShareTypeAccess(ctx, id, "project-a")).To(Succeed())

			access, err = harness.Client.ListShareTypeAccess(ctx, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(access).To(BeEmpty())
		})
	})

	Context("When managing share group types", func() {
		It("should create a group type bound to a share type", func() {
			shareType := harness.CreateShareType(ctx, nil)

			groupType, err := harness.Client.CreateShareGroupType(ctx, api.UniqueName("group-type"),
				[]string{shareType["id"].(string)}, true, nil)
			Expect(err).NotTo(HaveOccurred())

			id := groupType["id"].(string)

			harness.Ledger.Register(&cleanup.ShareGroupTypeResource{
				Client:      harness.Client,
				GroupTypeID: id,
			})

			fetched, err := harness.Client.GetShareGroupType(ctx, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(fetched["name"]).To(Equal(groupType["name"]))

			types, err := harness.Client.ListShareGroupTypes(ctx, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(types).NotTo(BeEmpty())
		})

		It("should manage group specs on a group type", func() {
			shareType := harness.CreateShareType(ctx, nil)

			groupType, err := harness.Client.CreateShareGroupType(ctx, api.UniqueName("group-type"),
				[]string{shareType["id"].(string)}, true, nil)
			Expect(err).NotTo(HaveOccurred())

			id := groupType["id"].(string)

			harness.Ledger.Register(&cleanup.ShareGroupTypeResource{
				Client:      harness.Client,
				GroupTypeID: id,
			})

			_, err = harness.Client.SetShareGroupTypeSpecs(ctx, id, map[string]string{
				"consistent_snapshot_support": "host",
			})
			Expect(err).NotTo(HaveOccurred())

			specs, err := harness.Client.GetShareGroupTypeSpecs(ctx, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(specs).To(HaveKeyWithValue("consistent_snapshot_support", "host"))

			Expect(harness.Client.DeleteShareGroupTypeSpec(ctx, id, "consistent_snapshot_support")).To(Succeed())
		})
	})
})
