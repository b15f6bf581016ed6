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

var _ = Describe("Access Rule Operations", func() {
	var shareID string

	BeforeEach(func() {
		share := harness.CreateShare(ctx, api.NewSharePayload(config).Build())
		shareID = share["id"].(string)
	})

	Context("When granting and revoking access", func() {
		It("should apply a rule and expose it in the access list", func() {
			rule := harness.CreateAccessRule(ctx, shareID)

			rules, err := harness.Client.ListAccessRules(ctx, shareID)
			Expect(err).NotTo(HaveOccurred())
			Expect(rules).To(HaveLen(1))
			Expect(rules[0]["id"]).To(Equal(rule["id"]))
			Expect(rules[0]["state"]).To(Equal(client.AccessStateActive))
		})

		It("should default the access level to read-write", func() {
			harness.CreateAccessRule(ctx, shareID)

			rules, err := harness.Client.ListAccessRules(ctx, shareID)
			Expect(err).NotTo(HaveOccurred())
			Expect(rules[0]["access_level"]).To(Equal("rw"))
		})

		It("should revoke a rule and drain it from the access list", func() {
			rule := harness.CreateAccessRule(ctx, shareID)
			ruleID := rule["id"].(string)

			Expect(harness.Client.DeleteAccessRule(ctx, shareID, ruleID)).To(Succeed())
			Expect(harness.Client.WaitForAccessRuleDeletion(ctx, shareID, ruleID)).To(Succeed())

			rules, err := harness.Client.ListAccessRules(ctx, shareID)
			Expect(err).NotTo(HaveOccurred())
			Expect(rules).To(BeEmpty())
		})
	})

	Context("When using the dedicated access rule read API", func() {
		It("should read a single rule and filter by share", func() {
			if !harness.Client.Supports("2.45") {
				Skip("access rule read API needs microversion 2.45")
			}

			rule := harness.CreateAccessRule(ctx, shareID)
			ruleID := rule["id"].(string)

			fetched, err := harness.Client.GetAccessRule(ctx, ruleID, client.WithMicroversion("2.45"))
			Expect(err).NotTo(HaveOccurred())
			Expect(fetched["share_id"]).To(Equal(shareID))

			rules, err := harness.Client.ListAccessRulesDetailed(ctx, shareID, client.WithMicroversion("2.45"))
			Expect(err).NotTo(HaveOccurred())
			Expect(rules).To(HaveLen(1))
		})
	})

	Context("When tagging rules with metadata", func() {
		It("should update and delete access rule metadata", func() {
			if !harness.Client.Supports("2.45") {
				Skip("access rule metadata needs microversion 2.45")
			}

			rule := harness.CreateAccessRule(ctx, shareID)
			ruleID := rule["id"].(string)

			_, err := harness.Client.UpdateAccessRuleMetadata(ctx, ruleID,
				map[string]string{"team": "storage"}, client.WithMicroversion("2.45"))
			Expect(err).NotTo(HaveOccurred())

			fetched, err := harness.Client.GetAccessRule(ctx, ruleID, client.WithMicroversion("2.45"))
			Expect(err).NotTo(HaveOccurred())
			Expect(fetched["metadata"]).To(HaveKeyWithValue("team", "storage"))

			Expect(harness.Client.DeleteAccessRuleMetadata(ctx, ruleID, "team",
				client.WithMicroversion("2.45"))).To(Succeed())
		})
	})
})
