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
)

const quotaProjectID = "sim-project"

var _ = Describe("Quota Operations", func() {
	BeforeEach(func() {
		if !config.RunAdminTests {
			Skip("admin actions disabled")
		}
	})

	Context("When reading quotas", func() {
		It("should return the default quota set for a fresh project", func() {
			defaults, err := harness.Client.GetDefaultQuotas(ctx, quotaProjectID)
			Expect(err).NotTo(HaveOccurred())

			quotas, err := harness.Client.GetQuotas(ctx, quotaProjectID, "", "")
			Expect(err).NotTo(HaveOccurred())

			for _, key := range []string{"shares", "gigabytes", "snapshots"} {
				Expect(quotas).To(HaveKey(key))
				Expect(quotas[key]).To(BeNumerically("==", defaults[key]))
			}
		})

		It("should break down usage in the detailed view", func() {
			if !harness.Client.Supports("2.25") {
				Skip("detailed quotas need microversion 2.25")
			}

			quotas, err := harness.Client.GetDetailedQuotas(ctx, quotaProjectID, "", "")
			Expect(err).NotTo(HaveOccurred())

			detail, ok := quotas["shares"].(map[string]any)
			Expect(ok).To(BeTrue(), "detailed quota should be an object, got %T", quotas["shares"])
			Expect(detail).To(HaveKey("limit"))
			Expect(detail).To(HaveKey("in_use"))
			Expect(detail).To(HaveKey("reserved"))
		})
	})

	Context("When updating quotas", func() {
		It("should apply an override and restore defaults on reset", func() {
			defaults, err := harness.Client.GetDefaultQuotas(ctx, quotaProjectID)
			Expect(err).NotTo(HaveOccurred())

			updated, err := harness.Client.UpdateQuotas(ctx, quotaProjectID, "", "", map[string]any{
				"shares": 60,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated["shares"]).To(BeNumerically("==", 60))

			Expect(harness.Client.ResetQuotas(ctx, quotaProjectID, "", "")).To(Succeed())

			quotas, err := harness.Client.GetQuotas(ctx, quotaProjectID, "", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(quotas["shares"]).To(BeNumerically("==", defaults["shares"]))
		})
	})
})
