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

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sapcc/manila-tempest-plugin/pkg/client"
)

var _ = Describe("Microversion Negotiation", func() {
	Context("When discovering the endpoint's versions", func() {
		It("should advertise a v2 API with a version range", func() {
			versions, err := harness.Client.ListAPIVersions(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(versions).NotTo(BeEmpty())

			var v2 *client.APIVersion

			for i := range versions {
				if versions[i].ID == "v2.0" || versions[i].ID == "v2" {
					v2 = &versions[i]
					break
				}
			}

			Expect(v2).NotTo(BeNil(), "endpoint advertises no v2 API")
			Expect(v2.MinVersion).NotTo(BeEmpty())
			Expect(v2.MaxVersion).NotTo(BeEmpty())
		})
	})

	Context("When the configured version exceeds the endpoint's ceiling", func() {
		It("should clamp down to the advertised maximum", func() {
			eager, err := client.New(client.Options{
				BaseURL:       baseURL,
				AuthToken:     config.AuthToken,
				Microversion:  "99.99",
				BuildInterval: config.BuildInterval,
				BuildTimeout:  config.BuildTimeout,
			})
			Expect(err).NotTo(HaveOccurred())

			negotiated, err := eager.NegotiateMicroversion(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(negotiated).NotTo(Equal("99.99"))

			// The clamped version must be usable.
			_, err = eager.ListShares(ctx, false, nil)
			Expect(err).NotTo(HaveOccurred())
		})

		It("should be rejected with 406 when sent anyway", func() {
			if !config.Simulated() {
				Skip("the backend's ceiling is only known for the simulated backend")
			}

			_, err := harness.Client.ListShares(ctx, false, nil, client.WithMicroversion("99.99"))

			var apiErr *client.APIError

			Expect(errors.As(err, &apiErr)).To(BeTrue(), "expected API error, got %v", err)
			Expect(apiErr.StatusCode).To(Equal(http.StatusNotAcceptable))
		})
	})

	Context("When omitting the version header", func() {
		It("should fall back to the backend's base behaviour", func() {
			shares, err := harness.Client.ListShares(ctx, false, nil, client.WithoutMicroversion())
			Expect(err).NotTo(HaveOccurred())
			Expect(shares).NotTo(BeNil())
		})
	})
})
