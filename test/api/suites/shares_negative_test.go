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
	"github.com/sapcc/manila-tempest-plugin/pkg/wait"
	"github.com/sapcc/manila-tempest-plugin/test/api"
)

var _ = Describe("Share Negative Cases", func() {
	Context("When addressing shares that do not exist", func() {
		It("should return 404 for get", func() {
			_, err := harness.Client.GetShare(ctx, "no-such-share")
			Expect(client.IsNotFound(err)).To(BeTrue(), "expected 404, got %v", err)
		})

		It("should return 404 for delete", func() {
			err := harness.Client.DeleteShare(ctx, "no-such-share", nil)
			Expect(client.IsNotFound(err)).To(BeTrue(), "expected 404, got %v", err)
		})
	})

	Context("When resizing with invalid sizes", func() {
		It("should reject an extend that does not grow the share", func() {
			share := harness.CreateShare(ctx, api.NewSharePayload(config).WithSize(2).Build())

			err := harness.Client.ExtendShare(ctx, share["id"].(string), 2)

			var apiErr *client.APIError

			Expect(errors.As(err, &apiErr)).To(BeTrue(), "expected API error, got %v", err)
			Expect(apiErr.StatusCode).To(Equal(http.StatusBadRequest))
		})

		It("should reject a shrink that does not shrink the share", func() {
			share := harness.CreateShare(ctx, api.NewSharePayload(config).WithSize(2).Build())

			err := harness.Client.ShrinkShare(ctx, share["id"].(string), 2)

			var apiErr *client.APIError

			Expect(errors.As(err, &apiErr)).To(BeTrue(), "expected API error, got %v", err)
			Expect(apiErr.StatusCode).To(Equal(http.StatusBadRequest))
		})
	})

	Context("When provisioning fails on the backend", func() {
		It("should surface an error state instead of waiting out the timeout", func() {
			// The simulated backend fails shares whose name carries the
			// error marker, real deployments need an unsatisfiable
			// scheduling hint to reproduce this.
			if !config.Simulated() {
				Skip("deterministic build failures need the simulated backend")
			}

			share := harness.CreateShareNoWait(ctx, api.NewSharePayload(config).WithName("tempest-error-share").Build())

			err := harness.Client.WaitForShareStatus(ctx, share["id"].(string), client.StatusAvailable)

			var buildErr *wait.BuildError

			Expect(errors.As(err, &buildErr)).To(BeTrue(), "expected build error, got %v", err)
			Expect(buildErr.Status).To(Equal("error"))
		})
	})

	Context("When granting duplicate access", func() {
		It("should reject a second rule for the same subject", func() {
			share := harness.CreateShare(ctx, api.NewSharePayload(config).Build())
			id := share["id"].(string)

			rule := harness.CreateAccessRule(ctx, id)

			_, err := harness.Client.CreateAccessRule(ctx, id, client.AccessRule{
				AccessType: rule["access_type"].(string),
				AccessTo:   rule["access_to"].(string),
			})

			var apiErr *client.APIError

			Expect(errors.As(err, &apiErr)).To(BeTrue(), "expected API error, got %v", err)
			Expect(apiErr.StatusCode).To(Equal(http.StatusBadRequest))
		})
	})
})
