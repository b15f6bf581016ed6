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
	"net/url"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sapcc/manila-tempest-plugin/pkg/client"
	"github.com/sapcc/manila-tempest-plugin/pkg/wait"
	"github.com/sapcc/manila-tempest-plugin/test/api"
)

var _ = Describe("User Message Operations", func() {
	// failShare provisions a share that is guaranteed to fail, returning
	// its ID once the failure has been observed.
	failShare := func() string {
		GinkgoHelper()

		share := harness.CreateShareNoWait(ctx, api.NewSharePayload(config).
			WithName(api.UniqueName("error-share")).
			Build())

		id := share["id"].(string)

		err := harness.Client.WaitForShareStatus(ctx, id, client.StatusAvailable)

		var buildErr *wait.BuildError

		Expect(errors.As(err, &buildErr)).To(BeTrue(), "expected build error, got %v", err)

		return id
	}

	BeforeEach(func() {
		// Failure injection needs the simulated backend.
		if !config.Simulated() {
			Skip("deterministic build failures need the simulated backend")
		}
	})

	Context("When a share fails to build", func() {
		It("should record a user message explaining the failure", func() {
			shareID := failShare()

			message, err := harness.Client.WaitForMessage(ctx, shareID)
			Expect(err).NotTo(HaveOccurred())
			Expect(message["resource_id"]).To(Equal(shareID))
			Expect(message["message_level"]).To(Equal("ERROR"))
			Expect(message["user_message"]).NotTo(BeEmpty())

			fetched, err := harness.Client.GetMessage(ctx, message["id"].(string))
			Expect(err).NotTo(HaveOccurred())
			Expect(fetched["user_message"]).To(Equal(message["user_message"]))
		})

		It("should filter messages by resource ID", func() {
			first := failShare()
			second := failShare()

			_, err := harness.Client.WaitForMessage(ctx, second)
			Expect(err).NotTo(HaveOccurred())

			params := url.Values{}
			params.Set("resource_id", first)

			messages, err := harness.Client.ListMessages(ctx, params)
			Expect(err).NotTo(HaveOccurred())
			Expect(messages).To(HaveLen(1))
			Expect(messages[0]["resource_id"]).To(Equal(first))
		})
	})

	Context("When deleting messages", func() {
		It("should remove the message for good", func() {
			shareID := failShare()

			message, err := harness.Client.WaitForMessage(ctx, shareID)
			Expect(err).NotTo(HaveOccurred())

			id := message["id"].(string)

			Expect(harness.Client.DeleteMessage(ctx, id)).To(Succeed())

			_, err = harness.Client.GetMessage(ctx, id)
			Expect(client.IsNotFound(err)).To(BeTrue(), "deleted message should yield 404, got %v", err)
		})
	})
})
