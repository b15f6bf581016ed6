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

var _ = Describe("Share Network Operations", func() {
	Context("When managing share networks", func() {
		It("should create a network and expose it through get and list", func() {
			network := harness.CreateShareNetwork(ctx)
			id := network["id"].(string)

			fetched, err := harness.Client.GetShareNetwork(ctx, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(fetched["name"]).To(Equal(network["name"]))

			params := url.Values{}
			params.Set("name", network["name"].(string))

			networks, err := harness.Client.ListShareNetworks(ctx, true, params)
			Expect(err).NotTo(HaveOccurred())
			Expect(networks).To(HaveLen(1))
		})

		It("should update the network's name and description", func() {
			network := harness.CreateShareNetwork(ctx)

			updated, err := harness.Client.UpdateShareNetwork(ctx, network["id"].(string), map[string]any{
				"name":        "renamed-network",
				"description": "updated by suite",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated["name"]).To(Equal("renamed-network"))
			Expect(updated["description"]).To(Equal("updated by suite"))
		})

		It("should refuse to delete a network that still hosts shares", func() {
			network := harness.CreateShareNetwork(ctx)
			networkID := network["id"].(string)

			harness.CreateShare(ctx, api.NewSharePayload(config).
				WithShareNetworkID(networkID).
				Build())

			err := harness.Client.DeleteShareNetwork(ctx, networkID)

			var apiErr *client.APIError

			Expect(errors.As(err, &apiErr)).To(BeTrue(), "expected API error, got %v", err)
			Expect(apiErr.StatusCode).To(Equal(http.StatusConflict))
		})
	})

	Context("When attaching security services", func() {
		It("should add a service to the network and remove it again", func() {
			network := harness.CreateShareNetwork(ctx)
			networkID := network["id"].(string)

			service := harness.CreateSecurityService(ctx, "ldap")
			serviceID := service["id"].(string)

			updated, err := harness.Client.AddSecurityServiceToShareNetwork(ctx, networkID, serviceID)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated["security_services"]).To(HaveLen(1))

			updated, err = harness.Client.RemoveSecurityServiceFromShareNetwork(ctx, networkID, serviceID)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated["security_services"]).To(BeEmpty())
		})
	})

	Context("When managing security services", func() {
		It("should create, update and list a security service", func() {
			service := harness.CreateSecurityService(ctx, "kerberos")
			id := service["id"].(string)

			Expect(service["type"]).To(Equal("kerberos"))

			updated, err := harness.Client.UpdateSecurityService(ctx, id, map[string]any{
				"dns_ip": "10.0.0.53",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated["dns_ip"]).To(Equal("10.0.0.53"))

			services, err := harness.Client.ListSecurityServices(ctx, true, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(services).NotTo(BeEmpty())
		})
	})

	Context("When inspecting the deployment topology", func() {
		It("should list availability zones", func() {
			zones, err := harness.Client.ListAvailabilityZones(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(zones).NotTo(BeEmpty())
			Expect(zones[0]).To(HaveKey("name"))
		})

		It("should list the service topology as an administrator", func() {
			if !config.RunAdminTests {
				Skip("admin actions disabled")
			}

			services, err := harness.Client.ListServices(ctx, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(services).NotTo(BeEmpty())

			pools, err := harness.Client.ListPools(ctx, false, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(pools).NotTo(BeEmpty())
			Expect(pools[0]).To(HaveKey("name"))
		})
	})
})
