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

// The sweeper removes resources left behind by aborted test runs. It
// lists everything whose name carries the test prefix, registers it in a
// cleanup ledger and tears it down in dependency order.
package main

import (
	"context"
	"fmt"
	"log"
	"maps"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spjmurray/go-util/pkg/set"

	"github.com/sapcc/manila-tempest-plugin/pkg/cleanup"
	"github.com/sapcc/manila-tempest-plugin/pkg/client"
)

type options struct {
	endpoint          string
	authToken         string
	microversion      string
	prefix            string
	interval          time.Duration
	timeout           time.Duration
	dryRun            bool
	suppressErrors    bool
	protectedNetworks []string
}

func (o *options) addFlags(flags *pflag.FlagSet) {
	flags.StringVar(&o.endpoint, "endpoint", os.Getenv("MANILA_BASE_URL"), "Versioned share service endpoint, e.g. http://host:8786/v2")
	flags.StringVar(&o.authToken, "auth-token", os.Getenv("MANILA_AUTH_TOKEN"), "Authentication token")
	flags.StringVar(&o.microversion, "microversion", client.DefaultMicroversion, "API microversion to negotiate down from")
	flags.StringVar(&o.prefix, "prefix", "tempest-", "Only resources whose names carry this prefix are swept")
	flags.DurationVar(&o.interval, "interval", 3*time.Second, "Poll interval for deletion waits")
	flags.DurationVar(&o.timeout, "timeout", 5*time.Minute, "Timeout for deletion waits")
	flags.BoolVar(&o.dryRun, "dry-run", false, "List what would be deleted without deleting anything")
	flags.BoolVar(&o.suppressErrors, "suppress-errors", false, "Log teardown failures instead of failing the sweep")
	flags.StringSliceVar(&o.protectedNetworks, "protected-share-networks", nil, "Share network IDs that must never be swept")
}

func main() {
	o := &options{}
	o.addFlags(pflag.CommandLine)

	pflag.Parse()

	if o.endpoint == "" {
		fmt.Fprintln(os.Stderr, "--endpoint or MANILA_BASE_URL is required")
		os.Exit(1)
	}

	if err := run(context.Background(), o); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, o *options) error {
	c, err := client.New(client.Options{
		BaseURL:       o.endpoint,
		AuthToken:     o.authToken,
		Microversion:  o.microversion,
		BuildInterval: o.interval,
		BuildTimeout:  o.timeout,
		Logf:          log.Printf,
	})
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}

	if _, err := c.NegotiateMicroversion(ctx); err != nil {
		return fmt.Errorf("negotiating microversion: %w", err)
	}

	ledgerOpts := []cleanup.Option{cleanup.WithLogger(log.Printf)}
	if o.suppressErrors {
		ledgerOpts = append(ledgerOpts, cleanup.WithSuppressAll())
	}

	ledger := cleanup.NewLedger(ledgerOpts...)

	if err := register(ctx, c, o, ledger); err != nil {
		return err
	}

	if ledger.Len() == 0 {
		log.Printf("nothing to sweep")
		return nil
	}

	if o.dryRun {
		log.Printf("dry run, %d resources would be deleted", ledger.Len())
		return nil
	}

	log.Printf("sweeping %d resources", ledger.Len())

	return ledger.Run(ctx)
}

// register fills the ledger with every leaked resource. Registration
// order matters: the ledger tears down in reverse, so dependencies are
// registered before their dependents.
func register(ctx context.Context, c *client.Client, o *options, ledger *cleanup.Ledger) error {
	networks, err := c.ListShareNetworks(ctx, true, nil)
	if err != nil {
		return fmt.Errorf("listing share networks: %w", err)
	}

	candidates := map[string]string{}

	for _, network := range networks {
		if id, name := identity(network); strings.HasPrefix(name, o.prefix) {
			candidates[id] = name
		}
	}

	candidateIDs := set.New[string](slices.Collect(maps.Keys(candidates))...)
	protected := set.New[string](o.protectedNetworks...)

	for id := range candidateIDs.Intersection(protected).All() {
		log.Printf("skipping protected share network %s (%s)", id, candidates[id])
	}

	for id := range candidateIDs.Difference(protected).All() {
		ledger.Register(&cleanup.ShareNetworkResource{Client: c, NetworkID: id})
	}

	services, err := c.ListSecurityServices(ctx, true, nil)
	if err != nil {
		return fmt.Errorf("listing security services: %w", err)
	}

	for _, service := range services {
		if id, name := identity(service); strings.HasPrefix(name, o.prefix) {
			ledger.Register(&cleanup.SecurityServiceResource{Client: c, ServiceID: id})
		}
	}

	groups, err := c.ListShareGroups(ctx, true, nil)
	if err != nil {
		return fmt.Errorf("listing share groups: %w", err)
	}

	for _, group := range groups {
		if id, name := identity(group); strings.HasPrefix(name, o.prefix) {
			ledger.Register(&cleanup.ShareGroupResource{Client: c, GroupID: id})
		}
	}

	shares, err := c.ListShares(ctx, true, nil)
	if err != nil {
		return fmt.Errorf("listing shares: %w", err)
	}

	for _, share := range shares {
		id, name := identity(share)

		if !strings.HasPrefix(name, o.prefix) {
			continue
		}

		groupID, _ := share["share_group_id"].(string)

		ledger.Register(&cleanup.ShareResource{Client: c, ShareID: id, ShareGroupID: groupID})

		snapshots, err := c.ListSnapshotsForShare(ctx, id, true)
		if err != nil {
			return fmt.Errorf("listing snapshots of share %s: %w", id, err)
		}

		for _, snapshot := range snapshots {
			snapshotID, _ := identity(snapshot)
			ledger.Register(&cleanup.SnapshotResource{Client: c, SnapshotID: snapshotID})
		}
	}

	return nil
}

func identity(resource map[string]any) (string, string) {
	id, _ := resource["id"].(string)
	name, _ := resource["name"].(string)

	return id, name
}
