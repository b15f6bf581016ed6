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

// Package cleanup tracks test resources and tears them down in reverse
// registration order, so dependents are always removed before the
// resources they depend on.
package cleanup

import (
	"context"
	"errors"
	"fmt"

	"github.com/sapcc/manila-tempest-plugin/pkg/client"
)

//go:generate mockgen -destination=mock/resource.go -package=mock github.com/sapcc/manila-tempest-plugin/pkg/cleanup Resource

// Resource is anything the ledger can tear down. Delete requests removal,
// WaitForDeletion blocks until the backend confirms the resource is gone.
type Resource interface {
	// Kind names the resource class for logging, e.g. "share".
	Kind() string

	// ID identifies the resource instance.
	ID() string

	// Delete requests removal of the resource.
	Delete(ctx context.Context) error

	// WaitForDeletion blocks until the resource no longer exists.
	WaitForDeletion(ctx context.Context) error
}

// Ledger records resources for teardown. It is not safe for concurrent
// use, each test owns its own ledger.
type Ledger struct {
	entries     []*entry
	suppressAll bool
	logf        func(format string, args ...any)
}

type entry struct {
	resource Resource
	done     bool
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithSuppressAll makes Run swallow every per-entry error instead of
// returning them, used by best-effort sweeps.
func WithSuppressAll() Option {
	return func(l *Ledger) {
		l.suppressAll = true
	}
}

// WithLogger directs per-entry progress and suppressed errors somewhere
// visible.
func WithLogger(logf func(format string, args ...any)) Option {
	return func(l *Ledger) {
		l.logf = logf
	}
}

// NewLedger creates an empty ledger.
func NewLedger(opts ...Option) *Ledger {
	l := &Ledger{
		logf: func(string, ...any) {},
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Register records a resource for teardown. The newest registration is
// cleaned up first.
func (l *Ledger) Register(resource Resource) {
	l.entries = append([]*entry{{resource: resource}}, l.entries...)
}

// Len reports the number of registered resources.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Run tears down every registered resource, newest first. Each entry is
// torn down at most once: a repeat call skips entries already processed,
// so only resources registered since the previous run are attempted.
// Failures are isolated per entry: one resource failing to delete never
// prevents the remaining entries from being attempted, and all surfaced
// failures are joined into the returned error. Not-found and forbidden
// responses are never failures, the resource being gone is the goal and
// shared resources may outlive the caller's rights.
func (l *Ledger) Run(ctx context.Context) error {
	var errs []error

	for _, e := range l.entries {
		if e.done {
			continue
		}

		e.done = true

		if err := l.teardown(ctx, e.resource); err != nil {
			if l.suppressAll {
				l.logf("cleanup: suppressed %s %s: %v", e.resource.Kind(), e.resource.ID(), err)
				continue
			}

			errs = append(errs, fmt.Errorf("%s %s: %w", e.resource.Kind(), e.resource.ID(), err))
		}
	}

	return errors.Join(errs...)
}

func (l *Ledger) teardown(ctx context.Context, resource Resource) error {
	l.logf("cleanup: deleting %s %s", resource.Kind(), resource.ID())

	if err := resource.Delete(ctx); err != nil {
		if suppressible(err) {
			return nil
		}

		return fmt.Errorf("delete: %w", err)
	}

	if err := resource.WaitForDeletion(ctx); err != nil {
		if suppressible(err) {
			return nil
		}

		return fmt.Errorf("wait for deletion: %w", err)
	}

	return nil
}

// suppressible reports whether an error means the resource is already
// gone or was never ours to remove.
func suppressible(err error) bool {
	return client.IsNotFound(err) || client.IsForbidden(err)
}
