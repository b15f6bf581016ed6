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

// Package wait implements the poll-until-status primitive shared by every
// asynchronous workflow in the suite. A wait has exactly three terminal
// outcomes: the resource reached a target status, it entered an explicit
// error status, or the time budget ran out.
package wait

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Config bounds a single wait operation.
type Config struct {
	// Interval is the pause between successive polls.
	Interval time.Duration

	// Timeout is the maximum total wall-clock wait. Elapsed time is
	// sampled at whole-second granularity, matching the service's own
	// build-timeout accounting.
	Timeout time.Duration
}

// StatusFunc fetches the current observed status of a resource.
type StatusFunc func(ctx context.Context) (string, error)

// GoneFunc reports whether a resource has finished deleting.
type GoneFunc func(ctx context.Context) (bool, error)

// BuildError indicates the resource transitioned into an explicit error
// status while a different status was being waited for.
type BuildError struct {
	Resource string
	Status   string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("%s entered status %q while waiting", e.Resource, e.Status)
}

// TimeoutError indicates the resource never reached the target status
// within the configured budget.
type TimeoutError struct {
	Resource   string
	Target     string
	LastStatus string
	Elapsed    time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s failed to reach status %q within %s, last observed %q",
		e.Resource, e.Target, e.Elapsed.Round(time.Second), e.LastStatus)
}

// ForStatus blocks until fetch reports one of the target statuses and
// returns the status that matched.
//
// The first fetch happens before any sleep, so an already-settled resource
// returns without waiting. After that one full interval always passes
// before the next poll, and the timeout is only ever checked after a sleep;
// two polls landing in the same wall-clock second therefore cannot produce
// a zero-duration timeout. An observed status containing "error" fails fast
// with a BuildError unless it is itself a target. Fetch errors propagate
// unchanged, they are neither an error-state nor a timeout.
func ForStatus(ctx context.Context, cfg Config, resource string, fetch StatusFunc, targets ...string) (string, error) {
	status, err := fetch(ctx)
	if err != nil {
		return "", err
	}

	if slices.Contains(targets, status) {
		return status, nil
	}

	start := time.Now()

	for {
		if err := sleep(ctx, cfg.Interval); err != nil {
			return status, err
		}

		status, err = fetch(ctx)
		if err != nil {
			return "", err
		}

		if slices.Contains(targets, status) {
			return status, nil
		}

		if strings.Contains(strings.ToLower(status), "error") {
			return status, &BuildError{Resource: resource, Status: status}
		}

		if elapsed := time.Since(start); seconds(elapsed) >= seconds(cfg.Timeout) {
			return status, &TimeoutError{
				Resource:   resource,
				Target:     strings.Join(targets, "|"),
				LastStatus: status,
				Elapsed:    elapsed,
			}
		}
	}
}

// ForDeletion blocks until gone reports true. Deletion has no error-state
// fast path, the only failure modes are a fetch error and the timeout.
func ForDeletion(ctx context.Context, cfg Config, resource string, gone GoneFunc) error {
	deleted, err := gone(ctx)
	if err != nil {
		return err
	}

	if deleted {
		return nil
	}

	start := time.Now()

	for {
		if err := sleep(ctx, cfg.Interval); err != nil {
			return err
		}

		deleted, err = gone(ctx)
		if err != nil {
			return err
		}

		if deleted {
			return nil
		}

		if elapsed := time.Since(start); seconds(elapsed) >= seconds(cfg.Timeout) {
			return &TimeoutError{
				Resource:   resource,
				Target:     "deleted",
				LastStatus: "present",
				Elapsed:    elapsed,
			}
		}
	}
}

func seconds(d time.Duration) int64 {
	return int64(d / time.Second)
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
