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

package cleanup_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sapcc/manila-tempest-plugin/pkg/client"
	"github.com/sapcc/manila-tempest-plugin/pkg/cleanup"
	"github.com/sapcc/manila-tempest-plugin/pkg/cleanup/mock"
)

func newResource(c *gomock.Controller, kind, id string) *mock.MockResource {
	resource := mock.NewMockResource(c)
	resource.EXPECT().Kind().Return(kind).AnyTimes()
	resource.EXPECT().ID().Return(id).AnyTimes()

	return resource
}

func TestRunReverseOrder(t *testing.T) {
	t.Parallel()

	c := gomock.NewController(t)

	a := newResource(c, "share", "a")
	b := newResource(c, "share", "b")
	d := newResource(c, "share", "d")

	ledger := cleanup.NewLedger()
	ledger.Register(a)
	ledger.Register(b)
	ledger.Register(d)

	gomock.InOrder(
		d.EXPECT().Delete(gomock.Any()).Return(nil),
		d.EXPECT().WaitForDeletion(gomock.Any()).Return(nil),
		b.EXPECT().Delete(gomock.Any()).Return(nil),
		b.EXPECT().WaitForDeletion(gomock.Any()).Return(nil),
		a.EXPECT().Delete(gomock.Any()).Return(nil),
		a.EXPECT().WaitForDeletion(gomock.Any()).Return(nil),
	)

	require.NoError(t, ledger.Run(context.Background()))
}

func TestRunIdempotent(t *testing.T) {
	t.Parallel()

	c := gomock.NewController(t)

	a := newResource(c, "share", "a")
	a.EXPECT().Delete(gomock.Any()).Return(nil).Times(1)
	a.EXPECT().WaitForDeletion(gomock.Any()).Return(nil).Times(1)

	ledger := cleanup.NewLedger()
	ledger.Register(a)

	require.NoError(t, ledger.Run(context.Background()))
	require.NoError(t, ledger.Run(context.Background()))
}

func TestRunTearsDownLateRegistrations(t *testing.T) {
	t.Parallel()

	c := gomock.NewController(t)

	a := newResource(c, "share", "a")
	a.EXPECT().Delete(gomock.Any()).Return(nil).Times(1)
	a.EXPECT().WaitForDeletion(gomock.Any()).Return(nil).Times(1)

	ledger := cleanup.NewLedger()
	ledger.Register(a)

	require.NoError(t, ledger.Run(context.Background()))

	b := newResource(c, "share", "b")
	b.EXPECT().Delete(gomock.Any()).Return(nil).Times(1)
	b.EXPECT().WaitForDeletion(gomock.Any()).Return(nil).Times(1)

	ledger.Register(b)

	require.NoError(t, ledger.Run(context.Background()))
}

func TestRunSuppressesNotFound(t *testing.T) {
	t.Parallel()

	c := gomock.NewController(t)

	notFound := &client.APIError{StatusCode: http.StatusNotFound}

	a := newResource(c, "share", "a")
	a.EXPECT().Delete(gomock.Any()).Return(notFound)

	ledger := cleanup.NewLedger()
	ledger.Register(a)

	require.NoError(t, ledger.Run(context.Background()))
}

func TestRunSuppressesForbidden(t *testing.T) {
	t.Parallel()

	c := gomock.NewController(t)

	forbidden := &client.APIError{StatusCode: http.StatusForbidden}

	a := newResource(c, "share network", "a")
	a.EXPECT().Delete(gomock.Any()).Return(nil)
	a.EXPECT().WaitForDeletion(gomock.Any()).Return(forbidden)

	ledger := cleanup.NewLedger()
	ledger.Register(a)

	require.NoError(t, ledger.Run(context.Background()))
}

func TestRunIsolatesFailures(t *testing.T) {
	t.Parallel()

	c := gomock.NewController(t)

	boom := errors.New("backend exploded")

	a := newResource(c, "share", "a")
	a.EXPECT().Delete(gomock.Any()).Return(nil)
	a.EXPECT().WaitForDeletion(gomock.Any()).Return(nil)

	b := newResource(c, "share", "b")
	b.EXPECT().Delete(gomock.Any()).Return(boom)

	ledger := cleanup.NewLedger()
	ledger.Register(a)
	ledger.Register(b)

	err := ledger.Run(context.Background())
	require.ErrorIs(t, err, boom)
	require.Contains(t, err.Error(), "share b")
}

func TestRunSuppressAll(t *testing.T) {
	t.Parallel()

	c := gomock.NewController(t)

	a := newResource(c, "share", "a")
	a.EXPECT().Delete(gomock.Any()).Return(errors.New("backend exploded"))

	ledger := cleanup.NewLedger(cleanup.WithSuppressAll())
	ledger.Register(a)

	require.NoError(t, ledger.Run(context.Background()))
}
