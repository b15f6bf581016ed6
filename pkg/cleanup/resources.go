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

package cleanup

import (
	"context"
	"net/url"

	"github.com/sapcc/manila-tempest-plugin/pkg/client"
)

// ShareResource tears down a share. ShareGroupID must be set for group
// members, the API refuses to delete them without it. Force deletes the
// share regardless of state and needs admin rights.
type ShareResource struct {
	Client       *client.Client
	ShareID      string
	ShareGroupID string
	Force        bool
}

func (r *ShareResource) Kind() string { return "share" }

func (r *ShareResource) ID() string { return r.ShareID }

func (r *ShareResource) Delete(ctx context.Context) error {
	if r.Force {
		return r.Client.ForceDeleteShare(ctx, r.ShareID)
	}

	var params url.Values

	if r.ShareGroupID != "" {
		params = url.Values{}
		params.Set("share_group_id", r.ShareGroupID)
	}

	return r.Client.DeleteShare(ctx, r.ShareID, params)
}

func (r *ShareResource) WaitForDeletion(ctx context.Context) error {
	return r.Client.WaitForShareDeletion(ctx, r.ShareID)
}

// SnapshotResource tears down a share snapshot.
type SnapshotResource struct {
	Client     *client.Client
	SnapshotID string
}

func (r *SnapshotResource) Kind() string { return "snapshot" }

func (r *SnapshotResource) ID() string { return r.SnapshotID }

func (r *SnapshotResource) Delete(ctx context.Context) error {
	return r.Client.DeleteSnapshot(ctx, r.SnapshotID)
}

func (r *SnapshotResource) WaitForDeletion(ctx context.Context) error {
	return r.Client.WaitForSnapshotDeletion(ctx, r.SnapshotID)
}

// ReplicaResource tears down a share replica.
type ReplicaResource struct {
	Client    *client.Client
	ReplicaID string
}

func (r *ReplicaResource) Kind() string { return "share replica" }

func (r *ReplicaResource) ID() string { return r.ReplicaID }

func (r *ReplicaResource) Delete(ctx context.Context) error {
	return r.Client.DeleteShareReplica(ctx, r.ReplicaID)
}

func (r *ReplicaResource) WaitForDeletion(ctx context.Context) error {
	return r.Client.WaitForShareReplicaDeletion(ctx, r.ReplicaID)
}

// AccessRuleResource tears down a share access rule.
type AccessRuleResource struct {
	Client  *client.Client
	ShareID string
	RuleID  string
}

func (r *AccessRuleResource) Kind() string { return "access rule" }

func (r *AccessRuleResource) ID() string { return r.RuleID }

func (r *AccessRuleResource) Delete(ctx context.Context) error {
	return r.Client.DeleteAccessRule(ctx, r.ShareID, r.RuleID)
}

func (r *AccessRuleResource) WaitForDeletion(ctx context.Context) error {
	return r.Client.WaitForAccessRuleDeletion(ctx, r.ShareID, r.RuleID)
}

// ShareGroupResource tears down a share group.
type ShareGroupResource struct {
	Client  *client.Client
	GroupID string
}

func (r *ShareGroupResource) Kind() string { return "share group" }

func (r *ShareGroupResource) ID() string { return r.GroupID }

func (r *ShareGroupResource) Delete(ctx context.Context) error {
	return r.Client.DeleteShareGroup(ctx, r.GroupID)
}

func (r *ShareGroupResource) WaitForDeletion(ctx context.Context) error {
	return r.Client.WaitForShareGroupDeletion(ctx, r.GroupID)
}

// ShareGroupSnapshotResource tears down a share group snapshot.
type ShareGroupSnapshotResource struct {
	Client       *client.Client
	SGSnapshotID string
}

func (r *ShareGroupSnapshotResource) Kind() string { return "share group snapshot" }

func (r *ShareGroupSnapshotResource) ID() string { return r.SGSnapshotID }

func (r *ShareGroupSnapshotResource) Delete(ctx context.Context) error {
	return r.Client.DeleteShareGroupSnapshot(ctx, r.SGSnapshotID)
}

func (r *ShareGroupSnapshotResource) WaitForDeletion(ctx context.Context) error {
	return r.Client.WaitForShareGroupSnapshotDeletion(ctx, r.SGSnapshotID)
}

// ShareNetworkResource tears down a share network. Share networks have
// no build status so deletion is synchronous.
type ShareNetworkResource struct {
	Client    *client.Client
	NetworkID string
}

func (r *ShareNetworkResource) Kind() string { return "share network" }

func (r *ShareNetworkResource) ID() string { return r.NetworkID }

func (r *ShareNetworkResource) Delete(ctx context.Context) error {
	return r.Client.DeleteShareNetwork(ctx, r.NetworkID)
}

func (r *ShareNetworkResource) WaitForDeletion(ctx context.Context) error {
	return nil
}

// SecurityServiceResource tears down a security service.
type SecurityServiceResource struct {
	Client    *client.Client
	ServiceID string
}

func (r *SecurityServiceResource) Kind() string { return "security service" }

func (r *SecurityServiceResource) ID() string { return r.ServiceID }

func (r *SecurityServiceResource) Delete(ctx context.Context) error {
	return r.Client.DeleteSecurityService(ctx, r.ServiceID)
}

func (r *SecurityServiceResource) WaitForDeletion(ctx context.Context) error {
	return nil
}

// ShareTypeResource tears down a share type.
type ShareTypeResource struct {
	Client *client.Client
	TypeID string
}

func (r *ShareTypeResource) Kind() string { return "share type" }

func (r *ShareTypeResource) ID() string { return r.TypeID }

func (r *ShareTypeResource) Delete(ctx context.Context) error {
	return r.Client.DeleteShareType(ctx, r.TypeID)
}

func (r *ShareTypeResource) WaitForDeletion(ctx context.Context) error {
	return nil
}

// ShareGroupTypeResource tears down a share group type.
type ShareGroupTypeResource struct {
	Client      *client.Client
	GroupTypeID string
}

func (r *ShareGroupTypeResource) Kind() string { return "share group type" }

func (r *ShareGroupTypeResource) ID() string { return r.GroupTypeID }

func (r *ShareGroupTypeResource) Delete(ctx context.Context) error {
	return r.Client.DeleteShareGroupType(ctx, r.GroupTypeID)
}

func (r *ShareGroupTypeResource) WaitForDeletion(ctx context.Context) error {
	return nil
}

// ShareServerResource tears down a share server, admin only.
type ShareServerResource struct {
	Client   *client.Client
	ServerID string
}

func (r *ShareServerResource) Kind() string { return "share server" }

func (r *ShareServerResource) ID() string { return r.ServerID }

func (r *ShareServerResource) Delete(ctx context.Context) error {
	return r.Client.DeleteShareServer(ctx, r.ServerID)
}

func (r *ShareServerResource) WaitForDeletion(ctx context.Context) error {
	return r.Client.WaitForShareServerDeletion(ctx, r.ServerID)
}
