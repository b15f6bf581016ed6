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

package client

import (
	"fmt"
	"net/url"
)

// Endpoints contains all API endpoint patterns relative to the versioned
// base URL. Version-gated prefixes (quota sets, services, availability
// zones) are built in their resource files instead.
type Endpoints struct{}

// NewEndpoints creates a new Endpoints instance.
func NewEndpoints() *Endpoints {
	return &Endpoints{}
}

// Share endpoints.
func (e *Endpoints) Shares() string {
	return "/shares"
}

func (e *Endpoints) SharesDetail() string {
	return "/shares/detail"
}

func (e *Endpoints) SharesManage() string {
	return "/shares/manage"
}

func (e *Endpoints) Share(shareID string) string {
	return fmt.Sprintf("/shares/%s", url.PathEscape(shareID))
}

func (e *Endpoints) ShareAction(shareID string) string {
	return fmt.Sprintf("/shares/%s/action", url.PathEscape(shareID))
}

func (e *Endpoints) ShareExportLocations(shareID string) string {
	return fmt.Sprintf("/shares/%s/export_locations", url.PathEscape(shareID))
}

func (e *Endpoints) ShareExportLocation(shareID, exportLocationID string) string {
	return fmt.Sprintf("/shares/%s/export_locations/%s",
		url.PathEscape(shareID), url.PathEscape(exportLocationID))
}

func (e *Endpoints) ShareMetadata(shareID string) string {
	return fmt.Sprintf("/shares/%s/metadata", url.PathEscape(shareID))
}

func (e *Endpoints) ShareMetadataKey(shareID, key string) string {
	return fmt.Sprintf("/shares/%s/metadata/%s",
		url.PathEscape(shareID), url.PathEscape(key))
}

// Snapshot endpoints.
func (e *Endpoints) Snapshots() string {
	return "/snapshots"
}

func (e *Endpoints) SnapshotsDetail() string {
	return "/snapshots/detail"
}

func (e *Endpoints) SnapshotsManage() string {
	return "/snapshots/manage"
}

func (e *Endpoints) Snapshot(snapshotID string) string {
	return fmt.Sprintf("/snapshots/%s", url.PathEscape(snapshotID))
}

func (e *Endpoints) SnapshotAction(snapshotID string) string {
	return fmt.Sprintf("/snapshots/%s/action", url.PathEscape(snapshotID))
}

func (e *Endpoints) SnapshotExportLocations(snapshotID string) string {
	return fmt.Sprintf("/snapshots/%s/export-locations", url.PathEscape(snapshotID))
}

func (e *Endpoints) SnapshotExportLocation(snapshotID, exportLocationID string) string {
	return fmt.Sprintf("/snapshots/%s/export-locations/%s",
		url.PathEscape(snapshotID), url.PathEscape(exportLocationID))
}

// Access rule endpoints (the read API introduced at microversion 2.45).
func (e *Endpoints) ShareAccessRules() string {
	return "/share-access-rules"
}

func (e *Endpoints) ShareAccessRule(accessID string) string {
	return fmt.Sprintf("/share-access-rules/%s", url.PathEscape(accessID))
}

func (e *Endpoints) ShareAccessRuleMetadata(accessID string) string {
	return fmt.Sprintf("/share-access-rules/%s/metadata", url.PathEscape(accessID))
}

func (e *Endpoints) ShareAccessRuleMetadataKey(accessID, key string) string {
	return fmt.Sprintf("/share-access-rules/%s/metadata/%s",
		url.PathEscape(accessID), url.PathEscape(key))
}

// Share replica endpoints.
func (e *Endpoints) ShareReplicas() string {
	return "/share-replicas"
}

func (e *Endpoints) ShareReplicasDetail() string {
	return "/share-replicas/detail"
}

func (e *Endpoints) ShareReplica(replicaID string) string {
	return fmt.Sprintf("/share-replicas/%s", url.PathEscape(replicaID))
}

func (e *Endpoints) ShareReplicaAction(replicaID string) string {
	return fmt.Sprintf("/share-replicas/%s/action", url.PathEscape(replicaID))
}

func (e *Endpoints) ShareReplicaExportLocations(replicaID string) string {
	return fmt.Sprintf("/share-replicas/%s/export-locations", url.PathEscape(replicaID))
}

func (e *Endpoints) ShareReplicaExportLocation(replicaID, exportLocationID string) string {
	return fmt.Sprintf("/share-replicas/%s/export-locations/%s",
		url.PathEscape(replicaID), url.PathEscape(exportLocationID))
}

// Share server endpoints.
func (e *Endpoints) ShareServers() string {
	return "/share-servers"
}

func (e *Endpoints) ShareServersManage() string {
	return "/share-servers/manage"
}

func (e *Endpoints) ShareServer(serverID string) string {
	return fmt.Sprintf("/share-servers/%s", url.PathEscape(serverID))
}

func (e *Endpoints) ShareServerAction(serverID string) string {
	return fmt.Sprintf("/share-servers/%s/action", url.PathEscape(serverID))
}

// Share group endpoints.
func (e *Endpoints) ShareGroups() string {
	return "/share-groups"
}

func (e *Endpoints) ShareGroupsDetail() string {
	return "/share-groups/detail"
}

func (e *Endpoints) ShareGroup(groupID string) string {
	return fmt.Sprintf("/share-groups/%s", url.PathEscape(groupID))
}

func (e *Endpoints) ShareGroupAction(groupID string) string {
	return fmt.Sprintf("/share-groups/%s/action", url.PathEscape(groupID))
}

// Share group snapshot endpoints.
func (e *Endpoints) ShareGroupSnapshots() string {
	return "/share-group-snapshots"
}

func (e *Endpoints) ShareGroupSnapshotsDetail() string {
	return "/share-group-snapshots/detail"
}

func (e *Endpoints) ShareGroupSnapshot(sgSnapshotID string) string {
	return fmt.Sprintf("/share-group-snapshots/%s", url.PathEscape(sgSnapshotID))
}

func (e *Endpoints) ShareGroupSnapshotAction(sgSnapshotID string) string {
	return fmt.Sprintf("/share-group-snapshots/%s/action", url.PathEscape(sgSnapshotID))
}

// Share group type endpoints.
func (e *Endpoints) ShareGroupTypes() string {
	return "/share-group-types"
}

func (e *Endpoints) ShareGroupTypesDefault() string {
	return "/share-group-types/default"
}

func (e *Endpoints) ShareGroupType(groupTypeID string) string {
	return fmt.Sprintf("/share-group-types/%s", url.PathEscape(groupTypeID))
}

func (e *Endpoints) ShareGroupTypeAction(groupTypeID string) string {
	return fmt.Sprintf("/share-group-types/%s/action", url.PathEscape(groupTypeID))
}

func (e *Endpoints) ShareGroupTypeSpecs(groupTypeID string) string {
	return fmt.Sprintf("/share-group-types/%s/group-specs", url.PathEscape(groupTypeID))
}

func (e *Endpoints) ShareGroupTypeSpec(groupTypeID, key string) string {
	return fmt.Sprintf("/share-group-types/%s/group-specs/%s",
		url.PathEscape(groupTypeID), url.PathEscape(key))
}

func (e *Endpoints) ShareGroupTypeAccess(groupTypeID string) string {
	return fmt.Sprintf("/share-group-types/%s/access", url.PathEscape(groupTypeID))
}

// Share type endpoints.
func (e *Endpoints) ShareTypes() string {
	return "/types"
}

func (e *Endpoints) ShareTypesDefault() string {
	return "/types/default"
}

func (e *Endpoints) ShareType(typeID string) string {
	return fmt.Sprintf("/types/%s", url.PathEscape(typeID))
}

func (e *Endpoints) ShareTypeAction(typeID string) string {
	return fmt.Sprintf("/types/%s/action", url.PathEscape(typeID))
}

func (e *Endpoints) ShareTypeExtraSpecs(typeID string) string {
	return fmt.Sprintf("/types/%s/extra_specs", url.PathEscape(typeID))
}

func (e *Endpoints) ShareTypeExtraSpec(typeID, key string) string {
	return fmt.Sprintf("/types/%s/extra_specs/%s",
		url.PathEscape(typeID), url.PathEscape(key))
}

func (e *Endpoints) ShareTypeAccess(typeID string) string {
	return fmt.Sprintf("/types/%s/share_type_access", url.PathEscape(typeID))
}

// Share network endpoints.
func (e *Endpoints) ShareNetworks() string {
	return "/share-networks"
}

func (e *Endpoints) ShareNetworksDetail() string {
	return "/share-networks/detail"
}

func (e *Endpoints) ShareNetwork(networkID string) string {
	return fmt.Sprintf("/share-networks/%s", url.PathEscape(networkID))
}

func (e *Endpoints) ShareNetworkAction(networkID string) string {
	return fmt.Sprintf("/share-networks/%s/action", url.PathEscape(networkID))
}

// Security service endpoints.
func (e *Endpoints) SecurityServices() string {
	return "/security-services"
}

func (e *Endpoints) SecurityServicesDetail() string {
	return "/security-services/detail"
}

func (e *Endpoints) SecurityService(serviceID string) string {
	return fmt.Sprintf("/security-services/%s", url.PathEscape(serviceID))
}

// User message endpoints.
func (e *Endpoints) Messages() string {
	return "/messages"
}

func (e *Endpoints) Message(messageID string) string {
	return fmt.Sprintf("/messages/%s", url.PathEscape(messageID))
}

// Scheduler pool endpoints.
func (e *Endpoints) Pools() string {
	return "/scheduler-stats/pools"
}

func (e *Endpoints) PoolsDetail() string {
	return "/scheduler-stats/pools/detail"
}
