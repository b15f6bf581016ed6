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

package simulator

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func (s *Simulator) replicaRoutes(r chi.Router) {
	r.Route("/share-replicas", func(r chi.Router) {
		r.Post("/", s.createReplica)
		r.Get("/", s.listReplicas)
		r.Get("/detail", s.listReplicas)

		r.Route("/{replicaID}", func(r chi.Router) {
			r.Get("/", s.getReplica)
			r.Delete("/", s.deleteReplica)
			r.Post("/action", s.replicaAction)
			r.Get("/export-locations", s.listReplicaExportLocations)
		})
	})
}

func (s *Simulator) createReplica(w http.ResponseWriter, r *http.Request) {
	inner, err := innerObject(r, "share_replica")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "%v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	shareID, _ := inner["share_id"].(string)

	if _, ok := s.store("share")[shareID]; !ok {
		s.notFound(w, "share", shareID)
		return
	}

	attrs := map[string]any{
		"id":            s.nextID("replica"),
		"share_id":      shareID,
		"status":        "creating",
		"replica_state": nil,
		"created_at":    time.Now().UTC().Format(time.RFC3339),
	}

	for k, v := range inner {
		attrs[k] = v
	}

	s.store("replica")[attrs["id"].(string)] = &resource{attrs: attrs}

	s.writeJSON(w, http.StatusAccepted, map[string]any{"share_replica": attrs})
}

// settleReplica drives both the lifecycle status and the replication
// state machine: the first replica of a share settles active, later ones
// in_sync, and a promotion flips the active role.
func (s *Simulator) settleReplica(id string, replica *resource) bool {
	if !s.settle(s.store("replica"), id, replica) {
		return false
	}

	if replica.polls <= s.settleAfter {
		return true
	}

	shareID, _ := replica.attrs["share_id"].(string)

	switch replica.attrs["replica_state"] {
	case nil, "":
		if s.activeReplica(shareID, id) == nil {
			replica.attrs["replica_state"] = "active"
		} else {
			replica.attrs["replica_state"] = "in_sync"
		}

	case "replication_change":
		if active := s.activeReplica(shareID, id); active != nil {
			active.attrs["replica_state"] = "in_sync"
		}

		replica.attrs["replica_state"] = "active"

	case "out_of_sync":
		replica.attrs["replica_state"] = "in_sync"
	}

	return true
}

// activeReplica finds the active replica of a share, excluding one ID.
func (s *Simulator) activeReplica(shareID, exclude string) *resource {
	for id, replica := range s.store("replica") {
		if id == exclude || replica.attrs["share_id"] != shareID {
			continue
		}

		if replica.attrs["replica_state"] == "active" {
			return replica
		}
	}

	return nil
}

func (s *Simulator) listReplicas(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	replicas := []map[string]any{}

	for id, replica := range s.store("replica") {
		if !s.settleReplica(id, replica) {
			continue
		}

		if matchesQuery(replica.attrs, r.URL.Query()) {
			replicas = append(replicas, copyAttrs(replica.attrs))
		}
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"share_replicas": replicas})
}

func (s *Simulator) getReplica(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "replicaID")

	s.mu.Lock()
	defer s.mu.Unlock()

	replica, ok := s.store("replica")[id]
	if !ok || !s.settleReplica(id, replica) {
		s.notFound(w, "share replica", id)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"share_replica": copyAttrs(replica.attrs)})
}

func (s *Simulator) deleteReplica(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "replicaID")

	s.mu.Lock()
	defer s.mu.Unlock()

	replica, ok := s.store("replica")[id]
	if !ok {
		s.notFound(w, "share replica", id)
		return
	}

	replica.deleting = true
	replica.attrs["status"] = "deleting"

	w.WriteHeader(http.StatusAccepted)
}

func (s *Simulator) replicaAction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "replicaID")

	name, args, err := action(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "%v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	replica, ok := s.store("replica")[id]
	if !ok {
		s.notFound(w, "share replica", id)
		return
	}

	switch name {
	case "promote":
		if replica.attrs["replica_state"] == "active" {
			s.errorResponse(w, http.StatusBadRequest, "replica %s is already active", id)
			return
		}

		replica.attrs["replica_state"] = "replication_change"
		replica.polls = 0

		s.writeJSON(w, http.StatusAccepted, map[string]any{"share_replica": copyAttrs(replica.attrs)})

	case "resync":
		replica.polls = 0
		w.WriteHeader(http.StatusAccepted)

	case "reset_status":
		replica.attrs["status"] = stringArg(args, "status")
		w.WriteHeader(http.StatusAccepted)

	case "reset_replica_state":
		replica.attrs["replica_state"] = stringArg(args, "replica_state")
		w.WriteHeader(http.StatusAccepted)

	case "force_delete":
		replica.deleting = true
		replica.attrs["status"] = "deleting"
		w.WriteHeader(http.StatusAccepted)

	default:
		s.errorResponse(w, http.StatusBadRequest, "unknown action %q", name)
	}
}

func (s *Simulator) listReplicaExportLocations(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "replicaID")

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.store("replica")[id]; !ok {
		s.notFound(w, "share replica", id)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"export_locations": []map[string]any{
			{
				"id":   id + "-el-0",
				"path": "10.0.1.10:/replicas/" + id,
			},
		},
	})
}
