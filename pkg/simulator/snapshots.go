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

func (s *Simulator) snapshotRoutes(r chi.Router) {
	r.Route("/snapshots", func(r chi.Router) {
		r.Post("/", s.createSnapshot)
		r.Get("/", s.listSnapshots)
		r.Get("/detail", s.listSnapshots)
		r.Post("/manage", s.manageSnapshot)

		r.Route("/{snapshotID}", func(r chi.Router) {
			r.Get("/", s.getSnapshot)
			r.Delete("/", s.deleteSnapshot)
			r.Post("/action", s.snapshotAction)
			r.Get("/access-list", s.snapshotAccessList)
			r.Get("/export-locations", s.listSnapshotExportLocations)
		})
	})
}

func (s *Simulator) createSnapshot(w http.ResponseWriter, r *http.Request) {
	inner, err := innerObject(r, "snapshot")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "%v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	shareID, _ := inner["share_id"].(string)

	share, ok := s.store("share")[shareID]
	if !ok {
		s.notFound(w, "share", shareID)
		return
	}

	if status, _ := share.attrs["status"].(string); status != "available" {
		if force, _ := inner["force"].(bool); !force {
			s.errorResponse(w, http.StatusConflict, "share %s is not available", shareID)
			return
		}
	}

	attrs := map[string]any{
		"id":          s.nextID("snapshot"),
		"share_id":    shareID,
		"name":        nil,
		"description": nil,
		"status":      "creating",
		"size":        share.attrs["size"],
		"share_proto": share.attrs["share_proto"],
		"created_at":  time.Now().UTC().Format(time.RFC3339),
	}

	for k, v := range inner {
		attrs[k] = v
	}

	s.store("snapshot")[attrs["id"].(string)] = &resource{attrs: attrs}

	s.writeJSON(w, http.StatusAccepted, map[string]any{"snapshot": attrs})
}

func (s *Simulator) manageSnapshot(w http.ResponseWriter, r *http.Request) {
	inner, err := innerObject(r, "snapshot")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "%v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	attrs := map[string]any{
		"id":         s.nextID("snapshot"),
		"status":     "manage_starting",
		"created_at": time.Now().UTC().Format(time.RFC3339),
	}

	for k, v := range inner {
		attrs[k] = v
	}

	s.store("snapshot")[attrs["id"].(string)] = &resource{attrs: attrs}

	s.writeJSON(w, http.StatusAccepted, map[string]any{"snapshot": attrs})
}

func (s *Simulator) listSnapshots(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshots := []map[string]any{}

	for id, snapshot := range s.store("snapshot") {
		if !s.settle(s.store("snapshot"), id, snapshot) {
			continue
		}

		if matchesQuery(snapshot.attrs, r.URL.Query()) {
			snapshots = append(snapshots, copyAttrs(snapshot.attrs))
		}
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"snapshots": snapshots})
}

func (s *Simulator) getSnapshot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "snapshotID")

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, ok := s.store("snapshot")[id]
	if !ok || !s.settle(s.store("snapshot"), id, snapshot) {
		s.notFound(w, "snapshot", id)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"snapshot": copyAttrs(snapshot.attrs)})
}

func (s *Simulator) deleteSnapshot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "snapshotID")

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, ok := s.store("snapshot")[id]
	if !ok {
		s.notFound(w, "snapshot", id)
		return
	}

	snapshot.deleting = true
	snapshot.attrs["status"] = "deleting"

	w.WriteHeader(http.StatusAccepted)
}

func (s *Simulator) snapshotAction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "snapshotID")

	name, args, err := action(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "%v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, ok := s.store("snapshot")[id]
	if !ok {
		s.notFound(w, "snapshot", id)
		return
	}

	switch name {
	case "reset_status":
		snapshot.attrs["status"] = stringArg(args, "status")
		w.WriteHeader(http.StatusAccepted)

	case "force_delete":
		snapshot.deleting = true
		snapshot.attrs["status"] = "deleting"
		w.WriteHeader(http.StatusAccepted)

	case "unmanage":
		delete(s.store("snapshot"), id)
		w.WriteHeader(http.StatusAccepted)

	case "allow_access":
		attrs := map[string]any{
			"id":          s.nextID("snapshot-access"),
			"snapshot_id": id,
			"access_type": stringArg(args, "access_type"),
			"access_to":   stringArg(args, "access_to"),
			"state":       "queued_to_apply",
		}

		s.store("snapshot-access")[attrs["id"].(string)] = &resource{attrs: attrs}

		s.writeJSON(w, http.StatusAccepted, map[string]any{"snapshot_access": attrs})

	case "deny_access":
		ruleID := stringArg(args, "access_id")

		if _, ok := s.store("snapshot-access")[ruleID]; !ok {
			s.notFound(w, "snapshot access rule", ruleID)
			return
		}

		delete(s.store("snapshot-access"), ruleID)

		w.WriteHeader(http.StatusAccepted)

	default:
		s.errorResponse(w, http.StatusBadRequest, "unknown action %q", name)
	}
}

func (s *Simulator) snapshotAccessList(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "snapshotID")

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.store("snapshot")[id]; !ok {
		s.notFound(w, "snapshot", id)
		return
	}

	rules := []map[string]any{}

	for ruleID, rule := range s.store("snapshot-access") {
		if rule.attrs["snapshot_id"] != id {
			continue
		}

		s.settleAccess(ruleID, rule)

		rules = append(rules, copyAttrs(rule.attrs))
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"snapshot_access_list": rules})
}

func (s *Simulator) listSnapshotExportLocations(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "snapshotID")

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.store("snapshot")[id]; !ok {
		s.notFound(w, "snapshot", id)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"share_snapshot_export_locations": []map[string]any{
			{
				"id":   id + "-el-0",
				"path": "10.0.0.10:/snapshots/" + id,
			},
		},
	})
}
