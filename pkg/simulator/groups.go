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

func (s *Simulator) groupRoutes(r chi.Router) {
	r.Route("/share-groups", func(r chi.Router) {
		r.Post("/", s.createShareGroup)
		r.Get("/", s.listShareGroups)
		r.Get("/detail", s.listShareGroups)

		r.Route("/{groupID}", func(r chi.Router) {
			r.Get("/", s.getShareGroup)
			r.Put("/", s.updateShareGroup)
			r.Delete("/", s.deleteShareGroup)
			r.Post("/action", s.shareGroupAction)
		})
	})

	r.Route("/share-group-snapshots", func(r chi.Router) {
		r.Post("/", s.createShareGroupSnapshot)
		r.Get("/", s.listShareGroupSnapshots)
		r.Get("/detail", s.listShareGroupSnapshots)

		r.Route("/{sgSnapshotID}", func(r chi.Router) {
			r.Get("/", s.getShareGroupSnapshot)
			r.Put("/", s.updateShareGroupSnapshot)
			r.Delete("/", s.deleteShareGroupSnapshot)
			r.Post("/action", s.shareGroupSnapshotAction)
		})
	})
}

func (s *Simulator) createShareGroup(w http.ResponseWriter, r *http.Request) {
	inner, err := innerObject(r, "share_group")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "%v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	attrs := map[string]any{
		"id":          s.nextID("share-group"),
		"name":        nil,
		"description": nil,
		"status":      "creating",
		"project_id":  "sim-project",
		"created_at":  time.Now().UTC().Format(time.RFC3339),
	}

	for k, v := range inner {
		attrs[k] = v
	}

	s.store("share-group")[attrs["id"].(string)] = &resource{attrs: attrs}

	s.writeJSON(w, http.StatusAccepted, map[string]any{"share_group": attrs})
}

func (s *Simulator) listShareGroups(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	groups := []map[string]any{}

	for id, group := range s.store("share-group") {
		if !s.settle(s.store("share-group"), id, group) {
			continue
		}

		if matchesQuery(group.attrs, r.URL.Query()) {
			groups = append(groups, copyAttrs(group.attrs))
		}
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"share_groups": groups})
}

func (s *Simulator) getShareGroup(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "groupID")

	s.mu.Lock()
	defer s.mu.Unlock()

	group, ok := s.store("share-group")[id]
	if !ok || !s.settle(s.store("share-group"), id, group) {
		s.notFound(w, "share group", id)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"share_group": copyAttrs(group.attrs)})
}

func (s *Simulator) updateShareGroup(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "groupID")

	inner, err := innerObject(r, "share_group")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "%v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	group, ok := s.store("share-group")[id]
	if !ok {
		s.notFound(w, "share group", id)
		return
	}

	for k, v := range inner {
		group.attrs[k] = v
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"share_group": copyAttrs(group.attrs)})
}

func (s *Simulator) deleteShareGroup(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "groupID")

	s.mu.Lock()
	defer s.mu.Unlock()

	group, ok := s.store("share-group")[id]
	if !ok {
		s.notFound(w, "share group", id)
		return
	}

	// Members must be removed first.
	for _, share := range s.store("share") {
		if share.attrs["share_group_id"] == id {
			s.errorResponse(w, http.StatusConflict, "share group %s still has members", id)
			return
		}
	}

	group.deleting = true
	group.attrs["status"] = "deleting"

	w.WriteHeader(http.StatusAccepted)
}

func (s *Simulator) shareGroupAction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "groupID")

	name, args, err := action(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "%v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	group, ok := s.store("share-group")[id]
	if !ok {
		s.notFound(w, "share group", id)
		return
	}

	switch name {
	case "reset_status":
		group.attrs["status"] = stringArg(args, "status")
		w.WriteHeader(http.StatusAccepted)

	case "force_delete":
		group.deleting = true
		group.attrs["status"] = "deleting"
		w.WriteHeader(http.StatusAccepted)

	default:
		s.errorResponse(w, http.StatusBadRequest, "unknown action %q", name)
	}
}

func (s *Simulator) createShareGroupSnapshot(w http.ResponseWriter, r *http.Request) {
	inner, err := innerObject(r, "share_group_snapshot")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "%v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	groupID, _ := inner["share_group_id"].(string)

	if _, ok := s.store("share-group")[groupID]; !ok {
		s.notFound(w, "share group", groupID)
		return
	}

	attrs := map[string]any{
		"id":         s.nextID("sg-snapshot"),
		"status":     "creating",
		"created_at": time.Now().UTC().Format(time.RFC3339),
	}

	for k, v := range inner {
		attrs[k] = v
	}

	s.store("sg-snapshot")[attrs["id"].(string)] = &resource{attrs: attrs}

	s.writeJSON(w, http.StatusAccepted, map[string]any{"share_group_snapshot": attrs})
}

func (s *Simulator) listShareGroupSnapshots(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshots := []map[string]any{}

	for id, snapshot := range s.store("sg-snapshot") {
		if !s.settle(s.store("sg-snapshot"), id, snapshot) {
			continue
		}

		if matchesQuery(snapshot.attrs, r.URL.Query()) {
			snapshots = append(snapshots, copyAttrs(snapshot.attrs))
		}
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"share_group_snapshots": snapshots})
}

func (s *Simulator) getShareGroupSnapshot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sgSnapshotID")

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, ok := s.store("sg-snapshot")[id]
	if !ok || !s.settle(s.store("sg-snapshot"), id, snapshot) {
		s.notFound(w, "share group snapshot", id)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"share_group_snapshot": copyAttrs(snapshot.attrs)})
}

func (s *Simulator) updateShareGroupSnapshot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sgSnapshotID")

	inner, err := innerObject(r, "share_group_snapshot")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "%v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, ok := s.store("sg-snapshot")[id]
	if !ok {
		s.notFound(w, "share group snapshot", id)
		return
	}

	for k, v := range inner {
		snapshot.attrs[k] = v
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"share_group_snapshot": copyAttrs(snapshot.attrs)})
}

func (s *Simulator) deleteShareGroupSnapshot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sgSnapshotID")

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, ok := s.store("sg-snapshot")[id]
	if !ok {
		s.notFound(w, "share group snapshot", id)
		return
	}

	snapshot.deleting = true
	snapshot.attrs["status"] = "deleting"

	w.WriteHeader(http.StatusAccepted)
}

func (s *Simulator) shareGroupSnapshotAction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sgSnapshotID")

	name, args, err := action(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "%v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, ok := s.store("sg-snapshot")[id]
	if !ok {
		s.notFound(w, "share group snapshot", id)
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

	default:
		s.errorResponse(w, http.StatusBadRequest, "unknown action %q", name)
	}
}
