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
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

func (s *Simulator) shareRoutes(r chi.Router) {
	r.Route("/shares", func(r chi.Router) {
		r.Post("/", s.createShare)
		r.Get("/", s.listShares)
		r.Get("/detail", s.listShares)
		r.Post("/manage", s.manageShare)

		r.Route("/{shareID}", func(r chi.Router) {
			r.Get("/", s.getShare)
			r.Delete("/", s.deleteShare)
			r.Post("/action", s.shareAction)
			r.Get("/export_locations", s.listShareExportLocations)
			r.Get("/export_locations/{exportLocationID}", s.getShareExportLocation)
			r.Get("/metadata", s.getShareMetadata)
			r.Post("/metadata", s.setShareMetadata)
			r.Delete("/metadata/{key}", s.deleteShareMetadata)
		})
	})

	r.Route("/share-access-rules", func(r chi.Router) {
		r.Get("/", s.listAccessRules)
		r.Get("/{accessID}", s.getAccessRule)
		r.Put("/{accessID}/metadata", s.setAccessRuleMetadata)
		r.Delete("/{accessID}/metadata/{key}", s.deleteAccessRuleMetadata)
	})
}

func (s *Simulator) newShare(inner map[string]any, status string) map[string]any {
	attrs := map[string]any{
		"id":          s.nextID("share"),
		"name":        nil,
		"description": nil,
		"status":      status,
		"size":        1,
		"share_proto": "NFS",
		"is_public":   false,
		"metadata":    map[string]any{},
		"project_id":  "sim-project",
		"created_at":  time.Now().UTC().Format(time.RFC3339),
	}

	for k, v := range inner {
		attrs[k] = v
	}

	if proto, ok := attrs["share_proto"].(string); ok {
		attrs["share_proto"] = strings.ToUpper(proto)
	}

	return attrs
}

func (s *Simulator) createShare(w http.ResponseWriter, r *http.Request) {
	inner, err := innerObject(r, "share")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "%v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	attrs := s.newShare(inner, "creating")

	s.store("share")[attrs["id"].(string)] = &resource{attrs: attrs}

	s.writeJSON(w, http.StatusOK, map[string]any{"share": attrs})
}

func (s *Simulator) manageShare(w http.ResponseWriter, r *http.Request) {
	inner, err := innerObject(r, "share")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "%v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	attrs := s.newShare(inner, "manage_starting")

	s.store("share")[attrs["id"].(string)] = &resource{attrs: attrs}

	s.writeJSON(w, http.StatusOK, map[string]any{"share": attrs})
}

func (s *Simulator) listShares(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	shares := []map[string]any{}

	for id, share := range s.store("share") {
		if !s.settle(s.store("share"), id, share) {
			continue
		}

		if matchesQuery(share.attrs, r.URL.Query()) {
			shares = append(shares, copyAttrs(share.attrs))
		}
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"shares": shares})
}

func (s *Simulator) getShare(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "shareID")

	s.mu.Lock()
	defer s.mu.Unlock()

	share, ok := s.store("share")[id]
	if !ok || !s.settle(s.store("share"), id, share) {
		s.notFound(w, "share", id)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"share": copyAttrs(share.attrs)})
}

func (s *Simulator) deleteShare(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "shareID")

	s.mu.Lock()
	defer s.mu.Unlock()

	share, ok := s.store("share")[id]
	if !ok {
		s.notFound(w, "share", id)
		return
	}

	if groupID, ok := share.attrs["share_group_id"].(string); ok && groupID != "" {
		if r.URL.Query().Get("share_group_id") != groupID {
			s.errorResponse(w, http.StatusBadRequest, "share %s is a member of group %s", id, groupID)
			return
		}
	}

	share.deleting = true
	share.attrs["status"] = "deleting"

	w.WriteHeader(http.StatusAccepted)
}

//nolint:cyclop
func (s *Simulator) shareAction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "shareID")

	name, args, err := action(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "%v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	share, ok := s.store("share")[id]
	if !ok {
		s.notFound(w, "share", id)
		return
	}

	switch name {
	case "reset_status":
		share.attrs["status"] = stringArg(args, "status")
		w.WriteHeader(http.StatusAccepted)

	case "force_delete":
		share.deleting = true
		share.attrs["status"] = "deleting"
		w.WriteHeader(http.StatusAccepted)

	case "extend":
		newSize := intArg(args, "new_size")
		if size, ok := intAttr(share.attrs, "size"); ok && newSize <= size {
			s.errorResponse(w, http.StatusBadRequest, "new size %d must exceed current size %d", newSize, size)
			return
		}

		share.attrs["size"] = newSize
		share.attrs["status"] = "extending"
		share.polls = 0
		w.WriteHeader(http.StatusAccepted)

	case "shrink":
		newSize := intArg(args, "new_size")
		if size, ok := intAttr(share.attrs, "size"); ok && newSize >= size {
			s.errorResponse(w, http.StatusBadRequest, "new size %d must be below current size %d", newSize, size)
			return
		}

		share.attrs["size"] = newSize
		share.attrs["status"] = "shrinking"
		share.polls = 0
		w.WriteHeader(http.StatusAccepted)

	case "revert":
		share.attrs["status"] = "reverting"
		share.polls = 0
		w.WriteHeader(http.StatusAccepted)

	case "unmanage":
		delete(s.store("share"), id)
		w.WriteHeader(http.StatusAccepted)

	case "allow_access":
		s.allowAccess(w, id, args)

	case "deny_access":
		s.denyAccess(w, id, args)

	case "access_list":
		s.accessList(w, id)

	default:
		s.errorResponse(w, http.StatusBadRequest, "unknown action %q", name)
	}
}

func (s *Simulator) listShareExportLocations(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "shareID")

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.store("share")[id]; !ok {
		s.notFound(w, "share", id)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"export_locations": s.exportLocations(id),
	})
}

func (s *Simulator) getShareExportLocation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "shareID")
	elID := chi.URLParam(r, "exportLocationID")

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.store("share")[id]; !ok {
		s.notFound(w, "share", id)
		return
	}

	for _, location := range s.exportLocations(id) {
		if location["id"] == elID {
			s.writeJSON(w, http.StatusOK, map[string]any{"export_location": location})
			return
		}
	}

	s.notFound(w, "export location", elID)
}

// exportLocations derives deterministic locations from the share ID.
func (s *Simulator) exportLocations(shareID string) []map[string]any {
	return []map[string]any{
		{
			"id":        shareID + "-el-0",
			"path":      fmt.Sprintf("10.0.0.10:/exports/%s", shareID),
			"preferred": true,
		},
		{
			"id":        shareID + "-el-1",
			"path":      fmt.Sprintf("10.0.0.11:/exports/%s", shareID),
			"preferred": false,
		},
	}
}

func (s *Simulator) getShareMetadata(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "shareID")

	s.mu.Lock()
	defer s.mu.Unlock()

	share, ok := s.store("share")[id]
	if !ok {
		s.notFound(w, "share", id)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"metadata": share.attrs["metadata"]})
}

func (s *Simulator) setShareMetadata(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "shareID")

	inner, err := innerObject(r, "metadata")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "%v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	share, ok := s.store("share")[id]
	if !ok {
		s.notFound(w, "share", id)
		return
	}

	metadata, _ := share.attrs["metadata"].(map[string]any)
	if metadata == nil {
		metadata = map[string]any{}
	}

	for k, v := range inner {
		metadata[k] = v
	}

	share.attrs["metadata"] = metadata

	s.writeJSON(w, http.StatusOK, map[string]any{"metadata": metadata})
}

func (s *Simulator) deleteShareMetadata(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "shareID")
	key := chi.URLParam(r, "key")

	s.mu.Lock()
	defer s.mu.Unlock()

	share, ok := s.store("share")[id]
	if !ok {
		s.notFound(w, "share", id)
		return
	}

	metadata, _ := share.attrs["metadata"].(map[string]any)

	if _, ok := metadata[key]; !ok {
		s.notFound(w, "metadata key", key)
		return
	}

	delete(metadata, key)

	s.writeJSON(w, http.StatusOK, map[string]any{"metadata": metadata})
}

// Access rules.

func (s *Simulator) allowAccess(w http.ResponseWriter, shareID string, args map[string]any) {
	accessTo := stringArg(args, "access_to")

	// Duplicate rules are a client error.
	for _, rule := range s.store("access") {
		if rule.attrs["share_id"] == shareID && rule.attrs["access_to"] == accessTo {
			s.errorResponse(w, http.StatusBadRequest, "access rule for %q already exists", accessTo)
			return
		}
	}

	level := stringArg(args, "access_level")
	if level == "" {
		level = "rw"
	}

	attrs := map[string]any{
		"id":           s.nextID("access"),
		"share_id":     shareID,
		"access_type":  stringArg(args, "access_type"),
		"access_to":    accessTo,
		"access_level": level,
		"state":        "queued_to_apply",
		"metadata":     map[string]any{},
		"created_at":   time.Now().UTC().Format(time.RFC3339),
	}

	if metadata, ok := args["metadata"].(map[string]any); ok {
		attrs["metadata"] = metadata
	}

	s.store("access")[attrs["id"].(string)] = &resource{attrs: attrs}

	s.writeJSON(w, http.StatusOK, map[string]any{"access": attrs})
}

func (s *Simulator) denyAccess(w http.ResponseWriter, shareID string, args map[string]any) {
	id := stringArg(args, "access_id")

	rule, ok := s.store("access")[id]
	if !ok || rule.attrs["share_id"] != shareID {
		s.notFound(w, "access rule", id)
		return
	}

	delete(s.store("access"), id)

	w.WriteHeader(http.StatusAccepted)
}

func (s *Simulator) accessList(w http.ResponseWriter, shareID string) {
	rules := []map[string]any{}

	for id, rule := range s.store("access") {
		if rule.attrs["share_id"] != shareID {
			continue
		}

		s.settleAccess(id, rule)

		rules = append(rules, copyAttrs(rule.attrs))
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"access_list": rules})
}

// settleAccess transitions a queued rule after enough observations. Rules
// granting access to a subject containing the error marker fail.
func (s *Simulator) settleAccess(id string, rule *resource) {
	rule.polls++

	if rule.polls <= s.settleAfter {
		return
	}

	if state, _ := rule.attrs["state"].(string); state != "queued_to_apply" {
		return
	}

	if accessTo, _ := rule.attrs["access_to"].(string); strings.Contains(accessTo, ErrorMarker) {
		rule.attrs["state"] = "error"
		return
	}

	rule.attrs["state"] = "active"
}

func (s *Simulator) listAccessRules(w http.ResponseWriter, r *http.Request) {
	shareID := r.URL.Query().Get("share_id")

	s.mu.Lock()
	defer s.mu.Unlock()

	if shareID == "" {
		s.errorResponse(w, http.StatusBadRequest, "share_id is required")
		return
	}

	s.accessList(w, shareID)
}

func (s *Simulator) getAccessRule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "accessID")

	s.mu.Lock()
	defer s.mu.Unlock()

	rule, ok := s.store("access")[id]
	if !ok {
		s.notFound(w, "access rule", id)
		return
	}

	s.settleAccess(id, rule)

	s.writeJSON(w, http.StatusOK, map[string]any{"access": copyAttrs(rule.attrs)})
}

func (s *Simulator) setAccessRuleMetadata(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "accessID")

	inner, err := innerObject(r, "metadata")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "%v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rule, ok := s.store("access")[id]
	if !ok {
		s.notFound(w, "access rule", id)
		return
	}

	metadata, _ := rule.attrs["metadata"].(map[string]any)
	if metadata == nil {
		metadata = map[string]any{}
	}

	for k, v := range inner {
		metadata[k] = v
	}

	rule.attrs["metadata"] = metadata

	s.writeJSON(w, http.StatusOK, map[string]any{"metadata": metadata})
}

func (s *Simulator) deleteAccessRuleMetadata(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "accessID")
	key := chi.URLParam(r, "key")

	s.mu.Lock()
	defer s.mu.Unlock()

	rule, ok := s.store("access")[id]
	if !ok {
		s.notFound(w, "access rule", id)
		return
	}

	metadata, _ := rule.attrs["metadata"].(map[string]any)
	delete(metadata, key)

	s.writeJSON(w, http.StatusOK, map[string]any{"metadata": metadata})
}
