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

	"github.com/go-chi/chi/v5"
)

func (s *Simulator) typeRoutes(r chi.Router) {
	r.Route("/types", func(r chi.Router) {
		r.Post("/", s.createShareType)
		r.Get("/", s.listShareTypes)
		r.Get("/default", s.getDefaultShareType)

		r.Route("/{typeID}", func(r chi.Router) {
			r.Get("/", s.getShareType)
			r.Delete("/", s.deleteShareType)
			r.Post("/action", s.shareTypeAction)
			r.Get("/extra_specs", s.getShareTypeExtraSpecs)
			r.Post("/extra_specs", s.setShareTypeExtraSpecs)
			r.Delete("/extra_specs/{key}", s.deleteShareTypeExtraSpec)
			r.Get("/share_type_access", s.listShareTypeAccess)
		})
	})

	r.Route("/share-group-types", func(r chi.Router) {
		r.Post("/", s.createShareGroupType)
		r.Get("/", s.listShareGroupTypes)
		r.Get("/default", s.getDefaultShareGroupType)

		r.Route("/{groupTypeID}", func(r chi.Router) {
			r.Get("/", s.getShareGroupType)
			r.Delete("/", s.deleteShareGroupType)
			r.Post("/action", s.shareGroupTypeAction)
			r.Get("/group-specs", s.getShareGroupTypeSpecs)
			r.Post("/group-specs", s.setShareGroupTypeSpecs)
			r.Delete("/group-specs/{key}", s.deleteShareGroupTypeSpec)
			r.Get("/access", s.listShareGroupTypeAccess)
		})
	})
}

func (s *Simulator) createShareType(w http.ResponseWriter, r *http.Request) {
	inner, err := innerObject(r, "share_type")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "%v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	specs, _ := inner["extra_specs"].(map[string]any)
	if specs == nil || specs["driver_handles_share_servers"] == nil {
		s.errorResponse(w, http.StatusBadRequest, "extra_specs must set driver_handles_share_servers")
		return
	}

	attrs := map[string]any{
		"id":     s.nextID("type"),
		"access": []string{},
	}

	for k, v := range inner {
		attrs[k] = v
	}

	s.store("type")[attrs["id"].(string)] = &resource{attrs: attrs}

	s.writeJSON(w, http.StatusOK, map[string]any{"share_type": attrs})
}

func (s *Simulator) listShareTypes(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	types := []map[string]any{}

	for _, t := range s.store("type") {
		types = append(types, copyAttrs(t.attrs))
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"share_types": types})
}

func (s *Simulator) getDefaultShareType(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// The oldest registered type acts as the default.
	var def *resource

	for _, t := range s.store("type") {
		if def == nil || t.attrs["id"].(string) < def.attrs["id"].(string) {
			def = t
		}
	}

	if def == nil {
		s.notFound(w, "share type", "default")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"share_type": copyAttrs(def.attrs)})
}

func (s *Simulator) getShareType(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "typeID")

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.store("type")[id]
	if !ok {
		s.notFound(w, "share type", id)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"share_type": copyAttrs(t.attrs)})
}

func (s *Simulator) deleteShareType(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "typeID")

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.store("type")[id]; !ok {
		s.notFound(w, "share type", id)
		return
	}

	delete(s.store("type"), id)

	w.WriteHeader(http.StatusAccepted)
}

func (s *Simulator) shareTypeAction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "typeID")

	name, args, err := action(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "%v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.store("type")[id]
	if !ok {
		s.notFound(w, "share type", id)
		return
	}

	s.projectAccessAction(w, t, name, args)
}

// projectAccessAction implements the addProjectAccess/removeProjectAccess
// actions shared by share types and group types.
func (s *Simulator) projectAccessAction(w http.ResponseWriter, t *resource, name string, args map[string]any) {
	project := stringArg(args, "project")

	access, _ := t.attrs["access"].([]string)

	switch name {
	case "addProjectAccess":
		for _, p := range access {
			if p == project {
				s.errorResponse(w, http.StatusConflict, "project %s already has access", project)
				return
			}
		}

		t.attrs["access"] = append(access, project)

		w.WriteHeader(http.StatusAccepted)

	case "removeProjectAccess":
		kept := make([]string, 0, len(access))

		for _, p := range access {
			if p != project {
				kept = append(kept, p)
			}
		}

		if len(kept) == len(access) {
			s.notFound(w, "project access", project)
			return
		}

		t.attrs["access"] = kept

		w.WriteHeader(http.StatusAccepted)

	default:
		s.errorResponse(w, http.StatusBadRequest, "unknown action %q", name)
	}
}

func (s *Simulator) getShareTypeExtraSpecs(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "typeID")

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.store("type")[id]
	if !ok {
		s.notFound(w, "share type", id)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"extra_specs": t.attrs["extra_specs"]})
}

func (s *Simulator) setShareTypeExtraSpecs(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "typeID")

	inner, err := innerObject(r, "extra_specs")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "%v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.store("type")[id]
	if !ok {
		s.notFound(w, "share type", id)
		return
	}

	specs, _ := t.attrs["extra_specs"].(map[string]any)
	if specs == nil {
		specs = map[string]any{}
	}

	for k, v := range inner {
		specs[k] = v
	}

	t.attrs["extra_specs"] = specs

	s.writeJSON(w, http.StatusOK, map[string]any{"extra_specs": specs})
}

func (s *Simulator) deleteShareTypeExtraSpec(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "typeID")
	key := chi.URLParam(r, "key")

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.store("type")[id]
	if !ok {
		s.notFound(w, "share type", id)
		return
	}

	specs, _ := t.attrs["extra_specs"].(map[string]any)

	if _, ok := specs[key]; !ok {
		s.notFound(w, "extra spec", key)
		return
	}

	delete(specs, key)

	w.WriteHeader(http.StatusAccepted)
}

func (s *Simulator) listShareTypeAccess(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "typeID")

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.store("type")[id]
	if !ok {
		s.notFound(w, "share type", id)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"share_type_access": projectAccessList(t, "share_type_id"),
	})
}

func projectAccessList(t *resource, idKey string) []map[string]any {
	access, _ := t.attrs["access"].([]string)

	out := []map[string]any{}

	for _, project := range access {
		out = append(out, map[string]any{
			idKey:        t.attrs["id"],
			"project_id": project,
		})
	}

	return out
}

func (s *Simulator) createShareGroupType(w http.ResponseWriter, r *http.Request) {
	inner, err := innerObject(r, "share_group_type")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "%v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	attrs := map[string]any{
		"id":     s.nextID("group-type"),
		"access": []string{},
	}

	for k, v := range inner {
		attrs[k] = v
	}

	s.store("group-type")[attrs["id"].(string)] = &resource{attrs: attrs}

	s.writeJSON(w, http.StatusOK, map[string]any{"share_group_type": attrs})
}

func (s *Simulator) listShareGroupTypes(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	types := []map[string]any{}

	for _, t := range s.store("group-type") {
		types = append(types, copyAttrs(t.attrs))
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"share_group_types": types})
}

func (s *Simulator) getDefaultShareGroupType(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var def *resource

	for _, t := range s.store("group-type") {
		if def == nil || t.attrs["id"].(string) < def.attrs["id"].(string) {
			def = t
		}
	}

	if def == nil {
		s.notFound(w, "share group type", "default")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"share_group_type": copyAttrs(def.attrs)})
}

func (s *Simulator) getShareGroupType(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "groupTypeID")

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.store("group-type")[id]
	if !ok {
		s.notFound(w, "share group type", id)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"share_group_type": copyAttrs(t.attrs)})
}

func (s *Simulator) deleteShareGroupType(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "groupTypeID")

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.store("group-type")[id]; !ok {
		s.notFound(w, "share group type", id)
		return
	}

	delete(s.store("group-type"), id)

	w.WriteHeader(http.StatusAccepted)
}

func (s *Simulator) shareGroupTypeAction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "groupTypeID")

	name, args, err := action(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "%v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.store("group-type")[id]
	if !ok {
		s.notFound(w, "share group type", id)
		return
	}

	s.projectAccessAction(w, t, name, args)
}

func (s *Simulator) getShareGroupTypeSpecs(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "groupTypeID")

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.store("group-type")[id]
	if !ok {
		s.notFound(w, "share group type", id)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"group_specs": t.attrs["group_specs"]})
}

func (s *Simulator) setShareGroupTypeSpecs(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "groupTypeID")

	inner, err := innerObject(r, "group_specs")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "%v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.store("group-type")[id]
	if !ok {
		s.notFound(w, "share group type", id)
		return
	}

	specs, _ := t.attrs["group_specs"].(map[string]any)
	if specs == nil {
		specs = map[string]any{}
	}

	for k, v := range inner {
		specs[k] = v
	}

	t.attrs["group_specs"] = specs

	s.writeJSON(w, http.StatusOK, map[string]any{"group_specs": specs})
}

func (s *Simulator) deleteShareGroupTypeSpec(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "groupTypeID")
	key := chi.URLParam(r, "key")

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.store("group-type")[id]
	if !ok {
		s.notFound(w, "share group type", id)
		return
	}

	specs, _ := t.attrs["group_specs"].(map[string]any)

	if _, ok := specs[key]; !ok {
		s.notFound(w, "group spec", key)
		return
	}

	delete(specs, key)

	w.WriteHeader(http.StatusNoContent)
}

func (s *Simulator) listShareGroupTypeAccess(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "groupTypeID")

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.store("group-type")[id]
	if !ok {
		s.notFound(w, "share group type", id)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"share_group_type_access": projectAccessList(t, "share_group_type_id"),
	})
}
