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

// defaultQuotas are the deployment-wide quota limits.
var defaultQuotas = map[string]any{
	"shares":                50,
	"gigabytes":             1000,
	"snapshots":             50,
	"snapshot_gigabytes":    1000,
	"share_networks":        10,
	"share_groups":          50,
	"share_group_snapshots": 50,
}

func (s *Simulator) infraRoutes(r chi.Router) {
	r.Route("/share-networks", func(r chi.Router) {
		r.Post("/", s.createShareNetwork)
		r.Get("/", s.listShareNetworks)
		r.Get("/detail", s.listShareNetworks)

		r.Route("/{networkID}", func(r chi.Router) {
			r.Get("/", s.getShareNetwork)
			r.Put("/", s.updateShareNetwork)
			r.Delete("/", s.deleteShareNetwork)
			r.Post("/action", s.shareNetworkAction)
		})
	})

	r.Route("/security-services", func(r chi.Router) {
		r.Post("/", s.createSecurityService)
		r.Get("/", s.listSecurityServices)
		r.Get("/detail", s.listSecurityServices)

		r.Route("/{serviceID}", func(r chi.Router) {
			r.Get("/", s.getSecurityService)
			r.Put("/", s.updateSecurityService)
			r.Delete("/", s.deleteSecurityService)
		})
	})

	r.Route("/share-servers", func(r chi.Router) {
		r.Get("/", s.listShareServers)
		r.Post("/manage", s.manageShareServer)

		r.Route("/{serverID}", func(r chi.Router) {
			r.Get("/", s.getShareServer)
			r.Delete("/", s.deleteShareServer)
			r.Post("/action", s.shareServerAction)
		})
	})

	for _, prefix := range []string{"/quota-sets", "/os-quota-sets"} {
		r.Route(prefix, func(r chi.Router) {
			r.Get("/{projectID}", s.getQuotas)
			r.Get("/{projectID}/defaults", s.getDefaultQuotas)
			r.Get("/{projectID}/detail", s.getDetailedQuotas)
			r.Put("/{projectID}", s.updateQuotas)
			r.Delete("/{projectID}", s.resetQuotas)
		})
	}

	r.Route("/messages", func(r chi.Router) {
		r.Get("/", s.listMessages)
		r.Get("/{messageID}", s.getMessage)
		r.Delete("/{messageID}", s.deleteMessage)
	})

	for _, path := range []string{"/services", "/os-services"} {
		r.Get(path, s.listServices)
	}

	for _, path := range []string{"/availability-zones", "/os-availability-zone"} {
		r.Get(path, s.listAvailabilityZones)
	}

	r.Get("/scheduler-stats/pools", s.listPools)
	r.Get("/scheduler-stats/pools/detail", s.listPools)
}

// Share networks.

func (s *Simulator) createShareNetwork(w http.ResponseWriter, r *http.Request) {
	inner, err := innerObject(r, "share_network")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "%v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	attrs := map[string]any{
		"id":                s.nextID("share-network"),
		"name":              nil,
		"description":       nil,
		"security_services": []map[string]any{},
		"project_id":        "sim-project",
		"created_at":        time.Now().UTC().Format(time.RFC3339),
	}

	for k, v := range inner {
		attrs[k] = v
	}

	s.store("share-network")[attrs["id"].(string)] = &resource{attrs: attrs}

	s.writeJSON(w, http.StatusOK, map[string]any{"share_network": attrs})
}

func (s *Simulator) listShareNetworks(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	networks := []map[string]any{}

	for _, network := range s.store("share-network") {
		if matchesQuery(network.attrs, r.URL.Query()) {
			networks = append(networks, copyAttrs(network.attrs))
		}
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"share_networks": networks})
}

func (s *Simulator) getShareNetwork(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "networkID")

	s.mu.Lock()
	defer s.mu.Unlock()

	network, ok := s.store("share-network")[id]
	if !ok {
		s.notFound(w, "share network", id)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"share_network": copyAttrs(network.attrs)})
}

func (s *Simulator) updateShareNetwork(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "networkID")

	inner, err := innerObject(r, "share_network")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "%v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	network, ok := s.store("share-network")[id]
	if !ok {
		s.notFound(w, "share network", id)
		return
	}

	for k, v := range inner {
		network.attrs[k] = v
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"share_network": copyAttrs(network.attrs)})
}

func (s *Simulator) deleteShareNetwork(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "networkID")

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.store("share-network")[id]; !ok {
		s.notFound(w, "share network", id)
		return
	}

	// In-use networks cannot be removed.
	for _, share := range s.store("share") {
		if share.attrs["share_network_id"] == id {
			s.errorResponse(w, http.StatusConflict, "share network %s is in use", id)
			return
		}
	}

	delete(s.store("share-network"), id)

	w.WriteHeader(http.StatusAccepted)
}

func (s *Simulator) shareNetworkAction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "networkID")

	name, args, err := action(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "%v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	network, ok := s.store("share-network")[id]
	if !ok {
		s.notFound(w, "share network", id)
		return
	}

	serviceID := stringArg(args, "security_service_id")

	service, ok := s.store("security-service")[serviceID]
	if !ok {
		s.notFound(w, "security service", serviceID)
		return
	}

	services, _ := network.attrs["security_services"].([]map[string]any)

	switch name {
	case "add_security_service":
		services = append(services, copyAttrs(service.attrs))

	case "remove_security_service":
		kept := make([]map[string]any, 0, len(services))

		for _, svc := range services {
			if svc["id"] != serviceID {
				kept = append(kept, svc)
			}
		}

		services = kept

	default:
		s.errorResponse(w, http.StatusBadRequest, "unknown action %q", name)
		return
	}

	network.attrs["security_services"] = services

	s.writeJSON(w, http.StatusOK, map[string]any{"share_network": copyAttrs(network.attrs)})
}

// Security services.

func (s *Simulator) createSecurityService(w http.ResponseWriter, r *http.Request) {
	inner, err := innerObject(r, "security_service")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "%v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	attrs := map[string]any{
		"id":         s.nextID("security-service"),
		"name":       nil,
		"status":     "new",
		"created_at": time.Now().UTC().Format(time.RFC3339),
	}

	for k, v := range inner {
		attrs[k] = v
	}

	s.store("security-service")[attrs["id"].(string)] = &resource{attrs: attrs}

	s.writeJSON(w, http.StatusOK, map[string]any{"security_service": attrs})
}

func (s *Simulator) listSecurityServices(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	services := []map[string]any{}

	for _, service := range s.store("security-service") {
		if matchesQuery(service.attrs, r.URL.Query()) {
			services = append(services, copyAttrs(service.attrs))
		}
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"security_services": services})
}

func (s *Simulator) getSecurityService(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "serviceID")

	s.mu.Lock()
	defer s.mu.Unlock()

	service, ok := s.store("security-service")[id]
	if !ok {
		s.notFound(w, "security service", id)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"security_service": copyAttrs(service.attrs)})
}

func (s *Simulator) updateSecurityService(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "serviceID")

	inner, err := innerObject(r, "security_service")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "%v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	service, ok := s.store("security-service")[id]
	if !ok {
		s.notFound(w, "security service", id)
		return
	}

	for k, v := range inner {
		service.attrs[k] = v
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"security_service": copyAttrs(service.attrs)})
}

func (s *Simulator) deleteSecurityService(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "serviceID")

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.store("security-service")[id]; !ok {
		s.notFound(w, "security service", id)
		return
	}

	delete(s.store("security-service"), id)

	w.WriteHeader(http.StatusAccepted)
}

// Share servers. Servers come into being implicitly when shares land on a
// share network, and explicitly through manage.

func (s *Simulator) shareServerForNetwork(networkID string) *resource {
	for _, server := range s.store("share-server") {
		if server.attrs["share_network_id"] == networkID {
			return server
		}
	}

	attrs := map[string]any{
		"id":               s.nextID("share-server"),
		"share_network_id": networkID,
		"status":           "active",
		"host":             "sim@backend",
		"created_at":       time.Now().UTC().Format(time.RFC3339),
	}

	server := &resource{attrs: attrs}
	s.store("share-server")[attrs["id"].(string)] = server

	return server
}

// settleServer advances a share server, which settles active rather than
// available.
func (s *Simulator) settleServer(id string, server *resource) bool {
	if !s.settle(s.store("share-server"), id, server) {
		return false
	}

	if server.attrs["status"] == "available" {
		server.attrs["status"] = "active"
	}

	return true
}

func (s *Simulator) listShareServers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Materialize servers for every network that hosts shares.
	for _, share := range s.store("share") {
		if networkID, ok := share.attrs["share_network_id"].(string); ok && networkID != "" {
			s.shareServerForNetwork(networkID)
		}
	}

	servers := []map[string]any{}

	for id, server := range s.store("share-server") {
		if !s.settleServer(id, server) {
			continue
		}

		if matchesQuery(server.attrs, r.URL.Query()) {
			servers = append(servers, copyAttrs(server.attrs))
		}
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"share_servers": servers})
}

func (s *Simulator) getShareServer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "serverID")

	s.mu.Lock()
	defer s.mu.Unlock()

	server, ok := s.store("share-server")[id]
	if !ok || !s.settleServer(id, server) {
		s.notFound(w, "share server", id)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"share_server": copyAttrs(server.attrs)})
}

func (s *Simulator) deleteShareServer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "serverID")

	s.mu.Lock()
	defer s.mu.Unlock()

	server, ok := s.store("share-server")[id]
	if !ok {
		s.notFound(w, "share server", id)
		return
	}

	server.deleting = true
	server.attrs["status"] = "deleting"

	w.WriteHeader(http.StatusAccepted)
}

func (s *Simulator) manageShareServer(w http.ResponseWriter, r *http.Request) {
	inner, err := innerObject(r, "share_server")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "%v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	attrs := map[string]any{
		"id":         s.nextID("share-server"),
		"status":     "manage_starting",
		"created_at": time.Now().UTC().Format(time.RFC3339),
	}

	for k, v := range inner {
		attrs[k] = v
	}

	s.store("share-server")[attrs["id"].(string)] = &resource{attrs: attrs}

	s.writeJSON(w, http.StatusAccepted, map[string]any{"share_server": attrs})
}

func (s *Simulator) shareServerAction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "serverID")

	name, args, err := action(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "%v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	server, ok := s.store("share-server")[id]
	if !ok {
		s.notFound(w, "share server", id)
		return
	}

	switch name {
	case "reset_status":
		server.attrs["status"] = stringArg(args, "status")
		w.WriteHeader(http.StatusAccepted)

	case "unmanage":
		delete(s.store("share-server"), id)
		w.WriteHeader(http.StatusAccepted)

	default:
		s.errorResponse(w, http.StatusBadRequest, "unknown action %q", name)
	}
}

// Quotas.

func (s *Simulator) projectQuotas(projectID string) map[string]any {
	quotas := map[string]any{"id": projectID}

	for k, v := range defaultQuotas {
		quotas[k] = v
	}

	for k, v := range s.quotas[projectID] {
		quotas[k] = v
	}

	return quotas
}

func (s *Simulator) getQuotas(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, map[string]any{
		"quota_set": s.projectQuotas(chi.URLParam(r, "projectID")),
	})
}

func (s *Simulator) getDefaultQuotas(w http.ResponseWriter, r *http.Request) {
	quotas := map[string]any{"id": chi.URLParam(r, "projectID")}

	for k, v := range defaultQuotas {
		quotas[k] = v
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"quota_set": quotas})
}

func (s *Simulator) getDetailedQuotas(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	quotas := map[string]any{}

	for k, v := range s.projectQuotas(chi.URLParam(r, "projectID")) {
		if k == "id" {
			quotas[k] = v
			continue
		}

		quotas[k] = map[string]any{
			"limit":    v,
			"in_use":   0,
			"reserved": 0,
		}
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"quota_set": quotas})
}

func (s *Simulator) updateQuotas(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")

	inner, err := innerObject(r, "quota_set")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "%v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	overrides := s.quotas[projectID]
	if overrides == nil {
		overrides = map[string]any{}
		s.quotas[projectID] = overrides
	}

	for k, v := range inner {
		if _, ok := defaultQuotas[k]; !ok {
			s.errorResponse(w, http.StatusBadRequest, "unknown quota %q", k)
			return
		}

		overrides[k] = v
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"quota_set": s.projectQuotas(projectID)})
}

func (s *Simulator) resetQuotas(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.quotas, chi.URLParam(r, "projectID"))

	w.WriteHeader(http.StatusAccepted)
}

// Messages.

func (s *Simulator) listMessages(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resourceID := r.URL.Query().Get("resource_id")

	messages := []map[string]any{}

	for _, message := range s.messages {
		if resourceID != "" && message["resource_id"] != resourceID {
			continue
		}

		messages = append(messages, copyAttrs(message))
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"messages": messages})
}

func (s *Simulator) getMessage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "messageID")

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, message := range s.messages {
		if message["id"] == id {
			s.writeJSON(w, http.StatusOK, map[string]any{"message": copyAttrs(message)})
			return
		}
	}

	s.notFound(w, "message", id)
}

func (s *Simulator) deleteMessage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "messageID")

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, message := range s.messages {
		if message["id"] == id {
			s.messages = append(s.messages[:i], s.messages[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}

	s.notFound(w, "message", id)
}

// Deployment topology.

func (s *Simulator) listServices(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"services": []map[string]any{
			{
				"id":     1,
				"binary": "manila-scheduler",
				"host":   "sim",
				"zone":   "nova",
				"status": "enabled",
				"state":  "up",
			},
			{
				"id":     2,
				"binary": "manila-share",
				"host":   "sim@backend",
				"zone":   "nova",
				"status": "enabled",
				"state":  "up",
			},
		},
	})
}

func (s *Simulator) listAvailabilityZones(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"availability_zones": []map[string]any{
			{
				"id":   "az-1",
				"name": "nova",
			},
			{
				"id":   "az-2",
				"name": "nova-2",
			},
		},
	})
}

func (s *Simulator) listPools(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"pools": []map[string]any{
			{
				"name":    "sim@backend#pool0",
				"host":    "sim",
				"backend": "backend",
				"pool":    "pool0",
			},
		},
	})
}
