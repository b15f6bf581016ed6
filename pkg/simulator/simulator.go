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

// Package simulator is an in-memory stand-in for the share service API,
// used when the test suites run without a real deployment. It models the
// asynchronous lifecycle: resources are created in a transitional status
// and settle after a configurable number of polls, names containing the
// error marker settle into an error status and emit a user message.
package simulator

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sapcc/manila-tempest-plugin/pkg/client"
)

// ErrorMarker in a resource name makes its provisioning fail.
const ErrorMarker = "error"

// DefaultMaxVersion is the newest microversion the simulator advertises.
const DefaultMaxVersion = "2.50"

// Options configures a Simulator.
type Options struct {
	// SettleAfter is the number of polls a transitional resource is
	// observed in before settling. Zero settles on the first poll.
	SettleAfter int

	// MaxVersion caps the microversion requests may carry.
	MaxVersion string
}

// Simulator serves a share service API from memory. Safe for concurrent
// use.
type Simulator struct {
	mu sync.Mutex

	router chi.Router

	settleAfter int
	maxVersion  client.Microversion
	maxToken    string

	stores   map[string]map[string]*resource
	messages []map[string]any
	quotas   map[string]map[string]any
	seq      int
}

type resource struct {
	attrs       map[string]any
	polls       int
	deleting    bool
	deletePolls int
}

// New creates a simulator and its routing table.
func New(opts Options) (*Simulator, error) {
	if opts.MaxVersion == "" {
		opts.MaxVersion = DefaultMaxVersion
	}

	maxVersion, err := client.ParseMicroversion(opts.MaxVersion)
	if err != nil {
		return nil, err
	}

	s := &Simulator{
		settleAfter: opts.SettleAfter,
		maxVersion:  maxVersion,
		maxToken:    opts.MaxVersion,
		stores:      map[string]map[string]*resource{},
		quotas:      map[string]map[string]any{},
	}

	router := chi.NewRouter()
	router.Use(s.requestID)

	router.Get("/", s.getVersions)

	router.Route("/v2", func(r chi.Router) {
		r.Use(s.microversion)

		s.shareRoutes(r)
		s.snapshotRoutes(r)
		s.replicaRoutes(r)
		s.groupRoutes(r)
		s.typeRoutes(r)
		s.infraRoutes(r)
	})

	s.router = router

	return s, nil
}

// Handler exposes the simulator as an http.Handler for httptest.
func (s *Simulator) Handler() http.Handler {
	return s.router
}

// requestID stamps the correlation header on every response.
func (s *Simulator) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.seq++
		id := fmt.Sprintf("req-%08d", s.seq)
		s.mu.Unlock()

		w.Header().Set(client.RequestIDHeader, id)

		next.ServeHTTP(w, r)
	})
}

// microversion rejects requests above the advertised ceiling with 406,
// the behaviour version negotiation tests depend on.
func (s *Simulator) microversion(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(client.MicroversionHeader)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		requested, err := client.ParseMicroversion(token)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "malformed microversion %q", token)
			return
		}

		if requested.AtLeast(s.maxVersion) && requested != s.maxVersion {
			s.errorResponse(w, http.StatusNotAcceptable, "version %s is not supported, maximum is %s", token, s.maxToken)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Simulator) getVersions(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusMultipleChoices, map[string]any{
		"versions": []map[string]any{
			{
				"id":          "v2.0",
				"status":      "CURRENT",
				"min_version": "2.0",
				"version":     s.maxToken,
			},
		},
	})
}

// nextID generates a stable unique identifier with a kind prefix.
func (s *Simulator) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%08d", prefix, s.seq)
}

func (s *Simulator) store(kind string) map[string]*resource {
	st, ok := s.stores[kind]
	if !ok {
		st = map[string]*resource{}
		s.stores[kind] = st
	}

	return st
}

// settle advances a transitional resource by one observation. Returns
// false once a deleting resource is fully gone.
func (s *Simulator) settle(st map[string]*resource, id string, r *resource) bool {
	if r.deleting {
		r.deletePolls++

		if r.deletePolls > s.settleAfter {
			delete(st, id)
			return false
		}

		return true
	}

	r.polls++

	if r.polls <= s.settleAfter {
		return true
	}

	status, _ := r.attrs["status"].(string)
	name, _ := r.attrs["name"].(string)

	switch status {
	case "creating", "manage_starting":
		if strings.Contains(name, ErrorMarker) {
			r.attrs["status"] = "error"
			s.emitMessage(r.attrs)
		} else {
			r.attrs["status"] = "available"
		}
	case "extending", "shrinking", "reverting":
		r.attrs["status"] = "available"
	}

	return true
}

// emitMessage records a user message for a failed resource.
func (s *Simulator) emitMessage(attrs map[string]any) {
	id, _ := attrs["id"].(string)

	s.messages = append(s.messages, map[string]any{
		"id":            s.nextID("message"),
		"resource_id":   id,
		"resource_type": "SHARE",
		"action_id":     "001",
		"detail_id":     "008",
		"message_level": "ERROR",
		"user_message":  "allocate host: no storage could be allocated for this share request",
		"created_at":    time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Simulator) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	//nolint:errcheck
	json.NewEncoder(w).Encode(body)
}

func (s *Simulator) errorResponse(w http.ResponseWriter, status int, format string, args ...any) {
	s.writeJSON(w, status, map[string]any{
		"error": map[string]any{
			"code":    status,
			"message": fmt.Sprintf(format, args...),
		},
	})
}

func (s *Simulator) notFound(w http.ResponseWriter, kind, id string) {
	s.errorResponse(w, http.StatusNotFound, "%s %s could not be found", kind, id)
}

// decode reads a JSON request body.
func decode(r *http.Request, out any) error {
	return json.NewDecoder(r.Body).Decode(out)
}

// innerObject extracts the request envelope, e.g. {"share": {...}}.
func innerObject(r *http.Request, key string) (map[string]any, error) {
	var envelope map[string]map[string]any

	if err := decode(r, &envelope); err != nil {
		return nil, err
	}

	inner, ok := envelope[key]
	if !ok {
		return nil, fmt.Errorf("request is missing the %q envelope", key)
	}

	return inner, nil
}

// action decodes an action request body and returns the action name with
// any legacy os- prefix stripped, plus its arguments.
func action(r *http.Request) (string, map[string]any, error) {
	var envelope map[string]json.RawMessage

	if err := decode(r, &envelope); err != nil {
		return "", nil, err
	}

	for name, raw := range envelope {
		var args map[string]any

		// Argument-less actions carry null bodies.
		//nolint:errcheck
		json.Unmarshal(raw, &args)

		return strings.TrimPrefix(name, "os-"), args, nil
	}

	return "", nil, fmt.Errorf("empty action body")
}

func stringArg(args map[string]any, key string) string {
	value, _ := args[key].(string)
	return value
}

func intArg(args map[string]any, key string) int {
	value, _ := args[key].(float64)
	return int(value)
}

// intAttr reads a numeric attribute, tolerating both native ints and the
// float64 values JSON decoding produces.
func intAttr(attrs map[string]any, key string) (int, bool) {
	switch n := attrs[key].(type) {
	case int:
		return n, true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

func copyAttrs(attrs map[string]any) map[string]any {
	out := make(map[string]any, len(attrs))
	for k, v := range attrs {
		out[k] = v
	}

	return out
}

func matchesQuery(attrs map[string]any, query map[string][]string) bool {
	for key, values := range query {
		if len(values) == 0 {
			continue
		}

		switch key {
		case "limit", "offset", "sort_key", "sort_dir", "all_tenants":
			continue
		}

		if fmt.Sprint(attrs[key]) != values[0] {
			return false
		}
	}

	return true
}
