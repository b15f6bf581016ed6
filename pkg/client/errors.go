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
	"errors"
	"fmt"
	"net/http"
)

// APIError is returned when the service replies with a status code other
// than the one documented for the operation.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Expected   int
	Body       string
	RequestID  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("unexpected status code for %s %s: expected %d, got %d, body: %s (request ID: %s)",
		e.Method, e.Path, e.Expected, e.StatusCode, e.Body, e.RequestID)
}

// IsNotFound reports whether err represents a 404 response. During cleanup
// this means the resource is already gone, which is an acceptable end state.
func IsNotFound(err error) bool {
	var apiErr *APIError

	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsForbidden reports whether err represents a 403 response.
func IsForbidden(err error) bool {
	var apiErr *APIError

	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusForbidden
}
