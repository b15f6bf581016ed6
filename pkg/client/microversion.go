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
	"strconv"
	"strings"
)

// Microversion is a monotonically increasing two-part API version token
// such as "2.27", sent as a request header to gate which fields and
// behaviours the backend exposes.
type Microversion struct {
	Major int
	Minor int
}

// ParseMicroversion parses a "major.minor" token.
func ParseMicroversion(s string) (Microversion, error) {
	major, minor, ok := strings.Cut(s, ".")
	if !ok {
		return Microversion{}, fmt.Errorf("malformed microversion %q", s)
	}

	majorN, err := strconv.Atoi(major)
	if err != nil {
		return Microversion{}, fmt.Errorf("malformed microversion %q: %w", s, err)
	}

	minorN, err := strconv.Atoi(minor)
	if err != nil {
		return Microversion{}, fmt.Errorf("malformed microversion %q: %w", s, err)
	}

	return Microversion{Major: majorN, Minor: minorN}, nil
}

func (v Microversion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Compare returns -1, 0 or 1 as v sorts before, equal to or after o.
// Minor versions compare numerically, so "2.10" is greater than "2.9".
func (v Microversion) Compare(o Microversion) int {
	if v.Major != o.Major {
		return sign(v.Major - o.Major)
	}

	return sign(v.Minor - o.Minor)
}

// AtLeast reports whether v is o or newer.
func (v Microversion) AtLeast(o Microversion) bool {
	return v.Compare(o) >= 0
}

// CompareMicroversions compares two raw tokens.
func CompareMicroversions(a, b string) (int, error) {
	av, err := ParseMicroversion(a)
	if err != nil {
		return 0, err
	}

	bv, err := ParseMicroversion(b)
	if err != nil {
		return 0, err
	}

	return av.Compare(bv), nil
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
