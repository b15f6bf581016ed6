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

// Package api holds the shared plumbing for the integration suites:
// configuration, payload builders and resource fixtures.
package api

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"k8s.io/utils/env"
)

// TestConfig carries everything the suites need to talk to a deployment.
// When BaseURL is empty the suites run against an in-process simulated
// backend instead.
type TestConfig struct {
	BaseURL               string
	AuthToken             string
	Microversion          string
	Protocol              string
	ShareSize             int
	ShareNetworkID        string
	ShareTypeID           string
	AvailabilityZones     []string
	RequestTimeout        time.Duration
	BuildInterval         time.Duration
	BuildTimeout          time.Duration
	CreationRetries       int
	SuppressCleanupErrors bool
	RunAdminTests         bool
	LogRequests           bool
}

// LoadTestConfig loads configuration from environment variables and .env
// files. Every value has a default, a fully unconfigured run targets the
// simulator.
func LoadTestConfig() *TestConfig {
	loadEnvFile()

	return &TestConfig{
		BaseURL:               os.Getenv("MANILA_BASE_URL"),
		AuthToken:             os.Getenv("MANILA_AUTH_TOKEN"),
		Microversion:          env.GetString("MANILA_MICROVERSION", "2.40"),
		Protocol:              env.GetString("MANILA_SHARE_PROTOCOL", "NFS"),
		ShareSize:             getIntWithDefault("MANILA_SHARE_SIZE", 1),
		ShareNetworkID:        os.Getenv("MANILA_SHARE_NETWORK_ID"),
		ShareTypeID:           os.Getenv("MANILA_SHARE_TYPE_ID"),
		AvailabilityZones:     splitList(os.Getenv("MANILA_AVAILABILITY_ZONES")),
		RequestTimeout:        getDurationWithDefault("REQUEST_TIMEOUT", 30*time.Second),
		BuildInterval:         getDurationWithDefault("BUILD_INTERVAL", 3*time.Second),
		BuildTimeout:          getDurationWithDefault("BUILD_TIMEOUT", 5*time.Minute),
		CreationRetries:       getIntWithDefault("CREATION_RETRIES", 2),
		SuppressCleanupErrors: getBoolWithDefault("SUPPRESS_CLEANUP_ERRORS", false),
		RunAdminTests:         getBoolWithDefault("RUN_ADMIN_TESTS", true),
		LogRequests:           getBoolWithDefault("LOG_REQUESTS", false),
	}
}

// Simulated reports whether the suites should start their own backend.
func (c *TestConfig) Simulated() bool {
	return c.BaseURL == ""
}

func getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}

func getIntWithDefault(key string, defaultValue int) int {
	value, err := env.GetInt(key, defaultValue)
	if err != nil {
		return defaultValue
	}

	return value
}

func getBoolWithDefault(key string, defaultValue bool) bool {
	value, err := env.GetBool(key, defaultValue)
	if err != nil {
		return defaultValue
	}

	return value
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	return parts
}

func loadEnvFile() {
	envPaths := []string{
		"../../../test/.env", // From test/api/suites directory
		"../../test/.env",    // From test/api directory
	}

	var envPath string

	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				envPath = absPath
				break
			}
		}
	}

	if envPath == "" {
		// No .env is fine, CI sets variables directly.
		return
	}

	if err := godotenv.Load(envPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file from %s: %v\n", envPath, err)
	}
}
