/*
Copyright 2025 The AlaudaDevops Authors.

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

package types

import "fmt"

// ConfigurationError is a fatal settings problem: malformed structure, an
// unknown ecosystem id, an unknown registry type, a duplicate registry name.
// It always names the offending key and value so the fix is actionable.
// A run that hits one aborts before any output is written.
type ConfigurationError struct {
	// Key is the settings key that failed validation
	Key string
	// Value is the offending value, empty when the key itself is the problem
	Value string
	// Reason describes why the value was rejected
	Reason string
}

// NewConfigurationError creates a ConfigurationError for the given key/value.
func NewConfigurationError(key, value, reason string) *ConfigurationError {
	return &ConfigurationError{Key: key, Value: value, Reason: reason}
}

func (e *ConfigurationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid configurator settings: %s: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("invalid configurator settings: %s: %q: %s", e.Key, e.Value, e.Reason)
}

// EmissionError is a fatal internal consistency failure detected while
// serializing the generated configuration, such as an update entry
// referencing a registry that was never declared. Partial documents are
// never emitted.
type EmissionError struct {
	// Entry identifies the update entry that failed, empty for document-level failures
	Entry string
	// Reason describes the inconsistency
	Reason string
}

func (e *EmissionError) Error() string {
	if e.Entry == "" {
		return fmt.Sprintf("cannot emit dependabot configuration: %s", e.Reason)
	}
	return fmt.Sprintf("cannot emit dependabot configuration: entry %s: %s", e.Entry, e.Reason)
}
