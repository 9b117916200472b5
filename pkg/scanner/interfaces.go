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

// Package scanner provides repository tree scanning for package ecosystems
package scanner

import (
	"fmt"

	"github.com/AlaudaDevops/toolbox/dependabot-configurator/pkg/types"
)

// Scanner is the interface that all repository scanners must implement
type Scanner interface {
	// Scan walks the repository and returns the detected manifest hits
	Scan() (*Result, error)
	// GetName returns the name of the scanner
	GetName() string
}

// Result represents the outcome of a repository scan
type Result struct {
	// Hits is the deduplicated list of detected manifests, sorted by
	// ecosystem, directory and file for deterministic downstream processing
	Hits []types.ScanHit `json:"hits"`
	// Warnings are the non-fatal problems encountered during the scan
	Warnings []types.ScanWarning `json:"warnings,omitempty"`
}

// NewScanner creates a new scanner instance for the given type
func NewScanner(scanType, rootPath string) (Scanner, error) {
	switch scanType {
	case "", "filesystem":
		return NewFilesystemScanner(rootPath), nil
	default:
		return nil, fmt.Errorf("unsupported scanner type: %s", scanType)
	}
}
