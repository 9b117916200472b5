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

// Package types provides common types shared across the configurator packages
package types

import (
	"fmt"

	"github.com/AlaudaDevops/toolbox/dependabot-configurator/pkg/ecosystem"
)

// ScanHit records a manifest file detected in the repository tree.
type ScanHit struct {
	// Ecosystem is the package ecosystem the file belongs to
	Ecosystem ecosystem.Ecosystem `json:"ecosystem"`
	// Directory is the root-relative directory of the file, "/" for the
	// repository root and "/sub/dir" otherwise, never with a trailing slash
	Directory string `json:"directory"`
	// File is the basename of the matched manifest file
	File string `json:"file"`
}

// String returns a formatted representation of the hit
func (h ScanHit) String() string {
	return fmt.Sprintf("ScanHit{%s %s/%s}", h.Ecosystem, h.Directory, h.File)
}

// ScanWarning records a non-fatal problem encountered while scanning.
// Warnings are accumulated and reported alongside successful output; they
// never abort a run.
type ScanWarning struct {
	// Path is the file or directory the warning refers to
	Path string `json:"path"`
	// Message describes what went wrong
	Message string `json:"message"`
}

// String returns a formatted representation of the warning
func (w ScanWarning) String() string {
	return fmt.Sprintf("%s: %s", w.Path, w.Message)
}
