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

package scanner

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/AlaudaDevops/toolbox/dependabot-configurator/pkg/ecosystem"
	"github.com/AlaudaDevops/toolbox/dependabot-configurator/pkg/types"
)

// FilesystemScanner implements the Scanner interface by walking a local
// repository checkout and matching every file against the ecosystem
// signature table.
type FilesystemScanner struct {
	// rootPath is the repository root to scan
	rootPath string
}

// NewFilesystemScanner creates a new filesystem scanner instance
func NewFilesystemScanner(rootPath string) *FilesystemScanner {
	return &FilesystemScanner{
		rootPath: rootPath,
	}
}

// GetName returns the name of the scanner
func (s *FilesystemScanner) GetName() string {
	return "filesystem"
}

// Scan walks every directory reachable from the root and tests each file
// against the ecosystem signatures. Multiple files matching the same
// ecosystem in one directory collapse to a single hit. An unreadable
// directory is skipped with a warning; a scan never aborts partway.
func (s *FilesystemScanner) Scan() (*Result, error) {
	logrus.Debugf("Scanning repository tree: %s", s.rootPath)

	result := &Result{}
	seen := map[types.ScanHit]bool{}

	err := filepath.WalkDir(s.rootPath, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			rel := s.relative(p)
			logrus.Warnf("Warning: skipping unreadable path %s: %v", rel, walkErr)
			result.Warnings = append(result.Warnings, types.ScanWarning{
				Path:    rel,
				Message: walkErr.Error(),
			})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel := s.relative(p)
		if d.IsDir() {
			if rel != "." && skipDirectory(d.Name(), rel) {
				return filepath.SkipDir
			}
			return nil
		}

		eco, ok := ecosystem.Match(rel)
		if !ok {
			return nil
		}

		hit := types.ScanHit{
			Ecosystem: eco,
			Directory: NormalizeDirectory(filepath.Dir(rel)),
			File:      d.Name(),
		}
		if seen[hit] {
			return nil
		}
		seen[hit] = true
		result.Hits = append(result.Hits, hit)
		logrus.Debugf("Detected %s manifest %s in %s", hit.Ecosystem, hit.File, hit.Directory)
		return nil
	})
	if err != nil {
		return nil, err
	}

	SortHits(result.Hits)
	logrus.Debugf("Scan found %d manifests (%d warnings)", len(result.Hits), len(result.Warnings))
	return result, nil
}

// relative converts an absolute walk path to a slash-separated root-relative one.
func (s *FilesystemScanner) relative(p string) string {
	rel, err := filepath.Rel(s.rootPath, p)
	if err != nil {
		return p
	}
	return filepath.ToSlash(rel)
}

// skipDirectory reports whether the walker should prune a directory.
// Version-control metadata is always pruned; other hidden directories are
// pruned except .github at the repository root, which path-qualified
// signatures (GitHub Actions workflows) need to see.
func skipDirectory(name, rel string) bool {
	switch name {
	case ".git", ".hg", ".svn":
		return true
	}
	if !strings.HasPrefix(name, ".") {
		return false
	}
	return rel != ".github" && !strings.HasPrefix(rel, ".github/")
}

// NormalizeDirectory converts a root-relative directory to the form used in
// the generated configuration: "/" for the repository root, otherwise a
// slash-separated path with a leading slash and no trailing slash.
func NormalizeDirectory(dir string) string {
	dir = filepath.ToSlash(dir)
	dir = strings.Trim(dir, "/")
	if dir == "" || dir == "." {
		return "/"
	}
	return "/" + dir
}

// SortHits orders hits by ecosystem, directory and file so downstream stages
// see a deterministic sequence regardless of walk order.
func SortHits(hits []types.ScanHit) {
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Ecosystem != hits[j].Ecosystem {
			return hits[i].Ecosystem < hits[j].Ecosystem
		}
		if hits[i].Directory != hits[j].Directory {
			return hits[i].Directory < hits[j].Directory
		}
		return hits[i].File < hits[j].File
	})
}
