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

// Package rules applies the directory- and file-level ignore rules from the
// settings document to scan results
package rules

import (
	"path"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/AlaudaDevops/toolbox/dependabot-configurator/pkg/ecosystem"
	"github.com/AlaudaDevops/toolbox/dependabot-configurator/pkg/settings"
	"github.com/AlaudaDevops/toolbox/dependabot-configurator/pkg/types"
)

// Eligibility is the tri-state update eligibility of an (ecosystem, directory) pair.
type Eligibility int

const (
	// Excluded drops both version and security updates for the pair.
	// Directory exclusion is terminal: no other rule can promote the pair
	// back to eligible.
	Excluded Eligibility = iota
	// SecurityOnly suppresses the version update but preserves the security update
	SecurityOnly
	// Full allows both version and security updates
	Full
)

// String returns the eligibility name for logging
func (e Eligibility) String() string {
	switch e {
	case Excluded:
		return "excluded"
	case SecurityOnly:
		return "security-only"
	default:
		return "full"
	}
}

// Pair is an (ecosystem, directory) pair with its evaluated eligibility.
type Pair struct {
	// Ecosystem is the package ecosystem of the pair
	Ecosystem ecosystem.Ecosystem
	// Directory is the normalized root-relative directory
	Directory string
	// Files are the matched manifest basenames that produced the pair
	Files []string
	// Eligibility is the evaluated tri-state eligibility
	Eligibility Eligibility
}

// Engine evaluates ignore rules against scan hits
type Engine struct {
	// ignoreDirectories are directory-path prefixes that exclude a pair entirely
	ignoreDirectories []string
	// ignoreFilePatterns are basename globs that demote a pair to security-only
	ignoreFilePatterns []string
}

// NewEngine creates a rule engine for the given settings document
func NewEngine(doc *settings.Settings) *Engine {
	return &Engine{
		ignoreDirectories:  doc.IgnoreDirectories,
		ignoreFilePatterns: doc.IgnoreFilePatterns,
	}
}

// Evaluate collapses hits into (ecosystem, directory) pairs and assigns each
// an eligibility. Directory rules are evaluated first and win over file
// pattern rules when both apply. Input hits must already be sorted; the
// returned pairs keep that order (ecosystem ascending, directory ascending).
func (e *Engine) Evaluate(hits []types.ScanHit) []Pair {
	var pairs []Pair

	for _, hit := range hits {
		if len(pairs) > 0 {
			last := &pairs[len(pairs)-1]
			if last.Ecosystem == hit.Ecosystem && last.Directory == hit.Directory {
				last.Files = append(last.Files, hit.File)
				continue
			}
		}
		pairs = append(pairs, Pair{
			Ecosystem: hit.Ecosystem,
			Directory: hit.Directory,
			Files:     []string{hit.File},
		})
	}

	for i := range pairs {
		pairs[i].Eligibility = e.evaluatePair(&pairs[i])
	}
	return pairs
}

// evaluatePair computes the eligibility of a single pair
func (e *Engine) evaluatePair(pair *Pair) Eligibility {
	if rule, ok := e.directoryIgnored(pair.Directory); ok {
		logrus.Infof("Excluding %s updates in %s: ignored directory %s", pair.Ecosystem, pair.Directory, rule)
		return Excluded
	}
	if pattern, ok := e.fileIgnored(pair.Files); ok {
		logrus.Infof("Suppressing %s version updates in %s: file pattern %s", pair.Ecosystem, pair.Directory, pattern)
		return SecurityOnly
	}
	return Full
}

// directoryIgnored reports whether the directory matches an ignore prefix,
// either exactly or as a subdirectory of it.
func (e *Engine) directoryIgnored(dir string) (string, bool) {
	normalized := strings.Trim(dir, "/")
	for _, rule := range e.ignoreDirectories {
		prefix := strings.Trim(rule, "/")
		if normalized == prefix || strings.HasPrefix(normalized, prefix+"/") {
			return rule, true
		}
	}
	return "", false
}

// fileIgnored reports whether any manifest basename matches an ignore
// pattern. Matching is glob-style and case-sensitive.
func (e *Engine) fileIgnored(files []string) (string, bool) {
	for _, file := range files {
		for _, pattern := range e.ignoreFilePatterns {
			if ok, _ := path.Match(pattern, file); ok {
				return pattern, true
			}
		}
	}
	return "", false
}
