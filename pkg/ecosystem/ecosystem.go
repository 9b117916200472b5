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

// Package ecosystem defines the closed set of package ecosystems supported by
// Dependabot and the file signatures used to detect them in a repository.
package ecosystem

import (
	"fmt"
	"path"
	"strings"
)

// Ecosystem identifies a package-manager ecosystem understood by Dependabot.
// The set is closed: values outside the signature table are rejected at parse
// time instead of being passed through to the generated configuration.
type Ecosystem string

const (
	Bundler       Ecosystem = "bundler"
	Cargo         Ecosystem = "cargo"
	Composer      Ecosystem = "composer"
	Docker        Ecosystem = "docker"
	Elm           Ecosystem = "elm"
	GitHubActions Ecosystem = "github-actions"
	GoMod         Ecosystem = "gomod"
	Gradle        Ecosystem = "gradle"
	Maven         Ecosystem = "maven"
	NPM           Ecosystem = "npm"
	NuGet         Ecosystem = "nuget"
	Pip           Ecosystem = "pip"
	Pub           Ecosystem = "pub"
	Swift         Ecosystem = "swift"
	Terraform     Ecosystem = "terraform"
)

// Signature maps an ecosystem to the file patterns that identify it.
// A pattern containing a "/" is matched against the full root-relative path;
// any other pattern is matched against the file basename only.
type Signature struct {
	// Ecosystem is the ecosystem this signature detects
	Ecosystem Ecosystem
	// Patterns are glob patterns in path.Match syntax
	Patterns []string
}

// signatures is the static detection table, evaluated in order.
// First match wins; the patterns are mutually exclusive by construction.
var signatures = []Signature{
	{Bundler, []string{"Gemfile", "Gemfile.lock"}},
	{Cargo, []string{"Cargo.toml", "Cargo.lock"}},
	{Composer, []string{"composer.json", "composer.lock"}},
	{Docker, []string{"Dockerfile"}},
	{Elm, []string{"elm.json"}},
	{GitHubActions, []string{".github/workflows/*.yml", ".github/workflows/*.yaml"}},
	{GoMod, []string{"go.mod", "go.sum"}},
	{Gradle, []string{"build.gradle", "build.gradle.kts"}},
	{Maven, []string{"pom.xml"}},
	{NPM, []string{"package.json", "package-lock.json", "yarn.lock"}},
	{NuGet, []string{"*.csproj", "packages.config"}},
	{Pip, []string{"requirements*.txt", "pyproject.toml", "poetry.lock", "Pipfile", "Pipfile.lock"}},
	{Pub, []string{"pubspec.yaml", "pubspec.lock"}},
	{Swift, []string{"Package.swift"}},
	{Terraform, []string{".terraform.lock.hcl"}},
}

// Signatures returns the detection table in evaluation order.
func Signatures() []Signature {
	return signatures
}

// All returns every supported ecosystem in signature table order.
func All() []Ecosystem {
	ecosystems := make([]Ecosystem, 0, len(signatures))
	for _, sig := range signatures {
		ecosystems = append(ecosystems, sig.Ecosystem)
	}
	return ecosystems
}

// Parse validates an ecosystem identifier against the signature table.
func Parse(id string) (Ecosystem, error) {
	for _, sig := range signatures {
		if string(sig.Ecosystem) == id {
			return sig.Ecosystem, nil
		}
	}
	return "", fmt.Errorf("unsupported package ecosystem: %s", id)
}

// IsValid reports whether id names a supported ecosystem.
func IsValid(id string) bool {
	_, err := Parse(id)
	return err == nil
}

// Match tests a root-relative file path against the signature table and
// returns the first matching ecosystem. Basename patterns only apply to files
// outside hidden directories; files under a hidden directory (such as
// .github) are reachable only through path-qualified patterns. Hidden file
// basenames match only patterns that themselves start with a dot.
func Match(relPath string) (Ecosystem, bool) {
	base := path.Base(relPath)
	hiddenDir := inHiddenDirectory(relPath)

	for _, sig := range signatures {
		for _, pattern := range sig.Patterns {
			if strings.Contains(pattern, "/") {
				if ok, _ := path.Match(pattern, relPath); ok {
					return sig.Ecosystem, true
				}
				continue
			}
			if hiddenDir {
				continue
			}
			if strings.HasPrefix(base, ".") && !strings.HasPrefix(pattern, ".") {
				continue
			}
			if ok, _ := path.Match(pattern, base); ok {
				return sig.Ecosystem, true
			}
		}
	}
	return "", false
}

// inHiddenDirectory reports whether any directory segment of relPath is hidden.
func inHiddenDirectory(relPath string) bool {
	segments := strings.Split(relPath, "/")
	for _, segment := range segments[:len(segments)-1] {
		if strings.HasPrefix(segment, ".") {
			return true
		}
	}
	return false
}
