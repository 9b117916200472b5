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

// Package settings provides loading and validation of the repository-level
// configurator settings document
package settings

import (
	"path"

	"github.com/AlaudaDevops/toolbox/dependabot-configurator/pkg/ecosystem"
	"github.com/AlaudaDevops/toolbox/dependabot-configurator/pkg/types"
)

// Settings is the normalized repository settings document. Every section is
// optional and independent; an absent settings file is equivalent to the zero
// value.
type Settings struct {
	// IgnoreDependencies suppresses update proposals for named dependencies
	IgnoreDependencies []DependencyIgnore `yaml:"ignore-dependency" json:"ignore-dependency"`
	// IgnoreDirectories excludes whole directory subtrees from all updates
	IgnoreDirectories []string `yaml:"ignore-directory" json:"ignore-directory"`
	// IgnoreFilePatterns suppresses version updates (security updates are
	// preserved) for manifests whose basename matches a glob pattern
	IgnoreFilePatterns []string `yaml:"ignore-version-updates-for-files" json:"ignore-version-updates-for-files"`
	// Registries declares private package registries
	Registries []Registry `yaml:"registries" json:"registries"`
	// CustomFiles declares manifests the scanner cannot detect on its own
	CustomFiles []CustomFile `yaml:"custom-files" json:"custom-files"`
}

// IsEmpty reports whether the document contains no rules at all.
func (s *Settings) IsEmpty() bool {
	return len(s.IgnoreDependencies) == 0 &&
		len(s.IgnoreDirectories) == 0 &&
		len(s.IgnoreFilePatterns) == 0 &&
		len(s.Registries) == 0 &&
		len(s.CustomFiles) == 0
}

// DependencyIgnore suppresses updates for a dependency within one ecosystem.
type DependencyIgnore struct {
	// PackageEcosystem scopes the rule to one ecosystem
	PackageEcosystem ecosystem.Ecosystem `yaml:"package-ecosystem" json:"package-ecosystem"`
	// DependencyName is the dependency name pattern to ignore
	DependencyName string `yaml:"dependency-name" json:"dependency-name"`
	// UpdateTypes restricts the rule to specific semver change classes.
	// Empty means all update types are ignored. The values are passed through
	// to the generated configuration unmodified.
	UpdateTypes []string `yaml:"update-types" json:"update-types"`
}

// Registry declares a private package-source endpoint.
type Registry struct {
	// Name identifies the registry; update entries reference it by name
	Name string `yaml:"name" json:"name"`
	// Type is one of the registry types supported by Dependabot
	Type string `yaml:"type" json:"type"`
	// URL is the registry endpoint
	URL string `yaml:"url" json:"url"`
	// Username and Password authenticate against basic-auth registries
	Username string `yaml:"username,omitempty" json:"username,omitempty"`
	Password string `yaml:"password,omitempty" json:"password,omitempty"`
	// Token authenticates against token-based registries
	Token string `yaml:"token,omitempty" json:"token,omitempty"`
	// Key authenticates against key-based registries
	Key string `yaml:"key,omitempty" json:"key,omitempty"`
	// ReplacesBase replaces the ecosystem's default source when true
	ReplacesBase bool `yaml:"replaces-base,omitempty" json:"replaces-base,omitempty"`
	// AppliesTo scopes the registry to specific ecosystems; empty marks the
	// registry universal
	AppliesTo []ecosystem.Ecosystem `yaml:"applies-to,omitempty" json:"applies-to,omitempty"`
}

// IsUniversal reports whether the registry applies to every ecosystem.
func (r Registry) IsUniversal() bool {
	return len(r.AppliesTo) == 0
}

// AppliesToEcosystem reports whether the registry applies to the given ecosystem.
func (r Registry) AppliesToEcosystem(eco ecosystem.Ecosystem) bool {
	if r.IsUniversal() {
		return true
	}
	for _, scoped := range r.AppliesTo {
		if scoped == eco {
			return true
		}
	}
	return false
}

// CustomFile declares a manifest file that auto-detection would miss.
type CustomFile struct {
	// Path is the root-relative path of the manifest
	Path string `yaml:"path" json:"path"`
	// Manager is the ecosystem the manifest belongs to
	Manager ecosystem.Ecosystem `yaml:"manager" json:"manager"`
}

// registryTypes is the fixed set of registry types Dependabot supports.
// Unknown types are rejected rather than passed through verbatim.
var registryTypes = map[string]bool{
	"composer-repository": true,
	"docker-registry":     true,
	"git":                 true,
	"hex-organization":    true,
	"hex-repository":      true,
	"maven-repository":    true,
	"npm-registry":        true,
	"nuget-feed":          true,
	"python-index":        true,
	"rubygems-server":     true,
	"terraform-registry":  true,
}

// updateTypes is the fixed set of semver change classes an ignore rule may name.
var updateTypes = map[string]bool{
	"version-update:semver-major": true,
	"version-update:semver-minor": true,
	"version-update:semver-patch": true,
}

// Validate checks every rule in the document and returns a ConfigurationError
// naming the offending key and value on the first violation. A silently
// dropped rule would produce an under-restricted configuration, so nothing is
// skipped or defaulted here.
func (s *Settings) Validate() error {
	for _, ignore := range s.IgnoreDependencies {
		if !ecosystem.IsValid(string(ignore.PackageEcosystem)) {
			return types.NewConfigurationError("ignore-dependency.package-ecosystem",
				string(ignore.PackageEcosystem), "unsupported package ecosystem")
		}
		if ignore.DependencyName == "" {
			return types.NewConfigurationError("ignore-dependency.dependency-name",
				"", "dependency name is required")
		}
		for _, updateType := range ignore.UpdateTypes {
			if !updateTypes[updateType] {
				return types.NewConfigurationError("ignore-dependency.update-types",
					updateType, "unsupported update type")
			}
		}
	}

	for _, dir := range s.IgnoreDirectories {
		if dir == "" {
			return types.NewConfigurationError("ignore-directory", "", "directory prefix cannot be empty")
		}
	}

	for _, pattern := range s.IgnoreFilePatterns {
		if pattern == "" {
			return types.NewConfigurationError("ignore-version-updates-for-files",
				"", "file pattern cannot be empty")
		}
		if _, err := path.Match(pattern, "probe"); err != nil {
			return types.NewConfigurationError("ignore-version-updates-for-files",
				pattern, "malformed glob pattern")
		}
	}

	names := map[string]bool{}
	for _, registry := range s.Registries {
		if registry.Name == "" {
			return types.NewConfigurationError("registries.name", "", "registry name is required")
		}
		if names[registry.Name] {
			return types.NewConfigurationError("registries.name", registry.Name, "duplicate registry name")
		}
		names[registry.Name] = true
		if !registryTypes[registry.Type] {
			return types.NewConfigurationError("registries.type", registry.Type, "unsupported registry type")
		}
		if registry.URL == "" {
			return types.NewConfigurationError("registries.url", "",
				"registry "+registry.Name+" requires a url")
		}
		if registry.Username == "" && registry.Password == "" && registry.Token == "" && registry.Key == "" {
			return types.NewConfigurationError("registries", registry.Name,
				"at least one credential field (username/password/token/key) is required")
		}
		for _, eco := range registry.AppliesTo {
			if !ecosystem.IsValid(string(eco)) {
				return types.NewConfigurationError("registries.applies-to",
					string(eco), "unsupported package ecosystem")
			}
		}
	}

	for _, custom := range s.CustomFiles {
		if custom.Path == "" {
			return types.NewConfigurationError("custom-files.path", "", "path is required")
		}
		if !ecosystem.IsValid(string(custom.Manager)) {
			return types.NewConfigurationError("custom-files.manager",
				string(custom.Manager), "unsupported package ecosystem")
		}
	}

	return nil
}
