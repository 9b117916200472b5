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

// Package builder assembles update entries from eligible (ecosystem,
// directory) pairs into a dependabot configuration document
package builder

import (
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/AlaudaDevops/toolbox/dependabot-configurator/pkg/dependabot"
	"github.com/AlaudaDevops/toolbox/dependabot-configurator/pkg/ecosystem"
	"github.com/AlaudaDevops/toolbox/dependabot-configurator/pkg/rules"
	"github.com/AlaudaDevops/toolbox/dependabot-configurator/pkg/settings"
)

// Options are the run parameters supplied by the orchestration layer
type Options struct {
	// OpenPullRequestsLimit is the version-update quota. Zero disables
	// version entries entirely (global security-only mode).
	OpenPullRequestsLimit int
	// MainBranch is the target branch for version-update pull requests
	MainBranch string
	// TransitiveSecurity extends security entries to transitive dependencies
	TransitiveSecurity bool
}

// weeklySchedule is the single fixed cadence shared by every generated entry
var weeklySchedule = dependabot.Schedule{
	Interval: "weekly",
	Day:      "monday",
	Time:     "08:00",
	Timezone: "America/Chicago",
}

// Builder turns eligible pairs into a dependabot configuration document
type Builder struct {
	// doc is the validated settings document
	doc *settings.Settings
	// options are the run parameters
	options Options
}

// New creates a builder for the given settings document and run parameters
func New(doc *settings.Settings, options Options) *Builder {
	return &Builder{
		doc:     doc,
		options: options,
	}
}

// Build constructs the configuration document. Every full or security-only
// pair receives a security entry; a version entry is added only when the
// pair is full and the quota is non-zero. Entries are ordered by ecosystem id
// ascending, then directory ascending, version before security within a pair.
func (b *Builder) Build(pairs []rules.Pair) *dependabot.Config {
	sorted := make([]rules.Pair, len(pairs))
	copy(sorted, pairs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Ecosystem != sorted[j].Ecosystem {
			return sorted[i].Ecosystem < sorted[j].Ecosystem
		}
		return sorted[i].Directory < sorted[j].Directory
	})

	config := &dependabot.Config{
		Version:    2,
		Registries: b.buildRegistries(),
	}
	config.Updates = []dependabot.Update{}

	for _, pair := range sorted {
		if pair.Eligibility == rules.Excluded {
			continue
		}

		if pair.Eligibility == rules.Full && b.options.OpenPullRequestsLimit > 0 {
			config.Updates = append(config.Updates, b.buildVersionEntry(pair))
		}
		config.Updates = append(config.Updates, b.buildSecurityEntry(pair))
	}

	logrus.Debugf("Built %d update entries from %d pairs", len(config.Updates), len(pairs))
	return config
}

// buildVersionEntry constructs a version-update entry for a fully eligible
// pair. Version updates are always restricted to direct dependencies; that is
// a fixed product decision, not a configurable one.
func (b *Builder) buildVersionEntry(pair rules.Pair) dependabot.Update {
	groupName := strings.ReplaceAll(string(pair.Ecosystem), "-", "_") + "_updates"

	return dependabot.Update{
		PackageEcosystem:      string(pair.Ecosystem),
		Directory:             pair.Directory,
		Schedule:              weeklySchedule,
		Allow:                 []dependabot.Allow{{DependencyType: "direct"}},
		OpenPullRequestsLimit: b.options.OpenPullRequestsLimit,
		Groups: map[string]dependabot.Group{
			groupName: {
				AppliesTo:   "version-updates",
				UpdateTypes: []string{"minor", "patch"},
			},
		},
		TargetBranch: b.options.MainBranch,
		Labels:       []string{"version-update", "dependencies"},
		Ignore:       b.buildIgnores(pair.Ecosystem),
		Registries:   b.assignRegistries(pair.Ecosystem),
	}
}

// buildSecurityEntry constructs the always-present security entry for a pair.
// The transitive-security flag is the single override point that widens the
// scope from direct to all dependencies.
func (b *Builder) buildSecurityEntry(pair rules.Pair) dependabot.Update {
	dependencyType := "direct"
	if b.options.TransitiveSecurity {
		dependencyType = "all"
	}

	return dependabot.Update{
		PackageEcosystem:      string(pair.Ecosystem),
		Directory:             pair.Directory,
		Schedule:              weeklySchedule,
		Allow:                 []dependabot.Allow{{DependencyType: dependencyType}},
		OpenPullRequestsLimit: 0,
		Groups: map[string]dependabot.Group{
			dependabot.SecurityGroup: {
				AppliesTo:   "security-updates",
				UpdateTypes: []string{"minor", "patch"},
			},
		},
		Labels:     []string{"security-update", "dependencies"},
		Registries: b.assignRegistries(pair.Ecosystem),
	}
}

// buildIgnores collects the dependency-ignore rules whose ecosystem matches,
// in settings order. The update-type filters are opaque to the builder and
// pass through unmodified; security entries never carry ignore rules so that
// a vulnerability fix is never suppressed.
func (b *Builder) buildIgnores(eco ecosystem.Ecosystem) []dependabot.IgnoreEntry {
	var ignores []dependabot.IgnoreEntry
	for _, rule := range b.doc.IgnoreDependencies {
		if rule.PackageEcosystem != eco {
			continue
		}
		ignores = append(ignores, dependabot.IgnoreEntry{
			DependencyName: rule.DependencyName,
			UpdateTypes:    rule.UpdateTypes,
		})
	}
	return ignores
}

// assignRegistries returns the names of the registries that apply to an
// ecosystem: every universal declaration plus every scoped declaration whose
// applies-to set contains it, preserving declaration order.
func (b *Builder) assignRegistries(eco ecosystem.Ecosystem) []string {
	var names []string
	for _, registry := range b.doc.Registries {
		if registry.AppliesToEcosystem(eco) {
			names = append(names, registry.Name)
		}
	}
	return names
}

// buildRegistries converts the declared registries into their emitted form,
// dropping the generator-only applies-to field
func (b *Builder) buildRegistries() dependabot.Registries {
	var registries dependabot.Registries
	for _, registry := range b.doc.Registries {
		registries = append(registries, dependabot.NamedRegistry{
			Name: registry.Name,
			Config: dependabot.RegistryConfig{
				Type:         registry.Type,
				URL:          registry.URL,
				Username:     registry.Username,
				Password:     registry.Password,
				Token:        registry.Token,
				Key:          registry.Key,
				ReplacesBase: registry.ReplacesBase,
			},
		})
	}
	return registries
}
