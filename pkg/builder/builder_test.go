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

package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlaudaDevops/toolbox/dependabot-configurator/pkg/dependabot"
	"github.com/AlaudaDevops/toolbox/dependabot-configurator/pkg/ecosystem"
	"github.com/AlaudaDevops/toolbox/dependabot-configurator/pkg/rules"
	"github.com/AlaudaDevops/toolbox/dependabot-configurator/pkg/settings"
)

func defaultOptions() Options {
	return Options{
		OpenPullRequestsLimit: 5,
		MainBranch:            "main",
	}
}

func TestBuild_FullPairGetsVersionAndSecurityEntry(t *testing.T) {
	b := New(&settings.Settings{}, defaultOptions())
	config := b.Build([]rules.Pair{
		{Ecosystem: ecosystem.GoMod, Directory: "/", Eligibility: rules.Full},
	})

	assert.Equal(t, 2, config.Version)
	require.Len(t, config.Updates, 2)

	version := config.Updates[0]
	assert.Equal(t, "gomod", version.PackageEcosystem)
	assert.Equal(t, "/", version.Directory)
	assert.False(t, version.IsSecurityEntry())
	assert.Equal(t, 5, version.OpenPullRequestsLimit)
	assert.Equal(t, "main", version.TargetBranch)
	assert.Equal(t, []dependabot.Allow{{DependencyType: "direct"}}, version.Allow)
	assert.Equal(t, []string{"version-update", "dependencies"}, version.Labels)
	require.Contains(t, version.Groups, "gomod_updates")
	assert.Equal(t, "version-updates", version.Groups["gomod_updates"].AppliesTo)
	assert.Equal(t, []string{"minor", "patch"}, version.Groups["gomod_updates"].UpdateTypes)

	security := config.Updates[1]
	assert.True(t, security.IsSecurityEntry())
	assert.Equal(t, 0, security.OpenPullRequestsLimit)
	assert.Empty(t, security.TargetBranch)
	assert.Equal(t, []dependabot.Allow{{DependencyType: "direct"}}, security.Allow)
	assert.Equal(t, []string{"security-update", "dependencies"}, security.Labels)
	assert.Equal(t, "security-updates", security.Groups[dependabot.SecurityGroup].AppliesTo)
}

func TestBuild_GroupNameUsesUnderscores(t *testing.T) {
	b := New(&settings.Settings{}, defaultOptions())
	config := b.Build([]rules.Pair{
		{Ecosystem: ecosystem.GitHubActions, Directory: "/", Eligibility: rules.Full},
	})

	require.Len(t, config.Updates, 2)
	assert.Contains(t, config.Updates[0].Groups, "github_actions_updates")
}

func TestBuild_SecurityOnlyPairSkipsVersionEntry(t *testing.T) {
	b := New(&settings.Settings{}, defaultOptions())
	config := b.Build([]rules.Pair{
		{Ecosystem: ecosystem.Pip, Directory: "/", Eligibility: rules.SecurityOnly},
	})

	require.Len(t, config.Updates, 1)
	assert.True(t, config.Updates[0].IsSecurityEntry())
}

func TestBuild_ExcludedPairProducesNothing(t *testing.T) {
	b := New(&settings.Settings{}, defaultOptions())
	config := b.Build([]rules.Pair{
		{Ecosystem: ecosystem.GoMod, Directory: "/vendor", Eligibility: rules.Excluded},
	})

	assert.NotNil(t, config.Updates)
	assert.Empty(t, config.Updates)
}

func TestBuild_ZeroQuotaIsGlobalSecurityOnly(t *testing.T) {
	options := defaultOptions()
	options.OpenPullRequestsLimit = 0

	b := New(&settings.Settings{}, options)
	config := b.Build([]rules.Pair{
		{Ecosystem: ecosystem.GoMod, Directory: "/", Eligibility: rules.Full},
		{Ecosystem: ecosystem.NPM, Directory: "/web", Eligibility: rules.Full},
	})

	require.Len(t, config.Updates, 2)
	for _, update := range config.Updates {
		assert.True(t, update.IsSecurityEntry())
	}
}

func TestBuild_TransitiveSecurityWidensAllowScope(t *testing.T) {
	options := defaultOptions()
	options.TransitiveSecurity = true

	b := New(&settings.Settings{}, options)
	config := b.Build([]rules.Pair{
		{Ecosystem: ecosystem.GoMod, Directory: "/", Eligibility: rules.Full},
	})

	require.Len(t, config.Updates, 2)
	// Version entries always stay direct-only
	assert.Equal(t, "direct", config.Updates[0].Allow[0].DependencyType)
	assert.Equal(t, "all", config.Updates[1].Allow[0].DependencyType)
}

func TestBuild_EntryOrdering(t *testing.T) {
	b := New(&settings.Settings{}, defaultOptions())
	config := b.Build([]rules.Pair{
		{Ecosystem: ecosystem.NPM, Directory: "/web", Eligibility: rules.Full},
		{Ecosystem: ecosystem.Docker, Directory: "/images/runtime", Eligibility: rules.Full},
		{Ecosystem: ecosystem.Docker, Directory: "/images/base", Eligibility: rules.Full},
	})

	type key struct {
		eco, dir string
		security bool
	}
	var got []key
	for _, update := range config.Updates {
		got = append(got, key{update.PackageEcosystem, update.Directory, update.IsSecurityEntry()})
	}

	want := []key{
		{"docker", "/images/base", false},
		{"docker", "/images/base", true},
		{"docker", "/images/runtime", false},
		{"docker", "/images/runtime", true},
		{"npm", "/web", false},
		{"npm", "/web", true},
	}
	assert.Equal(t, want, got)
}

func TestBuild_IgnoreRulesAttachToVersionEntriesOnly(t *testing.T) {
	doc := &settings.Settings{
		IgnoreDependencies: []settings.DependencyIgnore{
			{
				PackageEcosystem: ecosystem.GoMod,
				DependencyName:   "github.com/example/legacy",
				UpdateTypes:      []string{"version-update:semver-major"},
			},
			{
				PackageEcosystem: ecosystem.NPM,
				DependencyName:   "lodash",
			},
		},
	}

	b := New(doc, defaultOptions())
	config := b.Build([]rules.Pair{
		{Ecosystem: ecosystem.GoMod, Directory: "/", Eligibility: rules.Full},
	})

	require.Len(t, config.Updates, 2)

	version := config.Updates[0]
	require.Len(t, version.Ignore, 1)
	assert.Equal(t, "github.com/example/legacy", version.Ignore[0].DependencyName)
	assert.Equal(t, []string{"version-update:semver-major"}, version.Ignore[0].UpdateTypes)

	assert.Empty(t, config.Updates[1].Ignore, "security entries must never carry ignore rules")
}

func TestBuild_RegistryScoping(t *testing.T) {
	doc := &settings.Settings{
		Registries: []settings.Registry{
			{Name: "universal-proxy", Type: "maven-repository", URL: "https://proxy.example.com", Token: "t"},
			{Name: "company-npm", Type: "npm-registry", URL: "https://npm.example.com", Token: "t",
				AppliesTo: []ecosystem.Ecosystem{ecosystem.NPM}},
		},
	}

	b := New(doc, defaultOptions())
	config := b.Build([]rules.Pair{
		{Ecosystem: ecosystem.GoMod, Directory: "/", Eligibility: rules.Full},
		{Ecosystem: ecosystem.NPM, Directory: "/web", Eligibility: rules.Full},
	})

	assert.Equal(t, []string{"universal-proxy", "company-npm"}, config.Registries.Names())

	require.Len(t, config.Updates, 4)
	assert.Equal(t, []string{"universal-proxy"}, config.Updates[0].Registries)
	assert.Equal(t, []string{"universal-proxy"}, config.Updates[1].Registries)
	assert.Equal(t, []string{"universal-proxy", "company-npm"}, config.Updates[2].Registries)
	assert.Equal(t, []string{"universal-proxy", "company-npm"}, config.Updates[3].Registries)
}

func TestBuild_EveryEntrySharesTheSameSchedule(t *testing.T) {
	b := New(&settings.Settings{}, defaultOptions())
	config := b.Build([]rules.Pair{
		{Ecosystem: ecosystem.Docker, Directory: "/", Eligibility: rules.Full},
		{Ecosystem: ecosystem.GoMod, Directory: "/", Eligibility: rules.Full},
	})

	require.NotEmpty(t, config.Updates)
	for _, update := range config.Updates {
		assert.Equal(t, weeklySchedule, update.Schedule)
	}
}
