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

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlaudaDevops/toolbox/dependabot-configurator/pkg/types"
)

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func TestReadExternalConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	content := `
repo:
  url: https://github.com/example/repo.git
  branch: develop
generate:
  openPullRequestsLimit: 3
  transitiveSecurity: true
  output: custom/dependabot.yml
git:
  provider: gitlab
  baseURL: https://gitlab.example.com
  token: secret
pr:
  autoCreate: true
  labels: [dependencies]
scripts:
  preGenerate:
    script: make generate-manifests
    timeout: 5m
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := NewConfigReader().ReadExternalConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://github.com/example/repo.git", cfg.Repo.URL)
	assert.Equal(t, "develop", cfg.Repo.Branch)
	require.NotNil(t, cfg.Generate.OpenPullRequestsLimit)
	assert.Equal(t, 3, *cfg.Generate.OpenPullRequestsLimit)
	assert.True(t, cfg.Generate.IsTransitiveSecurity())
	assert.Equal(t, "custom/dependabot.yml", cfg.Generate.Output)
	assert.Equal(t, "gitlab", cfg.Git.Provider)
	assert.True(t, cfg.PR.NeedCreatePR())
	assert.Equal(t, []string{"dependencies"}, cfg.PR.Labels)
	require.NotNil(t, cfg.Scripts.PreGenerate)
	assert.Equal(t, "make generate-manifests", cfg.Scripts.PreGenerate.Script)
}

func TestReadExternalConfig_EmptyPath(t *testing.T) {
	cfg, err := NewConfigReader().ReadExternalConfig("")
	require.NoError(t, err)
	assert.Equal(t, &ConfiguratorConfig{}, cfg)
}

func TestReadExternalConfig_MissingFile(t *testing.T) {
	_, err := NewConfigReader().ReadExternalConfig("/nonexistent/config.yml")
	assert.Error(t, err)
}

func TestMergeConfigs_LaterWins(t *testing.T) {
	base := &ConfiguratorConfig{
		Repo:     RepoConfig{URL: "https://github.com/example/base.git", Branch: "main"},
		Generate: GenerateConfig{OpenPullRequestsLimit: intPtr(3)},
	}
	override := &ConfiguratorConfig{
		Repo:     RepoConfig{Branch: "develop"},
		Generate: GenerateConfig{OpenPullRequestsLimit: intPtr(7)},
		PR:       PRConfig{AutoCreate: boolPtr(true)},
	}

	merged := NewConfigReader().MergeConfigs(base, override)

	assert.Equal(t, "https://github.com/example/base.git", merged.Repo.URL)
	assert.Equal(t, "develop", merged.Repo.Branch)
	assert.Equal(t, 7, *merged.Generate.OpenPullRequestsLimit)
	assert.True(t, merged.PR.NeedCreatePR())
}

func TestMergeConfigs_NilAndZeroLayersIgnored(t *testing.T) {
	base := &ConfiguratorConfig{
		Generate: GenerateConfig{OpenPullRequestsLimit: intPtr(0)},
	}

	merged := NewConfigReader().MergeConfigs(nil, base, &ConfiguratorConfig{})

	// A later empty layer must not clobber an explicit zero quota
	require.NotNil(t, merged.Generate.OpenPullRequestsLimit)
	assert.Equal(t, 0, *merged.Generate.OpenPullRequestsLimit)
}

func TestApplyDefaults(t *testing.T) {
	cfg := NewConfigReader().ApplyDefaults(&ConfiguratorConfig{})

	assert.Equal(t, "filesystem", cfg.Scanner.Type)
	assert.Equal(t, ".github/dependabot.yml", cfg.Generate.Output)
	assert.Equal(t, "main", cfg.Repo.Branch)
	assert.Equal(t, 5, cfg.Generate.Limit())
	assert.False(t, cfg.Generate.IsTransitiveSecurity())
	assert.False(t, cfg.PR.NeedCreatePR())
	assert.False(t, cfg.PR.NeedPushBranch())
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := NewConfigReader().ApplyDefaults(&ConfiguratorConfig{
		Generate: GenerateConfig{OpenPullRequestsLimit: intPtr(0), Output: "out.yml"},
		Repo:     RepoConfig{Branch: "release"},
	})

	assert.Equal(t, 0, cfg.Generate.Limit())
	assert.Equal(t, "out.yml", cfg.Generate.Output)
	assert.Equal(t, "release", cfg.Repo.Branch)
}

func TestValidate(t *testing.T) {
	reader := NewConfigReader()

	assert.NoError(t, reader.Validate(&ConfiguratorConfig{}))
	assert.NoError(t, reader.Validate(&ConfiguratorConfig{
		Generate: GenerateConfig{OpenPullRequestsLimit: intPtr(0)},
	}))

	err := reader.Validate(&ConfiguratorConfig{
		Generate: GenerateConfig{OpenPullRequestsLimit: intPtr(-1)},
	})
	require.Error(t, err)

	var configErr *types.ConfigurationError
	require.True(t, errors.As(err, &configErr))
	assert.Equal(t, "generate.openPullRequestsLimit", configErr.Key)
}

func TestPRConfig_NeedPushBranch(t *testing.T) {
	// autoCreate implies pushing the branch
	cfg := PRConfig{AutoCreate: boolPtr(true)}
	assert.True(t, cfg.NeedPushBranch())

	cfg = PRConfig{PushBranch: boolPtr(true)}
	assert.True(t, cfg.NeedPushBranch())
	assert.False(t, cfg.NeedCreatePR())

	cfg = PRConfig{}
	assert.False(t, cfg.NeedPushBranch())
}
