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

package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlaudaDevops/toolbox/dependabot-configurator/pkg/config"
)

// newTestPipeline builds a pipeline over a temp repository with defaults applied
func newTestPipeline(t *testing.T, repoPath string) *Pipeline {
	t.Helper()
	cfg := config.NewConfigReader().ApplyDefaults(&config.ConfiguratorConfig{})
	return NewPipeline(&Config{
		ConfiguratorConfig: *cfg,
		RepoPath:           repoPath,
	})
}

// seedRepo creates files (relative slash paths, path=content) under root
func seedRepo(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}
}

func TestPipeline_Generate(t *testing.T) {
	root := t.TempDir()
	seedRepo(t, root, map[string]string{
		"go.mod":           "module example.com/app\n",
		"web/package.json": "{}",
		"README.md":        "readme",
	})

	p := newTestPipeline(t, root)
	summary, outputPath, err := p.generate()
	require.NoError(t, err)

	assert.Equal(t, 2, summary.VersionEntries)
	assert.Equal(t, 2, summary.SecurityEntries)
	assert.Equal(t, []string{"gomod", "npm"}, summary.Ecosystems)
	assert.Equal(t, []string{"/", "/web"}, summary.Directories)
	assert.True(t, summary.Changed)
	assert.Empty(t, summary.Warnings)

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	out := string(data)
	assert.True(t, strings.HasPrefix(out, "version: 2\n"))
	assert.Contains(t, out, "package-ecosystem: gomod")
	assert.Contains(t, out, "package-ecosystem: npm")
	assert.Contains(t, out, "prodsec:")
}

func TestPipeline_Generate_SettingsRules(t *testing.T) {
	root := t.TempDir()
	seedRepo(t, root, map[string]string{
		"go.mod":                   "module example.com/app\n",
		"vendor/lib/go.mod":        "module vendored\n",
		"requirements_dev.txt":     "pytest\n",
		".github/.configurator_settings.yml": `
ignore-directory:
  - vendor
ignore-version-updates-for-files:
  - "*_dev.txt"
`,
	})

	p := newTestPipeline(t, root)
	summary, outputPath, err := p.generate()
	require.NoError(t, err)

	// gomod at / gets both entries; vendor is excluded; pip at / is
	// demoted to security-only by the file pattern
	assert.Equal(t, 1, summary.VersionEntries)
	assert.Equal(t, 2, summary.SecurityEntries)
	assert.Equal(t, []string{"gomod", "pip"}, summary.Ecosystems)

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "/vendor")
}

func TestPipeline_Generate_ZeroQuota(t *testing.T) {
	root := t.TempDir()
	seedRepo(t, root, map[string]string{
		"go.mod": "module example.com/app\n",
	})

	p := newTestPipeline(t, root)
	zero := 0
	p.config.Generate.OpenPullRequestsLimit = &zero

	summary, _, err := p.generate()
	require.NoError(t, err)
	assert.Equal(t, 0, summary.VersionEntries)
	assert.Equal(t, 1, summary.SecurityEntries)
}

func TestPipeline_Generate_Deterministic(t *testing.T) {
	root := t.TempDir()
	seedRepo(t, root, map[string]string{
		"go.mod":           "module example.com/app\n",
		"web/package.json": "{}",
	})

	p := newTestPipeline(t, root)

	summary, outputPath, err := p.generate()
	require.NoError(t, err)
	assert.True(t, summary.Changed)

	first, err := os.ReadFile(outputPath)
	require.NoError(t, err)

	// A second run over the unchanged tree produces identical bytes and
	// reports no change
	summary, _, err = p.generate()
	require.NoError(t, err)
	assert.False(t, summary.Changed)

	second, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPipeline_Generate_CustomOutputPath(t *testing.T) {
	root := t.TempDir()
	seedRepo(t, root, map[string]string{
		"go.mod": "module example.com/app\n",
	})

	p := newTestPipeline(t, root)
	p.config.Generate.Output = "out/dependabot.yml"

	_, outputPath, err := p.generate()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "out", "dependabot.yml"), outputPath)

	_, err = os.Stat(outputPath)
	assert.NoError(t, err)
}

func TestPipeline_Generate_InvalidSettingsAborts(t *testing.T) {
	root := t.TempDir()
	seedRepo(t, root, map[string]string{
		"go.mod":                             "module example.com/app\n",
		".github/.configurator_settings.yml": "registries:\n  - name: r\n    type: unknown-type\n    url: https://x\n    token: t\n",
	})

	p := newTestPipeline(t, root)
	_, _, err := p.generate()
	require.Error(t, err)

	// Nothing may be written when generation fails
	_, statErr := os.Stat(filepath.Join(root, ".github", "dependabot.yml"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestPipeline_Run_NoGitOperationsWhenUnchanged(t *testing.T) {
	root := t.TempDir()
	seedRepo(t, root, map[string]string{
		"go.mod": "module example.com/app\n",
	})

	p := newTestPipeline(t, root)

	// First run writes the document; pushBranch/autoCreate default to
	// false so the pipeline stops after generation
	require.NoError(t, p.Run())
	// Second run sees no change and also stops cleanly
	require.NoError(t, p.Run())
}

func TestGenerateBranchName(t *testing.T) {
	p := newTestPipeline(t, "/tmp")
	name := p.generateBranchName("0123456789abcdef")
	assert.Equal(t, "configurator/dependabot-config-0123456", name)
}
