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

package pr

import (
	"fmt"
	"strings"

	"github.com/AlaudaDevops/toolbox/dependabot-configurator/pkg/config"
	"github.com/AlaudaDevops/toolbox/dependabot-configurator/pkg/types"
)

type PRCreateOption struct {
	Labels    []string                `json:"labels" yaml:"labels"`
	Assignees []string                `json:"assignees" yaml:"assignees"`
	Summary   types.GenerationSummary `json:"summary" yaml:"summary"`
}

// PRCreator defines the interface for creating pull requests
type PRCreator interface {
	// CreatePR creates a pull request carrying the regenerated configuration
	CreatePR(repo *config.RepoConfig, sourceBranch string, option PRCreateOption) (types.PRInfo, error)

	// GetPlatformType returns the type of platform (github, gitlab, etc.)
	GetPlatformType() string
}

// NewPRCreator creates a new PRCreator based on the git provider configuration
func NewPRCreator(provider config.GitProviderConfig, workingDir string) (PRCreator, error) {
	switch provider.Provider {
	case "github":
		return NewGitHubPRCreator(provider.BaseURL, provider.Token, workingDir), nil
	case "gitlab":
		return NewGitLabPRCreator(provider.BaseURL, provider.Token, workingDir)
	default:
		return nil, fmt.Errorf("unsupported platform type: %s", provider.Provider)
	}
}

// generatePRTitle generates a title for the pull request
func generatePRTitle(summary types.GenerationSummary) string {
	if len(summary.Ecosystems) == 1 {
		return fmt.Sprintf("chore: update dependabot configuration for %s", summary.Ecosystems[0])
	}
	return fmt.Sprintf("chore: update dependabot configuration (%d ecosystems)", len(summary.Ecosystems))
}

// GeneratePRBody generates the body/description for the pull request
func GeneratePRBody(summary types.GenerationSummary) string {
	var body strings.Builder

	body.WriteString("## 🤖 Dependabot Configuration Update\n\n")
	body.WriteString("This pull request updates `.github/dependabot.yml` from the current repository layout ")
	body.WriteString("and the rules in `.github/.configurator_settings.yml`.\n\n")

	body.WriteString("## 📊 Generation Summary\n\n")
	body.WriteString(fmt.Sprintf("- **Version update entries**: %d\n", summary.VersionEntries))
	body.WriteString(fmt.Sprintf("- **Security update entries**: %d\n", summary.SecurityEntries))
	if len(summary.Ecosystems) > 0 {
		body.WriteString(fmt.Sprintf("- **Ecosystems**: %s\n", strings.Join(summary.Ecosystems, ", ")))
	}
	if len(summary.Directories) > 0 {
		body.WriteString(fmt.Sprintf("- **Directories**: %s\n", strings.Join(summary.Directories, ", ")))
	}

	if len(summary.Warnings) > 0 {
		body.WriteString("\n## ⚠️ Scan Warnings\n\n")
		for _, warning := range summary.Warnings {
			body.WriteString(fmt.Sprintf("- %s\n", warning))
		}
	}

	body.WriteString("\nThe document is regenerated deterministically; merging an unchanged ")
	body.WriteString("configuration is always a no-op.\n")

	return body.String()
}
