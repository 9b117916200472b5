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

// Package config provides run configuration management for the configurator
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/AlaudaDevops/toolbox/dependabot-configurator/pkg/types"
)

// ConfiguratorConfig represents the complete run configuration
type ConfiguratorConfig struct {
	// Repo contains repository information
	Repo RepoConfig `yaml:"repo" json:"repo" mapstructure:"repo"`
	// Generate contains generation parameters
	Generate GenerateConfig `yaml:"generate" json:"generate" mapstructure:"generate"`
	// Scanner contains scanner configuration
	Scanner ScannerConfig `yaml:"scanner" json:"scanner" mapstructure:"scanner"`
	// Git contains git provider configuration
	Git GitProviderConfig `yaml:"git" json:"git" mapstructure:"git"`
	// PR contains PR-specific configuration
	PR PRConfig `yaml:"pr" json:"pr" mapstructure:"pr"`
	// Notice contains notice configuration
	Notice NoticeConfig `yaml:"notice" json:"notice" mapstructure:"notice"`
	// Scripts contains custom script configuration for pipeline hooks
	Scripts ScriptsConfig `yaml:"scripts" json:"scripts" mapstructure:"scripts"`
}

// ScriptsConfig contains custom script configuration for pipeline hooks
type ScriptsConfig struct {
	// PreGenerate contains a script to execute before scanning and generation
	PreGenerate *ScriptConfig `yaml:"preGenerate" json:"preGenerate" mapstructure:"preGenerate"`
	// PreCommit contains a script to execute before committing the regenerated document
	PreCommit *ScriptConfig `yaml:"preCommit" json:"preCommit" mapstructure:"preCommit"`
}

// ScriptConfig contains configuration for a single script
type ScriptConfig struct {
	// Script contains the script content to execute
	Script string `yaml:"script" json:"script" mapstructure:"script"`
	// Timeout for script execution (e.g., "5m", "30s")
	Timeout string `yaml:"timeout" json:"timeout" mapstructure:"timeout"`
	// ContinueOnError determines whether to continue pipeline execution if script fails
	ContinueOnError bool `yaml:"continueOnError" json:"continueOnError" mapstructure:"continueOnError"`
}

type RepoConfig struct {
	// URL is the repository URL (e.g., "https://github.com/example/repo")
	URL string `yaml:"url" json:"url" mapstructure:"url"`
	// Branch is the main branch version-update PRs target (e.g., "main")
	Branch string `yaml:"branch" json:"branch" mapstructure:"branch"`
}

// GenerateConfig contains the parameters of the generation run
type GenerateConfig struct {
	// OpenPullRequestsLimit is the version-update quota. Zero generates a
	// security-only configuration.
	OpenPullRequestsLimit *int `yaml:"openPullRequestsLimit" json:"openPullRequestsLimit" mapstructure:"openPullRequestsLimit"`
	// TransitiveSecurity extends security updates to transitive dependencies
	TransitiveSecurity *bool `yaml:"transitiveSecurity" json:"transitiveSecurity" mapstructure:"transitiveSecurity"`
	// Output is the path of the generated document, relative to the repository root
	Output string `yaml:"output" json:"output" mapstructure:"output"`
}

// Limit returns the configured quota with its default fallback
func (g *GenerateConfig) Limit() int {
	if g.OpenPullRequestsLimit == nil {
		return 5
	}
	return *g.OpenPullRequestsLimit
}

// IsTransitiveSecurity returns the transitive-security flag with its default fallback
func (g *GenerateConfig) IsTransitiveSecurity() bool {
	return g.TransitiveSecurity != nil && *g.TransitiveSecurity
}

// ScannerConfig contains generic scanner configuration
type ScannerConfig struct {
	// Type specifies the scanner type (e.g., "filesystem")
	Type string `yaml:"type" json:"type" mapstructure:"type"`
}

type GitProviderConfig struct {
	// Provider is the type of git provider (e.g., "github", "gitlab")
	Provider string `yaml:"provider" json:"provider" mapstructure:"provider"`
	// BaseURL is the base URL of the git provider
	BaseURL string `yaml:"baseURL" json:"baseURL" mapstructure:"baseURL"`
	// Token is the authentication token for the git provider
	Token string `yaml:"token" json:"token" mapstructure:"token"`
}

// PRConfig contains pull request configuration
type PRConfig struct {
	AutoCreate *bool `yaml:"autoCreate" json:"autoCreate" mapstructure:"autoCreate"`
	// PushBranch controls whether to push the branch to remote repository
	PushBranch *bool `yaml:"pushBranch" json:"pushBranch" mapstructure:"pushBranch"`
	// Labels are labels to add to the created PR
	Labels []string `yaml:"labels" json:"labels" mapstructure:"labels"`
	// Assignees are users to assign to the created PR
	Assignees []string `yaml:"assignees" json:"assignees" mapstructure:"assignees"`
}

func (p *PRConfig) NeedCreatePR() bool {
	return p.AutoCreate != nil && *p.AutoCreate
}

// NeedPushBranch determines whether to push branch based on configuration.
// If autoCreate is true, the branch is pushed regardless of the explicit setting.
func (p *PRConfig) NeedPushBranch() bool {
	if p.NeedCreatePR() {
		return true
	}
	return p.PushBranch != nil && *p.PushBranch
}

type NoticeConfig struct {
	// Type is the type of notice (e.g., "wecom")
	Type string `yaml:"type" json:"type" mapstructure:"type"`
	// Params contains notice-specific parameters
	Params map[string]interface{} `yaml:"params" json:"params" mapstructure:"params"`
}

// ConfigReader handles reading and merging configuration files
type ConfigReader struct{}

// NewConfigReader creates a new configuration reader
func NewConfigReader() *ConfigReader {
	return &ConfigReader{}
}

// ReadExternalConfig reads configuration from an external file specified by CLI
func (c *ConfigReader) ReadExternalConfig(configPath string) (*ConfiguratorConfig, error) {
	if configPath == "" {
		return &ConfiguratorConfig{}, nil
	}

	logrus.Debugf("Reading external configuration: %s", configPath)

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var parsed ConfiguratorConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}
	return &parsed, nil
}

// MergeConfigs merges multiple configurations with priority order.
// Later configurations override earlier ones.
func (c *ConfigReader) MergeConfigs(configs ...*ConfiguratorConfig) *ConfiguratorConfig {
	merged := &ConfiguratorConfig{}

	for _, config := range configs {
		if config == nil {
			continue
		}

		if config.Repo.URL != "" {
			merged.Repo.URL = config.Repo.URL
		}
		if config.Repo.Branch != "" {
			merged.Repo.Branch = config.Repo.Branch
		}
		if config.Generate.OpenPullRequestsLimit != nil {
			merged.Generate.OpenPullRequestsLimit = config.Generate.OpenPullRequestsLimit
		}
		if config.Generate.TransitiveSecurity != nil {
			merged.Generate.TransitiveSecurity = config.Generate.TransitiveSecurity
		}
		if config.Generate.Output != "" {
			merged.Generate.Output = config.Generate.Output
		}
		if config.Scanner.Type != "" {
			merged.Scanner.Type = config.Scanner.Type
		}
		if config.Git.Provider != "" {
			merged.Git.Provider = config.Git.Provider
		}
		if config.Git.BaseURL != "" {
			merged.Git.BaseURL = config.Git.BaseURL
		}
		if config.Git.Token != "" {
			merged.Git.Token = config.Git.Token
		}
		if config.PR.AutoCreate != nil {
			merged.PR.AutoCreate = config.PR.AutoCreate
		}
		if config.PR.PushBranch != nil {
			merged.PR.PushBranch = config.PR.PushBranch
		}
		if len(config.PR.Labels) > 0 {
			merged.PR.Labels = config.PR.Labels
		}
		if len(config.PR.Assignees) > 0 {
			merged.PR.Assignees = config.PR.Assignees
		}
		if config.Notice.Type != "" {
			merged.Notice.Type = config.Notice.Type
		}
		if len(config.Notice.Params) > 0 {
			merged.Notice.Params = config.Notice.Params
		}
		if config.Scripts.PreGenerate != nil {
			merged.Scripts.PreGenerate = config.Scripts.PreGenerate
		}
		if config.Scripts.PreCommit != nil {
			merged.Scripts.PreCommit = config.Scripts.PreCommit
		}
	}

	return merged
}

// ApplyDefaults applies default values to configuration
func (c *ConfigReader) ApplyDefaults(config *ConfiguratorConfig) *ConfiguratorConfig {
	if config.Scanner.Type == "" {
		config.Scanner.Type = "filesystem"
	}
	if config.Generate.Output == "" {
		config.Generate.Output = ".github/dependabot.yml"
	}
	if config.Repo.Branch == "" {
		config.Repo.Branch = "main"
	}
	if config.Generate.OpenPullRequestsLimit == nil {
		defaultLimit := 5
		config.Generate.OpenPullRequestsLimit = &defaultLimit
	}
	return config
}

// Validate checks the run parameters supplied by the orchestration layer
func (c *ConfigReader) Validate(config *ConfiguratorConfig) error {
	if config.Generate.OpenPullRequestsLimit != nil && *config.Generate.OpenPullRequestsLimit < 0 {
		return types.NewConfigurationError("generate.openPullRequestsLimit",
			fmt.Sprintf("%d", *config.Generate.OpenPullRequestsLimit),
			"open pull request quota must be zero or positive")
	}
	return nil
}

// String implements fmt.Stringer interface for better debugging experience
func (c *ConfiguratorConfig) String() string {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		logrus.Errorf("Failed to marshal config to JSON: %v", err)
		return fmt.Sprintf("%+v", *c)
	}
	return string(data)
}
