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

// Package cmd provides the command line interface for the configurator
package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/AlaudaDevops/toolbox/dependabot-configurator/pkg/config"
	"github.com/AlaudaDevops/toolbox/dependabot-configurator/pkg/git"
	"github.com/AlaudaDevops/toolbox/dependabot-configurator/pkg/pipeline"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "configurator",
	Short: "Dependabot configuration generator",
	Long: `Configurator scans a repository for package ecosystem manifests and
generates a deterministic .github/dependabot.yml covering every detected
ecosystem and directory.

Each detected ecosystem/directory pair receives a version-update entry and a
security-update entry; repository maintainers tune the result through
.github/.configurator_settings.yml (ignore rules, private registries and
custom manifest locations).

Configuration can be provided via:
1. External configuration file (--config flag)
2. Command line flags and CONFIGURATOR_* environment variables (highest priority)

Example usage:
  # Local repository mode
  configurator --dir /path/to/repo
  configurator --dir /path/to/repo --generate.openPullRequestsLimit 0

  # Remote repository mode (clone + generate + PR)
  configurator --repo.url https://github.com/user/repo.git --pr.autoCreate
  configurator --repo.url git@github.com:user/repo.git --repo.branch main

  # Using external configuration file
  configurator --repo.url https://github.com/user/repo.git --config my-config.yml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigurator()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(func() {
		if viper.GetBool("debug") {
			logrus.SetLevel(logrus.DebugLevel)
			logrus.Debug("Debug logging enabled")
		} else {
			logrus.SetLevel(logrus.InfoLevel)
		}
	})
}

// runConfigurator runs the main generation pipeline
func runConfigurator() error {
	projectDirPath := viper.GetString("dir")
	repositoryURL := viper.GetString("repo.url")
	targetBranchName := viper.GetString("repo.branch")

	if cfgFile != "" {
		logrus.Infof("Using config file: %s", cfgFile)
	}

	if repositoryURL != "" && projectDirPath != "." {
		return fmt.Errorf("cannot specify both --repo.url and --dir. Use --repo.url for remote repositories or --dir for local repositories")
	}

	if repositoryURL == "" && projectDirPath == "" {
		projectDirPath = "."
	}

	// Step 0: Handle repository cloning if needed
	var workingProjectPath string

	if repositoryURL != "" {
		logrus.Infof("Cloning remote repository: %s", repositoryURL)

		if err := git.CheckGitInstalled(); err != nil {
			return fmt.Errorf("git CLI check failed: %w", err)
		}

		gitCloner := git.NewGitCloner(repositoryURL, targetBranchName)

		clonedPath, err := gitCloner.CloneRepository()
		if err != nil {
			return fmt.Errorf("failed to clone repository: %w", err)
		}
		workingProjectPath = clonedPath

		defer func() {
			if cleanupErr := gitCloner.Cleanup(); cleanupErr != nil {
				logrus.Warnf("Warning: failed to cleanup cloned repository: %v", cleanupErr)
			}
		}()
	} else {
		// Local mode: derive the repository URL and branch from the checkout.
		// Both are optional unless branch pushing or PR creation is requested.
		workingProjectPath = projectDirPath
		g := git.NewGitOperator(projectDirPath)
		if url, err := g.GetRepoURL(); err == nil && repositoryURL == "" {
			repositoryURL = url
		}
		if branch, err := g.GetCurrentBranch(); err == nil && targetBranchName == "" {
			targetBranchName = branch
		}
	}

	// Step 1: Read and merge all configurations
	logrus.Info("Reading and merging configurations...")

	configReader := config.NewConfigReader()

	externalConfig, err := configReader.ReadExternalConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to read external config: %w", err)
	}

	cliConfig := cliConfigFromFlags(repositoryURL, targetBranchName)

	// CLI config has highest priority
	finalConfig := configReader.MergeConfigs(externalConfig, cliConfig)
	finalConfig = configReader.ApplyDefaults(finalConfig)
	if err := configReader.Validate(finalConfig); err != nil {
		return err
	}

	logrus.Debugf("Final configuration: %s", finalConfig)

	// Step 2: Create and run pipeline
	pipelineConfig := &pipeline.Config{
		ConfiguratorConfig: *finalConfig,
		RepoPath:           workingProjectPath,
	}

	logrus.Info("Starting configuration generation pipeline...")
	p := pipeline.NewPipeline(pipelineConfig)
	return p.Run()
}

// cliConfigFromFlags builds the highest-priority configuration layer from
// command line flags and environment variables
func cliConfigFromFlags(repositoryURL, targetBranchName string) *config.ConfiguratorConfig {
	cliConfig := &config.ConfiguratorConfig{
		Repo: config.RepoConfig{
			URL:    repositoryURL,
			Branch: targetBranchName,
		},
		Generate: config.GenerateConfig{
			Output: viper.GetString("generate.output"),
		},
		Scanner: config.ScannerConfig{
			Type: viper.GetString("scanner.type"),
		},
		Git: config.GitProviderConfig{
			Provider: viper.GetString("git.provider"),
			BaseURL:  viper.GetString("git.baseUrl"),
			Token:    viper.GetString("git.token"),
		},
		PR: config.PRConfig{
			Labels:    viper.GetStringSlice("pr.labels"),
			Assignees: viper.GetStringSlice("pr.assignees"),
		},
	}

	// The quota flag uses -1 as "unset" so a config file value is not
	// clobbered by the flag default
	if limit := viper.GetInt("generate.openPullRequestsLimit"); limit >= 0 {
		cliConfig.Generate.OpenPullRequestsLimit = &limit
	}
	if viper.GetBool("generate.transitiveSecurity") {
		transitive := true
		cliConfig.Generate.TransitiveSecurity = &transitive
	}
	if viper.GetBool("pr.autoCreate") {
		autoCreate := true
		cliConfig.PR.AutoCreate = &autoCreate
	}
	if viper.GetBool("pr.pushBranch") {
		pushBranch := true
		cliConfig.PR.PushBranch = &pushBranch
	}

	return cliConfig
}
