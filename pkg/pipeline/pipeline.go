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

// Package pipeline provides the end-to-end pipeline for dependabot
// configuration generation and PR creation
package pipeline

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/AlaudaDevops/toolbox/dependabot-configurator/pkg/builder"
	"github.com/AlaudaDevops/toolbox/dependabot-configurator/pkg/config"
	"github.com/AlaudaDevops/toolbox/dependabot-configurator/pkg/dependabot"
	"github.com/AlaudaDevops/toolbox/dependabot-configurator/pkg/git"
	"github.com/AlaudaDevops/toolbox/dependabot-configurator/pkg/notice"
	"github.com/AlaudaDevops/toolbox/dependabot-configurator/pkg/pr"
	"github.com/AlaudaDevops/toolbox/dependabot-configurator/pkg/rules"
	"github.com/AlaudaDevops/toolbox/dependabot-configurator/pkg/scanner"
	"github.com/AlaudaDevops/toolbox/dependabot-configurator/pkg/settings"
	"github.com/AlaudaDevops/toolbox/dependabot-configurator/pkg/types"
)

// Pipeline orchestrates configuration generation and PR creation
type Pipeline struct {
	// config holds pipeline configuration
	config *Config
}

// Config holds configuration for the pipeline
type Config struct {
	config.ConfiguratorConfig `json:",inline" yaml:",inline"`

	// RepoPath is the path to the repository checkout
	RepoPath string `json:"repoPath" yaml:"repoPath"`
}

// NewPipeline creates a new configuration generation pipeline
func NewPipeline(config *Config) *Pipeline {
	return &Pipeline{
		config: config,
	}
}

// Run executes the generation pipeline: scan, load settings, apply ignore
// rules, build entries, emit the document, and optionally commit the result
// and open a pull request. Generation is all-or-nothing: a fatal error
// before emission leaves the repository untouched.
func (p *Pipeline) Run() error {
	logrus.Infof("Starting dependabot configuration generation for: %s", p.config.RepoPath)

	scriptExecutor := NewScriptExecutor(p.config.RepoPath)
	if err := scriptExecutor.ExecuteScript("preGenerate", p.config.Scripts.PreGenerate); err != nil {
		return fmt.Errorf("pre-generate script failed: %w", err)
	}

	summary, outputPath, err := p.generate()
	if err != nil {
		return err
	}

	for _, warning := range summary.Warnings {
		logrus.Warnf("Scan warning: %s", warning)
	}
	logrus.Infof("Generated %s: %s", outputPath, summary)

	if !summary.Changed {
		logrus.Info("Configuration is unchanged, skipping Git and PR operations")
		return nil
	}

	if !p.config.PR.NeedPushBranch() {
		logrus.Info("Auto PR creation is disabled, skipping Git and PR operations")
		return nil
	}

	if err := scriptExecutor.ExecuteScript("preCommit", p.config.Scripts.PreCommit); err != nil {
		return fmt.Errorf("pre-commit script failed: %w", err)
	}

	logrus.Info("Creating branch and committing changes...")
	branchName, err := p.commitChanges(summary)
	if err != nil {
		return fmt.Errorf("failed to commit changes: %w", err)
	}
	if branchName == "" {
		return nil
	}

	if !p.config.PR.NeedCreatePR() {
		logrus.Info("Branch pushed, auto PR creation is disabled")
		return nil
	}

	logrus.Info("Creating Pull Request...")
	prCreator, err := pr.NewPRCreator(p.config.Git, p.config.RepoPath)
	if err != nil {
		return fmt.Errorf("failed to initialize PR creator: %w", err)
	}

	prInfo, err := prCreator.CreatePR(&p.config.Repo, branchName, pr.PRCreateOption{
		Labels:    p.config.PR.Labels,
		Assignees: p.config.PR.Assignees,
		Summary:   *summary,
	})
	if err != nil {
		return fmt.Errorf("failed to create PR: %w", err)
	}

	logrus.Info("✅ Pipeline completed successfully!")
	logrus.Debugf("   - Branch: %s", branchName)
	logrus.Debugf("   - Target: %s", p.config.Repo.Branch)

	if notice.IsNotificationEnabled(p.config.Notice) {
		logrus.Info("Sending notification...")
		if err := p.sendNotification(p.config.Repo.URL, *summary, prInfo); err != nil {
			// Don't fail the entire pipeline if notification fails
			logrus.Warnf("Warning: Failed to send notification: %v", err)
		} else {
			logrus.Info("✅ Notification sent successfully")
		}
	}

	return nil
}

// generate runs the core stages and writes the document, returning the run
// summary and the output path
func (p *Pipeline) generate() (*types.GenerationSummary, string, error) {
	logrus.Info("Scanning repository for package ecosystems...")

	scannerInstance, err := scanner.NewScanner(p.config.Scanner.Type, p.config.RepoPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create scanner: %w", err)
	}

	scanResult, err := scannerInstance.Scan()
	if err != nil {
		return nil, "", fmt.Errorf("failed to scan repository: %w", err)
	}

	logrus.Info("Loading configurator settings...")
	settingsDoc, err := settings.NewLoader().Load(p.config.RepoPath)
	if err != nil {
		return nil, "", err
	}

	scanner.InjectCustomFiles(p.config.RepoPath, settingsDoc.CustomFiles, scanResult)

	logrus.Info("Applying ignore rules...")
	pairs := rules.NewEngine(settingsDoc).Evaluate(scanResult.Hits)

	generated := builder.New(settingsDoc, builder.Options{
		OpenPullRequestsLimit: p.config.Generate.Limit(),
		MainBranch:            p.config.Repo.Branch,
		TransitiveSecurity:    p.config.Generate.IsTransitiveSecurity(),
	}).Build(pairs)

	data, err := dependabot.Emit(generated)
	if err != nil {
		return nil, "", err
	}

	outputPath := filepath.Join(p.config.RepoPath, filepath.FromSlash(p.config.Generate.Output))
	existing, readErr := os.ReadFile(outputPath)
	changed := readErr != nil || !bytes.Equal(existing, data)

	if err := dependabot.WriteFile(outputPath, data); err != nil {
		return nil, "", err
	}

	summary := buildSummary(generated, scanResult.Warnings, changed)
	return summary, outputPath, nil
}

// buildSummary condenses the generated document into the run summary
func buildSummary(generated *dependabot.Config, warnings []types.ScanWarning, changed bool) *types.GenerationSummary {
	summary := &types.GenerationSummary{
		Warnings: warnings,
		Changed:  changed,
	}

	seenEcosystems := map[string]bool{}
	seenDirectories := map[string]bool{}
	for _, update := range generated.Updates {
		if update.IsSecurityEntry() {
			summary.SecurityEntries++
		} else {
			summary.VersionEntries++
		}
		if !seenEcosystems[update.PackageEcosystem] {
			seenEcosystems[update.PackageEcosystem] = true
			summary.Ecosystems = append(summary.Ecosystems, update.PackageEcosystem)
		}
		if !seenDirectories[update.Directory] {
			seenDirectories[update.Directory] = true
			summary.Directories = append(summary.Directories, update.Directory)
		}
	}
	return summary
}

// sendNotification sends a notification about the regenerated configuration
func (p *Pipeline) sendNotification(repoURL string, summary types.GenerationSummary, prInfo types.PRInfo) error {
	notifier, err := notice.NewNotifier(p.config.Notice)
	if err != nil {
		return fmt.Errorf("failed to create notifier: %w", err)
	}

	if notifier == nil {
		// No notifier configured
		return nil
	}

	return notifier.Notify(repoURL, summary, prInfo)
}

func (p *Pipeline) commitChanges(summary *types.GenerationSummary) (newBranchName string, err error) {
	gitOperator := git.NewGitOperator(p.config.RepoPath)
	hasChanges, err := gitOperator.HasChanges()
	if err != nil {
		return "", fmt.Errorf("failed to check Git changes: %w", err)
	}

	if !hasChanges {
		logrus.Info("No Git changes detected, skipping branch creation and PR")
		return "", nil
	}

	commitID, err := gitOperator.GetCommitID()
	if err != nil {
		return "", fmt.Errorf("failed to get commit ID: %w", err)
	}

	branchName := p.generateBranchName(commitID)
	if err := gitOperator.CreateBranch(branchName); err != nil {
		return "", fmt.Errorf("failed to create branch: %w", err)
	}

	commitMessage := generateCommitMessage(summary)
	if err := gitOperator.CommitChanges(commitMessage); err != nil {
		return "", fmt.Errorf("failed to commit changes: %w", err)
	}

	if err := gitOperator.PushBranch(); err != nil {
		return "", fmt.Errorf("failed to push branch: %w", err)
	}

	return branchName, nil
}

// generateBranchName generates a unique branch name
func (p *Pipeline) generateBranchName(baseCommitID string) string {
	return fmt.Sprintf("configurator/dependabot-config-%s", baseCommitID[0:7])
}
