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

// Package pr provides pull request creation functionality
package pr

import (
	"context"
	"fmt"

	"github.com/google/go-github/v58/github"
	"github.com/sirupsen/logrus"

	"github.com/AlaudaDevops/toolbox/dependabot-configurator/pkg/config"
	"github.com/AlaudaDevops/toolbox/dependabot-configurator/pkg/git"
	"github.com/AlaudaDevops/toolbox/dependabot-configurator/pkg/types"
)

// GitHubPRCreator implements PRCreator interface for GitHub using the GitHub SDK
type GitHubPRCreator struct {
	// workingDir is the working directory for git operations
	workingDir string
	// client is the GitHub API client
	client *github.Client
}

// NewGitHubPRCreator creates a new GitHub PR creator
func NewGitHubPRCreator(baseURL, token string, workingDir string) *GitHubPRCreator {
	client := github.NewClient(nil).WithAuthToken(token)
	if baseURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(baseURL, baseURL+"/api/v3")
		if err != nil {
			logrus.Fatalf("Failed to set enterprise URLs: %v", err)
		}
	}

	return &GitHubPRCreator{
		workingDir: workingDir,
		client:     client,
	}
}

// CreatePR creates a pull request for the regenerated configuration.
// If a PR already exists for the branch, it is updated instead.
func (g *GitHubPRCreator) CreatePR(repo *config.RepoConfig, sourceBranch string, option PRCreateOption) (types.PRInfo, error) {
	gitRepo, err := git.ParseRepoURL(repo.URL)
	if err != nil {
		return types.PRInfo{}, fmt.Errorf("failed to parse repository URL: %w", err)
	}

	ctx := context.Background()

	title := generatePRTitle(option.Summary)
	body := GeneratePRBody(option.Summary)

	existingPR, err := g.checkExistingPR(gitRepo, sourceBranch, repo.Branch)
	if err != nil {
		logrus.Warnf("Warning: failed to check existing PR: %v", err)
		// Continue with creation attempt
	}

	if existingPR != nil {
		logrus.Debugf("Found existing PR #%d, updating...", existingPR.Number)
		return g.updateExistingPR(gitRepo, existingPR.Number, title, body, option)
	}

	newPR := &github.NewPullRequest{
		Title:               github.String(title),
		Body:                github.String(body),
		Head:                github.String(sourceBranch),
		Base:                github.String(repo.Branch),
		MaintainerCanModify: github.Bool(true),
	}

	pullRequest, _, err := g.client.PullRequests.Create(ctx, gitRepo.Group, gitRepo.Repo, newPR)
	if err != nil {
		return types.PRInfo{}, fmt.Errorf("failed to create PR: %w", err)
	}

	g.applyLabelsAndAssignees(gitRepo, pullRequest.GetNumber(), option)

	logrus.Debugf("Successfully created pull request #%d", pullRequest.GetNumber())
	return types.PRInfo{
		Number: pullRequest.GetNumber(),
		Title:  pullRequest.GetTitle(),
		URL:    pullRequest.GetHTMLURL(),
		State:  pullRequest.GetState(),
	}, nil
}

// checkExistingPR checks if a PR already exists for the given source and target branches
func (g *GitHubPRCreator) checkExistingPR(gitRepo *git.Repository, sourceBranch, targetBranch string) (*types.PRInfo, error) {
	ctx := context.Background()

	opts := &github.PullRequestListOptions{
		Head:  sourceBranch,
		Base:  targetBranch,
		State: "open",
	}

	prs, _, err := g.client.PullRequests.List(ctx, gitRepo.Group, gitRepo.Repo, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list existing PRs: %w", err)
	}

	if len(prs) == 0 {
		return nil, nil // No existing PR found
	}

	return &types.PRInfo{
		Number: prs[0].GetNumber(),
		Title:  prs[0].GetTitle(),
		URL:    prs[0].GetHTMLURL(),
		State:  prs[0].GetState(),
	}, nil
}

// updateExistingPR updates an existing pull request
func (g *GitHubPRCreator) updateExistingPR(gitRepo *git.Repository, prNumber int, title, body string, option PRCreateOption) (types.PRInfo, error) {
	ctx := context.Background()

	pullRequest := &github.PullRequest{
		Title: github.String(title),
		Body:  github.String(body),
	}

	updated, _, err := g.client.PullRequests.Edit(ctx, gitRepo.Group, gitRepo.Repo, prNumber, pullRequest)
	if err != nil {
		return types.PRInfo{}, fmt.Errorf("failed to update PR #%d: %w", prNumber, err)
	}

	g.applyLabelsAndAssignees(gitRepo, prNumber, option)

	logrus.Debugf("Successfully updated pull request #%d", prNumber)
	return types.PRInfo{
		Number: updated.GetNumber(),
		Title:  updated.GetTitle(),
		URL:    updated.GetHTMLURL(),
		State:  updated.GetState(),
	}, nil
}

// applyLabelsAndAssignees adds labels and assignees to a PR, warning on failure
func (g *GitHubPRCreator) applyLabelsAndAssignees(gitRepo *git.Repository, prNumber int, option PRCreateOption) {
	ctx := context.Background()

	if len(option.Labels) > 0 {
		_, _, err := g.client.Issues.AddLabelsToIssue(ctx, gitRepo.Group, gitRepo.Repo, prNumber, option.Labels)
		if err != nil {
			logrus.Warnf("Failed to add labels to PR #%d: %v", prNumber, err)
		}
	}

	if len(option.Assignees) > 0 {
		_, _, err := g.client.Issues.AddAssignees(ctx, gitRepo.Group, gitRepo.Repo, prNumber, option.Assignees)
		if err != nil {
			logrus.Warnf("Failed to add assignees to PR #%d: %v", prNumber, err)
		}
	}
}

// GetPlatformType returns the type of platform
func (g *GitHubPRCreator) GetPlatformType() string {
	return "github"
}

// Ensure GitHubPRCreator implements PRCreator interface
var _ PRCreator = (*GitHubPRCreator)(nil)
