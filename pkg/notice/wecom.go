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

// Package notice provides notification functionality for the configurator
package notice

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/AlaudaDevops/toolbox/dependabot-configurator/pkg/git"
	"github.com/AlaudaDevops/toolbox/dependabot-configurator/pkg/types"
)

// WeComNotifier implements Notifier interface for WeChat Work (Enterprise WeChat)
type WeComNotifier struct {
	// webhookURL is the WeChat Work webhook URL
	webhookURL string
	// httpClient is the HTTP client for making requests
	httpClient *http.Client
}

// WeComMessageCard represents a WeChat Work message card
type WeComMessageCard struct {
	MsgType  string        `json:"msgtype"`
	Markdown WeComMarkdown `json:"markdown"`
}

// WeComMarkdown represents the markdown content for WeChat Work
type WeComMarkdown struct {
	Content string `json:"content"`
}

// NewWeComNotifier creates a new WeChat Work notifier
func NewWeComNotifier(webhookURL string) *WeComNotifier {
	return &WeComNotifier{
		webhookURL: webhookURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Notify sends a notification to WeChat Work
func (w *WeComNotifier) Notify(repoURL string, summary types.GenerationSummary, pr types.PRInfo) error {
	logrus.Debugf("Sending WeChat Work notification for PR: %s", pr.Title)

	componentName := repoURL
	if gitRepo, err := git.ParseRepoURL(repoURL); err == nil {
		componentName = gitRepo.String()
	}

	messageCard := WeComMessageCard{
		MsgType: "markdown",
		Markdown: WeComMarkdown{
			Content: w.buildMessage(componentName, summary, pr),
		},
	}

	jsonData, err := json.Marshal(messageCard)
	if err != nil {
		return fmt.Errorf("failed to marshal WeChat Work message: %w", err)
	}

	req, err := http.NewRequest("POST", w.webhookURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send WeChat Work notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("WeChat Work notification failed with status: %d", resp.StatusCode)
	}

	logrus.Infof("WeChat Work notification sent successfully for PR: %s", pr.Title)
	return nil
}

// buildMessage builds the markdown message for WeChat Work
func (w *WeComNotifier) buildMessage(componentName string, summary types.GenerationSummary, pr types.PRInfo) string {
	var msg bytes.Buffer

	msg.WriteString(fmt.Sprintf("# 🤖 %s Dependabot configuration updated\n\n", componentName))

	msg.WriteString("\n**📊 Generation summary:**\n")
	msg.WriteString(fmt.Sprintf("Version update entries: (%d) Security update entries: (%d)\n", summary.VersionEntries, summary.SecurityEntries))
	if len(summary.Ecosystems) > 0 {
		msg.WriteString(fmt.Sprintf("Ecosystems: %s\n", strings.Join(summary.Ecosystems, ", ")))
	}
	msg.WriteString("\n")

	if pr.URL != "" {
		msg.WriteString("\n**🔗 Pull Request:**\n")
		msg.WriteString(fmt.Sprintf(" - Title: %s\n", pr.Title))
		msg.WriteString(fmt.Sprintf(" - Link: [%s](%s)\n\n", pr.URL, pr.URL))
	}

	if len(summary.Warnings) > 0 {
		msg.WriteString("\n**⚠️ Scan warnings:**\n")
		for i, warning := range summary.Warnings {
			if i >= 10 {
				msg.WriteString(fmt.Sprintf(" - %d more warnings...\n", len(summary.Warnings)-i))
				break
			}
			msg.WriteString(fmt.Sprintf(" - %s\n", warning))
		}
		msg.WriteString("\n")
	}

	return msg.String()
}

// Ensure WeComNotifier implements Notifier interface
var _ Notifier = (*WeComNotifier)(nil)
