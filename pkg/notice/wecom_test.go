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

package notice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlaudaDevops/toolbox/dependabot-configurator/pkg/config"
	"github.com/AlaudaDevops/toolbox/dependabot-configurator/pkg/types"
)

func TestNewNotifier(t *testing.T) {
	notifier, err := NewNotifier(config.NoticeConfig{
		Type:   "wecom",
		Params: map[string]interface{}{"webhook_url": "https://qyapi.example.com/hook"},
	})
	require.NoError(t, err)
	assert.NotNil(t, notifier)

	notifier, err = NewNotifier(config.NoticeConfig{})
	require.NoError(t, err)
	assert.Nil(t, notifier)

	_, err = NewNotifier(config.NoticeConfig{Type: "wecom"})
	assert.Error(t, err, "missing webhook_url must be rejected")

	_, err = NewNotifier(config.NoticeConfig{Type: "slack"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported notification type")
}

func TestIsNotificationEnabled(t *testing.T) {
	assert.False(t, IsNotificationEnabled(config.NoticeConfig{}))
	assert.True(t, IsNotificationEnabled(config.NoticeConfig{Type: "wecom"}))
}

func TestWeComNotifier_BuildMessage(t *testing.T) {
	notifier := NewWeComNotifier("https://qyapi.example.com/hook")

	msg := notifier.buildMessage("example/repo", types.GenerationSummary{
		VersionEntries:  2,
		SecurityEntries: 2,
		Ecosystems:      []string{"gomod", "npm"},
		Warnings: []types.ScanWarning{
			{Path: "docker/missing.dockerfile", Message: "custom file not found"},
		},
	}, types.PRInfo{
		Title: "chore: update dependabot configuration (2 ecosystems)",
		URL:   "https://github.com/example/repo/pull/7",
	})

	assert.Contains(t, msg, "example/repo")
	assert.Contains(t, msg, "Version update entries: (2)")
	assert.Contains(t, msg, "gomod, npm")
	assert.Contains(t, msg, "https://github.com/example/repo/pull/7")
	assert.Contains(t, msg, "docker/missing.dockerfile")
}
