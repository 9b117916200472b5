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

package settings

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/AlaudaDevops/toolbox/dependabot-configurator/pkg/types"
)

// Loader reads the repository settings document from its well-known path
type Loader struct{}

// NewLoader creates a new settings loader
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads `.github/.configurator_settings.yml` (or `.yaml`) from the
// repository root. A missing file is valid and yields the empty document; a
// malformed file is a fatal ConfigurationError, never silently ignored.
func (l *Loader) Load(repoPath string) (*Settings, error) {
	settingsPaths := []string{
		filepath.Join(repoPath, ".github", ".configurator_settings.yml"),
		filepath.Join(repoPath, ".github", ".configurator_settings.yaml"),
	}

	for _, settingsPath := range settingsPaths {
		if _, err := os.Stat(settingsPath); err != nil {
			continue
		}
		logrus.Debugf("Found configurator settings: %s", settingsPath)

		data, err := os.ReadFile(settingsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read settings file %s: %w", settingsPath, err)
		}

		parsed, err := l.parse(data)
		if err != nil {
			return nil, err
		}
		if err := parsed.Validate(); err != nil {
			return nil, err
		}

		if parsed.IsEmpty() {
			logrus.Info("Configurator settings file contains no rules")
		} else {
			logrus.Infof("Loaded configurator settings: %d dependency ignores, %d directory ignores, %d file patterns, %d registries, %d custom files",
				len(parsed.IgnoreDependencies), len(parsed.IgnoreDirectories),
				len(parsed.IgnoreFilePatterns), len(parsed.Registries), len(parsed.CustomFiles))
		}
		return parsed, nil
	}

	logrus.Debug("No configurator settings found, using empty document")
	return &Settings{}, nil
}

// parse accepts both document shapes: the normalized mapping form and the
// legacy list form where each item contributes exactly one rule section.
func (l *Loader) parse(data []byte) (*Settings, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, types.NewConfigurationError("settings", "", err.Error())
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		// Empty document
		return &Settings{}, nil
	}

	doc := root.Content[0]
	switch doc.Kind {
	case yaml.MappingNode:
		return l.parseMapping(data)
	case yaml.SequenceNode:
		return l.parseLegacyList(doc)
	default:
		return nil, types.NewConfigurationError("settings", "",
			"document must be a mapping of rule sections or a list of single-section entries")
	}
}

// parseMapping decodes the normalized form with strict field checking, so an
// unknown top-level key is rejected with the key named in the error.
func (l *Loader) parseMapping(data []byte) (*Settings, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	parsed := &Settings{}
	if err := decoder.Decode(parsed); err != nil && err != io.EOF {
		return nil, types.NewConfigurationError("settings", "", err.Error())
	}
	return parsed, nil
}

// parseLegacyList decodes the original list-of-single-key-mappings shape and
// flattens it into the normalized document.
func (l *Loader) parseLegacyList(doc *yaml.Node) (*Settings, error) {
	parsed := &Settings{}

	for _, item := range doc.Content {
		if item.Kind != yaml.MappingNode || len(item.Content) != 2 {
			return nil, types.NewConfigurationError("settings", "",
				"each list entry must be a mapping with exactly one rule section")
		}

		key := item.Content[0].Value
		value := item.Content[1]

		var err error
		switch key {
		case "ignore-dependency":
			var rules []DependencyIgnore
			if err = value.Decode(&rules); err == nil {
				parsed.IgnoreDependencies = append(parsed.IgnoreDependencies, rules...)
			}
		case "ignore-directory":
			var dirs []string
			if err = value.Decode(&dirs); err == nil {
				parsed.IgnoreDirectories = append(parsed.IgnoreDirectories, dirs...)
			}
		case "ignore-version-updates-for-files":
			var patterns []string
			if err = value.Decode(&patterns); err == nil {
				parsed.IgnoreFilePatterns = append(parsed.IgnoreFilePatterns, patterns...)
			}
		case "registries":
			var registries []Registry
			if err = value.Decode(&registries); err == nil {
				parsed.Registries = append(parsed.Registries, registries...)
			}
		case "custom-files":
			var files []CustomFile
			if err = value.Decode(&files); err == nil {
				parsed.CustomFiles = append(parsed.CustomFiles, files...)
			}
		default:
			return nil, types.NewConfigurationError(key, "", "unknown settings section")
		}
		if err != nil {
			return nil, types.NewConfigurationError(key, "", err.Error())
		}
	}

	return parsed, nil
}
