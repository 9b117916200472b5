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

package dependabot

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/AlaudaDevops/toolbox/dependabot-configurator/pkg/types"
)

// Emit validates the document's internal consistency and serializes it.
// Serialization is byte-deterministic: re-emitting an unchanged document
// yields identical output. Any inconsistency aborts emission; a partial
// document is never produced.
func Emit(config *Config) ([]byte, error) {
	if err := validate(config); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(config); err != nil {
		return nil, fmt.Errorf("failed to marshal dependabot configuration: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize dependabot configuration: %w", err)
	}

	return buf.Bytes(), nil
}

// validate checks that every registry referenced by an update entry was
// actually declared in the document
func validate(config *Config) error {
	declared := map[string]bool{}
	for _, named := range config.Registries {
		declared[named.Name] = true
	}

	for _, update := range config.Updates {
		for _, name := range update.Registries {
			if !declared[name] {
				return &types.EmissionError{
					Entry:  fmt.Sprintf("%s %s", update.PackageEcosystem, update.Directory),
					Reason: fmt.Sprintf("references undeclared registry %q", name),
				}
			}
		}
	}
	return nil
}

// WriteFile writes the emitted document to path, creating the parent
// directory when needed. The write is all-or-nothing: the document lands in a
// temporary file first and is renamed into place, so an interrupted run never
// leaves a partial artifact behind.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".dependabot-*.yml.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write configuration: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set permissions on %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move configuration into place: %w", err)
	}

	logrus.Debugf("Wrote dependabot configuration: %s", path)
	return nil
}
