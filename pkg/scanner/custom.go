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

package scanner

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/AlaudaDevops/toolbox/dependabot-configurator/pkg/settings"
	"github.com/AlaudaDevops/toolbox/dependabot-configurator/pkg/types"
)

// InjectCustomFiles adds the custom file declarations from the settings
// document to a scan result, prior to ignore-rule evaluation. The ecosystem
// id was already validated by the settings loader; a declared file that does
// not exist on disk is skipped with a warning rather than failing the run.
func InjectCustomFiles(rootPath string, customFiles []settings.CustomFile, result *Result) {
	if len(customFiles) == 0 {
		return
	}

	logrus.Debugf("Processing %d custom file declarations", len(customFiles))

	seen := map[types.ScanHit]bool{}
	for _, hit := range result.Hits {
		seen[hit] = true
	}

	for _, custom := range customFiles {
		rel := strings.TrimPrefix(filepath.ToSlash(custom.Path), "/")
		fullPath := filepath.Join(rootPath, filepath.FromSlash(rel))

		info, err := os.Stat(fullPath)
		if err != nil || info.IsDir() {
			logrus.Warnf("Warning: custom file not found: %s", custom.Path)
			result.Warnings = append(result.Warnings, types.ScanWarning{
				Path:    custom.Path,
				Message: "custom file not found",
			})
			continue
		}

		hit := types.ScanHit{
			Ecosystem: custom.Manager,
			Directory: NormalizeDirectory(filepath.Dir(rel)),
			File:      filepath.Base(rel),
		}
		if seen[hit] {
			continue
		}
		seen[hit] = true
		result.Hits = append(result.Hits, hit)
		logrus.Debugf("Added custom %s manifest %s in %s", hit.Ecosystem, hit.File, hit.Directory)
	}

	SortHits(result.Hits)
}
