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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/AlaudaDevops/toolbox/dependabot-configurator/pkg/ecosystem"
	"github.com/AlaudaDevops/toolbox/dependabot-configurator/pkg/settings"
	"github.com/AlaudaDevops/toolbox/dependabot-configurator/pkg/types"
)

func TestInjectCustomFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "docker/prod.dockerfile")

	result := &Result{
		Hits: []types.ScanHit{
			{Ecosystem: ecosystem.GoMod, Directory: "/", File: "go.mod"},
		},
	}

	InjectCustomFiles(root, []settings.CustomFile{
		{Path: "docker/prod.dockerfile", Manager: ecosystem.Docker},
		{Path: "docker/missing.dockerfile", Manager: ecosystem.Docker},
	}, result)

	want := []types.ScanHit{
		{Ecosystem: ecosystem.Docker, Directory: "/docker", File: "prod.dockerfile"},
		{Ecosystem: ecosystem.GoMod, Directory: "/", File: "go.mod"},
	}
	if diff := cmp.Diff(want, result.Hits); diff != "" {
		t.Errorf("InjectCustomFiles() hits mismatch (-want +got):\n%s", diff)
	}

	assert.Len(t, result.Warnings, 1)
	assert.Equal(t, "docker/missing.dockerfile", result.Warnings[0].Path)
	assert.Equal(t, "custom file not found", result.Warnings[0].Message)
}

func TestInjectCustomFiles_DeduplicatesAgainstScan(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "go.mod")

	result := &Result{
		Hits: []types.ScanHit{
			{Ecosystem: ecosystem.GoMod, Directory: "/", File: "go.mod"},
		},
	}

	// Declaring a file the scan already found must not duplicate the hit
	InjectCustomFiles(root, []settings.CustomFile{
		{Path: "/go.mod", Manager: ecosystem.GoMod},
	}, result)

	assert.Len(t, result.Hits, 1)
	assert.Empty(t, result.Warnings)
}
