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

package ecosystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		want    Ecosystem
		wantErr bool
	}{
		{name: "gomod", id: "gomod", want: GoMod},
		{name: "github-actions", id: "github-actions", want: GitHubActions},
		{name: "npm", id: "npm", want: NPM},
		{name: "unknown ecosystem", id: "golang", wantErr: true},
		{name: "empty id", id: "", wantErr: true},
		{name: "case sensitive", id: "NPM", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.id)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unsupported package ecosystem")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAll(t *testing.T) {
	all := All()
	assert.Len(t, all, 15)
	assert.Equal(t, Bundler, all[0])
	assert.Equal(t, Terraform, all[len(all)-1])

	for _, eco := range all {
		assert.True(t, IsValid(string(eco)), "ecosystem %s should be valid", eco)
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name    string
		relPath string
		want    Ecosystem
		wantOK  bool
	}{
		{name: "go.mod at root", relPath: "go.mod", want: GoMod, wantOK: true},
		{name: "go.sum in subdirectory", relPath: "services/api/go.sum", want: GoMod, wantOK: true},
		{name: "package.json", relPath: "web/package.json", want: NPM, wantOK: true},
		{name: "yarn lock", relPath: "web/yarn.lock", want: NPM, wantOK: true},
		{name: "dockerfile", relPath: "images/Dockerfile", want: Docker, wantOK: true},
		{name: "requirements prefix glob", relPath: "requirements_dev.txt", want: Pip, wantOK: true},
		{name: "pyproject", relPath: "tools/pyproject.toml", want: Pip, wantOK: true},
		{name: "csproj glob", relPath: "src/App/App.csproj", want: NuGet, wantOK: true},
		{name: "workflow yml", relPath: ".github/workflows/ci.yml", want: GitHubActions, wantOK: true},
		{name: "workflow yaml", relPath: ".github/workflows/release.yaml", want: GitHubActions, wantOK: true},
		{name: "terraform lock is hidden but dot pattern", relPath: "infra/.terraform.lock.hcl", want: Terraform, wantOK: true},
		{name: "gemfile", relPath: "Gemfile", want: Bundler, wantOK: true},
		{name: "gradle kts", relPath: "build.gradle.kts", want: Gradle, wantOK: true},
		{name: "pom", relPath: "pom.xml", want: Maven, wantOK: true},
		{name: "swift package", relPath: "Package.swift", want: Swift, wantOK: true},
		{name: "pubspec", relPath: "app/pubspec.yaml", want: Pub, wantOK: true},
		{name: "elm", relPath: "frontend/elm.json", want: Elm, wantOK: true},
		{name: "cargo", relPath: "Cargo.toml", want: Cargo, wantOK: true},
		{name: "composer", relPath: "composer.lock", want: Composer, wantOK: true},

		{name: "ordinary source file", relPath: "main.go", wantOK: false},
		{name: "readme", relPath: "README.md", wantOK: false},
		{name: "workflow subdirectory not matched", relPath: ".github/workflows/nested/ci.yml", wantOK: false},
		{name: "basename pattern blind to hidden dirs", relPath: ".config/go.mod", wantOK: false},
		{name: "manifest inside .github not a workflow", relPath: ".github/package.json", wantOK: false},
		{name: "dockerfile suffix not matched", relPath: "Dockerfile.dev", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Match(tt.relPath)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestSignaturesOrder(t *testing.T) {
	// Detection is first-match-wins, so the table order is part of the
	// contract
	sigs := Signatures()
	require.NotEmpty(t, sigs)
	for i := 1; i < len(sigs); i++ {
		assert.Less(t, string(sigs[i-1].Ecosystem), string(sigs[i].Ecosystem),
			"signature table must stay sorted by ecosystem id")
	}
}
