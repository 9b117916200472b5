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

// Package dependabot models the generated GitHub Dependabot configuration
// document and its serialization
package dependabot

import "gopkg.in/yaml.v3"

// Config is the root of a version 2 dependabot.yml document
type Config struct {
	Version    int        `yaml:"version" json:"version"`
	Registries Registries `yaml:"registries,omitempty" json:"registries,omitempty"`
	Updates    []Update   `yaml:"updates" json:"updates"`
}

// Update is a single package-ecosystem update entry
type Update struct {
	PackageEcosystem      string           `yaml:"package-ecosystem" json:"package-ecosystem"`
	Directory             string           `yaml:"directory" json:"directory"`
	Schedule              Schedule         `yaml:"schedule" json:"schedule"`
	Allow                 []Allow          `yaml:"allow" json:"allow"`
	OpenPullRequestsLimit int              `yaml:"open-pull-requests-limit" json:"open-pull-requests-limit"`
	Groups                map[string]Group `yaml:"groups" json:"groups"`
	TargetBranch          string           `yaml:"target-branch,omitempty" json:"target-branch,omitempty"`
	Labels                []string         `yaml:"labels" json:"labels"`
	Ignore                []IgnoreEntry    `yaml:"ignore,omitempty" json:"ignore,omitempty"`
	Registries            []string         `yaml:"registries,omitempty" json:"registries,omitempty"`
}

// SecurityGroup is the group name marking an entry as a security update entry
const SecurityGroup = "prodsec"

// IsSecurityEntry reports whether the entry proposes security updates only
func (u Update) IsSecurityEntry() bool {
	_, ok := u.Groups[SecurityGroup]
	return ok
}

// Schedule is the update cadence of an entry
type Schedule struct {
	Interval string `yaml:"interval" json:"interval"`
	Day      string `yaml:"day" json:"day"`
	Time     string `yaml:"time" json:"time"`
	Timezone string `yaml:"timezone" json:"timezone"`
}

// Allow restricts which dependencies an entry may update
type Allow struct {
	DependencyType string `yaml:"dependency-type" json:"dependency-type"`
}

// Group batches related updates into a single pull request
type Group struct {
	AppliesTo   string   `yaml:"applies-to" json:"applies-to"`
	UpdateTypes []string `yaml:"update-types" json:"update-types"`
}

// IgnoreEntry suppresses updates for a dependency within an entry.
// An absent update-types list ignores every update type.
type IgnoreEntry struct {
	DependencyName string   `yaml:"dependency-name" json:"dependency-name"`
	UpdateTypes    []string `yaml:"update-types,omitempty" json:"update-types,omitempty"`
}

// RegistryConfig is the emitted form of a registry declaration, without the
// name (used as the mapping key) and the generator-only applies-to field.
type RegistryConfig struct {
	Type         string `yaml:"type" json:"type"`
	URL          string `yaml:"url" json:"url"`
	Username     string `yaml:"username,omitempty" json:"username,omitempty"`
	Password     string `yaml:"password,omitempty" json:"password,omitempty"`
	Token        string `yaml:"token,omitempty" json:"token,omitempty"`
	Key          string `yaml:"key,omitempty" json:"key,omitempty"`
	ReplacesBase bool   `yaml:"replaces-base,omitempty" json:"replaces-base,omitempty"`
}

// NamedRegistry pairs a registry name with its emitted configuration
type NamedRegistry struct {
	Name   string
	Config RegistryConfig
}

// Registries is an ordered registry mapping. Declaration order from the
// settings document is preserved on emission, which a plain Go map cannot
// guarantee, so marshalling builds the mapping node explicitly.
type Registries []NamedRegistry

// MarshalYAML emits the registries as a mapping in declaration order
func (r Registries) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, named := range r {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: named.Name}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(named.Config); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, keyNode, valueNode)
	}
	return node, nil
}

// Names returns the declared registry names in declaration order
func (r Registries) Names() []string {
	names := make([]string, 0, len(r))
	for _, named := range r {
		names = append(names, named.Name)
	}
	return names
}
