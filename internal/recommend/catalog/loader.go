// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the on-disk catalog layout:
//
//	vocabulary: [mindfulness, breathing, ...]   # optional, defaults to DefaultTags
//	activities:
//	  - id: a1
//	    title: 5-min Guided Breathing
//	    tags: [breathing, mindfulness]
//	    minutes: 5
type File struct {
	Vocabulary []string   `yaml:"vocabulary"`
	Activities []Activity `yaml:"activities"`
}

// Parse decodes a YAML catalog document and compiles it.
func Parse(data []byte) (*Catalog, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	tags := f.Vocabulary
	if len(tags) == 0 {
		tags = DefaultTags
	}
	vocab, err := NewVocabulary(tags)
	if err != nil {
		return nil, err
	}

	return New(vocab, f.Activities)
}

// LoadFile reads and compiles a YAML catalog file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Load returns the catalog at path, or the built-in catalog when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}
