// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"policy-audit/internal/compare"
	"policy-audit/internal/rules"
)

// Config represents the application configuration
type Config struct {
	// Default settings
	Defaults struct {
		Format     string `yaml:"format"`
		RiskLevels string `yaml:"risk_levels"`
		Workers    int    `yaml:"workers"`
		Verbose    bool   `yaml:"verbose"`
		NoColor    bool   `yaml:"no_color"`
		OutputDir  string `yaml:"output_dir"`
	} `yaml:"defaults"`

	// Rule-extraction keyword overrides; empty lists keep the stock
	// vocabulary.
	Extraction struct {
		MergeIndicators []string `yaml:"merge_indicators"`
		Candidacy       []string `yaml:"candidacy_keywords"`
		Prohibition     []string `yaml:"prohibition_keywords"`
		Obligation      []string `yaml:"obligation_keywords"`
		UpperBound      []string `yaml:"upper_bound_keywords"`
		LowerBound      []string `yaml:"lower_bound_keywords"`
		ScopeLimit      []string `yaml:"scope_limit_keywords"`
	} `yaml:"extraction"`

	// Comparison keyword overrides; empty lists keep the stock lexicon.
	Comparison struct {
		ScopeTerms            []string `yaml:"scope_terms"`
		AllInclusiveTerms     []string `yaml:"all_inclusive_terms"`
		ScopeFieldMarkers     []string `yaml:"scope_field_markers"`
		ConditionFieldMarkers []string `yaml:"condition_field_markers"`
	} `yaml:"comparison"`

	// Profiles for different audit scenarios
	Profiles map[string]Profile `yaml:"profiles"`
}

// Profile represents an audit profile with specific settings
type Profile struct {
	Format      string `yaml:"format"`
	RiskLevels  string `yaml:"risk_levels"`
	Workers     int    `yaml:"workers"`
	Verbose     bool   `yaml:"verbose"`
	NoColor     bool   `yaml:"no_color"`
	OutputDir   string `yaml:"output_dir"`
	Description string `yaml:"description"`
}

// LoadConfig loads configuration from the specified file path
func LoadConfig(configPath string) (*Config, error) {
	// Default configuration
	config := &Config{
		Profiles: make(map[string]Profile),
	}

	// Set default values
	config.Defaults.Format = "text"
	config.Defaults.RiskLevels = "all"
	config.Defaults.Workers = 4
	config.Defaults.Verbose = false
	config.Defaults.NoColor = false
	config.Defaults.OutputDir = ""

	// Add default CI profile with machine-readable output
	config.Profiles["ci"] = Profile{
		Format:      "json",
		RiskLevels:  "高,中",
		Workers:     4,
		NoColor:     true,
		Description: "Optimized for CI pipelines with JSON output and high/medium findings only",
	}

	// If no config file specified, return default config
	if configPath == "" {
		return config, nil
	}

	// Read config file
	cleanPath := filepath.Clean(configPath)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// Restore defaults the file left unset
	if config.Defaults.Format == "" {
		config.Defaults.Format = "text"
	}
	if config.Defaults.RiskLevels == "" {
		config.Defaults.RiskLevels = "all"
	}
	if config.Defaults.Workers < 1 {
		config.Defaults.Workers = 4
	}

	return config, nil
}

// FindConfigFile looks for a configuration file in standard locations
func FindConfigFile() string {
	candidates := []string{
		".policy-audit.yaml",
		".policy-audit.yml",
		"policy-audit.yaml",
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(home, ".policy-audit.yaml"),
			filepath.Join(home, ".config", "policy-audit", "config.yaml"),
		)
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// ApplyProfile overlays a named profile onto the defaults
func (c *Config) ApplyProfile(name string) error {
	profile, ok := c.Profiles[name]
	if !ok {
		return fmt.Errorf("profile not found: %s", name)
	}
	if profile.Format != "" {
		c.Defaults.Format = profile.Format
	}
	if profile.RiskLevels != "" {
		c.Defaults.RiskLevels = profile.RiskLevels
	}
	if profile.Workers > 0 {
		c.Defaults.Workers = profile.Workers
	}
	if profile.OutputDir != "" {
		c.Defaults.OutputDir = profile.OutputDir
	}
	c.Defaults.Verbose = c.Defaults.Verbose || profile.Verbose
	c.Defaults.NoColor = c.Defaults.NoColor || profile.NoColor
	return nil
}

// GetProfileNames returns the configured profile names in sorted order
func (c *Config) GetProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Vocabulary builds the rule-extraction vocabulary with any configured
// overrides applied
func (c *Config) Vocabulary() rules.Vocabulary {
	vocab := rules.DefaultVocabulary()
	if len(c.Extraction.Candidacy) > 0 {
		vocab.Candidacy = c.Extraction.Candidacy
	}
	if len(c.Extraction.Prohibition) > 0 {
		vocab.Prohibition = c.Extraction.Prohibition
	}
	if len(c.Extraction.Obligation) > 0 {
		vocab.Obligation = c.Extraction.Obligation
	}
	if len(c.Extraction.UpperBound) > 0 {
		vocab.UpperBound = c.Extraction.UpperBound
	}
	if len(c.Extraction.LowerBound) > 0 {
		vocab.LowerBound = c.Extraction.LowerBound
	}
	if len(c.Extraction.ScopeLimit) > 0 {
		vocab.ScopeLimit = c.Extraction.ScopeLimit
	}
	return vocab
}

// Lexicon builds the comparison lexicon with any configured overrides
// applied
func (c *Config) Lexicon() compare.Lexicon {
	lex := compare.DefaultLexicon()
	if len(c.Comparison.ScopeTerms) > 0 {
		lex.ScopeTerms = c.Comparison.ScopeTerms
	}
	if len(c.Comparison.AllInclusiveTerms) > 0 {
		lex.AllInclusiveTerms = c.Comparison.AllInclusiveTerms
	}
	if len(c.Comparison.ScopeFieldMarkers) > 0 {
		lex.ScopeFieldMarkers = c.Comparison.ScopeFieldMarkers
	}
	if len(c.Comparison.ConditionFieldMarkers) > 0 {
		lex.ConditionFieldMarkers = c.Comparison.ConditionFieldMarkers
	}
	return lex
}
