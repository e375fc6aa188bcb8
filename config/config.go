// Package config provides configuration loading and management for sssomtool.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete sssomtool configuration
type Config struct {
	Convert ConvertConfig `yaml:"convert"`
	Review  ReviewConfig  `yaml:"review"`
	Matcher MatcherConfig `yaml:"matcher"`
}

// ConvertConfig configures the alignment-to-SSSOM converter
type ConvertConfig struct {
	// OutDir is where converted mapping sets are written (default: input dir)
	OutDir string `yaml:"out_dir"`
	// WatchDebounce is the quiet period before a watched file is converted
	WatchDebounce time.Duration `yaml:"watch_debounce"`
}

// ReviewConfig configures the mapping review tool
type ReviewConfig struct {
	// OutDir is where reviewed mapping sets are written
	OutDir string `yaml:"out_dir"`
}

// MatcherConfig configures the external ontology matcher subprocess
type MatcherConfig struct {
	// Java is the java binary used to run the matcher
	Java string `yaml:"java"`
	// Jar is the path to the matcher jar (e.g. logmap-matcher-4.0.jar)
	Jar string `yaml:"jar"`
	// MinHeap is the JVM -Xms value
	MinHeap string `yaml:"min_heap"`
	// MaxHeap is the JVM -Xmx value
	MaxHeap string `yaml:"max_heap"`
	// EntityExpansionLimit raises the JAXP entity expansion cap
	EntityExpansionLimit int `yaml:"entity_expansion_limit"`
	// ExtraArgs are appended to the JVM arguments
	ExtraArgs []string `yaml:"extra_args"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Convert: ConvertConfig{
			OutDir:        "", // Same as input
			WatchDebounce: 500 * time.Millisecond,
		},
		Review: ReviewConfig{
			OutDir: "output",
		},
		Matcher: MatcherConfig{
			Java:                 "java",
			Jar:                  "", // Must be configured before `match` is usable
			MinHeap:              "500m",
			MaxHeap:              "10g",
			EntityExpansionLimit: 100000000,
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Matcher.Java == "" {
		return fmt.Errorf("matcher.java is required")
	}
	if c.Matcher.MinHeap == "" || c.Matcher.MaxHeap == "" {
		return fmt.Errorf("matcher.min_heap and matcher.max_heap are required")
	}
	if c.Matcher.EntityExpansionLimit <= 0 {
		return fmt.Errorf("matcher.entity_expansion_limit must be positive")
	}
	if c.Convert.WatchDebounce < 0 {
		return fmt.Errorf("convert.watch_debounce must not be negative")
	}
	if c.Review.OutDir == "" {
		return fmt.Errorf("review.out_dir is required")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Convert
	if other.Convert.OutDir != "" {
		c.Convert.OutDir = other.Convert.OutDir
	}
	if other.Convert.WatchDebounce != 0 {
		c.Convert.WatchDebounce = other.Convert.WatchDebounce
	}

	// Review
	if other.Review.OutDir != "" {
		c.Review.OutDir = other.Review.OutDir
	}

	// Matcher
	if other.Matcher.Java != "" {
		c.Matcher.Java = other.Matcher.Java
	}
	if other.Matcher.Jar != "" {
		c.Matcher.Jar = other.Matcher.Jar
	}
	if other.Matcher.MinHeap != "" {
		c.Matcher.MinHeap = other.Matcher.MinHeap
	}
	if other.Matcher.MaxHeap != "" {
		c.Matcher.MaxHeap = other.Matcher.MaxHeap
	}
	if other.Matcher.EntityExpansionLimit != 0 {
		c.Matcher.EntityExpansionLimit = other.Matcher.EntityExpansionLimit
	}
	if len(other.Matcher.ExtraArgs) > 0 {
		c.Matcher.ExtraArgs = other.Matcher.ExtraArgs
	}
}
