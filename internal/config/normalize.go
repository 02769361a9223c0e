package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeDedupe()
	c.normalizeFieldMappings()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.Database) == "" {
		c.Paths.Database = defaultDatabasePath
	}
	if c.Paths.Database, err = expandPath(c.Paths.Database); err != nil {
		return fmt.Errorf("paths.database: %w", err)
	}
	if strings.TrimSpace(c.Paths.Model) == "" {
		c.Paths.Model = defaultModelPath
	}
	if c.Paths.Model, err = expandPath(c.Paths.Model); err != nil {
		return fmt.Errorf("paths.model: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeDedupe() {
	if c.Dedupe.LabelBudget == 0 {
		c.Dedupe.LabelBudget = defaultLabelBudget
	}
	if c.Dedupe.LabelBatchSize == 0 {
		c.Dedupe.LabelBatchSize = defaultLabelBatchSize
	}
	if c.Dedupe.UncertaintyEpsilon == 0 {
		c.Dedupe.UncertaintyEpsilon = defaultUncertaintyEpsilon
	}
	trimmed := make([]string, 0, len(c.Dedupe.BlockingPredicates))
	for _, name := range c.Dedupe.BlockingPredicates {
		if name = strings.TrimSpace(name); name != "" {
			trimmed = append(trimmed, name)
		}
	}
	c.Dedupe.BlockingPredicates = trimmed
}

// normalizeFieldMappings merges user overrides on top of the repository
// defaults so a config file only needs to mention the sources it changes.
func (c *Config) normalizeFieldMappings() {
	merged := defaultFieldMappings()
	for source, mapping := range c.FieldMappings {
		source = strings.TrimSpace(source)
		if source == "" {
			continue
		}
		target := merged[source]
		if target == nil {
			target = make(map[string]string, len(mapping))
			merged[source] = target
		}
		for column, field := range mapping {
			column = strings.TrimSpace(column)
			field = strings.TrimSpace(field)
			if column == "" || field == "" {
				continue
			}
			target[column] = field
		}
	}
	c.FieldMappings = merged
}

func (c *Config) normalizeLogging() {
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	if c.LogFormat == "" {
		c.LogFormat = defaultLogFormat
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
}
