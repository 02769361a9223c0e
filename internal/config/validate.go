package config

import (
	"errors"
	"fmt"

	"medmatch/internal/blocking"
	"medmatch/internal/record"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDedupe(); err != nil {
		return err
	}
	if err := c.validateFieldMappings(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateDedupe() error {
	if c.Dedupe.Threshold <= 0 || c.Dedupe.Threshold >= 1 {
		return fmt.Errorf("dedupe.threshold must lie strictly between 0 and 1, got %v", c.Dedupe.Threshold)
	}
	if len(c.Dedupe.BlockingPredicates) == 0 {
		return errors.New("dedupe.blocking_predicates must name at least one predicate")
	}
	if _, err := blocking.ByNames(c.Dedupe.BlockingPredicates); err != nil {
		return fmt.Errorf("dedupe.blocking_predicates: %w", err)
	}
	seen := make(map[string]struct{}, len(c.Dedupe.BlockingPredicates))
	for _, name := range c.Dedupe.BlockingPredicates {
		if _, dup := seen[name]; dup {
			return fmt.Errorf("dedupe.blocking_predicates: predicate %q listed twice", name)
		}
		seen[name] = struct{}{}
	}
	if c.Dedupe.LabelBudget < 1 {
		return errors.New("dedupe.label_budget must be positive")
	}
	if c.Dedupe.LabelBatchSize < 1 {
		return errors.New("dedupe.label_batch_size must be positive")
	}
	if c.Dedupe.LabelBatchSize > c.Dedupe.LabelBudget {
		return errors.New("dedupe.label_batch_size cannot exceed dedupe.label_budget")
	}
	if c.Dedupe.UncertaintyEpsilon <= 0 || c.Dedupe.UncertaintyEpsilon >= 0.5 {
		return errors.New("dedupe.uncertainty_epsilon must lie strictly between 0 and 0.5")
	}
	if c.Dedupe.Workers < 0 {
		return errors.New("dedupe.workers cannot be negative")
	}
	return nil
}

func (c *Config) validateFieldMappings() error {
	for source, mapping := range c.FieldMappings {
		if len(mapping) == 0 {
			return fmt.Errorf("field_mappings.%s must map at least one column", source)
		}
		covered := make(map[string]bool, len(mapping))
		for column, field := range mapping {
			// full_name is a pseudo-target the normalizer splits into
			// first_name and last_name.
			if field == "full_name" {
				covered[record.FieldFirstName] = true
				covered[record.FieldLastName] = true
				continue
			}
			if !record.IsCanonicalField(field) {
				return fmt.Errorf("field_mappings.%s: column %q maps to unknown field %q", source, column, field)
			}
			covered[field] = true
		}
		// Coverage is structural: every required field needs a mapped
		// column, even though individual rows may hold null there.
		for _, field := range record.RequiredFields() {
			if !covered[field] {
				return fmt.Errorf("field_mappings.%s: no column maps to required field %q", source, field)
			}
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("log_format must be console or json, got %q", c.LogFormat)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn, or error, got %q", c.LogLevel)
	}
	return nil
}
