// Package testsupport provides shared helpers for package tests: temp-dir
// configs, scripted labeling oracles, and canned records.
package testsupport

import (
	"context"
	"path/filepath"
	"testing"

	"medmatch/internal/classify"
	"medmatch/internal/config"
)

// NewConfig returns a validated config whose paths all live under the test's
// temp directory.
func NewConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()

	cfg := config.Default()
	cfg.Paths.Database = filepath.Join(dir, "medmatch.db")
	cfg.Paths.Model = filepath.Join(dir, "models", "dedupe_model.json")
	cfg.Paths.OutputDir = filepath.Join(dir, "results")
	cfg.Paths.LogDir = filepath.Join(dir, "logs")
	cfg.Dedupe.Workers = 2

	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}

// ScriptedOracle answers labeling queries with a fixed judgment function,
// standing in for the human labeler.
type ScriptedOracle struct {
	Judge func(classify.Query) classify.Label
	// Calls counts labeling rounds for assertions on batch protocol.
	Calls int
}

// Label implements classify.Oracle.
func (o *ScriptedOracle) Label(ctx context.Context, queries []classify.Query) ([]classify.Label, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	o.Calls++
	labels := make([]classify.Label, len(queries))
	for i, query := range queries {
		labels[i] = o.Judge(query)
	}
	return labels, nil
}
