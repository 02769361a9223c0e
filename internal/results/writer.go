// Package results emits the final cluster assignment artifact.
//
// The artifact is tabular: one row per (cluster, member) with the cluster id,
// record id, and the cluster's confidence score to four decimal places,
// grouped by cluster. The file is written atomically so consumers never
// observe a partial artifact.
package results

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"medmatch/internal/cluster"
)

// FileName is the result artifact name inside the output directory.
const FileName = "dedupe_results.csv"

// Writer persists cluster assignments to the configured output directory.
type Writer struct {
	outputDir string
}

// NewWriter constructs a Writer.
func NewWriter(outputDir string) *Writer {
	return &Writer{outputDir: outputDir}
}

// Write renders the clusters as CSV and atomically moves the artifact into
// place. It returns the final artifact path.
func (w *Writer) Write(clusters []cluster.Cluster) (string, error) {
	if err := os.MkdirAll(w.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	path := filepath.Join(w.outputDir, FileName)
	tmpPath := path + ".tmp"

	file, err := os.Create(tmpPath)
	if err != nil {
		return "", fmt.Errorf("create temp results: %w", err)
	}

	if err := writeCSV(file, clusters); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return "", err
	}
	if err := file.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("close temp results: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("rename temp results: %w", err)
	}
	return path, nil
}

func writeCSV(file *os.File, clusters []cluster.Cluster) error {
	cw := csv.NewWriter(file)
	if err := cw.Write([]string{"cluster_id", "record_id", "confidence_score"}); err != nil {
		return fmt.Errorf("write results header: %w", err)
	}
	for _, c := range clusters {
		confidence := strconv.FormatFloat(c.Confidence, 'f', 4, 64)
		for _, id := range c.Members {
			row := []string{strconv.Itoa(c.ID), id, confidence}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write results row: %w", err)
			}
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush results: %w", err)
	}
	return nil
}
