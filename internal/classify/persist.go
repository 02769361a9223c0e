package classify

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"medmatch/internal/services"
)

// ModelExists reports whether a persisted model artifact is present.
func ModelExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// SaveModel persists the model atomically: the artifact is written to a
// temp file and renamed into place under a file lock, so no concurrent
// reader ever observes a partially written model.
func SaveModel(path string, model *Model) error {
	if err := model.Validate(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create model directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("acquire model lock: %w", err)
	}
	defer lock.Unlock()

	data, err := json.MarshalIndent(model, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal model: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp model: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp model: %w", err)
	}
	return nil
}

// LoadModel reads a persisted model. A missing artifact surfaces as
// services.ErrModelNotFound so callers can distinguish "train first" from
// real I/O failures.
func LoadModel(path string) (*Model, error) {
	lock := flock.New(path + ".lock")
	if err := lock.RLock(); err != nil {
		return nil, fmt.Errorf("acquire model read lock: %w", err)
	}
	defer lock.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, services.Wrap(services.ErrModelNotFound, "classify", "load model", path, nil)
		}
		return nil, fmt.Errorf("read model: %w", err)
	}

	var model Model
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, services.Wrap(services.ErrTransient, "classify", "load model", "corrupt model artifact", err)
	}
	if err := model.Validate(); err != nil {
		return nil, err
	}
	return &model, nil
}
