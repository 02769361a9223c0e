// Package pipeline orchestrates a deduplication run end to end: extract,
// normalize, block, extract features, classify, cluster, write results. Each
// stage is a barrier; the next stage starts only when the previous one has
// fully completed.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"medmatch/internal/blocking"
	"medmatch/internal/classify"
	"medmatch/internal/cluster"
	"medmatch/internal/config"
	"medmatch/internal/feature"
	"medmatch/internal/logging"
	"medmatch/internal/normalize"
	"medmatch/internal/record"
	"medmatch/internal/results"
	"medmatch/internal/services"
)

// RecordSource hands the pipeline raw records per source. The SQLite store
// implements it; tests substitute in-memory fixtures.
type RecordSource interface {
	Sources() []string
	FetchSource(ctx context.Context, source string) ([]record.Raw, error)
}

// Options select per-run behavior.
type Options struct {
	// Retrain forces a fresh training session even when a persisted model
	// exists.
	Retrain bool
	// AllowTraining permits an interactive labeling session when no usable
	// model is available. When false a missing model aborts the run.
	AllowTraining bool
}

// Outcome summarizes a completed run.
type Outcome struct {
	RunID      string
	ResultPath string
	Clusters   []cluster.Cluster
	Records    int
	Pairs      int
	Trained    bool
}

// Runner executes deduplication runs against a record source.
type Runner struct {
	cfg    *config.Config
	source RecordSource
	oracle classify.Oracle
	logger *slog.Logger
}

// New constructs a Runner. The oracle may be nil when training is never
// requested.
func New(cfg *config.Config, source RecordSource, oracle classify.Oracle, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{cfg: cfg, source: source, oracle: oracle, logger: logger}
}

// prepared carries the stage outputs shared by scoring and training.
type prepared struct {
	records map[string]record.Canonical
	ids     []string
	pairs   []blocking.Pair
	vectors map[blocking.Pair]feature.Vector
}

// Run executes the full pipeline and writes the result artifact.
func (r *Runner) Run(ctx context.Context, opts Options) (*Outcome, error) {
	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, r.logger)
	started := time.Now()

	prep, err := r.prepare(ctx, logger)
	if err != nil {
		return nil, err
	}

	model, trained, err := r.resolveModel(ctx, logger, opts, prep)
	if err != nil {
		return nil, err
	}

	scored, err := classify.Score(ctx, model, prep.pairs, prep.vectors, r.cfg.Dedupe.Workers)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "classify", "score", "scoring failed", err)
	}

	clusters, err := cluster.Partition(scored, prep.ids, r.cfg.Dedupe.Threshold)
	if err != nil {
		return nil, err
	}

	path, err := results.NewWriter(r.cfg.Paths.OutputDir).Write(clusters)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "results", "write", "writing result artifact failed", err)
	}

	logger.Info("run complete",
		slog.Int("records", len(prep.ids)),
		slog.Int("pairs", len(prep.pairs)),
		slog.Int("clusters", len(clusters)),
		slog.Duration("elapsed", time.Since(started)))

	return &Outcome{
		RunID:      runID,
		ResultPath: path,
		Clusters:   clusters,
		Records:    len(prep.ids),
		Pairs:      len(prep.pairs),
		Trained:    trained,
	}, nil
}

// Train runs the extraction stages and an interactive training session, then
// persists the resulting model. It does not score or cluster.
func (r *Runner) Train(ctx context.Context) (*classify.Model, error) {
	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, r.logger)

	prep, err := r.prepare(ctx, logger)
	if err != nil {
		return nil, err
	}
	return r.train(ctx, logger, prep)
}

func (r *Runner) prepare(ctx context.Context, logger *slog.Logger) (*prepared, error) {
	raws, err := r.fetch(ctx, logger)
	if err != nil {
		return nil, err
	}

	records, ids, err := r.normalize(services.WithStage(ctx, "normalize"), logger, raws)
	if err != nil {
		return nil, err
	}

	index, err := blocking.NewIndex(r.cfg.Dedupe.BlockingPredicates)
	if err != nil {
		return nil, err
	}
	canonicals := make([]record.Canonical, 0, len(ids))
	for _, id := range ids {
		canonicals = append(canonicals, records[id])
	}
	pairs := index.Pairs(canonicals)
	logger.Info("candidate pairs generated",
		slog.Int("records", len(ids)),
		slog.Int("pairs", len(pairs)))

	vectors, err := r.extractFeatures(services.WithStage(ctx, "features"), records, pairs)
	if err != nil {
		return nil, err
	}

	return &prepared{records: records, ids: ids, pairs: pairs, vectors: vectors}, nil
}

func (r *Runner) fetch(ctx context.Context, logger *slog.Logger) ([]record.Raw, error) {
	ctx = services.WithStage(ctx, "extract")
	var all []record.Raw
	for _, source := range r.source.Sources() {
		raws, err := r.source.FetchSource(services.WithSource(ctx, source), source)
		if err != nil {
			return nil, services.Wrap(services.ErrTransient, "extract", "fetch source",
				fmt.Sprintf("fetching %s failed", source), err)
		}
		logger.Info("source extracted",
			slog.String(logging.FieldSource, source),
			slog.Int("records", len(raws)))
		all = append(all, raws...)
	}
	if len(all) == 0 {
		return nil, services.Wrap(services.ErrInvalidData, "extract", "fetch source",
			"no records found in any source", nil)
	}
	return all, nil
}

// normalize maps raw records to canonical form over a bounded worker pool and
// validates every result. Records whose values normalized to null keep
// flowing; only a missing identifier or a duplicate identifier aborts the
// run.
func (r *Runner) normalize(
	ctx context.Context,
	logger *slog.Logger,
	raws []record.Raw,
) (map[string]record.Canonical, []string, error) {
	normalizer := normalize.New(r.cfg.FieldMappings, logger)

	workers := r.cfg.Dedupe.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	canonicals := make([]record.Canonical, len(raws))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, raw := range raws {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			canonicals[i] = normalizer.Normalize(raw)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, services.Wrap(services.ErrTransient, "normalize", "normalize records",
			"normalization interrupted", err)
	}

	records := make(map[string]record.Canonical, len(canonicals))
	ids := make([]string, 0, len(canonicals))
	for _, canonical := range canonicals {
		if err := canonical.Validate(); err != nil {
			return nil, nil, err
		}
		if _, dup := records[canonical.ID]; dup {
			return nil, nil, services.Wrap(services.ErrInvalidData, "normalize", "normalize records",
				fmt.Sprintf("duplicate record id %s", canonical.ID), nil)
		}
		records[canonical.ID] = canonical
		ids = append(ids, canonical.ID)
	}
	slices.Sort(ids)
	return records, ids, nil
}

func (r *Runner) extractFeatures(
	ctx context.Context,
	records map[string]record.Canonical,
	pairs []blocking.Pair,
) (map[blocking.Pair]feature.Vector, error) {
	workers := r.cfg.Dedupe.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	computed := make([]feature.Vector, len(pairs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, pair := range pairs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			computed[i] = feature.Extract(records[pair.Left], records[pair.Right])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, services.Wrap(services.ErrTransient, "features", "extract features",
			"feature extraction interrupted", err)
	}

	vectors := make(map[blocking.Pair]feature.Vector, len(pairs))
	for i, pair := range pairs {
		vectors[pair] = computed[i]
	}
	return vectors, nil
}

// resolveModel loads the persisted model or trains a new one, depending on
// the run options and whether an artifact exists.
func (r *Runner) resolveModel(
	ctx context.Context,
	logger *slog.Logger,
	opts Options,
	prep *prepared,
) (*classify.Model, bool, error) {
	modelPath := r.cfg.Paths.Model

	if !opts.Retrain && classify.ModelExists(modelPath) {
		model, err := classify.LoadModel(modelPath)
		if err != nil {
			return nil, false, err
		}
		if !slices.Equal(model.Predicates, r.cfg.Dedupe.BlockingPredicates) {
			logger.Warn("model was trained under different blocking predicates",
				slog.Any("model_predicates", model.Predicates),
				slog.Any("configured_predicates", r.cfg.Dedupe.BlockingPredicates))
		}
		logger.Info("loaded persisted model", slog.String("path", modelPath))
		return model, false, nil
	}

	if !opts.AllowTraining {
		return nil, false, services.Wrap(services.ErrModelNotFound, "classify", "resolve model",
			"no trained model available and training is disabled for this run", nil)
	}

	model, err := r.train(ctx, logger, prep)
	if err != nil {
		return nil, false, err
	}
	return model, true, nil
}

func (r *Runner) train(ctx context.Context, logger *slog.Logger, prep *prepared) (*classify.Model, error) {
	if r.oracle == nil {
		return nil, services.Wrap(services.ErrConfiguration, "classify", "train",
			"training requested but no labeling oracle is available", nil)
	}

	ctx = services.WithStage(ctx, "train")
	trainer := classify.NewTrainer(r.oracle, classify.TrainingOptions{
		LabelBudget:        r.cfg.Dedupe.LabelBudget,
		BatchSize:          r.cfg.Dedupe.LabelBatchSize,
		UncertaintyEpsilon: r.cfg.Dedupe.UncertaintyEpsilon,
		Predicates:         r.cfg.Dedupe.BlockingPredicates,
	}, logger)

	model, err := trainer.Train(ctx, prep.pairs, prep.vectors, prep.records)
	if err != nil {
		return nil, err
	}
	if err := classify.SaveModel(r.cfg.Paths.Model, model); err != nil {
		return nil, services.Wrap(services.ErrTransient, "classify", "save model",
			"persisting trained model failed", err)
	}
	logger.Info("model trained and persisted", slog.String("path", r.cfg.Paths.Model))
	return model, nil
}
