package classify

import (
	"context"
	"log/slog"
	"math"
	"sort"

	"medmatch/internal/blocking"
	"medmatch/internal/feature"
	"medmatch/internal/logging"
	"medmatch/internal/record"
	"medmatch/internal/services"
)

// TrainingOptions bound the active-learning loop.
type TrainingOptions struct {
	// LabelBudget caps the total number of oracle labels requested.
	LabelBudget int
	// BatchSize bounds each labeling round.
	BatchSize int
	// UncertaintyEpsilon stops training once no unlabeled pair is more
	// uncertain than this distance from a coin flip.
	UncertaintyEpsilon float64
	// Predicates are recorded in the model so a later run can detect that
	// the blocking configuration changed since training.
	Predicates []string
}

// Trainer drives the active-learning labeling loop against an oracle.
type Trainer struct {
	oracle Oracle
	opts   TrainingOptions
	logger *slog.Logger
}

// NewTrainer constructs a Trainer.
func NewTrainer(oracle Oracle, opts TrainingOptions, logger *slog.Logger) *Trainer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Trainer{oracle: oracle, opts: opts, logger: logger}
}

// Train runs uncertainty sampling over the candidate pool: each round it
// selects the pairs whose probability under the current weights is nearest
// 0.5, asks the oracle to label them, and refits. It stops when the label
// budget is exhausted or uncertainty converges. Training that ends with zero
// confirmed matches or zero confirmed distincts is a hard failure, and any
// error (including cancellation) discards the partial fit.
func (t *Trainer) Train(
	ctx context.Context,
	pairs []blocking.Pair,
	vectors map[blocking.Pair]feature.Vector,
	records map[string]record.Canonical,
) (*Model, error) {
	if len(pairs) == 0 {
		return nil, services.Wrap(services.ErrValidation, "classify", "train",
			"no candidate pairs to train on", nil)
	}

	unlabeled := make([]blocking.Pair, len(pairs))
	copy(unlabeled, pairs)

	var examples []Example
	var matches, distincts int
	model := fit(nil)

	labelsUsed := 0
	for labelsUsed < t.opts.LabelBudget && len(unlabeled) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, services.Wrap(services.ErrTransient, "classify", "train", "training cancelled", err)
		}

		// Most uncertain first: probability nearest 0.5.
		sort.SliceStable(unlabeled, func(i, j int) bool {
			return uncertainty(model, vectors[unlabeled[i]]) > uncertainty(model, vectors[unlabeled[j]])
		})

		if uncertainty(model, vectors[unlabeled[0]]) < t.opts.UncertaintyEpsilon && len(examples) > 0 {
			t.logger.Info("uncertainty converged, stopping labeling",
				slog.Int("labels_used", labelsUsed))
			break
		}

		batch := t.opts.BatchSize
		if remaining := t.opts.LabelBudget - labelsUsed; batch > remaining {
			batch = remaining
		}
		if batch > len(unlabeled) {
			batch = len(unlabeled)
		}

		queries := make([]Query, batch)
		for i := 0; i < batch; i++ {
			pair := unlabeled[i]
			queries[i] = Query{Pair: pair, Left: records[pair.Left], Right: records[pair.Right]}
		}

		labels, err := t.oracle.Label(ctx, queries)
		if err != nil {
			return nil, services.Wrap(services.ErrTransient, "classify", "train", "oracle unavailable", err)
		}
		if len(labels) != len(queries) {
			return nil, services.Wrap(services.ErrValidation, "classify", "train",
				"oracle returned mismatched label count", nil)
		}

		for i, label := range labels {
			switch label {
			case LabelMatch:
				examples = append(examples, Example{Vector: vectors[queries[i].Pair], Match: true})
				matches++
			case LabelDistinct:
				examples = append(examples, Example{Vector: vectors[queries[i].Pair], Match: false})
				distincts++
			}
		}
		labelsUsed += batch
		unlabeled = unlabeled[batch:]

		if len(examples) > 0 {
			model = fit(examples)
		}
		t.logger.Info("labeling round complete",
			slog.Int("labels_used", labelsUsed),
			slog.Int("matches", matches),
			slog.Int("distincts", distincts))
	}

	if matches == 0 || distincts == 0 {
		return nil, services.Wrap(services.ErrValidation, "classify", "train",
			"training requires at least one confirmed match and one confirmed distinct pair", nil)
	}

	model.Predicates = append([]string(nil), t.opts.Predicates...)
	return model, nil
}

// uncertainty is the distance from certainty: 0.5 for a coin flip, 0 for a
// confident prediction.
func uncertainty(m *Model, v feature.Vector) float64 {
	return 0.5 - math.Abs(m.Probability(v)-0.5)
}
