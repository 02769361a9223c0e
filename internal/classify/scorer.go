package classify

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"medmatch/internal/blocking"
	"medmatch/internal/feature"
)

// ScoredPair couples a candidate pair with its match probability.
type ScoredPair struct {
	Pair        blocking.Pair
	Probability float64
}

// Score computes the match probability for every candidate pair. It is a
// pure function of the vectors and the model: no side effects, no oracle.
// Work fans out over a bounded pool; results keep the input pair order so
// downstream output is deterministic.
func Score(
	ctx context.Context,
	model *Model,
	pairs []blocking.Pair,
	vectors map[blocking.Pair]feature.Vector,
	workers int,
) ([]ScoredPair, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	scored := make([]ScoredPair, len(pairs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, pair := range pairs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			scored[i] = ScoredPair{Pair: pair, Probability: model.Probability(vectors[pair])}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scored, nil
}
