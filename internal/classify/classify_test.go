package classify_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"medmatch/internal/blocking"
	"medmatch/internal/classify"
	"medmatch/internal/feature"
	"medmatch/internal/record"
	"medmatch/internal/services"
	"medmatch/internal/testsupport"
)

// trainingPool builds a pool where pairs with even indices are near-identical
// records (true matches) and odd indices are dissimilar people.
func trainingPool(size int) ([]blocking.Pair, map[blocking.Pair]feature.Vector, map[string]record.Canonical, map[blocking.Pair]bool) {
	pairs := make([]blocking.Pair, 0, size)
	vectors := make(map[blocking.Pair]feature.Vector, size)
	records := make(map[string]record.Canonical, 2*size)
	truth := make(map[blocking.Pair]bool, size)

	for i := 0; i < size; i++ {
		match := i%2 == 0
		left := record.Canonical{
			ID:          fmt.Sprintf("clinic_%d", i),
			FirstName:   "john",
			LastName:    "smith",
			DateOfBirth: "1980-01-01",
			PhoneNumber: "5551234",
			Email:       "john@x.com",
		}
		right := left
		right.ID = fmt.Sprintf("hospital_%d", i)
		if !match {
			right.FirstName = fmt.Sprintf("zara%d", i)
			right.LastName = "quintero"
			right.DateOfBirth = "1955-09-09"
			right.PhoneNumber = fmt.Sprintf("999%04d", i)
			right.Email = fmt.Sprintf("z%d@other.org", i)
		}

		pair := blocking.NewPair(left.ID, right.ID)
		pairs = append(pairs, pair)
		vectors[pair] = feature.Extract(left, right)
		records[left.ID] = left
		records[right.ID] = right
		truth[pair] = match
	}
	return pairs, vectors, records, truth
}

func truthOracle(truth map[blocking.Pair]bool) *testsupport.ScriptedOracle {
	return &testsupport.ScriptedOracle{Judge: func(q classify.Query) classify.Label {
		if truth[q.Pair] {
			return classify.LabelMatch
		}
		return classify.LabelDistinct
	}}
}

func trainingOptions() classify.TrainingOptions {
	return classify.TrainingOptions{
		LabelBudget:        20,
		BatchSize:          5,
		UncertaintyEpsilon: 0.05,
		Predicates:         []string{"last_name_birth_year"},
	}
}

func TestTrainSeparatesMatchesFromDistincts(t *testing.T) {
	pairs, vectors, records, truth := trainingPool(20)
	trainer := classify.NewTrainer(truthOracle(truth), trainingOptions(), nil)

	model, err := trainer.Train(context.Background(), pairs, vectors, records)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	if err := model.Validate(); err != nil {
		t.Fatalf("trained model invalid: %v", err)
	}
	if len(model.Predicates) != 1 || model.Predicates[0] != "last_name_birth_year" {
		t.Fatalf("predicates not recorded: %#v", model.Predicates)
	}

	for pair, isMatch := range truth {
		p := model.Probability(vectors[pair])
		if isMatch && p < 0.7 {
			t.Errorf("match pair %v scored %v, want >= 0.7", pair, p)
		}
		if !isMatch && p > 0.3 {
			t.Errorf("distinct pair %v scored %v, want <= 0.3", pair, p)
		}
	}
}

func TestTrainFailsWithoutBothClasses(t *testing.T) {
	pairs, vectors, records, _ := trainingPool(10)
	// Oracle that confirms everything as a match: no distinct examples.
	oracle := &testsupport.ScriptedOracle{Judge: func(classify.Query) classify.Label {
		return classify.LabelMatch
	}}
	trainer := classify.NewTrainer(oracle, trainingOptions(), nil)

	_, err := trainer.Train(context.Background(), pairs, vectors, records)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestTrainSkipsDoNotCount(t *testing.T) {
	pairs, vectors, records, truth := trainingPool(10)
	oracle := &testsupport.ScriptedOracle{Judge: func(classify.Query) classify.Label {
		return classify.LabelSkip
	}}
	trainer := classify.NewTrainer(oracle, trainingOptions(), nil)

	if _, err := trainer.Train(context.Background(), pairs, vectors, records); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("all-skip training should hard-fail, got %v", err)
	}

	// Sanity: the same pool trains fine with a truthful oracle.
	if _, err := classify.NewTrainer(truthOracle(truth), trainingOptions(), nil).Train(context.Background(), pairs, vectors, records); err != nil {
		t.Fatalf("control training failed: %v", err)
	}
}

func TestTrainCancellationDiscardsModel(t *testing.T) {
	pairs, vectors, records, truth := trainingPool(10)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	trainer := classify.NewTrainer(truthOracle(truth), trainingOptions(), nil)
	model, err := trainer.Train(ctx, pairs, vectors, records)
	if err == nil {
		t.Fatal("expected cancellation error")
	}
	if model != nil {
		t.Fatal("cancelled training must not return a partial model")
	}
}

func TestTrainRespectsBatchProtocol(t *testing.T) {
	pairs, vectors, records, truth := trainingPool(30)
	oracle := truthOracle(truth)
	opts := trainingOptions()
	opts.LabelBudget = 12
	opts.BatchSize = 4
	opts.UncertaintyEpsilon = 1e-9 // never converge early

	if _, err := classify.NewTrainer(oracle, opts, nil).Train(context.Background(), pairs, vectors, records); err != nil {
		t.Fatalf("Train: %v", err)
	}
	if oracle.Calls != 3 {
		t.Fatalf("expected 3 labeling rounds of 4, got %d", oracle.Calls)
	}
}

func TestScoreIsDeterministicAndPure(t *testing.T) {
	pairs, vectors, records, truth := trainingPool(16)
	model, err := classify.NewTrainer(truthOracle(truth), trainingOptions(), nil).Train(context.Background(), pairs, vectors, records)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}

	first, err := classify.Score(context.Background(), model, pairs, vectors, 4)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	second, err := classify.Score(context.Background(), model, pairs, vectors, 1)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}

	if len(first) != len(pairs) {
		t.Fatalf("scored %d pairs, want %d", len(first), len(pairs))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("scoring not deterministic at %d: %#v vs %#v", i, first[i], second[i])
		}
		if p := first[i].Probability; p < 0 || p > 1 {
			t.Fatalf("probability out of range: %v", p)
		}
		if first[i].Pair != pairs[i] {
			t.Fatalf("pair order changed at %d", i)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	pairs, vectors, records, truth := trainingPool(10)
	model, err := classify.NewTrainer(truthOracle(truth), trainingOptions(), nil).Train(context.Background(), pairs, vectors, records)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}

	if classify.ModelExists(cfg.Paths.Model) {
		t.Fatal("model should not exist yet")
	}
	if err := classify.SaveModel(cfg.Paths.Model, model); err != nil {
		t.Fatalf("SaveModel: %v", err)
	}
	if !classify.ModelExists(cfg.Paths.Model) {
		t.Fatal("model artifact missing after save")
	}

	loaded, err := classify.LoadModel(cfg.Paths.Model)
	if err != nil {
		t.Fatalf("LoadModel: %v", err)
	}
	if loaded.Intercept != model.Intercept || len(loaded.Weights) != len(model.Weights) {
		t.Fatalf("round trip drifted: %#v vs %#v", loaded, model)
	}
	for _, pair := range pairs {
		if loaded.Probability(vectors[pair]) != model.Probability(vectors[pair]) {
			t.Fatal("loaded model scores differently")
		}
	}
}

func TestLoadMissingModel(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	_, err := classify.LoadModel(cfg.Paths.Model)
	if !errors.Is(err, services.ErrModelNotFound) {
		t.Fatalf("expected model-not-found, got %v", err)
	}
}
