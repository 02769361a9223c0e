package classify

import (
	"time"

	"medmatch/internal/feature"
)

// Example is a labeled feature vector used during training.
type Example struct {
	Vector feature.Vector
	Match  bool
}

const (
	fitIterations   = 500
	fitLearningRate = 0.5
	fitL2Penalty    = 1e-3
)

// fit runs batch gradient descent for logistic regression with a small L2
// penalty. Deterministic: no sampling, fixed iteration count.
func fit(examples []Example) *Model {
	names := feature.Names()
	weights := make([]float64, len(names))
	var intercept float64

	if len(examples) == 0 {
		return &Model{Weights: weights, FeatureNames: names, TrainedAt: time.Now().UTC()}
	}

	inputs := make([][]float64, len(examples))
	targets := make([]float64, len(examples))
	for i, ex := range examples {
		inputs[i] = ex.Vector.Values()
		if ex.Match {
			targets[i] = 1
		}
	}

	n := float64(len(examples))
	gradW := make([]float64, len(weights))
	for iter := 0; iter < fitIterations; iter++ {
		for j := range gradW {
			gradW[j] = 0
		}
		var gradB float64
		for i, x := range inputs {
			p := sigmoid(intercept + dot(weights, x))
			residual := p - targets[i]
			for j := range weights {
				gradW[j] += residual * x[j]
			}
			gradB += residual
		}
		for j := range weights {
			weights[j] -= fitLearningRate * (gradW[j]/n + fitL2Penalty*weights[j])
		}
		intercept -= fitLearningRate * gradB / n
	}

	return &Model{
		Weights:      weights,
		Intercept:    intercept,
		FeatureNames: names,
		TrainedAt:    time.Now().UTC(),
	}
}
