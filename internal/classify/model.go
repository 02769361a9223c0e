package classify

import (
	"fmt"
	"math"
	"time"

	"medmatch/internal/feature"
	"medmatch/internal/services"
)

// Model holds trained classifier parameters plus the blocking predicate
// definitions that were in force when it was trained. The persisted form is
// an opaque artifact: there is no schema-versioning contract beyond
// existence checks.
type Model struct {
	Weights      []float64 `json:"weights"`
	Intercept    float64   `json:"intercept"`
	FeatureNames []string  `json:"feature_names"`
	Predicates   []string  `json:"predicates"`
	TrainedAt    time.Time `json:"trained_at"`
}

// Probability returns the match probability for a feature vector.
func (m *Model) Probability(v feature.Vector) float64 {
	return sigmoid(m.Intercept + dot(m.Weights, v.Values()))
}

// Validate checks the model shape matches the current feature layout.
func (m *Model) Validate() error {
	want := feature.Names()
	if len(m.Weights) != len(want) {
		return services.Wrap(services.ErrValidation, "classify", "validate model",
			fmt.Sprintf("model has %d weights, expected %d", len(m.Weights), len(want)), nil)
	}
	if len(m.FeatureNames) != len(want) {
		return services.Wrap(services.ErrValidation, "classify", "validate model",
			fmt.Sprintf("model names %d features, expected %d", len(m.FeatureNames), len(want)), nil)
	}
	for i, name := range want {
		if m.FeatureNames[i] != name {
			return services.Wrap(services.ErrValidation, "classify", "validate model",
				fmt.Sprintf("feature %d is %q, expected %q", i, m.FeatureNames[i], name), nil)
		}
	}
	return nil
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

func dot(w, x []float64) float64 {
	var sum float64
	for i := range w {
		sum += w[i] * x[i]
	}
	return sum
}
