package feature

import "medmatch/internal/record"

// Vector is the fixed-order feature representation of a candidate pair.
// Scores[i] is the similarity for record.Fields()[i]; Missing[i] is 1 when
// the value is null on either side (in which case Scores[i] is 0 and carries
// no signal on its own).
type Vector struct {
	Scores  []float64
	Missing []float64
}

// Names returns the flattened feature names in the order Values uses:
// one similarity per field followed by one missing indicator per field.
func Names() []string {
	fields := record.Fields()
	names := make([]string, 0, 2*len(fields))
	for _, field := range fields {
		names = append(names, field)
	}
	for _, field := range fields {
		names = append(names, field+"_missing")
	}
	return names
}

// Values flattens the vector for the classifier: similarities first, then
// missing indicators.
func (v Vector) Values() []float64 {
	values := make([]float64, 0, len(v.Scores)+len(v.Missing))
	values = append(values, v.Scores...)
	values = append(values, v.Missing...)
	return values
}
