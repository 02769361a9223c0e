package feature

import "medmatch/internal/record"

// Extract computes the symmetric feature vector for two canonical records.
// Extract(a, b) equals Extract(b, a) for every field.
func Extract(a, b record.Canonical) Vector {
	fields := record.Fields()
	v := Vector{
		Scores:  make([]float64, len(fields)),
		Missing: make([]float64, len(fields)),
	}

	for i, field := range fields {
		left, right := a.Field(field), b.Field(field)
		if left == "" || right == "" {
			v.Missing[i] = 1
			continue
		}
		switch field {
		case record.FieldDateOfBirth:
			v.Scores[i] = dateSimilarity(left, right)
		case record.FieldPhoneNumber:
			v.Scores[i] = phoneSimilarity(left, right)
		default:
			v.Scores[i] = stringSimilarity(left, right)
		}
	}
	return v
}
