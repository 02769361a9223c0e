package feature_test

import (
	"math"
	"reflect"
	"testing"

	"medmatch/internal/feature"
	"medmatch/internal/record"
)

func TestExtractIsSymmetric(t *testing.T) {
	a := record.Canonical{
		ID:          "clinic_1",
		FirstName:   "john",
		LastName:    "smith",
		DateOfBirth: "1980-01-01",
		PhoneNumber: "5551234",
		Email:       "john@x.com",
		Address:     "12 main st",
	}
	b := record.Canonical{
		ID:          "hospital_2",
		FirstName:   "jon",
		LastName:    "smyth",
		DateOfBirth: "1981-03-04",
		PhoneNumber: "5559999",
		Email:       "jon@x.com",
	}

	ab := feature.Extract(a, b)
	ba := feature.Extract(b, a)
	if !reflect.DeepEqual(ab, ba) {
		t.Fatalf("extractor not symmetric:\n%#v\n%#v", ab, ba)
	}
}

func TestExtractIdenticalRecordsScoreOne(t *testing.T) {
	a := record.Canonical{
		ID:          "clinic_1",
		FirstName:   "john",
		LastName:    "smith",
		DateOfBirth: "1980-01-01",
		PhoneNumber: "5551234",
		Email:       "john@x.com",
		Address:     "12 main st",
	}
	v := feature.Extract(a, a)
	for i, score := range v.Scores {
		if score != 1 {
			t.Errorf("field %s: score = %v, want 1", record.Fields()[i], score)
		}
		if v.Missing[i] != 0 {
			t.Errorf("field %s: unexpected missing indicator", record.Fields()[i])
		}
	}
}

func TestExtractMissingSetsIndicatorNotScore(t *testing.T) {
	a := record.Canonical{ID: "clinic_1", FirstName: "john", LastName: "smith", DateOfBirth: "1980-01-01"}
	b := record.Canonical{ID: "clinic_2", FirstName: "john", LastName: "smith", DateOfBirth: "1980-01-01", PhoneNumber: "5551234"}

	v := feature.Extract(a, b)
	fields := record.Fields()
	for i, field := range fields {
		switch field {
		case record.FieldFirstName, record.FieldLastName, record.FieldDateOfBirth:
			if v.Missing[i] != 0 {
				t.Errorf("%s: unexpected missing indicator", field)
			}
			if v.Scores[i] != 1 {
				t.Errorf("%s: score = %v, want 1", field, v.Scores[i])
			}
		default:
			// phone is null on one side, email/address on both.
			if v.Missing[i] != 1 {
				t.Errorf("%s: expected missing indicator", field)
			}
			if v.Scores[i] != 0 {
				t.Errorf("%s: score = %v, want 0 with indicator set", field, v.Scores[i])
			}
		}
	}
}

func TestCaseFormattingDifferencesScoreHigh(t *testing.T) {
	// Scenario: records differing only in case/formatting before
	// normalization arrive here already canonical, so name and dob
	// similarities are exact.
	a := record.Canonical{ID: "clinic_1", FirstName: "john", LastName: "smith", DateOfBirth: "1980-01-01", PhoneNumber: "5551234", Email: "john@x.com"}
	b := record.Canonical{ID: "urgent_care_2", FirstName: "john", LastName: "smith", DateOfBirth: "1980-01-01", PhoneNumber: "5551234", Email: "j@x.com"}

	v := feature.Extract(a, b)
	fields := record.Fields()
	for i, field := range fields {
		switch field {
		case record.FieldFirstName, record.FieldLastName, record.FieldDateOfBirth:
			if v.Scores[i] < 0.9 {
				t.Errorf("%s: score = %v, want >= 0.9", field, v.Scores[i])
			}
		}
	}
}

func TestDateTwentyYearsApartScoresLow(t *testing.T) {
	a := record.Canonical{ID: "c_1", FirstName: "john", LastName: "smith", DateOfBirth: "1960-01-01"}
	b := record.Canonical{ID: "c_2", FirstName: "john", LastName: "smith", DateOfBirth: "1980-01-01"}

	v := feature.Extract(a, b)
	dobIdx := len(record.Fields()) - 1
	if record.Fields()[dobIdx] != record.FieldDateOfBirth {
		t.Fatal("field order changed; update test")
	}
	if v.Scores[dobIdx] > 0.5 {
		t.Fatalf("dob 20 years apart scored %v, want <= 0.5", v.Scores[dobIdx])
	}
}

func TestVectorValuesLayout(t *testing.T) {
	a := record.Canonical{ID: "c_1", FirstName: "ann", LastName: "lee", DateOfBirth: "1990-05-05"}
	v := feature.Extract(a, a)

	values := v.Values()
	names := feature.Names()
	if len(values) != len(names) {
		t.Fatalf("values len %d != names len %d", len(values), len(names))
	}
	if len(values) != 2*len(record.Fields()) {
		t.Fatalf("expected one score and one indicator per field, got %d", len(values))
	}
}

func TestStringSimilarityBounds(t *testing.T) {
	a := record.Canonical{ID: "c_1", FirstName: "abc", LastName: "x", DateOfBirth: "1990-05-05"}
	b := record.Canonical{ID: "c_2", FirstName: "xyz", LastName: "x", DateOfBirth: "1990-05-05"}
	v := feature.Extract(a, b)
	for i, score := range v.Scores {
		if score < 0 || score > 1 || math.IsNaN(score) {
			t.Errorf("field %d: score %v out of [0,1]", i, score)
		}
	}
	if v.Scores[0] != 0 {
		t.Errorf("disjoint strings of equal length should score 0, got %v", v.Scores[0])
	}
}
