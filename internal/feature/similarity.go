package feature

import (
	"math"
	"time"
)

// dateHalfScaleDays grades date similarity: a day difference equal to this
// value scores 0.5, and similarity decays hyperbolically beyond it.
const dateHalfScaleDays = 3650

// stringSimilarity returns 1 - normalized Levenshtein distance. Identical
// strings score 1, fully dissimilar strings approach 0.
func stringSimilarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein(a, b))/float64(longest)
}

// levenshtein computes edit distance with the two-row dynamic program.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// dateSimilarity grades two ISO dates by their day difference. Equal dates
// score 1; dates a decade apart score 0.5.
func dateSimilarity(a, b string) float64 {
	if a == b {
		return 1
	}
	ta, errA := time.Parse("2006-01-02", a)
	tb, errB := time.Parse("2006-01-02", b)
	if errA != nil || errB != nil {
		// Normalization guarantees ISO dates; anything else gets the
		// string treatment.
		return stringSimilarity(a, b)
	}
	days := math.Abs(ta.Sub(tb).Hours()) / 24
	return 1 / (1 + days/dateHalfScaleDays)
}

// phoneSimilarity is exact match over normalized digit strings.
func phoneSimilarity(a, b string) float64 {
	if a == b {
		return 1
	}
	return 0
}
