// Package feature computes symmetric similarity feature vectors for
// candidate record pairs.
//
// Each canonical comparison field contributes a similarity score in [0,1]
// plus a missing indicator. Missing data is never folded into the similarity
// score itself; the indicator bit keeps "value absent" distinguishable from
// "values present and dissimilar" so the classifier cannot learn that absence
// implies mismatch.
package feature
