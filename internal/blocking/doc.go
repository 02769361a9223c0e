// Package blocking bounds candidate-pair generation by grouping canonical
// records under cheap derived keys.
//
// Records are compared only when at least one configured predicate assigns
// them the same key. A true-duplicate pair sharing no predicate value is
// never generated; that recall loss is the accepted price of avoiding the
// O(n²) exhaustive comparison.
package blocking
