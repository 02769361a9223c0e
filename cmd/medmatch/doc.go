// Command medmatch deduplicates patient records spread across care-provider
// source tables. It extracts every source, normalizes records into a shared
// shape, pairs likely duplicates, scores them with a trained classifier, and
// writes one cluster assignment report per run.
package main
