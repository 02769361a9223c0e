// Package classify estimates match probabilities for candidate pairs.
//
// The classifier is a logistic regression over feature vectors, trained via
// active learning against an injected labeling oracle and persisted as a
// versionless JSON artifact alongside the blocking predicate definitions in
// force at training time. Scoring is a pure function of vector and model; it
// never touches the oracle. The abstraction is deliberately small (train,
// score, persist) so alternative scoring strategies can be swapped without
// touching blocking or clustering.
package classify
