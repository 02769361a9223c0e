// Package config loads, normalizes, and validates medmatch configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and validates every structural constraint the
// pipeline depends on eagerly: the clustering threshold must lie in the open
// interval (0,1), the blocking predicate set must be non-empty and known, and
// per-source field mappings must target canonical fields. Validation failures
// here abort a run before any comparison work starts.
package config
