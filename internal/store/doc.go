// Package store is the upstream storage collaborator: it owns the SQLite
// database holding one table per patient source and hands the pipeline flat
// raw-record sequences with each source's declared column set.
//
// The pipeline core never touches SQL; it consumes record.Raw values from
// FetchSource. Seed populates the tables with synthetic patients for local
// runs and tests, deliberately writing the same person with per-source
// formatting quirks so the matcher has real work to do.
package store
