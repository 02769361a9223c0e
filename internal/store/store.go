package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite"

	"medmatch/internal/config"
	"medmatch/internal/record"
)

// Store manages source-record persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the source database and applies the
// schema.
func Open(cfg *config.Config) (*Store, error) {
	dbPath := cfg.Paths.Database
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("ensure database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Sources lists the source tags the store knows, in extraction order.
func (s *Store) Sources() []string {
	return record.Sources()
}

// FetchSource returns every record of one source as a flat raw-record
// sequence carrying the source's declared columns. NULL columns are absent
// from the field map.
func (s *Store) FetchSource(ctx context.Context, source string) ([]record.Raw, error) {
	spec, ok := sourceTables[source]
	if !ok {
		return nil, fmt.Errorf("unknown source %q", source)
	}

	query := fmt.Sprintf("SELECT patient_id, %s FROM %s ORDER BY patient_id",
		strings.Join(spec.columns, ", "), spec.table)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", spec.table, err)
	}
	defer rows.Close()

	var records []record.Raw
	for rows.Next() {
		var localID int64
		values := make([]sql.NullString, len(spec.columns))
		dest := make([]any, 0, len(spec.columns)+1)
		dest = append(dest, &localID)
		for i := range values {
			dest = append(dest, &values[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", spec.table, err)
		}

		fields := make(map[string]string, len(spec.columns))
		for i, column := range spec.columns {
			if values[i].Valid {
				fields[column] = values[i].String
			}
		}
		records = append(records, record.Raw{Source: source, LocalID: localID, Fields: fields})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", spec.table, err)
	}
	return records, nil
}

// Counts returns the number of rows per source, keyed by source tag.
func (s *Store) Counts(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int, len(sourceTables))
	sources := make([]string, 0, len(sourceTables))
	for source := range sourceTables {
		sources = append(sources, source)
	}
	sort.Strings(sources)
	for _, source := range sources {
		var n int
		query := "SELECT COUNT(*) FROM " + sourceTables[source].table
		if err := s.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
			return nil, fmt.Errorf("count %s: %w", sourceTables[source].table, err)
		}
		counts[source] = n
	}
	return counts, nil
}
