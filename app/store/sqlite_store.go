package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/lysyi3m/draw-comb/app/draw"
)

// SQLiteStore persists records in a SQLite database with a unique index over
// the (game, phase) identity key.
type SQLiteStore struct {
	db  *sql.DB
	loc *time.Location
}

// OpenSQLiteStore opens (creating if necessary) the database at path and
// applies pending migrations.
func OpenSQLiteStore(path string, loc *time.Location) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Whole-store access is single-process and sequential; one connection
	// avoids SQLITE_BUSY between migration and data statements.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, _, err := RunMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db, loc: loc}, nil
}

func (s *SQLiteStore) Records() ([]Record, error) {
	rows, err := s.db.Query(`
		SELECT date, game, phase, result, inserted_at
		FROM results
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.Date, &r.Game, &r.Phase, &r.Result, &r.InsertedAt); err != nil {
			return nil, fmt.Errorf("failed to scan record row: %w", err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating record rows: %w", err)
	}

	return records, nil
}

func (s *SQLiteStore) ExistingKeys() (map[string]struct{}, error) {
	rows, err := s.db.Query(`SELECT game, phase FROM results WHERE game != '' AND phase != ''`)
	if err != nil {
		return nil, fmt.Errorf("failed to get existing keys: %w", err)
	}
	defer rows.Close()

	keys := make(map[string]struct{})
	for rows.Next() {
		var game, phase string
		if err := rows.Scan(&game, &phase); err != nil {
			return nil, fmt.Errorf("failed to scan key row: %w", err)
		}
		keys[Key(game, phase)] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating key rows: %w", err)
	}

	return keys, nil
}

func (s *SQLiteStore) AppendNew(results []draw.Result, now time.Time) (int, error) {
	if len(results) == 0 {
		return 0, nil
	}

	insertedAt := now.In(s.loc).Format(time.RFC3339)
	appended := 0

	for _, res := range results {
		result, err := s.db.Exec(`
			INSERT INTO results (date, game, phase, result, inserted_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT (game, phase) DO NOTHING
		`, res.DateISO, res.Game, res.Phase, res.Numbers, insertedAt)
		if err != nil {
			return appended, fmt.Errorf("failed to append record: %w", err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return appended, fmt.Errorf("failed to count appended rows: %w", err)
		}
		appended += int(affected)
	}

	return appended, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
