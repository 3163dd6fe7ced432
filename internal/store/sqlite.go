package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SchemaVersion is the version of the database layout written by NewSQLite.
const SchemaVersion = "1"

// SQLite is a SQLite-backed store.
type SQLite struct {
	mu sync.Mutex
	db *sql.DB
}

// NewSQLite opens or creates a store at the given path.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Values are stored as text so that infinities survive the round trip.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			expr TEXT NOT NULL,
			mode TEXT NOT NULL,
			created TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS results (
			run_id TEXT NOT NULL,
			step INTEGER NOT NULL,
			value TEXT NOT NULL,
			PRIMARY KEY (run_id, step),
			FOREIGN KEY (run_id) REFERENCES runs(id)
		);
		CREATE TABLE IF NOT EXISTS bindings (
			run_id TEXT NOT NULL,
			step INTEGER NOT NULL,
			pos INTEGER NOT NULL,
			name TEXT NOT NULL,
			value TEXT NOT NULL,
			PRIMARY KEY (run_id, step, pos)
		);
		CREATE TABLE IF NOT EXISTS metadata (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, err
	}

	s := &SQLite{db: db}
	version, err := s.metadata("schema_version")
	if err != nil {
		db.Close()
		return nil, err
	}
	switch version {
	case "":
		if err := s.setMetadata("schema_version", SchemaVersion); err != nil {
			db.Close()
			return nil, err
		}
	case SchemaVersion:
	default:
		db.Close()
		return nil, fmt.Errorf("unsupported schema version: %s (expected %s)", version, SchemaVersion)
	}
	return s, nil
}

// metadata retrieves a metadata value (caller must hold lock or be in init).
func (s *SQLite) metadata(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM metadata WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *SQLite) setMetadata(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

// SaveRun records a run and its rows in one transaction. Saving a run with
// an existing ID replaces it.
func (s *SQLite) SaveRun(ctx context.Context, run Run) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.Created.IsZero() {
		run.Created = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	for _, q := range []string{
		"DELETE FROM bindings WHERE run_id = ?",
		"DELETE FROM results WHERE run_id = ?",
	} {
		if _, err := tx.ExecContext(ctx, q, run.ID); err != nil {
			return "", err
		}
	}
	// Upsert keeps the rowid of a replaced run, and with it its place in Runs.
	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, expr, mode, created) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET expr = excluded.expr, mode = excluded.mode, created = excluded.created
	`, run.ID, run.Expr, run.Mode, run.Created.Format(time.RFC3339Nano))
	if err != nil {
		return "", err
	}
	for _, row := range run.Rows {
		_, err := tx.ExecContext(ctx, "INSERT INTO results (run_id, step, value) VALUES (?, ?, ?)",
			run.ID, row.Step, ftoa(row.Value))
		if err != nil {
			return "", fmt.Errorf("saving step %d: %w", row.Step, err)
		}
		for i, b := range row.Bindings {
			_, err := tx.ExecContext(ctx, "INSERT INTO bindings (run_id, step, pos, name, value) VALUES (?, ?, ?, ?, ?)",
				run.ID, row.Step, i, b.Name, ftoa(b.Value))
			if err != nil {
				return "", fmt.Errorf("saving binding %s at step %d: %w", b.Name, row.Step, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	return run.ID, nil
}

// Run retrieves a run with its rows.
func (s *SQLite) Run(ctx context.Context, id string) (Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run := Run{ID: id}
	var created string
	err := s.db.QueryRowContext(ctx, "SELECT expr, mode, created FROM runs WHERE id = ?", id).
		Scan(&run.Expr, &run.Mode, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrNotFound
	}
	if err != nil {
		return Run{}, err
	}
	run.Created, err = time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return Run{}, fmt.Errorf("run %s: bad creation time: %w", id, err)
	}
	run.Rows, err = s.rows(ctx, id)
	if err != nil {
		return Run{}, err
	}
	return run, nil
}

// Results retrieves the rows of a run.
func (s *SQLite) Results(ctx context.Context, id string) ([]Row, error) {
	run, err := s.Run(ctx, id)
	if err != nil {
		return nil, err
	}
	return run.Rows, nil
}

// rows loads the rows of a run (caller must hold lock).
func (s *SQLite) rows(ctx context.Context, id string) ([]Row, error) {
	rs, err := s.db.QueryContext(ctx, "SELECT step, value FROM results WHERE run_id = ? ORDER BY step", id)
	if err != nil {
		return nil, err
	}
	var rows []Row
	index := make(map[int]int)
	for rs.Next() {
		var row Row
		var v string
		if err := rs.Scan(&row.Step, &v); err != nil {
			rs.Close()
			return nil, err
		}
		if row.Value, err = atof(v); err != nil {
			rs.Close()
			return nil, err
		}
		index[row.Step] = len(rows)
		rows = append(rows, row)
	}
	rs.Close()
	if err := rs.Err(); err != nil {
		return nil, err
	}

	bs, err := s.db.QueryContext(ctx, "SELECT step, name, value FROM bindings WHERE run_id = ? ORDER BY step, pos", id)
	if err != nil {
		return nil, err
	}
	defer bs.Close()
	for bs.Next() {
		var step int
		var b Binding
		var v string
		if err := bs.Scan(&step, &b.Name, &v); err != nil {
			return nil, err
		}
		if b.Value, err = atof(v); err != nil {
			return nil, err
		}
		i, ok := index[step]
		if !ok {
			return nil, fmt.Errorf("run %s: binding %s for missing step %d", id, b.Name, step)
		}
		rows[i].Bindings = append(rows[i].Bindings, b)
	}
	return rows, bs.Err()
}

// Runs lists run IDs in the order they were first saved.
func (s *SQLite) Runs(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rs, err := s.db.QueryContext(ctx, "SELECT id FROM runs ORDER BY rowid")
	if err != nil {
		return nil, err
	}
	defer rs.Close()
	var ids []string
	for rs.Next() {
		var id string
		if err := rs.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rs.Err()
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func atof(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("bad stored value %q: %w", s, err)
	}
	return v, nil
}
