package save

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps all slots in one database file
type SQLiteStore struct {
	db  *sql.DB
	Log *log.Logger
}

// OpenSQLite opens (or creates) the save database at path
func OpenSQLite(path string, logger *log.Logger) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if logger == nil {
		logger = log.Default()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	stmts := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=5000;",
		`CREATE TABLE IF NOT EXISTS saves (
			slot TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			updated_at TEXT NOT NULL
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return &SQLiteStore{db: db, Log: logger}, nil
}

func (s *SQLiteStore) Save(ctx context.Context, slot string, st PlayerState) error {
	if err := ValidSlot(slot); err != nil {
		return err
	}
	data, err := encode(st)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO saves (slot, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(slot) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		slot, data, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save slot %q: %w", slot, err)
	}
	s.Log.Printf("saved slot %s", slot)
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context, slot string) (PlayerState, error) {
	if err := ValidSlot(slot); err != nil {
		return PlayerState{}, err
	}
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM saves WHERE slot = ?`, slot).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return PlayerState{}, notFound(slot, err)
	}
	if err != nil {
		return PlayerState{}, err
	}
	st, err := decode(slot, data)
	if err != nil {
		return st, err
	}
	s.Log.Printf("loaded slot %s: map %s", slot, st.LastMap)
	return st, nil
}

func (s *SQLiteStore) Slots(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT slot FROM saves ORDER BY slot`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var slots []string
	for rows.Next() {
		var slot string
		if err := rows.Scan(&slot); err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, rows.Err()
}

func (s *SQLiteStore) Delete(ctx context.Context, slot string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM saves WHERE slot = ?`, slot)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFound(slot, nil)
	}
	return nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }
