// Package sqlite provides an embedded table store used for local development and
// single-node deployments. Every collection is a table of JSON payloads.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/mamadbah2/retailsheet/internal/domain/models"
	"github.com/mamadbah2/retailsheet/internal/repository/tablestore"
)

// createdAtLayout is fixed width so that text ordering matches time ordering.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z"

var collectionName = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

var _ tablestore.Store = (*Store)(nil)

// Store implements tablestore.Store on top of a SQLite database file.
type Store struct {
	db     *sql.DB
	mu     sync.Mutex
	tables map[string]bool
	now    func() time.Time
}

// NewStore opens (or creates) the database at path. ":memory:" keeps everything in
// process memory.
func NewStore(path string) (*Store, error) {
	if path == "" {
		path = "retailsheet.db"
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and avoids lock contention.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return &Store{db: db, tables: make(map[string]bool), now: time.Now}, nil
}

func (s *Store) ensureTable(ctx context.Context, collection string) error {
	if !collectionName.MatchString(collection) {
		return fmt.Errorf("invalid collection name %q", collection)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tables[collection] {
		return nil
	}

	stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at TEXT NOT NULL,
		payload TEXT NOT NULL
	)`, collection)
	if _, err := s.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("create table %s: %w", collection, err)
	}
	s.tables[collection] = true
	return nil
}

// Count returns the number of rows in the collection.
func (s *Store) Count(ctx context.Context, collection string) (int, error) {
	if err := s.ensureTable(ctx, collection); err != nil {
		return 0, err
	}

	var n int
	if err := s.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, collection)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", collection, err)
	}
	return n, nil
}

// Insert writes docs inside one transaction so a batch is stored entirely or not at all.
func (s *Store) Insert(ctx context.Context, collection string, docs []models.Document) ([]models.Document, error) {
	if err := s.ensureTable(ctx, collection); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin insert into %s: %w", collection, err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`INSERT INTO %s (created_at, payload) VALUES (?, ?)`, collection))
	if err != nil {
		return nil, fmt.Errorf("prepare insert into %s: %w", collection, err)
	}
	defer func() { _ = stmt.Close() }()

	createdAt := s.now().UTC().Format(createdAtLayout)
	stored := make([]models.Document, 0, len(docs))

	for _, doc := range docs {
		payload, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("encode row for %s: %w", collection, err)
		}
		res, err := stmt.ExecContext(ctx, createdAt, string(payload))
		if err != nil {
			return nil, fmt.Errorf("insert into %s: %w", collection, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("read id from %s: %w", collection, err)
		}

		row := make(models.Document, len(doc)+2)
		for k, v := range doc {
			row[k] = v
		}
		row["id"] = id
		row["created_at"] = createdAt
		stored = append(stored, row)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit insert into %s: %w", collection, err)
	}
	return stored, nil
}

// SelectRange returns a window of rows, newest first. The row id breaks ties between
// rows of the same batch.
func (s *Store) SelectRange(ctx context.Context, collection string, offset, limit int) ([]models.Document, error) {
	if err := s.ensureTable(ctx, collection); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT id, created_at, payload FROM %s ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`, collection)
	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("select from %s: %w", collection, err)
	}
	defer func() { _ = rows.Close() }()

	var docs []models.Document
	for rows.Next() {
		var (
			id        int64
			createdAt string
			payload   string
		)
		if err := rows.Scan(&id, &createdAt, &payload); err != nil {
			return nil, fmt.Errorf("scan %s: %w", collection, err)
		}

		doc := models.Document{}
		if err := json.Unmarshal([]byte(payload), &doc); err != nil {
			return nil, fmt.Errorf("decode row %d of %s: %w", id, collection, err)
		}
		doc["id"] = id
		doc["created_at"] = createdAt
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", collection, err)
	}
	return docs, nil
}

// DeleteAll removes every row of the collection.
func (s *Store) DeleteAll(ctx context.Context, collection string) error {
	if err := s.ensureTable(ctx, collection); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s`, collection)); err != nil {
		return fmt.Errorf("delete from %s: %w", collection, err)
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close(_ context.Context) error {
	return s.db.Close()
}
