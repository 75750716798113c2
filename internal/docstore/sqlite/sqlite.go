// Package sqlite provides a SQLite-backed docstore implementation.
// Documents are stored as JSON rows keyed by collection and id; change
// notifications fan out through an in-process hub, so subscriptions see
// writes made through the same store handle.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/greathall/greathall/internal/docstore"
	"github.com/greathall/greathall/internal/docstore/sqlite/migrations"
	apperrors "github.com/greathall/greathall/internal/platform/errors"
	sqlitemigrate "github.com/greathall/greathall/internal/platform/storage/sqlitemigrate"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// Store persists documents in SQLite.
type Store struct {
	sqlDB *sql.DB
	hub   *docstore.Hub

	// writeMu serializes write transactions; modernc sqlite allows one
	// writer at a time and immediate transactions fail fast without it.
	writeMu sync.Mutex

	now func() time.Time
}

// Open opens a SQLite document store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{
		sqlDB: sqlDB,
		hub:   docstore.NewHub(),
		now:   time.Now,
	}, nil
}

// OpenInMemory opens a private in-memory document store, used by tests
// and the seed tool's dry-run mode.
func OpenInMemory() (*Store, error) {
	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{
		sqlDB: sqlDB,
		hub:   docstore.NewHub(),
		now:   time.Now,
	}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Get reads one document.
func (s *Store) Get(ctx context.Context, path docstore.Path) (docstore.Snapshot, error) {
	if err := path.Validate(); err != nil {
		return docstore.Snapshot{}, err
	}

	var raw string
	err := s.sqlDB.QueryRowContext(ctx,
		"SELECT data FROM documents WHERE collection = ? AND id = ?",
		path.Collection, path.ID,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return docstore.Snapshot{Path: path}, nil
	}
	if err != nil {
		return docstore.Snapshot{}, fmt.Errorf("get document %s: %w", path, err)
	}

	data, err := decodeRow(raw)
	if err != nil {
		return docstore.Snapshot{}, fmt.Errorf("get document %s: %w", path, err)
	}
	return docstore.Snapshot{Path: path, Exists: true, Data: data}, nil
}

// List reads every document in a collection, ordered by id.
func (s *Store) List(ctx context.Context, collection string) ([]docstore.Snapshot, error) {
	return s.Query(ctx, collection, nil)
}

// Query reads the documents in a collection matching a filter, ordered by
// id. A nil filter matches everything.
func (s *Store) Query(ctx context.Context, collection string, filter docstore.Filter) ([]docstore.Snapshot, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		"SELECT id, data FROM documents WHERE collection = ? ORDER BY id",
		collection,
	)
	if err != nil {
		return nil, fmt.Errorf("query collection %q: %w", collection, err)
	}
	defer rows.Close()

	var snaps []docstore.Snapshot
	for rows.Next() {
		var id, raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("query collection %q: %w", collection, err)
		}
		data, err := decodeRow(raw)
		if err != nil {
			return nil, fmt.Errorf("query collection %q: %w", collection, err)
		}
		if filter != nil && !filter(data) {
			continue
		}
		snaps = append(snaps, docstore.Snapshot{
			Path:   docstore.Path{Collection: collection, ID: id},
			Exists: true,
			Data:   data,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query collection %q: %w", collection, err)
	}
	return snaps, nil
}

// Set writes a whole document.
func (s *Store) Set(ctx context.Context, path docstore.Path, data map[string]any) error {
	return s.Apply(ctx, []docstore.Write{{Kind: docstore.WriteSet, Path: path, Data: data}})
}

// Merge writes fields into a document, creating it when absent.
func (s *Store) Merge(ctx context.Context, path docstore.Path, fields map[string]any) error {
	return s.Apply(ctx, []docstore.Write{{Kind: docstore.WriteMerge, Path: path, Data: fields}})
}

// Delete removes a document. Absent documents are a no-op.
func (s *Store) Delete(ctx context.Context, path docstore.Path) error {
	return s.Apply(ctx, []docstore.Write{{Kind: docstore.WriteDelete, Path: path}})
}

// Apply performs a batch of writes in one transaction and notifies
// watchers after commit.
func (s *Store) Apply(ctx context.Context, writes []docstore.Write) error {
	for _, w := range writes {
		if err := w.Path.Validate(); err != nil {
			return err
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	// The write lock is released before notifying so a subscriber may
	// write to the store from inside its callback.
	s.writeMu.Lock()
	changed, err := s.applyLocked(ctx, writes)
	s.writeMu.Unlock()
	if err != nil {
		return err
	}

	for _, snap := range changed {
		s.hub.NotifyDoc(snap)
	}
	return nil
}

func (s *Store) applyLocked(ctx context.Context, writes []docstore.Write) ([]docstore.Snapshot, error) {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return nil, wrapWriteErr("begin batch", err)
	}
	defer tx.Rollback()

	nowMillis := s.now().UTC().UnixMilli()
	var changed []docstore.Snapshot
	for _, w := range writes {
		snap, err := s.applyOne(ctx, tx, w, nowMillis)
		if err != nil {
			return nil, err
		}
		changed = append(changed, snap)
	}

	if err := tx.Commit(); err != nil {
		return nil, wrapWriteErr("commit batch", err)
	}
	return changed, nil
}

func (s *Store) applyOne(ctx context.Context, tx *sql.Tx, w docstore.Write, nowMillis int64) (docstore.Snapshot, error) {
	switch w.Kind {
	case docstore.WriteSet:
		raw, err := encodeRow(w.Data)
		if err != nil {
			return docstore.Snapshot{}, err
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO documents (collection, id, data, updated_at) VALUES (?, ?, ?, ?)
			 ON CONFLICT (collection, id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
			w.Path.Collection, w.Path.ID, raw, nowMillis,
		)
		if err != nil {
			return docstore.Snapshot{}, wrapWriteErr(fmt.Sprintf("set document %s", w.Path), err)
		}
		return docstore.Snapshot{Path: w.Path, Exists: true, Data: w.Data}, nil

	case docstore.WriteMerge:
		doc := make(map[string]any)
		var raw string
		err := tx.QueryRowContext(ctx,
			"SELECT data FROM documents WHERE collection = ? AND id = ?",
			w.Path.Collection, w.Path.ID,
		).Scan(&raw)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return docstore.Snapshot{}, wrapWriteErr(fmt.Sprintf("merge document %s", w.Path), err)
		}
		if err == nil {
			doc, err = decodeRow(raw)
			if err != nil {
				return docstore.Snapshot{}, fmt.Errorf("merge document %s: %w", w.Path, err)
			}
		}
		for field, value := range w.Data {
			doc[field] = value
		}
		encoded, err := encodeRow(doc)
		if err != nil {
			return docstore.Snapshot{}, err
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO documents (collection, id, data, updated_at) VALUES (?, ?, ?, ?)
			 ON CONFLICT (collection, id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
			w.Path.Collection, w.Path.ID, encoded, nowMillis,
		)
		if err != nil {
			return docstore.Snapshot{}, wrapWriteErr(fmt.Sprintf("merge document %s", w.Path), err)
		}
		return docstore.Snapshot{Path: w.Path, Exists: true, Data: doc}, nil

	case docstore.WriteDelete:
		_, err := tx.ExecContext(ctx,
			"DELETE FROM documents WHERE collection = ? AND id = ?",
			w.Path.Collection, w.Path.ID,
		)
		if err != nil {
			return docstore.Snapshot{}, wrapWriteErr(fmt.Sprintf("delete document %s", w.Path), err)
		}
		return docstore.Snapshot{Path: w.Path, Exists: false}, nil

	default:
		return docstore.Snapshot{}, fmt.Errorf("unknown write kind %d", w.Kind)
	}
}

// Watch subscribes to one document, delivering the current state first.
func (s *Store) Watch(ctx context.Context, path docstore.Path, onChange func(docstore.Snapshot), onError func(error)) (docstore.Unsubscribe, error) {
	if err := path.Validate(); err != nil {
		return nil, err
	}

	unsubscribe := s.hub.SubscribeDoc(path.String(), onChange)

	initial, err := s.Get(ctx, path)
	if err != nil {
		unsubscribe()
		return nil, err
	}
	onChange(initial)
	return unsubscribe, nil
}

// WatchQuery subscribes to the filtered contents of a collection,
// delivering the current result set first. Read failures during
// re-emission are reported through onError and the subscription stays up.
func (s *Store) WatchQuery(ctx context.Context, collection string, filter docstore.Filter, onChange func([]docstore.Snapshot), onError func(error)) (docstore.Unsubscribe, error) {
	emit := func() {
		snaps, err := s.Query(context.Background(), collection, filter)
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		onChange(snaps)
	}

	unsubscribe := s.hub.SubscribeCollection(collection, emit)

	initial, err := s.Query(ctx, collection, filter)
	if err != nil {
		unsubscribe()
		return nil, err
	}
	onChange(initial)
	return unsubscribe, nil
}

func encodeRow(data map[string]any) (string, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("encode document row: %w", err)
	}
	return string(raw), nil
}

func decodeRow(raw string) (map[string]any, error) {
	var data map[string]any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("decode document row: %w", err)
	}
	return data, nil
}

// wrapWriteErr maps rejected writes to the conflict code so callers can
// distinguish them from validation failures. No retry happens here.
func wrapWriteErr(op string, err error) error {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_BUSY, sqlite3lib.SQLITE_LOCKED,
			sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return apperrors.Wrap(apperrors.CodeWriteConflict, op+": write conflict", err)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

var _ docstore.Store = (*Store)(nil)
