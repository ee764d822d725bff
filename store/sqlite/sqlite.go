/*
Package sqlite provides the SQLite-backed implementation of store.Store.

PURPOSE:
  Persists investment records as JSON documents keyed by id. The schema is
  deliberately document-shaped (id + doc blob) so the store never grows a
  dependency on SQL features beyond get/put/delete/list-all; the same
  pattern maps directly onto any document database.

KEY TABLE:
  investments:
    id          TEXT PRIMARY KEY   opaque record id (uuid)
    doc         TEXT NOT NULL      JSON-encoded record
    created_at  TEXT NOT NULL      RFC 3339, duplicated out of the doc for
                                   human inspection only

  Insertion order comes from rowid, which is what List orders by.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. Each operation is a single
  statement, so there are no multi-step transactions to coordinate.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging): multiple readers don't
  block, single writer at a time, better crash recovery.

USAGE:
  store, err := sqlite.New("./data/invest.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - store/store.go: Interface definition and contract
  - store/memory: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/invest-engine/invest"
)

// Store implements store.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS investments (
		id TEXT PRIMARY KEY,
		doc TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// DOCUMENT CODEC
// =============================================================================

// document is the JSON shape persisted in the doc column. Field names match
// the wire format so a stored document reads like an API payload.
type document struct {
	ID           string     `json:"id"`
	InvName      string     `json:"inv_name"`
	HolderName   string     `json:"name"`
	InvType      string     `json:"inv_type"`
	ReturnType   string     `json:"return_type"`
	InvAmount    int        `json:"inv_amount"`
	ReturnAmount int        `json:"return_amount"`
	ReturnRate   int        `json:"return_rate"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	CreatedAt    *time.Time `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

func encode(inv invest.Investment) ([]byte, error) {
	return json.Marshal(document{
		ID:           inv.ID,
		InvName:      inv.InvName,
		HolderName:   inv.HolderName,
		InvType:      inv.InvType,
		ReturnType:   inv.ReturnType,
		InvAmount:    inv.InvAmount,
		ReturnAmount: inv.ReturnAmount,
		ReturnRate:   inv.ReturnRate,
		StartDate:    inv.StartDate,
		EndDate:      inv.EndDate,
		CreatedAt:    inv.CreatedAt,
		UpdatedAt:    inv.UpdatedAt,
	})
}

func decode(raw []byte) (invest.Investment, error) {
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return invest.Investment{}, fmt.Errorf("corrupt document: %w", err)
	}
	return invest.Investment{
		ID:           doc.ID,
		InvName:      doc.InvName,
		HolderName:   doc.HolderName,
		InvType:      doc.InvType,
		ReturnType:   doc.ReturnType,
		InvAmount:    doc.InvAmount,
		ReturnAmount: doc.ReturnAmount,
		ReturnRate:   doc.ReturnRate,
		StartDate:    doc.StartDate,
		EndDate:      doc.EndDate,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}, nil
}

// =============================================================================
// STORE OPERATIONS (store.Store interface)
// =============================================================================

// Create persists a new record, assigning id and timestamps.
func (s *Store) Create(ctx context.Context, inv invest.Investment) (invest.Investment, error) {
	if inv.ID != "" {
		return invest.Investment{}, fmt.Errorf("%w: create must not carry an id", invest.ErrInvalidArgument)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	inv.ID = uuid.NewString()
	inv.CreatedAt = &now
	inv.UpdatedAt = &now

	raw, err := encode(inv)
	if err != nil {
		return invest.Investment{}, err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO investments (id, doc, created_at) VALUES (?, ?, ?)`,
		inv.ID, string(raw), now.Format(time.RFC3339),
	)
	if err != nil {
		return invest.Investment{}, storeErr("insert", err)
	}

	return inv, nil
}

// Get returns the record with the given id.
func (s *Store) Get(ctx context.Context, id string) (invest.Investment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.get(ctx, id)
}

func (s *Store) get(ctx context.Context, id string) (invest.Investment, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT doc FROM investments WHERE id = ?`, id,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return invest.Investment{}, fmt.Errorf("%w: %s", invest.ErrNotFound, id)
	}
	if err != nil {
		return invest.Investment{}, storeErr("select", err)
	}

	return decode([]byte(raw))
}

// Update merges the patch over the stored record and returns the result.
func (s *Store) Update(ctx context.Context, patch invest.Patch) (invest.Investment, error) {
	if patch.ID == "" {
		return invest.Investment{}, fmt.Errorf("%w: patch without id", invest.ErrInvalidArgument)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.get(ctx, patch.ID)
	if err != nil {
		return invest.Investment{}, err
	}

	merged := patch.Apply(current)
	now := time.Now().UTC()
	merged.UpdatedAt = &now

	raw, err := encode(merged)
	if err != nil {
		return invest.Investment{}, err
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE investments SET doc = ? WHERE id = ?`,
		string(raw), merged.ID,
	)
	if err != nil {
		return invest.Investment{}, storeErr("update", err)
	}

	return merged, nil
}

// Delete removes the record with the given id. Idempotent: a missing id
// reports 0 affected rows.
func (s *Store) Delete(ctx context.Context, id string) (invest.AffectedRows, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM investments WHERE id = ?`, id)
	if err != nil {
		return invest.AffectedRows{}, storeErr("delete", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return invest.AffectedRows{}, storeErr("delete", err)
	}

	return invest.AffectedRows{RowsAffected: int(n)}, nil
}

// List returns all records in insertion order.
func (s *Store) List(ctx context.Context) ([]invest.Investment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT doc FROM investments ORDER BY rowid`)
	if err != nil {
		return nil, storeErr("select", err)
	}
	defer rows.Close()

	invs := []invest.Investment{}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, storeErr("scan", err)
		}
		inv, err := decode([]byte(raw))
		if err != nil {
			return nil, err
		}
		invs = append(invs, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("select", err)
	}

	return invs, nil
}

// storeErr tags a driver failure as a store-unavailable condition so the
// API surface can map it to 503 without knowing about SQLite.
func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", invest.ErrStoreUnavailable, op, err)
}
