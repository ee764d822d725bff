/*
store.go - Persistence contract for investment records

PURPOSE:
  Defines the interface between the API surface and the backing store.
  The store is treated purely as a place that keeps Investment documents
  keyed by an opaque id: get, put, delete, list-all. Nothing here depends
  on a store-specific query language.

CONTRACT:
  Create:  assigns id/created_at/updated_at and returns the persisted
           record, so the caller never needs a follow-up read.
  Get:     invest.ErrNotFound for an unknown id.
  Update:  merges the patch over the stored record, bumps updated_at,
           returns the merged record. invest.ErrNotFound if unknown.
  Delete:  idempotent. Deleting a missing id reports 0 affected rows,
           not an error.
  List:    insertion order, no pagination, no filtering.

  Each operation has exactly one durable effect (a single document
  write/read/delete). Store errors surface without retry; a caller that
  wants retries layers them on top.

IMPLEMENTATIONS:
  - store/sqlite: production store (mattn/go-sqlite3)
  - store/memory: in-memory store for tests and dev

SEE ALSO:
  - api/handlers.go: HTTP surface over this interface
*/
package store

import (
	"context"

	"github.com/warp/invest-engine/invest"
)

// Store is the CRUD contract every backing store implements.
type Store interface {
	// Create persists a new record. The incoming record must not carry an
	// id; the store assigns one. Returns the fully-populated record.
	Create(ctx context.Context, inv invest.Investment) (invest.Investment, error)

	// Get returns the record with the given id.
	Get(ctx context.Context, id string) (invest.Investment, error)

	// Update merges the patch over the record identified by patch.ID and
	// returns the merged record.
	Update(ctx context.Context, patch invest.Patch) (invest.Investment, error)

	// Delete removes the record with the given id, reporting how many
	// records were actually removed (0 or 1).
	Delete(ctx context.Context, id string) (invest.AffectedRows, error)

	// List returns all records in insertion order.
	List(ctx context.Context) ([]invest.Investment, error)

	// Close releases the store's resources.
	Close() error
}
