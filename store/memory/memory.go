// Package memory provides an in-memory store.Store for testing and dev.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/warp/invest-engine/invest"
)

// Store keeps records in an ordered slice plus an id index. The slice
// preserves insertion order, matching the List contract of the SQLite store.
type Store struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]invest.Investment

	// FailWith, when set, is returned by every operation. Lets tests
	// simulate an unreachable store.
	FailWith error
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{byID: make(map[string]invest.Investment)}
}

// Close is a no-op; it exists to satisfy store.Store.
func (m *Store) Close() error { return nil }

// Create assigns id and timestamps and appends the record.
func (m *Store) Create(_ context.Context, inv invest.Investment) (invest.Investment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWith != nil {
		return invest.Investment{}, m.FailWith
	}
	if inv.ID != "" {
		return invest.Investment{}, fmt.Errorf("%w: create must not carry an id", invest.ErrInvalidArgument)
	}

	now := time.Now().UTC()
	inv.ID = uuid.NewString()
	inv.CreatedAt = &now
	inv.UpdatedAt = &now

	m.order = append(m.order, inv.ID)
	m.byID[inv.ID] = inv
	return inv, nil
}

// Get returns the record with the given id.
func (m *Store) Get(_ context.Context, id string) (invest.Investment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.FailWith != nil {
		return invest.Investment{}, m.FailWith
	}

	inv, ok := m.byID[id]
	if !ok {
		return invest.Investment{}, fmt.Errorf("%w: %s", invest.ErrNotFound, id)
	}
	return inv, nil
}

// Update merges the patch over the stored record.
func (m *Store) Update(_ context.Context, patch invest.Patch) (invest.Investment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWith != nil {
		return invest.Investment{}, m.FailWith
	}
	if patch.ID == "" {
		return invest.Investment{}, fmt.Errorf("%w: patch without id", invest.ErrInvalidArgument)
	}

	current, ok := m.byID[patch.ID]
	if !ok {
		return invest.Investment{}, fmt.Errorf("%w: %s", invest.ErrNotFound, patch.ID)
	}

	merged := patch.Apply(current)
	now := time.Now().UTC()
	merged.UpdatedAt = &now
	m.byID[merged.ID] = merged
	return merged, nil
}

// Delete removes the record with the given id. Idempotent.
func (m *Store) Delete(_ context.Context, id string) (invest.AffectedRows, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWith != nil {
		return invest.AffectedRows{}, m.FailWith
	}

	if _, ok := m.byID[id]; !ok {
		return invest.AffectedRows{RowsAffected: 0}, nil
	}

	delete(m.byID, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return invest.AffectedRows{RowsAffected: 1}, nil
}

// List returns all records in insertion order.
func (m *Store) List(_ context.Context) ([]invest.Investment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.FailWith != nil {
		return nil, m.FailWith
	}

	invs := make([]invest.Investment, 0, len(m.order))
	for _, id := range m.order {
		invs = append(invs, m.byID[id])
	}
	return invs, nil
}
