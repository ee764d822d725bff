/*
state.go - In-memory ordered collection of investment records

PURPOSE:
  Holds the single canonical list of records visible to the client. The
  controller is the only writer; everything else reads Snapshot. Mutations
  are synchronous and total: they never fail, because the controller only
  calls them after a confirmed backend round trip.

INVARIANT:
  The collection never contains two records with the same id. Append on an
  id already present replaces the existing record in place rather than
  growing the list.

SEE ALSO:
  - controller.go: The only caller of the mutation methods
*/
package client

import (
	"sync"

	"github.com/warp/invest-engine/invest"
)

// State is the client's ordered record collection. One instance per
// running client session, created empty at startup.
type State struct {
	mu   sync.RWMutex
	invs []invest.Investment
}

// NewState creates an empty state store.
func NewState() *State {
	return &State{}
}

// ReplaceAll rebuilds the collection wholesale. Records with duplicate ids
// are collapsed, last occurrence winning, so the invariant holds even for
// a misbehaving backend.
func (s *State) ReplaceAll(invs []invest.Investment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.invs = s.invs[:0]
	seen := make(map[string]int, len(invs))
	for _, inv := range invs {
		if i, ok := seen[inv.ID]; ok {
			s.invs[i] = inv
			continue
		}
		seen[inv.ID] = len(s.invs)
		s.invs = append(s.invs, inv)
	}
}

// Append adds a confirmed record to the end of the collection. If the id
// is already present the existing record is replaced in place.
func (s *State) Append(inv invest.Investment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.invs {
		if s.invs[i].ID == inv.ID {
			s.invs[i] = inv
			return
		}
	}
	s.invs = append(s.invs, inv)
}

// RemoveByID drops the record with the given id, if present.
func (s *State) RemoveByID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.invs {
		if s.invs[i].ID == id {
			s.invs = append(s.invs[:i], s.invs[i+1:]...)
			return
		}
	}
}

// ReplaceByID swaps the stored record for inv, keeping its position.
// A record that is no longer present is ignored; it was deleted while the
// update was in flight and the delete outcome stands.
func (s *State) ReplaceByID(inv invest.Investment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.invs {
		if s.invs[i].ID == inv.ID {
			s.invs[i] = inv
			return
		}
	}
}

// Snapshot returns a copy of the collection in order.
func (s *State) Snapshot() []invest.Investment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]invest.Investment, len(s.invs))
	copy(out, s.invs)
	return out
}

// Len reports the number of records.
func (s *State) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.invs)
}
