package client_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/invest-engine/client"
	"github.com/warp/invest-engine/invest"
)

func rec(id, name string) invest.Investment {
	return invest.Investment{ID: id, InvName: name}
}

func ids(invs []invest.Investment) []string {
	out := make([]string, len(invs))
	for i, inv := range invs {
		out[i] = inv.ID
	}
	return out
}

func assertNoDuplicateIDs(t *testing.T, s *client.State) {
	t.Helper()
	seen := map[string]bool{}
	for _, inv := range s.Snapshot() {
		require.False(t, seen[inv.ID], "duplicate id %s", inv.ID)
		seen[inv.ID] = true
	}
}

func TestState_ReplaceAll_RebuildsWholesale(t *testing.T) {
	s := client.NewState()
	s.Append(rec("a", "old"))

	s.ReplaceAll([]invest.Investment{rec("b", "B"), rec("c", "C")})

	assert.Equal(t, []string{"b", "c"}, ids(s.Snapshot()))
}

func TestState_ReplaceAll_CollapsesDuplicates(t *testing.T) {
	s := client.NewState()

	s.ReplaceAll([]invest.Investment{rec("a", "first"), rec("b", "B"), rec("a", "last")})

	snap := s.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "last", snap[0].InvName)
	assertNoDuplicateIDs(t, s)
}

func TestState_Append_ExistingID_ReplacesInPlace(t *testing.T) {
	s := client.NewState()
	s.Append(rec("a", "v1"))
	s.Append(rec("b", "B"))

	s.Append(rec("a", "v2"))

	snap := s.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "v2", snap[0].InvName)
	assert.Equal(t, []string{"a", "b"}, ids(snap))
}

func TestState_RemoveByID(t *testing.T) {
	s := client.NewState()
	s.Append(rec("a", "A"))
	s.Append(rec("b", "B"))

	s.RemoveByID("a")
	assert.Equal(t, []string{"b"}, ids(s.Snapshot()))

	// Removing an absent id is a no-op.
	s.RemoveByID("a")
	assert.Equal(t, []string{"b"}, ids(s.Snapshot()))
}

func TestState_ReplaceByID_KeepsPosition(t *testing.T) {
	s := client.NewState()
	s.Append(rec("a", "A"))
	s.Append(rec("b", "B"))
	s.Append(rec("c", "C"))

	s.ReplaceByID(rec("b", "B2"))

	snap := s.Snapshot()
	assert.Equal(t, []string{"a", "b", "c"}, ids(snap))
	assert.Equal(t, "B2", snap[1].InvName)
}

func TestState_ReplaceByID_MissingID_Ignored(t *testing.T) {
	s := client.NewState()
	s.Append(rec("a", "A"))

	// The record was deleted while the update was in flight; the delete
	// outcome stands.
	s.ReplaceByID(rec("gone", "X"))

	assert.Equal(t, []string{"a"}, ids(s.Snapshot()))
}

// No interleaving of mutations may produce duplicate ids. This hammers the
// store from many goroutines simulating response arrivals in any order.
func TestState_NoDuplicateIDsUnderInterleaving(t *testing.T) {
	s := client.NewState()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				id := fmt.Sprintf("inv-%d", i%10)
				switch (g + i) % 3 {
				case 0:
					s.Append(rec(id, fmt.Sprintf("g%d-i%d", g, i)))
				case 1:
					s.ReplaceByID(rec(id, fmt.Sprintf("g%d-i%d", g, i)))
				case 2:
					s.RemoveByID(id)
				}
			}
		}(g)
	}
	wg.Wait()

	assertNoDuplicateIDs(t, s)
}
