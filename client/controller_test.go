/*
controller_test.go - Controller behavior against a live test server

Each test spins up the real router over the in-memory store and drives the
controller the way a client session would: initialize, then a sequence of
intents, asserting that state only ever reflects confirmed backend
outcomes.
*/
package client_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/invest-engine/api"
	"github.com/warp/invest-engine/client"
	"github.com/warp/invest-engine/invest"
	"github.com/warp/invest-engine/store/memory"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestController(t *testing.T) (*client.Controller, *memory.Store) {
	store := memory.New()
	srv := httptest.NewServer(api.NewRouter(api.NewHandler(store)))
	t.Cleanup(srv.Close)

	ctrl := client.NewController(
		client.New(srv.URL, 5*time.Second, nil),
		client.NewState(),
		5*time.Second,
	)
	return ctrl, store
}

func candidate(name string) invest.Investment {
	return invest.Investment{
		InvName:      name,
		HolderName:   "Alice",
		InvType:      invest.KindFixedDeposit,
		ReturnType:   invest.ReturnOrdinary,
		InvAmount:    1000,
		ReturnAmount: 1100,
		ReturnRate:   10,
		StartDate:    invest.Date(2024, time.January, 1),
		EndDate:      invest.Date(2025, time.January, 1),
	}
}

// =============================================================================
// INITIALIZE
// =============================================================================

func TestInitialize_LoadsBackendState(t *testing.T) {
	ctrl, store := newTestController(t)
	ctx := context.Background()

	a, err := store.Create(ctx, candidate("Pre A"))
	require.NoError(t, err)
	b, err := store.Create(ctx, candidate("Pre B"))
	require.NoError(t, err)

	require.NoError(t, ctrl.Initialize(ctx))

	snap := ctrl.State().Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, a.ID, snap[0].ID)
	assert.Equal(t, b.ID, snap[1].ID)
}

func TestInitialize_BackendDown_StateUntouched(t *testing.T) {
	ctrl := client.NewController(
		client.New("http://127.0.0.1:1", time.Second, nil),
		client.NewState(),
		time.Second,
	)

	err := ctrl.Initialize(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 0, ctrl.State().Len())
}

// =============================================================================
// CREATE
// =============================================================================

func TestCreate_AppendsServerAssignedRecord(t *testing.T) {
	ctrl, _ := newTestController(t)
	ctx := context.Background()
	require.NoError(t, ctrl.Initialize(ctx))

	created, err := ctrl.Create(ctx, candidate("Car Fund"))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	snap := ctrl.State().Snapshot()
	require.Len(t, snap, 1)
	// State carries the server's record (with id/timestamps), not the
	// candidate the form held.
	assert.Equal(t, created.ID, snap[0].ID)
	require.NotNil(t, snap[0].CreatedAt)
}

func TestCreate_ValidationFailure_NoNetworkCall(t *testing.T) {
	// Unreachable backend: if validation short-circuits, no error from the
	// transport ever appears.
	ctrl := client.NewController(
		client.New("http://127.0.0.1:1", time.Second, nil),
		client.NewState(),
		time.Second,
	)

	_, err := ctrl.Create(context.Background(), invest.Investment{InvName: "only name"})
	require.Error(t, err)
	assert.ErrorIs(t, err, invest.ErrValidationFailed)
	assert.NotErrorIs(t, err, invest.ErrStoreUnavailable)
	assert.Equal(t, 0, ctrl.State().Len())
}

func TestCreate_BackendFailure_StateUntouched(t *testing.T) {
	ctrl, store := newTestController(t)
	ctx := context.Background()
	require.NoError(t, ctrl.Initialize(ctx))

	store.FailWith = invest.ErrStoreUnavailable
	_, err := ctrl.Create(ctx, candidate("Doomed"))

	assert.ErrorIs(t, err, invest.ErrStoreUnavailable)
	assert.Equal(t, 0, ctrl.State().Len())
}

// =============================================================================
// DELETE
// =============================================================================

func TestDelete_ConfirmedRemoval(t *testing.T) {
	ctrl, _ := newTestController(t)
	ctx := context.Background()
	require.NoError(t, ctrl.Initialize(ctx))

	created, err := ctrl.Create(ctx, candidate("Short Lived"))
	require.NoError(t, err)

	affected, err := ctrl.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, affected.RowsAffected)
	assert.Equal(t, 0, ctrl.State().Len())
}

func TestDelete_ZeroAffected_StateUntouched(t *testing.T) {
	ctrl, _ := newTestController(t)
	ctx := context.Background()
	require.NoError(t, ctrl.Initialize(ctx))

	created, err := ctrl.Create(ctx, candidate("Keeper"))
	require.NoError(t, err)

	// Deleting an id the backend doesn't know is confirmed as 0 rows;
	// the visible list must not change.
	affected, err := ctrl.Delete(ctx, "missing-1")
	require.NoError(t, err)
	assert.Equal(t, 0, affected.RowsAffected)

	snap := ctrl.State().Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, created.ID, snap[0].ID)
}

// =============================================================================
// RENEW
// =============================================================================

func TestRenew_ReplacesWithMergedRecord(t *testing.T) {
	ctrl, _ := newTestController(t)
	ctx := context.Background()
	require.NoError(t, ctrl.Initialize(ctx))

	created, err := ctrl.Create(ctx, candidate("Renewable"))
	require.NoError(t, err)

	edited := created
	edited.ReturnAmount = 1200
	edited.EndDate = invest.Date(2026, time.January, 1)

	merged, err := ctrl.Renew(ctx, edited)
	require.NoError(t, err)
	assert.Equal(t, 1200, merged.ReturnAmount)

	snap := ctrl.State().Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, created.ID, snap[0].ID)
	assert.Equal(t, 1200, snap[0].ReturnAmount)
	assert.Equal(t, created.InvAmount, snap[0].InvAmount)
}

func TestRenew_ValidationFailure_ReportsAllFields(t *testing.T) {
	ctrl, _ := newTestController(t)
	ctx := context.Background()

	bad := candidate("Incomplete")
	bad.ID = "some-id"
	bad.HolderName = ""
	bad.ReturnRate = 0

	_, err := ctrl.Renew(ctx, bad)
	require.Error(t, err)

	var fieldErrs invest.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Len(t, fieldErrs, 2)
	assert.Contains(t, fieldErrs, invest.FieldHolderName)
	assert.Contains(t, fieldErrs, invest.FieldReturnRate)
}

func TestRenew_UnknownID_StateUntouched(t *testing.T) {
	ctrl, _ := newTestController(t)
	ctx := context.Background()
	require.NoError(t, ctrl.Initialize(ctx))

	created, err := ctrl.Create(ctx, candidate("Stable"))
	require.NoError(t, err)

	ghost := candidate("Ghost")
	ghost.ID = "missing-1"
	_, err = ctrl.Renew(ctx, ghost)

	assert.ErrorIs(t, err, invest.ErrNotFound)
	snap := ctrl.State().Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, created.InvName, snap[0].InvName)
}

// =============================================================================
// ORDERING
// =============================================================================

// Concurrent renews of one record commit in response-arrival order and
// never leave a duplicate id behind. The final visible record is exactly
// one of the confirmed merges.
func TestConcurrentRenews_LastResponseWins_NoDuplicates(t *testing.T) {
	ctrl, _ := newTestController(t)
	ctx := context.Background()
	require.NoError(t, ctrl.Initialize(ctx))

	created, err := ctrl.Create(ctx, candidate("Contended"))
	require.NoError(t, err)

	const n = 8
	results := make(chan invest.Investment, n)
	for i := 0; i < n; i++ {
		go func(i int) {
			edited := created
			edited.ReturnAmount = 1101 + i
			merged, err := ctrl.Renew(ctx, edited)
			if err == nil {
				results <- merged
			} else {
				results <- invest.Investment{}
			}
		}(i)
	}

	confirmed := map[int]bool{}
	for i := 0; i < n; i++ {
		r := <-results
		if r.ID != "" {
			confirmed[r.ReturnAmount] = true
		}
	}

	snap := ctrl.State().Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, created.ID, snap[0].ID)
	assert.True(t, confirmed[snap[0].ReturnAmount],
		"visible record must be one of the confirmed merges, got %d", snap[0].ReturnAmount)
}
