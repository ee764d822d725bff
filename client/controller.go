/*
controller.go - Sequences backend calls with state commits

PURPOSE:
  One method per user intent. Each method makes exactly one backend call
  and, only on success, applies exactly one state mutation. The visible
  list is always a reflection of confirmed backend state, never a
  prediction of it: no optimistic updates, no automatic retries.

FAILURE POLICY:
  Any backend error leaves the state untouched and is returned to the
  caller for display. A failed CRUD call never crashes the client.
  Validation failures are caught before any network call is made.

ORDERING:
  Commits are serialized under a per-controller mutex, so state mutations
  land in the order their backend responses arrive. For a single record
  id that means last-response-wins: whichever call's response arrives
  later is the one whose commit sticks, regardless of call order.

TIMEOUTS:
  Every intent is bounded by the configured timeout on top of whatever
  deadline the caller's context carries, so a hung backend call cannot
  leave the triggering interaction pending forever.

SEE ALSO:
  - state.go: The mutation interface being driven
  - client.go: The backend calls being sequenced
*/
package client

import (
	"context"
	"time"

	"github.com/warp/invest-engine/invest"
)

// Controller orchestrates CRUD intents against the backend and commits
// confirmed outcomes into the state store.
type Controller struct {
	api     *Client
	state   *State
	timeout time.Duration

	// commit serializes state mutations so they land in response-arrival
	// order.
	commit chan struct{}
}

// NewController wires a controller to an API client and a state store.
// A non-positive timeout falls back to 10s.
func NewController(api *Client, state *State, timeout time.Duration) *Controller {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := &Controller{
		api:     api,
		state:   state,
		timeout: timeout,
		commit:  make(chan struct{}, 1),
	}
	c.commit <- struct{}{}
	return c
}

// State exposes the controller's state store for readers.
func (c *Controller) State() *State {
	return c.state
}

// Client exposes the underlying API client for calls that bypass state,
// such as a read used to pre-fill a renew form.
func (c *Controller) Client() *Client {
	return c.api
}

// Initialize loads the full record list and rebuilds the state wholesale.
// Invoked once at client startup.
func (c *Controller) Initialize(ctx context.Context) error {
	ctx, cancel := c.bound(ctx)
	defer cancel()

	invs, err := c.api.List(ctx)
	if err != nil {
		return err
	}

	c.apply(func() { c.state.ReplaceAll(invs) })
	return nil
}

// Create validates the candidate, submits it, and appends the
// server-assigned record on success.
func (c *Controller) Create(ctx context.Context, candidate invest.Investment) (invest.Investment, error) {
	if errs := invest.Validate(candidate); errs != nil {
		return invest.Investment{}, errs
	}

	ctx, cancel := c.bound(ctx)
	defer cancel()

	created, err := c.api.Create(ctx, candidate)
	if err != nil {
		return invest.Investment{}, err
	}

	c.apply(func() { c.state.Append(created) })
	return created, nil
}

// Delete removes a record. State changes only when the backend confirms a
// record was actually removed; an affected count of 0 leaves the list as
// it was.
func (c *Controller) Delete(ctx context.Context, id string) (invest.AffectedRows, error) {
	ctx, cancel := c.bound(ctx)
	defer cancel()

	affected, err := c.api.Delete(ctx, id)
	if err != nil {
		return invest.AffectedRows{}, err
	}

	if affected.RowsAffected >= 1 {
		c.apply(func() { c.state.RemoveByID(id) })
	}
	return affected, nil
}

// Renew validates the edited record, submits it as a patch keyed by its
// id, and replaces the stored record with the server's merged result on
// success. The candidate is the full record the renew form holds, pre-
// filled from the existing one.
func (c *Controller) Renew(ctx context.Context, candidate invest.Investment) (invest.Investment, error) {
	if errs := invest.Validate(candidate); errs != nil {
		return invest.Investment{}, errs
	}

	ctx, cancel := c.bound(ctx)
	defer cancel()

	merged, err := c.api.Update(ctx, invest.PatchOf(candidate))
	if err != nil {
		return invest.Investment{}, err
	}

	c.apply(func() { c.state.ReplaceByID(merged) })
	return merged, nil
}

// bound layers the controller's timeout onto the caller's context.
func (c *Controller) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.timeout)
}

// apply runs a state mutation holding the commit token, so mutations land
// one at a time in the order their responses arrived.
func (c *Controller) apply(fn func()) {
	<-c.commit
	fn()
	c.commit <- struct{}{}
}
