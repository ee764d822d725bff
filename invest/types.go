/*
types.go - Core domain types for the investment engine

PURPOSE:
  Defines the canonical Investment record, the Patch shape used by the
  renew/update path, and the AffectedRows result of a delete. Every layer
  (store, API, client) speaks these types; the API layer owns the JSON
  field names via its DTOs.

LIFECYCLE:
  A record is born client-side with an empty ID, persisted by Store.Create
  (which assigns ID/CreatedAt/UpdatedAt), mutated only through Store.Update,
  and removed by Store.Delete. There is no other mutation path.

DATE SEMANTICS:
  StartDate and EndDate are date-only values pinned to midnight UTC. They
  are pointers because "not set" is a meaningful state for a draft record.
  CreatedAt/UpdatedAt are owned by the store and never settable by callers.

SEE ALSO:
  - validate.go: Submission predicate over Investment
  - errors.go: Error kinds shared across layers
  - store/store.go: CRUD contract consuming these types
*/
package invest

import "time"

// Investment kinds offered by the client's closed choice set. Stored as an
// open string so the backend never has to chase UI changes.
const (
	KindFixedDeposit     = "FD"
	KindRecurringDeposit = "RD"
)

// Return kinds offered by the client's closed choice set.
const (
	ReturnOrdinary   = "Ordinary"
	ReturnCumulative = "Cumulative"
)

// Investment is the canonical record for a single fixed-term investment.
type Investment struct {
	// ID is empty before first persistence. The store assigns it exactly
	// once, at creation; it is immutable afterwards.
	ID string

	InvName    string // label for the instrument
	HolderName string // beneficiary the record is held for
	InvType    string // FD, RD, or any future kind
	ReturnType string // Ordinary, Cumulative

	InvAmount    int // principal
	ReturnAmount int // maturity value, supplied rather than derived
	ReturnRate   int // percentage points, no fractional support

	StartDate *time.Time
	EndDate   *time.Time

	// Store-owned timestamps. Nil until the record has been persisted.
	CreatedAt *time.Time
	UpdatedAt *time.Time
}

// Patch expresses an update/renew intent. ID is mandatory and must
// reference an existing record; every other field is optional, nil meaning
// "leave the stored value unchanged". A set date replaces the stored date;
// there is no way to clear a date through a patch (see DESIGN.md).
type Patch struct {
	ID string

	InvName    *string
	HolderName *string
	InvType    *string
	ReturnType *string

	InvAmount    *int
	ReturnAmount *int
	ReturnRate   *int

	StartDate *time.Time
	EndDate   *time.Time
}

// AffectedRows reports how many records a delete removed: 1 when the id
// existed, 0 when it did not. Deletes are by id, so it never exceeds 1.
type AffectedRows struct {
	RowsAffected int
}

// Date pins t to midnight UTC, the canonical representation for
// StartDate/EndDate values.
func Date(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

// PatchOf builds a Patch carrying every field of inv. The renew flow
// pre-fills the form from the existing record, so this is the usual way a
// Patch comes to exist.
func PatchOf(inv Investment) Patch {
	return Patch{
		ID:           inv.ID,
		InvName:      &inv.InvName,
		HolderName:   &inv.HolderName,
		InvType:      &inv.InvType,
		ReturnType:   &inv.ReturnType,
		InvAmount:    &inv.InvAmount,
		ReturnAmount: &inv.ReturnAmount,
		ReturnRate:   &inv.ReturnRate,
		StartDate:    inv.StartDate,
		EndDate:      inv.EndDate,
	}
}

// Apply merges the patch's set fields over inv and returns the result.
// Store implementations share this so sqlite and memory merge identically.
// ID, CreatedAt and UpdatedAt are untouched; the store bumps UpdatedAt
// itself after merging.
func (p Patch) Apply(inv Investment) Investment {
	if p.InvName != nil {
		inv.InvName = *p.InvName
	}
	if p.HolderName != nil {
		inv.HolderName = *p.HolderName
	}
	if p.InvType != nil {
		inv.InvType = *p.InvType
	}
	if p.ReturnType != nil {
		inv.ReturnType = *p.ReturnType
	}
	if p.InvAmount != nil {
		inv.InvAmount = *p.InvAmount
	}
	if p.ReturnAmount != nil {
		inv.ReturnAmount = *p.ReturnAmount
	}
	if p.ReturnRate != nil {
		inv.ReturnRate = *p.ReturnRate
	}
	if p.StartDate != nil {
		inv.StartDate = p.StartDate
	}
	if p.EndDate != nil {
		inv.EndDate = p.EndDate
	}
	return inv
}
