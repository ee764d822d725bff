/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

WIRE FORMAT:
  snake_case field names: id, inv_name, name, inv_type, return_type,
  inv_amount, return_amount, return_rate, start_date, end_date,
  created_at, updated_at. Dates are RFC 3339 strings; absent dates are an
  explicit null rather than being omitted, so a reader can always tell
  "not set" from "not serialized".

TYPES:
  InvestmentDTO   Record on the wire, both directions
  PatchDTO        Update/renew request body
  AffectedRowsDTO Delete response
  ErrorResponse   Non-2xx body with machine-readable kind

SEE ALSO:
  - handlers.go: Uses these types
  - client/client.go: Same wire format from the other side
*/
package api

import (
	"time"

	"github.com/warp/invest-engine/invest"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// InvestmentDTO represents an investment record on the wire.
type InvestmentDTO struct {
	ID           string     `json:"id"`
	InvName      string     `json:"inv_name"`
	Name         string     `json:"name"`
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

// PatchDTO is the request body for PATCH /inv. The id is mandatory; every
// other field is optional, with an omitted (or null) field leaving the
// stored value unchanged.
type PatchDTO struct {
	ID           string     `json:"id"`
	InvName      *string    `json:"inv_name,omitempty"`
	Name         *string    `json:"name,omitempty"`
	InvType      *string    `json:"inv_type,omitempty"`
	ReturnType   *string    `json:"return_type,omitempty"`
	InvAmount    *int       `json:"inv_amount,omitempty"`
	ReturnAmount *int       `json:"return_amount,omitempty"`
	ReturnRate   *int       `json:"return_rate,omitempty"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
}

// AffectedRowsDTO is the response body for DELETE /inv/{id}.
type AffectedRowsDTO struct {
	RowsAffected int `json:"rows_affected"`
}

// ErrorResponse is the body of every non-2xx response. Kind is the
// machine-readable error classification; Details carries the underlying
// error text when one exists.
type ErrorResponse struct {
	Error   string `json:"error"`
	Kind    string `json:"kind"`
	Details string `json:"details,omitempty"`
}

// Error kinds carried in ErrorResponse.Kind.
const (
	KindNotFound         = "not_found"
	KindInvalidArgument  = "invalid_argument"
	KindStoreUnavailable = "store_unavailable"
	KindInternal         = "internal"
)

// =============================================================================
// CONVERSIONS
// =============================================================================

func toDTO(inv invest.Investment) InvestmentDTO {
	return InvestmentDTO{
		ID:           inv.ID,
		InvName:      inv.InvName,
		Name:         inv.HolderName,
		InvType:      inv.InvType,
		ReturnType:   inv.ReturnType,
		InvAmount:    inv.InvAmount,
		ReturnAmount: inv.ReturnAmount,
		ReturnRate:   inv.ReturnRate,
		StartDate:    inv.StartDate,
		EndDate:      inv.EndDate,
		CreatedAt:    inv.CreatedAt,
		UpdatedAt:    inv.UpdatedAt,
	}
}

func (d InvestmentDTO) toDomain() invest.Investment {
	return invest.Investment{
		ID:           d.ID,
		InvName:      d.InvName,
		HolderName:   d.Name,
		InvType:      d.InvType,
		ReturnType:   d.ReturnType,
		InvAmount:    d.InvAmount,
		ReturnAmount: d.ReturnAmount,
		ReturnRate:   d.ReturnRate,
		StartDate:    d.StartDate,
		EndDate:      d.EndDate,
	}
}

func (d PatchDTO) toDomain() invest.Patch {
	return invest.Patch{
		ID:           d.ID,
		InvName:      d.InvName,
		HolderName:   d.Name,
		InvType:      d.InvType,
		ReturnType:   d.ReturnType,
		InvAmount:    d.InvAmount,
		ReturnAmount: d.ReturnAmount,
		ReturnRate:   d.ReturnRate,
		StartDate:    d.StartDate,
		EndDate:      d.EndDate,
	}
}
