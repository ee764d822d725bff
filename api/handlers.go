/*
handlers.go - HTTP API handlers for the investment engine

PURPOSE:
  Exposes the store's five CRUD operations over HTTP. Pure translation
  layer: parse request, call the store, serialize the result. No business
  logic lives here.

ENDPOINTS:
  POST   /inv       Create an investment record
  GET    /inv/{id}  Read a single record
  PATCH  /inv       Update (renew) a record
  DELETE /inv/{id}  Delete a record, reporting affected rows
  GET    /invs      List all records in insertion order

ERROR HANDLING:
  Store errors surface as-is, mapped by kind to a distinct status:
  - 400 invalid_argument:   malformed body, create carrying an id,
                            patch without an id, start after end
  - 404 not_found:          unknown id on read/update
  - 503 store_unavailable:  backing store unreachable
  - 500 internal:           anything else
  A success is always a 200 with the full result; an error is never
  embedded in a 2xx body.

SEE ALSO:
  - dto.go: Wire types
  - server.go: Router setup and middleware
  - store/store.go: The contract being exposed
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/warp/invest-engine/invest"
	"github.com/warp/invest-engine/store"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store store.Store
}

// NewHandler creates a new handler backed by the given store.
func NewHandler(s store.Store) *Handler {
	return &Handler{Store: s}
}

// =============================================================================
// INVESTMENT HANDLERS
// =============================================================================

// CreateInvestment creates a new record.
// POST /inv
func (h *Handler) CreateInvestment(w http.ResponseWriter, r *http.Request) {
	var dto InvestmentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, KindInvalidArgument, "Invalid request body", err)
		return
	}

	if dto.ID != "" {
		writeError(w, http.StatusBadRequest, KindInvalidArgument, "Create must not carry an id", nil)
		return
	}
	if err := checkDateOrder(dto.StartDate, dto.EndDate); err != nil {
		writeError(w, http.StatusBadRequest, KindInvalidArgument, err.Error(), nil)
		return
	}

	created, err := h.Store.Create(r.Context(), dto.toDomain())
	if err != nil {
		writeStoreError(w, "Failed to create investment", err)
		return
	}

	writeJSON(w, http.StatusOK, toDTO(created))
}

// GetInvestment returns a single record.
// GET /inv/{id}
func (h *Handler) GetInvestment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	inv, err := h.Store.Get(r.Context(), id)
	if err != nil {
		writeStoreError(w, "Failed to get investment", err)
		return
	}

	writeJSON(w, http.StatusOK, toDTO(inv))
}

// UpdateInvestment merges a patch over an existing record and returns the
// merged record.
// PATCH /inv
func (h *Handler) UpdateInvestment(w http.ResponseWriter, r *http.Request) {
	var dto PatchDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, KindInvalidArgument, "Invalid request body", err)
		return
	}

	if dto.ID == "" {
		writeError(w, http.StatusBadRequest, KindInvalidArgument, "Patch requires an id", nil)
		return
	}
	if err := checkDateOrder(dto.StartDate, dto.EndDate); err != nil {
		writeError(w, http.StatusBadRequest, KindInvalidArgument, err.Error(), nil)
		return
	}

	merged, err := h.Store.Update(r.Context(), dto.toDomain())
	if err != nil {
		writeStoreError(w, "Failed to update investment", err)
		return
	}

	writeJSON(w, http.StatusOK, toDTO(merged))
}

// DeleteInvestment removes a record. Idempotent: deleting an unknown id is
// a 200 with rows_affected 0.
// DELETE /inv/{id}
func (h *Handler) DeleteInvestment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	affected, err := h.Store.Delete(r.Context(), id)
	if err != nil {
		writeStoreError(w, "Failed to delete investment", err)
		return
	}

	writeJSON(w, http.StatusOK, AffectedRowsDTO{RowsAffected: affected.RowsAffected})
}

// ListInvestments returns all records in insertion order.
// GET /invs
func (h *Handler) ListInvestments(w http.ResponseWriter, r *http.Request) {
	invs, err := h.Store.List(r.Context())
	if err != nil {
		writeStoreError(w, "Failed to list investments", err)
		return
	}

	dtos := make([]InvestmentDTO, len(invs))
	for i, inv := range invs {
		dtos[i] = toDTO(inv)
	}

	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, kind, message string, err error) {
	resp := ErrorResponse{Error: message, Kind: kind}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// checkDateOrder enforces start <= end when both dates are present. The
// client-side submission predicate only checks presence, so the surface is
// the one place ordering is enforced.
func checkDateOrder(start, end *time.Time) error {
	if start != nil && end != nil && start.After(*end) {
		return errors.New("start_date must not be after end_date")
	}
	return nil
}

// writeStoreError classifies a store error into status + kind. The error
// itself is forwarded untouched in the details, never recharacterized.
func writeStoreError(w http.ResponseWriter, message string, err error) {
	switch {
	case invest.IsNotFound(err):
		writeError(w, http.StatusNotFound, KindNotFound, message, err)
	case invest.IsInvalidArgument(err):
		writeError(w, http.StatusBadRequest, KindInvalidArgument, message, err)
	case invest.IsUnavailable(err):
		writeError(w, http.StatusServiceUnavailable, KindStoreUnavailable, message, err)
	default:
		writeError(w, http.StatusInternalServerError, KindInternal, message, err)
	}
}
