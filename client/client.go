/*
client.go - HTTP client for the investment API

PURPOSE:
  Talks to the API surface from the client process. One method per
  intent, JSON in and out, the same wire format the server's DTOs define.
  Non-2xx responses are decoded into the shared error kinds so callers
  can test with errors.Is instead of inspecting status codes.

TIMEOUTS:
  Every call runs under the caller's context; New also installs a
  transport-level timeout so a hung backend can never park a call
  forever.

SEE ALSO:
  - controller.go: Sequences these calls with state commits
  - api/dto.go: Wire format, server side
*/
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/warp/invest-engine/api"
	"github.com/warp/invest-engine/invest"
)

// Client calls the investment API over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logrus.Logger
}

// New creates a client for the API at baseURL (no trailing slash).
// A non-positive timeout falls back to 10s.
func New(baseURL string, timeout time.Duration, log *logrus.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if log == nil {
		log = logrus.New()
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// =============================================================================
// INTENTS
// =============================================================================

// Create persists a new record and returns it with server-assigned fields.
func (c *Client) Create(ctx context.Context, inv invest.Investment) (invest.Investment, error) {
	var out api.InvestmentDTO
	if err := c.do(ctx, http.MethodPost, "/inv", investDTO(inv), &out); err != nil {
		return invest.Investment{}, err
	}
	return fromDTO(out), nil
}

// Get reads a single record.
func (c *Client) Get(ctx context.Context, id string) (invest.Investment, error) {
	var out api.InvestmentDTO
	if err := c.do(ctx, http.MethodGet, "/inv/"+id, nil, &out); err != nil {
		return invest.Investment{}, err
	}
	return fromDTO(out), nil
}

// Update sends a patch and returns the merged record.
func (c *Client) Update(ctx context.Context, patch invest.Patch) (invest.Investment, error) {
	var out api.InvestmentDTO
	if err := c.do(ctx, http.MethodPatch, "/inv", patchDTO(patch), &out); err != nil {
		return invest.Investment{}, err
	}
	return fromDTO(out), nil
}

// Delete removes a record, reporting affected rows.
func (c *Client) Delete(ctx context.Context, id string) (invest.AffectedRows, error) {
	var out api.AffectedRowsDTO
	if err := c.do(ctx, http.MethodDelete, "/inv/"+id, nil, &out); err != nil {
		return invest.AffectedRows{}, err
	}
	return invest.AffectedRows{RowsAffected: out.RowsAffected}, nil
}

// List returns all records in the store's insertion order.
func (c *Client) List(ctx context.Context) ([]invest.Investment, error) {
	var out []api.InvestmentDTO
	if err := c.do(ctx, http.MethodGet, "/invs", nil, &out); err != nil {
		return nil, err
	}
	invs := make([]invest.Investment, len(out))
	for i, dto := range out {
		invs[i] = fromDTO(dto)
	}
	return invs, nil
}

// =============================================================================
// TRANSPORT
// =============================================================================

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", invest.ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.decodeError(resp)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// decodeError turns a non-2xx response back into a domain error.
func (c *Client) decodeError(resp *http.Response) error {
	var body api.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("http %d: %w", resp.StatusCode, invest.ErrStoreUnavailable)
	}

	c.log.WithFields(logrus.Fields{
		"status": resp.StatusCode,
		"kind":   body.Kind,
	}).Warn(body.Error)

	msg := body.Error
	if body.Details != "" {
		msg = fmt.Sprintf("%s: %s", body.Error, body.Details)
	}

	switch body.Kind {
	case api.KindNotFound:
		return fmt.Errorf("%w: %s", invest.ErrNotFound, msg)
	case api.KindInvalidArgument:
		return fmt.Errorf("%w: %s", invest.ErrInvalidArgument, msg)
	case api.KindStoreUnavailable:
		return fmt.Errorf("%w: %s", invest.ErrStoreUnavailable, msg)
	default:
		return fmt.Errorf("http %d: %s", resp.StatusCode, msg)
	}
}

// =============================================================================
// DTO CONVERSIONS (client side of the wire)
// =============================================================================

func investDTO(inv invest.Investment) api.InvestmentDTO {
	return api.InvestmentDTO{
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
	}
}

func patchDTO(p invest.Patch) api.PatchDTO {
	return api.PatchDTO{
		ID:           p.ID,
		InvName:      p.InvName,
		Name:         p.HolderName,
		InvType:      p.InvType,
		ReturnType:   p.ReturnType,
		InvAmount:    p.InvAmount,
		ReturnAmount: p.ReturnAmount,
		ReturnRate:   p.ReturnRate,
		StartDate:    p.StartDate,
		EndDate:      p.EndDate,
	}
}

func fromDTO(d api.InvestmentDTO) invest.Investment {
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
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}
