// Package remote implements the client for the upstream costs API, the
// service that owns persistence of all cost entries.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/moneta-app/backend/internal/models"
	"github.com/moneta-app/backend/internal/types"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var (
	// ErrUnauthorized is returned when the costs API rejects the
	// credential. It is never retried automatically; the caller has to
	// re-authenticate.
	ErrUnauthorized = errors.New("not authenticated against the costs API")

	// ErrNotFound is returned when the costs API does not know the entry.
	ErrNotFound = errors.New("the costs API does not know a cost entry with this ID")

	// ErrRemote wraps every transport or server-side failure talking to
	// the costs API.
	ErrRemote = errors.New("the costs API could not be reached")

	errMissingID = errors.New("the costs API returned a created entry without an ID")
)

// TokenSource supplies the bearer token for the costs API. Authentication
// itself is handled elsewhere; this package only attaches the credential.
type TokenSource func() string

// Client is the interface to the costs API.
type Client interface {
	// ListForMonth returns all entries effective in the month: entries
	// created for exactly that month plus all recurring entries. The
	// filter runs server-side.
	ListForMonth(ctx context.Context, month types.Month) ([]models.CostEntry, error)

	// Create stores a new entry and returns the authoritative version
	// including the server-assigned ID.
	Create(ctx context.Context, draft models.EntryEditable, month types.Month) (models.CostEntry, error)

	// PatchOverride sets or, with a nil value, removes the override of one
	// entry for one month. Base amount and other months are not touched.
	PatchOverride(ctx context.Context, id string, month types.Month, value *decimal.Decimal) error

	// Delete removes the entry entirely, for all months including all
	// overrides.
	Delete(ctx context.Context, id string) error
}

type costsClient struct {
	baseURL    string
	token      TokenSource
	httpClient *http.Client
}

// New returns a Client for the costs API at baseURL.
func New(baseURL string, token TokenSource) Client {
	return &costsClient{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// wireEntry is a cost entry as the costs API serializes it. The German
// field names predate this backend and cannot change without breaking the
// other consumers of the API.
type wireEntry struct {
	ID        string                     `json:"_id"`
	Name      string                     `json:"name"`
	Category  string                     `json:"kategorie"`
	CostType  string                     `json:"costType"`
	Amount    json.Number                `json:"kosten"`
	Recurring bool                       `json:"recurring"`
	Overrides map[string]json.RawMessage `json:"abgebuchtByMonth"`
}

type wireCreate struct {
	Name      string      `json:"name"`
	Category  string      `json:"kategorie"`
	CostType  string      `json:"costType"`
	Amount    json.Number `json:"kosten"`
	Recurring bool        `json:"recurring"`
	Month     int         `json:"month"`
	Year      int         `json:"year"`
}

type wirePatch struct {
	Override *json.Number `json:"abgebucht"`
	Month    int          `json:"month"`
	Year     int          `json:"year"`
}

func (c *costsClient) ListForMonth(ctx context.Context, month types.Month) ([]models.CostEntry, error) {
	query := url.Values{}
	query.Set("month", strconv.Itoa(month.Number()))
	query.Set("year", strconv.Itoa(month.Year()))

	body, err := c.do(ctx, http.MethodGet, "/api/costs?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var wire []wireEntry
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("%w: invalid response body: %s", ErrRemote, err)
	}

	entries := make([]models.CostEntry, 0, len(wire))
	for _, w := range wire {
		entry, err := w.model()
		if err != nil {
			// One broken record must not take down the whole month
			log.Warn().Err(err).Str("id", w.ID).Msg("skipping invalid cost entry from the costs API")
			continue
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func (c *costsClient) Create(ctx context.Context, draft models.EntryEditable, month types.Month) (models.CostEntry, error) {
	payload := wireCreate{
		Name:      draft.Name,
		Category:  draft.Category,
		CostType:  string(draft.CostType),
		Amount:    json.Number(draft.BaseAmount.String()),
		Recurring: draft.Recurring,
		Month:     month.Number(),
		Year:      month.Year(),
	}

	body, err := c.do(ctx, http.MethodPost, "/api/costs", payload)
	if err != nil {
		return models.CostEntry{}, err
	}

	var w wireEntry
	if err := json.Unmarshal(body, &w); err != nil {
		return models.CostEntry{}, fmt.Errorf("%w: invalid response body: %s", ErrRemote, err)
	}

	return w.model()
}

func (c *costsClient) PatchOverride(ctx context.Context, id string, month types.Month, value *decimal.Decimal) error {
	payload := wirePatch{
		Month: month.Number(),
		Year:  month.Year(),
	}
	if value != nil {
		number := json.Number(value.String())
		payload.Override = &number
	}

	_, err := c.do(ctx, http.MethodPatch, "/api/costs/"+url.PathEscape(id), payload)
	return err
}

func (c *costsClient) Delete(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/costs/"+url.PathEscape(id), nil)
	return err
}

// do runs one request against the costs API and returns the response body.
func (c *costsClient) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+c.token())
	req.Header.Set("X-Request-Id", uuid.NewString())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrRemote, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrRemote, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("%w: status %d: %s", ErrRemote, resp.StatusCode, body)
	}

	return body, nil
}

// model converts a wire entry into the domain model.
func (w wireEntry) model() (models.CostEntry, error) {
	if w.ID == "" {
		return models.CostEntry{}, errMissingID
	}

	amount, err := decimal.NewFromString(w.Amount.String())
	if err != nil {
		return models.CostEntry{}, fmt.Errorf("entry has no valid amount: %w", err)
	}

	entry := models.CostEntry{
		ID: w.ID,
		EntryEditable: models.EntryEditable{
			Name:       w.Name,
			Category:   w.Category,
			CostType:   types.ParseCostType(w.CostType),
			BaseAmount: amount,
			Recurring:  w.Recurring,
		},
	}

	for key, raw := range w.Overrides {
		// Only canonical YYYY-MM keys can ever match a resolution lookup,
		// anything else is dropped here so it cannot silently mismatch.
		month, err := types.ParseMonth(key)
		if err != nil {
			log.Warn().Str("id", w.ID).Str("key", key).Msg("dropping override with non-canonical month key")
			continue
		}

		value, ok := parseOverride(raw)
		if !ok {
			// Empty or unparseable values mean "no override"
			continue
		}

		if entry.Overrides == nil {
			entry.Overrides = make(map[types.Month]decimal.Decimal)
		}
		entry.Overrides[month] = value
	}

	return entry, nil
}

// parseOverride interprets one raw override value. The historical data
// contains numbers, numeric strings, empty strings and nulls; everything
// that is not a finite number counts as "no override".
func parseOverride(raw json.RawMessage) (decimal.Decimal, bool) {
	var asNumber json.Number
	if err := json.Unmarshal(raw, &asNumber); err == nil && asNumber != "" {
		value, err := decimal.NewFromString(asNumber.String())
		if err == nil {
			return value, true
		}
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil && asString != "" {
		value, err := decimal.NewFromString(asString)
		if err == nil {
			return value, true
		}
	}

	return decimal.Decimal{}, false
}
