package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/moneta-app/backend/internal/controllers/v1"
	"github.com/moneta-app/backend/internal/remote"
	"github.com/moneta-app/backend/internal/test"
	"github.com/moneta-app/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type costResponse struct {
	Data v1.CostResponse
}

type costListResponse struct {
	Data []v1.CostResponse
}

func TestGetCosts(t *testing.T) {
	engine, _, _ := newTestEngine(t,
		testEntry("1", "Rent", "Housing", types.CostTypeFixed, 800),
		testEntry("2", "Netflix", "Streaming", types.CostTypeFixed, 13),
	)

	recorder := test.Request(t, engine, http.MethodGet, "/v1/costs", "")
	test.AssertHTTPStatus(t, http.StatusOK, &recorder)

	var response costListResponse
	test.DecodeResponse(t, &recorder, &response)

	require.Len(t, response.Data, 2)
	assert.Equal(t, "Rent", response.Data[0].Name)
	assert.True(t, response.Data[0].EffectiveAmount.Equal(decimal.NewFromInt(800)))
	assert.Nil(t, response.Data[0].Override)
}

func TestGetCostsSearch(t *testing.T) {
	engine, _, _ := newTestEngine(t,
		testEntry("1", "Rent", "Housing", types.CostTypeFixed, 800),
		testEntry("2", "Netflix", "Streaming", types.CostTypeFixed, 13),
		testEntry("3", "Spotify", "Streaming", types.CostTypeFixed, 11),
	)

	tests := []struct {
		search string
		want   int
	}{
		{"net", 1},
		{"NET", 1},
		{"streaming", 2},
		{"str*ing", 2},
		{"gym", 0},
		{"", 3},
	}

	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			recorder := test.Request(t, engine, http.MethodGet, "/v1/costs?search="+tt.search, "")
			test.AssertHTTPStatus(t, http.StatusOK, &recorder)

			var response costListResponse
			test.DecodeResponse(t, &recorder, &response)
			assert.Len(t, response.Data, tt.want)
		})
	}
}

func TestGetCostsUsesOverride(t *testing.T) {
	entry := testEntry("1", "Rent", "Housing", types.CostTypeFixed, 800)
	entry.Overrides = map[types.Month]decimal.Decimal{
		testMonth: decimal.NewFromInt(650),
	}

	engine, _, _ := newTestEngine(t, entry)

	recorder := test.Request(t, engine, http.MethodGet, "/v1/costs", "")
	var response costListResponse
	test.DecodeResponse(t, &recorder, &response)

	require.Len(t, response.Data, 1)
	assert.True(t, response.Data[0].EffectiveAmount.Equal(decimal.NewFromInt(650)))
	require.NotNil(t, response.Data[0].Override)
	assert.True(t, response.Data[0].Override.Equal(decimal.NewFromInt(650)))
}

func TestCreateCost(t *testing.T) {
	engine, _, coordinator := newTestEngine(t)

	recorder := test.Request(t, engine, http.MethodPost, "/v1/costs",
		`{ "name": "Rent", "category": "Housing", "costType": "fix", "baseAmount": 800, "recurring": true }`)
	test.AssertHTTPStatus(t, http.StatusCreated, &recorder)

	var response costResponse
	test.DecodeResponse(t, &recorder, &response)
	assert.Equal(t, "generated-1", response.Data.ID)
	assert.True(t, response.Data.EffectiveAmount.Equal(decimal.NewFromInt(800)))

	assert.Len(t, coordinator.Entries(), 1)
}

func TestCreateCostInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"name missing", `{ "category": "Housing", "costType": "fix", "baseAmount": 800 }`},
		{"category missing", `{ "name": "Rent", "costType": "fix", "baseAmount": 800 }`},
		{"negative amount", `{ "name": "Rent", "category": "Housing", "costType": "fix", "baseAmount": -1 }`},
		{"unknown cost type", `{ "name": "Rent", "category": "Housing", "costType": "daily", "baseAmount": 800 }`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, _, coordinator := newTestEngine(t)

			recorder := test.Request(t, engine, http.MethodPost, "/v1/costs", tt.body)
			test.AssertHTTPStatus(t, http.StatusBadRequest, &recorder)
			assert.Empty(t, coordinator.Entries())
		})
	}
}

func TestCreateCostUpstreamGone(t *testing.T) {
	engine, client, _ := newTestEngine(t)
	client.err = fmt.Errorf("%w: connection refused", remote.ErrRemote)

	recorder := test.Request(t, engine, http.MethodPost, "/v1/costs",
		`{ "name": "Rent", "category": "Housing", "costType": "fix", "baseAmount": 800 }`)
	test.AssertHTTPStatus(t, http.StatusBadGateway, &recorder)
}

func TestUpdateOverride(t *testing.T) {
	engine, _, coordinator := newTestEngine(t,
		testEntry("1", "Rent", "Housing", types.CostTypeFixed, 800),
	)

	recorder := test.Request(t, engine, http.MethodPatch, "/v1/costs/1/override",
		`{ "month": "Mai", "year": 2026, "value": 650 }`)
	test.AssertHTTPStatus(t, http.StatusOK, &recorder)

	var response costResponse
	test.DecodeResponse(t, &recorder, &response)
	require.NotNil(t, response.Data.Override)
	assert.True(t, response.Data.Override.Equal(decimal.NewFromInt(650)))
	assert.True(t, response.Data.EffectiveAmount.Equal(decimal.NewFromInt(650)))

	coordinator.Flush()
}

func TestUpdateOverrideDefaultsToSelectedMonth(t *testing.T) {
	engine, _, coordinator := newTestEngine(t,
		testEntry("1", "Rent", "Housing", types.CostTypeFixed, 800),
	)

	recorder := test.Request(t, engine, http.MethodPatch, "/v1/costs/1/override", `{ "value": 650 }`)
	test.AssertHTTPStatus(t, http.StatusOK, &recorder)

	entry, ok := coordinator.Entry("1")
	require.True(t, ok)
	assert.True(t, entry.EffectiveAmount(testMonth).Equal(decimal.NewFromInt(650)))

	coordinator.Flush()
}

func TestUpdateOverrideRemoval(t *testing.T) {
	entry := testEntry("1", "Rent", "Housing", types.CostTypeFixed, 800)
	entry.Overrides = map[types.Month]decimal.Decimal{
		testMonth: decimal.NewFromInt(650),
	}

	engine, _, coordinator := newTestEngine(t, entry)

	recorder := test.Request(t, engine, http.MethodPatch, "/v1/costs/1/override", `{ "value": null }`)
	test.AssertHTTPStatus(t, http.StatusOK, &recorder)

	var response costResponse
	test.DecodeResponse(t, &recorder, &response)
	assert.Nil(t, response.Data.Override)
	assert.True(t, response.Data.EffectiveAmount.Equal(decimal.NewFromInt(800)), "removing the override must fall back to the base amount")

	coordinator.Flush()
}

func TestUpdateOverrideUnknownEntry(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	recorder := test.Request(t, engine, http.MethodPatch, "/v1/costs/nope/override", `{ "value": 650 }`)
	test.AssertHTTPStatus(t, http.StatusNotFound, &recorder)
}

func TestDeleteCost(t *testing.T) {
	engine, _, coordinator := newTestEngine(t,
		testEntry("1", "Rent", "Housing", types.CostTypeFixed, 800),
	)

	recorder := test.Request(t, engine, http.MethodDelete, "/v1/costs/1", "")
	test.AssertHTTPStatus(t, http.StatusNoContent, &recorder)
	assert.Empty(t, coordinator.Entries())

	coordinator.Flush()
}

func TestDeleteCostUnknownEntry(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	recorder := test.Request(t, engine, http.MethodDelete, "/v1/costs/nope", "")
	test.AssertHTTPStatus(t, http.StatusNotFound, &recorder)
}
