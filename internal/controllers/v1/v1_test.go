package v1_test

import (
	"net/http"
	"testing"

	"github.com/moneta-app/backend/internal/test"
	"github.com/stretchr/testify/assert"
)

func TestGetV1(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	recorder := test.Request(t, engine, http.MethodGet, "/v1", "")
	test.AssertHTTPStatus(t, http.StatusOK, &recorder)

	var response test.APIResponse
	test.DecodeResponse(t, &recorder, &response)

	assert.Equal(t, "http://example.com/v1/month", response.Links["month"])
	assert.Equal(t, "http://example.com/v1/dashboard", response.Links["dashboard"])
	assert.Equal(t, "http://example.com/v1/costs", response.Links["costs"])
}

func TestOptions(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	tests := []struct {
		path  string
		allow string
	}{
		{"/v1", "GET"},
		{"/v1/month", "GET, PUT"},
		{"/v1/dashboard", "GET"},
		{"/v1/costs", "GET, POST"},
		{"/v1/costs/17", "PATCH, DELETE"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			recorder := test.Request(t, engine, http.MethodOptions, tt.path, "")
			test.AssertHTTPStatus(t, http.StatusNoContent, &recorder)
			assert.Equal(t, tt.allow, recorder.Header().Get("allow"))
		})
	}
}
