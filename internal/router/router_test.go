package router_test

import (
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	v1 "github.com/moneta-app/backend/internal/controllers/v1"
	"github.com/moneta-app/backend/internal/router"
	"github.com/moneta-app/backend/internal/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRouter builds a fully configured engine. The route handlers for
// /v1 resources are not exercised here, the controller tests cover those.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r, teardown, err := router.Config()
	require.Nil(t, err, "Error on router initialization")
	t.Cleanup(teardown)

	router.AttachRoutes(r.Group("/"), &v1.Server{})
	return r
}

func TestGetRoot(t *testing.T) {
	r := newTestRouter(t)

	recorder := test.Request(t, r, http.MethodGet, "/", "")
	test.AssertHTTPStatus(t, http.StatusOK, &recorder)

	var response router.RootResponse
	test.DecodeResponse(t, &recorder, &response)

	assert.Equal(t, "http://example.com/version", response.Links.Version)
	assert.Equal(t, "http://example.com/v1", response.Links.V1)
}

func TestGetVersion(t *testing.T) {
	r := newTestRouter(t)

	recorder := test.Request(t, r, http.MethodGet, "/version", "")
	test.AssertHTTPStatus(t, http.StatusOK, &recorder)

	var response router.VersionResponse
	test.DecodeResponse(t, &recorder, &response)
	assert.Equal(t, "0.0.0", response.Data.Version)
}

func TestOptionsRoot(t *testing.T) {
	r := newTestRouter(t)

	recorder := test.Request(t, r, http.MethodOptions, "/", "")
	test.AssertHTTPStatus(t, http.StatusNoContent, &recorder)
	assert.Equal(t, "GET", recorder.Header().Get("allow"))
}

func TestMethodNotAllowed(t *testing.T) {
	r := newTestRouter(t)

	recorder := test.Request(t, r, http.MethodPost, "/version", "")
	test.AssertHTTPStatus(t, http.StatusMethodNotAllowed, &recorder)
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(t)

	// A request so that the middleware has observed something
	_ = test.Request(t, r, http.MethodGet, "/version", "")

	recorder := test.Request(t, r, http.MethodGet, "/metrics", "")
	test.AssertHTTPStatus(t, http.StatusOK, &recorder)
	assert.True(t, strings.Contains(recorder.Body.String(), "requests_total"), "metrics are missing the request counter")
}

func TestPprofOff(t *testing.T) {
	r := newTestRouter(t)

	for _, route := range r.Routes() {
		assert.NotContains(t, route.Path, "pprof", "pprof routes are registered erroneously! Route: %s", route.Path)
	}
}

// TestCorsSetting checks that setting of CORS works.
// It does not check the actual headers as this is already done in testing of the module.
func TestCorsSetting(t *testing.T) {
	os.Setenv("CORS_ALLOW_ORIGINS", "http://localhost:3000 https://example.com")
	defer os.Unsetenv("CORS_ALLOW_ORIGINS")

	newTestRouter(t)
}
