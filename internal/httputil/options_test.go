package httputil_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/moneta-app/backend/internal/httputil"
	"github.com/stretchr/testify/assert"
)

func TestOptions(t *testing.T) {
	tests := []struct {
		name    string
		handler gin.HandlerFunc
		allow   string
	}{
		{"GET", httputil.OptionsGet, "GET"},
		{"GET, PUT", httputil.OptionsGetPut, "GET, PUT"},
		{"GET, POST", httputil.OptionsGetPost, "GET, POST"},
		{"PATCH, DELETE", httputil.OptionsPatchDelete, "PATCH, DELETE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, r := gin.CreateTestContext(w)

			r.OPTIONS("/", tt.handler)

			c.Request, _ = http.NewRequest(http.MethodOptions, "/", nil)
			r.ServeHTTP(w, c.Request)

			assert.Equal(t, http.StatusNoContent, w.Code)
			assert.Equal(t, tt.allow, w.Header().Get("allow"))
		})
	}
}
