// Package v1 implements the first version of the dashboard API.
package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moneta-app/backend/internal/httputil"
	"github.com/moneta-app/backend/internal/monthctx"
	"github.com/moneta-app/backend/internal/syncer"
)

// Server holds the state the handlers work on.
type Server struct {
	Coordinator *syncer.Coordinator
	Months      *monthctx.Context
}

// Register registers all v1 routes with the RouterGroup that is passed.
func Register(r *gin.RouterGroup, s *Server) {
	{
		r.OPTIONS("", OptionsV1)
		r.GET("", GetV1)
	}

	{
		r.OPTIONS("/month", httputil.OptionsGetPut)
		r.GET("/month", s.GetMonth)
		r.PUT("/month", s.UpdateMonth)
	}

	{
		r.OPTIONS("/dashboard", httputil.OptionsGet)
		r.GET("/dashboard", s.GetDashboard)
	}

	{
		r.OPTIONS("/costs", httputil.OptionsGetPost)
		r.GET("/costs", s.GetCosts)
		r.POST("/costs", s.CreateCost)

		r.OPTIONS("/costs/:costId", httputil.OptionsPatchDelete)
		r.PATCH("/costs/:costId/override", s.UpdateOverride)
		r.DELETE("/costs/:costId", s.DeleteCost)
	}
}

// @Summary      Allowed HTTP verbs
// @Description  Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags         General
// @Success      204
// @Router       /v1 [options]
func OptionsV1(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary      API v1 overview
// @Description  Returns the links for the API v1
// @Tags         General
// @Produce      json
// @Success      200  {object}  map[string]map[string]string
// @Router       /v1 [get]
func GetV1(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"links": map[string]string{
			"month":     httputil.RequestURL(c) + "/month",
			"dashboard": httputil.RequestURL(c) + "/dashboard",
			"costs":     httputil.RequestURL(c) + "/costs",
		},
	})
}
