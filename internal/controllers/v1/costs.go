package v1

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/moneta-app/backend/internal/httputil"
	"github.com/moneta-app/backend/internal/models"
	"github.com/moneta-app/backend/internal/types"
	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"
)

// CostResponse is one cost entry scoped to the selected month.
type CostResponse struct {
	ID              string           `json:"id" example:"3f2d68ab"`
	Name            string           `json:"name" example:"Rent"`
	Category        string           `json:"category" example:"Housing"`
	CostType        types.CostType   `json:"costType" example:"fix"`
	BaseAmount      decimal.Decimal  `json:"baseAmount" example:"800"`
	Recurring       bool             `json:"recurring" example:"true"`
	EffectiveAmount decimal.Decimal  `json:"effectiveAmount" example:"650"`
	Override        *decimal.Decimal `json:"override,omitempty" example:"650"`
}

func newCostResponse(entry models.CostEntry, month types.Month) CostResponse {
	response := CostResponse{
		ID:              entry.ID,
		Name:            entry.Name,
		Category:        entry.Category,
		CostType:        entry.CostType,
		BaseAmount:      entry.BaseAmount,
		Recurring:       entry.Recurring,
		EffectiveAmount: entry.EffectiveAmount(month).Round(2),
	}

	if value, ok := entry.Overrides[month]; ok {
		value := value
		response.Override = &value
	}

	return response
}

// matches reports whether the entry matches the search term. The term
// matches on name and category, case insensitive, * is a wildcard.
func matches(entry models.CostEntry, search string) bool {
	if search == "" {
		return true
	}

	pattern := "*" + strings.ToLower(search) + "*"
	return glob.Glob(pattern, strings.ToLower(entry.Name)) ||
		glob.Glob(pattern, strings.ToLower(entry.CategoryLabel()))
}

// @Summary      List cost entries
// @Description  Returns the cost entries of the selected month with their effective amounts
// @Tags         Costs
// @Produce      json
// @Param        search  query     string  false  "Filter by name or category, * is a wildcard"
// @Success      200     {object}  map[string][]v1.CostResponse
// @Router       /v1/costs [get]
func (s *Server) GetCosts(c *gin.Context) {
	month := s.Months.Selected()
	search := c.Query("search")

	data := make([]CostResponse, 0)
	for _, entry := range s.Coordinator.Entries() {
		if matches(entry, search) {
			data = append(data, newCostResponse(entry, month))
		}
	}

	c.JSON(http.StatusOK, gin.H{"data": data})
}

// @Summary      Create a cost entry
// @Description  Creates the entry upstream and adds it to the selected month
// @Tags         Costs
// @Accept       json
// @Produce      json
// @Param        cost  body      models.EntryEditable  true  "Cost entry"
// @Success      201   {object}  map[string]v1.CostResponse
// @Failure      400   {object}  httperror.Error
// @Failure      401   {object}  httperror.Error
// @Failure      502   {object}  httperror.Error
// @Router       /v1/costs [post]
func (s *Server) CreateCost(c *gin.Context) {
	var data models.EntryEditable
	if err := httputil.BindData(c, &data); err != nil {
		return
	}

	created, err := s.Coordinator.CreateEntry(c.Request.Context(), data)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": newCostResponse(created, s.Months.Selected())})
}

// OverrideRequest sets or removes the month value of one entry. A null or
// missing value removes the override. A missing month targets the
// selected month.
type OverrideRequest struct {
	Month json.RawMessage  `json:"month" example:"\"Mai\""`
	Year  int              `json:"year" example:"2026"`
	Value *decimal.Decimal `json:"value" example:"650"`
}

// @Summary      Set or remove a month value
// @Description  Overrides the amount of one entry for one month, a null value removes the override
// @Tags         Costs
// @Accept       json
// @Produce      json
// @Param        costId    path      string              true  "ID of the cost entry"
// @Param        override  body      v1.OverrideRequest  true  "Override"
// @Success      200       {object}  map[string]v1.CostResponse
// @Failure      400       {object}  httperror.Error
// @Failure      404       {object}  httperror.Error
// @Router       /v1/costs/{costId}/override [patch]
func (s *Server) UpdateOverride(c *gin.Context) {
	var data OverrideRequest
	if err := httputil.BindData(c, &data); err != nil {
		return
	}

	month := s.Months.Selected()
	if len(data.Month) > 0 && string(data.Month) != "null" {
		var err error
		month, err = MonthRequest{Month: data.Month, Year: data.Year}.parse()
		if err != nil {
			respondError(c, err)
			return
		}
	}

	id := c.Param("costId")
	if err := s.Coordinator.SetOverride(id, month, data.Value); err != nil {
		respondError(c, err)
		return
	}

	entry, _ := s.Coordinator.Entry(id)
	c.JSON(http.StatusOK, gin.H{"data": newCostResponse(entry, month)})
}

// @Summary      Delete a cost entry
// @Description  Removes the entry and all its month values
// @Tags         Costs
// @Param        costId  path  string  true  "ID of the cost entry"
// @Success      204
// @Failure      404  {object}  httperror.Error
// @Router       /v1/costs/{costId} [delete]
func (s *Server) DeleteCost(c *gin.Context) {
	if err := s.Coordinator.DeleteEntry(c.Param("costId")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
