package v1

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/moneta-app/backend/internal/httputil"
	"github.com/moneta-app/backend/internal/types"
)

// MonthSelection is one month in API responses.
type MonthSelection struct {
	Month  types.Month `json:"month" example:"2026-05"`
	Label  string      `json:"label" example:"Mai"`
	Year   int         `json:"year" example:"2026"`
	Number int         `json:"number" example:"5"`
}

func newMonthSelection(month types.Month) MonthSelection {
	return MonthSelection{
		Month:  month,
		Label:  month.Label(),
		Year:   month.Year(),
		Number: month.Number(),
	}
}

// MonthRequest selects a month. The month field accepts the canonical
// "YYYY-MM" form, a German short label together with the year, or the
// month number together with the year.
type MonthRequest struct {
	Month json.RawMessage `json:"month" example:"\"Mai\""`
	Year  int             `json:"year" example:"2026"`
}

func (r MonthRequest) parse() (types.Month, error) {
	var number int
	if err := json.Unmarshal(r.Month, &number); err == nil {
		if number < 1 || number > 12 {
			return types.Month{}, errMonthInvalid
		}
		return types.NewMonth(r.Year, time.Month(number)), nil
	}

	var s string
	if err := json.Unmarshal(r.Month, &s); err != nil {
		return types.Month{}, errMonthInvalid
	}

	if month, err := types.ParseMonth(s); err == nil {
		return month, nil
	}

	return types.ParseLabel(s, r.Year)
}

// @Summary      Get the selected month
// @Description  Returns the month the dashboard is scoped to
// @Tags         Month
// @Produce      json
// @Success      200  {object}  map[string]v1.MonthSelection
// @Router       /v1/month [get]
func (s *Server) GetMonth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": newMonthSelection(s.Months.Selected())})
}

// @Summary      Select a month
// @Description  Switches the dashboard to another month and reloads its entries
// @Tags         Month
// @Accept       json
// @Produce      json
// @Param        month  body      v1.MonthRequest  true  "Month"
// @Success      200    {object}  map[string]v1.MonthSelection
// @Failure      400    {object}  httperror.Error
// @Failure      500    {object}  httperror.Error
// @Router       /v1/month [put]
func (s *Server) UpdateMonth(c *gin.Context) {
	var data MonthRequest
	if err := httputil.BindData(c, &data); err != nil {
		return
	}

	month, err := data.parse()
	if err != nil {
		respondError(c, err)
		return
	}

	if err := s.Months.Set(month); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": newMonthSelection(month)})
}
