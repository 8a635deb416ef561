package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moneta-app/backend/internal/ledger"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var germanPrinter = message.NewPrinter(language.German)

// euro formats an amount for display with German number formatting.
func euro(amount decimal.Decimal) string {
	return germanPrinter.Sprintf("%.2f €", amount.InexactFloat64())
}

// SumsDisplay are the cost type sums formatted for display.
type SumsDisplay struct {
	Fixed    string `json:"fix" example:"740,20 €"`
	Yearly   string `json:"yearly" example:"89,99 €"`
	Variable string `json:"variable" example:"213,50 €"`
	Total    string `json:"total" example:"1.043,69 €"`
}

// DashboardResponse is the full derived state for the selected month.
type DashboardResponse struct {
	Month      MonthSelection         `json:"month"`
	ByCostType ledger.CostTypeSums    `json:"byCostType"`
	Display    SumsDisplay            `json:"display"`
	Categories []ledger.CategoryTotal `json:"categories"`
	Chart      ledger.Projection      `json:"chart"`
}

// @Summary      Get the dashboard
// @Description  Returns the cost type sums, category totals and the chart projection for the selected month
// @Tags         Dashboard
// @Produce      json
// @Success      200  {object}  map[string]v1.DashboardResponse
// @Router       /v1/dashboard [get]
func (s *Server) GetDashboard(c *gin.Context) {
	view := s.Coordinator.View()
	sums := view.Sums.Rounded()

	c.JSON(http.StatusOK, gin.H{"data": DashboardResponse{
		Month:      newMonthSelection(view.Month),
		ByCostType: sums,
		Display: SumsDisplay{
			Fixed:    euro(sums.Fixed),
			Yearly:   euro(sums.Yearly),
			Variable: euro(sums.Variable),
			Total:    euro(sums.Total),
		},
		Categories: view.Categories,
		Chart:      view.Chart,
	}})
}
