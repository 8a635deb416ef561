package ledger

import (
	"github.com/moneta-app/backend/internal/models"
	"github.com/moneta-app/backend/internal/types"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// CostTypeSums are the monthly sums per display bucket. The values are
// unrounded; rounding to two decimal places happens at the presentation
// boundary so that repeated recomputation cannot accumulate rounding error.
type CostTypeSums struct {
	Fixed    decimal.Decimal `json:"fix" example:"740.20"`
	Yearly   decimal.Decimal `json:"yearly" example:"89.99"`
	Variable decimal.Decimal `json:"variable" example:"213.50"`
	Total    decimal.Decimal `json:"total" example:"1043.69"`
}

// Rounded returns the sums rounded to two decimal places for display.
func (s CostTypeSums) Rounded() CostTypeSums {
	return CostTypeSums{
		Fixed:    s.Fixed.Round(2),
		Yearly:   s.Yearly.Round(2),
		Variable: s.Variable.Round(2),
		Total:    s.Total.Round(2),
	}
}

// CategoryTotal is the monthly total of one category.
type CategoryTotal struct {
	Category string          `json:"category" example:"Streaming"`
	Total    decimal.Decimal `json:"total" example:"25.98"`
}

// Aggregate derives the per-cost-type sums for a month from a ledger
// snapshot, using each entry's effective amount. Entries with an
// unrecognized cost type count toward the variable bucket; that fallback is
// deliberate so bad data shows up in the totals instead of disappearing.
//
// Aggregate only reads the snapshot, so it can run after every single
// mutation without a remote fetch.
func Aggregate(entries []models.CostEntry, month types.Month) CostTypeSums {
	var sums CostTypeSums

	for _, entry := range entries {
		amount := entry.EffectiveAmount(month)

		switch entry.CostType {
		case types.CostTypeFixed:
			sums.Fixed = sums.Fixed.Add(amount)
		case types.CostTypeYearly:
			sums.Yearly = sums.Yearly.Add(amount)
		default:
			// variable and unclassified
			sums.Variable = sums.Variable.Add(amount)
		}
	}

	sums.Total = sums.Fixed.Add(sums.Yearly).Add(sums.Variable)
	return sums
}

// AggregateByCategory derives the per-category totals for a month, sorted
// by total in descending order. Ties keep the order in which the categories
// first appear in the snapshot so that chart legends are stable across
// re-renders. Totals are rounded to two decimal places as they are only
// used for display.
func AggregateByCategory(entries []models.CostEntry, month types.Month) []CategoryTotal {
	totals := make(map[string]decimal.Decimal)
	var order []string

	for _, entry := range entries {
		category := entry.CategoryLabel()

		if _, seen := totals[category]; !seen {
			order = append(order, category)
		}
		totals[category] = totals[category].Add(entry.EffectiveAmount(month))
	}

	result := make([]CategoryTotal, 0, len(order))
	for _, category := range order {
		result = append(result, CategoryTotal{
			Category: category,
			Total:    totals[category].Round(2),
		})
	}

	slices.SortStableFunc(result, func(a, b CategoryTotal) int {
		return b.Total.Cmp(a.Total)
	})

	return result
}
