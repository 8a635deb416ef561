package ledger

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// NoDataLabel is the synthetic category for an empty month, so that the
// chart never renders blank.
const NoDataLabel = "No data"

// Projection is the display-ready form of the category totals. The three
// slices are index-aligned; the rendering layer uses them verbatim and must
// not derive anything itself.
type Projection struct {
	Labels []string          `json:"labels"`
	Values []decimal.Decimal `json:"values"`
	Colors []string          `json:"colors"`
}

// Project turns category totals into a chart projection.
//
// It is a pure transform: colors depend only on the number of labels, so
// the same category set always produces the same palette, and an empty
// aggregation produces the NoDataLabel placeholder with value 1.
func Project(totals []CategoryTotal) Projection {
	if len(totals) == 0 {
		return Projection{
			Labels: []string{NoDataLabel},
			Values: []decimal.Decimal{decimal.NewFromInt(1)},
			Colors: palette(1),
		}
	}

	labels := make([]string, 0, len(totals))
	values := make([]decimal.Decimal, 0, len(totals))
	for _, total := range totals {
		labels = append(labels, total.Category)
		values = append(values, total.Total)
	}

	return Projection{
		Labels: labels,
		Values: values,
		Colors: palette(len(labels)),
	}
}

// palette returns n colors as an evenly spaced hue partition.
func palette(n int) []string {
	colors := make([]string, 0, n)
	for i := 0; i < n; i++ {
		hue := int(math.Round(360 / float64(n) * float64(i)))
		colors = append(colors, fmt.Sprintf("hsl(%d 70%% 55%%)", hue))
	}

	return colors
}
