// Package models implements the domain model of the monthly ledger.
package models

import (
	"errors"
	"strings"

	"github.com/moneta-app/backend/internal/types"
	"github.com/shopspring/decimal"
)

// DefaultCategory is the category label for entries without a category.
const DefaultCategory = "Uncategorized"

var (
	ErrNameMissing     = errors.New("the name must be set")
	ErrCategoryMissing = errors.New("the category must be set")
	ErrAmountNegative  = errors.New("the amount must be zero or positive")
	ErrCostTypeInvalid = errors.New("the cost type must be one of 'fix', 'yearly' or 'variable'")
)

// CostEntry is a recurring or one-off cost item.
//
// The ID is assigned by the upstream costs API on creation and never changes.
// Overrides replace the base amount for single months; an override is removed
// by deleting its key, which is different from setting it to zero.
type CostEntry struct {
	ID string `json:"id" example:"65c4aa24c13bba1aa4b4a321"` // ID assigned by the costs API
	EntryEditable
	Overrides map[types.Month]decimal.Decimal `json:"overridesByMonth,omitempty"`
}

// EntryEditable represents all user configurable parameters of a cost entry.
type EntryEditable struct {
	Name       string          `json:"name" example:"Netflix"`                              // Name of the cost entry
	Category   string          `json:"category" example:"Streaming"`                        // Category label, free text
	CostType   types.CostType  `json:"costType" example:"fix"`                              // Display bucket, immutable after creation
	BaseAmount decimal.Decimal `json:"baseAmount" example:"12.99"`                          // Nominal recurring amount
	Recurring  bool            `json:"recurring" example:"true" default:"true"`             // Visible in every month, not only the creation month
}

// Normalize trims the free-text labels. Fixed costs are always recurring,
// they exist to show up every month.
func (editable *EntryEditable) Normalize() {
	editable.Name = strings.TrimSpace(editable.Name)
	editable.Category = strings.TrimSpace(editable.Category)

	if editable.CostType == types.CostTypeFixed {
		editable.Recurring = true
	}
}

// Validate checks a draft before it is sent to the costs API.
// Drafts with an unknown cost type are rejected here; only entries that
// already exist upstream get the unclassified treatment.
func (editable EntryEditable) Validate() error {
	if strings.TrimSpace(editable.Name) == "" {
		return ErrNameMissing
	}

	if strings.TrimSpace(editable.Category) == "" {
		return ErrCategoryMissing
	}

	if editable.BaseAmount.IsNegative() {
		return ErrAmountNegative
	}

	if !editable.CostType.Valid() {
		return ErrCostTypeInvalid
	}

	return nil
}

// EffectiveAmount resolves the amount that counts toward totals for a month:
// the override for that month if one exists, the base amount otherwise.
// It never modifies the entry, so it is safe to call during every
// recomputation cycle.
func (e CostEntry) EffectiveAmount(month types.Month) decimal.Decimal {
	if override, ok := e.Overrides[month]; ok {
		return override
	}

	return e.BaseAmount
}

// CategoryLabel returns the trimmed category, falling back to
// DefaultCategory for entries without one.
func (e CostEntry) CategoryLabel() string {
	category := strings.TrimSpace(e.Category)
	if category == "" {
		return DefaultCategory
	}

	return category
}

// WithOverride returns a copy of the entry with the override for the month
// set to value, or removed when value is nil. The overrides map is copied
// so that snapshots handed out earlier stay unchanged.
func (e CostEntry) WithOverride(month types.Month, value *decimal.Decimal) CostEntry {
	overrides := make(map[types.Month]decimal.Decimal, len(e.Overrides)+1)
	for k, v := range e.Overrides {
		overrides[k] = v
	}

	if value == nil {
		delete(overrides, month)
	} else {
		overrides[month] = *value
	}

	if len(overrides) == 0 {
		overrides = nil
	}

	e.Overrides = overrides
	return e
}
