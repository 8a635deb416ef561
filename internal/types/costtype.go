package types

// CostType is the display bucket a cost entry belongs to.
//
// Values read from the upstream API are kept verbatim so that unrecognized
// values stay visible; they are only folded into the variable bucket when
// sums are calculated, never at parse time.
type CostType string

const (
	CostTypeFixed    CostType = "fix"
	CostTypeYearly   CostType = "yearly"
	CostTypeVariable CostType = "variable"
)

// ParseCostType normalizes a cost type string from the upstream API.
// The web UI historically sent the German "jährlich" for yearly costs,
// so that alias is still accepted.
func ParseCostType(s string) CostType {
	switch s {
	case "fix":
		return CostTypeFixed
	case "yearly", "jährlich":
		return CostTypeYearly
	case "variable":
		return CostTypeVariable
	}

	return CostType(s)
}

// Valid reports whether the cost type is one of the known buckets.
func (t CostType) Valid() bool {
	switch t {
	case CostTypeFixed, CostTypeYearly, CostTypeVariable:
		return true
	}

	return false
}
