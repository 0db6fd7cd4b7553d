package billing

import "github.com/shopspring/decimal"

// Cycle is the recurrence period of a subscription's cost.
type Cycle string

const (
	CycleMonthly Cycle = "monthly"
	CycleYearly  Cycle = "yearly"
	CycleWeekly  Cycle = "weekly"
)

func (c Cycle) Valid() bool {
	switch c {
	case CycleMonthly, CycleYearly, CycleWeekly:
		return true
	}
	return false
}

var (
	twelve   = decimal.NewFromInt(12)
	fiftyTwo = decimal.NewFromInt(52)
)

// MonthlyEquivalent normalizes cost to a per-month figure.
// Callers validate cost > 0 before reaching here.
func MonthlyEquivalent(cost decimal.Decimal, cycle Cycle) decimal.Decimal {
	switch cycle {
	case CycleYearly:
		return cost.Div(twelve)
	case CycleWeekly:
		return cost.Mul(fiftyTwo).Div(twelve)
	default:
		return cost
	}
}

// AnnualEquivalent normalizes cost to a per-year figure.
func AnnualEquivalent(cost decimal.Decimal, cycle Cycle) decimal.Decimal {
	switch cycle {
	case CycleMonthly:
		return cost.Mul(twelve)
	case CycleWeekly:
		return cost.Mul(fiftyTwo)
	default:
		return cost
	}
}
