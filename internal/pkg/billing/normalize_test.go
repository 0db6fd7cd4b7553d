package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMonthlyEquivalent(t *testing.T) {
	tests := []struct {
		name  string
		cost  string
		cycle Cycle
		want  string
	}{
		{name: "monthly passes through", cost: "9.99", cycle: CycleMonthly, want: "9.99"},
		{name: "yearly divided by twelve", cost: "12", cycle: CycleYearly, want: "1"},
		{name: "weekly scaled by 52/12", cost: "3", cycle: CycleWeekly, want: "13"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MonthlyEquivalent(decimal.RequireFromString(tt.cost), tt.cycle)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestAnnualEquivalent(t *testing.T) {
	tests := []struct {
		name  string
		cost  string
		cycle Cycle
		want  string
	}{
		{name: "yearly passes through", cost: "120", cycle: CycleYearly, want: "120"},
		{name: "monthly times twelve", cost: "10", cycle: CycleMonthly, want: "120"},
		{name: "weekly times 52", cost: "2", cycle: CycleWeekly, want: "104"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnnualEquivalent(decimal.RequireFromString(tt.cost), tt.cycle)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

// The annual figure must always be exactly twelve months, whatever the cycle.
func TestAnnualIsTwelveMonths(t *testing.T) {
	costs := []string{"0.01", "9.99", "12", "149.50", "1000"}
	cycles := []Cycle{CycleMonthly, CycleYearly, CycleWeekly}

	for _, c := range costs {
		cost := decimal.RequireFromString(c)
		for _, cycle := range cycles {
			annual := AnnualEquivalent(cost, cycle)
			monthly := MonthlyEquivalent(cost, cycle)
			diff := annual.Sub(monthly.Mul(decimal.NewFromInt(12))).Abs()
			assert.True(t, diff.LessThan(decimal.RequireFromString("0.0001")),
				"cost=%s cycle=%s annual=%s monthly=%s", c, cycle, annual, monthly)
		}
	}
}

func TestCycleValid(t *testing.T) {
	assert.True(t, CycleMonthly.Valid())
	assert.True(t, CycleYearly.Valid())
	assert.True(t, CycleWeekly.Valid())
	assert.False(t, Cycle("daily").Valid())
	assert.False(t, Cycle("").Valid())
}
