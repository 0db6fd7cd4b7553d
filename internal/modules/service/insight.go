package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/subtrackhq/subtrack/internal/modules/repo"
	"github.com/subtrackhq/subtrack/internal/pkg/billing"
)

// Insight is a rule-based spending suggestion. Insights are computed on
// demand from current aggregates; nothing runs in the background.
type Insight struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	Category string `json:"category,omitempty"`
}

type InsightService interface {
	Generate(ctx context.Context, userID uuid.UUID) ([]Insight, error)
}

type insightService struct {
	subs repo.SubscriptionRepo
}

func NewInsightService(subs repo.SubscriptionRepo) InsightService {
	return &insightService{subs: subs}
}

var (
	annualSwitchFloor  = decimal.NewFromInt(10)
	concentrationRatio = decimal.RequireFromString("0.5")
)

func (s *insightService) Generate(ctx context.Context, userID uuid.UUID) ([]Insight, error) {
	now := time.Now()
	subs, err := s.subs.ListActive(ctx, repo.PersonalScope(userID), now)
	if err != nil {
		return nil, storageErr(err)
	}

	insights := []Insight{}
	total := decimal.Zero
	byCategory := map[string]decimal.Decimal{}
	countByCategory := map[string]int{}

	for i := range subs {
		sub := &subs[i]
		if !sub.CountsAsActive(now) {
			continue
		}
		monthly := billing.MonthlyEquivalent(sub.Cost, sub.BillingCycle)
		total = total.Add(monthly)
		cat := sub.CategoryOrOther()
		byCategory[cat] = byCategory[cat].Add(monthly)
		countByCategory[cat]++

		if sub.BillingCycle == billing.CycleMonthly && monthly.GreaterThanOrEqual(annualSwitchFloor) {
			insights = append(insights, Insight{
				Type: "annual_switch",
				Message: fmt.Sprintf("%s costs %s %s/month; annual plans for services in this price range often come at a discount",
					sub.ServiceName, monthly.StringFixed(2), sub.Currency),
				Category: cat,
			})
		}
	}

	for cat, n := range countByCategory {
		if n >= 3 {
			insights = append(insights, Insight{
				Type: "category_cluster",
				Message: fmt.Sprintf("you have %d active subscriptions in %s; check for overlapping services",
					n, cat),
				Category: cat,
			})
		}
	}

	if total.IsPositive() {
		for cat, amount := range byCategory {
			if countByCategory[cat] > 1 && amount.Div(total).GreaterThan(concentrationRatio) {
				insights = append(insights, Insight{
					Type: "category_concentration",
					Message: fmt.Sprintf("%s accounts for more than half of your monthly spend (%s of %s)",
						cat, amount.StringFixed(2), total.StringFixed(2)),
					Category: cat,
				})
			}
		}
	}

	return insights, nil
}
