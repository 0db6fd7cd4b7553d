package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/subtrackhq/subtrack/internal/modules/model"
	"github.com/subtrackhq/subtrack/internal/modules/repo"
	"github.com/subtrackhq/subtrack/internal/pkg/apperr"
	"github.com/subtrackhq/subtrack/internal/pkg/billing"
)

type CreateSubscriptionInput struct {
	SpaceID      *uuid.UUID
	ServiceName  string
	Cost         decimal.Decimal
	Currency     string
	BillingCycle billing.Cycle
	Category     string
	StartDate    time.Time
	EndDate      *time.Time
}

// Summary aggregates active-subscription spend over a scope. Sums are exact
// decimals; rounding happens only at presentation time.
type Summary struct {
	Count       int             `json:"count"`
	MonthlyCost decimal.Decimal `json:"monthly_cost"`
	AnnualCost  decimal.Decimal `json:"annual_cost"`
}

type SubscriptionService interface {
	Create(ctx context.Context, actorID uuid.UUID, in CreateSubscriptionInput) (*model.Subscription, error)

	// End closes the subscription; repeated calls simply refresh the date
	// and reason.
	End(ctx context.Context, actorID, id uuid.UUID, endDate *time.Time, reason *string) error
	// Reactivate reopens an ended subscription. The start date is overwritten
	// with the reactivation date, discarding the original signup date.
	Reactivate(ctx context.Context, actorID, id uuid.UUID, newStart *time.Time) error
	Delete(ctx context.Context, actorID, id uuid.UUID) error

	// SyncToSpace links a personal subscription to a space. A subscription
	// joins at most one space, ever; an existing link is never overwritten.
	SyncToSpace(ctx context.Context, actorID, subID, spaceID uuid.UUID) error

	Aggregate(ctx context.Context, actorID uuid.UUID, scope repo.Scope) (*Summary, error)
	AggregateByCategory(ctx context.Context, actorID uuid.UUID, scope repo.Scope) (map[string]decimal.Decimal, error)
	RenameCategory(ctx context.Context, actorID uuid.UUID, oldName, newName string) (bool, error)
}

type subscriptionService struct {
	r      repo.SubscriptionRepo
	spaces repo.SpaceRepo
	cache  SummaryCache
	audit  AuditService
	log    *zap.Logger
}

func NewSubscriptionService(r repo.SubscriptionRepo, spaces repo.SpaceRepo, cache SummaryCache, audit AuditService, log *zap.Logger) SubscriptionService {
	return &subscriptionService{r: r, spaces: spaces, cache: cache, audit: audit, log: log}
}

func (s *subscriptionService) Create(ctx context.Context, actorID uuid.UUID, in CreateSubscriptionInput) (*model.Subscription, error) {
	fields := map[string]string{}
	in.ServiceName = strings.TrimSpace(in.ServiceName)
	if in.ServiceName == "" {
		fields["service_name"] = "service name is required"
	}
	if !in.Cost.IsPositive() {
		fields["cost"] = "cost must be greater than zero"
	}
	if !in.BillingCycle.Valid() {
		fields["billing_cycle"] = "billing cycle must be monthly, yearly or weekly"
	}
	if in.StartDate.IsZero() {
		fields["start_date"] = "start date is required"
	}
	if in.EndDate != nil && !in.StartDate.IsZero() && !in.EndDate.After(in.StartDate) {
		fields["end_date"] = "end date must be after start date"
	}
	if err := apperr.Validation(fields); err != nil {
		return nil, err
	}

	if in.SpaceID != nil {
		if err := s.requireSpaceRole(ctx, *in.SpaceID, actorID, model.RoleEditor); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	sub := &model.Subscription{
		UserID:       actorID,
		SpaceID:      in.SpaceID,
		ServiceName:  in.ServiceName,
		Cost:         in.Cost,
		Currency:     in.Currency,
		BillingCycle: in.BillingCycle,
		Category:     in.Category,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		IsActive:     in.EndDate == nil || in.EndDate.After(now),
	}
	if sub.Currency == "" {
		sub.Currency = "USD"
	}
	if err := s.r.Create(ctx, sub); err != nil {
		return nil, storageErr(err)
	}

	s.invalidate(ctx, sub)
	s.audit.Record(ctx, actorID, "subscription.create", "subscription", sub.ID.String(), sub.SpaceID,
		map[string]interface{}{"service_name": sub.ServiceName, "cost": sub.Cost.String()})
	return sub, nil
}

func (s *subscriptionService) End(ctx context.Context, actorID, id uuid.UUID, endDate *time.Time, reason *string) error {
	sub, err := s.requireModifiable(ctx, actorID, id)
	if err != nil {
		return err
	}

	end := time.Now()
	if endDate != nil {
		end = *endDate
	}
	err = s.r.Update(ctx, id, map[string]interface{}{
		"end_date":            end,
		"is_active":           false,
		"cancellation_reason": reason,
	})
	if err != nil {
		return storageErr(err)
	}

	s.invalidate(ctx, sub)
	s.audit.Record(ctx, actorID, "subscription.end", "subscription", id.String(), sub.SpaceID,
		map[string]interface{}{"end_date": end.UTC().Format(time.RFC3339)})
	return nil
}

func (s *subscriptionService) Reactivate(ctx context.Context, actorID, id uuid.UUID, newStart *time.Time) error {
	sub, err := s.requireModifiable(ctx, actorID, id)
	if err != nil {
		return err
	}

	start := time.Now()
	if newStart != nil {
		start = *newStart
	}
	err = s.r.Update(ctx, id, map[string]interface{}{
		"end_date":            nil,
		"cancellation_reason": nil,
		"is_active":           true,
		"start_date":          start,
	})
	if err != nil {
		return storageErr(err)
	}

	s.invalidate(ctx, sub)
	s.audit.Record(ctx, actorID, "subscription.reactivate", "subscription", id.String(), sub.SpaceID,
		map[string]interface{}{"start_date": start.UTC().Format(time.RFC3339)})
	return nil
}

func (s *subscriptionService) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	sub, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if sub.SpaceID == nil {
		if sub.UserID != actorID {
			return apperr.ErrNotFound
		}
	} else if err := s.requireSpaceRole(ctx, *sub.SpaceID, actorID, model.RoleAdmin); err != nil {
		return err
	}

	if err := s.r.Delete(ctx, id); err != nil {
		return storageErr(err)
	}

	s.invalidate(ctx, sub)
	s.audit.Record(ctx, actorID, "subscription.delete", "subscription", id.String(), sub.SpaceID, nil)
	return nil
}

func (s *subscriptionService) SyncToSpace(ctx context.Context, actorID, subID, spaceID uuid.UUID) error {
	sub, err := s.get(ctx, subID)
	if err != nil {
		return err
	}
	if sub.UserID != actorID {
		return apperr.ErrNotFound
	}
	if err := s.requireSpaceRole(ctx, spaceID, actorID, model.RoleEditor); err != nil {
		return err
	}

	rows, err := s.r.AssignSpace(ctx, subID, spaceID)
	if err != nil {
		return storageErr(err)
	}
	if rows == 0 {
		return apperr.Validation(map[string]string{
			"space_id": "subscription is already linked to a space",
		})
	}

	s.cache.Invalidate(ctx, personalKey(actorID), spaceKey(spaceID))
	s.audit.Record(ctx, actorID, "subscription.sync", "subscription", subID.String(), &spaceID, nil)
	return nil
}

func (s *subscriptionService) Aggregate(ctx context.Context, actorID uuid.UUID, scope repo.Scope) (*Summary, error) {
	key, err := s.authorizeScope(ctx, actorID, scope)
	if err != nil {
		return nil, err
	}

	if raw, ok := s.cache.Get(ctx, key); ok {
		var cached Summary
		if err := sonic.Unmarshal(raw, &cached); err == nil {
			return &cached, nil
		}
	}

	subs, err := s.r.ListActive(ctx, scope, time.Now())
	if err != nil {
		return nil, storageErr(err)
	}

	now := time.Now()
	sum := &Summary{MonthlyCost: decimal.Zero, AnnualCost: decimal.Zero}
	for i := range subs {
		sub := &subs[i]
		// The repo already filters, but a stale is_active flag must never
		// leak an ended subscription into the totals.
		if !sub.CountsAsActive(now) {
			continue
		}
		sum.Count++
		sum.MonthlyCost = sum.MonthlyCost.Add(billing.MonthlyEquivalent(sub.Cost, sub.BillingCycle))
		sum.AnnualCost = sum.AnnualCost.Add(billing.AnnualEquivalent(sub.Cost, sub.BillingCycle))
	}

	if raw, err := sonic.Marshal(sum); err == nil {
		s.cache.Set(ctx, key, raw)
	}
	return sum, nil
}

func (s *subscriptionService) AggregateByCategory(ctx context.Context, actorID uuid.UUID, scope repo.Scope) (map[string]decimal.Decimal, error) {
	if _, err := s.authorizeScope(ctx, actorID, scope); err != nil {
		return nil, err
	}

	subs, err := s.r.ListActive(ctx, scope, time.Now())
	if err != nil {
		return nil, storageErr(err)
	}

	now := time.Now()
	out := map[string]decimal.Decimal{}
	for i := range subs {
		sub := &subs[i]
		if !sub.CountsAsActive(now) {
			continue
		}
		cat := sub.CategoryOrOther()
		out[cat] = out[cat].Add(billing.MonthlyEquivalent(sub.Cost, sub.BillingCycle))
	}
	return out, nil
}

func (s *subscriptionService) RenameCategory(ctx context.Context, actorID uuid.UUID, oldName, newName string) (bool, error) {
	fields := map[string]string{}
	if oldName == "" {
		fields["old_name"] = "old category name is required"
	}
	if strings.TrimSpace(newName) == "" {
		fields["new_name"] = "new category name is required"
	}
	if err := apperr.Validation(fields); err != nil {
		return false, err
	}

	rows, err := s.r.RenameCategory(ctx, actorID, oldName, newName)
	if err != nil {
		return false, storageErr(err)
	}
	if rows > 0 {
		s.cache.Invalidate(ctx, personalKey(actorID))
		s.audit.Record(ctx, actorID, "subscription.rename_category", "subscription", oldName, nil,
			map[string]interface{}{"new_name": newName, "rows": rows})
	}
	return rows > 0, nil
}

func (s *subscriptionService) get(ctx context.Context, id uuid.UUID) (*model.Subscription, error) {
	sub, err := s.r.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, storageErr(err)
	}
	return sub, nil
}

// requireModifiable loads a subscription and checks write access: the
// creator for personal rows, editor or better for space rows.
func (s *subscriptionService) requireModifiable(ctx context.Context, actorID, id uuid.UUID) (*model.Subscription, error) {
	sub, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.SpaceID == nil {
		if sub.UserID != actorID {
			return nil, apperr.ErrNotFound
		}
		return sub, nil
	}
	if err := s.requireSpaceRole(ctx, *sub.SpaceID, actorID, model.RoleEditor); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *subscriptionService) requireSpaceRole(ctx context.Context, spaceID, actorID uuid.UUID, required model.Role) error {
	m, err := s.spaces.GetMembership(ctx, spaceID, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		return storageErr(err)
	}
	if m.Status != model.MembershipAccepted {
		return apperr.ErrNotFound
	}
	if !m.Role.Allows(required) {
		return apperr.ErrForbidden
	}
	return nil
}

// authorizeScope validates the aggregation scope and returns its cache key.
// Personal scopes are implicitly the actor's own; space scopes need viewer+.
func (s *subscriptionService) authorizeScope(ctx context.Context, actorID uuid.UUID, scope repo.Scope) (string, error) {
	if scope.SpaceID != nil {
		if err := s.requireSpaceRole(ctx, *scope.SpaceID, actorID, model.RoleViewer); err != nil {
			return "", err
		}
		return spaceKey(*scope.SpaceID), nil
	}
	if scope.UserID == nil || *scope.UserID != actorID {
		return "", apperr.ErrNotFound
	}
	return personalKey(actorID), nil
}

func (s *subscriptionService) invalidate(ctx context.Context, sub *model.Subscription) {
	keys := []string{personalKey(sub.UserID)}
	if sub.SpaceID != nil {
		keys = append(keys, spaceKey(*sub.SpaceID))
	}
	s.cache.Invalidate(ctx, keys...)
}

func personalKey(userID uuid.UUID) string { return fmt.Sprintf("summary:user:%s", userID) }
func spaceKey(spaceID uuid.UUID) string   { return fmt.Sprintf("summary:space:%s", spaceID) }
