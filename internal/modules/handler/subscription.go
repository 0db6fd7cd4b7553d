package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/subtrackhq/subtrack/internal/modules/repo"
	"github.com/subtrackhq/subtrack/internal/modules/serializer"
	"github.com/subtrackhq/subtrack/internal/modules/service"
	"github.com/subtrackhq/subtrack/internal/pkg/billing"
)

type SubscriptionHandler struct {
	svc      service.SubscriptionService
	insights service.InsightService
}

func NewSubscriptionHandler(s service.SubscriptionService, insights service.InsightService) *SubscriptionHandler {
	return &SubscriptionHandler{svc: s, insights: insights}
}

type CreateSubscriptionReq struct {
	SpaceID      *string         `json:"space_id"`
	ServiceName  string          `json:"service_name"`
	Cost         decimal.Decimal `json:"cost"`
	Currency     string          `json:"currency"`
	BillingCycle string          `json:"billing_cycle"`
	Category     string          `json:"category"`
	StartDate    time.Time       `json:"start_date"`
	EndDate      *time.Time      `json:"end_date"`
}

// CreateSubscription godoc
//
//	@Summary		Create subscription
//	@Description	Record a recurring subscription, personal or inside a space (editor+)
//	@Tags			subscription
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.CreateSubscriptionReq	true	"CreateSubscription payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.Subscription}
//	@Router			/subscriptions [post]
func (h *SubscriptionHandler) CreateSubscription(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}

	req := CreateSubscriptionReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	in := service.CreateSubscriptionInput{
		ServiceName:  req.ServiceName,
		Cost:         req.Cost,
		Currency:     req.Currency,
		BillingCycle: billing.Cycle(req.BillingCycle),
		Category:     req.Category,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
	}
	if req.SpaceID != nil {
		spaceID, err := uuid.Parse(*req.SpaceID)
		if err != nil {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
			return
		}
		in.SpaceID = &spaceID
	}

	sub, err := h.svc.Create(c.Request.Context(), user.ID, in)
	if err != nil {
		abortAppErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Data: sub})
}

type EndSubscriptionReq struct {
	EndDate *time.Time `json:"end_date"`
	Reason  *string    `json:"reason"`
}

// EndSubscription godoc
//
//	@Summary		End subscription
//	@Description	Close a subscription; repeating the call refreshes the date and reason
//	@Tags			subscription
//	@Accept			json
//	@Produce		json
//	@Param			id		path	string						true	"Subscription ID"	Format(uuid)
//	@Param			payload	body	handler.EndSubscriptionReq	false	"End payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/subscriptions/{id}/end [post]
func (h *SubscriptionHandler) EndSubscription(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	req := EndSubscriptionReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	if err := h.svc.End(c.Request.Context(), user.ID, id, req.EndDate, req.Reason); err != nil {
		abortAppErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{})
}

type ReactivateSubscriptionReq struct {
	StartDate *time.Time `json:"start_date"`
}

// ReactivateSubscription godoc
//
//	@Summary		Reactivate subscription
//	@Description	Reopen an ended subscription; the start date is reset to the reactivation date
//	@Tags			subscription
//	@Accept			json
//	@Produce		json
//	@Param			id		path	string								true	"Subscription ID"	Format(uuid)
//	@Param			payload	body	handler.ReactivateSubscriptionReq	false	"Reactivate payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/subscriptions/{id}/reactivate [post]
func (h *SubscriptionHandler) ReactivateSubscription(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	req := ReactivateSubscriptionReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	if err := h.svc.Reactivate(c.Request.Context(), user.ID, id, req.StartDate); err != nil {
		abortAppErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{})
}

// DeleteSubscription godoc
//
//	@Summary		Delete subscription
//	@Description	Delete a subscription; creator for personal rows, admin for space rows
//	@Tags			subscription
//	@Produce		json
//	@Param			id	path	string	true	"Subscription ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/subscriptions/{id} [delete]
func (h *SubscriptionHandler) DeleteSubscription(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	if err := h.svc.Delete(c.Request.Context(), user.ID, id); err != nil {
		abortAppErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{})
}

type SyncSubscriptionReq struct {
	SpaceID string `json:"space_id"`
}

// SyncSubscription godoc
//
//	@Summary		Sync subscription into space
//	@Description	Link a personal subscription to a space; a subscription joins at most one space, ever
//	@Tags			subscription
//	@Accept			json
//	@Produce		json
//	@Param			id		path	string						true	"Subscription ID"	Format(uuid)
//	@Param			payload	body	handler.SyncSubscriptionReq	true	"Sync payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/subscriptions/{id}/sync [post]
func (h *SubscriptionHandler) SyncSubscription(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	req := SyncSubscriptionReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	spaceID, err := uuid.Parse(req.SpaceID)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	if err := h.svc.SyncToSpace(c.Request.Context(), user.ID, id, spaceID); err != nil {
		abortAppErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{})
}

// SummaryResp carries display-rounded totals; internal sums stay exact.
type SummaryResp struct {
	Count       int    `json:"count"`
	MonthlyCost string `json:"monthly_cost"`
	AnnualCost  string `json:"annual_cost"`
}

// GetSummary godoc
//
//	@Summary		Spend summary
//	@Description	Aggregate monthly and annual spend over active subscriptions, personal or for a space (viewer+)
//	@Tags			subscription
//	@Produce		json
//	@Param			space_id	query	string	false	"Space ID; omit for the personal scope"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=handler.SummaryResp}
//	@Router			/subscriptions/summary [get]
func (h *SubscriptionHandler) GetSummary(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}
	scope, ok := h.scopeFromQuery(c, user.ID)
	if !ok {
		return
	}

	sum, err := h.svc.Aggregate(c.Request.Context(), user.ID, scope)
	if err != nil {
		abortAppErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: SummaryResp{
		Count:       sum.Count,
		MonthlyCost: sum.MonthlyCost.StringFixed(2),
		AnnualCost:  sum.AnnualCost.StringFixed(2),
	}})
}

// GetByCategory godoc
//
//	@Summary		Spend by category
//	@Description	Monthly spend per category over active subscriptions; uncategorized rows bucket as "Other"
//	@Tags			subscription
//	@Produce		json
//	@Param			space_id	query	string	false	"Space ID; omit for the personal scope"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=map[string]string}
//	@Router			/subscriptions/by-category [get]
func (h *SubscriptionHandler) GetByCategory(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}
	scope, ok := h.scopeFromQuery(c, user.ID)
	if !ok {
		return
	}

	totals, err := h.svc.AggregateByCategory(c.Request.Context(), user.ID, scope)
	if err != nil {
		abortAppErr(c, err)
		return
	}

	out := map[string]string{}
	for cat, amount := range totals {
		out[cat] = amount.StringFixed(2)
	}
	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

type RenameCategoryReq struct {
	OldName string `json:"old_name"`
	NewName string `json:"new_name"`
}

type RenameCategoryResp struct {
	Changed bool `json:"changed"`
}

// RenameCategory godoc
//
//	@Summary		Rename category
//	@Description	Rename a category across every subscription the current user created; exact, case-sensitive match
//	@Tags			subscription
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.RenameCategoryReq	true	"RenameCategory payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=handler.RenameCategoryResp}
//	@Router			/subscriptions/category [put]
func (h *SubscriptionHandler) RenameCategory(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}

	req := RenameCategoryReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	changed, err := h.svc.RenameCategory(c.Request.Context(), user.ID, req.OldName, req.NewName)
	if err != nil {
		abortAppErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: RenameCategoryResp{Changed: changed}})
}

// GetInsights godoc
//
//	@Summary		Spending insights
//	@Description	Rule-based suggestions computed on demand from the user's active personal subscriptions
//	@Tags			insight
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]service.Insight}
//	@Router			/insights [get]
func (h *SubscriptionHandler) GetInsights(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}

	out, err := h.insights.Generate(c.Request.Context(), user.ID)
	if err != nil {
		abortAppErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

func (h *SubscriptionHandler) scopeFromQuery(c *gin.Context, userID uuid.UUID) (repo.Scope, bool) {
	if raw := c.Query("space_id"); raw != "" {
		spaceID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
			return repo.Scope{}, false
		}
		return repo.SpaceScope(spaceID), true
	}
	return repo.PersonalScope(userID), true
}
