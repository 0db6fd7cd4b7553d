package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/subtrackhq/subtrack/internal/modules/model"
	"github.com/subtrackhq/subtrack/internal/modules/serializer"
	"github.com/subtrackhq/subtrack/internal/modules/service"
)

type InvitationHandler struct {
	svc service.InvitationService
}

func NewInvitationHandler(s service.InvitationService) *InvitationHandler {
	return &InvitationHandler{svc: s}
}

type CreateInvitationReq struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// CreateInvitation godoc
//
//	@Summary		Create invitation
//	@Description	Issue a tokenized invitation to an email address; admin only
//	@Tags			invitation
//	@Accept			json
//	@Produce		json
//	@Param			space_id	path	string						true	"Space ID"	Format(uuid)
//	@Param			payload		body	handler.CreateInvitationReq	true	"CreateInvitation payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.Invitation}
//	@Router			/spaces/{space_id}/invitations [post]
func (h *InvitationHandler) CreateInvitation(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}
	spaceID, err := uuid.Parse(c.Param("space_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	req := CreateInvitationReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	inv, err := h.svc.Create(c.Request.Context(), user.ID, spaceID, req.Email, model.Role(req.Role))
	if err != nil {
		abortAppErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Data: inv})
}

// ListPending godoc
//
//	@Summary		List pending invitations
//	@Description	List pending, non-expired invitations addressed to the current user
//	@Tags			invitation
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Invitation}
//	@Router			/invitations [get]
func (h *InvitationHandler) ListPending(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}

	out, err := h.svc.ListPending(c.Request.Context(), user.ID)
	if err != nil {
		abortAppErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

type RespondInvitationReq struct {
	Token string `json:"token"`
}

// Accept godoc
//
//	@Summary		Accept invitation
//	@Description	Accept a pending invitation by token, creating or refreshing the membership
//	@Tags			invitation
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.RespondInvitationReq	true	"Accept payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Invitation}
//	@Router			/invitations/accept [post]
func (h *InvitationHandler) Accept(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}

	req := RespondInvitationReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	inv, err := h.svc.AcceptByToken(c.Request.Context(), user.ID, req.Token)
	if err != nil {
		abortAppErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: inv})
}

// Decline godoc
//
//	@Summary		Decline invitation
//	@Description	Decline a pending invitation by token; membership state is untouched
//	@Tags			invitation
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.RespondInvitationReq	true	"Decline payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/invitations/decline [post]
func (h *InvitationHandler) Decline(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}

	req := RespondInvitationReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	if err := h.svc.DeclineByToken(c.Request.Context(), user.ID, req.Token); err != nil {
		abortAppErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{})
}
