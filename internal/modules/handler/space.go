package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/subtrackhq/subtrack/internal/modules/model"
	"github.com/subtrackhq/subtrack/internal/modules/serializer"
	"github.com/subtrackhq/subtrack/internal/modules/service"
)

type SpaceHandler struct {
	svc    service.SpaceService
	export service.ExportService
}

func NewSpaceHandler(s service.SpaceService, export service.ExportService) *SpaceHandler {
	return &SpaceHandler{svc: s, export: export}
}

type CreateSpaceReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ListSpaces godoc
//
//	@Summary		List spaces
//	@Description	List every space the current user is an accepted member of, with role and member count
//	@Tags			space
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]repo.SpaceSummary}
//	@Router			/spaces [get]
func (h *SpaceHandler) ListSpaces(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}

	out, err := h.svc.ListAccessible(c.Request.Context(), user.ID)
	if err != nil {
		abortAppErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

// CreateSpace godoc
//
//	@Summary		Create space
//	@Description	Create a space; the creator becomes its permanent admin owner
//	@Tags			space
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.CreateSpaceReq	true	"CreateSpace payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.Space}
//	@Router			/spaces [post]
func (h *SpaceHandler) CreateSpace(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}

	req := CreateSpaceReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	space, err := h.svc.CreateSpace(c.Request.Context(), user.ID, req.Name, req.Description)
	if err != nil {
		abortAppErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Data: space})
}

// DeleteSpace godoc
//
//	@Summary		Delete space
//	@Description	Delete a space and all its memberships; owner only
//	@Tags			space
//	@Produce		json
//	@Param			space_id	path	string	true	"Space ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/spaces/{space_id} [delete]
func (h *SpaceHandler) DeleteSpace(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}
	spaceID, err := uuid.Parse(c.Param("space_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	if err := h.svc.DeleteSpace(c.Request.Context(), user.ID, spaceID); err != nil {
		abortAppErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{})
}

type AddMemberReq struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// AddMember godoc
//
//	@Summary		Add member
//	@Description	Add a user to a space with a pending membership; admin only
//	@Tags			space
//	@Accept			json
//	@Produce		json
//	@Param			space_id	path	string					true	"Space ID"	Format(uuid)
//	@Param			payload		body	handler.AddMemberReq	true	"AddMember payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response
//	@Router			/spaces/{space_id}/members [post]
func (h *SpaceHandler) AddMember(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}
	spaceID, err := uuid.Parse(c.Param("space_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	req := AddMemberReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	memberID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	if err := h.svc.AddMember(c.Request.Context(), user.ID, spaceID, memberID, model.Role(req.Role)); err != nil {
		abortAppErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{})
}

type ReinviteReq struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// Reinvite godoc
//
//	@Summary		Re-invite member
//	@Description	Reopen a declined membership into pending with a fresh role; admin only
//	@Tags			space
//	@Accept			json
//	@Produce		json
//	@Param			space_id	path	string				true	"Space ID"	Format(uuid)
//	@Param			payload		body	handler.ReinviteReq	true	"Reinvite payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/spaces/{space_id}/reinvite [post]
func (h *SpaceHandler) Reinvite(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}
	spaceID, err := uuid.Parse(c.Param("space_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	req := ReinviteReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	memberID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	if err := h.svc.Reinvite(c.Request.Context(), user.ID, spaceID, memberID, model.Role(req.Role)); err != nil {
		abortAppErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{})
}

type UpdateRoleReq struct {
	Role string `json:"role"`
}

// UpdateRole godoc
//
//	@Summary		Update member role
//	@Description	Change a member's role; admin only, owner's role is immutable
//	@Tags			space
//	@Accept			json
//	@Produce		json
//	@Param			space_id	path	string					true	"Space ID"	Format(uuid)
//	@Param			user_id		path	string					true	"User ID"	Format(uuid)
//	@Param			payload		body	handler.UpdateRoleReq	true	"UpdateRole payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/spaces/{space_id}/members/{user_id} [put]
func (h *SpaceHandler) UpdateRole(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}
	spaceID, err := uuid.Parse(c.Param("space_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	memberID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	req := UpdateRoleReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	if err := h.svc.UpdateRole(c.Request.Context(), user.ID, spaceID, memberID, model.Role(req.Role)); err != nil {
		abortAppErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{})
}

// RemoveMember godoc
//
//	@Summary		Remove member
//	@Description	Remove a member from a space; admin only, the owner can never be removed
//	@Tags			space
//	@Produce		json
//	@Param			space_id	path	string	true	"Space ID"	Format(uuid)
//	@Param			user_id		path	string	true	"User ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/spaces/{space_id}/members/{user_id} [delete]
func (h *SpaceHandler) RemoveMember(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}
	spaceID, err := uuid.Parse(c.Param("space_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	memberID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	if err := h.svc.RemoveMember(c.Request.Context(), user.ID, spaceID, memberID); err != nil {
		abortAppErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{})
}

type ExportResp struct {
	URL string `json:"url"`
}

// ExportReport godoc
//
//	@Summary		Export spend report
//	@Description	Upload a spending report for the space and return a presigned download URL
//	@Tags			space
//	@Produce		json
//	@Param			space_id	path	string	true	"Space ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=handler.ExportResp}
//	@Router			/spaces/{space_id}/export [get]
func (h *SpaceHandler) ExportReport(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}
	spaceID, err := uuid.Parse(c.Param("space_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	url, err := h.export.ExportSpaceReport(c.Request.Context(), user.ID, spaceID)
	if err != nil {
		abortAppErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: ExportResp{URL: url}})
}
