package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/subtrackhq/subtrack/internal/modules/serializer"
	"github.com/subtrackhq/subtrack/internal/modules/service"
)

type AuthHandler struct {
	svc service.UserService
}

func NewAuthHandler(s service.UserService) *AuthHandler {
	return &AuthHandler{svc: s}
}

type RegisterReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResp struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	// APIKey is shown once at registration and cannot be retrieved later.
	APIKey string `json:"api_key"`
}

// Register godoc
//
//	@Summary		Register user
//	@Description	Create an account and receive the API key used as the bearer credential
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.RegisterReq	true	"Register payload"
//	@Success		201	{object}	serializer.Response{data=handler.RegisterResp}
//	@Router			/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	req := RegisterReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	user, apiKey, err := h.svc.Register(c.Request.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		abortAppErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: RegisterResp{
		ID:       user.ID.String(),
		Username: user.Username,
		Email:    user.Email,
		APIKey:   apiKey,
	}})
}
