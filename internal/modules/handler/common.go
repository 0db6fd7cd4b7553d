package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/subtrackhq/subtrack/internal/modules/model"
	"github.com/subtrackhq/subtrack/internal/modules/serializer"
)

// actor returns the authenticated user placed in the context by the auth
// middleware, aborting with 401 when absent.
func actor(c *gin.Context) (*model.User, bool) {
	v, exists := c.Get("user")
	if !exists {
		c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
		return nil, false
	}
	u, ok := v.(*model.User)
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, serializer.ParamErr("", errors.New("user not found")))
		return nil, false
	}
	return u, true
}

func abortAppErr(c *gin.Context, err error) {
	status, res := serializer.AppErr(err)
	c.JSON(status, res)
}
