package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/subtrackhq/subtrack/internal/config"
	"github.com/subtrackhq/subtrack/internal/modules/model"
	"github.com/subtrackhq/subtrack/internal/modules/serializer"
	"github.com/subtrackhq/subtrack/internal/pkg/utils/tokens"
)

// UserAuth authenticates requests with a user API key. It parses the bearer
// value, looks the user up by key HMAC, and sets the user in the context as
// the resolved actor identity for every downstream service call.
func UserAuth(cfg *config.Config, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}
		raw := strings.TrimPrefix(auth, "Bearer ")

		secret, ok := tokens.ParseToken(raw, cfg.Auth.APIKeyPrefix)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}

		lookup := tokens.HMAC256Hex(cfg.Auth.SecretPepper, secret)

		var user model.User
		if err := db.WithContext(c.Request.Context()).Where(&model.User{APIKeyHMAC: lookup}).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, serializer.DBErr("", err))
			return
		}

		c.Set("user", &user)
		c.Next()
	}
}
