package middleware

import (
	"Plaza/internal/pkg/consts"
	"Plaza/internal/pkg/redis"
	"Plaza/internal/pkg/response"
	"Plaza/internal/pkg/security"
	"Plaza/internal/service"
	"context"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the bearer token, rejects revoked
// signatures and injects the user identity into the request context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			response.Fail(c, response.Unauthorized, service.UnauthorizedError.Error())
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		signature, err := security.ExtractSignature(tokenString)
		if err != nil {
			response.Fail(c, response.Unauthorized, service.UnauthorizedError.Error())
			c.Abort()
			return
		}

		value, err := redis.GetValue(c.Request.Context(), consts.TokenRevokedKey+signature)
		if err != nil {
			response.Fail(c, response.InternalServerError, service.UnExpectedError.Error())
			c.Abort()
			return
		}
		if value != "" {
			response.Fail(c, response.Unauthorized, service.UnauthorizedError.Error())
			c.Abort()
			return
		}

		claims, err := security.ValidateToken(tokenString)
		if err != nil {
			response.Fail(c, response.Unauthorized, service.UnauthorizedError.Error())
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)

		newCtx := context.WithValue(c.Request.Context(), "user_id", claims.UserID)
		c.Request = c.Request.WithContext(newCtx)

		c.Next()
	}
}
