package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/solidus85/evvie-time-tracker/pkg/jwt"
	"github.com/solidus85/evvie-time-tracker/pkg/redis"
	"github.com/solidus85/evvie-time-tracker/pkg/response"
)

// Context keys set by JWTAuth.
const (
	UserIDKey       = "user_id"
	TokenIDKey      = "token_id"
	TokenExpiresKey = "token_expires_at"
)

// JWTAuth validates the access token from Authorization: Bearer <token> and
// rejects revoked tokens when a redis client is present.
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "malformed authorization header")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "token is invalid or expired")
			c.Abort()
			return
		}

		if claims.TokenType != "access" {
			response.Unauthorized(c, 10002, "wrong token type")
			c.Abort()
			return
		}

		if rdb != nil {
			revoked, err := rdb.IsTokenBlacklisted(c.Request.Context(), claims.ID)
			if err == nil && revoked {
				response.Unauthorized(c, 10002, "token has been revoked")
				c.Abort()
				return
			}
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(TokenIDKey, claims.ID)
		if claims.ExpiresAt != nil {
			c.Set(TokenExpiresKey, claims.ExpiresAt.Time)
		}

		c.Next()
	}
}
