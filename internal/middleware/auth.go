package middleware

import (
	"context"
	"strings"

	"football_assistance_backend/internal/service"
	"football_assistance_backend/internal/util"
	"football_assistance_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Authenticator resolves a bearer token into the session it was issued for.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*util.Session, error)
}

var _ Authenticator = (*service.AuthService)(nil)

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return c.Query("token")
}

func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		session, err := auth.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			logger.Log.Debug("Rejected token", zap.Error(err))
			util.Unauthorized(c)
			c.Abort()
			return
		}

		util.SetSession(c, session)
		c.Next()
	}
}
