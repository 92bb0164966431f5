package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/haintran/portfolio-api/pkg/apperror"
	"github.com/haintran/portfolio-api/pkg/auth"
	"github.com/haintran/portfolio-api/pkg/logger"
)

const (
	GinContextKeyOwnerID = "ownerID"
)

// AuthMiddleware resolves the session credential from the __session cookie
// (Authorization: Bearer as a fallback for non-browser clients) and fails
// closed: any missing, malformed, or expired credential aborts with 401
// before anything touches the store.
func AuthMiddleware(sessionSvc *auth.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {

		credential, err := c.Cookie(auth.SessionCookieName)
		if err != nil || credential == "" {
			authHeader := c.GetHeader("Authorization")
			token := strings.TrimPrefix(authHeader, "Bearer ")
			if authHeader == "" || token == authHeader {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
				return
			}
			credential = token
		}

		ownerID, err := sessionSvc.ResolveCredential(credential)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		c.Set(GinContextKeyOwnerID, ownerID)

		c.Next()
	}
}

// ErrorMiddleware renders the last error pushed onto the gin context as a
// structured error payload.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		status := apperror.ToHTTPStatus(err)

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if status >= http.StatusInternalServerError {
				log.Error("request failed", err, zap.String("path", c.Request.URL.Path))
			}
			c.JSON(status, appErr.ToJSON())
			return
		}

		log.Error("unhandled request error", err, zap.String("path", c.Request.URL.Path))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func GetOwnerIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	ownerID, ok := ctx.Value(GinContextKeyOwnerID).(uuid.UUID)
	return ownerID, ok
}

func GetOwnerIDFromGinContext(c *gin.Context) (uuid.UUID, bool) {
	ownerID, ok := c.Get(GinContextKeyOwnerID)
	if !ok {
		return uuid.Nil, false
	}
	ownerIDUUID, ok := ownerID.(uuid.UUID)
	if !ok {
		return uuid.Nil, false
	}
	return ownerIDUUID, true
}
