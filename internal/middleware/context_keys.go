package middleware

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
)

const userIDKey = contextKey("userID")

// setUser records the acting user on the request context and adds it to the
// request logger.
func setUser(c *gin.Context, userID string) {
	ctx := context.WithValue(c.Request.Context(), userIDKey, userID)
	ctx = WithLogger(ctx, GetLoggerFromCtx(ctx).With(slog.String("user_id", userID)))
	c.Request = c.Request.WithContext(ctx)
}

// GetUserIDFromContext retrieves the acting user ID from the request context.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}
