package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	// SenderIDContextKey is a gin context key for the authorized sender.
	SenderIDContextKey = "senderID"
	// SenderIDHeader carries the chat user identifier set by the gateway.
	SenderIDHeader = "X-Sender-ID"
)

// Authorizer answers whether a chat user passed the PIN gate.
type Authorizer interface {
	IsAuthorized(ctx context.Context, userID int64) (bool, error)
}

// AuthRequired rejects requests whose sender has not unlocked the bot with
// the PIN.
func AuthRequired(auth Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		senderID, err := strconv.ParseInt(c.GetHeader(SenderIDHeader), 10, 64)
		if err != nil || senderID == 0 {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		authorized, err := auth.IsAuthorized(c.Request.Context(), senderID)
		if err != nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		if !authorized {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Set(SenderIDContextKey, senderID)
		c.Next()
	}
}
