package middleware

import (
	"net/http"

	"schoolpay/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SchoolContext resolves the tenant and acting staff account from trusted
// gateway headers and stores them in the gin context. Requests without a
// valid school id are rejected before reaching any handler.
func SchoolContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		schoolID := c.GetHeader("X-School-ID")
		if _, err := uuid.Parse(schoolID); err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "missing or malformed X-School-ID header", nil)
			c.Abort()
			return
		}
		c.Set("school_id", schoolID)

		if actorID := c.GetHeader("X-Actor-ID"); actorID != "" {
			c.Set("actor_id", actorID)
		}

		c.Next()
	}
}
