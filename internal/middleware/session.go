package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/mealfinder/backend/internal/logging"
)

const (
	// SessionCookie names the cookie carrying the presentation session id.
	SessionCookie = "mealfinder_session"
	sessionKey    = "session_id"
)

// Session assigns every client a session id, reusing the one in the
// cookie when it is a valid UUID.
func Session(ttl time.Duration, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(SessionCookie)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, id, int(ttl.Seconds()), "/", "", secure, true)
		c.Set(sessionKey, id)
		c.Request = c.Request.WithContext(logging.WithSessionID(c.Request.Context(), id))

		c.Next()
	}
}

// SessionID returns the id assigned by Session, or "" outside it.
func SessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}
