package session

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// CookieName carries the browser session id.
	CookieName = "session_id"
	contextKey = "session_id"
)

// Middleware makes sure every request has a session id, issuing a cookie when missing.
func Middleware(maxAgeSeconds int) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(CookieName)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(CookieName, id, maxAgeSeconds, "/", "", false, true)
		}
		c.Set(contextKey, id)
		c.Next()
	}
}

// ID returns the session id set by Middleware.
func ID(c *gin.Context) string {
	return c.GetString(contextKey)
}
