package middleware

import (
	"net/http"

	"lifeplan/internal/session"

	"github.com/gin-gonic/gin"
)

const SessionCookie = "lifeplan_session"

// Session makes sure every request carries a session id, issuing a cookie
// when the browser has none (or a malformed one).
func Session(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(SessionCookie)
		if err != nil || !session.ValidID(id) {
			id = session.NewID()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookie, id, 0, "/", "", secure, true)
		}

		c.Set("sessionID", id)
		c.Next()
	}
}

// SessionID returns the id set by Session.
func SessionID(c *gin.Context) string {
	return c.GetString("sessionID")
}
