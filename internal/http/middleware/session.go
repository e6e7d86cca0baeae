// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file resolves session identity. Clients present the opaque token
// minted at login in the X-Session-Token header; SessionResolver turns it
// into a username stored in the Gin context, and RequireSession gates
// endpoints that must not be served anonymously.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HeaderSessionToken is the HTTP header carrying the opaque session token.
const HeaderSessionToken = "X-Session-Token"

// sessionUserKey is the Gin context key holding the resolved username.
const sessionUserKey = "sessionUser"

// SessionLookup resolves a session token to a username. It reports
// ("", false) for unknown tokens. Satisfied by services.SessionStore.
type SessionLookup interface {
	Current(token string) (string, bool)
}

// SessionResolver returns middleware that resolves X-Session-Token into a
// username. Resolution is best-effort: requests without a token, or with an
// unknown one, pass through anonymously. The resolved username is stored
// under both "sessionUser" and "userID" so logging and rate limiting key on
// the authenticated identity when one exists.
//
// Place this before Logger() so access logs carry the user.
func SessionResolver(store SessionLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := c.GetHeader(HeaderSessionToken); token != "" {
			if username, ok := store.Current(token); ok {
				c.Set(sessionUserKey, username)
				c.Set("userID", username)
			}
		}
		c.Next()
	}
}

// RequireSession aborts with a 401 envelope when no session identity was
// resolved for the request. Mount it on route groups that need a logged-in
// user (reports, /auth/me).
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := SessionUser(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"request_id": c.Writer.Header().Get(requestIDHeader),
				"code":       "unauthorized",
				"message":    "valid session token required",
			})
			return
		}
		c.Next()
	}
}

// SessionUser returns the username resolved by SessionResolver and whether
// one is present.
func SessionUser(c *gin.Context) (string, bool) {
	v, ok := c.Get(sessionUserKey)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok && s != ""
}
