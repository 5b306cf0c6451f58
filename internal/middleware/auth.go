// Package middleware provides authentication and authorization middleware for the Gin web framework.
package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"bandly/internal/api"
	"bandly/internal/session"
	contextutils "bandly/internal/utils"
)

// Context keys for values resolved by the middleware.
const (
	// TokenKey is the gin context key holding the bearer token.
	TokenKey = "bearer_token"
	// ProfileKey is the gin context key holding the resolved *api.Profile.
	ProfileKey = "profile"
)

// ProfileFetcher resolves the account behind a bearer token. The role
// check itself happens server-side; this only reads the claim back.
type ProfileFetcher interface {
	GetProfile(ctx context.Context, token string) (*api.Profile, error)
}

// RequireAuth returns a middleware that requires a bearer token in the
// visitor's session. Browser requests are redirected to the login page;
// the token is stashed in the gin context for handlers.
func RequireAuth(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := sessions.Token(c)
		if !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set(TokenKey, token)
		c.Next()
	}
}

// RequireAdmin returns a middleware that requires an authenticated
// session whose profile carries the admin role. An upstream 401 or 403
// drops the session and redirects: a stale or demoted token must not
// keep the back-office reachable.
func RequireAdmin(sessions *session.Manager, profiles ProfileFetcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := sessions.Token(c)
		if !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		profile, err := profiles.GetProfile(c.Request.Context(), token)
		if err != nil {
			if contextutils.IsError(err, contextutils.ErrUnauthorized) || contextutils.IsError(err, contextutils.ErrForbidden) {
				sessions.Clear(c)
				c.Redirect(http.StatusFound, "/login")
				c.Abort()
				return
			}
			_ = c.Error(err)
			c.String(http.StatusBadGateway, "Service temporarily unavailable")
			c.Abort()
			return
		}

		if !profile.IsAdmin() {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}

		c.Set(TokenKey, token)
		c.Set(ProfileKey, profile)
		c.Next()
	}
}

// TokenFromContext returns the bearer token stashed by RequireAuth or
// RequireAdmin.
func TokenFromContext(c *gin.Context) (string, bool) {
	raw, ok := c.Get(TokenKey)
	if !ok {
		return "", false
	}
	token, ok := raw.(string)
	return token, ok && token != ""
}

// ProfileFromContext returns the profile stashed by RequireAdmin.
func ProfileFromContext(c *gin.Context) (*api.Profile, bool) {
	raw, ok := c.Get(ProfileKey)
	if !ok {
		return nil, false
	}
	profile, ok := raw.(*api.Profile)
	return profile, ok
}
