package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/todolist-auth/internal/application"
	"github.com/oksasatya/todolist-auth/pkg/helpers"
)

const (
	principalKey = "principal"
	LoginPath    = "/login"
)

// PrincipalHandlerFunc is a handler that receives the resolved principal explicitly.
// p is nil for anonymous requests.
type PrincipalHandlerFunc func(c *gin.Context, p *application.Principal)

// Session resolves the session cookie into a Principal once per request.
// A stale or forged cookie is cleared; either way the request continues anonymously.
func Session(sessions *application.SessionService, cookies *helpers.Manager, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(helpers.SessionCookie)
		if err != nil || token == "" {
			c.Next()
			return
		}
		p, err := sessions.Resolve(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, application.ErrSessionNotFound) {
				cookies.ClearSession(c)
			} else {
				logger.WithError(err).Warn("session lookup failed")
			}
			c.Next()
			return
		}
		c.Set(principalKey, p)
		c.Next()
	}
}

func principalFrom(c *gin.Context) *application.Principal {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	p, _ := v.(*application.Principal)
	return p
}

// WithPrincipal passes the principal (possibly nil) to fn.
func WithPrincipal(fn PrincipalHandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		fn(c, principalFrom(c))
	}
}

// RequirePrincipal sends anonymous requests to the login page.
func RequirePrincipal(fn PrincipalHandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := principalFrom(c)
		if p == nil {
			c.Redirect(http.StatusSeeOther, LoginPath)
			c.Abort()
			return
		}
		fn(c, p)
	}
}

// RequireRole is RequirePrincipal plus a role check; a missing role is a 403.
func RequireRole(role string, fn PrincipalHandlerFunc) gin.HandlerFunc {
	return RequirePrincipal(func(c *gin.Context, p *application.Principal) {
		if !p.HasRole(role) {
			c.String(http.StatusForbidden, http.StatusText(http.StatusForbidden))
			c.Abort()
			return
		}
		fn(c, p)
	})
}
