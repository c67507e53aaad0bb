package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hospitalar/visitas-api/internal/handler"
	"github.com/hospitalar/visitas-api/pkg/session"
)

const (
	// ProtectedPrefix gates the dashboard pages.
	ProtectedPrefix = "/dashboard"
	// LoginPath is the anonymous entry route.
	LoginPath = "/"

	// ContextUserEmail carries the authenticated subject through the request.
	ContextUserEmail = "user_email"
)

// SessionValidator resolves a session token to its subject email.
type SessionValidator interface {
	ValidateSession(token string) (string, error)
}

type SessionMiddleware struct {
	validator SessionValidator
}

func NewSessionMiddleware(validator SessionValidator) *SessionMiddleware {
	return &SessionMiddleware{validator: validator}
}

// subject extracts and validates the session cookie. Missing, malformed and
// expired cookies all resolve to an anonymous request.
func (m *SessionMiddleware) subject(c *gin.Context) (string, bool) {
	token, err := c.Cookie(session.CookieName)
	if err != nil || token == "" {
		return "", false
	}
	email, err := m.validator.ValidateSession(token)
	if err != nil {
		return "", false
	}
	return email, true
}

// Guard applies the page-route gating contract: anonymous requests under
// the protected prefix bounce to the login page, authenticated requests to
// the login page bounce to the dashboard, everything else passes through.
// The decision depends only on token validity and the requested path.
func (m *SessionMiddleware) Guard() gin.HandlerFunc {
	return func(c *gin.Context) {
		email, authenticated := m.subject(c)
		path := c.Request.URL.Path

		if !authenticated && strings.HasPrefix(path, ProtectedPrefix) {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}

		if authenticated && path == LoginPath {
			c.Redirect(http.StatusFound, ProtectedPrefix)
			c.Abort()
			return
		}

		if authenticated {
			c.Set(ContextUserEmail, email)
		}
		c.Next()
	}
}

// RequireSession protects the JSON service boundary. API clients get a 401
// envelope instead of a redirect.
func (m *SessionMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		email, authenticated := m.subject(c)
		if !authenticated {
			c.AbortWithStatusJSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
			return
		}

		c.Set(ContextUserEmail, email)
		c.Next()
	}
}
