package middleware

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"

	"belavista-backend/internal/auth"
)

const sessionContextKey = "auth.session"

var reToken = regexp.MustCompile(`^[a-f0-9]{32}$`)

// RequireSession resolves the bearer token into a live session and stores it
// on the request context. Without one the request stops at 401; the client
// performs the login redirect, not this layer.
func RequireSession(svc *auth.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !reToken.MatchString(token) {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing or malformed bearer token"})
			}

			sess, err := svc.SessionFromToken(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, auth.ErrNoSession) {
					return c.JSON(http.StatusUnauthorized, map[string]string{"error": "session expired or revoked"})
				}
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "session store unavailable"})
			}

			c.Set(sessionContextKey, sess)
			return next(c)
		}
	}
}

// SessionFrom returns the session placed by RequireSession, nil outside it.
func SessionFrom(c echo.Context) *auth.Session {
	sess, _ := c.Get(sessionContextKey).(*auth.Session)
	return sess
}

// WithSession stores sess on the context the same way RequireSession does.
func WithSession(c echo.Context, sess *auth.Session) {
	c.Set(sessionContextKey, sess)
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(header[len(prefix):]))
}
