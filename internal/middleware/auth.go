package middleware

import (
	"strings"

	"bookalink/internal/apperr"
	"bookalink/internal/auth"

	"github.com/labstack/echo/v4"
)

const (
	// SessionCookie carries the token for browser clients.
	SessionCookie = "session"

	userIDKey   = "user_id"
	identityKey = "identity"
)

// AuthMiddleware resolves the session token from the Authorization bearer
// header, falling back to the session cookie, and stores the seller's
// identity on the context.
func AuthMiddleware(identity auth.Provider) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			if token == "" {
				return apperr.ErrUnauthorized
			}

			id, err := identity.Session(c.Request().Context(), token)
			if err != nil {
				return err
			}

			c.Set(userIDKey, id.UserID)
			c.Set(identityKey, id)
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}

// UserID is the authenticated seller, empty outside AuthMiddleware.
func UserID(c echo.Context) string {
	id, _ := c.Get(userIDKey).(string)
	return id
}

func Identity(c echo.Context) *auth.Identity {
	id, _ := c.Get(identityKey).(*auth.Identity)
	return id
}
