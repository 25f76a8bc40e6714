package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bookalink/internal/apperr"
	"bookalink/internal/auth"
	"bookalink/internal/config"
	"bookalink/internal/repository"
	"bookalink/internal/testutil"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func signedUp(t *testing.T) (auth.Provider, *auth.Session) {
	t.Helper()
	p := auth.NewProvider(
		repository.NewAccountRepository(testutil.NewDB(t)),
		&config.Auth{JWTSecret: "test-secret", TokenTTL: time.Hour},
		auth.WithCost(bcrypt.MinCost),
	)
	session, err := p.SignUp(context.Background(), "alice@example.com", "secret1", nil)
	require.NoError(t, err)
	return p, session
}

func run(p auth.Provider, req *http.Request) (echo.Context, error) {
	e := echo.New()
	c := e.NewContext(req, httptest.NewRecorder())
	err := AuthMiddleware(p)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})(c)
	return c, err
}

func TestAuthMiddleware_BearerHeader(t *testing.T) {
	p, session := signedUp(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+session.Token)
	c, err := run(p, req)

	require.NoError(t, err)
	assert.Equal(t, session.Identity.UserID, UserID(c))
	assert.Equal(t, "alice@example.com", Identity(c).Email)
}

func TestAuthMiddleware_SessionCookie(t *testing.T) {
	p, session := signedUp(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: session.Token})
	c, err := run(p, req)

	require.NoError(t, err)
	assert.Equal(t, session.Identity.UserID, UserID(c))
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	p, _ := signedUp(t)

	missing := httptest.NewRequest(http.MethodGet, "/", nil)
	c, err := run(p, missing)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	assert.Empty(t, UserID(c))

	forged := httptest.NewRequest(http.MethodGet, "/", nil)
	forged.Header.Set(echo.HeaderAuthorization, "Bearer not-a-token")
	_, err = run(p, forged)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}
