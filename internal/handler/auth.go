package handler

import (
	"net/http"
	"time"

	"bookalink/internal/auth"
	"bookalink/internal/dto"
	"bookalink/internal/middleware"
	"bookalink/internal/service"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	identity      auth.Provider
	sellerService service.SellerService
}

func NewAuthHandler(identity auth.Provider, sellerService service.SellerService) *AuthHandler {
	return &AuthHandler{
		identity:      identity,
		sellerService: sellerService,
	}
}

func setSessionCookie(c echo.Context, session *auth.Session) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) Signup(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.SignupRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	session, seller, err := h.sellerService.Register(ctx, service.RegisterInput{
		FullName:        req.FullName,
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return err
	}

	setSessionCookie(c, session)
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"session": session,
		"seller":  seller,
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	session, err := h.identity.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		return err
	}

	setSessionCookie(c, session)
	return c.JSON(http.StatusOK, session)
}

func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
	})
	return c.NoContent(http.StatusNoContent)
}

// Session reports who is signed in, along with their seller row.
func (h *AuthHandler) Session(c echo.Context) error {
	ctx := c.Request().Context()

	seller, err := h.sellerService.Get(ctx, middleware.UserID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"user":   middleware.Identity(c),
		"seller": seller,
	})
}
