package handler

import (
	"net/http"

	"bookalink/internal/apperr"
	"bookalink/internal/theme"

	"github.com/labstack/echo/v4"
)

const themeCookieMaxAge = 365 * 24 * 60 * 60

// cookiePrefs keeps the visitor's theme in a cookie, so it survives reloads
// the way the dashboard preview expects.
type cookiePrefs struct {
	c echo.Context
}

func prefsFor(c echo.Context) theme.PreferenceStore {
	return &cookiePrefs{c: c}
}

func (p *cookiePrefs) Get() (string, bool) {
	cookie, err := p.c.Cookie(theme.StorageKey)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

func (p *cookiePrefs) Set(key string) {
	p.c.SetCookie(&http.Cookie{
		Name:     theme.StorageKey,
		Value:    key,
		Path:     "/",
		MaxAge:   themeCookieMaxAge,
		SameSite: http.SameSiteLaxMode,
	})
}

type ThemeHandler struct {
	themes *theme.Registry
}

func NewThemeHandler(themes *theme.Registry) *ThemeHandler {
	return &ThemeHandler{
		themes: themes,
	}
}

func (h *ThemeHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"themes":  h.themes.List(),
		"current": h.themes.Stored(prefsFor(c)),
	})
}

func (h *ThemeHandler) Apply(c echo.Context) error {
	applied, ok := h.themes.Apply(prefsFor(c), c.Param("key"))
	if !ok {
		return apperr.Invalid("theme", "unknown theme")
	}
	return c.JSON(http.StatusOK, applied)
}
