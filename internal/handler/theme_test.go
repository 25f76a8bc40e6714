package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookalink/internal/theme"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeApply_SetsCookie(t *testing.T) {
	e := echo.New()
	h := NewThemeHandler(theme.Default())

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)
	c.SetParamNames("key")
	c.SetParamValues("mint")

	require.NoError(t, h.Apply(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var applied theme.Context
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &applied))
	assert.Equal(t, "mint", applied.Key)
	assert.NotEmpty(t, applied.Vars)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, theme.StorageKey, cookies[0].Name)
	assert.Equal(t, "mint", cookies[0].Value)
}

func TestThemeApply_UnknownKeyKeepsCookie(t *testing.T) {
	e := echo.New()
	h := NewThemeHandler(theme.Default())

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)
	c.SetParamNames("key")
	c.SetParamValues("retired-theme")

	err := h.Apply(c)
	assert.Error(t, err)
	assert.Empty(t, rec.Result().Cookies())
}

func TestThemeList_ReadsCookie(t *testing.T) {
	e := echo.New()
	h := NewThemeHandler(theme.Default())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: theme.StorageKey, Value: "mint"})
	rec := httptest.NewRecorder()

	require.NoError(t, h.List(e.NewContext(req, rec)))

	var body struct {
		Themes  []theme.Theme `json:"themes"`
		Current string        `json:"current"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Themes, 18)
	assert.Equal(t, "mint", body.Current)
}
