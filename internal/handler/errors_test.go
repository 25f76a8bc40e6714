package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookalink/internal/apperr"
	"bookalink/internal/booking"
	"bookalink/internal/client"
	"bookalink/internal/dto"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", apperr.Invalid("email", "please enter a valid email"), http.StatusBadRequest},
		{"unauthorized", fmt.Errorf("session: %w", apperr.ErrUnauthorized), http.StatusUnauthorized},
		{"not found", fmt.Errorf("seller %q: %w", "bob", apperr.ErrNotFound), http.StatusNotFound},
		{"ambiguous", apperr.ErrAmbiguous, http.StatusConflict},
		{"conflict", apperr.ErrConflict, http.StatusConflict},
		{"wrong step", booking.ErrWrongState, http.StatusConflict},
		{"too large", apperr.ErrTooLarge, http.StatusRequestEntityTooLarge},
		{"not an image", apperr.ErrInvalidType, http.StatusUnsupportedMediaType},
		{"method", fmt.Errorf("paypal: %w", booking.ErrMethodUnavailable), http.StatusUnprocessableEntity},
		{"storage disabled", apperr.Storage("upload image", client.ErrStorageDisabled), http.StatusServiceUnavailable},
		{"store", apperr.Store("list items", errors.New("connection reset")), http.StatusBadGateway},
		{"storage", apperr.Storage("upload image", errors.New("503")), http.StatusBadGateway},
		{"echo", echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded"), http.StatusTooManyRequests},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := statusOf(tt.err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatusOf_ValidationCarriesField(t *testing.T) {
	_, body := statusOf(apperr.Invalid("email", "please enter a valid email"))

	assert.Equal(t, dto.ErrorResponse{Message: "please enter a valid email", Field: "email"}, body)
}

func TestErrorHandler_HidesInternals(t *testing.T) {
	logger, hook := test.NewNullLogger()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	ErrorHandler(logger)(apperr.Store("list orders", errors.New("dial tcp 10.0.0.5:3306")), c)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestValidator_UsesJSONNames(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&dto.PayRequest{Method: "bitcoin"})
	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "method", ve.Field)

	err = v.Validate(&dto.BookRequest{ItemType: "item"})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "item_id", ve.Field)

	assert.NoError(t, v.Validate(&dto.PayRequest{Method: "venmo"}))
}
