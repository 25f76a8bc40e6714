package handler

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"bookalink/internal/apperr"
	"bookalink/internal/booking"
	"bookalink/internal/client"
	"bookalink/internal/dto"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// Validator adapts go-playground/validator to echo, reporting the first
// failing field under its json name.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fields validator.ValidationErrors
	if errors.As(err, &fields) && len(fields) > 0 {
		fe := fields[0]
		return apperr.Invalid(fe.Field(), fieldMessage(fe))
	}
	return err
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "url":
		return "must be a valid url"
	case "email":
		return "please enter a valid email"
	}
	return fmt.Sprintf("failed %s check", fe.Tag())
}

// bind decodes the request body into req and validates it.
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	return c.Validate(req)
}

// statusOf maps the error taxonomy onto HTTP. Anything unrecognised is a 500.
func statusOf(err error) (int, dto.ErrorResponse) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, dto.ErrorResponse{Message: fmt.Sprint(he.Message)}
	}

	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, dto.ErrorResponse{Message: ve.Message, Field: ve.Field}
	}

	switch {
	case errors.Is(err, apperr.ErrUnauthorized):
		return http.StatusUnauthorized, dto.ErrorResponse{Message: "please sign in"}
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound, dto.ErrorResponse{Message: "not found"}
	case errors.Is(err, apperr.ErrAmbiguous):
		return http.StatusConflict, dto.ErrorResponse{Message: "more than one record matched"}
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict, dto.ErrorResponse{Message: "already exists"}
	case errors.Is(err, booking.ErrWrongState):
		return http.StatusConflict, dto.ErrorResponse{Message: booking.ErrWrongState.Error()}
	case errors.Is(err, apperr.ErrTooLarge):
		return http.StatusRequestEntityTooLarge, dto.ErrorResponse{Message: "image must be 5MB or smaller"}
	case errors.Is(err, apperr.ErrInvalidType):
		return http.StatusUnsupportedMediaType, dto.ErrorResponse{Message: "please upload an image file"}
	case errors.Is(err, booking.ErrMethodUnavailable):
		return http.StatusUnprocessableEntity, dto.ErrorResponse{Message: booking.ErrMethodUnavailable.Error()}
	case errors.Is(err, client.ErrStorageDisabled):
		return http.StatusServiceUnavailable, dto.ErrorResponse{Message: "image uploads are not available"}
	case errors.Is(err, apperr.ErrStore), errors.Is(err, apperr.ErrStorage):
		return http.StatusBadGateway, dto.ErrorResponse{Message: "something went wrong, please try again"}
	}
	return http.StatusInternalServerError, dto.ErrorResponse{Message: http.StatusText(http.StatusInternalServerError)}
}

// ErrorHandler writes every handler error as a JSON ErrorResponse.
func ErrorHandler(log logrus.FieldLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := statusOf(err)
		if status >= http.StatusInternalServerError {
			log.WithError(err).WithFields(logrus.Fields{
				"method": c.Request().Method,
				"route":  c.Path(),
			}).Error("request failed")
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			log.WithError(err).Warn("failed to write error response")
		}
	}
}
