package handler

import (
	"net/http"

	"bookalink/internal/booking"
	"bookalink/internal/dto"
	"bookalink/internal/model"
	"bookalink/internal/service"

	"github.com/labstack/echo/v4"
)

// PublicHandler serves a seller's page and the buyer side of booking.
type PublicHandler struct {
	profileService service.ProfileService
	bookingService service.BookingService
}

func NewPublicHandler(profileService service.ProfileService, bookingService service.BookingService) *PublicHandler {
	return &PublicHandler{
		profileService: profileService,
		bookingService: bookingService,
	}
}

func (h *PublicHandler) Profile(c echo.Context) error {
	ctx := c.Request().Context()

	profile, err := h.profileService.Render(ctx, c.Param("username"), prefsFor(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profile)
}

func (h *PublicHandler) LinkClick(c echo.Context) error {
	ctx := c.Request().Context()

	target, err := h.profileService.RecordLinkClick(ctx, c.Param("username"), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{
		"url": target,
	})
}

func (h *PublicHandler) Book(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.BookRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	state, err := h.bookingService.Start(ctx, c.Param("username"), service.BookingRequest{
		TargetType: model.ItemType(req.ItemType),
		TargetID:   req.ItemID,
		Contact: booking.Contact{
			Name:    req.Name,
			Email:   req.Email,
			Phone:   req.Phone,
			Message: req.Message,
		},
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, state)
}

func (h *PublicHandler) Pay(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.PayRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	action, err := h.bookingService.Pay(ctx, c.Param("id"), model.PaymentMethod(req.Method))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, action)
}

func (h *PublicHandler) Back(c echo.Context) error {
	ctx := c.Request().Context()

	state, err := h.bookingService.Back(ctx, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, state)
}
