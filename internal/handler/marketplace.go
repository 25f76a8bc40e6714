package handler

import (
	"net/http"

	"bookalink/internal/service"

	"github.com/labstack/echo/v4"
)

type MarketplaceHandler struct {
	marketplaceService service.MarketplaceService
}

func NewMarketplaceHandler(marketplaceService service.MarketplaceService) *MarketplaceHandler {
	return &MarketplaceHandler{
		marketplaceService: marketplaceService,
	}
}

func (h *MarketplaceHandler) Search(c echo.Context) error {
	ctx := c.Request().Context()

	result := h.marketplaceService.Search(ctx, c.QueryParam("q"), service.ParseFacet(c.QueryParam("filter")))

	return c.JSON(http.StatusOK, result)
}
