package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"bookalink/internal/apperr"
	"bookalink/internal/dto"
	"bookalink/internal/middleware"
	"bookalink/internal/model"
	"bookalink/internal/service"

	"github.com/labstack/echo/v4"
)

// DashboardHandler serves the signed-in seller. Every route sits behind
// middleware.AuthMiddleware and acts on middleware.UserID only.
type DashboardHandler struct {
	sellerService  service.SellerService
	catalogService service.CatalogService
	uploadService  service.UploadService
	orderService   service.OrderService
	statsService   service.StatsService
}

func NewDashboardHandler(
	sellerService service.SellerService,
	catalogService service.CatalogService,
	uploadService service.UploadService,
	orderService service.OrderService,
	statsService service.StatsService,
) *DashboardHandler {
	return &DashboardHandler{
		sellerService:  sellerService,
		catalogService: catalogService,
		uploadService:  uploadService,
		orderService:   orderService,
		statsService:   statsService,
	}
}

func (h *DashboardHandler) Catalog(c echo.Context) error {
	ctx := c.Request().Context()

	catalog, err := h.catalogService.Catalog(ctx, middleware.UserID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, catalog)
}

func (h *DashboardHandler) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ProfileRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	seller, err := h.sellerService.UpdateProfile(ctx, middleware.UserID(c), service.ProfileInput{
		Name:         req.Name,
		BusinessName: req.BusinessName,
		Bio:          req.Bio,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, seller)
}

func (h *DashboardHandler) UpdateSocial(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.SocialRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	seller, err := h.sellerService.UpdateSocial(ctx, middleware.UserID(c), model.SocialHandles{
		InstagramHandle: req.InstagramHandle,
		TiktokHandle:    req.TiktokHandle,
		YoutubeHandle:   req.YoutubeHandle,
		TwitterHandle:   req.TwitterHandle,
		FacebookURL:     req.FacebookURL,
		LinkedinURL:     req.LinkedinURL,
		PinterestHandle: req.PinterestHandle,
		SnapchatHandle:  req.SnapchatHandle,
		TwitchHandle:    req.TwitchHandle,
		SpotifyURL:      req.SpotifyURL,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, seller)
}

func (h *DashboardHandler) UpdatePayments(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.PaymentsRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	seller, err := h.sellerService.UpdatePayments(ctx, middleware.UserID(c), model.PaymentHandles{
		VenmoUsername:   req.VenmoUsername,
		CashappUsername: req.CashappUsername,
		PaypalEmail:     req.PaypalEmail,
		ZelleEmail:      req.ZelleEmail,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, seller)
}

func (h *DashboardHandler) SetTheme(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ThemeRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	applied, err := h.sellerService.SetTheme(ctx, middleware.UserID(c), req.Key, prefsFor(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, applied)
}

func (h *DashboardHandler) AddService(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ServiceRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	svc, err := h.catalogService.AddService(ctx, middleware.UserID(c), service.ServiceInput{
		Name:        req.Name,
		Description: req.Description,
		Duration:    req.Duration,
		Price:       req.Price,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, svc)
}

func (h *DashboardHandler) DeleteService(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.catalogService.DeleteService(ctx, middleware.UserID(c), c.Param("id")); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *DashboardHandler) AddItem(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ItemRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	item, err := h.catalogService.AddItem(ctx, middleware.UserID(c), service.ItemInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, item)
}

func (h *DashboardHandler) DeleteItem(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.catalogService.DeleteItem(ctx, middleware.UserID(c), c.Param("id")); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *DashboardHandler) AddLink(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.LinkRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	link, err := h.catalogService.AddLink(ctx, middleware.UserID(c), service.LinkInput{
		Label: req.Label,
		URL:   req.URL,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, link)
}

func (h *DashboardHandler) DeleteLink(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.catalogService.DeleteLink(ctx, middleware.UserID(c), c.Param("id")); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *DashboardHandler) AddPortfolio(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.PortfolioRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	portfolio, err := h.sellerService.AddPortfolioImage(ctx, middleware.UserID(c), req.URL)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string][]string{
		"portfolio": portfolio,
	})
}

func (h *DashboardHandler) RemovePortfolio(c echo.Context) error {
	ctx := c.Request().Context()

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return apperr.Invalid("index", fmt.Sprintf("%q is not a position", c.Param("index")))
	}

	portfolio, err := h.sellerService.RemovePortfolioImage(ctx, middleware.UserID(c), index)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string][]string{
		"portfolio": portfolio,
	})
}

// Upload stores the multipart "file" field and returns its URL without
// attaching it anywhere.
func (h *DashboardHandler) Upload(c echo.Context) error {
	ctx := c.Request().Context()

	file, closeFile, err := imageFromForm(c)
	if err != nil {
		return err
	}
	defer closeFile()

	url, err := h.uploadService.Upload(ctx, file)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dto.UploadResponse{URL: url})
}

// ReplaceProfileImage uploads a new profile image and points the seller at
// it. A failed upload leaves the current image in place.
func (h *DashboardHandler) ReplaceProfileImage(c echo.Context) error {
	ctx := c.Request().Context()
	sellerID := middleware.UserID(c)

	seller, err := h.sellerService.Get(ctx, sellerID)
	if err != nil {
		return err
	}

	file, closeFile, err := imageFromForm(c)
	if err != nil {
		return err
	}
	defer closeFile()

	url, err := h.uploadService.Replace(ctx, seller.ProfileImage, file)
	if err != nil {
		return err
	}

	updated, err := h.sellerService.UpdateProfile(ctx, sellerID, service.ProfileInput{
		Name:         seller.Name,
		BusinessName: seller.BusinessName,
		Bio:          seller.Bio,
		ProfileImage: url,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, updated)
}

func (h *DashboardHandler) Orders(c echo.Context) error {
	ctx := c.Request().Context()

	orders, err := h.orderService.List(ctx, middleware.UserID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *DashboardHandler) UpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.StatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	err := h.orderService.UpdateStatus(ctx, middleware.UserID(c), c.Param("id"), model.OrderStatus(req.Status))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": req.Status,
	})
}

func (h *DashboardHandler) Stats(c echo.Context) error {
	ctx := c.Request().Context()

	return c.JSON(http.StatusOK, h.statsService.Get(ctx, middleware.UserID(c)))
}

func imageFromForm(c echo.Context) (service.ImageFile, func(), error) {
	header, err := c.FormFile("file")
	if err != nil {
		return service.ImageFile{}, nil, apperr.Invalid("file", "please choose an image")
	}

	f, err := header.Open()
	if err != nil {
		return service.ImageFile{}, nil, fmt.Errorf("open upload: %w", err)
	}

	return service.ImageFile{
		Filename:    header.Filename,
		ContentType: header.Header.Get(echo.HeaderContentType),
		Size:        header.Size,
		Body:        f,
	}, func() { f.Close() }, nil
}
