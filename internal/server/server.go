package server

import (
	"context"
	"net/http"

	"bookalink/internal/auth"
	"bookalink/internal/config"
	"bookalink/internal/handler"
	"bookalink/internal/metrics"
	authmw "bookalink/internal/middleware"
	"bookalink/internal/service"
	"bookalink/internal/theme"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// maxBodySize leaves room for multipart framing around a 5MB image.
const maxBodySize = "6M"

type Services struct {
	Identity    auth.Provider
	Themes      *theme.Registry
	Seller      service.SellerService
	Catalog     service.CatalogService
	Profile     service.ProfileService
	Marketplace service.MarketplaceService
	Booking     service.BookingService
	Upload      service.UploadService
	Order       service.OrderService
	Stats       service.StatsService
}

type Server struct {
	echo               *echo.Echo
	identity           auth.Provider
	writeLimiter       echo.MiddlewareFunc
	themeHandler       *handler.ThemeHandler
	authHandler        *handler.AuthHandler
	marketplaceHandler *handler.MarketplaceHandler
	publicHandler      *handler.PublicHandler
	dashboardHandler   *handler.DashboardHandler
}

func NewServer(cfg *config.Config, svc Services, log logrus.FieldLogger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = handler.ErrorHandler(log)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			metrics.ObserveRequest(v.Method, c.Path(), v.Status, v.Latency.Seconds())

			entry := log.WithFields(logrus.Fields{
				"method":    v.Method,
				"uri":       v.URI,
				"status":    v.Status,
				"latency":   v.Latency.String(),
				"remote_ip": v.RemoteIP,
			})
			if v.Error != nil {
				entry = entry.WithError(v.Error)
			}
			entry.Info("request")
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit(maxBodySize))

	s := &Server{
		echo:     e,
		identity: svc.Identity,
		writeLimiter: middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
			Store: middleware.NewRateLimiterMemoryStore(rate.Limit(cfg.RateLimit.RequestsPerSecond)),
		}),
		themeHandler:       handler.NewThemeHandler(svc.Themes),
		authHandler:        handler.NewAuthHandler(svc.Identity, svc.Seller),
		marketplaceHandler: handler.NewMarketplaceHandler(svc.Marketplace),
		publicHandler:      handler.NewPublicHandler(svc.Profile, svc.Booking),
		dashboardHandler:   handler.NewDashboardHandler(svc.Seller, svc.Catalog, svc.Upload, svc.Order, svc.Stats),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.echo.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api.GET("/themes", s.themeHandler.List)
	api.POST("/themes/:key/apply", s.themeHandler.Apply)

	// -------- auth --------
	authGroup := api.Group("/auth")
	authGroup.POST("/signup", s.authHandler.Signup, s.writeLimiter)
	authGroup.POST("/login", s.authHandler.Login, s.writeLimiter)
	authGroup.POST("/logout", s.authHandler.Logout)
	authGroup.GET("/session", s.authHandler.Session, authmw.AuthMiddleware(s.identity))

	api.GET("/marketplace", s.marketplaceHandler.Search)

	// -------- public profile & booking --------
	api.GET("/u/:username", s.publicHandler.Profile)
	api.POST("/u/:username/links/:id/click", s.publicHandler.LinkClick, s.writeLimiter)
	api.POST("/u/:username/book", s.publicHandler.Book, s.writeLimiter)
	api.POST("/orders/:id/pay", s.publicHandler.Pay, s.writeLimiter)
	api.POST("/orders/:id/back", s.publicHandler.Back)

	// -------- dashboard --------
	dash := api.Group("/dashboard", authmw.AuthMiddleware(s.identity))
	dash.GET("/catalog", s.dashboardHandler.Catalog)
	dash.PUT("/profile", s.dashboardHandler.UpdateProfile)
	dash.POST("/profile/image", s.dashboardHandler.ReplaceProfileImage)
	dash.PUT("/social", s.dashboardHandler.UpdateSocial)
	dash.PUT("/payments", s.dashboardHandler.UpdatePayments)
	dash.PUT("/theme", s.dashboardHandler.SetTheme)
	dash.POST("/services", s.dashboardHandler.AddService)
	dash.DELETE("/services/:id", s.dashboardHandler.DeleteService)
	dash.POST("/items", s.dashboardHandler.AddItem)
	dash.DELETE("/items/:id", s.dashboardHandler.DeleteItem)
	dash.POST("/links", s.dashboardHandler.AddLink)
	dash.DELETE("/links/:id", s.dashboardHandler.DeleteLink)
	dash.POST("/portfolio", s.dashboardHandler.AddPortfolio)
	dash.DELETE("/portfolio/:index", s.dashboardHandler.RemovePortfolio)
	dash.POST("/uploads", s.dashboardHandler.Upload)
	dash.GET("/orders", s.dashboardHandler.Orders)
	dash.PATCH("/orders/:id/status", s.dashboardHandler.UpdateOrderStatus)
	dash.GET("/stats", s.dashboardHandler.Stats)
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
