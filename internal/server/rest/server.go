// Package rest exposes the listing and account services over JSON/HTTP.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/MrSidSir/sidEstate/internal/logging"
	"github.com/MrSidSir/sidEstate/internal/server/config"
	"github.com/MrSidSir/sidEstate/internal/server/services"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	address  string
	echo     *echo.Echo
	logger   logging.Logger
	users    *services.UserService
	listings *services.ListingService
	media    *services.MediaService

	jwtSecret    []byte
	validity     time.Duration
	cookieSecure bool
}

func NewServer(cfg *config.Config, l logging.Logger, us *services.UserService, ls *services.ListingService, ms *services.MediaService) *Server {
	s := &Server{
		address:      cfg.EndpointAddrHTTP,
		logger:       l.With("module", "rest_server"),
		users:        us,
		listings:     ls,
		media:        ms,
		jwtSecret:    []byte(cfg.SecretKey),
		validity:     cfg.TokenValidityDuration,
		cookieSecure: cfg.CookieSecure,
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.errorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.Debug(c.Request().Context(), "request",
				"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency)
			return nil
		},
	}))
	if len(cfg.AllowedOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     cfg.AllowedOrigins,
			AllowCredentials: true,
		}))
	}

	s.echo = e
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.echo.Group("/api")

	api.GET("/health", s.health)

	a := api.Group("/auth")
	a.POST("/signup", s.signup)
	a.POST("/signin", s.signin)
	a.POST("/google", s.google)
	a.GET("/signout", s.signout)

	l := api.Group("/listing")
	l.POST("/create", s.createListing, s.guard)
	l.POST("/update/:id", s.updateListing, s.guard)
	l.DELETE("/delete/:id", s.deleteListing, s.guard)
	l.GET("/get/:id", s.getListing)
	l.GET("/get", s.searchListings)

	u := api.Group("/user")
	u.GET("/profile/:id", s.getUser)
	u.POST("/update/:id", s.updateUser, s.guard)
	u.DELETE("/delete/:id", s.deleteUser, s.guard)
	u.GET("/listings/:id", s.userListings, s.guard)
	u.GET("/:id", s.getUser, s.guard)

	api.POST("/media/presign", s.presign, s.guard)
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.echo.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := s.echo.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
