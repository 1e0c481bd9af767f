// Package httpapi serves the PostgREST-shaped REST API of the backend:
// auth, owner-scoped table rows, presigned storage, health and metrics.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/jobkeeper/internal/logging"
	"github.com/dmitrijs2005/jobkeeper/internal/server/auth"
	"github.com/dmitrijs2005/jobkeeper/internal/server/metrics"
	"github.com/dmitrijs2005/jobkeeper/internal/server/services"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type UserService interface {
	SignUp(ctx context.Context, email, password string) (*services.Session, error)
	SignIn(ctx context.Context, email, password string) (*services.Session, error)
	Refresh(ctx context.Context, refreshToken string) (*services.Session, error)
	Authenticate(token string) (*auth.Claims, error)
}

type RecordService interface {
	Select(ctx context.Context, ownerID, table string, params url.Values) ([]json.RawMessage, error)
	Insert(ctx context.Context, ownerID, table string, payload []byte) ([]json.RawMessage, error)
	Update(ctx context.Context, ownerID, table string, params url.Values, patch []byte) ([]json.RawMessage, error)
	Delete(ctx context.Context, ownerID, table string, params url.Values) error
}

type StorageService interface {
	UploadURL(ctx context.Context, ownerID string) (key, url string, err error)
	DownloadURL(ctx context.Context, key string) (string, error)
}

// Pinger reports database reachability for /health.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	echo    *echo.Echo
	users   UserService
	records RecordService
	storage StorageService
	db      Pinger
	metrics *metrics.Metrics
	logger  logging.Logger
	apiKey  string
}

// Deps bundles what the router needs. DB may be nil, then /health does not
// check the database.
type Deps struct {
	Users   UserService
	Records RecordService
	Storage StorageService
	DB      Pinger
	Metrics *metrics.Metrics
	Logger  logging.Logger
	APIKey  string
}

func New(d Deps) *Server {
	if d.Logger == nil {
		d.Logger = logging.Nop{}
	}
	if d.Metrics == nil {
		d.Metrics = metrics.New()
	}
	s := &Server{
		users:   d.Users,
		records: d.Records,
		storage: d.Storage,
		db:      d.DB,
		metrics: d.Metrics,
		logger:  d.Logger,
		apiKey:  d.APIKey,
	}
	s.setupEcho()
	return s
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.errorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(s.metricsMiddleware)
	e.Use(s.requestLogger)
	e.Use(middleware.BodyLimit("4M"))

	e.GET("/health", s.handleHealth)
	e.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))

	authGroup := e.Group("/auth/v1", s.apiKeyMiddleware)
	authGroup.POST("/signup", s.handleSignUp)
	authGroup.POST("/token", s.handleToken)

	rest := e.Group("/rest/v1", s.apiKeyMiddleware, s.authMiddleware)
	rest.GET("/:table", s.handleSelect)
	rest.POST("/:table", s.handleInsert)
	rest.PATCH("/:table", s.handleUpdate)
	rest.DELETE("/:table", s.handleDelete)

	storage := e.Group("/storage/v1", s.apiKeyMiddleware, s.authMiddleware)
	storage.POST("/upload-url", s.handleUploadURL)
	storage.GET("/download-url", s.handleDownloadURL)

	s.echo = e
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves on addr until Shutdown. A clean shutdown returns nil.
func (s *Server) Start(addr string) error {
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleHealth(c echo.Context) error {
	if s.db != nil {
		if err := s.db.PingContext(c.Request().Context()); err != nil {
			s.logger.Warn(c.Request().Context(), "health check: database unreachable", "err", err)
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
