package httpserver

import (
	"context"
	"moviecatalog/actor"
	"moviecatalog/errs"
	"moviecatalog/genre"
	"moviecatalog/movie"
	"moviecatalog/pkg/config"
	"moviecatalog/pkg/logger"
	"moviecatalog/pkg/sentry"
	"net/http"
	"strconv"
	"strings"

	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	msgRouteNotFound    = "The requested resource not found"
	msgMethodNotAllowed = "This method is not allowed to use with this URL"
	msgInternalError    = "Internal server error"
)

type Server struct {
	// Router is the Echo router instance
	Router *echo.Echo

	// Addr represents the address the server will listen on
	Addr string

	// Allowed origins for CORS
	AllowOrigins []string

	// RateLimit is requests per second per client IP, 0 disables limiting.
	RateLimit float64

	Logger *zap.SugaredLogger

	MovieService movie.Service
	ActorService actor.Service
	GenreService genre.Service
}

// New builds a server, applies options and registers middlewares and routes.
// Services may also be assigned after New returns; handlers read them per
// request.
func New(options ...Option) (*Server, error) {
	s := Server{
		Router:       echo.New(),
		Addr:         ":8080",
		AllowOrigins: []string{"*"},
		Logger:       logger.NOOPLogger,
	}

	for _, fn := range options {
		if err := fn(&s); err != nil {
			return nil, err
		}
	}

	s.Router.HideBanner = true
	s.Router.HTTPErrorHandler = s.handleError
	s.Router.Validator = NewValidator()
	s.Router.JSONSerializer = jsonSerializer{}
	s.RegisterGlobalMiddlewares()

	root := s.Router.Group("")
	s.RegisterHealthRoutes(root)
	s.RegisterMovieRoutes(root)
	s.RegisterActorRoutes(root)
	s.RegisterGenreRoutes(root)

	return &s, nil
}

// Default returns a server with default settings and no services.
func Default() *Server {
	s, _ := New()
	return s
}

func (s *Server) RegisterGlobalMiddlewares() {
	s.Router.Use(middleware.Recover())
	s.Router.Use(middleware.Secure())
	s.Router.Use(middleware.RequestID())
	s.Router.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.Logger.Infow("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			)
			return nil
		},
	}))
	s.Router.Use(middleware.Gzip())
	s.Router.Use(sentryecho.New(sentryecho.Options{Repanic: true}))

	if s.RateLimit > 0 {
		store := middleware.NewRateLimiterMemoryStore(rate.Limit(s.RateLimit))
		s.Router.Use(middleware.RateLimiter(store))
	}

	// CORS
	if len(s.AllowOrigins) > 0 {
		s.Router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: s.AllowOrigins,
		}))
	}
}

func (s *Server) Start() error {
	return s.Router.Start(s.Addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.Router.Shutdown(ctx)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

// handleError is the echo error handler. Application errors are mapped by
// code, 5xx responses are logged and reported and never carry error details.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, body := errorResponse(err)
	if status >= http.StatusInternalServerError {
		s.Logger.Errorw(err.Error(), "request_id", s.requestID(c))
		sentry.WithContext(c).
			WithTags(map[string]string{"status": strconv.Itoa(status)}).
			Error(err)
	} else {
		s.Logger.Debugw(err.Error(), "request_id", s.requestID(c), "status", status)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, body)
	}
	if err != nil {
		s.Logger.Errorw("write error response", "error", err)
	}
}

func errorResponse(err error) (int, ErrorResponse) {
	if he, ok := err.(*echo.HTTPError); ok {
		switch he.Code {
		case http.StatusNotFound:
			return he.Code, ErrorResponse{Message: msgRouteNotFound}
		case http.StatusMethodNotAllowed:
			return he.Code, ErrorResponse{Message: msgMethodNotAllowed}
		}
		if he.Code >= http.StatusInternalServerError {
			return he.Code, ErrorResponse{Message: msgInternalError}
		}
		if msg, ok := he.Message.(string); ok {
			return he.Code, ErrorResponse{Message: msg}
		}
		return he.Code, ErrorResponse{Message: http.StatusText(he.Code)}
	}

	var status int
	switch errs.ErrorCode(err) {
	case errs.EINVALID:
		status = http.StatusBadRequest
	case errs.ENOTFOUND:
		status = http.StatusNotFound
	case errs.ECONFLICT:
		status = http.StatusConflict
	case errs.EUNAUTHORIZED:
		status = http.StatusUnauthorized
	case errs.ENOTIMPLEMENTED:
		status = http.StatusNotImplemented
	default:
		return http.StatusInternalServerError, ErrorResponse{Message: msgInternalError}
	}

	return status, ErrorResponse{
		Message: errs.ErrorMessage(err),
		Errors:  errs.ErrorFields(err),
	}
}

func (s *Server) requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

// Option configures a Server built by New.
type Option func(s *Server) error

// WithConfig applies the listen port, CORS origins and rate limit of cfg.
func WithConfig(cfg *config.Config) Option {
	return func(s *Server) error {
		if cfg.Port != 0 {
			s.Addr = ":" + strconv.Itoa(cfg.Port)
		}
		if cfg.AllowOrigins != "" {
			s.AllowOrigins = strings.Split(cfg.AllowOrigins, ",")
		}
		s.RateLimit = cfg.RateLimit
		return nil
	}
}

func WithLogger(l *zap.SugaredLogger) Option {
	return func(s *Server) error {
		s.Logger = l
		return nil
	}
}

func WithMovieService(svc movie.Service) Option {
	return func(s *Server) error {
		s.MovieService = svc
		return nil
	}
}

func WithActorService(svc actor.Service) Option {
	return func(s *Server) error {
		s.ActorService = svc
		return nil
	}
}

func WithGenreService(svc genre.Service) Option {
	return func(s *Server) error {
		s.GenreService = svc
		return nil
	}
}
