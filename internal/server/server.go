package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/KeshavWanjale/usercrud/common/apiutil"
	"github.com/KeshavWanjale/usercrud/internal/database"
	"github.com/KeshavWanjale/usercrud/internal/infrastructure/config"
	"github.com/KeshavWanjale/usercrud/internal/users"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Server represents the HTTP server
type Server struct {
	cfg     config.HTTPServerConfig
	cors    config.CORSConfig
	service string
	logger  *zap.Logger
	db      *gorm.DB
	users   *users.Handler
	router  *gin.Engine
	httpSrv *http.Server
}

// NewServer creates a new HTTP server
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	usersHandler *users.Handler,
) *Server {
	s := &Server{
		cfg:     cfg.Server.HTTP,
		cors:    cfg.Server.CORS,
		service: cfg.Telemetry.ServiceName,
		logger:  logger,
		db:      db,
		users:   usersHandler,
	}

	s.router = s.newRouter()
	s.httpSrv = &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.router,
		ReadTimeout:       s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		IdleTimeout:       s.cfg.IdleTimeout,
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
		MaxHeaderBytes:    s.cfg.MaxHeaderBytes,
	}
	return s
}

// Router returns the gin engine, mainly for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) newRouter() *gin.Engine {
	router := gin.New()
	// Unknown paths, trailing slashes included, get the JSON 404.
	router.RedirectTrailingSlash = false

	router.Use(ginzap.Ginzap(s.logger, time.RFC3339, true))
	router.Use(ginzap.RecoveryWithZap(s.logger, true))
	router.Use(otelgin.Middleware(s.service))
	router.Use(apiutil.TraceIDMiddleware())
	router.Use(apiutil.MetricsMiddleware())
	router.Use(cors.New(s.corsConfig()))

	router.Any("/", s.greet)
	router.GET(s.cfg.HealthCheckPath, s.healthCheck)
	router.GET(s.cfg.ReadinessCheckPath, s.readinessCheck)
	router.GET(s.cfg.MetricsPath, gin.WrapH(promhttp.Handler()))

	users.RegisterRoutes(router, s.users)

	router.NoRoute(s.noRoute)

	return router
}

func (s *Server) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", apiutil.TraceIDHeader},
		ExposeHeaders: []string{"Content-Length", apiutil.TraceIDHeader},
		MaxAge:        12 * time.Hour,
	}
	for _, origin := range s.cors.AllowOrigins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = s.cors.AllowOrigins
	return cfg
}

// Start serves until Shutdown is called. It returns nil after a clean shutdown.
func (s *Server) Start() error {
	s.logger.Info("Starting API server", zap.String("addr", s.httpSrv.Addr))
	if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests,
// bounded by the configured shutdown timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
	defer cancel()
	return s.httpSrv.Shutdown(ctx)
}

// noRoute receives unknown paths and methods gin has no tree for, such as
// PROPFIND. Those on a known path still reach its handler.
func (s *Server) noRoute(c *gin.Context) {
	if c.Request.URL.Path == "/" {
		s.greet(c)
		return
	}
	if s.users.ServePath(c) {
		return
	}
	apiutil.WriteErrorResponse(c, http.StatusNotFound, "Not found")
}

func (s *Server) greet(c *gin.Context) {
	c.String(http.StatusOK, "Greetings")
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) readinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := database.Ping(ctx, s.db); err != nil {
		s.logger.Warn("Readiness check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
