package server

import (
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "kontrakt/internal/api/v1"
	"kontrakt/internal/config"
	"kontrakt/internal/store"
)

// Server local HTTP server
type Server struct {
	router *gin.Engine
	store  *store.Store
	log    *zap.Logger
}

// NewServer wires the store and the V1 API.
func NewServer(cfg *config.AppConfig, log *zap.Logger) (*Server, error) {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		dataDir = cfg.Data.DataDir
	}

	st, err := store.New(filepath.Join(dataDir, "kontrakt.db"))
	if err != nil {
		return nil, err
	}

	handler, err := v1.NewHandler(st, cfg, log)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	s := &Server{
		router: gin.New(),
		store:  st,
		log:    log,
	}
	s.router.Use(gin.Recovery())
	s.router.Use(s.requestLogger())
	s.router.Use(corsMiddleware())

	api := s.router.Group("/api")
	handler.RegisterRoutes(api)

	return s, nil
}

// requestLogger zap-backed access log
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)))
	}
}

// corsMiddleware permissive CORS for the local UI
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

// Run starts the server on addr, blocking.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Close releases the store.
func (s *Server) Close() error {
	return s.store.Close()
}

// Store exposes the store for tests.
func (s *Server) Store() *store.Store {
	return s.store
}
