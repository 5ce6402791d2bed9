// Package server exposes the ledger operations over HTTP.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/lusitania/vatledger/internal/ledger"
)

// Config holds server configuration
type Config struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool
}

// Server represents the HTTP API server
type Server struct {
	config *Config
	router *gin.Engine
	ledger *ledger.Ledger
	log    zerolog.Logger
}

// NewServer creates a new API server over a loaded ledger.
func NewServer(config *Config, l *ledger.Ledger, log zerolog.Logger) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if config.Debug {
		router.Use(gin.Logger())
	}

	s := &Server{
		config: config,
		router: router,
		ledger: l,
		log:    log,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/clients", s.handleListClients)
		v1.POST("/clients", s.handleCreateClient)
		v1.PUT("/clients/:taxid", s.handleUpdateClient)

		v1.GET("/invoices", s.handleListInvoices)
		v1.POST("/invoices", s.handleCreateInvoice)
		v1.GET("/invoices/:number", s.handleViewInvoice)
		v1.PUT("/invoices/:number", s.handleUpdateInvoice)
		v1.POST("/invoices/:number/products", s.handleAddProduct)

		v1.GET("/stats", s.handleStats)

		v1.GET("/export", s.handleExportText)
		v1.GET("/export/csv", s.handleExportCSV)
		v1.POST("/import", s.handleImport)
		v1.POST("/snapshot", s.handleSnapshot)
	}
}

// Run starts the HTTP server
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	s.log.Info().Str("addr", s.config.Address).Msg("listening")
	return srv.ListenAndServe()
}

// Handler returns the http.Handler for use with custom servers and tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
