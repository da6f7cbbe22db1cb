package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"math/rand/v2"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"market-climber/src/analysis"
	"market-climber/src/interfaces"
	"market-climber/src/logger"
	"market-climber/src/models"
	"market-climber/src/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Origins allowed when cors_origins is not configured
var defaultCORSOrigins = []string{"http://127.0.0.1:", "http://localhost:"}

// -----------------------------------------------------------------------------
// DashboardServer
// -----------------------------------------------------------------------------

type DashboardServer struct {
	Config    *models.MConfig
	Logger    *logger.Logger
	Dashboard interfaces.IDashboard
	Watchlist interfaces.IWatchlistStore
	Scheduler *utils.MarketScheduler
	Now       func() time.Time
	Rand      func() *rand.Rand

	engine     *gin.Engine
	httpServer *http.Server

	// WebSocket clients
	clients    map[*Client]struct{}
	broadcast  chan models.MDashboardState
	register   chan *Client
	unregister chan *Client
	quit       chan struct{}
	hubOnce    sync.Once
	stopOnce   sync.Once

	// Set while a websocket-triggered refresh is running
	wsRefreshing atomic.Bool

	// Local cache of the last published state
	latestState models.MDashboardState
	connections int
	stateMutex  sync.RWMutex
}

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

func NewDashboardServer(cfg *models.MConfig, dash interfaces.IDashboard, watchlist interfaces.IWatchlistStore, scheduler *utils.MarketScheduler, log *logger.Logger) *DashboardServer {
	// Set Gin mode
	if !strings.EqualFold(cfg.LogLevel, "DEBUG") {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &DashboardServer{
		Config:    cfg,
		Logger:    log,
		Dashboard: dash,
		Watchlist: watchlist,
		Scheduler: scheduler,
		Now:       time.Now,
		Rand:      analysis.NewRand,
		engine:    gin.New(),
		clients:   make(map[*Client]struct{}),
		// Buffered so a burst of updates never blocks the poller
		broadcast:   make(chan models.MDashboardState, 256),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		quit:        make(chan struct{}),
		latestState: dash.State(),
	}

	s.engine.Use(gin.Recovery(), s.requestLogger())
	s.engine.Use(cors.New(s.corsConfig()))
	s.engine.SetHTMLTemplate(template.Must(template.New("").Funcs(pageFuncs).ParseFS(templateFS, "templates/*.html")))

	s.setupRoutes()
	return s
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) corsConfig() cors.Config {
	origins := s.Config.CORSOrigins
	if len(origins) == 0 {
		origins = defaultCORSOrigins
	}

	return cors.Config{
		AllowOriginFunc: func(origin string) bool {
			for _, prefix := range origins {
				if prefix == "*" || strings.HasPrefix(origin, prefix) {
					return true
				}
			}
			return false
		},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Cache-Control", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}

// -----------------------------------------------------------------------------

// requestLogger sends access lines through the component logger at DEBUG
func (s *DashboardServer) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.Logger.Debug("%s %s -> %d (%v)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

// -----------------------------------------------------------------------------
// Route Setup
// -----------------------------------------------------------------------------

func (s *DashboardServer) setupRoutes() {
	// HTML dashboard
	s.engine.GET("/", s.getIndex)

	// REST API endpoints
	api := s.engine.Group("/api")
	api.GET("/health", s.getHealth)
	api.GET("/config", s.getConfig)
	api.GET("/snapshot", s.getSnapshot)
	api.GET("/movers", s.getMovers)
	api.GET("/symbols/:symbol", s.getSymbolDetail)
	api.GET("/symbols/:symbol/chart", s.getSymbolChart)
	api.POST("/refresh", s.postRefresh)
	api.GET("/watchlist", s.getWatchlist)
	api.POST("/watchlist", s.postWatchlist)
	api.DELETE("/watchlist/:symbol", s.deleteWatchlist)

	// WebSocket endpoint
	s.engine.GET("/ws", s.handleWebSocket)
}

// -----------------------------------------------------------------------------

// Handler exposes the router, e.g. for httptest
func (s *DashboardServer) Handler() http.Handler {
	return s.engine
}

// -----------------------------------------------------------------------------
// Server Lifecycle
// -----------------------------------------------------------------------------

// StartHub runs the websocket hub loop; Start calls it too.
func (s *DashboardServer) StartHub() {
	s.hubOnce.Do(func() { go s.handleWebsockets() })
}

// -----------------------------------------------------------------------------

// Start serves until Stop is called
func (s *DashboardServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.Config.Host, s.Config.Port)
	s.Logger.Info("Starting server on %s", addr)

	s.StartHub()

	s.stateMutex.Lock()
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv := s.httpServer
	s.stateMutex.Unlock()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// -----------------------------------------------------------------------------

// Stop shuts the HTTP server down and ends the hub loop
func (s *DashboardServer) Stop() error {
	var err error
	s.stopOnce.Do(func() {
		s.stateMutex.RLock()
		srv := s.httpServer
		s.stateMutex.RUnlock()

		if srv != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			err = srv.Shutdown(ctx)
		}
		close(s.quit)
		s.Logger.Info("Server stopped")
	})
	return err
}
