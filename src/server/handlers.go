package server

import (
	"net/http"
	"strings"
	"time"

	"market-climber/src/analysis"
	"market-climber/src/dashboard"
	"market-climber/src/helpers"
	"market-climber/src/models"
	"market-climber/src/storage"

	"github.com/gin-gonic/gin"
)

// -----------------------------------------------------------------------------
// Route Handlers
// -----------------------------------------------------------------------------

func (s *DashboardServer) getHealth(c *gin.Context) {
	s.stateMutex.RLock()
	connections := s.connections
	s.stateMutex.RUnlock()

	st := s.Dashboard.State()
	source := ""
	if st.Snapshot != nil {
		source = st.Snapshot.Source
	}

	c.JSON(http.StatusOK, gin.H{
		"status":          "ok",
		"connections":     connections,
		"latest_sequence": st.Sequence,
		"source":          source,
		"market":          st.Market,
	})
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) getConfig(c *gin.Context) {
	layouts := make([]gin.H, 0, len(dashboard.Layouts))
	for _, l := range dashboard.Layouts {
		layouts = append(layouts, gin.H{"name": l, "depth": dashboard.LayoutDepth(l)})
	}

	c.JSON(http.StatusOK, gin.H{
		"layouts":               layouts,
		"default_layout":        s.Config.Dashboard.DefaultLayout,
		"timeframes":            models.Timeframes,
		"poll_interval_seconds": int(s.Dashboard.PollInterval().Seconds()),
		"exchange":              s.Config.DataSource.Exchange,
	})
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) getSnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, s.Dashboard.State())
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) getMovers(c *gin.Context) {
	layout, err := dashboard.ParseLayout(c.Query("layout"), s.Config.Dashboard.DefaultLayout)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap, ok := s.currentSnapshot()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no snapshot yet"})
		return
	}
	c.JSON(http.StatusOK, dashboard.SelectMovers(snap, layout))
}

// -----------------------------------------------------------------------------

// lookupSymbol resolves :symbol against the current snapshot, answering the request on failure
func (s *DashboardServer) lookupSymbol(c *gin.Context) (models.MSymbol, bool) {
	symbol := strings.ToUpper(strings.TrimSpace(c.Param("symbol")))

	snap, ok := s.currentSnapshot()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no snapshot yet"})
		return models.MSymbol{}, false
	}
	sym, found := snap.Find(symbol)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "symbol not in current snapshot: " + symbol})
		return models.MSymbol{}, false
	}
	return sym, true
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) getSymbolDetail(c *gin.Context) {
	sym, ok := s.lookupSymbol(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, analysis.BuildDetail(sym, s.Rand()))
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) getSymbolChart(c *gin.Context) {
	timeframe := strings.ToUpper(c.DefaultQuery("timeframe", models.Timeframe1D))
	if !analysis.IsTimeframe(timeframe) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown timeframe: " + timeframe, "timeframes": models.Timeframes})
		return
	}

	sym, ok := s.lookupSymbol(c)
	if !ok {
		return
	}

	points, err := analysis.GenerateChart(sym, timeframe, s.Now(), s.chartLocation(), s.Rand())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"symbol":    sym.Symbol,
		"timeframe": timeframe,
		"points":    points,
		"range":     analysis.ChartRange(points),
	})
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) chartLocation() *time.Location {
	if s.Scheduler == nil {
		return time.UTC
	}
	return s.Scheduler.Location()
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) postRefresh(c *gin.Context) {
	c.JSON(http.StatusOK, s.Dashboard.Refresh(c.Request.Context()))
}

// -----------------------------------------------------------------------------
// Watchlist
// -----------------------------------------------------------------------------

type watchlistRequest struct {
	Symbol string `json:"symbol" binding:"required"`
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) watchlistAvailable(c *gin.Context) bool {
	if s.Watchlist == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "watchlist storage is not configured"})
		return false
	}
	return true
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) getWatchlist(c *gin.Context) {
	if !s.watchlistAvailable(c) {
		return
	}
	items, err := s.Watchlist.List(c.Request.Context())
	if err != nil {
		s.Logger.Error("List watchlist: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load watchlist"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) postWatchlist(c *gin.Context) {
	if !s.watchlistAvailable(c) {
		return
	}
	var req watchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must be {\"symbol\": \"...\"}"})
		return
	}

	item, err := s.Watchlist.Add(c.Request.Context(), req.Symbol)
	if err != nil {
		s.watchlistError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) deleteWatchlist(c *gin.Context) {
	if !s.watchlistAvailable(c) {
		return
	}
	symbol, err := storage.ValidateSymbol(c.Param("symbol"))
	if err != nil {
		s.watchlistError(c, err)
		return
	}

	removed, err := s.Watchlist.Remove(c.Request.Context(), symbol)
	if err != nil {
		s.watchlistError(c, err)
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "not in watchlist: " + symbol})
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": symbol})
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) watchlistError(c *gin.Context, err error) {
	if helpers.ErrorKind(err) == helpers.KindMalformed {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.Logger.Error("Watchlist: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "watchlist storage failed"})
}
