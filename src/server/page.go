package server

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"market-climber/src/dashboard"
	"market-climber/src/models"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageFuncs = template.FuncMap{
	"price":     formatPrice,
	"signed":    formatSigned,
	"pct":       formatPercent,
	"signClass": signClass,
}

// pageData is what templates/index.html renders
type pageData struct {
	Title            string
	Layout           string
	Layouts          []string
	Depth            int
	Timeframes       []string
	State            models.MDashboardState
	Stairs           []dashboard.Stair // top step first
	Losers           []models.MSymbol
	DoorCycleSeconds int
	DoorOpenSeconds  int
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) getIndex(c *gin.Context) {
	layout, err := dashboard.ParseLayout(c.Query("layout"), s.Config.Dashboard.DefaultLayout)
	if err != nil {
		layout = dashboard.LayoutStairs
	}
	depth := dashboard.LayoutDepth(layout)
	st := s.Dashboard.State()

	data := pageData{
		Title:            s.Config.Name,
		Layout:           layout,
		Layouts:          dashboard.Layouts,
		Depth:            depth,
		Timeframes:       models.Timeframes,
		State:            st,
		Stairs:           reverseStairs(dashboard.StairSteps(nil, dashboard.StairCount)),
		DoorCycleSeconds: s.Config.Dashboard.DoorCycleSeconds,
		DoorOpenSeconds:  s.Config.Dashboard.DoorOpenSeconds,
	}
	if st.Snapshot != nil {
		movers := dashboard.SelectMovers(*st.Snapshot, layout)
		data.Stairs = reverseStairs(dashboard.StairSteps(movers.Gainers, dashboard.StairCount))
		data.Losers = movers.Losers
	}

	c.HTML(http.StatusOK, "index.html", data)
}

// -----------------------------------------------------------------------------

func reverseStairs(steps []dashboard.Stair) []dashboard.Stair {
	out := make([]dashboard.Stair, len(steps))
	for i, st := range steps {
		out[len(steps)-1-i] = st
	}
	return out
}

// -----------------------------------------------------------------------------

func formatPrice(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func formatSigned(v float64) string {
	return fmt.Sprintf("%+.2f", v)
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%+.2f%%", v)
}

func signClass(v float64) string {
	switch {
	case v > 0:
		return "up"
	case v < 0:
		return "down"
	default:
		return "flat"
	}
}
