// Package api serves the market programs over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"MarketLens/internal/analysis"
	"MarketLens/internal/chart"
	"MarketLens/internal/collector"
	"MarketLens/internal/logger"
	"MarketLens/internal/recorder"
)

// RecentLogsLimit caps GET /api/logs.
const RecentLogsLimit = 100

// Deps wires the handlers to their data sources and stores.
type Deps struct {
	// Equities serves chart and analyze requests.
	Equities collector.Fetcher
	// Exchanges builds the fetcher for trading-data requests.
	Exchanges func(ex collector.Exchange) (collector.Fetcher, error)
	// Exchange is used when a trading-data request names none.
	Exchange string
	Recorder recorder.Recorder
	Logs     recorder.LogStore
	// Cache is optional; nil serves logs straight from Logs.
	Cache    *LogCache
	Settings analysis.Settings
	ChartDir string
	Chart    chart.Options
}

type server struct {
	Deps
}

// NewRouter registers every route on a fresh gin engine.
func NewRouter(d Deps) *gin.Engine {
	if d.Recorder == nil {
		d.Recorder = recorder.NewNoopRecorder()
	}
	s := &server{Deps: d}

	r := gin.New()
	r.Use(gin.Recovery(), requestLog())

	g := r.Group("/api")
	g.POST("/chart", s.renderChart)
	g.GET("/chart/:filename", s.serveChart)
	g.POST("/analyze", s.analyze)
	g.GET("/trading-data", s.tradingData)
	g.GET("/logs", s.recentLogs)
	g.POST("/logs", s.createLog)
	g.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

func requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start).Round(time.Millisecond))
	}
}

type failure struct {
	Error string `json:"error"`
}

func fail(c *gin.Context, status int, err error) {
	logger.Warn("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.AbortWithStatusJSON(status, failure{Error: err.Error()})
}

func elapsedMs(start time.Time) int64 {
	return time.Since(start).Milliseconds()
}
