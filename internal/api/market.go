package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"MarketLens/internal/analysis"
	"MarketLens/internal/chart"
	"MarketLens/internal/collector"
	"MarketLens/internal/logger"
	"MarketLens/internal/model"
	"MarketLens/internal/output"
	"MarketLens/internal/params"
)

type chartResponse struct {
	Success         bool   `json:"success"`
	ChartPath       string `json:"chartPath"`
	ChartURL        string `json:"chartUrl"`
	ExecutionTimeMs int64  `json:"executionTimeMs"`
}

type analyzeResponse struct {
	Success         bool                  `json:"success"`
	Analysis        *model.AnalysisReport `json:"analysis"`
	ExecutionTimeMs int64                 `json:"executionTimeMs"`
}

type tradingDataResponse struct {
	Success         bool               `json:"success"`
	Data            output.FetchResult `json:"data"`
	ExecutionTimeMs int64              `json:"executionTimeMs"`
}

// renderChart takes the chart program's parameters as the JSON body. The
// output path is always derived from the symbol inside ChartDir.
func (s *server) renderChart(c *gin.Context) {
	start := time.Now()
	raw, err := c.GetRawData()
	if err != nil {
		fail(c, http.StatusBadRequest, errors.Wrap(err, "read body"))
		return
	}
	p, err := params.Parse(string(raw), params.DefaultChart(start))
	if err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	p.OutputPath = ""
	if strings.TrimSpace(p.Symbol) == "" {
		fail(c, http.StatusBadRequest, errors.Wrap(params.ErrInvalidParams, "symbol is required"))
		return
	}
	from, to, err := p.Window()
	if err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	if err := chart.ValidateType(p.ChartType); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	col := collector.NewCollector(s.Equities)
	bars, err := col.Collect(c.Request.Context(), collector.Query{Symbol: p.Symbol, Interval: "1d", Start: from, End: to})
	if err != nil {
		fail(c, upstreamStatus(err), err)
		return
	}

	o := s.Chart
	o.Type = p.ChartType
	path, err := chart.Render(p.ResolveOutputPath(s.ChartDir), p.Symbol, bars, o)
	if err != nil {
		fail(c, http.StatusInternalServerError, err)
		return
	}
	if err := s.Recorder.RecordBars(s.Equities.Name(), p.Symbol, "1d", bars); err != nil {
		logger.Warn("record bars: %v", err)
	}

	c.JSON(http.StatusOK, chartResponse{
		Success:         true,
		ChartPath:       path,
		ChartURL:        "/api/chart/" + filepath.Base(path),
		ExecutionTimeMs: elapsedMs(start),
	})
}

// serveChart returns a previously rendered chart from ChartDir.
func (s *server) serveChart(c *gin.Context) {
	name := c.Param("filename")
	notFound := failure{Error: "Chart not found"}
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		c.JSON(http.StatusNotFound, notFound)
		return
	}
	path := filepath.Join(s.ChartDir, name)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		c.JSON(http.StatusNotFound, notFound)
		return
	}
	c.File(path)
}

func (s *server) analyze(c *gin.Context) {
	start := time.Now()
	raw, err := c.GetRawData()
	if err != nil {
		fail(c, http.StatusBadRequest, errors.Wrap(err, "read body"))
		return
	}
	p, err := params.Parse(string(raw), params.DefaultAnalyze())
	if err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	if err := p.Validate(); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	col := collector.NewCollector(s.Equities)
	q := collector.Query{Symbol: p.Symbol, Range: p.Period, Interval: p.Interval}
	report, bars, err := col.Analyze(c.Request.Context(), q, analysis.ParseIndicators(p.Indicators), s.Settings)
	if err != nil {
		fail(c, upstreamStatus(err), err)
		return
	}
	if _, err := s.Recorder.RecordAnalysis(report); err != nil {
		logger.Warn("record analysis: %v", err)
	}
	if err := s.Recorder.RecordBars(s.Equities.Name(), p.Symbol, p.Interval, bars); err != nil {
		logger.Warn("record bars: %v", err)
	}

	c.JSON(http.StatusOK, analyzeResponse{Success: true, Analysis: report, ExecutionTimeMs: elapsedMs(start)})
}

// tradingData mirrors the fetch program with query parameters.
func (s *server) tradingData(c *gin.Context) {
	start := time.Now()
	p := params.DefaultFetch()
	if s.Exchange != "" {
		p.Exchange = s.Exchange
	}
	p.Exchange = c.DefaultQuery("exchange", p.Exchange)
	p.Symbol = c.DefaultQuery("symbol", p.Symbol)
	p.Timeframe = c.DefaultQuery("timeframe", p.Timeframe)
	if v, ok := c.GetQuery("limit"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			fail(c, http.StatusBadRequest, errors.Wrapf(params.ErrInvalidParams, "limit %q is not an integer", v))
			return
		}
		p.Limit = n
	}
	if err := p.Validate(); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	ex, err := collector.ParseExchange(p.Exchange)
	if err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	fetcher, err := s.Exchanges(ex)
	if err != nil {
		fail(c, http.StatusInternalServerError, err)
		return
	}

	bars, err := fetcher.FetchBars(c.Request.Context(), collector.Query{Symbol: p.Symbol, Interval: p.Timeframe, Limit: p.Limit})
	if err != nil {
		fail(c, upstreamStatus(err), err)
		return
	}
	if err := s.Recorder.RecordBars(string(ex), p.Symbol, p.Timeframe, bars); err != nil {
		logger.Warn("record bars: %v", err)
	}

	c.JSON(http.StatusOK, tradingDataResponse{
		Success:         true,
		Data:            output.NewFetchResult(string(ex), p.Symbol, p.Timeframe, bars),
		ExecutionTimeMs: elapsedMs(start),
	})
}

// upstreamStatus maps data-source failures: 404 for an empty answer, 502 otherwise.
func upstreamStatus(err error) int {
	switch {
	case errors.Is(err, collector.ErrNoData):
		return http.StatusNotFound
	case errors.Is(err, params.ErrInvalidParams):
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}
