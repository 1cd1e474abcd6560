package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"

	"MarketLens/internal/analysis"
	"MarketLens/internal/collector"
	"MarketLens/internal/logger"
	"MarketLens/internal/model"
	"MarketLens/internal/notifier"
	"MarketLens/internal/recorder"
)

// Notifier delivers formatted messages.
type Notifier interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Job describes what each scheduled run analyses.
type Job struct {
	Symbols    []string
	Range      string
	Interval   string
	Indicators []model.IndicatorName
	Settings   analysis.Settings
}

// Result is the outcome of analysing one symbol.
type Result struct {
	Symbol string
	Report *model.AnalysisReport
	Err    error
}

// Scheduler runs the watch job on a cron schedule.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Notifier  Notifier // nil disables notifications
	Recorder  recorder.Recorder
	Job       Job
	Ctx       context.Context

	mu sync.Mutex
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, n Notifier, rec recorder.Recorder, job Job) *Scheduler {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Notifier:  n,
		Recorder:  rec,
		Job:       job,
		Ctx:       ctx,
	}
}

// Register adds the watch job under spec (six fields, seconds first).
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, func() { s.RunNow() }); err != nil {
		return errors.Wrapf(err, "register watch task %q", spec)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	logger.Info("scheduler started")
}

// Stop stops the cron scheduler and waits for a running job.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	logger.Info("scheduler stopped")
}

// RunNow analyses every configured symbol. Runs never overlap.
func (s *Scheduler) RunNow() []Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger.Info("running watch task for %d symbols", len(s.Job.Symbols))
	results := make([]Result, 0, len(s.Job.Symbols))
	for _, symbol := range s.Job.Symbols {
		if s.Ctx.Err() != nil {
			break
		}
		report, err := s.analyze(symbol)
		if err != nil {
			logger.Error("analyse %s: %v", symbol, err)
			s.trySend(notifier.FormatFailure(symbol, err))
		} else {
			s.trySend(notifier.FormatAnalysisReport(report))
		}
		results = append(results, Result{Symbol: symbol, Report: report, Err: err})
	}
	return results
}

func (s *Scheduler) analyze(symbol string) (*model.AnalysisReport, error) {
	q := collector.Query{Symbol: symbol, Range: s.Job.Range, Interval: s.Job.Interval}
	report, bars, err := s.Collector.Analyze(s.Ctx, q, s.Job.Indicators, s.Job.Settings)
	if err != nil {
		return nil, err
	}
	logger.Info("%s price=%.2f rsi=%s", symbol, report.CurrentPrice, rsiText(report))

	if _, err := s.Recorder.RecordAnalysis(report); err != nil {
		logger.Error("record analysis %s: %v", symbol, err)
	}
	if err := s.Recorder.RecordBars(s.Collector.Fetcher.Name(), symbol, q.Interval, bars); err != nil {
		logger.Error("record bars %s: %v", symbol, err)
	}
	return report, nil
}

// HandleCommand processes a chat command and returns a reply.
func (s *Scheduler) HandleCommand(_ context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return help()
	}
	switch fields[0] {
	case "/analyze", "分析":
		if len(fields) < 2 {
			return "用法: /analyze SYMBOL"
		}
		symbol := strings.ToUpper(fields[1])
		report, err := s.analyze(symbol)
		if err != nil {
			return notifier.FormatFailure(symbol, err)
		}
		return notifier.FormatAnalysisReport(report)
	case "/run", "立即运行":
		s.RunNow()
		return ""
	case "/symbols", "关注列表":
		return "关注列表: " + strings.Join(s.Job.Symbols, ", ")
	default:
		return help()
	}
}

func help() string {
	return "可用命令:\n• /analyze SYMBOL\n• /run\n• /symbols"
}

func rsiText(r *model.AnalysisReport) string {
	if r.Indicators.RSI == nil || !r.Indicators.RSI.Current.Valid {
		return "n/a"
	}
	return fmt.Sprintf("%.1f", r.Indicators.RSI.Current.V)
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		logger.Error("send notification: %v", err)
	}
}
