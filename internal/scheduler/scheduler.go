package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"StockAnalyzer/internal/analyzer"
	"StockAnalyzer/internal/metrics"
	"StockAnalyzer/internal/notifier"
	"StockAnalyzer/internal/recorder"
)

const (
	sendRetries  = 3
	historyLimit = 10
	sourceCron   = "watchlist"
	sourceChat   = "telegram"
)

// Sender delivers a formatted message.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler runs the watchlist scan on a cron schedule and answers chat commands.
type Scheduler struct {
	Cron         *cron.Cron
	Service      *analyzer.Service
	Notifier     Sender // nil disables delivery
	Recorder     recorder.Recorder
	Metrics      *metrics.Metrics
	Ctx          context.Context
	Symbols      []string
	ForecastDays int
	Now          func() time.Time
}

// NewScheduler creates a new Scheduler. n may be nil.
func NewScheduler(ctx context.Context, svc *analyzer.Service, n Sender, rec recorder.Recorder, m *metrics.Metrics, symbols []string, forecastDays int) *Scheduler {
	if forecastDays == 0 {
		forecastDays = analyzer.DefaultHorizon
	}
	return &Scheduler{
		Cron:         cron.New(cron.WithSeconds()),
		Service:      svc,
		Notifier:     n,
		Recorder:     rec,
		Metrics:      m,
		Ctx:          ctx,
		Symbols:      symbols,
		ForecastDays: forecastDays,
		Now:          time.Now,
	}
}

// RegisterWatchlist schedules the watchlist scan. expr uses the six-field
// cron format with seconds.
func (s *Scheduler) RegisterWatchlist(expr string) error {
	if _, err := s.Cron.AddFunc(expr, s.watchlistTask); err != nil {
		return fmt.Errorf("register watchlist task: %w", err)
	}
	log.Info().Str("cron", expr).Strs("symbols", s.Symbols).Msg("watchlist scheduled")
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for a running scan to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

// RunWatchlistNow scans the watchlist immediately and returns the digest
// without sending it.
func (s *Scheduler) RunWatchlistNow(ctx context.Context) string {
	return s.scan(ctx)
}

func (s *Scheduler) watchlistTask() {
	log.Info().Msg("running watchlist task")
	s.trySend(s.scan(s.Ctx))
}

// scan analyzes every symbol in order, records the run and returns the digest.
// A failed symbol is listed in the digest and never aborts the scan.
func (s *Scheduler) scan(ctx context.Context) string {
	start := time.Now()
	reports := make([]*analyzer.Report, 0, len(s.Symbols))
	var failed []string

	for _, sym := range s.Symbols {
		if ctx.Err() != nil {
			break
		}
		rep, err := s.Service.AnalyzeHorizon(ctx, sym, sourceCron, s.ForecastDays)
		if err != nil {
			log.Error().Str("symbol", sym).Err(err).Msg("watchlist analysis failed")
			failed = append(failed, sym)
			continue
		}
		log.Info().Str("ticker", rep.Ticker).Str("signal", string(rep.Signal.Label)).
			Float64("strength", rep.Signal.Strength).Msg("watchlist symbol analyzed")
		reports = append(reports, rep)
	}

	run := &recorder.WatchlistRun{
		Time:     s.Now(),
		Symbols:  len(s.Symbols),
		Failures: len(failed),
		Duration: time.Since(start),
	}
	if err := s.Recorder.RecordWatchlistRun(run); err != nil {
		log.Error().Err(err).Msg("record watchlist run failed")
	}
	s.Metrics.WatchlistRun()
	log.Info().Int("symbols", run.Symbols).Int("failures", run.Failures).
		Dur("duration", run.Duration).Msg("watchlist scan finished")

	return notifier.FormatDigest(reports, failed, run.Time)
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.FormatHelp()
	}
	// Group chats address commands as /cmd@BotName.
	name, _, _ := strings.Cut(strings.ToLower(fields[0]), "@")
	args := fields[1:]

	switch name {
	case "/signal", "/analyze":
		if len(args) == 0 {
			return notifier.FormatError("usage: /signal <ticker|name>")
		}
		rep, err := s.Service.Analyze(ctx, strings.Join(args, " "), sourceChat)
		if err != nil {
			return notifier.FormatError(err.Error())
		}
		return notifier.FormatReport(rep)

	case "/predict":
		if len(args) == 0 {
			return notifier.FormatError("usage: /predict <ticker|name> [days]")
		}
		days := analyzer.DefaultHorizon
		if len(args) > 1 {
			if n, err := strconv.Atoi(args[len(args)-1]); err == nil {
				days = n
				args = args[:len(args)-1]
			}
		}
		p, err := s.Service.Predict(ctx, strings.Join(args, " "), days)
		if err != nil {
			return notifier.FormatError(err.Error())
		}
		return notifier.FormatPrediction(p)

	case "/scan":
		return s.scan(ctx)

	case "/history":
		if len(args) == 0 {
			return notifier.FormatError("usage: /history <ticker>")
		}
		ticker := s.Service.Resolve(strings.Join(args, " "))
		recs, err := s.Recorder.History(ticker, historyLimit)
		if err != nil {
			log.Error().Str("ticker", ticker).Err(err).Msg("load history failed")
			return notifier.FormatError("history unavailable")
		}
		return notifier.FormatHistory(ticker, recs)

	default:
		return notifier.FormatHelp()
	}
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, sendRetries); err != nil {
		log.Error().Err(err).Msg("send notification failed")
	}
}
