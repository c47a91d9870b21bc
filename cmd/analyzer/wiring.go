package main

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"StockAnalyzer/internal/analyzer"
	"StockAnalyzer/internal/collector"
	"StockAnalyzer/internal/config"
	"StockAnalyzer/internal/metrics"
	"StockAnalyzer/internal/recorder"
)

// app holds the components shared by every command.
type app struct {
	service  *analyzer.Service
	metrics  *metrics.Metrics
	recorder recorder.Recorder
}

func (a *app) Close() {
	if err := a.recorder.Close(); err != nil {
		log.Warn().Err(err).Msg("close recorder")
	}
}

func newFetcher(c *config.Config) (collector.Fetcher, error) {
	opts := collector.HTTPOptions{
		Timeout:      c.DataSource.Timeout,
		ProxyURL:     c.Proxy,
		RateLimitRPS: c.DataSource.RateLimitRPS,
	}
	switch c.DataSource.Provider {
	case "yahoo":
		return collector.NewYahooFetcher(c.DataSource.BaseURL, opts), nil
	case "rest":
		return collector.NewRESTFetcher(c.DataSource.BaseURL, c.DataSource.APIKey, opts), nil
	case "mock":
		return &collector.MockFetcher{Price: c.DataSource.MockPrice}, nil
	default:
		return nil, fmt.Errorf("unknown data source provider %q", c.DataSource.Provider)
	}
}

func newRecorder(c *config.Config) recorder.Recorder {
	if c.Database.SQLitePath == "" {
		return recorder.NewNoopRecorder()
	}
	sr, err := recorder.NewSQLiteRecorder(c.Database.SQLitePath)
	if err != nil {
		log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
		return recorder.NewNoopRecorder()
	}
	return sr
}

func newApp(c *config.Config) (*app, error) {
	fetcher, err := newFetcher(c)
	if err != nil {
		return nil, err
	}
	log.Info().Str("source", fetcher.Name()).Msg("data source selected")

	m := metrics.New()
	rec := newRecorder(c)
	svc := analyzer.New(collector.NewCollector(fetcher, m),
		analyzer.WithRecorder(rec),
		analyzer.WithMetrics(m))
	return &app{service: svc, metrics: m, recorder: rec}, nil
}
