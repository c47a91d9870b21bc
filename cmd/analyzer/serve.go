package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"StockAnalyzer/internal/api"
	"StockAnalyzer/internal/notifier"
	"StockAnalyzer/internal/scheduler"
	"StockAnalyzer/internal/trace"
)

var runOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API, watchlist scheduler and Telegram bot",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.RunE = runServe
	serveCmd.Flags().BoolVar(&runOnStart, "run-on-start", false, "Scan the watchlist once at startup")
}

func runServe(cmd *cobra.Command, args []string) error {
	log.Info().Str("version", version).Msg("stock analyzer starting")

	if cfg.Tracing.Enabled {
		if err := trace.Init(version, os.Stderr); err != nil {
			log.Warn().Err(err).Msg("tracing disabled")
		}
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var sender scheduler.Sender
	var tn *notifier.TelegramNotifier
	if cfg.TelegramEnabled() {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Telegram.BaseURL, cfg.Proxy)
		sender = tn
	}

	sched := scheduler.NewScheduler(ctx, a.service, sender, a.recorder, a.metrics,
		cfg.Watchlist.Symbols, cfg.Watchlist.ForecastDays)
	if cfg.Watchlist.Cron != "" {
		if err := sched.RegisterWatchlist(cfg.Watchlist.Cron); err != nil {
			return err
		}
	}
	sched.Start()
	defer sched.Stop()

	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Info().Msg("telegram polling started")
	}
	if runOnStart && len(cfg.Watchlist.Symbols) > 0 {
		log.Info().Msg("run-on-start enabled, scanning watchlist now")
		go func() {
			digest := sched.RunWatchlistNow(ctx)
			if sender != nil {
				if err := sender.SendWithRetry(ctx, digest, 3); err != nil {
					log.Error().Err(err).Msg("send startup digest")
				}
			}
		}()
	}

	srv := api.NewServer(api.ServerConfig{
		Addr:           cfg.Addr(),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		RequestTimeout: cfg.Server.RequestTimeout,
		CORSOrigins:    cfg.Server.CORSOrigins,
	}, a.service, a.metrics)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("shutdown signal received, stopping")
	case err := <-errCh:
		log.Error().Err(err).Msg("http server failed")
		cancel()
		return err
	}
	cancel()

	shutdownCtx, stop := context.WithTimeout(context.Background(), 15*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if err := trace.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("trace shutdown")
	}
	log.Info().Msg("stock analyzer stopped")
	return nil
}
