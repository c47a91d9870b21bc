package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"StockAnalyzer/internal/api"
	"StockAnalyzer/internal/symbols"
)

var (
	oneshotTimeout time.Duration
	searchLimit    int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <ticker|company>",
	Short: "Print the full stock report as JSON",
	Example: `  analyzer analyze AAPL
  analyzer analyze "apple inc"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), oneshotTimeout)
		defer cancel()
		rep, err := a.service.Analyze(ctx, strings.Join(args, " "), "cli")
		if err != nil {
			return err
		}
		return printJSON(api.StockBody(rep))
	},
}

var predictCmd = &cobra.Command{
	Use:   "predict <ticker|company> <days>",
	Short: "Print a price forecast as JSON",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		days, err := strconv.Atoi(args[len(args)-1])
		if err != nil {
			return fmt.Errorf("days must be an integer: %w", err)
		}
		a, err := newApp(cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), oneshotTimeout)
		defer cancel()
		p, err := a.service.Predict(ctx, strings.Join(args[:len(args)-1], " "), days)
		if err != nil {
			return err
		}
		return printJSON(api.PredictionBody(p))
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "List matching tickers from the built-in directory",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printJSON(map[string]any{
			"suggestions": symbols.Default().Search(strings.Join(args, " "), searchLimit),
		})
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd, predictCmd, searchCmd)
	for _, c := range []*cobra.Command{analyzeCmd, predictCmd} {
		c.Flags().DurationVar(&oneshotTimeout, "timeout", 60*time.Second, "Overall timeout")
	}
	searchCmd.Flags().IntVar(&searchLimit, "limit", 10, "Maximum suggestions")
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
