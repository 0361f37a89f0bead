package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/bobmcallan/trendscore/internal/models"
)

var (
	analyzeWindow  int
	analyzeJSON    bool
	analyzeTimeout time.Duration
)

// analyzeCmd implements 'trendscore analyze SYMBOL...'
var analyzeCmd = &cobra.Command{
	Use:   "analyze SYMBOL...",
	Short: "Score one or more assets over a decision window",
	Long: `Fetch the extended lookback for each symbol and print its trend score.
Symbols use the provider's EXCHANGE suffix, e.g. BHP.AU or AAPL.US.

A symbol that cannot be fetched or analysed is reported and does not stop the
others. The command fails only when every symbol fails.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().IntVarP(&analyzeWindow, "window", "w", 0, "Decision window in days, 1-365 (default from config)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print full results as JSON")
	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", 2*time.Minute, "Overall timeout")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), analyzeTimeout)
	defer cancel()

	results, err := a.AnalysisService.AnalyzeAssets(ctx, args, analyzeWindow)
	if err != nil && results == nil {
		return err
	}

	if analyzeJSON {
		if werr := writeJSON(cmd.OutOrStdout(), results); werr != nil {
			return werr
		}
	} else {
		writeTable(cmd.OutOrStdout(), results)
	}

	if err != nil {
		return err
	}
	if failed := countFailed(results); failed == len(results) {
		return fmt.Errorf("all %d symbols failed", failed)
	}
	return nil
}

func countFailed(results []models.AssetAnalysis) int {
	n := 0
	for _, r := range results {
		if r.Result == nil {
			n++
		}
	}
	return n
}

func writeJSON(w io.Writer, results []models.AssetAnalysis) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	return nil
}

func writeTable(w io.Writer, results []models.AssetAnalysis) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SYMBOL\tWINDOW\tPRICE\tSCORE\tTREND\tRSI\tBARS\tNOTES")
	for _, r := range results {
		if r.Result == nil {
			fmt.Fprintf(tw, "%s\t-\t-\t-\t-\t-\t-\t%s\n", r.Symbol, r.Error)
			continue
		}
		res := r.Result
		fmt.Fprintf(tw, "%s\t%dd\t%.4g\t%.2f\t%s\t%s\t%d\t%s\n",
			r.Symbol, res.WindowDays, res.CurrentPrice, res.TrendScore,
			trendLabel(res), rsiLabel(res), res.DataPoints, notes(res))
	}
	tw.Flush()
}

func trendLabel(r *models.AnalysisResult) string {
	if r.Trend == nil {
		return "-"
	}
	return r.Trend.Direction + "/" + r.Trend.Strength
}

func rsiLabel(r *models.AnalysisResult) string {
	if r.Technical == nil || r.Technical.RSI == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", r.Technical.RSI.Value)
}

func notes(r *models.AnalysisResult) string {
	var parts []string
	if !r.Lookback.Complete {
		parts = append(parts, fmt.Sprintf("partial history %d/%dd", r.Lookback.SpanDays, r.Lookback.RequestedDays))
	}
	for _, issue := range r.Issues {
		parts = append(parts, "no "+issue.Section)
	}
	return strings.Join(parts, "; ")
}
