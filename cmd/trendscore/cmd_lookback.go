package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/bobmcallan/trendscore/internal/analytics"
)

// lookbackCmd implements 'trendscore lookback N'
var lookbackCmd = &cobra.Command{
	Use:   "lookback DAYS",
	Short: "Show how much history a decision window needs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		window, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("window must be an integer: %w", err)
		}
		if err := analytics.ValidateWindow(window); err != nil {
			return err
		}

		end := time.Now().UTC().Truncate(24 * time.Hour)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "window:      %d days\n", window)
		fmt.Fprintf(out, "multiplier:  %dx\n", analytics.LookbackMultiplier(window))
		fmt.Fprintf(out, "lookback:    %d calendar days\n", analytics.LookbackDays(window))
		fmt.Fprintf(out, "fetch from:  %s\n", analytics.LookbackStart(end, window).Format("2006-01-02"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lookbackCmd)
}
