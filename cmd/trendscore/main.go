package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/bobmcallan/trendscore/internal/app"
	"github.com/bobmcallan/trendscore/internal/common"
)

var (
	configPath string
	envFile    string
	quiet      bool
)

// rootCmd is the base command for the trendscore CLI
var rootCmd = &cobra.Command{
	Use:   "trendscore",
	Short: "Historical trend analytics for market series",
	Long: `trendscore turns a daily OHLCV history into price, volume, volatility,
indicator and support/resistance metrics and a fused 0-100 trend score.

Examples:
  trendscore analyze BHP.AU --window 30
  trendscore analyze AAPL.US MSFT.US --window 7 --json
  trendscore lookback 90`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if envFile == "" {
			return nil
		}
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to load %s: %w", envFile, err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to trendscore.toml (default: $TRENDSCORE_CONFIG or beside the binary)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Dotenv file loaded before configuration (empty to skip)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress the startup banner")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), common.GetFullVersion())
	},
}

// newApp builds the App for commands that fetch market data
func newApp(cmd *cobra.Command) (*app.App, error) {
	a, err := app.NewApp(configPath)
	if err != nil {
		return nil, err
	}
	if !quiet {
		common.PrintBanner(cmd.ErrOrStderr(), a.Config, a.Logger)
	}
	return a, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
