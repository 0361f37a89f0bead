package common

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ternarybob/banner"
)

// PrintBanner writes the startup banner to w and logs the effective settings.
func PrintBanner(w io.Writer, config *Config, logger *Logger) {
	lineColor := banner.ColorCyan
	textColor := banner.ColorBold + banner.ColorWhite
	width := 60
	hr := lineColor + strings.Repeat("═", width) + banner.ColorReset

	fmt.Fprintf(w, "\n%s\n\n", hr)
	fmt.Fprintf(w, "%s  TRENDSCORE%s\n", textColor, banner.ColorReset)
	fmt.Fprintf(w, "%s  Historical trend analytics%s\n", textColor, banner.ColorReset)
	fmt.Fprintf(w, "\n%s\n\n", hr)

	kvPad := 16
	kvLines := [][2]string{
		{"Version", GetVersion()},
		{"Build", GetBuild()},
		{"Commit", GetGitCommit()},
		{"Environment", config.Environment},
		{"Window", strconv.Itoa(config.Analysis.DefaultWindow) + "d"},
		{"Concurrency", strconv.Itoa(config.Analysis.Concurrency)},
		{"Cache", config.Storage.Market.Path},
	}
	for _, kv := range kvLines {
		fmt.Fprintf(w, "%s  %-*s %s%s\n", textColor, kvPad, kv[0], kv[1], banner.ColorReset)
	}
	fmt.Fprintf(w, "\n%s\n\n", hr)

	logger.Info().
		Str("version", GetVersion()).
		Str("environment", config.Environment).
		Int("default_window", config.Analysis.DefaultWindow).
		Int("concurrency", config.Analysis.Concurrency).
		Str("cache_path", config.Storage.Market.Path).
		Msg("trendscore started")
}
