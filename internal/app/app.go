// Package app wires configuration, the market-data loader, the series cache and
// the analysis service into a single App used by cmd/trendscore.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bobmcallan/trendscore/internal/clients/eodhd"
	"github.com/bobmcallan/trendscore/internal/common"
	"github.com/bobmcallan/trendscore/internal/interfaces"
	"github.com/bobmcallan/trendscore/internal/services/analysis"
	"github.com/bobmcallan/trendscore/internal/storage/marketfs"
)

// App holds all initialized services, clients, and storage.
type App struct {
	Config          *common.Config
	Logger          *common.Logger
	Store           *marketfs.Store
	Loader          interfaces.SeriesLoader
	AnalysisService interfaces.AnalysisService
	StartupTime     time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// ResolveConfigPath returns configPath, or TRENDSCORE_CONFIG, or trendscore.toml
// beside the binary, falling back to config/trendscore.toml for development.
func ResolveConfigPath(configPath string) string {
	if configPath == "" {
		configPath = os.Getenv("TRENDSCORE_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(getBinaryDir(), "trendscore.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/trendscore.toml"
		}
	}
	return configPath
}

// NewApp loads configuration and initializes the EODHD loader behind the file
// cache. configPath may be empty, in which case ResolveConfigPath is used.
func NewApp(configPath string) (*App, error) {
	config, err := common.LoadConfig(ResolveConfigPath(configPath))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if missing := config.ValidateRequired(); len(missing) > 0 {
		return nil, fmt.Errorf("missing required configuration: %v (set EODHD_API_KEY)", missing)
	}

	logger := common.NewLoggerFromConfig(config.Logging)
	client := eodhd.NewClientFromConfig(config.Clients.EODHD, logger)
	return NewAppWithLoader(config, logger, client)
}

// NewAppWithLoader initializes the App around an arbitrary upstream loader
func NewAppWithLoader(config *common.Config, logger *common.Logger, upstream interfaces.SeriesLoader) (*App, error) {
	startupStart := time.Now()

	store, err := marketfs.NewMarketStore(logger, config.Storage.Market.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	loader := marketfs.NewCachingLoader(upstream, store, config.Storage.Market.GetCacheTTL(), logger)
	analysisService := analysis.NewService(loader, config.Analysis, logger)

	a := &App{
		Config:          config,
		Logger:          logger,
		Store:           store,
		Loader:          loader,
		AnalysisService: analysisService,
		StartupTime:     startupStart,
	}

	logger.Debug().Dur("startup", time.Since(startupStart)).Msg("App initialized")
	return a, nil
}

// Close releases all resources held by the App.
func (a *App) Close() {
	if a.Store != nil {
		a.Store.Close()
		a.Store = nil
	}
}
