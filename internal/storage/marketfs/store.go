// Package marketfs implements file-based storage for fetched market series.
package marketfs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bobmcallan/trendscore/internal/common"
	"github.com/bobmcallan/trendscore/internal/interfaces"
	"github.com/bobmcallan/trendscore/internal/models"
)

// ErrNotFound is returned when no snapshot is stored for a symbol
var ErrNotFound = errors.New("series not found")

// Store provides file-based JSON storage for series snapshots, one file per symbol.
type Store struct {
	basePath  string
	seriesDir string
	logger    *common.Logger
}

var _ interfaces.SeriesStore = (*Store)(nil)

// NewMarketStore creates a new market file store.
func NewMarketStore(logger *common.Logger, path string) (*Store, error) {
	seriesDir := filepath.Join(path, "series")
	if err := os.MkdirAll(seriesDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create market store path %s: %w", seriesDir, err)
	}

	logger.Debug().Str("path", path).Msg("MarketFS store opened")
	return &Store{
		basePath:  path,
		seriesDir: seriesDir,
		logger:    logger,
	}, nil
}

// DataPath returns the base data path.
func (s *Store) DataPath() string {
	return s.basePath
}

// GetSeries returns the stored snapshot for symbol, or ErrNotFound
func (s *Store) GetSeries(_ context.Context, symbol string) (*models.SeriesSnapshot, error) {
	var snap models.SeriesSnapshot
	if err := readJSON(s.seriesDir, symbol, &snap); err != nil {
		return nil, fmt.Errorf("series for '%s': %w", symbol, err)
	}
	return &snap, nil
}

// SaveSeries writes a snapshot atomically, replacing any previous one
func (s *Store) SaveSeries(_ context.Context, snap *models.SeriesSnapshot) error {
	if snap.Symbol == "" {
		return errors.New("snapshot has no symbol")
	}
	if err := writeJSON(s.seriesDir, snap.Symbol, snap); err != nil {
		return fmt.Errorf("failed to save series: %w", err)
	}
	s.logger.Debug().Str("symbol", snap.Symbol).Int("bars", len(snap.Bars)).Msg("Series saved")
	return nil
}

// DeleteSeries removes the snapshot for symbol. Missing snapshots are not an error.
func (s *Store) DeleteSeries(_ context.Context, symbol string) error {
	if err := os.Remove(filePath(s.seriesDir, symbol)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete series %s: %w", symbol, err)
	}
	return nil
}

// Purge removes all stored snapshots and returns the count.
func (s *Store) Purge(_ context.Context) (int, error) {
	keys, err := listKeys(s.seriesDir)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, key := range keys {
		if err := os.Remove(filepath.Join(s.seriesDir, key+".json")); err == nil {
			count++
		}
	}
	s.logger.Info().Int("count", count).Msg("Series cache purged")
	return count, nil
}

// Close is a no-op for file-based storage.
func (s *Store) Close() error {
	return nil
}

// --- helpers ---

func sanitizeKey(key string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "..", "_")
	return r.Replace(key)
}

func filePath(dir, key string) string {
	return filepath.Join(dir, sanitizeKey(key)+".json")
}

func readJSON(dir, key string, dest interface{}) error {
	path := filePath(dir, key)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(data) == 0 {
		return fmt.Errorf("'%s' is empty", key)
	}
	return json.Unmarshal(data, dest)
}

// writeJSON writes via a temp file and rename so readers never see a partial file
func writeJSON(dir, key string, data interface{}) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	target := filePath(dir, key)
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	jsonData = append(jsonData, '\n')

	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(jsonData); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

func listKeys(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	var keys []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasSuffix(name, ".json") && !strings.HasPrefix(name, ".tmp-") {
			keys = append(keys, strings.TrimSuffix(name, ".json"))
		}
	}
	return keys, nil
}
