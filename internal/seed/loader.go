package seed

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"handi-menu/internal/model"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for reading gzipped seed files from disk.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based seed loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "seed-loader").Logger(),
	}
}

// Load reads a gzipped seed file and returns its catalog.
func (l *fileLoader) Load(ctx context.Context, path string) (*Catalog, error) {
	l.logger.Info().Str("file", path).Msg("loading seed file")

	file, err := os.Open(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to open seed file")
		return nil, fmt.Errorf("failed to open seed file %s: %w", path, err)
	}
	defer file.Close()

	catalog, err := decodeCatalog(ctx, file, l.logger.With().Str("file", path).Logger())
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}

	l.logger.Info().
		Str("file", path).
		Int("items_loaded", catalog.Size()).
		Msg("seed file loaded successfully")

	return catalog, nil
}

// decodeCatalog reads gzipped JSON lines from r. Blank lines are skipped and
// lines without an id are logged and dropped.
func decodeCatalog(ctx context.Context, r io.Reader, logger zerolog.Logger) (*Catalog, error) {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		logger.Error().Err(err).Msg("failed to create gzip reader")
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	catalog := NewCatalog(64)

	scanner := bufio.NewScanner(gzipReader)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo%1000 == 0 {
			select {
			case <-ctx.Done():
				logger.Warn().Msg("seed loading cancelled")
				return nil, ctx.Err()
			default:
			}
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var item model.MenuItem
		if err := json.Unmarshal([]byte(line), &item); err != nil {
			logger.Error().Err(err).Int("line", lineNo).Msg("malformed seed line")
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if item.ID == "" {
			logger.Warn().Int("line", lineNo).Str("name", item.Name).Msg("seed line without id skipped")
			continue
		}

		if !catalog.Add(item) {
			logger.Debug().Int("line", lineNo).Str("item_id", item.ID).Msg("duplicate seed id replaced")
		}
	}

	if err := scanner.Err(); err != nil {
		logger.Error().Err(err).Msg("error reading seed data")
		return nil, fmt.Errorf("error reading seed data: %w", err)
	}

	return catalog, nil
}
