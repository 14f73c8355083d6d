package source

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/iho/trxrecords/internal/usecase"
)

// Resolve picks the import source for path. An empty path, or one that does
// not name a readable regular file, falls back to the embedded data set with
// a warning. It returns false when there is nothing to import at all.
func Resolve(path string, logger zerolog.Logger) (usecase.ImportSource, bool) {
	if path != "" {
		info, err := os.Stat(path)
		if err == nil && info.Mode().IsRegular() {
			return NewFileSource(path), true
		}

		event := logger.Warn().Str("path", path)
		if err != nil {
			event = event.Err(err)
		}
		event.Msg("import file unavailable, using embedded data set")
	}

	embedded := NewEmbeddedSource()
	if embedded.Empty() {
		logger.Info().Msg("no import source available, skipping import")
		return nil, false
	}

	return embedded, true
}
