package commands

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dastanaron/bookmarks-flatten/internal/aggregate"
	"github.com/dastanaron/bookmarks-flatten/internal/parser"
)

// ConfigurationError reports missing or conflicting command arguments
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string {
	return e.Msg
}

// load parses the bookmark file at path into a new state. Extra sinks
// follow the aggregator in the chain.
func load(path string, logger *slog.Logger, extra ...parser.Sink) (*aggregate.State, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open file: %w", err)
	}
	defer file.Close()

	start := time.Now()
	state := aggregate.NewState()
	sinks := append([]parser.Sink{aggregate.NewAggregator(state)}, extra...)
	if err := parser.NewParser(sinks...).WithLogger(logger).Parse(file); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	logger.Info("bookmarks parsed",
		"input", path,
		"records", state.Processed(),
		"addresses", state.Len(),
		"duration", time.Since(start))
	return state, nil
}
