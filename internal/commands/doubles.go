package commands

import (
	"context"
	"io"
	"log/slog"

	"github.com/dastanaron/bookmarks-flatten/internal/report"
)

// DoublesCommand lists addresses bookmarked more than once
type DoublesCommand struct {
	logger    *slog.Logger
	stdout    io.Writer
	useColors bool
}

// NewDoublesCommand creates a new doubles command
func NewDoublesCommand(logger *slog.Logger, stdout io.Writer, useColors bool) *DoublesCommand {
	return &DoublesCommand{logger: logger, stdout: stdout, useColors: useColors}
}

// Execute prints the duplicate table followed by the summary
func (c *DoublesCommand) Execute(_ context.Context, input string) error {
	if input == "" {
		return &ConfigurationError{Msg: "bookmarks file is required"}
	}
	state, err := load(input, c.logger)
	if err != nil {
		return err
	}

	r := report.NewReporter(c.stdout, c.useColors)
	if err := r.Duplicates(state); err != nil {
		return err
	}
	r.Summary(state)
	return nil
}
