package commands

import (
	"context"
	"log/slog"

	"github.com/dastanaron/bookmarks-flatten/internal/service"
	"github.com/dastanaron/bookmarks-flatten/internal/ui"
)

// BrowseCommand opens the converted bookmark set in a terminal browser
type BrowseCommand struct {
	logger *slog.Logger
}

// NewBrowseCommand creates a new browse command
func NewBrowseCommand(logger *slog.Logger) *BrowseCommand {
	return &BrowseCommand{logger: logger}
}

// Execute parses input and runs the browser until the user quits
func (c *BrowseCommand) Execute(_ context.Context, input string) error {
	if input == "" {
		return &ConfigurationError{Msg: "bookmarks file is required"}
	}
	state, err := load(input, c.logger)
	if err != nil {
		return err
	}
	return ui.NewApp(service.NewCatalog(state)).Run()
}
