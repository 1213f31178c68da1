// Package cli wires the bookmarks-flatten commands to cobra
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dastanaron/bookmarks-flatten/internal/commands"
	"github.com/dastanaron/bookmarks-flatten/internal/config"
	"github.com/dastanaron/bookmarks-flatten/internal/export"
)

// Exit codes returned by Execute
const (
	ExitSuccess    = 0
	ExitGeneral    = 1
	ExitUsageError = 2
)

var version = "dev"

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
}

// app holds the global flags and what initConfig builds from them
type app struct {
	stdout  io.Writer
	stderr  io.Writer
	cfgFile string
	verbose bool
	cfg     *config.Config
	logger  *slog.Logger
}

// NewRootCommand builds the command tree writing to stdout and stderr
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}
	var (
		opts           commands.ConvertOptions
		titleThreshold int
		parallel       bool
	)

	root := &cobra.Command{
		Use:   "bookmarks-flatten",
		Short: "Flatten a nested browser bookmark export into tag-based imports",
		Long: `bookmarks-flatten reads a nested-folder bookmark export (bookmarks.html) and
writes flat, tag-annotated outputs: folder names become labels and bookmarks
saved in several folders are merged into one entry.

Example usage:
  bookmarks-flatten -b bookmarks.html -g google_bookmarks.html -m flat_bookmarks.html
  bookmarks-flatten -b bookmarks.html -s bookmarks.db --labels
  bookmarks-flatten doubles -b bookmarks.html
  bookmarks-flatten browse -b bookmarks.html`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("title-threshold") {
				a.cfg.WithTitleThreshold(titleThreshold)
				if err := a.cfg.Validate(); err != nil {
					return &commands.ConfigurationError{Msg: err.Error()}
				}
			}
			if cmd.Flags().Changed("parallel") {
				a.cfg.WithParallel(parallel)
			}
			return commands.NewConvertCommand(a.cfg, a.logger, a.stdout).Execute(cmd.Context(), opts)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &commands.ConfigurationError{Msg: err.Error()}
	})

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is .bookmarks-flatten.yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")

	f := root.Flags()
	f.StringVarP(&opts.Input, "bookmarks", "b", "", "read browser bookmarks from `FILE`")
	f.StringVarP(&opts.FormPath, "google", "g", "", "save the form-upload import page to `FILE`")
	f.StringVarP(&opts.FlatPath, "gmarks", "m", "", "save the flat tag-organized bookmark file to `FILE`")
	f.StringVarP(&opts.SQLitePath, "sqlite", "s", "", "save a SQLite snapshot to `FILE`")
	f.BoolVar(&opts.ShowLabels, "labels", false, "print a table of labels after the summary")
	f.IntVar(&titleThreshold, "title-threshold", export.DefaultTitleThreshold, "title length above which the flat export repeats the title in the description")
	f.BoolVar(&parallel, "parallel", false, "run exporters concurrently")

	root.AddCommand(newBrowseCommand(a), newDoublesCommand(a), newVersionCommand())
	return root
}

func (a *app) initConfig() error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a.cfg = cfg
	a.logger = cfg.NewLogger(a.stderr, a.verbose)
	a.logger.Debug("configuration loaded",
		"title_threshold", cfg.Flatten.TitleThreshold,
		"parallel", cfg.Export.Parallel,
	)
	return nil
}

// Execute runs the command tree with args and returns the process exit code
func Execute(root *cobra.Command, args []string) int {
	root.SetArgs(args)
	cmd, err := root.ExecuteC()
	if err == nil {
		return ExitSuccess
	}

	stderr := root.ErrOrStderr()
	var cfgErr *commands.ConfigurationError
	if errors.As(err, &cfgErr) {
		fmt.Fprintf(stderr, "Error: %s\n\n%s", cfgErr.Msg, cmd.UsageString())
		return ExitUsageError
	}
	fmt.Fprintf(stderr, "Error: %s\n", err)
	return ExitGeneral
}
