package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dastanaron/bookmarks-flatten/internal/aggregate"
	"github.com/dastanaron/bookmarks-flatten/internal/config"
	"github.com/dastanaron/bookmarks-flatten/internal/export"
	"github.com/dastanaron/bookmarks-flatten/internal/parser"
	"github.com/dastanaron/bookmarks-flatten/internal/report"

	"golang.org/x/sync/errgroup"
)

// ConvertOptions names the input and the outputs to produce
type ConvertOptions struct {
	Input      string
	FlatPath   string // tag-organized bookmark file
	FormPath   string // form-upload page
	SQLitePath string
	ShowLabels bool
}

// Validate requires an input and at least one output
func (o ConvertOptions) Validate() error {
	if o.Input == "" {
		return &ConfigurationError{Msg: "bookmarks file is required"}
	}
	if o.FlatPath == "" && o.FormPath == "" && o.SQLitePath == "" {
		return &ConfigurationError{Msg: "at least one output (--google, --gmarks or --sqlite) is required"}
	}
	return nil
}

// ConvertCommand turns a nested bookmark export into the flat outputs
type ConvertCommand struct {
	cfg    *config.Config
	logger *slog.Logger
	stdout io.Writer
}

// NewConvertCommand creates a new convert command
func NewConvertCommand(cfg *config.Config, logger *slog.Logger, stdout io.Writer) *ConvertCommand {
	return &ConvertCommand{cfg: cfg, logger: logger, stdout: stdout}
}

// Execute parses the input once, prints the summary and runs every
// requested exporter. Nothing is written unless all of them succeed.
func (c *ConvertCommand) Execute(ctx context.Context, opts ConvertOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	var (
		exporters []export.Exporter
		files     []*export.AtomicFile
	)
	defer func() {
		for _, f := range files {
			f.Close()
		}
	}()
	openOutput := func(path string) (*export.AtomicFile, error) {
		f, err := export.CreateAtomic(path)
		if err != nil {
			return nil, fmt.Errorf("output %s: %w", path, err)
		}
		files = append(files, f)
		return f, nil
	}

	if opts.FormPath != "" {
		f, err := openOutput(opts.FormPath)
		if err != nil {
			return err
		}
		exporters = append(exporters, export.NewFormUploadExporter(f))
	}
	if opts.FlatPath != "" {
		f, err := openOutput(opts.FlatPath)
		if err != nil {
			return err
		}
		exporters = append(exporters, export.NewFlatExporter(f, c.cfg.Flatten.TitleThreshold))
	}
	if opts.SQLitePath != "" {
		f, err := openOutput(opts.SQLitePath)
		if err != nil {
			return err
		}
		exporters = append(exporters, export.NewSQLiteExporter(f.TempPath()))
	}

	reporter := report.NewReporter(c.stdout, c.cfg.Output.Colors).WithLabels(opts.ShowLabels)
	sinks := []parser.Sink{reporter}
	for _, e := range exporters {
		sinks = append(sinks, e)
	}

	state, err := load(opts.Input, c.logger, sinks...)
	if err != nil {
		return err
	}

	if err := reporter.Finish(ctx, state); err != nil {
		return fmt.Errorf("report: %w", err)
	}

	if err := c.runExporters(ctx, state, exporters); err != nil {
		return err
	}

	if err := export.CommitAll(files...); err != nil {
		return err
	}
	for _, f := range files {
		c.logger.Info("output written", "path", f.Path())
	}
	return nil
}

// runExporters runs every exporter against the finished state, in
// parallel when configured
func (c *ConvertCommand) runExporters(ctx context.Context, state *aggregate.State, exporters []export.Exporter) error {
	run := func(ctx context.Context, e export.Exporter) error {
		start := time.Now()
		if err := e.Finish(ctx, state); err != nil {
			return fmt.Errorf("%s export failed: %w", e.Name(), err)
		}
		c.logger.Debug("export finished", "exporter", e.Name(), "duration", time.Since(start))
		return nil
	}

	if !c.cfg.Export.Parallel {
		for _, e := range exporters {
			if err := run(ctx, e); err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, e := range exporters {
		e := e
		g.Go(func() error {
			return run(gctx, e)
		})
	}
	return g.Wait()
}
