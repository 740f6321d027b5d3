package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/Veraticus/rkmatch/pkg/config"
	"github.com/Veraticus/rkmatch/pkg/logging"
	"github.com/Veraticus/rkmatch/pkg/matcher"
	"github.com/Veraticus/rkmatch/pkg/output"
	"github.com/Veraticus/rkmatch/pkg/process"
	"github.com/Veraticus/rkmatch/pkg/report"
	"github.com/Veraticus/rkmatch/pkg/source"
	"github.com/Veraticus/rkmatch/pkg/stats"
	"github.com/Veraticus/rkmatch/pkg/watch"
)

// ErrEmptyPattern is returned when no pattern was given.
var ErrEmptyPattern = errors.New("please provide both text and a pattern")

// Dependencies holds all the dependencies for the application
type Dependencies struct {
	Config    *config.Config
	Logger    *logging.Logger
	Matcher   matcher.Matcher
	Collector *stats.BasicCollector
	Stdout    *output.StdoutSink
	Export    *output.FileSink
	Process   *process.Manager
	Load      func(ctx context.Context, path string) (source.Source, error)
	out       io.Writer
}

// NewDependencies creates all dependencies with the given configuration.
// multiSource enables per-source headers on stdout.
func NewDependencies(cfg *config.Config, stdout, stderr io.Writer, multiSource bool) (*Dependencies, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	deps := &Dependencies{
		Config:    cfg,
		Logger:    logging.New(stderr, cfg.LogFormat, logging.ParseLevel(cfg.LogLevel)),
		Matcher:   matcher.NewRabinKarp(cfg.SearchOptions()),
		Collector: &stats.BasicCollector{},
		Process:   process.NewManager(),
		Load:      source.Load,
		out:       stdout,
	}

	wrap, err := wrapFor(cfg.Style, isTerminal(stdout))
	if err != nil {
		return nil, err
	}
	deps.Stdout = output.NewStdoutSink(stdout, wrap, cfg.ShowStats, multiSource)

	if cfg.ExportPath != "" {
		deps.Export = output.NewFileSink(cfg.ExportPath)
	}

	return deps, nil
}

// Sink returns every sink a report should go to.
func (d *Dependencies) Sink() output.Sink {
	if d.Export != nil {
		return output.MultiSink{d.Stdout, d.Export}
	}
	return d.Stdout
}

// Close writes the export file, if any.
func (d *Dependencies) Close() error {
	if d.Export != nil {
		if err := d.Export.Close(); err != nil {
			return err
		}
		d.Logger.Info("export written", "path", d.Export.Path())
	}
	return nil
}

// wrapFor resolves the configured style into a span renderer.
func wrapFor(style string, tty bool) (func(string) string, error) {
	if style == config.StyleAuto {
		if tty {
			style = report.TerminalName
		} else {
			style = report.Export.Name
		}
	}
	if style == report.TerminalName {
		return report.Terminal(report.DefaultTerminalStyle()), nil
	}
	s, ok := report.StyleByName(style)
	if !ok {
		return nil, fmt.Errorf("unknown style %q", style)
	}
	return output.WrapStyle(s), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Application represents the main application
type Application struct {
	deps *Dependencies
}

// NewApplication creates a new application with the given dependencies
func NewApplication(deps *Dependencies) *Application {
	return &Application{
		deps: deps,
	}
}

// searched is the outcome for one input, kept in input order.
type searched struct {
	src source.Source
	res matcher.Result
	err error
}

// Run searches every path (or the output of command, when set) for pattern
// and reports in input order. It returns whether any source matched.
func (a *Application) Run(ctx context.Context, pattern string, paths []string, command string) (bool, error) {
	if pattern == "" {
		return false, ErrEmptyPattern
	}

	if command != "" {
		src, err := a.capture(ctx, command)
		if err != nil && src.Text == "" {
			return false, err
		}
		if err != nil {
			a.deps.Logger.Warn("command failed, searching partial output", "command", command, "error", err)
		}
		return a.report(ctx, pattern, []searched{a.search(ctx, src, pattern)})
	}

	if len(paths) == 0 {
		paths = []string{source.StdinName}
	}

	results := make([]searched, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.deps.Config.Workers)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			src, err := a.deps.Load(gctx, path)
			if err != nil {
				results[i] = searched{src: source.Source{Name: path}, err: err}
				return nil
			}
			results[i] = a.search(gctx, src, pattern)
			return nil
		})
	}
	_ = g.Wait()

	return a.report(ctx, pattern, results)
}

// Watch runs the search once and again each time one of paths changes,
// until ctx is cancelled.
func (a *Application) Watch(ctx context.Context, pattern string, paths []string) error {
	if len(paths) == 0 {
		return fmt.Errorf("--watch requires at least one file")
	}
	if _, err := a.Run(ctx, pattern, paths, ""); err != nil {
		return err
	}

	w := watch.New(watch.DefaultDebounce, func(err error) {
		a.deps.Logger.Warn("watch error", "error", err)
	})
	return w.Run(ctx, paths, func(path string) {
		a.deps.Logger.Debug("file changed", "path", path)
		if _, err := a.Run(ctx, pattern, []string{path}, ""); err != nil {
			a.deps.Logger.Error("search failed", "path", path, "error", err)
		}
	})
}

// Totals returns statistics over every search run so far.
func (a *Application) Totals() stats.Snapshot {
	return a.deps.Collector.Snapshot()
}

// PrintTotals writes the totals table to stdout.
func (a *Application) PrintTotals() {
	fmt.Fprintf(a.deps.out, "\nTotals\n%s", stats.FormatSnapshot(a.Totals()))
}

func (a *Application) capture(ctx context.Context, command string) (source.Source, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return source.Source{}, fmt.Errorf("empty command")
	}
	text, err := a.deps.Process.Capture(ctx, fields[0], fields[1:])
	return source.Source{Name: "$ " + command, Text: text}, err
}

func (a *Application) search(ctx context.Context, src source.Source, pattern string) searched {
	res, err := a.deps.Matcher.Search(src.Text, pattern)
	a.deps.Collector.RecordSearch(res, err)
	a.deps.Logger.LogSearch(ctx, src.Name, res, err)
	return searched{src: src, res: res, err: err}
}

func (a *Application) report(ctx context.Context, pattern string, results []searched) (bool, error) {
	sink := a.deps.Sink()
	found := false
	var errs []error

	for _, r := range results {
		if r.err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.src.Name, r.err))
			continue
		}
		found = found || r.res.Found()
		if err := sink.Send(output.Report{
			Source:  r.src.Name,
			Pattern: pattern,
			Text:    r.src.Text,
			Result:  r.res,
		}); err != nil {
			errs = append(errs, err)
		}
	}

	return found, errors.Join(errs...)
}
