package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"

	"github.com/Veraticus/rkmatch/pkg/config"
)

// Exit codes follow grep: 0 when a match was found, 1 when none was, 2 on error.
const (
	exitMatch   = 0
	exitNoMatch = 1
	exitError   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("rkmatch", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		configPath string
		ignoreCase bool
		base       int64
		modulus    int64
		style      string
		export     string
		execCmd    string
		watchMode  bool
		showStats  bool
		workers    int
		logLevel   string
		help       bool
	)

	fs.StringVar(&configPath, "config", "", "Path to config file")
	fs.BoolVarP(&ignoreCase, "ignore-case", "i", false, "Match case-insensitively")
	fs.Int64Var(&base, "base", 0, "Hash base (default 256)")
	fs.Int64Var(&modulus, "modulus", 0, "Hash modulus, should be prime (default 101)")
	fs.StringVar(&style, "style", "", "Highlight style: auto, terminal, display or export")
	fs.StringVar(&export, "export", "", "Write export-style highlighted text to this file")
	fs.StringVar(&execCmd, "exec", "", "Search the output of this command instead of files")
	fs.BoolVar(&watchMode, "watch", false, "Search again whenever a file changes")
	fs.BoolVar(&showStats, "stats", true, "Print search statistics")
	fs.IntVar(&workers, "workers", 0, "Number of files searched concurrently")
	fs.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")
	fs.BoolVarP(&help, "help", "h", false, "Show help message")

	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if help {
		printUsage(stdout, fs)
		return exitMatch
	}
	if fs.NArg() < 1 {
		printUsage(stderr, fs)
		return exitError
	}
	pattern, paths := fs.Arg(0), fs.Args()[1:]

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return exitError
	}

	// Override config with command line flags
	if fs.Changed("ignore-case") {
		cfg.CaseSensitive = !ignoreCase
	}
	if fs.Changed("base") {
		cfg.Base = base
	}
	if fs.Changed("modulus") {
		cfg.Modulus = modulus
	}
	if fs.Changed("style") {
		cfg.Style = style
	}
	if fs.Changed("export") {
		cfg.ExportPath = export
	}
	if fs.Changed("stats") {
		cfg.ShowStats = showStats
	}
	if fs.Changed("workers") {
		cfg.Workers = workers
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = logLevel
	}

	deps, err := NewDependencies(cfg, stdout, stderr, len(paths) > 1)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	app := NewApplication(deps)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if watchMode {
		err := app.Watch(ctx, pattern, paths)
		if cerr := deps.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitError
		}
		return exitMatch
	}

	found, err := app.Run(ctx, pattern, paths, execCmd)
	if cerr := deps.Close(); cerr != nil {
		err = errors.Join(err, cerr)
	}
	if cfg.ShowStats && len(paths) > 1 {
		app.PrintTotals()
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	if !found {
		return exitNoMatch
	}
	return exitMatch
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "rkmatch - Rabin-Karp pattern search with highlighted output")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage: rkmatch [OPTIONS] PATTERN [FILE...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Reads standard input when no FILE is given or FILE is \"-\".")
	fmt.Fprintln(w, "Files ending in .gz, .zst or .lz4 are decompressed first.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprint(w, fs.FlagUsages())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment Variables:")
	fmt.Fprintln(w, "  RKMATCH_CONFIG          Path to config file")
	fmt.Fprintln(w, "  RKMATCH_CASE_SENSITIVE  Match case-sensitively (true/false)")
	fmt.Fprintln(w, "  RKMATCH_BASE            Hash base")
	fmt.Fprintln(w, "  RKMATCH_MODULUS         Hash modulus")
	fmt.Fprintln(w, "  RKMATCH_STYLE           Highlight style")
	fmt.Fprintln(w, "  RKMATCH_EXPORT          Export file path")
	fmt.Fprintln(w, "  RKMATCH_STATS           Print statistics (true/false)")
	fmt.Fprintln(w, "  RKMATCH_WORKERS         Concurrent files")
	fmt.Fprintln(w, "  RKMATCH_LOG_LEVEL       Log level")
	fmt.Fprintln(w, "  RKMATCH_LOG_FORMAT      Log format (text/json)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Configuration file: ~/.config/rkmatch/config.yaml")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit status is 0 if a match was found, 1 if none was and 2 on error.")
}
