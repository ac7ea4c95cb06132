// Package app wires configuration, filter, lister and output together
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/bethropolis/dir-lens/internal/config"
	"github.com/bethropolis/dir-lens/internal/lister"
	"github.com/bethropolis/dir-lens/internal/logger"
	"github.com/bethropolis/dir-lens/internal/printer"
	"github.com/bethropolis/dir-lens/internal/setup"
	"github.com/bethropolis/dir-lens/internal/summary"
	"github.com/fatih/color"
)

// App encapsulates the main application functionality
type App struct {
	cfg    *config.Config
	log    *logger.Logger
	Output io.Writer
}

// New creates a new App instance
func New(cfg *config.Config) *App {
	// Configure color globally
	color.NoColor = !cfg.UseColors

	// Set up output destination
	var output io.Writer = os.Stdout
	if cfg.OutputFile != "" {
		file, err := os.Create(cfg.OutputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: Failed to create output file: %v\n", err)
			os.Exit(1)
		}
		// Note: file will be closed by main function
		output = file
	}

	// Set up logger
	log := logger.New(os.Stderr, cfg.Verbose, cfg.UseColors)

	// Apply log level if specified (overrides verbose/quiet flags)
	if cfg.LogLevel != "" {
		log.SetLevel(cfg.LogLevel)
	} else if cfg.Quiet {
		log.WithLevel(logger.LevelWarn)
	}

	return &App{
		cfg:    cfg,
		log:    log,
		Output: output,
	}
}

// Run executes the main application logic
func (a *App) Run() {
	startTime := time.Now()

	// Show version and exit if requested
	if a.cfg.ShowVersion {
		fmt.Printf("dir-lens version %s\n", a.cfg.Version)
		os.Exit(0)
	}

	// Handle timeout if specified
	var ctx context.Context
	var cancel context.CancelFunc

	if a.cfg.Timeout > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), a.cfg.Timeout)
	} else {
		ctx, cancel = context.WithCancel(context.Background())
	}
	defer cancel()

	// Helper for info messages, suppressed by quiet flag
	infoLog := func(format string, args ...interface{}) {
		if !a.cfg.Quiet {
			a.log.Info(format, args...)
		}
	}

	if a.log.Level() <= logger.LevelDebug {
		a.log.Debug("Verbose mode enabled")
		a.log.Debug("Color output: %v", a.cfg.UseColors)
		a.log.Debug("Directory: %s", a.cfg.RootDir)
		a.log.Debug("Recursive: %v", a.cfg.Recursive)
		a.log.Debug("Concurrent mode: %v (workers: %d)", a.cfg.Concurrent, a.cfg.MaxWorkers)
		a.log.Debug("Filter settings: pattern=%q, mime=%q, exclude-mime=%q",
			a.cfg.Pattern, a.cfg.MimeTypes, a.cfg.ExcludeMimeTypes)
		a.log.Debug("Hidden settings: show=%v, whitelist-enabled=%v, whitelist=%q",
			a.cfg.ShowHidden, a.cfg.WhitelistEnabled, a.cfg.Whitelist)
	}

	// --- Directory validation ---
	absRootDir, err := filepath.Abs(a.cfg.RootDir)
	if err != nil {
		a.log.Error("Invalid root directory path '%s': %v", a.cfg.RootDir, err)
		os.Exit(1)
	}

	dirInfo, err := os.Stat(absRootDir)
	if err != nil {
		if os.IsNotExist(err) {
			a.log.Error("Root directory '%s' not found.", absRootDir)
		} else {
			a.log.Error("Could not access root directory '%s': %v", absRootDir, err)
		}
		os.Exit(1)
	}
	if !dirInfo.IsDir() {
		a.log.Error("Specified path '%s' is not a directory.", absRootDir)
		os.Exit(1)
	}

	// --- Build the item filter ---
	itemFilter := setup.BuildFilter(a.cfg, infoLog)
	if !itemFilter.HasSetFilters() {
		a.log.Debug("No filters active; every entry will be listed.")
	}

	// --- Configure the lister ---
	matcher, listerOptions, err := setup.ConfigureLister(ctx, a.cfg, a.log, infoLog)
	if err != nil {
		a.log.Error("%v", err)
		os.Exit(1)
	}

	// --- Create the printer ---
	p := printer.New()
	p.WithOutput(a.Output)
	p.WithColors(a.cfg.UseColors)
	p.WithLongFormat(a.cfg.LongFormat)

	if a.cfg.JSONOutput {
		a.log.Debug("JSON output mode enabled")
		p.WithJSON(true)
		// Disable colors in JSON mode regardless of other settings
		p.WithColors(false)
	}

	// --- Run the listing ---
	infoLog("Listing directory: %s", absRootDir)
	if a.cfg.Concurrent {
		infoLog("Using concurrent MIME resolution with %d workers.", a.cfg.MaxWorkers)
	}

	result, err := lister.List(absRootDir, itemFilter, matcher, listerOptions...)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			a.log.Error("Timeout of %v reached.", a.cfg.Timeout)
		} else {
			a.log.Error("Critical error during listing: %v", err)
		}
		os.Exit(1)
	}

	if a.cfg.ShowProgress {
		// Terminate the progress line before regular output
		fmt.Fprintln(os.Stderr)
	}

	if err := p.PrintItems(result.Items); err != nil {
		a.log.Error("Output error: %v", err)
		os.Exit(1)
	}

	// --- Show results summary ---
	summary.DisplayResults(a.log, p.GetCount(), time.Since(startTime), a.cfg.Quiet)

	if a.cfg.ShowSkipped {
		summary.DisplaySkippedItems(a.log, result.Skipped, os.Stderr, a.cfg.Quiet)
	}
}
