package config

import (
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/mattn/go-isatty"
)

// Config holds all application configuration settings
type Config struct {
	// Directory settings
	RootDir string

	// Filter settings
	Pattern          string
	MimeTypes        string
	ExcludeMimeTypes string
	ShowHidden       bool
	WhitelistEnabled bool
	Whitelist        string

	// Listing settings
	Recursive    bool
	UseGitignore bool
	CustomIgnore string
	Concurrent   bool
	MaxWorkers   int
	ShowProgress bool
	Timeout      time.Duration

	// Output format
	LongFormat bool
	JSONOutput bool
	OutputFile string

	// Logging settings
	Verbose     bool
	Quiet       bool
	LogLevel    string
	NoColor     bool
	UseColors   bool
	ShowSkipped bool

	// Version info
	ShowVersion bool
	Version     string
}

// New creates a new Config with values from command-line flags
func New() *Config {
	c := &Config{
		Version: "1.0.0", // Update this when releasing new versions
	}

	// Parse command-line flags
	flag.StringVar(&c.RootDir, "dir", ".", "The directory to list")
	flag.StringVar(&c.Pattern, "pattern", "", "Name filter: substring, or glob when it contains '*', '?' or '['")
	flag.StringVar(&c.MimeTypes, "mime", "", "Only list entries with these MIME types (comma-separated, e.g., 'text/plain,image/png')")
	flag.StringVar(&c.ExcludeMimeTypes, "exclude-mime", "", "Never list entries with these MIME types (comma-separated)")
	flag.BoolVar(&c.ShowHidden, "show-hidden", true, "Show hidden entries (starting with '.')")
	flag.BoolVar(&c.WhitelistEnabled, "whitelist-enabled", false, "Show whitelisted hidden entries even when -show-hidden=false")
	flag.StringVar(&c.Whitelist, "whitelist", "", "Hidden entries to always show (comma-separated names or globs)")
	flag.BoolVar(&c.Recursive, "recursive", false, "List the whole tree instead of a single directory")
	flag.BoolVar(&c.UseGitignore, "gitignore", false, "Exclude entries matched by .gitignore rules")
	flag.StringVar(&c.CustomIgnore, "ignore", "", "Custom exclude patterns (comma-separated, gitignore syntax)")
	flag.BoolVar(&c.Concurrent, "concurrent", false, "Enable concurrent MIME type resolution")
	flag.IntVar(&c.MaxWorkers, "workers", runtime.NumCPU(), "Max number of concurrent workers (defaults to number of CPU cores)")
	flag.BoolVar(&c.ShowProgress, "progress", false, "Show progress information")
	flag.DurationVar(&c.Timeout, "timeout", 0, "Maximum execution time (e.g., '30s', '5m')")
	flag.BoolVar(&c.LongFormat, "long", false, "Long format: MIME type, size and modification time per entry")
	flag.BoolVar(&c.JSONOutput, "json", false, "Output results in JSON format")
	flag.StringVar(&c.OutputFile, "output", "", "Output to file instead of stdout")
	flag.BoolVar(&c.Verbose, "verbose", false, "Enable verbose logging (DEBUG, WARN, ERROR)")
	flag.BoolVar(&c.Quiet, "quiet", false, "Suppress INFO messages (only show WARN, ERROR)")
	flag.StringVar(&c.LogLevel, "log-level", "", "Set the logging level (DEBUG, INFO, WARN, ERROR)")
	flag.BoolVar(&c.NoColor, "no-color", false, "Disable color output")
	flag.BoolVar(&c.ShowSkipped, "show-skipped", false, "Show a list of skipped entries and reasons at the end")
	flag.BoolVar(&c.ShowVersion, "version", false, "Show version information")

	flag.Parse()

	// Determine if colors should be used
	c.UseColors = !c.NoColor && isatty.IsTerminal(os.Stdout.Fd()) && c.OutputFile == "" && !c.JSONOutput

	return c
}
