// Package printer handles output formatting and display
package printer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/bethropolis/dir-lens/internal/lister"
	"github.com/fatih/color"
)

// Printer formats listing entries and writes them to the configured output
type Printer struct {
	output     io.Writer
	count      int64
	useColors  bool
	longFormat bool
	jsonOutput bool

	dirColor    *color.Color
	hiddenColor *color.Color
}

// New creates a new Printer with default settings
func New() *Printer {
	return &Printer{
		output:      os.Stdout,
		useColors:   true,
		dirColor:    color.New(color.FgBlue, color.Bold),
		hiddenColor: color.New(color.Faint),
	}
}

// WithOutput sets the output destination
func (p *Printer) WithOutput(w io.Writer) *Printer {
	p.output = w
	return p
}

// WithColors enables or disables colored output
func (p *Printer) WithColors(enabled bool) *Printer {
	p.useColors = enabled
	return p
}

// WithLongFormat enables the long listing format (type, size, mtime columns)
func (p *Printer) WithLongFormat(enabled bool) *Printer {
	p.longFormat = enabled
	return p
}

// WithJSON enables JSON output mode
func (p *Printer) WithJSON(enabled bool) *Printer {
	p.jsonOutput = enabled
	return p
}

// PrintItems writes all entries in the configured format
func (p *Printer) PrintItems(items []lister.Item) error {
	if p.jsonOutput {
		return p.printJSON(items)
	}

	for _, it := range items {
		if p.longFormat {
			p.printLong(it)
		} else {
			p.printPlain(it)
		}
		p.count++
	}
	return nil
}

func (p *Printer) printPlain(it lister.Item) {
	fmt.Fprintf(p.output, "%s\n", p.decorate(it))
}

func (p *Printer) printLong(it lister.Item) {
	fmt.Fprintf(p.output, "%-28s %10d  %s  %s\n",
		it.Mime,
		it.SizeBytes,
		it.Modified.Format("2006-01-02 15:04"),
		p.decorate(it),
	)
}

// decorate returns the display path, colored by entry kind when enabled.
func (p *Printer) decorate(it lister.Item) string {
	name := it.RelPath
	if it.Dir {
		name += string(os.PathSeparator)
	}
	if !p.useColors {
		return name
	}
	switch {
	case it.Dir:
		return p.dirColor.Sprint(name)
	case it.Hidden:
		return p.hiddenColor.Sprint(name)
	default:
		return name
	}
}

func (p *Printer) printJSON(items []lister.Item) error {
	if items == nil {
		items = []lister.Item{}
	}
	enc := json.NewEncoder(p.output)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("printer: failed to encode JSON: %w", err)
	}
	p.count += int64(len(items))
	return nil
}

// GetCount returns the number of entries printed
func (p *Printer) GetCount() int64 {
	return p.count
}
