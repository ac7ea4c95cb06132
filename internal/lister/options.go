// Package lister enumerates directory entries and applies the listing filter
package lister

import (
	"context"

	"github.com/bethropolis/dir-lens/internal/utils"
)

// ListOptions configures the behavior of the List function
type ListOptions struct {
	Logger     utils.Logger
	Recursive  bool
	Concurrent bool
	MaxWorkers int
	Context    context.Context
	ProgressFn ProgressCallback
}

// ProgressCallback is a function that receives progress updates
type ProgressCallback func(stats ProgressStats)

// ProgressStats holds statistics about the listing progress
type ProgressStats struct {
	TotalFiles   int64  // Total files seen
	ListedItems  int64  // Entries that passed all filters
	SkippedItems int64  // Entries that were skipped for any reason
	TotalDirs    int64  // Total directories seen
	CurrentPath  string // Path of the entry currently being resolved (relative)
}

// defaultOptions returns the default list options
func defaultOptions() ListOptions {
	return ListOptions{
		Logger:     &utils.NoopLogger{},
		Recursive:  false,
		Concurrent: false,
		MaxWorkers: 10,
		Context:    context.Background(),
	}
}

// Option is a functional option for configuring ListOptions
type Option func(*ListOptions)

// WithLogger sets a custom logger for the lister
func WithLogger(logger utils.Logger) Option {
	return func(opts *ListOptions) {
		if logger != nil {
			opts.Logger = logger
		}
	}
}

// WithRecursive enables listing the whole tree instead of a single directory
func WithRecursive(enabled bool) Option {
	return func(opts *ListOptions) {
		opts.Recursive = enabled
	}
}

// WithConcurrency enables or disables concurrent MIME resolution
func WithConcurrency(enabled bool) Option {
	return func(opts *ListOptions) {
		opts.Concurrent = enabled
	}
}

// WithMaxWorkers sets the maximum number of concurrent workers
func WithMaxWorkers(workers int) Option {
	return func(opts *ListOptions) {
		if workers > 0 {
			opts.MaxWorkers = workers
		}
	}
}

// WithContext sets the context for cancellation
func WithContext(ctx context.Context) Option {
	return func(opts *ListOptions) {
		if ctx != nil {
			opts.Context = ctx
		}
	}
}

// WithProgress adds a progress callback function
func WithProgress(fn ProgressCallback) Option {
	return func(o *ListOptions) {
		o.ProgressFn = fn
	}
}
