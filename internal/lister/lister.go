// Package lister enumerates directory entries and applies the listing filter
package lister

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bethropolis/dir-lens/internal/filter"
	"github.com/bethropolis/dir-lens/internal/ignore"
	"github.com/bethropolis/dir-lens/internal/mime"
)

// candidate is a file entry waiting for MIME resolution and filtering.
// Directories are decided inline during enumeration; only files go through
// the (potentially concurrent) resolution stage.
type candidate struct {
	path    string // absolute path
	relPath string
	entry   fs.DirEntry
}

// listStats holds atomic counters shared between enumeration, workers and
// the progress reporter.
type listStats struct {
	totalFiles   atomic.Int64
	totalDirs    atomic.Int64
	listedItems  atomic.Int64
	skippedItems atomic.Int64
}

// collector gathers accepted items from possibly concurrent workers.
type collector struct {
	mutex sync.Mutex
	items []Item
}

func (c *collector) add(it Item) {
	c.mutex.Lock()
	c.items = append(c.items, it)
	c.mutex.Unlock()
}

// List enumerates the directory at rootDir (recursively when configured),
// applies the ignore rules and the item filter, and returns the entries that
// belong in the listing together with a record of everything skipped.
func List(rootDir string, f *filter.ItemFilter, matcher *ignore.Matcher, opts ...Option) (*Result, error) {
	startTime := time.Now()

	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	absRootDir, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("lister: failed to get absolute path for '%s': %w", rootDir, err)
	}

	tracker := NewSkippedTracker(64)
	stats := &listStats{}
	coll := &collector{}

	// Periodic progress reporting, feeding the -progress flag.
	if options.ProgressFn != nil {
		progressCtx, progressCancel := context.WithCancel(context.Background())
		defer progressCancel()

		go func() {
			ticker := time.NewTicker(300 * time.Millisecond)
			defer ticker.Stop()

			for {
				select {
				case <-progressCtx.Done():
					return
				case <-ticker.C:
					options.ProgressFn(ProgressStats{
						TotalFiles:   stats.totalFiles.Load(),
						TotalDirs:    stats.totalDirs.Load(),
						ListedItems:  stats.listedItems.Load(),
						SkippedItems: stats.skippedItems.Load(),
					})
				}
			}
		}()
	}

	options.Logger.Debug("lister.List started. Root: %s, Recursive: %v, Concurrent: %v, Workers: %d",
		absRootDir, options.Recursive, options.Concurrent, options.MaxWorkers)

	var candidates []candidate

	// handleDir decides a directory entry inline (its MIME type is constant,
	// no I/O needed) and reports whether the walk should descend into it.
	handleDir := func(name, relPath string, d fs.DirEntry) bool {
		stats.totalDirs.Add(1)

		info, infoErr := d.Info()
		if infoErr != nil {
			options.Logger.Warn("Lister: File info failed for %q: %v", relPath, infoErr)
			tracker.Track(relPath, ReasonSkippedInfoError, true)
			stats.skippedItems.Add(1)
			return false
		}

		it := Item{
			EntryName: name,
			RelPath:   relPath,
			Mime:      mime.Directory,
			Hidden:    isHiddenName(name),
			Dir:       true,
			SizeBytes: info.Size(),
			Modified:  info.ModTime(),
		}

		if f.Matches(it) {
			coll.add(it)
			stats.listedItems.Add(1)
			return true
		}

		tracker.Track(relPath, filterReason(f, it), true)
		stats.skippedItems.Add(1)

		// Descend into directories that merely failed the pattern or type
		// check: entries below them can still match. A hidden directory
		// filtered by the hidden rule takes its whole subtree with it.
		return !(it.Hidden && !f.HiddenFilesShown())
	}

	if options.Recursive {
		walkErr := filepath.WalkDir(absRootDir, func(path string, d fs.DirEntry, err error) error {
			select {
			case <-options.Context.Done():
				return options.Context.Err()
			default:
			}

			if err != nil {
				reason := ReasonSkippedWalkError
				if os.IsPermission(err) {
					reason = ReasonSkippedPermError
				}
				relPath, relErr := filepath.Rel(absRootDir, path)
				if relErr != nil {
					relPath = path
				}
				options.Logger.Warn("Lister: Walk error for %q: %v", relPath, err)
				isDir := d != nil && d.IsDir()
				tracker.Track(relPath, reason, isDir)
				stats.skippedItems.Add(1)
				if isDir && reason == ReasonSkippedPermError {
					return filepath.SkipDir
				}
				return nil
			}

			relPath, relErr := filepath.Rel(absRootDir, path)
			if relErr != nil {
				options.Logger.Error("Lister: Path calculation failed for %q: %v", path, relErr)
				tracker.Track(path, ReasonSkippedPathError, d.IsDir())
				stats.skippedItems.Add(1)
				return nil
			}

			// Skip the root itself
			if path == absRootDir || relPath == "." {
				return nil
			}

			isDir := d.IsDir()
			if matcher.ShouldIgnore(relPath, isDir) {
				options.Logger.Debug("Lister: Ignored %q by matcher rules", relPath)
				tracker.Track(relPath, ReasonIgnoredRule, isDir)
				stats.skippedItems.Add(1)
				if isDir {
					return filepath.SkipDir
				}
				return nil
			}

			if isDir {
				if !handleDir(d.Name(), relPath, d) {
					return filepath.SkipDir
				}
				return nil
			}

			stats.totalFiles.Add(1)
			candidates = append(candidates, candidate{path: path, relPath: relPath, entry: d})
			return nil
		})
		if walkErr != nil {
			return &Result{Items: coll.items, Skipped: tracker.Items()}, walkErr
		}
	} else {
		entries, readErr := os.ReadDir(absRootDir)
		if readErr != nil {
			return nil, fmt.Errorf("lister: failed to read directory '%s': %w", absRootDir, readErr)
		}

		for _, d := range entries {
			select {
			case <-options.Context.Done():
				return &Result{Items: coll.items, Skipped: tracker.Items()}, options.Context.Err()
			default:
			}

			name := d.Name()
			if matcher.ShouldIgnore(name, d.IsDir()) {
				options.Logger.Debug("Lister: Ignored %q by matcher rules", name)
				tracker.Track(name, ReasonIgnoredRule, d.IsDir())
				stats.skippedItems.Add(1)
				continue
			}

			if d.IsDir() {
				handleDir(name, name, d)
				continue
			}

			stats.totalFiles.Add(1)
			candidates = append(candidates, candidate{
				path:    filepath.Join(absRootDir, name),
				relPath: name,
				entry:   d,
			})
		}
	}

	// Resolve MIME types and filter the queued files, concurrently when
	// configured: content sniffing is the expensive part of a listing pass.
	if options.Concurrent && len(candidates) > 1 {
		var wg sync.WaitGroup
		candidatesChan := make(chan candidate, options.MaxWorkers*2)

		options.Logger.Debug("Starting %d workers for MIME resolution.", options.MaxWorkers)
		for i := 0; i < options.MaxWorkers; i++ {
			wg.Add(1)
			go resolveWorker(i+1, candidatesChan, &wg, options, f, coll, tracker, stats)
		}

	queue:
		for _, c := range candidates {
			select {
			case <-options.Context.Done():
				break queue
			case candidatesChan <- c:
			}
		}
		close(candidatesChan)
		wg.Wait()

		if err := options.Context.Err(); err != nil {
			return &Result{Items: sortItems(coll.items, options.Recursive), Skipped: tracker.Items()}, err
		}
	} else {
		for _, c := range candidates {
			select {
			case <-options.Context.Done():
				return &Result{Items: sortItems(coll.items, options.Recursive), Skipped: tracker.Items()}, options.Context.Err()
			default:
			}
			resolveCandidate(c, options, f, coll, tracker, stats)
		}
	}

	options.Logger.Debug("Lister: Listed %d entries, skipped %d, in %s",
		stats.listedItems.Load(), stats.skippedItems.Load(), time.Since(startTime))

	return &Result{Items: sortItems(coll.items, options.Recursive), Skipped: tracker.Items()}, nil
}

// filterReason reconstructs which filter stage rejected an item, for the
// skipped-items report.
func filterReason(f *filter.ItemFilter, it Item) SkippedReason {
	if it.IsHidden() && !f.HiddenFilesShown() && f.MatchesPattern(it) && f.MatchesType(it) {
		return ReasonFilteredHidden
	}
	if !f.MatchesPattern(it) {
		return ReasonFilteredPattern
	}
	if !f.MatchesType(it) {
		return ReasonFilteredType
	}
	return ReasonFilteredHidden
}

// isHiddenName reports whether a display name denotes a hidden entry.
func isHiddenName(name string) bool {
	return strings.HasPrefix(name, ".")
}

// sortItems orders the listing: directories first in a flat listing, then
// case-insensitive by path.
func sortItems(items []Item, recursive bool) []Item {
	sort.Slice(items, func(i, j int) bool {
		if !recursive && items[i].Dir != items[j].Dir {
			return items[i].Dir
		}
		a := strings.ToLower(items[i].RelPath)
		b := strings.ToLower(items[j].RelPath)
		if a == b {
			return items[i].RelPath < items[j].RelPath
		}
		return a < b
	})
	return items
}
