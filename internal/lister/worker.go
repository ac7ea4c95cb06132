// Package lister enumerates directory entries and applies the listing filter
package lister

import (
	"sync"

	"github.com/bethropolis/dir-lens/internal/filter"
	"github.com/bethropolis/dir-lens/internal/mime"
)

// resolveCandidate resolves a file candidate's metadata and MIME type, runs
// it through the filter and records the outcome.
func resolveCandidate(
	c candidate,
	options ListOptions,
	f *filter.ItemFilter,
	coll *collector,
	tracker *SkippedTracker,
	stats *listStats,
) {
	options.Logger.Debug("resolveCandidate: Resolving [%s]", c.relPath)

	if options.ProgressFn != nil {
		options.ProgressFn(ProgressStats{
			CurrentPath: c.relPath,
		})
	}

	info, err := c.entry.Info()
	if err != nil {
		options.Logger.Warn("resolveCandidate: File info failed for [%s]: %v", c.relPath, err)
		tracker.Track(c.relPath, ReasonSkippedInfoError, false)
		stats.skippedItems.Add(1)
		return
	}

	it := Item{
		EntryName: c.entry.Name(),
		RelPath:   c.relPath,
		Mime:      mime.Resolve(c.path, info.Mode()),
		Hidden:    isHiddenName(c.entry.Name()),
		Dir:       false,
		SizeBytes: info.Size(),
		Modified:  info.ModTime(),
	}

	if !f.Matches(it) {
		reason := filterReason(f, it)
		options.Logger.Debug("resolveCandidate: Filtered [%s]: %s", c.relPath, reason)
		tracker.Track(c.relPath, reason, false)
		stats.skippedItems.Add(1)
		return
	}

	options.Logger.Debug("resolveCandidate: [%s] PASSED all checks (%s)", c.relPath, it.Mime)
	coll.add(it)
	stats.listedItems.Add(1)
}

// resolveWorker is the goroutine function for concurrent MIME resolution.
func resolveWorker(
	id int,
	candidatesChan <-chan candidate,
	wg *sync.WaitGroup,
	options ListOptions,
	f *filter.ItemFilter,
	coll *collector,
	tracker *SkippedTracker,
	stats *listStats,
) {
	defer wg.Done()
	options.Logger.Debug("Worker %d: Started", id)

	for c := range candidatesChan {
		select {
		case <-options.Context.Done():
			options.Logger.Debug("Worker %d: Received cancellation signal", id)
			return
		default:
			resolveCandidate(c, options, f, coll, tracker, stats)
		}
	}

	options.Logger.Debug("Worker %d: Finished", id)
}
