// Package lister enumerates directory entries and applies the listing filter
package lister

import (
	"sync"
	"time"
)

// Item is one directory entry considered for display. It satisfies
// filter.Entry so it can be handed to the ItemFilter directly.
type Item struct {
	EntryName string    `json:"name"`
	RelPath   string    `json:"path"`
	Mime      string    `json:"mime_type"`
	Hidden    bool      `json:"hidden"`
	Dir       bool      `json:"is_dir"`
	SizeBytes int64     `json:"size"`
	Modified  time.Time `json:"modified"`
}

// Name returns the display name of the entry.
func (it Item) Name() string { return it.EntryName }

// IsHidden reports whether the entry is hidden (dot-prefixed name).
func (it Item) IsHidden() bool { return it.Hidden }

// MIMEType returns the resolved content type of the entry.
func (it Item) MIMEType() string { return it.Mime }

// Result holds the outcome of a List call.
type Result struct {
	Items   []Item
	Skipped []SkippedItem
}

// SkippedReason clarifies why an entry was not listed.
type SkippedReason string

const (
	ReasonIgnoredRule      SkippedReason = "Ignored (Gitignore/Custom Rule)"
	ReasonFilteredHidden   SkippedReason = "Filtered (Hidden Rule)"
	ReasonFilteredPattern  SkippedReason = "Filtered (Pattern Mismatch)"
	ReasonFilteredType     SkippedReason = "Filtered (MIME Type Rule)"
	ReasonSkippedPermError SkippedReason = "Skipped (Permission Error)"
	ReasonSkippedWalkError SkippedReason = "Skipped (Walk Error)"
	ReasonSkippedInfoError SkippedReason = "Skipped (File Info Error)"
	ReasonSkippedPathError SkippedReason = "Skipped (Path Calculation Error)"
)

// SkippedItem holds information about a skipped path.
type SkippedItem struct {
	Path   string        `json:"path"`
	Reason SkippedReason `json:"reason"`
	IsDir  bool          `json:"is_dir"`
}

// SkippedTracker is a struct to track skipped items
type SkippedTracker struct {
	items []SkippedItem
	mutex sync.Mutex
}

// NewSkippedTracker creates a new SkippedTracker
func NewSkippedTracker(capacity int) *SkippedTracker {
	return &SkippedTracker{
		items: make([]SkippedItem, 0, capacity),
	}
}

// Track adds a skipped item to the tracker
func (st *SkippedTracker) Track(path string, reason SkippedReason, isDir bool) {
	st.mutex.Lock()
	defer st.mutex.Unlock()
	st.items = append(st.items, SkippedItem{Path: path, Reason: reason, IsDir: isDir})
}

// Items returns the tracked skipped items
func (st *SkippedTracker) Items() []SkippedItem {
	st.mutex.Lock()
	defer st.mutex.Unlock()
	return st.items
}
