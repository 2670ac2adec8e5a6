package queue

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Status represents the lifecycle of a queue item.
type Status string

const (
	StatusPending     Status = "pending"
	StatusSearching   Status = "searching"
	StatusFound       Status = "found"
	StatusDownloading Status = "downloading"
	StatusCompleted   Status = "completed"
	StatusFailed      Status = "failed"
	StatusNoMatch     Status = "no_match"
)

var allStatuses = []Status{
	StatusPending,
	StatusSearching,
	StatusFound,
	StatusDownloading,
	StatusCompleted,
	StatusFailed,
	StatusNoMatch,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// processingStatuses are in-flight states that must not survive a restart.
var processingStatuses = map[Status]struct{}{
	StatusSearching:   {},
	StatusDownloading: {},
}

// HealthSummary describes aggregated queue counts per key lifecycle states.
type HealthSummary struct {
	Total      int
	Pending    int
	Processing int
	Completed  int
	Failed     int
	NoMatch    int
}

// Item represents a requested track persisted in SQLite.
type Item struct {
	ID              int64
	Token           string
	Title           string
	Artist          string
	DurationSeconds int
	Status          Status
	MatchURL        string
	MatchTitle      string
	MatchScore      int
	OutputPath      string
	ErrorMessage    string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// IsProcessing reports whether the item is in an in-flight state.
func (i Item) IsProcessing() bool {
	_, ok := processingStatuses[i.Status]
	return ok
}

// IsTerminal reports whether the item has reached a final state.
func (i Item) IsTerminal() bool {
	switch i.Status {
	case StatusCompleted, StatusFailed, StatusNoMatch:
		return true
	default:
		return false
	}
}

// SetFailed marks the item as failed with the given error message.
func (i *Item) SetFailed(message string) {
	i.Status = StatusFailed
	i.ErrorMessage = message
}

// SetMatch records the winning candidate on the item.
func (i *Item) SetMatch(url, title string, score int) {
	i.Status = StatusFound
	i.MatchURL = url
	i.MatchTitle = title
	i.MatchScore = score
	i.ErrorMessage = ""
}

var displayCaser = cases.Title(language.English, cases.NoLower)

// DisplayTitle renders the item for tables and log lines, title-casing the
// track and prefixing the artist when present.
func (i Item) DisplayTitle() string {
	title := displayCaser.String(strings.TrimSpace(i.Title))
	artist := strings.TrimSpace(i.Artist)
	if artist == "" {
		return title
	}
	return artist + " - " + title
}
