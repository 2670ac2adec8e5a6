package search

import "context"

// TrackDescriptor identifies the track a caller wants audio for. It is the
// immutable input to a search.
type TrackDescriptor struct {
	Title           string
	Artist          string
	DurationSeconds int
}

// FilterMode selects which slice of the catalog a single search request
// covers.
type FilterMode string

const (
	// FilterCurated restricts results to curated audio tracks ("songs").
	FilterCurated FilterMode = "curated"
	// FilterUploads restricts results to uploaded video content.
	FilterUploads FilterMode = "uploads"
	// FilterNone applies no filter.
	FilterNone FilterMode = "unfiltered"
)

// Catalog is the external search capability the engine queries. Records
// lacking an identifier must be dropped by implementations before returning.
type Catalog interface {
	Search(ctx context.Context, query string, mode FilterMode, limit int) ([]Candidate, error)
}

// Candidate is one retrieved catalog item considered as a possible match.
// Zero durations and view counts mean "unknown", not errors. Candidates are
// never mutated after creation; identity is the backend ID.
type Candidate struct {
	ID              string
	Title           string
	Uploader        string
	DurationSeconds int
	ViewCount       int64
	URL             string
}

// ScoredCandidate pairs a candidate with the confidence score it earned
// against a specific target.
type ScoredCandidate struct {
	Candidate
	Score int
}

// MatchResult is the accepted best candidate for a search. Score is always at
// least MinAcceptScore.
type MatchResult struct {
	ScoredCandidate

	// Pass is the 1-based search pass that produced the result.
	Pass int
	// Query is the catalog query string used by that pass.
	Query string
}
