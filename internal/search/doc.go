// Package search implements the candidate search-and-scoring engine that
// locates the best audio rendition of a track from noisy catalog results.
//
// The Matcher runs up to three query passes (title only, title plus artist,
// artist plus title), collecting candidates from a Catalog under three filter
// modes per pass and scoring each against the requested TrackDescriptor. A
// weighted criteria table rewards title word coverage, artist presence,
// duration proximity, popularity, and textual similarity while penalizing
// unwanted renditions (karaoke, remixes, covers, and similar). Candidates must
// clear an acceptance floor of 100 points; a pass scoring 180 or better ends
// the search early.
//
// The engine performs no I/O of its own beyond the injected Catalog calls and
// holds no state between searches, so results are deterministic for a fixed
// backend. An absent match is a normal outcome, reported through the found
// boolean rather than an error.
package search
