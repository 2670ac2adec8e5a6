package search

import (
	"context"
	"strings"

	"log/slog"

	"github.com/google/uuid"

	"audiomatch/internal/logging"
	"audiomatch/internal/services"
)

const defaultMaxResultsPerMode = 10

// Matcher orchestrates the multi-pass candidate search.
type Matcher struct {
	collector  *Collector
	logger     *slog.Logger
	maxResults int
}

// Option customises the Matcher.
type Option func(*Matcher)

// WithMaxResults overrides how many results each filter mode requests.
func WithMaxResults(n int) Option {
	return func(m *Matcher) {
		if n > 0 {
			m.maxResults = n
		}
	}
}

// NewMatcher constructs a matcher over the supplied catalog.
func NewMatcher(catalog Catalog, logger *slog.Logger, opts ...Option) *Matcher {
	matcherLogger := logging.NewComponentLogger(logger, "matcher")
	m := &Matcher{
		collector:  NewCollector(catalog, matcherLogger),
		logger:     matcherLogger,
		maxResults: defaultMaxResultsPerMode,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// passPlan couples the operand order one search pass feeds to BuildQuery.
type passPlan struct {
	name      string
	primary   string
	secondary string
	// earlyExit marks passes whose best result may terminate the search when
	// it reaches HighConfidenceScore. The final pass never needs it.
	earlyExit bool
}

func buildPassPlans(target TrackDescriptor) []passPlan {
	return []passPlan{
		{name: "title_only", primary: target.Title, earlyExit: true},
		{name: "title_artist", primary: target.Title, secondary: target.Artist, earlyExit: true},
		{name: "artist_title", primary: target.Artist, secondary: target.Title},
	}
}

// Search runs up to three sequential passes and returns the best-scoring
// candidate at or above the acceptance floor. The found boolean is false when
// no candidate qualified across all passes; that is a normal outcome, not an
// error. Errors are reserved for contract violations and context
// cancellation.
func (m *Matcher) Search(ctx context.Context, target TrackDescriptor) (MatchResult, bool, error) {
	if strings.TrimSpace(target.Title) == "" {
		return MatchResult{}, false, services.Wrap(services.ErrValidation, "search", "validate target", "track title must not be empty", nil)
	}
	if target.DurationSeconds < 0 {
		return MatchResult{}, false, services.Wrap(services.ErrValidation, "search", "validate target", "expected duration must not be negative", nil)
	}

	logger := m.logger.With(logging.String(logging.FieldSearchID, uuid.NewString()))
	logger.Debug("multi-pass search starting",
		logging.String("title", target.Title),
		logging.String("artist", target.Artist),
		logging.Int("expected_duration_seconds", target.DurationSeconds))

	var best MatchResult
	found := false

	for i, plan := range buildPassPlans(target) {
		if err := ctx.Err(); err != nil {
			return MatchResult{}, false, err
		}

		query := BuildQuery(plan.primary, plan.secondary)
		candidates := m.collector.Collect(ctx, query, m.maxResults)

		passBest, ok := bestCandidate(candidates, target)
		if !ok {
			logger.Debug("pass produced no eligible candidate",
				logging.String("pass", plan.name),
				logging.String("query", query),
				logging.Int("candidates", len(candidates)))
			continue
		}

		result := MatchResult{ScoredCandidate: passBest, Pass: i + 1, Query: query}
		logger.Debug("pass best candidate",
			logging.String("pass", plan.name),
			logging.String("candidate_title", passBest.Title),
			logging.Int("score", passBest.Score))

		if !found || passBest.Score > best.Score {
			best = result
			found = true
		}

		if plan.earlyExit && passBest.Score >= HighConfidenceScore {
			logger.Info("high confidence match found",
				logging.String("pass", plan.name),
				logging.String("candidate_title", passBest.Title),
				logging.Int("score", passBest.Score))
			return result, true, nil
		}
	}

	if !found {
		logger.Info("no suitable match across all passes",
			logging.String("title", target.Title),
			logging.String("artist", target.Artist))
		return MatchResult{}, false, nil
	}

	logger.Info("match selected",
		logging.String("candidate_title", best.Title),
		logging.Int("score", best.Score),
		logging.Int("pass", best.Pass))
	return best, true, nil
}

// bestCandidate scores every candidate and keeps the highest-scoring one at
// or above the acceptance floor. Ties keep the earlier candidate, so results
// are stable across identical runs.
func bestCandidate(candidates []Candidate, target TrackDescriptor) (ScoredCandidate, bool) {
	var best ScoredCandidate
	found := false
	for _, candidate := range candidates {
		if candidate.ID == "" {
			continue
		}
		score := Score(candidate, target)
		if score < MinAcceptScore {
			continue
		}
		if !found || score > best.Score {
			best = ScoredCandidate{Candidate: candidate, Score: score}
			found = true
		}
	}
	return best, found
}
