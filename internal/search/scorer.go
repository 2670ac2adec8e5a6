package search

import (
	"math"
	"strings"

	"audiomatch/internal/similarity"
)

const (
	// MinAcceptScore is the inclusive floor a candidate must reach to be
	// eligible for return at all.
	MinAcceptScore = 100
	// HighConfidenceScore ends the multi-pass search early when a pass best
	// reaches it.
	HighConfidenceScore = 180
)

// favorableKeywords mark titles likely to be plain audio renditions. Only the
// first match counts.
var favorableKeywords = []string{"lyrics", "lyric video", "audio", "official audio"}

// unwantedKeywords mark renditions that are never the canonical track. Each
// hit stacks a penalty.
var unwantedKeywords = []string{
	"sing-along", "sing along", "singalong",
	"karaoke", "instrumental", "remix",
	"cover", "nightcore", "slowed", "reverb",
	"8d audio", "bass boost", "sped up",
}

// Score converts one candidate and the target descriptor into a signed
// confidence score. All text comparisons run on lower-cased input. Missing
// duration or view metadata is treated as unknown rather than an error, with
// one deliberate quirk preserved from the reference behavior: an unknown view
// count lands in the same -5 bucket as genuinely low view counts.
func Score(candidate Candidate, target TrackDescriptor) int {
	title := strings.ToLower(candidate.Title)
	uploader := strings.ToLower(candidate.Uploader)
	trackTitle := strings.ToLower(target.Title)
	artist := strings.ToLower(target.Artist)

	score := 0

	// Title word coverage. Covering less than half the significant title
	// words almost certainly means the wrong song.
	titleWords := significantWords(trackTitle)
	if len(titleWords) > 0 {
		matched := 0
		for _, word := range titleWords {
			if strings.Contains(title, word) {
				matched++
			}
		}
		coverage := float64(matched) / float64(len(titleWords))
		if coverage < 0.5 {
			score -= 100
		} else {
			score += roundScore(coverage * 50)
		}
	}

	// Artist presence in the title or uploader name.
	if strings.Contains(title, artist) || strings.Contains(uploader, artist) {
		score += 20
	} else {
		score -= 10
	}

	// Duration proximity, only when both sides are known.
	if target.DurationSeconds > 0 && candidate.DurationSeconds > 0 {
		diff := candidate.DurationSeconds - target.DurationSeconds
		if diff < 0 {
			diff = -diff
		}
		switch {
		case diff <= 3:
			score += 30
		case diff <= 10:
			score += 20
		case diff <= 30:
			score += 10
		default:
			score -= 10
		}
	}

	// Popularity tiers.
	switch {
	case candidate.ViewCount >= 1_000_000:
		score += 15
	case candidate.ViewCount >= 100_000:
		score += 10
	case candidate.ViewCount >= 10_000:
		score += 5
	case candidate.ViewCount >= 1_000:
		// Neutral tier.
	default:
		score -= 5
	}

	// Favorable keyword, first match only.
	for _, keyword := range favorableKeywords {
		if strings.Contains(title, keyword) {
			score += 15
			break
		}
	}

	// "Official" without being a music video.
	if strings.Contains(title, "official") &&
		!strings.Contains(title, "music video") &&
		!strings.Contains(title, "official video") {
		score += 10
	}

	// Similarity of the candidate title to the target title.
	score += roundScore(similarity.Ratio(trackTitle, title) * 50)

	// Similarity of the artist to either the uploader or the title, whichever
	// is stronger.
	artistSim := similarity.Ratio(artist, uploader)
	if titleSim := similarity.Ratio(artist, title); titleSim > artistSim {
		artistSim = titleSim
	}
	score += roundScore(artistSim * 30)

	// Unwanted rendition penalty, cumulative per keyword.
	for _, keyword := range unwantedKeywords {
		if strings.Contains(title, keyword) {
			score -= 50
		}
	}

	return score
}

// significantWords tokenizes the target title, keeping words longer than two
// characters.
func significantWords(title string) []string {
	fields := strings.Fields(title)
	words := make([]string, 0, len(fields))
	for _, word := range fields {
		if len(word) <= 2 {
			continue
		}
		words = append(words, word)
	}
	return words
}

func roundScore(value float64) int {
	return int(math.Round(value))
}
