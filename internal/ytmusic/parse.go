package ytmusic

import (
	"strconv"
	"strings"

	"audiomatch/internal/search"
)

// searchResponse mirrors the slice of the youtubei search payload the engine
// needs. Everything else in the response is ignored by the decoder.
type searchResponse struct {
	Contents struct {
		TabbedSearchResultsRenderer struct {
			Tabs []struct {
				TabRenderer struct {
					Content struct {
						SectionListRenderer struct {
							Contents []sectionContent `json:"contents"`
						} `json:"sectionListRenderer"`
					} `json:"content"`
				} `json:"tabRenderer"`
			} `json:"tabs"`
		} `json:"tabbedSearchResultsRenderer"`
	} `json:"contents"`
}

type sectionContent struct {
	MusicShelfRenderer struct {
		Contents []struct {
			MusicResponsiveListItemRenderer listItem `json:"musicResponsiveListItemRenderer"`
		} `json:"contents"`
	} `json:"musicShelfRenderer"`
}

type listItem struct {
	PlaylistItemData struct {
		VideoID string `json:"videoId"`
	} `json:"playlistItemData"`
	FlexColumns []struct {
		MusicResponsiveListItemFlexColumnRenderer flexColumn `json:"musicResponsiveListItemFlexColumnRenderer"`
	} `json:"flexColumns"`
}

type flexColumn struct {
	Text struct {
		Runs []textRun `json:"runs"`
	} `json:"text"`
}

type textRun struct {
	Text string `json:"text"`
}

func (c flexColumn) runText() string {
	var b strings.Builder
	for _, run := range c.Text.Runs {
		b.WriteString(run.Text)
	}
	return strings.TrimSpace(b.String())
}

// resultTypeLabels are the entity tags the unfiltered search prepends to the
// metadata column. They are never an uploader name.
var resultTypeLabels = map[string]struct{}{
	"Song":     {},
	"Video":    {},
	"Album":    {},
	"Artist":   {},
	"Playlist": {},
	"Episode":  {},
	"Profile":  {},
}

// candidates flattens every shelf row into search.Candidate records. Rows
// without a video identifier are dropped here, the package's only parse
// boundary.
func (r searchResponse) candidates(baseURL string) []search.Candidate {
	var out []search.Candidate
	for _, tab := range r.Contents.TabbedSearchResultsRenderer.Tabs {
		for _, section := range tab.TabRenderer.Content.SectionListRenderer.Contents {
			for _, row := range section.MusicShelfRenderer.Contents {
				candidate, ok := row.MusicResponsiveListItemRenderer.toCandidate(baseURL)
				if ok {
					out = append(out, candidate)
				}
			}
		}
	}
	return out
}

func (item listItem) toCandidate(baseURL string) (search.Candidate, bool) {
	id := strings.TrimSpace(item.PlaylistItemData.VideoID)
	if id == "" {
		return search.Candidate{}, false
	}
	candidate := search.Candidate{
		ID:  id,
		URL: baseURL + "/watch?v=" + id,
	}
	if len(item.FlexColumns) > 0 {
		candidate.Title = item.FlexColumns[0].MusicResponsiveListItemFlexColumnRenderer.runText()
	}
	if len(item.FlexColumns) > 1 {
		runs := item.FlexColumns[1].MusicResponsiveListItemFlexColumnRenderer.Text.Runs
		candidate.Uploader = uploaderFromRuns(runs)
		for _, run := range runs {
			text := strings.TrimSpace(run.Text)
			if seconds, ok := parseDuration(text); ok {
				candidate.DurationSeconds = seconds
			}
			if views, ok := parseViews(text); ok {
				candidate.ViewCount = views
			}
		}
	}
	return candidate, true
}

// uploaderFromRuns returns the first metadata run that is neither a
// separator, an entity tag, a duration, nor a view count.
func uploaderFromRuns(runs []textRun) string {
	for _, run := range runs {
		text := strings.TrimSpace(run.Text)
		if text == "" || text == "•" {
			continue
		}
		if _, tagged := resultTypeLabels[text]; tagged {
			continue
		}
		if _, ok := parseDuration(text); ok {
			continue
		}
		if _, ok := parseViews(text); ok {
			continue
		}
		return text
	}
	return ""
}

// parseDuration reads clock-style durations such as "3:42" or "1:02:07".
func parseDuration(text string) (int, bool) {
	parts := strings.Split(text, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}
	total := 0
	for _, part := range parts {
		value, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || value < 0 {
			return 0, false
		}
		total = total*60 + value
	}
	return total, true
}

// parseViews reads abbreviated view counts such as "1.2M views" or
// "987 views". Counts the API reports with a suffix are approximations;
// they land in the right scoring tier regardless.
func parseViews(text string) (int64, bool) {
	lower := strings.ToLower(strings.TrimSpace(text))
	var trimmed string
	switch {
	case strings.HasSuffix(lower, " views"):
		trimmed = strings.TrimSuffix(lower, " views")
	case strings.HasSuffix(lower, " view"):
		trimmed = strings.TrimSuffix(lower, " view")
	default:
		return 0, false
	}
	trimmed = strings.ReplaceAll(strings.TrimSpace(trimmed), ",", "")
	if trimmed == "" {
		return 0, false
	}
	multiplier := float64(1)
	switch trimmed[len(trimmed)-1] {
	case 'k':
		multiplier = 1e3
		trimmed = trimmed[:len(trimmed)-1]
	case 'm':
		multiplier = 1e6
		trimmed = trimmed[:len(trimmed)-1]
	case 'b':
		multiplier = 1e9
		trimmed = trimmed[:len(trimmed)-1]
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || value < 0 {
		return 0, false
	}
	return int64(value * multiplier), true
}
