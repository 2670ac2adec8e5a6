package search

import (
	"regexp"
	"strings"
)

var (
	featurePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\(feat\..*?\)`),
		regexp.MustCompile(`(?i)\(ft\..*?\)`),
		regexp.MustCompile(`(?i)\(featuring.*?\)`),
	}
	bracketPattern = regexp.MustCompile(`\[.*?\]`)
	parenPattern   = regexp.MustCompile(`\(.*?\)`)
)

// BuildQuery joins the primary and secondary phrases into a catalog search
// string. Feature credits and any remaining bracketed or parenthesized groups
// are stripped; they carry annotations like "(Official Video)" that only hurt
// recall. Whitespace runs collapse to single spaces.
func BuildQuery(primary, secondary string) string {
	query := strings.TrimSpace(primary + " " + secondary)

	for _, pattern := range featurePatterns {
		query = pattern.ReplaceAllString(query, "")
	}
	query = bracketPattern.ReplaceAllString(query, "")
	query = parenPattern.ReplaceAllString(query, "")

	return strings.Join(strings.Fields(query), " ")
}
