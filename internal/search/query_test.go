package search

import "testing"

func TestBuildQuery(t *testing.T) {
	cases := []struct {
		name      string
		primary   string
		secondary string
		want      string
	}{
		{"plain title", "Song Title", "", "Song Title"},
		{"title and artist", "Song Title", "Band", "Song Title Band"},
		{"feature credit stripped", "Song (feat. Artist B)", "Band", "Song Band"},
		{"ft credit stripped", "Song (ft. Someone) Extra", "", "Song Extra"},
		{"featuring credit stripped", "(Featuring X) Song", "", "Song"},
		{"feature credit case insensitive", "Song (FEAT. Artist)", "", "Song"},
		{"brackets stripped", "Song [Remastered 2011]", "", "Song"},
		{"parenthetical stripped", "Song (Official Video)", "", "Song"},
		{"mixed annotations", "Song (ft. Someone) [Live]", "Band Name", "Song Band Name"},
		{"whitespace collapsed", "  spaced   out  ", "words", "spaced out words"},
		{"empty inputs", "", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := BuildQuery(tc.primary, tc.secondary); got != tc.want {
				t.Fatalf("BuildQuery(%q, %q) = %q, want %q", tc.primary, tc.secondary, got, tc.want)
			}
		})
	}
}
