package similarity

import "strings"

// Ratio reports how alike two strings are on a 0..1 scale.
//
// Rules apply in priority order; the first applicable rule wins:
//  1. exact match (case-sensitive as passed) scores 1.0
//  2. substring containment in either direction scores 0.8
//  3. when both strings split into non-empty word sets, the Jaccard
//     similarity of those sets is returned
//  4. otherwise a sequence-matcher ratio over lower-cased inputs
//
// Callers are responsible for lower-casing inputs when they want
// case-insensitive comparison through rules 1-3.
func Ratio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if strings.Contains(b, a) || strings.Contains(a, b) {
		return 0.8
	}

	wordsA := strings.Fields(a)
	wordsB := strings.Fields(b)
	if len(wordsA) > 0 && len(wordsB) > 0 {
		return jaccard(wordsA, wordsB)
	}

	return matchRatio(strings.ToLower(a), strings.ToLower(b))
}

func jaccard(wordsA, wordsB []string) float64 {
	setA := make(map[string]struct{}, len(wordsA))
	for _, w := range wordsA {
		setA[w] = struct{}{}
	}
	setB := make(map[string]struct{}, len(wordsB))
	for _, w := range wordsB {
		setB[w] = struct{}{}
	}

	intersection := 0
	for w := range setA {
		if _, ok := setB[w]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// matchRatio computes the classic sequence-matcher ratio: twice the total
// length of the longest common matching blocks divided by the combined length
// of both inputs.
func matchRatio(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}
	matched := matchingBlockLength(ra, rb)
	return 2 * float64(matched) / float64(total)
}

type matchSpan struct {
	alo, ahi int
	blo, bhi int
}

// matchingBlockLength sums the sizes of the common blocks found by recursively
// locating the longest match and splitting around it on both sides.
func matchingBlockLength(a, b []rune) int {
	// Index b once so each longest-match scan is linear in len(a) on average.
	positions := make(map[rune][]int, len(b))
	for j, r := range b {
		positions[r] = append(positions[r], j)
	}

	matched := 0
	spans := []matchSpan{{0, len(a), 0, len(b)}}
	for len(spans) > 0 {
		span := spans[len(spans)-1]
		spans = spans[:len(spans)-1]

		i, j, size := longestMatch(a, positions, span)
		if size == 0 {
			continue
		}
		matched += size
		if span.alo < i && span.blo < j {
			spans = append(spans, matchSpan{span.alo, i, span.blo, j})
		}
		if i+size < span.ahi && j+size < span.bhi {
			spans = append(spans, matchSpan{i + size, span.ahi, j + size, span.bhi})
		}
	}
	return matched
}

func longestMatch(a []rune, positions map[rune][]int, span matchSpan) (besti, bestj, bestsize int) {
	besti, bestj = span.alo, span.blo
	// lengths[j] holds the length of the match ending at a[i-1], b[j-1].
	lengths := make(map[int]int)
	for i := span.alo; i < span.ahi; i++ {
		next := make(map[int]int)
		for _, j := range positions[a[i]] {
			if j < span.blo || j >= span.bhi {
				continue
			}
			size := lengths[j-1] + 1
			next[j] = size
			if size > bestsize {
				besti = i - size + 1
				bestj = j - size + 1
				bestsize = size
			}
		}
		lengths = next
	}
	return besti, bestj, bestsize
}
