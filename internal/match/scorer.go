package match

import (
	"github.com/lithammer/fuzzysearch/fuzzy"
)

const (
	// coverageWeight separates "field equals query" from "field contains query".
	coverageWeight = 0.01

	// Subsequence matches score between subsequenceBase and
	// subsequenceBase+subsequenceSpan depending on how much of the field
	// is left unmatched.
	subsequenceBase = 0.15
	subsequenceSpan = 0.15
)

// scoreField returns the badness of pattern against a single field, in [0, 1].
// Both strings are already lower-cased.
func scoreField(q string, pattern []rune, text string, textRunes []rune, distance int) float64 {
	if len(textRunes) == 0 || len(pattern) == 0 {
		return 1
	}
	if q == text {
		return 0
	}

	errs, start := approxSubstring(pattern, textRunes)
	score := float64(errs) / float64(len(pattern))
	if score < 1 {
		if distance > 0 {
			score += float64(start) / float64(distance)
		}
		if len(textRunes) > len(pattern) {
			score += coverageWeight * (1 - float64(len(pattern))/float64(len(textRunes)))
		}
	}

	// Levenshtein distance to the whole field, or -1 if q is not a subsequence
	if rank := fuzzy.RankMatchNormalizedFold(q, text); rank >= 0 {
		sub := subsequenceBase + subsequenceSpan*float64(rank)/float64(len(textRunes))
		if sub < score {
			score = sub
		}
	}

	if score > 1 {
		return 1
	}
	return score
}

// approxSubstring aligns pattern against the best substring of text using
// optimal string alignment distance (insertions, deletions, substitutions and
// adjacent transpositions). The alignment may start and end anywhere in text.
// It returns the error count and the rune offset where the best match starts.
func approxSubstring(pattern, text []rune) (errs, start int) {
	m, n := len(pattern), len(text)

	// Three rolling rows: i-2, i-1 and i. The s* rows carry the text offset
	// where the alignment ending at each cell began.
	prev2, prev, cur := make([]int, n+1), make([]int, n+1), make([]int, n+1)
	sPrev2, sPrev, sCur := make([]int, n+1), make([]int, n+1), make([]int, n+1)

	// Row 0: an empty pattern matches for free at every offset
	for j := 0; j <= n; j++ {
		prev[j] = 0
		sPrev[j] = j
	}

	for i := 1; i <= m; i++ {
		cur[0] = i
		sCur[0] = 0
		for j := 1; j <= n; j++ {
			cost := 1
			if pattern[i-1] == text[j-1] {
				cost = 0
			}

			best, bestStart := prev[j-1]+cost, sPrev[j-1]
			if v := prev[j] + 1; v < best {
				best, bestStart = v, sPrev[j]
			}
			if v := cur[j-1] + 1; v < best {
				best, bestStart = v, sCur[j-1]
			}
			if i > 1 && j > 1 && pattern[i-1] == text[j-2] && pattern[i-2] == text[j-1] {
				if v := prev2[j-2] + 1; v < best {
					best, bestStart = v, sPrev2[j-2]
				}
			}

			cur[j], sCur[j] = best, bestStart
		}

		prev2, prev, cur = prev, cur, prev2
		sPrev2, sPrev, sCur = sPrev, sCur, sPrev2
	}

	// prev now holds row m; the match may end at any text offset
	errs, start = prev[0], sPrev[0]
	for j := 1; j <= n; j++ {
		if prev[j] < errs || (prev[j] == errs && sPrev[j] < start) {
			errs, start = prev[j], sPrev[j]
		}
	}
	return errs, start
}
