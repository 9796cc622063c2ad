package match

import "strings"

// Similarity weights for the non-containment case. Token overlap dominates;
// the length ratio keeps "saw" from matching "sawmill equipment operation"
// on overlap alone.
const (
	jaccardWeight     = 0.8
	lengthRatioWeight = 0.2

	scoreExact            = 1.0
	scoreNameContainsCand = 0.9
	scoreCandContainsName = 0.85
)

// Score computes a similarity score in [0,1] between a candidate skill
// phrase and a taxonomy skill name. Comparison is case-insensitive.
func Score(candidate, taxonomyName string) float64 {
	c := strings.ToLower(strings.TrimSpace(candidate))
	n := strings.ToLower(strings.TrimSpace(taxonomyName))
	if c == "" || n == "" {
		return 0
	}
	if c == n {
		return scoreExact
	}
	if strings.Contains(n, c) {
		return scoreNameContainsCand
	}
	if strings.Contains(c, n) {
		return scoreCandContainsName
	}
	return jaccardWeight*tokenJaccard(c, n) + lengthRatioWeight*lengthRatio(c, n)
}

// tokenJaccard returns |A∩B| / |A∪B| over whitespace-delimited tokens.
func tokenJaccard(a, b string) float64 {
	aTokens := tokenSet(a)
	bTokens := tokenSet(b)
	if len(aTokens) == 0 || len(bTokens) == 0 {
		return 0
	}

	intersection := 0
	for tok := range aTokens {
		if bTokens[tok] {
			intersection++
		}
	}
	union := len(aTokens) + len(bTokens) - intersection
	return float64(intersection) / float64(union)
}

// lengthRatio returns min(len)/max(len) over the two strings.
func lengthRatio(a, b string) float64 {
	la, lb := float64(len(a)), float64(len(b))
	if la == 0 || lb == 0 {
		return 0
	}
	if la > lb {
		return lb / la
	}
	return la / lb
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(s) {
		set[tok] = true
	}
	return set
}
