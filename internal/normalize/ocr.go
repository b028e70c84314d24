package normalize

import (
	"regexp"
	"strings"
)

// maxEditDistance bounds dictionary fuzzy matching. Anything further than two
// edits is treated as a different word, not a misread.
const maxEditDistance = 2

var splitUnitRe = regexp.MustCompile(`\b(\d+(?:[.,]\d+)?)\s*([kmcd]?)\s+([gl])\b`)

// fixSplitUnits repairs units OCR split in half: "330 m l" -> "330 ml",
// "5 k g" -> "5 kg". These are explicit patterns, independent of the
// dictionary, and run before any other correction.
func fixSplitUnits(s string) string {
	return splitUnitRe.ReplaceAllString(s, "$1 $2$3")
}

// correctWords runs word-level OCR correction across a normalized string:
// fragment rejoining first, then per-word correction for anything not in the
// dictionary.
func (n *Normalizer) correctWords(s string) string {
	fields := strings.Fields(s)
	fields = n.rejoinFragments(fields)
	for i, f := range fields {
		fields[i] = n.CorrectWord(f)
	}
	return strings.Join(fields, " ")
}

// rejoinFragments merges adjacent tokens when neither is a dictionary word
// but their concatenation is ("s prite" -> "sprite").
func (n *Normalizer) rejoinFragments(fields []string) []string {
	var out []string
	i := 0
	for i < len(fields) {
		if i+1 < len(fields) &&
			!n.lex.InDictionary(fields[i]) &&
			!n.lex.InDictionary(fields[i+1]) {
			joined := fields[i] + fields[i+1]
			if n.lex.InDictionary(joined) {
				out = append(out, joined)
				i += 2
				continue
			}
		}
		out = append(out, fields[i])
		i++
	}
	return out
}

// CorrectWord returns the OCR-corrected form of a single word, or the word
// unchanged when no confident correction exists. The cascade is: dictionary
// hit, known whole-word misread, confusion-map substitution (single then
// double), then Levenshtein search biased toward OCR-plausible edits.
func (n *Normalizer) CorrectWord(word string) string {
	if len(word) < 3 || !hasLetter(word) {
		return word
	}
	if n.lex.InDictionary(word) {
		return word
	}
	if fixed, ok := n.lex.Misreads[word]; ok {
		return fixed
	}
	if fixed, ok := n.substituteConfusions(word, 1); ok {
		return fixed
	}
	if fixed, ok := n.substituteConfusions(word, 2); ok {
		return fixed
	}
	if fixed, ok := n.fuzzyLookup(word); ok {
		return fixed
	}
	return word
}

// substituteConfusions tries replacing up to depth characters with their OCR
// confusion partners, accepting the first substitution that lands in the
// dictionary.
func (n *Normalizer) substituteConfusions(word string, depth int) (string, bool) {
	b := []byte(word)
	for i := 0; i < len(b); i++ {
		for _, alt := range n.lex.Confusions[b[i]] {
			orig := b[i]
			b[i] = alt
			candidate := string(b)
			if n.lex.InDictionary(candidate) {
				return candidate, true
			}
			if depth > 1 {
				if fixed, ok := n.substituteConfusionsFrom(b, i+1); ok {
					return fixed, true
				}
			}
			b[i] = orig
		}
	}
	return "", false
}

func (n *Normalizer) substituteConfusionsFrom(b []byte, start int) (string, bool) {
	for i := start; i < len(b); i++ {
		for _, alt := range n.lex.Confusions[b[i]] {
			orig := b[i]
			b[i] = alt
			if candidate := string(b); n.lex.InDictionary(candidate) {
				return candidate, true
			}
			b[i] = orig
		}
	}
	return "", false
}

// fuzzyLookup scans the dictionary for the closest word within
// maxEditDistance. Same-length candidates whose differing characters form
// known OCR confusion pairs get a bonus that lowers their effective distance,
// biasing the match toward OCR-plausible corrections over generic typos.
func (n *Normalizer) fuzzyLookup(word string) (string, bool) {
	best := ""
	bestScore := float64(maxEditDistance) + 0.25

	for candidate := range n.lex.Dictionary {
		lenDiff := len(candidate) - len(word)
		if lenDiff < -maxEditDistance || lenDiff > maxEditDistance {
			continue
		}
		dist := Levenshtein(word, candidate)
		if dist > maxEditDistance {
			continue
		}
		score := float64(dist)
		if len(candidate) == len(word) {
			score -= 0.5 * float64(n.confusionOverlap(word, candidate))
		}
		if score < bestScore || (score == bestScore && candidate < best) {
			best = candidate
			bestScore = score
		}
	}

	if best == "" || bestScore > maxEditDistance {
		return "", false
	}
	return best, true
}

// confusionOverlap counts positions where two equal-length words differ by a
// known OCR confusion pair.
func (n *Normalizer) confusionOverlap(a, b string) int {
	count := 0
	for i := 0; i < len(a); i++ {
		if a[i] != b[i] && n.lex.IsConfusionPair(a[i], b[i]) {
			count++
		}
	}
	return count
}

// Levenshtein computes the edit distance between two strings using the
// two-row dynamic programming form.
func Levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	if len(a) > len(b) {
		a, b = b, a
	}

	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)
	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(b); j++ {
		curr[0] = j
		for i := 1; i <= len(a); i++ {
			if a[i-1] == b[j-1] {
				curr[i] = prev[i-1]
			} else {
				curr[i] = 1 + min3(prev[i-1], prev[i], curr[i-1])
			}
		}
		prev, curr = curr, prev
	}

	return prev[len(a)]
}

// Similarity maps edit distance to [0,1]: 1 means identical.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 1
	}
	return 1 - float64(Levenshtein(a, b))/float64(longest)
}

func min3(a, b, c int) int {
	if a <= b && a <= c {
		return a
	}
	if b <= c {
		return b
	}
	return c
}

func hasLetter(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 'a' && s[i] <= 'z' || s[i] >= 'A' && s[i] <= 'Z' {
			return true
		}
	}
	return false
}
