package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/ntalo/ntalo/internal/lexicon"
)

// Stage is one pure transformation in the normalization pipeline. Stages are
// composed in a fixed order and each one is unit-testable on its own.
type Stage struct {
	Apply func(string) string
	Name  string
}

// Pipeline runs an ordered list of stages over an input string.
type Pipeline struct {
	stages []Stage
}

// Run applies every stage in order.
func (p *Pipeline) Run(s string) string {
	for _, stage := range p.stages {
		s = stage.Apply(s)
	}
	return s
}

// Stages exposes the stage list for per-stage testing.
func (p *Pipeline) Stages() []Stage {
	return p.stages
}

var (
	parentheticalRe = regexp.MustCompile(`\([^)]*\)`)
	skuTokenRe      = regexp.MustCompile(`\b[a-z]\d+[a-z]?\d*\b`)
	nonAlnumRe      = regexp.MustCompile(`[^a-z0-9]+`)
	digitOneRe      = regexp.MustCompile(`([a-z])1([a-z])`)
	digitZeroRe     = regexp.MustCompile(`([a-z])0([a-z])`)
)

// Normalizer owns the full raw-name-to-normalized-name transformation:
// size extraction, the cleanup pipeline and OCR word correction.
type Normalizer struct {
	lex      *lexicon.Lexicon
	sizes    *SizeExtractor
	pipeline *Pipeline
}

// New builds a Normalizer over the given lexicon.
func New(lex *lexicon.Lexicon) *Normalizer {
	n := &Normalizer{
		lex:   lex,
		sizes: NewSizeExtractor(lex),
	}
	n.pipeline = &Pipeline{stages: []Stage{
		{Name: "lowercase", Apply: strings.ToLower},
		{Name: "strip_diacritics", Apply: StripDiacritics},
		{Name: "strip_codes", Apply: stripCodes},
		{Name: "collapse_non_alnum", Apply: collapseNonAlnum},
		{Name: "strip_noise_words", Apply: n.stripNoiseWords},
		{Name: "fix_ocr_chars", Apply: fixOCRChars},
		{Name: "join_letter_runs", Apply: joinLetterRuns},
		{Name: "correct_words", Apply: n.correctWords},
		{Name: "collapse_spaces", Apply: collapseSpaces},
	}}
	return n
}

// Normalize cleans a raw OCR name and re-appends its size as an underscore
// suffix ("sucre_5kg"). Applying Normalize to its own output is a no-op.
func (n *Normalizer) Normalize(raw string) string {
	base, size := n.NormalizeBase(raw)
	if size == "" {
		return base
	}
	if base == "" {
		return size
	}
	return base + "_" + size
}

// NormalizeBase cleans a raw name without re-appending the size suffix.
// The size is returned separately. Split units ("m l") are repaired before
// size extraction so a shattered "330 m l" is still recognized as a size.
func (n *Normalizer) NormalizeBase(raw string) (base, size string) {
	pre := fixSplitUnits(strings.ToLower(raw))
	size, base = n.sizes.Extract(pre)
	return n.pipeline.Run(base), size
}

// Pipeline returns the underlying stage pipeline.
func (n *Normalizer) Pipeline() *Pipeline {
	return n.pipeline
}

// Lexicon returns the lookup tables this normalizer was built over.
func (n *Normalizer) Lexicon() *lexicon.Lexicon {
	return n.lex
}

// StripDiacritics removes combining marks after NFD decomposition, so
// "crème glacée" becomes "creme glacee".
func StripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// stripCodes removes parenthetical annotations and SKU-like tokens such as
// "a4523" or "x12b3" that OCR lifts from barcode lines.
func stripCodes(s string) string {
	s = parentheticalRe.ReplaceAllString(s, " ")
	return skuTokenRe.ReplaceAllString(s, " ")
}

func collapseNonAlnum(s string) string {
	return strings.TrimSpace(nonAlnumRe.ReplaceAllString(s, " "))
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func (n *Normalizer) stripNoiseWords(s string) string {
	fields := strings.Fields(s)
	kept := fields[:0]
	for _, f := range fields {
		if _, noise := n.lex.NoiseWords[f]; !noise {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, " ")
}

// fixOCRChars repairs digit-for-letter confusions, but only when the digit
// sits between letters: a 1 surrounded by letters is almost always an l, a 0
// an o. Digits at word edges are left alone; those are handled by the
// dictionary-backed corrector, which can tell "sucr3" from a real count.
func fixOCRChars(s string) string {
	// Run twice so overlapping matches ("r1z0n") are both fixed.
	for i := 0; i < 2; i++ {
		s = digitOneRe.ReplaceAllString(s, "${1}l${2}")
		s = digitZeroRe.ReplaceAllString(s, "${1}o${2}")
	}
	return s
}

// joinLetterRuns rejoins words OCR shattered into single letters. Only runs
// of three or more single-letter tokens are joined: two in a row can be a
// legitimate short word pair (French "à" plus an initial, for example).
func joinLetterRuns(s string) string {
	fields := strings.Fields(s)
	var out []string
	i := 0
	for i < len(fields) {
		j := i
		for j < len(fields) && len(fields[j]) == 1 && isLetterToken(fields[j]) {
			j++
		}
		if j-i >= 3 {
			out = append(out, strings.Join(fields[i:j], ""))
		} else {
			out = append(out, fields[i:j]...)
		}
		if j == i {
			out = append(out, fields[i])
			j = i + 1
		}
		i = j
	}
	return strings.Join(out, " ")
}

func isLetterToken(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
