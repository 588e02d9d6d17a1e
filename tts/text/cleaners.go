package text

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Cleaner names. Each names a dialect-specific normalization ruleset; the
// accent selector in the tts package maps speaker ids onto these.
const (
	CleanerCentral    = "catalan_cleaners"
	CleanerBalear     = "catalan_balear_cleaners"
	CleanerOccidental = "catalan_occidental_cleaners"
	CleanerValencia   = "catalan_valencia_cleaners"
)

// Errors reported by the encoding step.
var (
	ErrUnknownCleaner = errors.New("unknown cleaner")
	ErrCannotEncode   = errors.New("rune not in symbol vocabulary")
)

// cleanFunc normalizes raw text into the symbol vocabulary.
type cleanFunc func(string) string

var cleaners = map[string]cleanFunc{
	CleanerCentral:    cleanCentral,
	CleanerBalear:     cleanBalear,
	CleanerOccidental: cleanOccidental,
	CleanerValencia:   cleanValencia,
}

// Registered reports whether a cleaner with the given name exists.
func Registered(name string) bool {
	_, ok := cleaners[name]
	return ok
}

// Names returns the registered cleaner names in sorted order.
func Names() []string {
	names := make([]string, 0, len(cleaners))
	for name := range cleaners {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TextToSequence cleans text with the named ruleset and encodes every
// resulting rune to its symbol code. The encoding is bijective over the
// vocabulary, so SequenceToText inverts it exactly.
func TextToSequence(text, cleaner string) ([]int64, error) {
	clean, ok := cleaners[cleaner]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCleaner, cleaner)
	}

	cleaned := clean(text)
	seq := make([]int64, 0, len(cleaned))
	for _, r := range cleaned {
		id, ok := idFor(r)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrCannotEncode, r)
		}
		seq = append(seq, id)
	}
	return seq, nil
}

// SequenceToText decodes symbol codes back into a readable string.
// Unknown codes are skipped; every code TextToSequence can emit decodes
// to the rune it was encoded from.
func SequenceToText(seq []int64) string {
	var b strings.Builder
	b.Grow(len(seq))
	for _, id := range seq {
		if r, ok := runeFor(id); ok {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Intersperse inserts item between every pair of adjacent codes: a
// sequence of length N becomes length 2N-1. The acoustic model's
// duration predictor requires these explicit blank placeholders.
func Intersperse(seq []int64, item int64) []int64 {
	if len(seq) == 0 {
		return nil
	}
	out := make([]int64, 0, 2*len(seq)-1)
	for i, id := range seq {
		if i > 0 {
			out = append(out, item)
		}
		out = append(out, id)
	}
	return out
}

// Catalan abbreviations expanded by every cleaner. Each pattern is
// anchored at a word boundary so "c." never matches inside a word ending
// in c, and a full stop after an ordinary word is left alone.
type abbreviation struct {
	re   *regexp.Regexp
	full string
}

func newAbbreviation(abbr, full string) abbreviation {
	return abbreviation{re: regexp.MustCompile(`\b` + abbr + `\.`), full: full}
}

var abbreviations = []abbreviation{
	newAbbreviation("sr", "senyor"),
	newAbbreviation("sra", "senyora"),
	newAbbreviation("dr", "doctor"),
	newAbbreviation("dra", "doctora"),
	newAbbreviation("st", "sant"),
	newAbbreviation("sta", "santa"),
	newAbbreviation("núm", "número"),
	newAbbreviation("pàg", "pàgina"),
	newAbbreviation("av", "avinguda"),
	newAbbreviation("etc", "etcètera"),
	newAbbreviation("c", "carrer"),
}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	quotesRe     = regexp.MustCompile("[\"“”«»]")
)

// cleanBase applies the normalization every dialect shares: NFC, case
// folding, abbreviation and number expansion, punctuation and whitespace
// normalization.
func cleanBase(text string) string {
	s := norm.NFC.String(text)
	s = strings.ToLower(s)

	for _, a := range abbreviations {
		s = a.re.ReplaceAllString(s, a.full+" ")
	}

	s = expandNumbers(s)

	// Curly apostrophes and quote marks are not in the vocabulary.
	s = strings.ReplaceAll(s, "’", "'")
	s = quotesRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "¿", "")
	s = strings.ReplaceAll(s, "¡", "")
	s = strings.ReplaceAll(s, "—", "-")
	s = strings.ReplaceAll(s, "…", "...")

	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Dialect rules. These are lightweight stand-ins for the full phonemic
// rulesets: each rewrites the traits that distinguish the accent while
// staying inside the shared symbol vocabulary.
var (
	finalUnstressedA = regexp.MustCompile(`a\b`)
	finalVowelR      = regexp.MustCompile(`([aeiouàèéíòóú])r\b`)
	initialX         = regexp.MustCompile(`\bx`)
)

// cleanCentral implements central Catalan: vowel reduction of final
// unstressed a, infinitive-final r dropped, word-initial x fricativized.
func cleanCentral(text string) string {
	s := cleanBase(text)
	s = finalUnstressedA.ReplaceAllString(s, "ə")
	s = finalVowelR.ReplaceAllString(s, "$1")
	s = initialX.ReplaceAllString(s, "ʃ")
	return s
}

// cleanBalear implements Balearic Catalan: vowel reduction as in central
// but word-final r is preserved.
func cleanBalear(text string) string {
	s := cleanBase(text)
	s = finalUnstressedA.ReplaceAllString(s, "ə")
	s = initialX.ReplaceAllString(s, "ʃ")
	return s
}

// cleanOccidental implements north-western Catalan: no vowel reduction.
func cleanOccidental(text string) string {
	s := cleanBase(text)
	s = finalVowelR.ReplaceAllString(s, "$1")
	return s
}

// cleanValencia implements Valencian: no vowel reduction and word-final
// r preserved, so only the shared normalization applies.
func cleanValencia(text string) string {
	return cleanBase(text)
}
