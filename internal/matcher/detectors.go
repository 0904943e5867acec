package matcher

import (
	"errors"
	"strings"
	"unicode"

	"github.com/surgebase/porter2"
)

var errNilNormalizer = errors.New("normalize callback cannot be nil")

// minStemLength matches the shortest token worth stemming; below this the
// stem is noisier than the token itself.
const minStemLength = 3

type containmentKind int

const (
	containmentNone containmentKind = iota
	containmentPrefix
	containmentPhrase
)

// tokenOverlap computes the Jaccard overlap of the two labels' token sets.
// Tokens are lowercased and, when stemming is enabled, reduced with Porter2
// so inflected descriptors collapse ("Records", "Recording" and "Recordings"
// all stem to "record").
func (m *Matcher) tokenOverlap(na, nb string) float64 {
	setA := m.tokenSet(na)
	setB := m.tokenSet(nb)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for tok := range setA {
		if setB[tok] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

func (m *Matcher) tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(strings.ToLower(s)) {
		if m.cfg.StemTokens && len(tok) >= minStemLength && isASCIILetters(tok) {
			tok = porter2.Stem(tok)
		}
		set[tok] = true
	}
	return set
}

// initialismEqual reports whether one label is a single token whose letters
// are exactly the initials of the other's words, in either direction. This
// catches abbreviation pairs missing from the static acronym table, e.g.
// "Wea" against "Warner Elektra Atlantic".
func initialismEqual(na, nb string) bool {
	return isInitialismOf(na, nb) || isInitialismOf(nb, na)
}

func isInitialismOf(short, long string) bool {
	shortTokens := strings.Fields(short)
	longTokens := strings.Fields(long)
	if len(shortTokens) != 1 || len(longTokens) < 2 {
		return false
	}

	initials := make([]rune, 0, len(longTokens))
	for _, tok := range longTokens {
		r := []rune(tok)[0]
		if !unicode.IsLetter(r) {
			return false
		}
		initials = append(initials, unicode.ToUpper(r))
	}

	return strings.ToUpper(shortTokens[0]) == string(initials)
}

// detectContainment reports whether the shorter label is a prefix of the
// longer one ("Def Jam" in "Def Jam Recordings") or an interior whole-token
// phrase of it. Containment is evaluated on whole tokens so "Atlantic" never
// matches inside "Transatlantic".
func detectContainment(na, nb string) containmentKind {
	short, long := na, nb
	if len(short) > len(long) {
		short, long = long, short
	}
	if short == "" || len(short) == len(long) {
		return containmentNone
	}

	if strings.HasPrefix(long, short+" ") {
		return containmentPrefix
	}
	if strings.Contains(long, " "+short+" ") || strings.HasSuffix(long, " "+short) {
		return containmentPhrase
	}
	return containmentNone
}

func isASCIILetters(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 'a' || c > 'z' {
			return false
		}
	}
	return true
}
