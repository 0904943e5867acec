package rules

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/cataloglab/labelnorm/internal/config"
	"github.com/cataloglab/labelnorm/internal/lnerrors"
)

// Engine is the rule-based text cleaner. It applies a fixed pipeline of named
// transforms to raw label strings:
//
//  1. CollapseWhitespace - trim and squeeze runs of whitespace
//  2. StripCopyright     - leading/trailing (C) / (P) / © / ℗ markers and
//     adjacent years
//  3. StripSuffixes      - trailing corporate designators, repeated until
//     stable
//  4. TitleCase          - canonical casing, recognized acronyms kept verbatim
//  5. ExpandAcronyms     - whole-token expansion to the canonical long form
//
// Suffix stripping runs before acronym expansion so an acronym embedded in a
// suffix token is never misread. All transforms are pure; an Engine is
// immutable after construction and safe for concurrent use.
type Engine struct {
	suffixRe        *regexp.Regexp
	leadingMarkerRe *regexp.Regexp
	leadingYearRe   *regexp.Regexp
	trailingRe      *regexp.Regexp
	acronyms        map[string]string
	yearMin         int
	yearMax         int
}

var bareYearRe = regexp.MustCompile(`^\d{4}$`)

// NewEngine compiles the rule tables into an engine. Malformed tables are
// rejected here so per-record calls never fail.
func NewEngine(cfg config.Normalizer) (*Engine, error) {
	if len(cfg.Suffixes) == 0 {
		return nil, lnerrors.NewConfigError("normalizer", "Suffixes", fmt.Errorf("suffix list cannot be empty"))
	}
	if len(cfg.CopyrightMarkers) == 0 {
		return nil, lnerrors.NewConfigError("normalizer", "CopyrightMarkers", fmt.Errorf("copyright marker list cannot be empty"))
	}

	suffixAlt := quoteAll(cfg.Suffixes)
	suffixRe, err := regexp.Compile(`(?i),?\s*\b(?:` + suffixAlt + `)\.?\s*$`)
	if err != nil {
		return nil, lnerrors.NewConfigError("normalizer", "Suffixes", err)
	}

	markerAlt := quoteAll(cfg.CopyrightMarkers)
	leadingMarkerRe, err := regexp.Compile(`(?i)^\s*(?:` + markerAlt + `)`)
	if err != nil {
		return nil, lnerrors.NewConfigError("normalizer", "CopyrightMarkers", err)
	}
	trailingRe, err := regexp.Compile(`(?i)\s*(?:` + markerAlt + `)\s*(\d{4})?\s*$`)
	if err != nil {
		return nil, lnerrors.NewConfigError("normalizer", "CopyrightMarkers", err)
	}

	acronyms := make(map[string]string, len(cfg.Acronyms))
	for short, long := range cfg.Acronyms {
		acronyms[short] = long
	}

	yearMin := cfg.YearMin
	if yearMin == 0 {
		yearMin = config.DefaultYearMin
	}

	e := &Engine{
		suffixRe:        suffixRe,
		leadingMarkerRe: leadingMarkerRe,
		leadingYearRe:   regexp.MustCompile(`^(\d{4})\s+(.+)$`),
		trailingRe:      trailingRe,
		acronyms:        acronyms,
		yearMin:         yearMin,
		yearMax:         time.Now().Year() + cfg.YearSlack,
	}

	// Acronym long forms must already be in canonical form, otherwise
	// expansion would break the idempotence guarantee of Normalize.
	for short, long := range acronyms {
		if e.Normalize(long) != long {
			return nil, lnerrors.NewConfigError("normalizer", "Acronyms",
				fmt.Errorf("expansion %q -> %q is not normalization-stable", short, long))
		}
	}

	return e, nil
}

// Normalize runs the full cleaning pipeline. It never fails: empty input, or
// input consisting entirely of suffixes and copyright noise, yields an empty
// string and callers decide how to treat that.
func (e *Engine) Normalize(raw string) string {
	s := e.stripNoise(CollapseWhitespace(raw))
	s = e.TitleCase(s)
	return e.ExpandAcronyms(s)
}

// StripYearAndSuffix exposes the metadata-cleanup prefix of the pipeline
// (whitespace, copyright artifacts, corporate suffixes) without the casing and
// acronym steps. ETL collaborators use this when they need cleanup only.
func (e *Engine) StripYearAndSuffix(raw string) string {
	return e.stripNoise(CollapseWhitespace(raw))
}

// stripNoise alternates copyright and suffix stripping until the string is
// stable. Suffix removal can expose a trailing marker (and vice versa), so a
// single ordered pass is not enough to make Normalize idempotent.
func (e *Engine) stripNoise(s string) string {
	out := s
	for {
		prev := out
		out = e.StripSuffixes(e.StripCopyright(out))
		if out == prev {
			return out
		}
	}
}

// CollapseWhitespace trims the string and squeezes interior whitespace runs
// (including tabs and newlines) to single spaces.
//
//	"  Atlantic   Records " -> "Atlantic Records"
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// StripCopyright removes leading and trailing copyright artifacts: the
// configured markers plus a 4-digit year adjacent to them. A leading year is
// also stripped on its own when it falls in the plausible metadata range and
// is followed by more text, matching how ℗-lines appear in feeds. Years
// embedded in the label's actual name are left alone.
//
//	"(C) 2019 Atlantic Recording Corp" -> "Atlantic Recording Corp"
//	"Blink 1982"                       -> "Blink 1982"
func (e *Engine) StripCopyright(s string) string {
	out := s
	markerSeen := false

	for {
		prev := out
		if loc := e.leadingMarkerRe.FindStringIndex(out); loc != nil {
			out = strings.TrimSpace(out[loc[1]:])
			markerSeen = true
		}
		if m := e.leadingYearRe.FindStringSubmatch(out); m != nil && e.yearInRange(m[1]) {
			out = strings.TrimSpace(m[2])
		}
		if out == prev {
			break
		}
	}

	// A marker followed by nothing but a year is pure metadata.
	if markerSeen && bareYearRe.MatchString(out) && e.yearInRange(out) {
		out = ""
	}

	for {
		m := e.trailingRe.FindStringSubmatch(out)
		if m == nil {
			break
		}
		if m[1] != "" && !e.yearInRange(m[1]) {
			break
		}
		trimmed := strings.TrimSpace(e.trailingRe.ReplaceAllString(out, ""))
		if trimmed == out {
			break
		}
		out = trimmed
	}

	return out
}

// StripSuffixes removes one trailing corporate designator at a time until no
// further suffix matches, which resolves compounded forms like "Inc. LLC" by
// repeated single-suffix stripping.
//
//	"Sony Music Entertainment, Inc." -> "Sony Music Entertainment"
//	"Big Label Inc. LLC"             -> "Big Label"
func (e *Engine) StripSuffixes(s string) string {
	out := s
	for {
		next := strings.TrimSpace(e.suffixRe.ReplaceAllString(out, ""))
		if next == out {
			return out
		}
		out = next
	}
}

// TitleCase normalizes casing to title case, one word at a time. A word that
// is all-caps and appears as a key in the acronym table is kept verbatim, so
// "UMG" survives where "ATLANTIC" becomes "Atlantic". Non-ASCII letters are
// cased per Unicode rules.
func (e *Engine) TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if _, ok := e.acronyms[w]; ok && w == strings.ToUpper(w) {
			continue
		}
		words[i] = titleWord(w)
	}
	return strings.Join(words, " ")
}

// ExpandAcronyms replaces whole tokens that match an acronym key with the
// canonical long form. Substrings are never touched, so "UMGrecords" stays
// intact. An identity entry (e.g. "EMI" -> "EMI") pins an acronym that should
// never expand.
func (e *Engine) ExpandAcronyms(s string) string {
	if len(e.acronyms) == 0 {
		return s
	}
	words := strings.Fields(s)
	out := make([]string, 0, len(words))
	for _, w := range words {
		if long, ok := e.acronyms[w]; ok {
			out = append(out, strings.Fields(long)...)
			continue
		}
		out = append(out, w)
	}
	return strings.Join(out, " ")
}

func (e *Engine) yearInRange(year string) bool {
	y, err := strconv.Atoi(year)
	if err != nil {
		return false
	}
	return y >= e.yearMin && y <= e.yearMax
}

func quoteAll(items []string) string {
	quoted := make([]string, 0, len(items))
	for _, it := range items {
		quoted = append(quoted, regexp.QuoteMeta(it))
	}
	return strings.Join(quoted, "|")
}

func titleWord(w string) string {
	runes := []rune(w)
	for i, r := range runes {
		if i == 0 {
			runes[i] = unicode.ToUpper(r)
		} else {
			runes[i] = unicode.ToLower(r)
		}
	}
	return string(runes)
}
