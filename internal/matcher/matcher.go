// Package matcher decides whether two label strings denote the same
// real-world entity, with a confidence score in [0,1].
package matcher

import (
	"math"

	"github.com/hbollon/go-edlib"

	"github.com/cataloglab/labelnorm/internal/config"
	"github.com/cataloglab/labelnorm/internal/hierarchy"
	"github.com/cataloglab/labelnorm/internal/lnerrors"
)

// Result is the immutable outcome of one comparison. Confidence is reported
// regardless of IsMatch so callers can apply their own thresholds. Related is
// set when the two labels belong to the same corporate family without being
// treated as the same entity.
type Result struct {
	IsMatch     bool
	Confidence  float64
	Related     bool
	NormalizedA string
	NormalizedB string
}

// Matcher scores pairs of raw label strings. It holds no mutable state of
// its own: normalization is delegated (usually to the cache-backed engine
// path) and the hierarchy table is immutable, so a Matcher is safe for
// concurrent use.
type Matcher struct {
	normalize func(string) string
	cfg       config.Matcher
	resolver  *hierarchy.Resolver
}

// New creates a matcher. The normalize callback must be the engine's rule
// pipeline (cache-backed or not); resolver may be nil when no hierarchy table
// is configured.
func New(normalize func(string) string, cfg config.Matcher, resolver *hierarchy.Resolver) (*Matcher, error) {
	if normalize == nil {
		return nil, lnerrors.NewConfigError("matcher", "normalize", errNilNormalizer)
	}
	if cfg.DefaultThreshold < 0 || cfg.DefaultThreshold > 1 {
		return nil, lnerrors.NewValidationError("DefaultThreshold", cfg.DefaultThreshold, "a value in [0, 1]")
	}
	return &Matcher{
		normalize: normalize,
		cfg:       cfg,
		resolver:  resolver,
	}, nil
}

// Match compares two raw labels against the configured default threshold.
func (m *Matcher) Match(a, b string) Result {
	result, _ := m.MatchThreshold(a, b, m.cfg.DefaultThreshold)
	return result
}

// MatchThreshold compares two raw labels against an explicit threshold.
// A threshold outside [0,1] is rejected, mirroring construction-time
// validation for callers that take thresholds from user input.
func (m *Matcher) MatchThreshold(a, b string, threshold float64) (Result, error) {
	if threshold < 0 || threshold > 1 {
		return Result{}, lnerrors.NewValidationError("threshold", threshold, "a value in [0, 1]")
	}

	na := m.normalize(a)
	nb := m.normalize(b)
	confidence, related := m.score(na, nb)

	return Result{
		IsMatch:     confidence >= threshold,
		Confidence:  confidence,
		Related:     related,
		NormalizedA: na,
		NormalizedB: nb,
	}, nil
}

// score computes the confidence for two already-normalized labels. Every
// signal below is symmetric in its arguments, so score(a,b) == score(b,a)
// bit for bit.
func (m *Matcher) score(na, nb string) (float64, bool) {
	// Exact-match short circuit; this is the only way to reach 1.0.
	if na == nb {
		if na == "" {
			return 0, false
		}
		return 1.0, false
	}
	if na == "" || nb == "" {
		return 0, false
	}

	confidence := m.baseScore(na, nb)

	if initialismEqual(na, nb) {
		confidence = math.Max(confidence, m.cfg.AcronymFloor)
	}

	switch detectContainment(na, nb) {
	case containmentPrefix:
		confidence = math.Max(confidence, m.cfg.ContainmentFloor)
	case containmentPhrase:
		confidence = math.Max(confidence, m.cfg.PhraseFloor)
	}

	related := false
	if m.resolver != nil && m.resolver.SameParent(na, nb) {
		related = true
		if m.cfg.SubsidiaryMatch {
			confidence = math.Max(confidence, m.cfg.AcronymFloor)
		}
	}

	// Heuristic floors are all < 1.0, but clamp anyway so a misconfigured
	// floor can never report certainty for non-identical strings.
	if confidence > maxHeuristicConfidence {
		confidence = maxHeuristicConfidence
	}
	return confidence, related
}

// baseScore blends a character-level Jaro-Winkler similarity with token-set
// overlap. Jaro-Winkler rewards shared prefixes, which suits label variants
// like "Atlantic Records" / "Atlantic Recording"; token overlap rescues
// reordered forms the edit distance punishes.
func (m *Matcher) baseScore(na, nb string) float64 {
	jw, err := edlib.StringsSimilarity(na, nb, edlib.JaroWinkler)
	if err != nil {
		jw = 0
	}
	overlap := m.tokenOverlap(na, nb)
	return m.cfg.EditWeight*float64(jw) + (1-m.cfg.EditWeight)*overlap
}

// maxHeuristicConfidence caps boosted scores strictly below the exact-match
// confidence of 1.0.
const maxHeuristicConfidence = 0.99
