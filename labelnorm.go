package labelnorm

import (
	"context"

	"github.com/cataloglab/labelnorm/internal/cache"
	"github.com/cataloglab/labelnorm/internal/config"
	"github.com/cataloglab/labelnorm/internal/hierarchy"
	"github.com/cataloglab/labelnorm/internal/identity"
	"github.com/cataloglab/labelnorm/internal/matcher"
	"github.com/cataloglab/labelnorm/internal/rules"
)

// Config is the engine's construction-time configuration surface. All tables
// are static: loaded once, validated fail-fast, never hot-reloaded.
type Config = config.Config

// MatchResult is the immutable outcome of comparing two label strings.
type MatchResult = matcher.Result

// CacheStats is a read-only snapshot of the normalization cache counters.
type CacheStats = cache.Stats

// Scored is one candidate returned by FindSimilar.
type Scored = matcher.Scored

// SearchOptions tunes FindSimilar.
type SearchOptions = matcher.SearchOptions

// DefaultConfig returns the built-in rule tables and tuning values.
func DefaultConfig() Config {
	return config.Default()
}

// LoadConfig reads a .labelnorm.kdl file, overlays it on the defaults and
// validates the result. An empty path yields validated defaults.
func LoadConfig(path string) (*Config, error) {
	return config.Load(path)
}

// Engine is the normalization + canonical-ID + fuzzy-matching core. It owns
// the only mutable state in the system (the LRU cache); everything else is
// immutable after New, so an Engine is safe for concurrent use.
type Engine struct {
	cfg      config.Config
	rules    *rules.Engine
	cache    *cache.Cache
	resolver *hierarchy.Resolver
	matcher  *matcher.Matcher
}

// New validates cfg and constructs an engine. All configuration problems
// (malformed tables, thresholds outside [0,1], non-positive cache capacity)
// surface here; once an engine exists, its per-record operations never fail.
func New(cfg Config) (*Engine, error) {
	if err := config.NewValidator().ValidateAndSetDefaults(&cfg); err != nil {
		return nil, err
	}

	ruleEngine, err := rules.NewEngine(cfg.Normalizer)
	if err != nil {
		return nil, err
	}

	lru, err := cache.New(cfg.Cache.Capacity)
	if err != nil {
		return nil, err
	}

	var resolver *hierarchy.Resolver
	if cfg.Hierarchy.Path != "" {
		resolver, err = hierarchy.LoadTOML(cfg.Hierarchy.Path, cfg.Hierarchy.Parents, ruleEngine.Normalize)
	} else if len(cfg.Hierarchy.Parents) > 0 {
		resolver, err = hierarchy.NewResolver(cfg.Hierarchy.Parents, ruleEngine.Normalize)
	}
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:      cfg,
		rules:    ruleEngine,
		cache:    lru,
		resolver: resolver,
	}

	m, err := matcher.New(e.cachedNormalize, cfg.Matcher, resolver)
	if err != nil {
		return nil, err
	}
	e.matcher = m

	return e, nil
}

// NewDefault constructs an engine from the built-in configuration.
func NewDefault() (*Engine, error) {
	return New(config.Default())
}

// Normalize runs the rule pipeline on a raw label, bypassing the cache.
// It never fails; degenerate inputs yield an empty string.
func (e *Engine) Normalize(raw string) string {
	return e.rules.Normalize(raw)
}

// StripYearAndSuffix exposes the copyright/suffix-stripping sub-step
// standalone for collaborators that only need metadata cleanup.
func (e *Engine) StripYearAndSuffix(raw string) string {
	return e.rules.StripYearAndSuffix(raw)
}

// CanonicalLabelID returns the stable content-addressed identifier for a raw
// label, going through the cache so duplicate-heavy streams stay cheap.
func (e *Engine) CanonicalLabelID(raw string) string {
	return e.lookup(raw).CanonicalID
}

// NormalizedAndID returns both halves of the cached computation in one
// lookup.
func (e *Engine) NormalizedAndID(raw string) (string, string) {
	entry := e.lookup(raw)
	return entry.Normalized, entry.CanonicalID
}

// Match compares two raw labels using the configured default threshold.
func (e *Engine) Match(a, b string) MatchResult {
	return e.matcher.Match(a, b)
}

// MatchThreshold compares two raw labels against an explicit threshold;
// thresholds outside [0,1] are rejected.
func (e *Engine) MatchThreshold(a, b string, threshold float64) (MatchResult, error) {
	return e.matcher.MatchThreshold(a, b, threshold)
}

// FindSimilar returns the candidates similar to query, sorted by descending
// confidence. See matcher.SearchOptions for threshold and limit handling.
func (e *Engine) FindSimilar(ctx context.Context, query string, candidates []string, opts SearchOptions) ([]Scored, error) {
	return e.matcher.FindSimilar(ctx, query, candidates, opts)
}

// ParentOf looks up the corporate parent of a label (raw or normalized).
// The second return is false when no parent is known or no hierarchy table
// was configured.
func (e *Engine) ParentOf(label string) (string, bool) {
	if e.resolver == nil {
		return "", false
	}
	return e.resolver.ParentOf(e.rules.Normalize(label))
}

// ClearCache drops all cached entries and resets statistics. Intended for
// test isolation and manual memory reclamation.
func (e *Engine) ClearCache() {
	e.cache.Clear()
}

// CacheStats returns a snapshot of the normalization cache counters.
func (e *Engine) CacheStats() CacheStats {
	return e.cache.Stats()
}

// cachedNormalize is the matcher's normalization path: identical to
// Normalize but memoized.
func (e *Engine) cachedNormalize(raw string) string {
	return e.lookup(raw).Normalized
}

func (e *Engine) lookup(raw string) cache.Entry {
	return e.cache.GetOrCompute(raw, func(r string) cache.Entry {
		normalized := e.rules.Normalize(r)
		return cache.Entry{
			Normalized:  normalized,
			CanonicalID: identity.CanonicalID(normalized),
		}
	})
}
