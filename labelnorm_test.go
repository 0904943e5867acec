package labelnorm

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hexIDRe = regexp.MustCompile(`^[0-9a-f]{32}$`)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewDefault()
	require.NoError(t, err)
	return e
}

func TestCanonicalIDEqualityAcrossVariants(t *testing.T) {
	e := newTestEngine(t)

	variants := []string{
		"Atlantic Records",
		"ATLANTIC RECORDS LLC",
		"atlantic records, inc.",
		"  Atlantic   Records  ",
	}

	first := e.CanonicalLabelID(variants[0])
	assert.Regexp(t, hexIDRe, first)

	for _, v := range variants[1:] {
		id := e.CanonicalLabelID(v)
		assert.Regexp(t, hexIDRe, id)
		assert.Equal(t, first, id, "variant %q should share the canonical ID", v)
	}
}

func TestCanonicalIDStableAcrossEngines(t *testing.T) {
	e1 := newTestEngine(t)
	e2 := newTestEngine(t)

	assert.Equal(t,
		e1.CanonicalLabelID("Def Jam Recordings"),
		e2.CanonicalLabelID("Def Jam Recordings"),
		"IDs are content-addressed, not engine-local")
}

func TestDistinctLabelsGetDistinctIDs(t *testing.T) {
	e := newTestEngine(t)
	assert.NotEqual(t,
		e.CanonicalLabelID("Atlantic Records"),
		e.CanonicalLabelID("Interscope Records"))
}

func TestNormalizedAndID(t *testing.T) {
	e := newTestEngine(t)

	normalized, id := e.NormalizedAndID("UMG Recordings, Inc.")
	assert.Equal(t, "Universal Music Group Recordings", normalized)
	assert.Equal(t, e.CanonicalLabelID("Universal Music Group Recordings"), id)
}

func TestCacheStatsAndClear(t *testing.T) {
	e := newTestEngine(t)

	e.CanonicalLabelID("Atlantic Records")
	e.CanonicalLabelID("Atlantic Records")
	e.CanonicalLabelID("Blue Note")

	stats := e.CacheStats()
	assert.Equal(t, int64(3), stats.Lookups)
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(2), stats.Misses)
	assert.Equal(t, 2, stats.Size)

	e.ClearCache()
	stats = e.CacheStats()
	assert.Zero(t, stats.Lookups)
	assert.Zero(t, stats.Size)
}

func TestMatchFacade(t *testing.T) {
	e := newTestEngine(t)

	res := e.Match("Atlantic Records LLC", "atlantic records")
	assert.True(t, res.IsMatch)
	assert.Equal(t, 1.0, res.Confidence)
	assert.Equal(t, res.NormalizedA, res.NormalizedB)

	res = e.Match("Atlantic Records", "Merge Records")
	assert.False(t, res.IsMatch)
}

func TestMatchThresholdValidation(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.MatchThreshold("a", "b", 1.5)
	assert.Error(t, err)

	_, err = e.MatchThreshold("a", "b", -0.1)
	assert.Error(t, err)

	res, err := e.MatchThreshold("Def Jam", "Def Jam Recordings", 0.5)
	require.NoError(t, err)
	assert.True(t, res.IsMatch)
}

func TestFindSimilarFacade(t *testing.T) {
	e := newTestEngine(t)

	candidates := []string{
		"ATLANTIC RECORDS LLC",
		"Atlantic Recording Corporation",
		"Merge Records",
	}

	results, err := e.FindSimilar(context.Background(), "Atlantic Records", candidates, SearchOptions{})
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "ATLANTIC RECORDS LLC", results[0].Label)
	assert.Equal(t, 1.0, results[0].Confidence)
}

func TestHierarchyViaConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Hierarchy.Parents = map[string]string{
		"Def Jam Recordings": "Universal Music Group",
		"Interscope Records": "Universal Music Group",
	}

	e, err := New(cfg)
	require.NoError(t, err)

	parent, ok := e.ParentOf("Def Jam Recordings LLC")
	assert.True(t, ok)
	assert.Equal(t, e.Normalize("Universal Music Group"), parent)

	res := e.Match("Def Jam Recordings", "Interscope Records")
	assert.True(t, res.Related, "siblings under one parent are related")

	_, ok = e.ParentOf("Merge Records")
	assert.False(t, ok)
}

func TestParentOfWithoutHierarchy(t *testing.T) {
	e := newTestEngine(t)
	_, ok := e.ParentOf("Def Jam Recordings")
	assert.False(t, ok)
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cache.Capacity = -5
	_, err := New(cfg)
	assert.Error(t, err)

	cfg = DefaultConfig()
	cfg.Matcher.DefaultThreshold = 2.0
	_, err = New(cfg)
	assert.Error(t, err)

	cfg = DefaultConfig()
	cfg.Normalizer.Suffixes = nil
	_, err = New(cfg)
	assert.Error(t, err)
}

func TestStripYearAndSuffixFacade(t *testing.T) {
	e := newTestEngine(t)
	assert.Equal(t, "Atlantic Recording", e.StripYearAndSuffix("(C) 2019 Atlantic Recording Corp"))
}

func TestNormalizeBypassesCache(t *testing.T) {
	e := newTestEngine(t)
	out := e.Normalize("SONY MUSIC entertainment")
	assert.Equal(t, "Sony Music Entertainment", out)
	assert.Zero(t, e.CacheStats().Lookups)
}

func TestDegenerateInputs(t *testing.T) {
	e := newTestEngine(t)

	for _, raw := range []string{"", "   ", "LLC", "(C) 2019"} {
		normalized, id := e.NormalizedAndID(raw)
		assert.Empty(t, normalized, "input %q", raw)
		assert.Regexp(t, hexIDRe, id, "empty form still gets a stable ID")
	}

	// All degenerate inputs collapse to the same canonical ID.
	idA := e.CanonicalLabelID("LLC")
	idB := e.CanonicalLabelID("  ")
	assert.Equal(t, idA, idB)
	assert.False(t, strings.ContainsAny(idA, "ABCDEF"), "IDs are lowercase hex")
}
