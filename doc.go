// Package labelnorm resolves inconsistent music-label name strings into a
// single canonical form and a stable identifier, so downstream analytics can
// aggregate correctly instead of treating spelling variants as distinct
// entities.
//
// "Atlantic Records", "Atlantic Recording Corporation" and
// "ATLANTIC RECORDS LLC" all describe the same entity; this package maps each
// of them to the same normalized string and the same canonical ID.
//
// # Components
//
// Engine: the public entry point. Owns the rule pipeline, the normalization
// cache, the similarity matcher and the optional hierarchy table.
//
// Rule pipeline: an ordered set of pure text transforms (whitespace collapse,
// copyright-year and symbol stripping, iterated corporate-suffix stripping,
// title-casing with acronym preservation, whole-token acronym expansion).
// Normalization is idempotent and never fails; dirty inputs degrade to
// well-defined outputs, possibly the empty string.
//
// Canonical IDs: fixed-length hex identifiers content-addressed from the
// normalized string (128-bit SHA-256 prefix). Identical normalized forms
// always produce identical IDs across runs and processes.
//
// Normalization cache: a bounded, mutex-guarded LRU keyed on the raw input
// string, with hit/miss statistics for observability.
//
// Similarity matcher: normalizes both sides, blends Jaro-Winkler similarity
// with token-set overlap, and applies capped heuristic boosts (reciprocal
// initialisms, substring containment, known parent/subsidiary relations)
// before thresholding.
//
// # Usage
//
//	engine, err := labelnorm.NewDefault()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	id := engine.CanonicalLabelID("ATLANTIC RECORDS LLC")
//	result := engine.Match("Def Jam", "Def Jam Recordings")
//	if result.IsMatch {
//		// confidence in result.Confidence
//	}
//
// Construction is the only fallible step: malformed rule tables, thresholds
// outside [0,1] or a non-positive cache capacity are rejected before any
// record is processed.
package labelnorm
