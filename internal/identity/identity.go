// Package identity derives stable identifiers from normalized label strings.
// IDs are content-addressed: the same normalized string always produces the
// same identifier across runs and processes, with no dependence on insertion
// order or randomized state.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// IDLength is the hex length of a canonical ID (128-bit digest prefix).
const IDLength = 32

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// CanonicalID returns the fixed-length identifier for a normalized label:
// the first 16 bytes of its SHA-256 digest, hex-encoded. This is a
// content-addressing function, not a security boundary; 128 bits is enough to
// make engineered collisions a non-concern for label aggregation. The empty
// string yields a well-defined stable ID rather than an error.
func CanonicalID(normalized string) string {
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:16])
}

// Fingerprint returns a cheap 64-bit xxhash of the normalized label, used for
// quick equality pre-checks where the full canonical ID is not needed.
func Fingerprint(normalized string) uint64 {
	return xxhash.Sum64String(normalized)
}

// Slug renders a normalized label as a lowercase, hyphen-separated display
// key ("Universal Music Group" -> "universal-music-group"). Unlike
// CanonicalID it is lossy and variable-length, so it is only suitable for
// human-facing output, never as a foreign key.
func Slug(normalized string) string {
	lower := strings.ToLower(normalized)
	slug := strings.Trim(slugRe.ReplaceAllString(lower, "-"), "-")
	if slug == "" {
		return "label"
	}
	return slug
}
