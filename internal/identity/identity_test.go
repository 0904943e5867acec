package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalIDStable(t *testing.T) {
	first := CanonicalID("Atlantic Records")
	second := CanonicalID("Atlantic Records")
	assert.Equal(t, first, second, "same content must yield the same ID")
}

func TestCanonicalIDFixedLength(t *testing.T) {
	inputs := []string{
		"",
		"A",
		"Atlantic Records",
		"a very long label name that goes on and on and on and on",
		"Björk Overseas",
	}
	for _, input := range inputs {
		id := CanonicalID(input)
		assert.Len(t, id, IDLength, "CanonicalID(%q)", input)
		assert.Regexp(t, "^[0-9a-f]+$", id, "CanonicalID(%q) must be lowercase hex", input)
	}
}

func TestCanonicalIDDistinctContent(t *testing.T) {
	assert.NotEqual(t, CanonicalID("Atlantic Records"), CanonicalID("Atlantic Record"))
	assert.NotEqual(t, CanonicalID("Atlantic Records"), CanonicalID("atlantic records"),
		"IDs are case-sensitive; normalization fixes casing before hashing")
}

func TestCanonicalIDEmptyInput(t *testing.T) {
	id := CanonicalID("")
	assert.Len(t, id, IDLength, "empty input still yields a well-defined ID")
	assert.Equal(t, id, CanonicalID(""))
}

func TestFingerprint(t *testing.T) {
	assert.Equal(t, Fingerprint("Atlantic Records"), Fingerprint("Atlantic Records"))
	assert.NotEqual(t, Fingerprint("Atlantic Records"), Fingerprint("Atlantic Record"))
}

func TestSlug(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Universal Music Group", "universal-music-group"},
		{"Def Jam Recordings", "def-jam-recordings"},
		{"A&M Records", "a-m-records"},
		{"  ", "label"},
		{"", "label"},
		{"---", "label"},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, Slug(test.input), "Slug(%q)", test.input)
	}
}
