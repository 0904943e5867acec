package rules

import (
	"strings"
	"testing"

	"github.com/cataloglab/labelnorm/internal/config"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine(config.Default().Normalizer)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	return engine
}

func TestNormalizeCorporateSuffixes(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		input string
		want  string
	}{
		{"Sony Music Entertainment, Inc.", "Sony Music Entertainment"},
		{"Warner Music Group Corp.", "Warner Music Group"},
		{"Universal Music Group LLC", "Universal Music Group"},
		{"Atlantic Records Ltd.", "Atlantic Records"},
		{"Island Records Limited", "Island Records"},
		{"Bertelsmann Music GmbH", "Bertelsmann Music"},
		{"Parlophone Records PLC", "Parlophone Records"},
		// Compounded designators strip by repeated single-suffix passes
		{"Big Machine Inc. LLC", "Big Machine"},
		{"Roc Nation LLC, Inc.", "Roc Nation"},
	}

	for _, test := range tests {
		if got := engine.Normalize(test.input); got != test.want {
			t.Errorf("Normalize(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}

func TestNormalizeCopyrightArtifacts(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		input string
		want  string
	}{
		{"(C) 2019 Atlantic Recording Corp", "Atlantic Recording"},
		{"℗ 2021 Universal Music Group LLC", "Universal Music Group"},
		{"(P) 2023 Atlantic Records, Inc.", "Atlantic Records"},
		{"© Def Jam Recordings", "Def Jam Recordings"},
		{"2021 Universal Music Group LLC", "Universal Music Group"},
		{"Atlantic Records ℗ 2020", "Atlantic Records"},
		{"Atlantic Records (C)", "Atlantic Records"},
		// A year with no copyright context is part of the name
		{"Blink 1982", "Blink 1982"},
		{"Factory 1981 Records", "Factory 1981 Records"},
	}

	for _, test := range tests {
		if got := engine.Normalize(test.input); got != test.want {
			t.Errorf("Normalize(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}

func TestNormalizeCasingAndAcronyms(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		input string
		want  string
	}{
		{"ATLANTIC RECORDS LLC", "Atlantic Records"},
		{"atlantic records", "Atlantic Records"},
		{"def jam recordings", "Def Jam Recordings"},
		// Recognized acronyms expand to the canonical long form
		{"UMG", "Universal Music Group"},
		{"UMG Recordings", "Universal Music Group Recordings"},
		{"SME", "Sony Music Entertainment"},
		// Identity entry pins casing without expanding
		{"EMI", "EMI"},
		{"EMI Records Ltd", "EMI Records"},
		// Whole-token only: embedded acronym text is never touched
		{"UMGX", "Umgx"},
		// Unrecognized all-caps words get plain title case
		{"RCA RECORDS", "Rca Records"},
	}

	for _, test := range tests {
		if got := engine.Normalize(test.input); got != test.want {
			t.Errorf("Normalize(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}

func TestNormalizeWhitespaceAndDegenerates(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		input string
		want  string
	}{
		{"  Universal   Music\tGroup  ", "Universal Music Group"},
		{"", ""},
		{"    ", ""},
		// Inputs that are nothing but suffixes or markers collapse to empty
		{"LLC", ""},
		{"Inc. LLC", ""},
		{"(C) 2019", ""},
		{"©", ""},
	}

	for _, test := range tests {
		if got := engine.Normalize(test.input); got != test.want {
			t.Errorf("Normalize(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}

func TestNormalizeUnicodePreserved(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		input string
		want  string
	}{
		{"Édition Anagramme", "Édition Anagramme"},
		{"Björk Overseas Ltd", "Björk Overseas"},
		{"七音社 Records Inc", "七音社 Records"},
	}

	for _, test := range tests {
		if got := engine.Normalize(test.input); got != test.want {
			t.Errorf("Normalize(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	engine := newTestEngine(t)

	inputs := []string{
		"Sony Music Entertainment, Inc.",
		"(C) 2019 Atlantic Recording Corp",
		"℗ 2021 Universal Music Group LLC",
		"ATLANTIC RECORDS LLC",
		"UMG",
		"EMI Records Ltd",
		"Def Jam",
		"  lots   of \t whitespace  ",
		"",
		"LLC",
		"©1999 2001 Odyssey",
		"Label ℗ Inc",
		"Blink 1982",
		"Björk Overseas Ltd",
	}

	for _, input := range inputs {
		once := engine.Normalize(input)
		twice := engine.Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestStripYearAndSuffix(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		input string
		want  string
	}{
		{"2021 Universal Music Group LLC", "Universal Music Group"},
		{"1995 Atlantic Records Ltd.", "Atlantic Records"},
		{"℗ 2021 Universal Music Group LLC", "Universal Music Group"},
		{"Warner Music Group Corp.", "Warner Music Group"},
		// Casing and acronyms are untouched by the standalone strip
		{"ATLANTIC RECORDS LLC", "ATLANTIC RECORDS"},
		{"UMG", "UMG"},
		// Out-of-range years are not copyright metadata
		{"1850 Antique Recordings", "1850 Antique Recordings"},
	}

	for _, test := range tests {
		if got := engine.StripYearAndSuffix(test.input); got != test.want {
			t.Errorf("StripYearAndSuffix(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}

func TestNormalizationEquivalenceAcrossVariants(t *testing.T) {
	engine := newTestEngine(t)

	variantSets := [][]string{
		{"Atlantic Records", "ATLANTIC RECORDS LLC", "atlantic records ltd"},
		{"Universal Music Group", "UMG", "Universal Music Group, Inc."},
		{"Sony Music Entertainment", "SME", "Sony Music Entertainment, Inc."},
	}

	for _, set := range variantSets {
		canonical := engine.Normalize(set[0])
		for _, variant := range set[1:] {
			if got := engine.Normalize(variant); got != canonical {
				t.Errorf("Normalize(%q) = %q, want %q (same entity as %q)", variant, got, canonical, set[0])
			}
		}
	}
}

func TestNewEngineConfigErrors(t *testing.T) {
	base := config.Default().Normalizer

	t.Run("empty suffix list", func(t *testing.T) {
		cfg := base
		cfg.Suffixes = nil
		if _, err := NewEngine(cfg); err == nil {
			t.Error("expected error for empty suffix list")
		}
	})

	t.Run("empty marker list", func(t *testing.T) {
		cfg := base
		cfg.CopyrightMarkers = nil
		if _, err := NewEngine(cfg); err == nil {
			t.Error("expected error for empty copyright marker list")
		}
	})

	t.Run("unstable acronym expansion", func(t *testing.T) {
		cfg := base
		cfg.Acronyms = map[string]string{"BAD": "bad records inc"}
		_, err := NewEngine(cfg)
		if err == nil {
			t.Fatal("expected error for non-canonical acronym long form")
		}
		if !strings.Contains(err.Error(), "normalization-stable") {
			t.Errorf("unexpected error message: %v", err)
		}
	})
}

func TestCollapseWhitespace(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  a  b  ", "a b"},
		{"a\t\nb", "a b"},
		{"", ""},
		{"   ", ""},
	}
	for _, test := range tests {
		if got := CollapseWhitespace(test.input); got != test.want {
			t.Errorf("CollapseWhitespace(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}

func BenchmarkNormalize(b *testing.B) {
	engine, err := NewEngine(config.Default().Normalizer)
	if err != nil {
		b.Fatal(err)
	}
	inputs := []string{
		"Sony Music Entertainment, Inc.",
		"(C) 2019 Atlantic Recording Corp",
		"ATLANTIC RECORDS LLC",
		"Def Jam Recordings",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		engine.Normalize(inputs[i%len(inputs)])
	}
}
