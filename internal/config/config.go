package config

// Matcher scoring defaults. These values are used both by Default and by the
// KDL parser when a field is absent from the config file.
const (
	DefaultCacheCapacity    = 4096
	DefaultThreshold        = 0.85
	DefaultAcronymFloor     = 0.90
	DefaultContainmentFloor = 0.90
	DefaultPhraseFloor      = 0.88
	DefaultEditWeight       = 0.60
	DefaultWorkers          = 4
	DefaultYearMin          = 1900
	DefaultYearSlack        = 4
)

type Config struct {
	Normalizer Normalizer
	Cache      Cache
	Matcher    Matcher
	Hierarchy  Hierarchy
}

// Normalizer holds the static rule tables of the text-cleaning pipeline.
// All tables are loaded once at construction; there is no hot reload.
type Normalizer struct {
	Suffixes         []string          // trailing corporate suffixes, stripped repeatedly
	Acronyms         map[string]string // whole-token expansions, e.g. UMG -> Universal Music Group
	CopyrightMarkers []string          // copyright/phonogram markers recognized next to years
	YearMin          int               // earliest year treated as copyright metadata
	YearSlack        int               // years past the current year still accepted
}

type Cache struct {
	Capacity int // LRU entry limit, must be >= 1
}

type Matcher struct {
	DefaultThreshold float64 // confidence needed for IsMatch
	AcronymFloor     float64 // confidence floor for reciprocal-initialism pairs
	ContainmentFloor float64 // confidence floor when one label prefixes the other
	PhraseFloor      float64 // confidence floor for interior phrase containment
	EditWeight       float64 // Jaro-Winkler share of the base score; remainder is token overlap
	StemTokens       bool    // stem tokens before overlap scoring (Recordings ~ Records)
	SubsidiaryMatch  bool    // treat subsidiary-of-same-parent as a match
	Workers          int     // goroutines for candidate-set scoring
}

type Hierarchy struct {
	Path    string            // optional TOML file with a [parents] table
	Parents map[string]string // inline subsidiary -> parent entries
}

// Default returns the built-in configuration. The suffix list is ordered
// longest-first so compounded designators strip in single passes.
func Default() Config {
	return Config{
		Normalizer: Normalizer{
			Suffixes: []string{
				"Incorporated",
				"Corporation",
				"Company",
				"Limited",
				"L.L.C.",
				"L.L.P.",
				"L.P.",
				"GmbH",
				"S.A.",
				"B.V.",
				"Corp",
				"Inc",
				"LLC",
				"LLP",
				"Ltd",
				"PLC",
				"Co",
			},
			Acronyms: map[string]string{
				"UMG":  "Universal Music Group",
				"WMG":  "Warner Music Group",
				"SME":  "Sony Music Entertainment",
				"UMPG": "Universal Music Publishing Group",
				"EMI":  "EMI", // identity entry: preserve casing, never expand
			},
			CopyrightMarkers: []string{"(c)", "(p)", "©", "℗"},
			YearMin:          DefaultYearMin,
			YearSlack:        DefaultYearSlack,
		},
		Cache: Cache{
			Capacity: DefaultCacheCapacity,
		},
		Matcher: Matcher{
			DefaultThreshold: DefaultThreshold,
			AcronymFloor:     DefaultAcronymFloor,
			ContainmentFloor: DefaultContainmentFloor,
			PhraseFloor:      DefaultPhraseFloor,
			EditWeight:       DefaultEditWeight,
			StemTokens:       true,
			SubsidiaryMatch:  false,
			Workers:          DefaultWorkers,
		},
		Hierarchy: Hierarchy{
			Parents: map[string]string{},
		},
	}
}

// Load reads the KDL config file at path (when it exists), overlays it on the
// defaults and validates the result. An empty path yields validated defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		loaded, err := LoadKDL(path)
		if err != nil {
			return nil, err
		}
		if loaded != nil {
			cfg = *loaded
		}
	}

	if err := NewValidator().ValidateAndSetDefaults(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
