package config

import (
	"fmt"
	"os"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
)

// LoadKDL attempts to load configuration from a .labelnorm.kdl file.
// A missing file is not an error; the caller falls back to defaults.
func LoadKDL(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %v", path, err)
	}

	return parseKDL(string(content))
}

// parseKDL overlays the KDL document on top of the default configuration.
// Table nodes (suffixes, acronyms, markers, parents) replace the built-in
// tables entirely when present, so a config file fully owns its rule set.
func parseKDL(content string) (*Config, error) {
	cfg := Default()

	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse KDL config: %w", err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "normalizer":
			parseNormalizer(&cfg, n)
		case "cache":
			for _, cn := range n.Children {
				if nodeName(cn) == "capacity" {
					if v, ok := firstIntArg(cn); ok {
						cfg.Cache.Capacity = v
					}
				}
			}
		case "matcher":
			parseMatcher(&cfg, n)
		case "hierarchy":
			parseHierarchy(&cfg, n)
		}
	}

	return &cfg, nil
}

func parseNormalizer(cfg *Config, n *document.Node) {
	for _, cn := range n.Children {
		switch nodeName(cn) {
		case "suffixes":
			if args := collectStringArgs(cn); len(args) > 0 {
				cfg.Normalizer.Suffixes = args
			}
		case "acronym":
			// acronym "UMG" "Universal Music Group"
			if short, long, ok := stringPairArgs(cn); ok {
				if cfg.Normalizer.Acronyms == nil {
					cfg.Normalizer.Acronyms = make(map[string]string)
				}
				cfg.Normalizer.Acronyms[short] = long
			}
		case "copyright_markers":
			if args := collectStringArgs(cn); len(args) > 0 {
				cfg.Normalizer.CopyrightMarkers = args
			}
		case "year_min":
			if v, ok := firstIntArg(cn); ok {
				cfg.Normalizer.YearMin = v
			}
		case "year_slack":
			if v, ok := firstIntArg(cn); ok {
				cfg.Normalizer.YearSlack = v
			}
		}
	}
}

func parseMatcher(cfg *Config, n *document.Node) {
	for _, cn := range n.Children {
		switch nodeName(cn) {
		case "threshold":
			if v, ok := firstFloatArg(cn); ok {
				cfg.Matcher.DefaultThreshold = v
			}
		case "acronym_floor":
			if v, ok := firstFloatArg(cn); ok {
				cfg.Matcher.AcronymFloor = v
			}
		case "containment_floor":
			if v, ok := firstFloatArg(cn); ok {
				cfg.Matcher.ContainmentFloor = v
			}
		case "phrase_floor":
			if v, ok := firstFloatArg(cn); ok {
				cfg.Matcher.PhraseFloor = v
			}
		case "edit_weight":
			if v, ok := firstFloatArg(cn); ok {
				cfg.Matcher.EditWeight = v
			}
		case "stem_tokens":
			if b, ok := firstBoolArg(cn); ok {
				cfg.Matcher.StemTokens = b
			}
		case "subsidiary_match":
			if b, ok := firstBoolArg(cn); ok {
				cfg.Matcher.SubsidiaryMatch = b
			}
		case "workers":
			if v, ok := firstIntArg(cn); ok {
				cfg.Matcher.Workers = v
			}
		}
	}
}

func parseHierarchy(cfg *Config, n *document.Node) {
	for _, cn := range n.Children {
		switch nodeName(cn) {
		case "file":
			if s, ok := firstStringArg(cn); ok {
				cfg.Hierarchy.Path = s
			}
		case "parent":
			// parent "Def Jam Recordings" "Universal Music Group"
			if sub, parent, ok := stringPairArgs(cn); ok {
				if cfg.Hierarchy.Parents == nil {
					cfg.Hierarchy.Parents = make(map[string]string)
				}
				cfg.Hierarchy.Parents[sub] = parent
			}
		}
	}
}

// Helper functions leveraging the kdl-go document model
func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}

func firstBoolArg(n *document.Node) (bool, bool) {
	if len(n.Arguments) == 0 {
		return false, false
	}
	if b, ok := n.Arguments[0].Value.(bool); ok {
		return b, true
	}
	return false, false
}

func firstFloatArg(n *document.Node) (float64, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// stringPairArgs reads two string arguments from a node, e.g.
// acronym "UMG" "Universal Music Group"
func stringPairArgs(n *document.Node) (string, string, bool) {
	if len(n.Arguments) < 2 {
		return "", "", false
	}
	first, ok1 := n.Arguments[0].Value.(string)
	second, ok2 := n.Arguments[1].Value.(string)
	if !ok1 || !ok2 {
		return "", "", false
	}
	return first, second, true
}

func collectStringArgs(n *document.Node) []string {
	if n == nil {
		return nil
	}
	// Inline format: suffixes "Inc" "LLC" "Ltd"
	out := make([]string, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		if s, ok := a.Value.(string); ok {
			out = append(out, s)
		}
	}

	// Block format: suffixes { "Inc"; "LLC" } where each child node's name is
	// the string value
	if len(out) == 0 && len(n.Children) > 0 {
		out = make([]string, 0, len(n.Children))
		for _, child := range n.Children {
			if s, ok := firstStringArg(child); ok {
				out = append(out, s)
			} else if child.Name != nil {
				if s, ok := child.Name.Value.(string); ok {
					out = append(out, s)
				}
			}
		}
	}

	return out
}
