package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/cataloglab/labelnorm"
	"github.com/cataloglab/labelnorm/internal/version"
)

func main() {
	app := &cli.App{
		Name:    "labelnorm",
		Usage:   "normalize music-label names and resolve them to canonical IDs",
		Version: version.FullInfo(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   ".labelnorm.kdl",
				Usage:   "path to KDL configuration file",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "normalize",
				Usage:     "print the canonical form of each label argument",
				ArgsUsage: "LABEL...",
				Action:    runNormalize,
			},
			{
				Name:      "strip",
				Usage:     "strip copyright/year artifacts and corporate suffixes only",
				ArgsUsage: "LABEL...",
				Action:    runStrip,
			},
			{
				Name:      "id",
				Usage:     "print the canonical ID for each label argument",
				ArgsUsage: "LABEL...",
				Action:    runID,
			},
			{
				Name:      "match",
				Usage:     "compare two labels and report match decision and confidence",
				ArgsUsage: "LABEL_A LABEL_B",
				Flags: []cli.Flag{
					&cli.Float64Flag{
						Name:    "threshold",
						Aliases: []string{"t"},
						Value:   0,
						Usage:   "similarity threshold in [0,1], 0 means the configured default",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "emit the full result as JSON",
					},
				},
				Action: runMatch,
			},
			{
				Name:      "similar",
				Usage:     "rank candidate labels by similarity to a query",
				ArgsUsage: "QUERY CANDIDATE...",
				Flags: []cli.Flag{
					&cli.Float64Flag{
						Name:    "threshold",
						Aliases: []string{"t"},
						Value:   0,
						Usage:   "similarity threshold in [0,1], 0 means the configured default",
					},
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Value:   0,
						Usage:   "maximum number of results, 0 means unlimited",
					},
				},
				Action: runSimilar,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newEngine builds an engine from the --config flag; a missing config file
// falls back to the built-in defaults.
func newEngine(c *cli.Context) (*labelnorm.Engine, error) {
	cfg, err := labelnorm.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return labelnorm.New(*cfg)
}

func requireArgs(c *cli.Context, min int, usage string) error {
	if c.NArg() < min {
		return cli.Exit(fmt.Sprintf("usage: labelnorm %s", usage), 2)
	}
	return nil
}

func runNormalize(c *cli.Context) error {
	if err := requireArgs(c, 1, "normalize LABEL..."); err != nil {
		return err
	}
	engine, err := newEngine(c)
	if err != nil {
		return err
	}
	for _, label := range c.Args().Slice() {
		fmt.Println(engine.Normalize(label))
	}
	return nil
}

func runStrip(c *cli.Context) error {
	if err := requireArgs(c, 1, "strip LABEL..."); err != nil {
		return err
	}
	engine, err := newEngine(c)
	if err != nil {
		return err
	}
	for _, label := range c.Args().Slice() {
		fmt.Println(engine.StripYearAndSuffix(label))
	}
	return nil
}

func runID(c *cli.Context) error {
	if err := requireArgs(c, 1, "id LABEL..."); err != nil {
		return err
	}
	engine, err := newEngine(c)
	if err != nil {
		return err
	}
	for _, label := range c.Args().Slice() {
		normalized, id := engine.NormalizedAndID(label)
		fmt.Printf("%s\t%s\n", id, normalized)
	}
	return nil
}

func runMatch(c *cli.Context) error {
	if err := requireArgs(c, 2, "match LABEL_A LABEL_B"); err != nil {
		return err
	}
	engine, err := newEngine(c)
	if err != nil {
		return err
	}

	var result labelnorm.MatchResult
	if t := c.Float64("threshold"); t > 0 {
		result, err = engine.MatchThreshold(c.Args().Get(0), c.Args().Get(1), t)
		if err != nil {
			return err
		}
	} else {
		result = engine.Match(c.Args().Get(0), c.Args().Get(1))
	}

	if c.Bool("json") {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	verdict := "no match"
	if result.IsMatch {
		verdict = "match"
	}
	if result.Related && !result.IsMatch {
		verdict = "related (same corporate family)"
	}
	fmt.Printf("%s  confidence=%.3f  %q vs %q\n", verdict, result.Confidence, result.NormalizedA, result.NormalizedB)
	return nil
}

func runSimilar(c *cli.Context) error {
	if err := requireArgs(c, 2, "similar QUERY CANDIDATE..."); err != nil {
		return err
	}
	engine, err := newEngine(c)
	if err != nil {
		return err
	}

	query := c.Args().Get(0)
	candidates := c.Args().Slice()[1:]

	matches, err := engine.FindSimilar(context.Background(), query, candidates, labelnorm.SearchOptions{
		Threshold: c.Float64("threshold"),
		Limit:     c.Int("limit"),
	})
	if err != nil {
		return err
	}

	if len(matches) == 0 {
		fmt.Println("no candidates met the threshold")
		return nil
	}
	for _, m := range matches {
		flags := ""
		if m.Related {
			flags = "  [related]"
		}
		fmt.Printf("%.3f  %s%s\n", m.Confidence, m.Label, flags)
	}

	stats := engine.CacheStats()
	fmt.Printf("cache: %d lookups, %.0f%% hit rate\n", stats.Lookups, stats.HitRate*100)
	return nil
}
