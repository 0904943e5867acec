package matcher

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/cataloglab/labelnorm/internal/lnerrors"
)

// Scored is one candidate that met the threshold during a similarity search.
type Scored struct {
	Label      string
	Confidence float64
	Related    bool
}

// SearchOptions tunes FindSimilar. A zero Threshold means the matcher's
// default; a zero Limit means unlimited.
type SearchOptions struct {
	Threshold float64
	Limit     int
}

// FindSimilar scores every candidate against query and returns those whose
// confidence meets the threshold, sorted by descending confidence (ties
// break on the label string so results are reproducible). Candidates are
// scored concurrently on a bounded worker pool; ctx cancellation aborts the
// search early.
func (m *Matcher) FindSimilar(ctx context.Context, query string, candidates []string, opts SearchOptions) ([]Scored, error) {
	threshold := opts.Threshold
	if threshold == 0 {
		threshold = m.cfg.DefaultThreshold
	}
	if threshold < 0 || threshold > 1 {
		return nil, lnerrors.NewValidationError("Threshold", threshold, "a value in [0, 1]")
	}

	nq := m.normalize(query)

	type slot struct {
		confidence float64
		related    bool
	}
	slots := make([]slot, len(candidates))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.workers())

	for i, candidate := range candidates {
		i, candidate := i, candidate
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			confidence, related := m.score(nq, m.normalize(candidate))
			slots[i] = slot{confidence: confidence, related: related}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	matches := make([]Scored, 0, len(candidates))
	for i, candidate := range candidates {
		if candidate == "" {
			continue
		}
		if slots[i].confidence >= threshold {
			matches = append(matches, Scored{
				Label:      candidate,
				Confidence: slots[i].confidence,
				Related:    slots[i].related,
			})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Confidence != matches[j].Confidence {
			return matches[i].Confidence > matches[j].Confidence
		}
		return matches[i].Label < matches[j].Label
	})

	if opts.Limit > 0 && len(matches) > opts.Limit {
		matches = matches[:opts.Limit]
	}
	return matches, nil
}

func (m *Matcher) workers() int {
	if m.cfg.Workers < 1 {
		return 1
	}
	return m.cfg.Workers
}
