// Package hierarchy resolves parent/subsidiary relationships between label
// entities. The table is loaded once at engine construction and read-only
// afterwards, so lookups need no locking.
package hierarchy

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/cataloglab/labelnorm/internal/lnerrors"
)

// Resolver answers parent-of queries against an immutable subsidiary->parent
// table keyed by normalized label.
type Resolver struct {
	parents map[string]string
}

// tomlTable is the on-disk shape of a hierarchy file:
//
//	[parents]
//	"Def Jam Recordings" = "Universal Music Group"
//	"Atlantic Records" = "Warner Music Group"
type tomlTable struct {
	Parents map[string]string `toml:"parents"`
}

// NewResolver builds a resolver from an in-memory table. Both sides of every
// entry are passed through normalize so the table tolerates raw label
// spellings. Self-referential entries are rejected: a label cannot be its own
// parent.
func NewResolver(table map[string]string, normalize func(string) string) (*Resolver, error) {
	parents := make(map[string]string, len(table))
	for sub, parent := range table {
		ns := normalize(sub)
		np := normalize(parent)
		if ns == "" || np == "" {
			return nil, lnerrors.NewConfigError("hierarchy", "Parents",
				fmt.Errorf("entry %q -> %q normalizes to an empty label", sub, parent))
		}
		if ns == np {
			return nil, lnerrors.NewConfigError("hierarchy", "Parents",
				fmt.Errorf("entry %q -> %q is self-referential after normalization", sub, parent))
		}
		parents[ns] = np
	}
	return &Resolver{parents: parents}, nil
}

// LoadTOML reads a [parents] table from the TOML file at path and merges it
// with extra (inline config entries win on conflict).
func LoadTOML(path string, extra map[string]string, normalize func(string) string) (*Resolver, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, lnerrors.NewTableError(path, err)
	}

	var table tomlTable
	if err := toml.Unmarshal(data, &table); err != nil {
		return nil, lnerrors.NewTableError(path, err)
	}

	merged := make(map[string]string, len(table.Parents)+len(extra))
	for sub, parent := range table.Parents {
		if strings.TrimSpace(sub) == "" || strings.TrimSpace(parent) == "" {
			return nil, lnerrors.NewTableError(path, fmt.Errorf("blank entry %q -> %q", sub, parent))
		}
		merged[sub] = parent
	}
	for sub, parent := range extra {
		merged[sub] = parent
	}

	return NewResolver(merged, normalize)
}

// ParentOf returns the parent of a normalized label. Absence is not an
// error; unknown labels simply have no parent.
func (r *Resolver) ParentOf(normalized string) (string, bool) {
	parent, ok := r.parents[normalized]
	return parent, ok
}

// SameParent reports whether two distinct normalized labels resolve to the
// same corporate parent. A label paired with its own parent also counts: the
// relationship is known either way.
func (r *Resolver) SameParent(a, b string) bool {
	if a == b {
		return false
	}
	pa, oka := r.ParentOf(a)
	pb, okb := r.ParentOf(b)
	if oka && okb && pa == pb {
		return true
	}
	if oka && pa == b {
		return true
	}
	if okb && pb == a {
		return true
	}
	return false
}

// Len returns the number of table entries
func (r *Resolver) Len() int {
	return len(r.parents)
}
