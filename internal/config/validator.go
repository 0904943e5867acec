package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/cataloglab/labelnorm/internal/lnerrors"
)

// Validator validates configuration and sets smart defaults.
// Validation is fail-fast: an engine is never constructed from a config that
// did not pass, so per-record operations can stay error-free.
type Validator struct{}

// NewValidator creates a new configuration validator
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateAndSetDefaults validates configuration and applies smart defaults.
// Returns an error if validation fails.
func (v *Validator) ValidateAndSetDefaults(cfg *Config) error {
	if err := v.validateNormalizer(&cfg.Normalizer); err != nil {
		return lnerrors.NewConfigError("normalizer", "", err)
	}

	if err := v.validateCache(&cfg.Cache); err != nil {
		return lnerrors.NewConfigError("cache", "", err)
	}

	if err := v.validateMatcher(&cfg.Matcher); err != nil {
		return lnerrors.NewConfigError("matcher", "", err)
	}

	v.setSmartDefaults(cfg)
	return nil
}

func (v *Validator) validateNormalizer(n *Normalizer) error {
	if len(n.Suffixes) == 0 {
		return errors.New("suffix list cannot be empty")
	}
	for _, s := range n.Suffixes {
		if strings.TrimSpace(s) == "" {
			return errors.New("suffix list contains a blank entry")
		}
	}

	for short, long := range n.Acronyms {
		if strings.TrimSpace(short) == "" || strings.TrimSpace(long) == "" {
			return fmt.Errorf("acronym mapping %q -> %q has a blank side", short, long)
		}
		if short != strings.ToUpper(short) {
			return fmt.Errorf("acronym key %q must be upper-case", short)
		}
		if strings.ContainsAny(short, " \t") {
			return fmt.Errorf("acronym key %q must be a single token", short)
		}
	}

	if len(n.CopyrightMarkers) == 0 {
		return errors.New("copyright marker list cannot be empty")
	}
	for _, m := range n.CopyrightMarkers {
		if strings.TrimSpace(m) == "" {
			return errors.New("copyright marker list contains a blank entry")
		}
	}

	if n.YearMin < 1000 || n.YearMin > 2100 {
		return lnerrors.NewValidationError("YearMin", n.YearMin, "a 4-digit year between 1000 and 2100")
	}
	if n.YearSlack < 0 || n.YearSlack > 100 {
		return lnerrors.NewValidationError("YearSlack", n.YearSlack, "a value between 0 and 100")
	}

	return nil
}

func (v *Validator) validateCache(c *Cache) error {
	if c.Capacity < 1 {
		return lnerrors.NewValidationError("Capacity", c.Capacity, "a positive entry count")
	}
	return nil
}

func (v *Validator) validateMatcher(m *Matcher) error {
	if m.DefaultThreshold < 0 || m.DefaultThreshold > 1 {
		return lnerrors.NewValidationError("DefaultThreshold", m.DefaultThreshold, "a value in [0, 1]")
	}
	if m.AcronymFloor < 0 || m.AcronymFloor > 1 {
		return lnerrors.NewValidationError("AcronymFloor", m.AcronymFloor, "a value in [0, 1]")
	}
	if m.ContainmentFloor < 0 || m.ContainmentFloor > 1 {
		return lnerrors.NewValidationError("ContainmentFloor", m.ContainmentFloor, "a value in [0, 1]")
	}
	if m.PhraseFloor < 0 || m.PhraseFloor > 1 {
		return lnerrors.NewValidationError("PhraseFloor", m.PhraseFloor, "a value in [0, 1]")
	}
	if m.EditWeight < 0 || m.EditWeight > 1 {
		return lnerrors.NewValidationError("EditWeight", m.EditWeight, "a value in [0, 1]")
	}
	if m.Workers < 0 {
		return lnerrors.NewValidationError("Workers", m.Workers, "zero (auto) or a positive goroutine count")
	}
	return nil
}

// setSmartDefaults fills in values that depend on the runtime environment
func (v *Validator) setSmartDefaults(cfg *Config) {
	if cfg.Matcher.Workers == 0 {
		cfg.Matcher.Workers = runtime.NumCPU()
	}
	if cfg.Normalizer.Acronyms == nil {
		cfg.Normalizer.Acronyms = make(map[string]string)
	}
	if cfg.Hierarchy.Parents == nil {
		cfg.Hierarchy.Parents = make(map[string]string)
	}
}
