package scheduler

import (
	"fmt"
	"sort"

	"github.com/noah-isme/shift-scheduler/internal/scheduler/errs"
)

// Catalog is the immutable registry of shift codes the engine was started
// with. It is read-only after construction; the same Catalog value can be
// shared across concurrent Solve calls (spec §5).
type Catalog struct {
	byCode map[string]Shift
	codes  []string // insertion order, for stable iteration
}

// NewCatalog builds a Catalog from a persisted list of shift definitions.
// It refuses malformed input, matching "the engine refuses to start if
// malformed" (spec §6), surfacing one of the six stable shift-catalog error
// codes so a caller can fold the failure into the standard Output error
// envelope rather than crash blind.
func NewCatalog(shifts []Shift) (*Catalog, *errs.ValidationError) {
	if shifts == nil {
		return nil, errs.New(errs.CodeInvalidShiftCatalog, "shift catalog is not a list", nil)
	}
	if len(shifts) == 0 {
		return nil, errs.New(errs.CodeMissingShiftCatalog, "shift catalog is empty", nil)
	}

	byCode := make(map[string]Shift, len(shifts))
	codes := make([]string, 0, len(shifts))
	for _, s := range shifts {
		if s.Code == "" {
			return nil, errs.New(errs.CodeInvalidShiftCatalogCode, "shift catalog entry has empty code", map[string]any{"shift": s})
		}
		if _, dup := byCode[s.Code]; dup {
			return nil, errs.New(errs.CodeDuplicateShiftCode, fmt.Sprintf("duplicate shift code %q", s.Code), map[string]any{"code": s.Code})
		}
		if s.Start < 0 || s.Start >= 48 || s.End < 0 || s.End > 48 {
			return nil, errs.New(errs.CodeInvalidShiftCatalogHours, fmt.Sprintf("shift %q has out-of-range hours [%d,%d)", s.Code, s.Start, s.End), map[string]any{"code": s.Code, "start": s.Start, "end": s.End})
		}
		byCode[s.Code] = s
		codes = append(codes, s.Code)
	}

	c := &Catalog{byCode: byCode, codes: codes}
	if verr := c.Validate(); verr != nil {
		return nil, verr
	}
	return c, nil
}

// Get returns the shift for a code and whether it exists.
func (c *Catalog) Get(code string) (Shift, bool) {
	s, ok := c.byCode[code]
	return s, ok
}

// Codes returns the catalog codes in insertion (file) order.
func (c *Catalog) Codes() []string {
	out := make([]string, len(c.codes))
	copy(out, c.codes)
	return out
}

// Len reports the number of distinct shift codes.
func (c *Catalog) Len() int {
	return len(c.codes)
}

// Validate checks internal consistency beyond what NewCatalog already
// enforces: unique codes (always true by construction) and that every
// entry's hours parse to a coherent interval. This is the supplemented
// invariant described by original_source/tests/test_shift_code_alignment.py
// — the catalog is a single source of truth and must be self-consistent.
func (c *Catalog) Validate() *errs.ValidationError {
	seen := make(map[string]bool, len(c.codes))
	sorted := append([]string(nil), c.codes...)
	sort.Strings(sorted)
	for _, code := range sorted {
		if seen[code] {
			return errs.New(errs.CodeDuplicateShiftCode, fmt.Sprintf("duplicate shift code %q", code), map[string]any{"code": code})
		}
		seen[code] = true
		s := c.byCode[code]
		if s.Start == s.End {
			return errs.New(errs.CodeInvalidShiftCatalogEntry, fmt.Sprintf("shift %q has zero-length interval", code), map[string]any{"code": code})
		}
	}
	return nil
}

// Reconcile cross-validates input shift definitions against the catalog,
// per spec §4.1 step 5: collect unknown, mismatched, and missing codes.
// On success it returns canonical catalog copies in the same order as
// candidates.
func (c *Catalog) Reconcile(candidates []Shift) (canonical []Shift, unknown, mismatched, missing []string) {
	seenCandidate := make(map[string]bool, len(candidates))
	for _, cand := range candidates {
		seenCandidate[cand.Code] = true
		canon, ok := c.byCode[cand.Code]
		if !ok {
			unknown = append(unknown, cand.Code)
			continue
		}
		if canon.Start != cand.Start || canon.End != cand.End {
			mismatched = append(mismatched, cand.Code)
			continue
		}
		canonical = append(canonical, canon)
	}
	for _, code := range c.codes {
		if !seenCandidate[code] {
			missing = append(missing, code)
		}
	}
	return canonical, unknown, mismatched, missing
}
