// Package compliance attributes convention violations to the entities that
// own them and derives the per-file verdict.
package compliance

import (
	"docscan/internal/engine/coverage"
	"docscan/internal/engine/parser"
	"sort"
)

type Verdict string

const (
	VerdictPass Verdict = "PASS"
	VerdictFail Verdict = "FAIL"
)

// Violation is one finding reported by the convention checker. Codes are
// carried through unmodified.
type Violation struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Line      int    `json:"line"`
	ShortDesc string `json:"short_desc"`
}

type Summary struct {
	Verdict      Verdict
	Percentage   float64
	Affected     []string // sorted entity names
	Unattributed int
	Violations   []Violation
}

// Pass is the summary of a file with no violations, or one whose checker did
// not run.
func Pass() Summary {
	return Summary{
		Verdict:    VerdictPass,
		Percentage: 100.0,
		Affected:   []string{},
		Violations: []Violation{},
	}
}

// Reconcile maps every violation to the narrowest entity whose span contains
// its line, ties going to the entity extracted first. total is the entity
// count used as the compliance denominator. Inputs are not modified.
func Reconcile(entities []parser.Entity, violations []Violation, total int) Summary {
	if len(violations) == 0 {
		return Pass()
	}

	affected := make(map[string]bool)
	unattributed := 0
	for _, v := range violations {
		owner, ok := Owner(entities, v.Line)
		if !ok {
			unattributed++
			continue
		}
		affected[owner.Name] = true
	}

	names := make([]string, 0, len(affected))
	for name := range affected {
		names = append(names, name)
	}
	sort.Strings(names)

	compliant := total - len(names)
	if compliant < 0 {
		compliant = 0
	}

	return Summary{
		Verdict:      VerdictFail,
		Percentage:   coverage.Percentage(compliant, total),
		Affected:     names,
		Unattributed: unattributed,
		Violations:   append([]Violation(nil), violations...),
	}
}

// Owner returns the entity a line belongs to.
func Owner(entities []parser.Entity, line int) (parser.Entity, bool) {
	best := -1
	for i, e := range entities {
		if !e.Contains(line) {
			continue
		}
		if best < 0 || e.Span() < entities[best].Span() {
			best = i
		}
	}
	if best < 0 {
		return parser.Entity{}, false
	}
	return entities[best], true
}
