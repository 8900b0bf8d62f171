// Package report renders the rejection letter from the three evaluator results.
package report

import (
	_ "embed"
	"strings"
	"time"

	"github.com/spigell/resume-screener/internal/evaluation"
)

//go:embed letter.md
var letterTemplate string

const (
	// DefaultCandidate is used when no candidate name is known.
	DefaultCandidate = "Candidate"
	// GenericReason is the only reason listed when no evaluator produced a finding.
	GenericReason = "While your profile is strong, we identified other candidates with more specific experience in our core stack."

	dateLayout       = "January 2, 2006"
	rejectedFindings = 2
	bullet           = "• "
)

// Evaluations groups the three evaluator results in their fixed order.
type Evaluations struct {
	ATS       evaluation.Result `json:"ats"`
	Recruiter evaluation.Result `json:"recruiter"`
	Engineer  evaluation.Result `json:"engineer"`
}

func (e Evaluations) ordered() []evaluation.Result {
	return []evaluation.Result{e.ATS, e.Recruiter, e.Engineer}
}

// Generator renders rejection letters dated with its clock.
type Generator struct {
	now func() time.Time
}

// New returns a Generator. A nil clock means time.Now.
func New(now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{now: now}
}

// GenerateRejectionLetter renders a letter with the current date.
func GenerateRejectionLetter(name string, evals Evaluations) string {
	return New(nil).GenerateRejectionLetter(name, evals)
}

// GenerateRejectionLetter renders the letter for name. It never fails: when no
// evaluator has anything to say the generic reason is used.
func (g *Generator) GenerateRejectionLetter(name string, evals Evaluations) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultCandidate
	}

	reasons := Reasons(evals)
	lines := make([]string, 0, len(reasons))
	for _, r := range reasons {
		lines = append(lines, bullet+r)
	}

	letter := strings.ReplaceAll(letterTemplate, "{{DATE}}", g.now().Format(dateLayout))
	letter = strings.ReplaceAll(letter, "{{CANDIDATE}}", name)
	letter = strings.ReplaceAll(letter, "{{REASONS}}", strings.Join(lines, "\n"))
	return strings.TrimSpace(letter)
}

// Reasons selects the findings listed in the letter. Up to two findings are taken
// from every rejecting evaluator; when none rejected, the first finding of each
// evaluator is used instead. The result is deduplicated in order and never empty.
func Reasons(evals Evaluations) []string {
	var picked []string
	for _, res := range evals.ordered() {
		if res.Verdict == evaluation.VerdictReject {
			picked = append(picked, res.Findings[:min(rejectedFindings, len(res.Findings))]...)
		}
	}

	if len(picked) == 0 {
		for _, res := range evals.ordered() {
			if len(res.Findings) > 0 {
				picked = append(picked, res.Findings[0])
			}
		}
	}

	seen := make(map[string]struct{}, len(picked))
	reasons := make([]string, 0, len(picked))
	for _, r := range picked {
		if r == "" {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		reasons = append(reasons, r)
	}

	if len(reasons) == 0 {
		return []string{GenericReason}
	}
	return reasons
}
