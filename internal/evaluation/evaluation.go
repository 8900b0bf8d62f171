// Package evaluation scores a parsed résumé the way an applicant tracking system,
// a recruiter and a senior engineer would, emitting findings and structured errors.
package evaluation

import (
	"fmt"
	"slices"

	"github.com/go-playground/validator/v10"

	"github.com/spigell/resume-screener/internal/resume"
)

// Verdict is the coarse outcome of an evaluator.
type Verdict string

const (
	VerdictPass       Verdict = "PASS"
	VerdictBorderline Verdict = "BORDERLINE"
	VerdictReject     Verdict = "REJECT"
)

// Severity ranks a structured error.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Kind identifies an evaluator.
type Kind string

const (
	KindATS       Kind = "ATS"
	KindRecruiter Kind = "Recruiter"
	KindEngineer  Kind = "Engineer"
)

// Section is the résumé region a structured error refers to.
type Section string

const (
	SectionSkills     Section = "Skills"
	SectionProjects   Section = "Projects"
	SectionExperience Section = "Experience"
	SectionEducation  Section = "Education"
	SectionSummary    Section = "Summary"
	SectionGeneral    Section = "General"
)

// Fix is a remediation a correction step may apply.
type Fix string

const (
	FixRemove    Fix = "remove"
	FixRewrite   Fix = "rewrite"
	FixRelink    Fix = "relink"
	FixReorder   Fix = "reorder"
	FixNormalize Fix = "normalize"
)

// Forbidden is a remediation a correction step must never apply.
type Forbidden string

const (
	ForbidInvent         Forbidden = "invent"
	ForbidExaggerate     Forbidden = "exaggerate"
	ForbidAddFakeMetrics Forbidden = "add_fake_metrics"
)

// Verdict thresholds shared by all evaluators.
const (
	RejectBelow     = 60
	BorderlineBelow = 80
)

// VerdictFor maps a final score to its verdict band.
func VerdictFor(score int) Verdict {
	switch {
	case score < RejectBelow:
		return VerdictReject
	case score < BorderlineBelow:
		return VerdictBorderline
	default:
		return VerdictPass
	}
}

// StructuredError is a machine-actionable finding with an explicit list of
// permitted and forbidden remediations.
type StructuredError struct {
	ErrorID         string      `json:"error_id" validate:"required"`
	Severity        Severity    `json:"severity" validate:"oneof=low medium high"`
	Evaluator       Kind        `json:"evaluator" validate:"oneof=ATS Recruiter Engineer"`
	Section         Section     `json:"section" validate:"oneof=Skills Projects Experience Education Summary General"`
	Reason          string      `json:"reason" validate:"required"`
	Evidence        string      `json:"evidence,omitempty"`
	AllowedFixes    []Fix       `json:"allowed_fixes" validate:"dive,oneof=remove rewrite relink reorder normalize"`
	DisallowedFixes []Forbidden `json:"disallowed_fixes" validate:"dive,oneof=invent exaggerate add_fake_metrics"`
}

var validate = validator.New()

// Validate checks the closed vocabularies and that no remediation is both allowed
// and disallowed.
func (e StructuredError) Validate() error {
	if err := validate.Struct(e); err != nil {
		return fmt.Errorf("structured error %s: %w", e.ErrorID, err)
	}
	for _, fix := range e.AllowedFixes {
		if slices.Contains(e.DisallowedFixes, Forbidden(fix)) {
			return fmt.Errorf("structured error %s: fix %q is both allowed and disallowed", e.ErrorID, fix)
		}
	}
	return nil
}

// Actionable reports whether an automated correction step may act on the error.
func (e StructuredError) Actionable() bool {
	return len(e.AllowedFixes) > 0
}

// Forbids reports whether action is listed in the disallowed fixes.
func (e StructuredError) Forbids(action string) bool {
	return slices.Contains(e.DisallowedFixes, Forbidden(action))
}

// Result is the output of a single evaluator.
type Result struct {
	Evaluator        Kind              `json:"evaluator"`
	Verdict          Verdict           `json:"verdict"`
	Score            int               `json:"score"`
	Summary          string            `json:"summary,omitempty"`
	Findings         []string          `json:"findings"`
	StructuredErrors []StructuredError `json:"structured_errors"`
}

// Input is what every evaluator reads.
type Input struct {
	Resume  *resume.Parsed
	JobRole string
}

// Evaluator is a pure scoring function over a parsed résumé.
type Evaluator interface {
	Kind() Kind
	Evaluate(in Input) Result
}

// scorecard accumulates deductions, findings and errors for one evaluator run.
type scorecard struct {
	kind     Kind
	score    int
	findings []string
	errors   []StructuredError
}

func newScorecard(kind Kind) *scorecard {
	return &scorecard{
		kind:     kind,
		score:    100,
		findings: []string{},
		errors:   []StructuredError{},
	}
}

// deduct records a finding and its structured error. An error that violates its
// own vocabulary is a programming error and panics.
func (s *scorecard) deduct(points int, finding string, e StructuredError) {
	e.Evaluator = s.kind
	if e.AllowedFixes == nil {
		e.AllowedFixes = []Fix{}
	}
	if e.DisallowedFixes == nil {
		e.DisallowedFixes = []Forbidden{}
	}
	if err := e.Validate(); err != nil {
		panic(err)
	}

	s.score -= points
	s.findings = append(s.findings, finding)
	s.errors = append(s.errors, e)
}

func (s *scorecard) result() Result {
	return Result{
		Evaluator:        s.kind,
		Verdict:          VerdictFor(s.score),
		Score:            s.score,
		Findings:         s.findings,
		StructuredErrors: s.errors,
	}
}
