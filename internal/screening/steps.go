package screening

import (
	"strings"

	"github.com/spigell/resume-screener/internal/evaluation"
)

// Step names accepted by Disable.
const (
	StepATS       = "ats"
	StepRecruiter = "recruiter"
	StepEngineer  = "engineer"
)

// Status represents runtime information about an evaluator step.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

type evaluatorStep struct {
	evaluator evaluation.Evaluator
	disabled  bool
	reason    string
}

func newStep(ev evaluation.Evaluator) *evaluatorStep {
	return &evaluatorStep{evaluator: ev}
}

func (s *evaluatorStep) Name() string {
	return strings.ToLower(string(s.evaluator.Kind()))
}

func (s *evaluatorStep) Disable(reason string) {
	s.disabled = true
	s.reason = reason
}

func (s *evaluatorStep) IsEnabled() bool { return !s.disabled }

func (s *evaluatorStep) Status(rulesVersion string) Status {
	details := map[string]string{
		"evaluator": string(s.evaluator.Kind()),
	}
	if rulesVersion != "" {
		details["rules_version"] = rulesVersion
	}
	return Status{Name: s.Name(), Enabled: s.IsEnabled(), Reason: s.reason, Details: details}
}
