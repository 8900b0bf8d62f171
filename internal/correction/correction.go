// Package correction defines the contract between the evaluators and an external
// step that proposes résumé edits for structured errors.
package correction

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/evaluation"
	"github.com/spigell/resume-screener/internal/logger"
	"github.com/spigell/resume-screener/internal/resume"
)

// Request is everything a provider may read.
type Request struct {
	JobRole   string                       `json:"job_role"`
	RawText   string                       `json:"raw_text"`
	Structure resume.Structure             `json:"structure"`
	Errors    []evaluation.StructuredError `json:"structured_errors"`
}

// Change is one edit made for a structured error.
type Change struct {
	ErrorID string         `json:"error_id"`
	Action  evaluation.Fix `json:"action"`
	Before  string         `json:"before"`
	After   string         `json:"after"`
}

// Unresolved is a structured error the provider chose not to fix.
type Unresolved struct {
	ErrorID string `json:"error_id"`
	Reason  string `json:"reason"`
}

// Proposal is a diff-style edit proposal.
type Proposal struct {
	ModifiedResume   string       `json:"modified_resume"`
	ChangesMade      []Change     `json:"changes_made"`
	UnresolvedErrors []Unresolved `json:"unresolved_errors"`
}

// Provider proposes edits for the structured errors of a request.
type Provider interface {
	Name() string
	Propose(ctx context.Context, req Request) (*Proposal, error)
}

// Actionable returns the errors an automated step may act on, keeping order.
func Actionable(errs []evaluation.StructuredError) []evaluation.StructuredError {
	actionable := make([]evaluation.StructuredError, 0, len(errs))
	for _, e := range errs {
		if e.Actionable() {
			actionable = append(actionable, e)
		}
	}
	return actionable
}

// Engine enforces the correction contract around a Provider.
type Engine struct {
	provider Provider
	logger   *zap.Logger
}

// NewEngine returns an Engine. A nil provider is allowed; Propose then fails
// with a *ConfigurationError.
func NewEngine(provider Provider, log *zap.Logger) *Engine {
	return &Engine{provider: provider, logger: logger.WithFields(log)}
}

// Propose sends the actionable errors of req to the provider and checks the answer.
func (e *Engine) Propose(ctx context.Context, req Request) (*Proposal, error) {
	if e.provider == nil {
		return nil, &ConfigurationError{Reason: "no correction provider configured"}
	}

	req.Errors = Actionable(req.Errors)
	if len(req.Errors) == 0 {
		e.logger.Info("no actionable errors, nothing to correct")
		return &Proposal{
			ModifiedResume:   req.RawText,
			ChangesMade:      []Change{},
			UnresolvedErrors: []Unresolved{},
		}, nil
	}

	e.logger.Info("requesting correction proposal",
		zap.String("provider", e.provider.Name()),
		zap.Int("errors", len(req.Errors)),
	)

	proposal, err := e.provider.Propose(ctx, req)
	if err != nil {
		var perr *ProviderError
		if errors.As(err, &perr) {
			if perr.Provider == "" {
				perr.Provider = e.provider.Name()
			}
			return nil, perr
		}
		return nil, &ProviderError{Provider: e.provider.Name(), Err: err}
	}
	if proposal == nil {
		return nil, &ProviderError{Provider: e.provider.Name(), Err: errors.New("provider returned no proposal")}
	}

	if err := Verify(proposal, req.Errors); err != nil {
		return nil, &ProviderError{Provider: e.provider.Name(), Err: err}
	}

	if proposal.ChangesMade == nil {
		proposal.ChangesMade = []Change{}
	}
	if proposal.UnresolvedErrors == nil {
		proposal.UnresolvedErrors = []Unresolved{}
	}

	e.logger.Info("correction proposal accepted",
		zap.Int("changes", len(proposal.ChangesMade)),
		zap.Int("unresolved", len(proposal.UnresolvedErrors)),
	)
	return proposal, nil
}

// Verify checks that every change and unresolved entry refers to a sent error and
// that every change uses one of that error's allowed fixes.
func Verify(p *Proposal, sent []evaluation.StructuredError) error {
	byID := make(map[string]evaluation.StructuredError, len(sent))
	for _, e := range sent {
		byID[e.ErrorID] = e
	}

	for _, c := range p.ChangesMade {
		e, ok := byID[c.ErrorID]
		if !ok {
			return fmt.Errorf("change references unknown error %q", c.ErrorID)
		}
		if e.Forbids(string(c.Action)) {
			return fmt.Errorf("change for %s applies disallowed fix %q", c.ErrorID, c.Action)
		}
		if !slices.Contains(e.AllowedFixes, c.Action) {
			return fmt.Errorf("change for %s applies fix %q which is not allowed", c.ErrorID, c.Action)
		}
	}

	for _, u := range p.UnresolvedErrors {
		if _, ok := byID[u.ErrorID]; !ok {
			return fmt.Errorf("unresolved entry references unknown error %q", u.ErrorID)
		}
	}
	return nil
}
