package screening

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spigell/resume-screener/internal/correction"
	"github.com/spigell/resume-screener/internal/evaluation"
	"github.com/spigell/resume-screener/internal/report"
	"github.com/spigell/resume-screener/internal/resume"
)

// Bundle is the outcome of one screening run. Evaluator results are nil when the
// step was disabled.
type Bundle struct {
	ID         string               `json:"id"`
	JobRole    string               `json:"job_role"`
	Candidate  string               `json:"candidate"`
	Resume     *resume.Parsed       `json:"resume"`
	ATS        *evaluation.Result   `json:"ats,omitempty"`
	Recruiter  *evaluation.Result   `json:"recruiter,omitempty"`
	Engineer   *evaluation.Result   `json:"engineer,omitempty"`
	Letter     string               `json:"rejection_letter"`
	Correction *correction.Proposal `json:"correction,omitempty"`
	CreatedAt  time.Time            `json:"created_at"`
}

// Evaluations returns the results in letter order, using empty results for
// disabled steps.
func (b *Bundle) Evaluations() report.Evaluations {
	var evals report.Evaluations
	if b.ATS != nil {
		evals.ATS = *b.ATS
	}
	if b.Recruiter != nil {
		evals.Recruiter = *b.Recruiter
	}
	if b.Engineer != nil {
		evals.Engineer = *b.Engineer
	}
	return evals
}

// StructuredErrors returns the union of all structured errors in ATS, Recruiter,
// Engineer order.
func (b *Bundle) StructuredErrors() []evaluation.StructuredError {
	errs := []evaluation.StructuredError{}
	for _, res := range []*evaluation.Result{b.ATS, b.Recruiter, b.Engineer} {
		if res != nil {
			errs = append(errs, res.StructuredErrors...)
		}
	}
	return errs
}

// CorrectionRequest builds the payload handed to the correction step.
func (b *Bundle) CorrectionRequest() correction.Request {
	req := correction.Request{
		JobRole: b.JobRole,
		Errors:  b.StructuredErrors(),
	}
	if b.Resume != nil {
		req.RawText = b.Resume.RawText()
		req.Structure = b.Resume.Structure
	}
	return req
}

// DumpToFile writes the bundle as indented JSON. An empty path creates a
// temporary file. The written path is returned; nothing is left on disk when
// encoding fails.
func (b *Bundle) DumpToFile(path string) (string, error) {
	var (
		file *os.File
		err  error
	)
	if path == "" {
		file, err = os.CreateTemp("", "screening_*.json")
	} else {
		file, err = os.Create(path)
	}
	if err != nil {
		return "", err
	}

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		file.Close()
		os.Remove(file.Name())
		return "", fmt.Errorf("encode bundle: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", file.Name(), err)
	}
	return file.Name(), nil
}

// LoadBundle reads a bundle written by DumpToFile.
func LoadBundle(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, err
	}
	return &b, nil
}
