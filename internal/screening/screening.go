// Package screening runs the résumé through the three evaluators and assembles
// the evaluation bundle with its rejection letter.
package screening

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/resume-screener/internal/evaluation"
	"github.com/spigell/resume-screener/internal/logger"
	"github.com/spigell/resume-screener/internal/report"
	"github.com/spigell/resume-screener/internal/resume"
	"github.com/spigell/resume-screener/internal/rules"
)

// MinDocumentRunes is the shortest trimmed text accepted for screening.
const MinDocumentRunes = 50

var (
	// ErrDocumentTooShort is returned for documents below MinDocumentRunes.
	ErrDocumentTooShort = errors.New("document text is too short to screen")
	// ErrConfidenceRange is returned for a confidence override outside 0..100.
	ErrConfidenceRange = errors.New("confidence must be between 0 and 100")
)

// Config configures a Screener. Zero values select the built-in tables, a no-op
// logger and the wall clock.
type Config struct {
	Tables *rules.Tables
	Logger *zap.Logger
	Now    func() time.Time
}

// Options tune a single run.
type Options struct {
	JobRole       string
	CandidateName string
	// Confidence, when set, replaces the computed extraction confidence. Zero
	// is a valid override meaning extraction failed entirely.
	Confidence *int
}

// Screener parses a document and evaluates it.
type Screener struct {
	tables    rules.Tables
	extractor *resume.Extractor
	steps     []*evaluatorStep
	letters   *report.Generator
	logger    *zap.Logger
	now       func() time.Time
}

// New validates the rule tables and builds a Screener.
func New(cfg Config) (*Screener, error) {
	tables := rules.Default()
	if cfg.Tables != nil {
		tables = *cfg.Tables
	}
	if err := tables.Validate(); err != nil {
		return nil, err
	}

	extractor, err := resume.NewExtractor(tables)
	if err != nil {
		return nil, err
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Screener{
		tables:    tables,
		extractor: extractor,
		steps: []*evaluatorStep{
			newStep(evaluation.NewATS(tables)),
			newStep(evaluation.NewRecruiter(tables)),
			newStep(evaluation.NewEngineer(tables)),
		},
		letters: report.New(now),
		logger:  logger.WithFields(cfg.Logger),
		now:     now,
	}, nil
}

// Disable marks the step with the provided name as disabled while keeping it in the list.
func (s *Screener) Disable(name, reason string) error {
	for _, step := range s.steps {
		if step.Name() == name {
			step.Disable(reason)
			return nil
		}
	}
	return fmt.Errorf("unknown evaluator step %q", name)
}

// Describe returns status entries for the evaluator steps.
func (s *Screener) Describe() []Status {
	statuses := make([]Status, 0, len(s.steps))
	for _, step := range s.steps {
		statuses = append(statuses, step.Status(s.tables.Version))
	}
	return statuses
}

// Run screens doc. Evaluators run concurrently; the letter is generated once all
// of them are done.
func (s *Screener) Run(ctx context.Context, doc resume.RawDocument, opts Options) (*Bundle, error) {
	if n := utf8.RuneCountInString(strings.TrimSpace(doc.Text)); n < MinDocumentRunes {
		return nil, fmt.Errorf("%w: %d characters", ErrDocumentTooShort, n)
	}

	jobRole := strings.TrimSpace(opts.JobRole)
	if jobRole == "" {
		jobRole = evaluation.DefaultJobRole
	}

	parsed := s.extractor.Parse(doc)
	if opts.Confidence != nil {
		c := *opts.Confidence
		if c < 0 || c > 100 {
			return nil, fmt.Errorf("%w: %d", ErrConfidenceRange, c)
		}
		parsed = s.extractor.ParseWithConfidence(doc, c)
	}

	bundle := &Bundle{
		ID:        uuid.NewString(),
		JobRole:   jobRole,
		Resume:    parsed,
		CreatedAt: s.now().UTC(),
	}

	log := logger.WithFields(s.logger, logger.ScreeningFields(bundle.ID, jobRole)...)
	log.Info("document parsed",
		zap.Int("confidence", bundle.Resume.Confidence),
		zap.Int("characters", utf8.RuneCountInString(doc.Text)),
		zap.Int("links", len(bundle.Resume.Structure.Contact.Links)),
	)

	results, err := s.evaluate(ctx, log, evaluation.Input{Resume: bundle.Resume, JobRole: jobRole})
	if err != nil {
		return nil, err
	}
	bundle.ATS = results[evaluation.KindATS]
	bundle.Recruiter = results[evaluation.KindRecruiter]
	bundle.Engineer = results[evaluation.KindEngineer]

	bundle.Candidate = CandidateName(opts.CandidateName, bundle.Resume)
	if bundle.Candidate == "" {
		bundle.Candidate = report.DefaultCandidate
	}
	bundle.Letter = s.letters.GenerateRejectionLetter(bundle.Candidate, bundle.Evaluations())

	log.Info("screening completed",
		zap.String("candidate", bundle.Candidate),
		zap.Int("structured_errors", len(bundle.StructuredErrors())),
	)
	return bundle, nil
}

func (s *Screener) evaluate(ctx context.Context, log *zap.Logger, in evaluation.Input) (map[evaluation.Kind]*evaluation.Result, error) {
	slots := make([]*evaluation.Result, len(s.steps))

	g, gctx := errgroup.WithContext(ctx)
	for i, step := range s.steps {
		if !step.IsEnabled() {
			log.Info("evaluator disabled", zap.String("name", step.Name()), zap.String("reason", step.reason))
			continue
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			res := step.evaluator.Evaluate(in)
			slots[i] = &res

			log.Info("evaluator step",
				zap.String("name", step.Name()),
				zap.String("verdict", string(res.Verdict)),
				zap.Int("score", res.Score),
				zap.Int("errors", len(res.StructuredErrors)),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("running evaluators: %w", err)
	}

	results := make(map[evaluation.Kind]*evaluation.Result, len(slots))
	for i, res := range slots {
		if res != nil {
			results[s.steps[i].evaluator.Kind()] = res
		}
	}
	return results, nil
}

// CandidateName picks the name used in the letter: the explicit name, else the
// document author, else the local part of the contact email.
func CandidateName(explicit string, p *resume.Parsed) string {
	if name := strings.TrimSpace(explicit); name != "" {
		return name
	}
	if p == nil {
		return ""
	}
	if author := strings.TrimSpace(p.Document.Author); author != "" {
		return author
	}
	if local, _, ok := strings.Cut(p.Structure.Contact.Email, "@"); ok {
		return local
	}
	return ""
}
