package gemini

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/correction"
	"github.com/spigell/resume-screener/internal/logger"
	"github.com/spigell/resume-screener/internal/utils"
)

// ProviderName identifies the Gemini correction provider.
const ProviderName = "gemini"

const defaultMaxLogLength = 200

//go:embed system.md
var systemInstruction string

//go:embed prompt.md
var promptTemplate string

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
	Model() string
}

// Corrector asks Gemini for a correction proposal.
type Corrector struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

// NewCorrector returns a correction.Provider backed by generator.
func NewCorrector(generator contentGenerator, log *zap.Logger, maxLogLength int) *Corrector {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Corrector{
		generator: generator,
		logger:    logger.WithFields(log, logger.ProviderFields(ProviderName, generator.Model())...),
		maxLogLen: maxLogLength,
	}
}

func (c *Corrector) Name() string { return ProviderName }

// Propose implements correction.Provider.
func (c *Corrector) Propose(ctx context.Context, req correction.Request) (*correction.Proposal, error) {
	errorsJSON, err := json.MarshalIndent(req.Errors, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal structured errors: %w", err)
	}

	prompt := buildPrompt(req.JobRole, req.RawText, string(errorsJSON))

	c.logger.Debug("gemini generate content request",
		zap.Int("errors", len(req.Errors)),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, c.maxLogLen)),
	)

	raw, err := c.generator.GenerateContent(ctx, systemInstruction, prompt)
	if err != nil {
		return nil, &correction.ProviderError{Provider: ProviderName, Err: err}
	}

	c.logger.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, c.maxLogLen)),
	)

	proposal, err := correction.ParseProposal(raw)
	if err != nil {
		return nil, err
	}
	return proposal, nil
}

func buildPrompt(jobRole, resumeText, errorsJSON string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "TARGET ROLE: {{JOB_ROLE}}\n\nRESUME CONTENT:\n{{RESUME_TEXT}}\n\nERRORS TO FIX:\n{{ERRORS_JSON}}\n\nJSON Response:"
	}
	prompt := strings.ReplaceAll(template, "{{JOB_ROLE}}", jobRole)
	prompt = strings.ReplaceAll(prompt, "{{ERRORS_JSON}}", errorsJSON)
	prompt = strings.ReplaceAll(prompt, "{{RESUME_TEXT}}", resumeText)
	return prompt
}
