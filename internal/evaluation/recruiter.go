package evaluation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/spigell/resume-screener/internal/resume"
	"github.com/spigell/resume-screener/internal/rules"
)

const (
	maxSummaryRunes    = 400
	minBullets         = 5
	wallOfTextRunes    = 500
	maxResumeRunes     = 6000
	weakMetricsBelow   = 3
	summaryPenalty     = 10
	wallOfTextPenalty  = 20
	clichePenalty      = 5
	noMetricsPenalty   = 25
	weakMetricsPenalty = 10
	tooLongPenalty     = 15
)

var (
	bulletRe = regexp.MustCompile(`•|-|\*`)
	metricRe = regexp.MustCompile(`\d+%|\$\d+|\d+x|\d+\s+users|\d+\s+clients`)
)

// Recruiter imitates the six-second human scan.
type Recruiter struct {
	tables rules.Tables
}

// NewRecruiter returns a Recruiter evaluator over tables.
func NewRecruiter(tables rules.Tables) *Recruiter {
	return &Recruiter{tables: tables}
}

func (r *Recruiter) Kind() Kind { return KindRecruiter }

func (r *Recruiter) Evaluate(in Input) Result {
	return r.evaluate(in.Resume)
}

// EvaluateRecruiter scores p with the built-in tables.
func EvaluateRecruiter(p *resume.Parsed) Result {
	return NewRecruiter(rules.Default()).evaluate(p)
}

func (r *Recruiter) evaluate(p *resume.Parsed) Result {
	card := newScorecard(KindRecruiter)
	raw := p.RawText()
	experience := strings.Join(p.Structure.Experience, "\n")

	if summary := p.Structure.Summary; summary == "" || utf8.RuneCountInString(summary) > maxSummaryRunes {
		card.deduct(summaryPenalty,
			"SCANABILITY: Summary is either missing or too long. Keep it to 3 lines max.",
			StructuredError{
				ErrorID:         "RECRUITER_BAD_SUMMARY",
				Severity:        SeverityMedium,
				Section:         SectionSummary,
				Reason:          "Summary is either missing or too long.",
				AllowedFixes:    []Fix{FixRewrite, FixRemove},
				DisallowedFixes: []Forbidden{ForbidInvent},
			})
	}

	bullets := len(bulletRe.FindAllStringIndex(experience, -1))
	if bullets < minBullets && utf8.RuneCountInString(experience) > wallOfTextRunes {
		card.deduct(wallOfTextPenalty,
			"READABILITY: Wall of text detected in Experience. Use bullet points.",
			StructuredError{
				ErrorID:      "RECRUITER_WALL_OF_TEXT",
				Severity:     SeverityHigh,
				Section:      SectionExperience,
				Reason:       "Wall of text detected. Use bullet points.",
				Evidence:     fmt.Sprintf("Bullets: %d", bullets),
				AllowedFixes: []Fix{FixNormalize},
			})
	}

	r.checkCliches(card, strings.ToLower(raw))
	checkMetrics(card, experience)

	if utf8.RuneCountInString(raw) > maxResumeRunes {
		card.deduct(tooLongPenalty,
			"LENGTH: Your resume is too long. Senior engineers need 1 page. You are not the CEO.",
			StructuredError{
				ErrorID:      "RECRUITER_TOO_LONG",
				Severity:     SeverityMedium,
				Section:      SectionGeneral,
				Reason:       "Resume is too long.",
				AllowedFixes: []Fix{FixRemove, FixRewrite},
			})
	}

	return card.result()
}

func (r *Recruiter) checkCliches(card *scorecard, lower string) {
	var found []string
	for _, phrase := range r.tables.Cliches {
		if strings.Contains(lower, strings.ToLower(phrase)) {
			found = append(found, phrase)
		}
	}
	if len(found) == 0 {
		return
	}

	card.deduct(clichePenalty*len(found),
		fmt.Sprintf(`CLICHÉ ALERT: Stop using empty words like "%s". Show, don't tell.`, strings.Join(found, `", "`)),
		StructuredError{
			ErrorID:         "RECRUITER_CLICHES",
			Severity:        SeverityMedium,
			Section:         SectionGeneral,
			Reason:          "Found generic clichés: " + strings.Join(found, ", "),
			Evidence:        strings.Join(found, ", "),
			AllowedFixes:    []Fix{FixRemove, FixRewrite},
			DisallowedFixes: []Forbidden{ForbidInvent},
		})
}

func checkMetrics(card *scorecard, experience string) {
	metrics := len(metricRe.FindAllStringIndex(experience, -1))

	switch {
	case metrics == 0:
		card.deduct(noMetricsPenalty,
			"NO METRICS: You listed responsibilities, not achievements. Where are the numbers? (%, $, users, speedup)",
			StructuredError{
				ErrorID:         "RECRUITER_NO_METRICS",
				Severity:        SeverityHigh,
				Section:         SectionExperience,
				Reason:          "No quantified metrics found.",
				AllowedFixes:    []Fix{FixRewrite},
				DisallowedFixes: []Forbidden{ForbidAddFakeMetrics, ForbidInvent},
			})
	case metrics < weakMetricsBelow:
		card.deduct(weakMetricsPenalty,
			`WEAK IMPACT: Add more quantified results. "Improved performance" means nothing. "Improved performance by 20%" gets you hired.`,
			StructuredError{
				ErrorID:         "RECRUITER_WEAK_METRICS",
				Severity:        SeverityMedium,
				Section:         SectionExperience,
				Reason:          "Few quantified metrics found.",
				Evidence:        fmt.Sprintf("Metrics: %d", metrics),
				AllowedFixes:    []Fix{FixRewrite},
				DisallowedFixes: []Forbidden{ForbidAddFakeMetrics, ForbidInvent},
			})
	}
}
