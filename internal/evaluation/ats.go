package evaluation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/spigell/resume-screener/internal/resume"
	"github.com/spigell/resume-screener/internal/rules"
)

// DefaultJobRole is used when the caller does not name a role.
const DefaultJobRole = "Software Engineer"

const (
	minConfidence      = 50
	shortLineRunes     = 20
	shortLineRatio     = 0.5
	lowKeywordRatio    = 0.3
	weakKeywordRatio   = 0.5
	parsingPenalty     = 40
	missingPenalty     = 20
	lowKeywordPenalty  = 25
	weakKeywordPenalty = 10
	columnsPenalty     = 15
	contactPenalty     = 30
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// ATS imitates an applicant tracking system's parser and keyword filter.
type ATS struct {
	tables rules.Tables
}

// NewATS returns an ATS evaluator over tables.
func NewATS(tables rules.Tables) *ATS {
	return &ATS{tables: tables}
}

func (a *ATS) Kind() Kind { return KindATS }

func (a *ATS) Evaluate(in Input) Result {
	return a.evaluate(in.Resume, in.JobRole)
}

// EvaluateATS scores p with the built-in tables.
func EvaluateATS(p *resume.Parsed, jobRole string) Result {
	return NewATS(rules.Default()).evaluate(p, jobRole)
}

func (a *ATS) evaluate(p *resume.Parsed, jobRole string) Result {
	if strings.TrimSpace(jobRole) == "" {
		jobRole = DefaultJobRole
	}

	card := newScorecard(KindATS)
	raw := p.RawText()
	normalized := whitespaceRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(raw)), " ")
	role := a.tables.ResolveRole(jobRole)

	if p.Confidence < minConfidence {
		card.deduct(parsingPenalty,
			"CRITICAL: Resume parsing failed or was very low quality. ATS cannot read this.",
			StructuredError{
				ErrorID:         "ATS_PARSING_FAILURE",
				Severity:        SeverityHigh,
				Section:         SectionGeneral,
				Reason:          "Resume parsing failed or was very low quality.",
				Evidence:        fmt.Sprintf("Confidence Score: %d", p.Confidence),
				AllowedFixes:    []Fix{FixNormalize},
				DisallowedFixes: []Forbidden{ForbidInvent},
			})
		res := card.result()
		res.Verdict = VerdictReject
		return res
	}

	a.checkSections(card, p.Structure)
	a.checkKeywords(card, normalized, role, jobRole)
	checkColumns(card, raw)

	if p.Structure.Contact.Email == "" && p.Structure.Contact.Phone == "" {
		card.deduct(contactPenalty,
			"CRITICAL: No contact information found. Immediate rejection.",
			StructuredError{
				ErrorID:         "ATS_MISSING_CONTACT",
				Severity:        SeverityHigh,
				Section:         SectionGeneral,
				Reason:          "No contact information found.",
				AllowedFixes:    []Fix{FixRewrite},
				DisallowedFixes: []Forbidden{ForbidInvent},
			})
	}

	return card.result()
}

func (a *ATS) checkSections(card *scorecard, s resume.Structure) {
	required := []struct {
		name    string
		section Section
		blocks  []string
	}{
		{name: "experience", section: SectionExperience, blocks: s.Experience},
		{name: "education", section: SectionEducation, blocks: s.Education},
		{name: "skills", section: SectionSkills, blocks: s.Skills},
	}

	for _, r := range required {
		if len(r.blocks) > 0 {
			continue
		}
		card.deduct(missingPenalty,
			fmt.Sprintf("MISSING SECTION: Could not find a clear %q section.", r.name),
			StructuredError{
				ErrorID:         "ATS_MISSING_" + strings.ToUpper(r.name),
				Severity:        SeverityHigh,
				Section:         r.section,
				Reason:          fmt.Sprintf("Could not find a clear %q section.", r.name),
				AllowedFixes:    []Fix{FixReorder, FixNormalize},
				DisallowedFixes: []Forbidden{ForbidInvent},
			})
	}
}

func (a *ATS) checkKeywords(card *scorecard, normalized string, role rules.RoleKeywords, jobRole string) {
	if len(role.Keywords) == 0 {
		return
	}

	found := make([]string, 0, len(role.Keywords))
	for _, kw := range role.Keywords {
		if strings.Contains(normalized, strings.ToLower(kw)) {
			found = append(found, kw)
		}
	}
	ratio := float64(len(found)) / float64(len(role.Keywords))

	switch {
	case ratio < lowKeywordRatio:
		card.deduct(lowKeywordPenalty,
			fmt.Sprintf("LOW KEYWORD MATCH: Found only %d relevant keywords for %s (matched against %s list). ATS filters will drop this.", len(found), jobRole, role.Role),
			StructuredError{
				ErrorID:         "ATS_LOW_KEYWORD_MATCH",
				Severity:        SeverityHigh,
				Section:         SectionSkills,
				Reason:          fmt.Sprintf("Found only %d relevant keywords for %s.", len(found), jobRole),
				Evidence:        "Found: " + strings.Join(found, ", "),
				AllowedFixes:    []Fix{FixRewrite, FixNormalize},
				DisallowedFixes: []Forbidden{ForbidInvent, ForbidAddFakeMetrics},
			})
	case ratio < weakKeywordRatio:
		card.deduct(weakKeywordPenalty,
			fmt.Sprintf("WEAK KEYWORD MATCH: Missing common industry terms for %s.", jobRole),
			StructuredError{
				ErrorID:         "ATS_WEAK_KEYWORD_MATCH",
				Severity:        SeverityMedium,
				Section:         SectionSkills,
				Reason:          fmt.Sprintf("Missing common industry terms for %s.", jobRole),
				AllowedFixes:    []Fix{FixRewrite, FixNormalize},
				DisallowedFixes: []Forbidden{ForbidInvent},
			})
	}
}

// checkColumns flags text where most lines are very short, which is what a
// multi-column layout looks like after extraction.
func checkColumns(card *scorecard, raw string) {
	lines := strings.Split(raw, "\n")
	short := 0
	for _, l := range lines {
		n := utf8.RuneCountInString(strings.TrimSpace(l))
		if n > 0 && n < shortLineRunes {
			short++
		}
	}

	if float64(short)/float64(len(lines)) <= shortLineRatio {
		return
	}

	card.deduct(columnsPenalty,
		"FORMATTING: High density of short lines detected. This often indicates broken multi-column parsing. Use a single-column layout.",
		StructuredError{
			ErrorID:      "ATS_BAD_FORMATTING_COLUMNS",
			Severity:     SeverityMedium,
			Section:      SectionGeneral,
			Reason:       "High density of short lines detected. This often indicates broken multi-column parsing.",
			AllowedFixes: []Fix{FixNormalize},
		})
}
