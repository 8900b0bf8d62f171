package evaluation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spigell/resume-screener/internal/resume"
	"github.com/spigell/resume-screener/internal/rules"
)

const (
	minDepthIndicators = 3
	maxUnprovenRatio   = 0.5
	minSkillRunes      = 3
	buzzwordExamples   = 3
	unprovenExamples   = 5
	buzzwordPenalty    = 20
	depthPenalty       = 25
	stuffingPenalty    = 20
)

// Band summaries for the engineer verdict.
const (
	SummaryReject     = "You know tools, not systems."
	SummaryBorderline = "Technically okay, but lacks depth."
	SummaryPass       = "Strong engineering mindset visible."
	SummaryDefault    = "You seem competent."
)

var skillSplitRe = regexp.MustCompile(`,|•|\n`)

// Engineer imitates a senior engineer reading for substance. Its score is advisory.
type Engineer struct {
	tables rules.Tables
}

// NewEngineer returns an Engineer evaluator over tables.
func NewEngineer(tables rules.Tables) *Engineer {
	return &Engineer{tables: tables}
}

func (e *Engineer) Kind() Kind { return KindEngineer }

func (e *Engineer) Evaluate(in Input) Result {
	return e.evaluate(in.Resume)
}

// EvaluateEngineer scores p with the built-in tables.
func EvaluateEngineer(p *resume.Parsed) Result {
	return NewEngineer(rules.Default()).evaluate(p)
}

func (e *Engineer) evaluate(p *resume.Parsed) Result {
	card := newScorecard(KindEngineer)
	lower := strings.ToLower(p.RawText())

	e.checkBuzzwords(card, lower)
	e.checkDepth(card, lower)
	checkSkillStuffing(card, p.Structure)

	res := card.result()
	res.Summary = SummaryFor(res.Verdict)
	return res
}

// SummaryFor returns the one-line engineer summary of a verdict band.
func SummaryFor(v Verdict) string {
	switch v {
	case VerdictReject:
		return SummaryReject
	case VerdictBorderline:
		return SummaryBorderline
	case VerdictPass:
		return SummaryPass
	default:
		return SummaryDefault
	}
}

func (e *Engineer) checkBuzzwords(card *scorecard, lower string) {
	for _, b := range e.tables.Buzzwords {
		if !strings.Contains(lower, strings.ToLower(b.Term)) {
			continue
		}
		if containsAny(lower, b.Required) {
			continue
		}

		examples := strings.Join(b.Required[:min(buzzwordExamples, len(b.Required))], ", ")
		card.deduct(buzzwordPenalty,
			fmt.Sprintf("BUZZWORD DETECTED: You mentioned %q but showed no evidence of using %s. Stop lying.", b.Term, examples),
			StructuredError{
				ErrorID:         "ENGINEER_BUZZWORD_NO_PROOF",
				Severity:        SeverityHigh,
				Section:         SectionSkills,
				Reason:          fmt.Sprintf("Mentioned %q without evidence (e.g., %s).", b.Term, examples),
				Evidence:        fmt.Sprintf("Term: %s; expected one of: %s", b.Term, examples),
				AllowedFixes:    []Fix{FixRemove, FixRelink},
				DisallowedFixes: []Forbidden{ForbidInvent},
			})
	}
}

func (e *Engineer) checkDepth(card *scorecard, lower string) {
	depth := 0
	for _, term := range e.tables.DepthIndicators {
		if strings.Contains(lower, strings.ToLower(term)) {
			depth++
		}
	}
	if depth >= minDepthIndicators {
		return
	}

	card.deduct(depthPenalty,
		"SURFACE LEVEL: Your resume reads like a tutorial user. Mention system design, scaling, or trade-offs.",
		StructuredError{
			ErrorID:         "ENGINEER_LACK_OF_DEPTH",
			Severity:        SeverityHigh,
			Section:         SectionExperience,
			Reason:          "Lack of technical depth keywords (scaling, system design, etc.).",
			Evidence:        fmt.Sprintf("Depth indicators found: %d", depth),
			AllowedFixes:    []Fix{FixRewrite},
			DisallowedFixes: []Forbidden{ForbidInvent, ForbidExaggerate},
		})
}

// checkSkillStuffing flags skill lists where most entries never appear in the
// experience or projects text.
func checkSkillStuffing(card *scorecard, s resume.Structure) {
	skills := SkillTokens(s.Skills)
	if len(skills) == 0 {
		return
	}

	proof := strings.ToLower(strings.Join(s.Experience, " ") + " " + strings.Join(s.Projects, " "))
	var unproven []string
	for _, skill := range skills {
		if !strings.Contains(proof, skill) {
			unproven = append(unproven, skill)
		}
	}

	if float64(len(unproven))/float64(len(skills)) <= maxUnprovenRatio {
		return
	}

	examples := strings.Join(unproven[:min(unprovenExamples, len(unproven))], ", ")
	card.deduct(stuffingPenalty,
		fmt.Sprintf("SKILL STUFFING: You listed %d skills but didn't mention half of them in your experience. Only list what you used.", len(skills)),
		StructuredError{
			ErrorID:         "ENGINEER_SKILL_STUFFING",
			Severity:        SeverityMedium,
			Section:         SectionSkills,
			Reason:          fmt.Sprintf("Listed skills not found in experience: %s...", examples),
			Evidence:        examples,
			AllowedFixes:    []Fix{FixRemove, FixRelink},
			DisallowedFixes: []Forbidden{ForbidInvent},
		})
}

// SkillTokens splits skill blocks on commas, bullets and newlines, keeping
// lowercased tokens of at least three runes.
func SkillTokens(blocks []string) []string {
	text := strings.ToLower(strings.Join(blocks, " "))
	var tokens []string
	for _, part := range skillSplitRe.Split(text, -1) {
		part = strings.TrimSpace(part)
		if len([]rune(part)) >= minSkillRunes {
			tokens = append(tokens, part)
		}
	}
	return tokens
}

func containsAny(text string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(text, strings.ToLower(t)) {
			return true
		}
	}
	return false
}
