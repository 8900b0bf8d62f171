package resume

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/spigell/resume-screener/internal/rules"
)

// maxHeaderRunes is the exclusive upper bound on the length of a header line.
const maxHeaderRunes = 50

var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phoneRe = regexp.MustCompile(`(\+\d{1,3}[-. ]?)?\(?\d{3}\)?[-. ]?\d{3}[-. ]?\d{4}`)
	linkRe  = regexp.MustCompile(`(https?://\S+)|(www\.\S+)|(github\.com/\S+)|(linkedin\.com/\S+)`)
	lineRe  = regexp.MustCompile(`\r?\n`)
)

// Extractor segments résumé text using a set of header patterns.
type Extractor struct {
	headers []rules.CompiledHeader
}

// NewExtractor compiles the header patterns of tables.
func NewExtractor(tables rules.Tables) (*Extractor, error) {
	headers, err := tables.CompileHeaders()
	if err != nil {
		return nil, err
	}
	return &Extractor{headers: headers}, nil
}

var defaultExtractor = &Extractor{}

// ExtractStructure segments text with the built-in header patterns.
func ExtractStructure(text string) Structure {
	return defaultExtractor.Extract(text)
}

// Extract returns the best-effort structure of text. It never fails; unrecognised
// input yields empty sections.
func (e *Extractor) Extract(text string) Structure {
	s := NewStructure()
	s.Contact = extractContact(text)

	seg := segmenter{structure: &s}
	for _, raw := range lineRe.Split(text, -1) {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if utf8.RuneCountInString(line) < maxHeaderRunes {
			if section, ok := e.matchHeader(line); ok {
				seg.flush()
				seg.current = section
				continue
			}
		}

		// Text before the first recognised header is dropped.
		if seg.current != "" {
			seg.buffer = append(seg.buffer, line)
		}
	}
	seg.flush()

	return s
}

func (e *Extractor) matchHeader(line string) (rules.Section, bool) {
	headers := e.headers
	if headers == nil {
		headers = rules.DefaultHeaders()
	}
	for _, h := range headers {
		if h.Regexp.MatchString(line) {
			return h.Section, true
		}
	}
	return "", false
}

func extractContact(text string) Contact {
	contact := Contact{Links: []string{}}
	contact.Email = emailRe.FindString(text)
	contact.Phone = phoneRe.FindString(text)
	if links := linkRe.FindAllString(text, -1); links != nil {
		contact.Links = links
	}
	return contact
}

type segmenter struct {
	structure *Structure
	current   rules.Section
	buffer    []string
}

// flush stores the buffered lines as the only block of the current section,
// replacing anything stored by an earlier occurrence of the same header.
func (s *segmenter) flush() {
	if s.current == "" || len(s.buffer) == 0 {
		return
	}

	block := strings.Join(s.buffer, "\n")
	switch s.current {
	case rules.SectionSummary:
		s.structure.Summary = block
	case rules.SectionExperience:
		s.structure.Experience = []string{block}
	case rules.SectionEducation:
		s.structure.Education = []string{block}
	case rules.SectionSkills:
		s.structure.Skills = []string{block}
	case rules.SectionProjects:
		s.structure.Projects = []string{block}
	case rules.SectionCertifications:
		s.structure.Certifications = []string{block}
	}
	s.buffer = nil
}
