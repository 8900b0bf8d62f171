// Package resume recovers the logical structure of a résumé from its plain text.
package resume

// RawDocument is the output of text extraction. It is not modified after creation.
type RawDocument struct {
	Text      string `json:"text"`
	PageCount int    `json:"page_count,omitempty"`
	Author    string `json:"author,omitempty"`
	Producer  string `json:"producer,omitempty"`
}

// Contact holds contact details found anywhere in the document.
type Contact struct {
	Email string   `json:"email,omitempty"`
	Phone string   `json:"phone,omitempty"`
	Links []string `json:"links"`
}

// Structure is the segmentation result. List sections hold at most one block: the
// joined text of the last occurrence of that section.
type Structure struct {
	Summary        string   `json:"summary"`
	Experience     []string `json:"experience"`
	Education      []string `json:"education"`
	Skills         []string `json:"skills"`
	Projects       []string `json:"projects"`
	Certifications []string `json:"certifications"`
	Contact        Contact  `json:"contact"`
}

// NewStructure returns a Structure with every list initialised.
func NewStructure() Structure {
	return Structure{
		Experience:     []string{},
		Education:      []string{},
		Skills:         []string{},
		Projects:       []string{},
		Certifications: []string{},
		Contact:        Contact{Links: []string{}},
	}
}

// Parsed bundles a document with its recovered structure and extraction confidence.
type Parsed struct {
	Document   RawDocument `json:"document"`
	Structure  Structure   `json:"structure"`
	Confidence int         `json:"confidence_score"`
}

// RawText returns the original document text.
func (p *Parsed) RawText() string {
	if p == nil {
		return ""
	}
	return p.Document.Text
}

// Parse extracts the structure of doc with the built-in header patterns and
// scores it with Confidence.
func Parse(doc RawDocument) *Parsed {
	return defaultExtractor.Parse(doc)
}

// Parse extracts the structure of doc and scores it with Confidence.
func (e *Extractor) Parse(doc RawDocument) *Parsed {
	structure := e.Extract(doc.Text)
	return &Parsed{
		Document:   doc,
		Structure:  structure,
		Confidence: Confidence(structure),
	}
}

// ParseWithConfidence extracts the structure of doc with the built-in header
// patterns, keeping a caller supplied confidence score.
func ParseWithConfidence(doc RawDocument, confidence int) *Parsed {
	return defaultExtractor.ParseWithConfidence(doc, confidence)
}

// ParseWithConfidence extracts the structure of doc keeping a caller supplied
// confidence score.
func (e *Extractor) ParseWithConfidence(doc RawDocument, confidence int) *Parsed {
	return &Parsed{
		Document:   doc,
		Structure:  e.Extract(doc.Text),
		Confidence: confidence,
	}
}

// Confidence estimates extraction quality from which sections were recovered.
func Confidence(s Structure) int {
	score := 50
	if len(s.Experience) > 0 {
		score += 15
	}
	if len(s.Education) > 0 {
		score += 15
	}
	if len(s.Skills) > 0 {
		score += 10
	}
	if s.Contact.Email != "" {
		score += 10
	}
	return min(score, 100)
}
