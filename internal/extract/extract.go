// Package extract turns résumé files into plain text documents.
package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	pdf "github.com/ledongthuc/pdf"

	"github.com/spigell/resume-screener/internal/resume"
)

// MinTextRunes is the shortest trimmed text considered a usable document.
const MinTextRunes = 50

var (
	// ErrUnsupportedFormat is returned for file extensions without an extractor.
	ErrUnsupportedFormat = errors.New("unsupported file format: only pdf, docx, txt and md are allowed")
	// ErrTooShort is returned when the extracted text is too short to analyse.
	ErrTooShort = errors.New("extracted text is too short")

	spacesRe   = regexp.MustCompile(`[ \t\f\v]+`)
	blankRunRe = regexp.MustCompile(`\n{3,}`)
)

// FromFile reads path and extracts its text.
func FromFile(path string) (resume.RawDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return resume.RawDocument{}, fmt.Errorf("read %s: %w", path, err)
	}
	return FromBytes(filepath.Base(path), data)
}

// FromBytes extracts text from data, choosing the format by the extension of name.
func FromBytes(name string, data []byte) (resume.RawDocument, error) {
	var (
		doc resume.RawDocument
		err error
	)

	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".pdf":
		doc, err = fromPDF(data)
	case ".docx":
		doc, err = fromDocx(data)
	case ".txt", ".md":
		if !utf8.Valid(data) {
			return resume.RawDocument{}, fmt.Errorf("%s is not valid UTF-8 text", name)
		}
		doc = resume.RawDocument{Text: string(data), PageCount: 1}
	default:
		return resume.RawDocument{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return resume.RawDocument{}, err
	}

	doc.Text = normalizeWhitespace(doc.Text)
	if n := utf8.RuneCountInString(doc.Text); n < MinTextRunes {
		return resume.RawDocument{}, fmt.Errorf("%w: %d characters in %s", ErrTooShort, n, name)
	}
	return doc, nil
}

func fromPDF(data []byte) (resume.RawDocument, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return resume.RawDocument{}, fmt.Errorf("read pdf: %w", err)
	}

	var text strings.Builder
	total := r.NumPage()
	for i := 1; i <= total; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return resume.RawDocument{}, fmt.Errorf("read pdf page %d: %w", i, err)
		}
		text.WriteString(content)
		text.WriteString("\n\n")
	}

	info := r.Trailer().Key("Info")
	return resume.RawDocument{
		Text:      text.String(),
		PageCount: total,
		Author:    strings.TrimSpace(info.Key("Author").Text()),
		Producer:  strings.TrimSpace(info.Key("Producer").Text()),
	}, nil
}

func fromDocx(data []byte) (resume.RawDocument, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return resume.RawDocument{}, fmt.Errorf("read docx: %w", err)
	}

	var doc resume.RawDocument
	found := false
	for _, f := range zr.File {
		switch f.Name {
		case "word/document.xml":
			text, err := readZipEntry(f, documentText)
			if err != nil {
				return resume.RawDocument{}, fmt.Errorf("read docx body: %w", err)
			}
			doc.Text = text
			found = true
		case "docProps/core.xml":
			author, err := readZipEntry(f, coreAuthor)
			if err == nil {
				doc.Author = author
			}
		}
	}
	if !found {
		return resume.RawDocument{}, errors.New("read docx: no word/document.xml found")
	}
	return doc, nil
}

func readZipEntry(f *zip.File, parse func(io.Reader) (string, error)) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()
	return parse(rc)
}

// documentText walks WordprocessingML runs, ending every paragraph with a newline.
func documentText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var (
		text   strings.Builder
		inText bool
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				text.WriteString("\t")
			case "br", "cr":
				text.WriteString("\n")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				text.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				text.Write(t)
			}
		}
	}
	return text.String(), nil
}

func coreAuthor(r io.Reader) (string, error) {
	var props struct {
		Creator string `xml:"creator"`
	}
	if err := xml.NewDecoder(r).Decode(&props); err != nil {
		return "", err
	}
	return strings.TrimSpace(props.Creator), nil
}

func normalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = spacesRe.ReplaceAllString(s, " ")
	s = blankRunRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
