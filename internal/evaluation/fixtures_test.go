package evaluation

import (
	"testing"

	"github.com/spigell/resume-screener/internal/resume"
)

const strongResume = `Alex Smith
alex@smith.dev | +1 555 123 4567 | github.com/alexsmith

Summary
Backend engineer building reliable distributed systems with Python and Docker on AWS.

Experience
Senior Engineer, Example Corp
• Cut API latency by 45% through cache design and database design work
• Scaled ingestion throughput 3x for 500 clients using Kafka and Docker
• Led system design of a REST api serving 2000000 users with monitoring and testing
• Introduced CI/CD with Git, lifting deployment frequency by 60%
• Mentored engineers on concurrency, security and authentication

Education
BSc Computer Science, State College

Skills
Python, Docker, Kafka, SQL

Projects
tracer: open-source python profiler built with docker and sql
`

func parsed(t *testing.T, text string) *resume.Parsed {
	t.Helper()
	return resume.Parse(resume.RawDocument{Text: text})
}

func parsedWithConfidence(t *testing.T, text string, confidence int) *resume.Parsed {
	t.Helper()
	return resume.ParseWithConfidence(resume.RawDocument{Text: text}, confidence)
}

func errorIDs(res Result) []string {
	ids := make([]string, 0, len(res.StructuredErrors))
	for _, e := range res.StructuredErrors {
		ids = append(ids, e.ErrorID)
	}
	return ids
}

func findError(t *testing.T, res Result, id string) StructuredError {
	t.Helper()
	for _, e := range res.StructuredErrors {
		if e.ErrorID == id {
			return e
		}
	}
	t.Fatalf("error %s not found in %v", id, errorIDs(res))
	return StructuredError{}
}

func assertValidErrors(t *testing.T, res Result) {
	t.Helper()
	for _, e := range res.StructuredErrors {
		if err := e.Validate(); err != nil {
			t.Fatalf("invalid structured error: %v", err)
		}
		if e.Evaluator != res.Evaluator {
			t.Fatalf("error %s attributed to %s, expected %s", e.ErrorID, e.Evaluator, res.Evaluator)
		}
	}
	if len(res.Findings) != len(res.StructuredErrors) {
		t.Fatalf("expected one finding per error, got %d findings and %d errors", len(res.Findings), len(res.StructuredErrors))
	}
}
