package screening

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/spigell/resume-screener/internal/correction"
	"github.com/spigell/resume-screener/internal/evaluation"
	"github.com/spigell/resume-screener/internal/resume"
)

func TestCorrectionRequest(t *testing.T) {
	t.Parallel()

	bundle, err := newScreener(t, nil).Run(context.Background(), resume.RawDocument{Text: nameAndEmail}, Options{JobRole: "Data Scientist"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := bundle.CorrectionRequest()
	if req.JobRole != "Data Scientist" || req.RawText != nameAndEmail {
		t.Fatalf("unexpected request header %+v", req)
	}
	if diff := cmp.Diff(bundle.StructuredErrors(), req.Errors); diff != "" {
		t.Fatalf("request errors differ from bundle (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(bundle.Resume.Structure, req.Structure); diff != "" {
		t.Fatalf("request structure differs from bundle (-want +got):\n%s", diff)
	}

	for _, e := range correction.Actionable(req.Errors) {
		if !e.Actionable() {
			t.Fatalf("informational error %s leaked into actionable set", e.ErrorID)
		}
	}
}

func TestStructuredErrorsSkipsDisabled(t *testing.T) {
	t.Parallel()

	b := &Bundle{
		Recruiter: &evaluation.Result{StructuredErrors: []evaluation.StructuredError{{ErrorID: "R"}}},
		Engineer:  &evaluation.Result{StructuredErrors: []evaluation.StructuredError{{ErrorID: "E"}}},
	}

	var ids []string
	for _, e := range b.StructuredErrors() {
		ids = append(ids, e.ErrorID)
	}
	if diff := cmp.Diff([]string{"R", "E"}, ids); diff != "" {
		t.Fatalf("unexpected ids (-want +got):\n%s", diff)
	}

	if got := (&Bundle{}).StructuredErrors(); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestDumpToFile(t *testing.T) {
	t.Parallel()

	bundle, err := newScreener(t, nil).Run(context.Background(), resume.RawDocument{Text: strongResume}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	path := filepath.Join(t.TempDir(), "bundle.json")
	written, err := bundle.DumpToFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if written != path {
		t.Fatalf("expected %s, got %s", path, written)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, key := range []string{`"confidence_score": 100`, `"structured_errors": []`, `"rejection_letter"`} {
		if !strings.Contains(string(data), key) {
			t.Fatalf("expected %s in dump:\n%s", key, data)
		}
	}

	loaded, err := LoadBundle(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded.ID != bundle.ID || loaded.Letter != bundle.Letter {
		t.Fatalf("loaded bundle differs: %+v", loaded)
	}
}

func TestDumpToTempFile(t *testing.T) {
	t.Parallel()

	written, err := (&Bundle{ID: "x"}).DumpToFile("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { os.Remove(written) })

	if !strings.HasPrefix(filepath.Base(written), "screening_") {
		t.Fatalf("unexpected temp file name %s", written)
	}
}

func TestDumpToFileRemovesPartialFile(t *testing.T) {
	t.Parallel()

	// Times past year 9999 cannot be encoded as JSON.
	bundle := &Bundle{ID: "x", CreatedAt: time.Date(10000, time.January, 1, 0, 0, 0, 0, time.UTC)}

	path := filepath.Join(t.TempDir(), "bundle.json")
	if _, err := bundle.DumpToFile(path); err == nil || !strings.Contains(err.Error(), "encode bundle") {
		t.Fatalf("expected encode error, got %v", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected no file left behind, got %v", err)
	}
}
