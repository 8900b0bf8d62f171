package evaluation

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/spigell/resume-screener/internal/rules"
)

func TestRecruiterPassesStrongResume(t *testing.T) {
	t.Parallel()

	res := EvaluateRecruiter(parsed(t, strongResume))
	if res.Score != 100 || res.Verdict != VerdictPass {
		t.Fatalf("expected 100/PASS, got %d/%s with %v", res.Score, res.Verdict, errorIDs(res))
	}
}

func TestRecruiterWallOfTextWithCliches(t *testing.T) {
	t.Parallel()

	text := "I am a hardworking team player and a rockstar.\nExperience\n" +
		strings.Repeat("Delivered features for the platform team every sprint. ", 12)

	res := EvaluateRecruiter(parsed(t, text))

	want := []string{"RECRUITER_BAD_SUMMARY", "RECRUITER_WALL_OF_TEXT", "RECRUITER_CLICHES", "RECRUITER_NO_METRICS"}
	if diff := cmp.Diff(want, errorIDs(res)); diff != "" {
		t.Fatalf("unexpected errors (-want +got):\n%s", diff)
	}
	if res.Score != 30 || res.Verdict != VerdictReject {
		t.Fatalf("expected 30/REJECT, got %d/%s", res.Score, res.Verdict)
	}

	cliches := findError(t, res, "RECRUITER_CLICHES")
	if cliches.Evidence != "hardworking, team player, rockstar" {
		t.Fatalf("unexpected cliché evidence %q", cliches.Evidence)
	}
	wantFinding := `CLICHÉ ALERT: Stop using empty words like "hardworking", "team player", "rockstar". Show, don't tell.`
	if res.Findings[2] != wantFinding {
		t.Fatalf("unexpected cliché finding %q", res.Findings[2])
	}

	if wall := findError(t, res, "RECRUITER_WALL_OF_TEXT"); wall.Evidence != "Bullets: 0" {
		t.Fatalf("unexpected wall of text evidence %q", wall.Evidence)
	}

	noMetrics := findError(t, res, "RECRUITER_NO_METRICS")
	if !noMetrics.Forbids(string(ForbidAddFakeMetrics)) || !noMetrics.Forbids(string(ForbidInvent)) {
		t.Fatalf("expected fabricated metrics to be forbidden, got %v", noMetrics.DisallowedFixes)
	}
}

func TestRecruiterWeakMetrics(t *testing.T) {
	t.Parallel()

	text := "Summary\nBackend engineer.\nExperience\n• Cut latency by 45%\n• Wrote services\nSkills\nGo"
	res := EvaluateRecruiter(parsed(t, text))

	if diff := cmp.Diff([]string{"RECRUITER_WEAK_METRICS"}, errorIDs(res)); diff != "" {
		t.Fatalf("unexpected errors (-want +got):\n%s", diff)
	}
	if res.Score != 90 {
		t.Fatalf("expected score 90, got %d", res.Score)
	}
	weak := res.StructuredErrors[0]
	if weak.Evidence != "Metrics: 1" || !weak.Forbids("add_fake_metrics") {
		t.Fatalf("unexpected weak metrics error %+v", weak)
	}
}

func TestRecruiterLengthChecks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		wantID string
	}{
		{
			name:   "too long",
			text:   strongResume + strings.Repeat("x", 6000),
			wantID: "RECRUITER_TOO_LONG",
		},
		{
			name:   "long summary",
			text:   strings.Replace(strongResume, "Summary\n", "Summary\n"+strings.Repeat("word ", 90)+"\n", 1),
			wantID: "RECRUITER_BAD_SUMMARY",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := EvaluateRecruiter(parsed(t, tt.text))
			if diff := cmp.Diff([]string{tt.wantID}, errorIDs(res)); diff != "" {
				t.Fatalf("unexpected errors (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRecruiterUsesTableCliches(t *testing.T) {
	t.Parallel()

	tables := rules.Default()
	tables.Cliches = []string{"Backend"}
	res := NewRecruiter(tables).Evaluate(Input{Resume: parsed(t, strongResume)})

	if diff := cmp.Diff([]string{"RECRUITER_CLICHES"}, errorIDs(res)); diff != "" {
		t.Fatalf("unexpected errors (-want +got):\n%s", diff)
	}
	if res.Score != 95 {
		t.Fatalf("expected score 95, got %d", res.Score)
	}
}
