package evaluation

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/spigell/resume-screener/internal/rules"
)

func TestEngineerPassesStrongResume(t *testing.T) {
	t.Parallel()

	res := EvaluateEngineer(parsed(t, strongResume))
	if res.Score != 100 || res.Verdict != VerdictPass {
		t.Fatalf("expected 100/PASS, got %d/%s with %v", res.Score, res.Verdict, errorIDs(res))
	}
	if res.Summary != SummaryPass {
		t.Fatalf("unexpected summary %q", res.Summary)
	}
}

func TestEngineerBuzzwordsDepthAndStuffing(t *testing.T) {
	t.Parallel()

	text := "Skills\nAI, Blockchain, Rust, Haskell, Elixir\nExperience\nBuilt websites for clients."
	res := EvaluateEngineer(parsed(t, text))

	want := []string{"ENGINEER_BUZZWORD_NO_PROOF", "ENGINEER_BUZZWORD_NO_PROOF", "ENGINEER_LACK_OF_DEPTH", "ENGINEER_SKILL_STUFFING"}
	if diff := cmp.Diff(want, errorIDs(res)); diff != "" {
		t.Fatalf("unexpected errors (-want +got):\n%s", diff)
	}
	if res.Score != 15 || res.Verdict != VerdictReject || res.Summary != SummaryReject {
		t.Fatalf("expected 15/REJECT with reject summary, got %d/%s %q", res.Score, res.Verdict, res.Summary)
	}

	ai := res.StructuredErrors[0]
	if ai.Evidence != "Term: AI; expected one of: pytorch, tensorflow, keras" {
		t.Fatalf("unexpected buzzword evidence %q", ai.Evidence)
	}
	if !strings.Contains(res.Findings[1], `"Blockchain"`) {
		t.Fatalf("expected blockchain finding, got %q", res.Findings[1])
	}

	depth := findError(t, res, "ENGINEER_LACK_OF_DEPTH")
	if depth.Evidence != "Depth indicators found: 0" || !depth.Forbids("exaggerate") {
		t.Fatalf("unexpected depth error %+v", depth)
	}

	stuffing := findError(t, res, "ENGINEER_SKILL_STUFFING")
	if stuffing.Evidence != "blockchain, rust, haskell, elixir" {
		t.Fatalf("unexpected stuffing evidence %q", stuffing.Evidence)
	}
	if !strings.HasPrefix(res.Findings[3], "SKILL STUFFING: You listed 4 skills") {
		t.Fatalf("unexpected stuffing finding %q", res.Findings[3])
	}
}

func TestEngineerBorderline(t *testing.T) {
	t.Parallel()

	res := EvaluateEngineer(parsed(t, "Skills\nGo\nExperience\nWrote Go services."))

	if diff := cmp.Diff([]string{"ENGINEER_LACK_OF_DEPTH"}, errorIDs(res)); diff != "" {
		t.Fatalf("unexpected errors (-want +got):\n%s", diff)
	}
	if res.Score != 75 || res.Verdict != VerdictBorderline || res.Summary != SummaryBorderline {
		t.Fatalf("expected 75/BORDERLINE, got %d/%s %q", res.Score, res.Verdict, res.Summary)
	}
}

func TestEngineerBuzzwordWithProof(t *testing.T) {
	t.Parallel()

	text := strings.Replace(strongResume, "Python, Docker, Kafka, SQL", "Python, Docker, Kafka, SQL, AI", 1) +
		"Trained a ranking model with pytorch\n"
	res := EvaluateEngineer(parsed(t, text))

	for _, id := range errorIDs(res) {
		if id == "ENGINEER_BUZZWORD_NO_PROOF" {
			t.Fatal("buzzword backed by a required term should not be flagged")
		}
	}
}

func TestEngineerSkillStuffingThreshold(t *testing.T) {
	t.Parallel()

	text := "Skills\nPython, Rust\nExperience\nKept python tooling with testing, monitoring and latency budgets."
	res := EvaluateEngineer(parsed(t, text))

	if len(res.StructuredErrors) != 0 {
		t.Fatalf("half the skills proven should not be stuffing, got %v", errorIDs(res))
	}
}

func TestEngineerUsesTableEntries(t *testing.T) {
	t.Parallel()

	tables := rules.Default()
	tables.Buzzwords = []rules.Buzzword{{Term: "Kafka", Required: []string{"partition"}}}
	tables.DepthIndicators = []string{"quantum", "photonic", "qubit"}

	res := NewEngineer(tables).Evaluate(Input{Resume: parsed(t, strongResume)})

	if diff := cmp.Diff([]string{"ENGINEER_BUZZWORD_NO_PROOF", "ENGINEER_LACK_OF_DEPTH"}, errorIDs(res)); diff != "" {
		t.Fatalf("unexpected errors (-want +got):\n%s", diff)
	}
	if ev := res.StructuredErrors[0].Evidence; ev != "Term: Kafka; expected one of: partition" {
		t.Fatalf("unexpected evidence %q", ev)
	}
	if res.Score != 55 || res.Summary != SummaryReject {
		t.Fatalf("expected 55 with reject summary, got %d %q", res.Score, res.Summary)
	}
}

func TestSkillTokens(t *testing.T) {
	t.Parallel()

	got := SkillTokens([]string{"Go, Python • Kubernetes\nSQL"})
	want := []string{"python", "kubernetes", "sql"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected tokens (-want +got):\n%s", diff)
	}
}

func TestSummaryFor(t *testing.T) {
	t.Parallel()

	if SummaryFor("UNKNOWN") != SummaryDefault {
		t.Fatal("expected default summary for unknown verdict")
	}
}
