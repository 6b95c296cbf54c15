package rules

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTidyCollapsesDuplicatePunctuation(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"one,, two":       "one, two",
		"done.. next":     "done. next",
		"really??":        "really?",
		"stop!! now":      "stop! now",
		"end, .":          "end.",
		"word , here":     "word, here",
		`say " hello "`:   `say"hello"`,
		"clean text stays": "clean text stays",
	}
	for input, want := range cases {
		if got := Tidy(input); got != want {
			t.Fatalf("Tidy(%q) = %q, want %q", input, got, want)
		}
	}
}

func newTestPipeline(t *testing.T) *Pipeline {
	t.Helper()
	return NewPipeline(newTestEngine(t), nil)
}

func TestPipelineRewritesBareTrigger(t *testing.T) {
	t.Parallel()

	pipeline := newTestPipeline(t)

	// The engine leaves a space before the inserted comma; the tidy
	// pass removes it.
	got, err := pipeline.Rewrite("please add comma here")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "please add, here" {
		t.Fatalf("got %q", got)
	}
}

func TestPipelineMixedEscapesAndTriggers(t *testing.T) {
	t.Parallel()

	pipeline := newTestPipeline(t)

	got, err := pipeline.Rewrite("new line actual new line comma actual comma full stop")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "\nnew line, comma." {
		t.Fatalf("got %q", got)
	}
}

func TestPipelineTrimsTrailingSpaces(t *testing.T) {
	t.Parallel()

	pipeline := newTestPipeline(t)

	got, err := pipeline.Rewrite("that is all full stop")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "that is all." {
		t.Fatalf("got %q", got)
	}
}

func TestPipelineDropsEmptySubsStage(t *testing.T) {
	t.Parallel()

	subs, err := LoadSubs("")
	if err != nil {
		t.Fatalf("load subs: %v", err)
	}
	pipeline := NewPipeline(newTestEngine(t), subs)
	if pipeline.subs != nil {
		t.Fatalf("empty substitutions must not stay in the chain")
	}

	got, err := pipeline.Rewrite("plain text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "plain text" {
		t.Fatalf("got %q", got)
	}
}

func TestPipelineAppliesOperatorSubstitutions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "subs.txt")
	content := "cheque => check\ns/colour/color/g\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write rules file: %v", err)
	}

	subs, err := LoadSubs(path)
	if err != nil {
		t.Fatalf("load subs: %v", err)
	}
	pipeline := NewPipeline(newTestEngine(t), subs)

	got, err := pipeline.Rewrite("the cheque has a nice colour and colour")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "the check has a nice color and color" {
		t.Fatalf("got %q", got)
	}
}
