package pipeline

import "testing"

func TestChapter_StagesAppendOnly(t *testing.T) {
	ch := NewChapter("abc123", "http://example.com/ch1", "Chapter abc123")

	if err := ch.SetStage(StageRaw, "original"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ch.SetStage(StageRewritten, "rewritten"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ch.SetStage(StageRewritten, "changed"); err == nil {
		t.Fatal("expected error overwriting an existing stage")
	}

	text, ok := ch.Stage(StageRewritten)
	if !ok || text != "rewritten" {
		t.Fatalf("rewritten snapshot altered: %q", text)
	}
}

func TestChapter_StageOrder(t *testing.T) {
	ch := NewChapter("abc123", "", "")
	for _, s := range []string{StageRaw, StageRewritten, StageReviewed, StageFinal} {
		if err := ch.SetStage(s, s+" text"); err != nil {
			t.Fatal(err)
		}
	}
	got := ch.Stages()
	want := []string{StageRaw, StageRewritten, StageReviewed, StageFinal}
	if len(got) != len(want) {
		t.Fatalf("expected %d stages, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("stage %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestStageError_Message(t *testing.T) {
	err := &StageError{Stage: "render_pdf", Err: errTest}
	if err.Error() != "stage render_pdf: test failure" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}
