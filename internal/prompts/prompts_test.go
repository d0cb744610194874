package prompts

import (
	"strings"
	"testing"
)

func TestFor_BandBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  string // distinctive fragment of the expected band
	}{
		{"exactly 2 is low band", 2, "vivid imagery"},
		{"below 2 is low band", 1, "vivid imagery"},
		{"exactly 3 is middle band", 3, "Modernize the language"},
		{"between bands is middle band", 2.5, "Modernize the language"},
		{"exactly 4 is high band", 4, "stylistic freedom"},
		{"above 4 is high band", 4.67, "stylistic freedom"},
		{"maximum is high band", 5, "stylistic freedom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := For(StageRewrite, tt.score)
			if !strings.Contains(got, tt.want) {
				t.Fatalf("For(rewrite, %v) = %q, want fragment %q", tt.score, got, tt.want)
			}
		})
	}
}

func TestFor_Pure(t *testing.T) {
	for _, stage := range []Stage{StageRewrite, StageReview, StageEdit} {
		for _, score := range []float64{1, 2, 2.5, 3, 3.9, 4, 5} {
			first := For(stage, score)
			for i := 0; i < 3; i++ {
				if got := For(stage, score); got != first {
					t.Fatalf("For(%s, %v) not deterministic", stage, score)
				}
			}
		}
	}
}

func TestFor_StagesHaveDistinctWording(t *testing.T) {
	rewrite := For(StageRewrite, 3)
	edit := For(StageEdit, 3)
	review := For(StageReview, 3)
	if rewrite == edit || rewrite == review || edit == review {
		t.Fatal("expected distinct instructions per stage")
	}
}

func TestFor_UnknownStageFallsBackToRewrite(t *testing.T) {
	if got := For(Stage("summarize"), 3); got != For(StageRewrite, 3) {
		t.Fatalf("unexpected instruction for unknown stage: %q", got)
	}
}

func TestFor_EditBands(t *testing.T) {
	if got := For(StageEdit, 2); !strings.Contains(got, "emotionally engaging") {
		t.Fatalf("edit low band mismatch: %q", got)
	}
	if got := For(StageEdit, 4); !strings.Contains(got, "clear, concise, and professional") {
		t.Fatalf("edit high band mismatch: %q", got)
	}
}
