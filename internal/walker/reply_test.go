package walker

import "testing"

func TestParseReply(t *testing.T) {
	tests := []struct {
		reply        string
		wantDecision string
		wantScore    int
	}{
		{"approve 4", DecisionApprove, 4},
		{"Approve", DecisionApprove, 3},
		{"please edit it, rate 2", DecisionEdit, 2},
		{"regenerate 5", DecisionRegenerate, 5},
		{"", DecisionApprove, 3},
		{"use option 10", DecisionApprove, 3},
		{"approve with a 6", DecisionApprove, 3},
		{"approve 2 then 5", DecisionApprove, 2},
		{"EDIT 1", DecisionEdit, 1},
	}
	for _, tt := range tests {
		decision, score := ParseReply(tt.reply)
		if decision != tt.wantDecision || score != tt.wantScore {
			t.Fatalf("ParseReply(%q) = (%s, %d), want (%s, %d)",
				tt.reply, decision, score, tt.wantDecision, tt.wantScore)
		}
	}
}

func TestHasDecision(t *testing.T) {
	if hasDecision("mumble mumble") {
		t.Fatal("expected no decision in unrelated text")
	}
	for _, reply := range []string{"approve", "let's EDIT", "regenerate please"} {
		if !hasDecision(reply) {
			t.Fatalf("expected decision in %q", reply)
		}
	}
}
