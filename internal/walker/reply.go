package walker

import (
	"strconv"
	"strings"
)

// Decisions an operator can give at the checkpoint.
const (
	DecisionApprove    = "approve"
	DecisionEdit       = "edit"
	DecisionRegenerate = "regenerate"
)

const neutralScore = 3

// ParseReply extracts the decision and rating from a free-form operator
// reply. The decision defaults to approve and the score to neutral 3. The
// first standalone digit token in 1..5 wins; tokens like "10" are ignored.
func ParseReply(reply string) (decision string, score int) {
	reply = strings.ToLower(strings.TrimSpace(reply))

	decision = DecisionApprove
	if strings.Contains(reply, DecisionEdit) {
		decision = DecisionEdit
	} else if strings.Contains(reply, DecisionRegenerate) {
		decision = DecisionRegenerate
	}

	score = neutralScore
	for _, word := range strings.Fields(reply) {
		if n, err := strconv.Atoi(word); err == nil && n >= 1 && n <= 5 {
			score = n
			break
		}
	}
	return decision, score
}

func hasDecision(reply string) bool {
	reply = strings.ToLower(reply)
	for _, d := range []string{DecisionApprove, DecisionEdit, DecisionRegenerate} {
		if strings.Contains(reply, d) {
			return true
		}
	}
	return false
}
