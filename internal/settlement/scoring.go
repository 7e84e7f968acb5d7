package settlement

import "strings"

// Points awarded per predicted slot. A slot earns at most one of the two.
const (
	ExactPositionPoints = 3 // Predicted driver finished in that exact slot
	PresencePoints      = 1 // Predicted driver finished elsewhere in the top three
)

// MaxScore is the best possible prediction score (three exact slots).
const MaxScore = 3 * ExactPositionPoints

// Score compares a predicted top three against the official top three and
// returns the points earned. Comparison is case-insensitive. Each predicted
// slot contributes 3 points for an exact-position match, 1 point if the
// driver appears anywhere else in the official top three, 0 otherwise.
func Score(official, predicted [3]string) int {
	for i := range official {
		official[i] = strings.ToLower(official[i])
		predicted[i] = strings.ToLower(predicted[i])
	}
	score := 0
	for i, name := range predicted {
		if name == official[i] {
			score += ExactPositionPoints
			continue
		}
		if name == official[0] || name == official[1] || name == official[2] {
			score += PresencePoints
		}
	}
	return score
}
