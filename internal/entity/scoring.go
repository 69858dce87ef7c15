package entity

const (
	DefaultMatchBonus      = 2
	DefaultMismatchPenalty = 1
)

// ScoringPolicy decides how a comparison between two revealed cards changes the score.
type ScoringPolicy struct {
	MatchBonus      int `json:"match_bonus"`
	MismatchPenalty int `json:"mismatch_penalty"`
}

func DefaultScoringPolicy() ScoringPolicy {
	return ScoringPolicy{
		MatchBonus:      DefaultMatchBonus,
		MismatchPenalty: DefaultMismatchPenalty,
	}
}

// Mismatch returns the score delta for two non-matching cards: one penalty per card already seen.
func (that ScoringPolicy) Mismatch(seen ...bool) int {
	delta := 0
	for _, wasSeen := range seen {
		if wasSeen {
			delta -= that.MismatchPenalty
		}
	}

	return delta
}
