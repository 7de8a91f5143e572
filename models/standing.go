package models

// Standing is a derived, never persisted aggregate for one pair.
type Standing struct {
	PairID        int   `json:"pair_id"`
	Pair          *Pair `json:"pair,omitempty"`
	MatchesPlayed int   `json:"matches_played"`
	Wins          int   `json:"wins"`
	Draws         int   `json:"draws"`
	Losses        int   `json:"losses"`
	Points        int   `json:"points"`
}

// RoundTotal is the sum of both scores over the played matches of a round.
type RoundTotal struct {
	Round int `json:"round"`
	Total int `json:"total"`
}

// ScoreCheck is an advisory diagnostic: rounds whose total differs from the
// most common per-round total. It never blocks anything.
type ScoreCheck struct {
	ExpectedTotal int          `json:"expected_total"`
	Rounds        []RoundTotal `json:"rounds"`
	Deviating     []int        `json:"deviating_rounds"`
}

// Consistent reports whether no played round deviates.
func (c ScoreCheck) Consistent() bool {
	return len(c.Deviating) == 0
}

// Board is everything the public tournament page shows in one read.
type Board struct {
	Tournament *Tournament `json:"tournament"`
	Active     []*Pair     `json:"active"`
	Waitlist   []*Pair     `json:"waitlist"`
	Matches    []*Match    `json:"matches"`
	Standings  []Standing  `json:"standings"`
	ScoreCheck ScoreCheck  `json:"score_check"`
}
