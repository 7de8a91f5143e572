package models

// Match is one scheduled game between two pairs in a schedule round.
type Match struct {
	ID           int  `json:"id" db:"id"`
	TournamentID int  `json:"tournament_id" db:"tournament_id"`
	Round        int  `json:"round" db:"round"`
	Pair1ID      int  `json:"pair1_id" db:"pair1_id"`
	Pair2ID      int  `json:"pair2_id" db:"pair2_id"`
	Score1       int  `json:"score1" db:"score1"`
	Score2       int  `json:"score2" db:"score2"`
	Played       bool `json:"played" db:"played"`

	// Populated by joined reads, not stored on the match row.
	Pair1 *Pair `json:"pair1,omitempty" db:"-"`
	Pair2 *Pair `json:"pair2,omitempty" db:"-"`
}

// Schedule is every match of a tournament, grouped by round number.
type Schedule struct {
	Rounds  int      `json:"rounds"`
	Matches []*Match `json:"matches"`
}

// ByRound groups the schedule's matches by round, rounds in ascending order.
func (s Schedule) ByRound() [][]*Match {
	grouped := make([][]*Match, s.Rounds)
	for _, m := range s.Matches {
		if m.Round < 1 || m.Round > s.Rounds {
			continue
		}
		grouped[m.Round-1] = append(grouped[m.Round-1], m)
	}
	return grouped
}
