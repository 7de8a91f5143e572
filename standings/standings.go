// Package standings turns recorded matches into a leaderboard. Everything here
// is a pure function of its input; nothing is cached or stored.
package standings

import (
	"sort"

	"github.com/Dosada05/doubles-rounds/models"
)

// Compute aggregates matches into one Standing per pair that appears in any
// match, played or not. Points are the sum of a pair's own scores in played
// matches. The result is sorted by points descending; equal points keep the
// order in which pairs first appear in matches.
func Compute(matches []*models.Match) []models.Standing {
	index := make(map[int]int)
	table := make([]models.Standing, 0)

	// entry returns an index rather than a pointer: appending may move table.
	entry := func(pairID int, pair *models.Pair) int {
		i, ok := index[pairID]
		if !ok {
			i = len(table)
			index[pairID] = i
			table = append(table, models.Standing{PairID: pairID})
		}
		if table[i].Pair == nil && pair != nil {
			table[i].Pair = pair
		}
		return i
	}

	for _, m := range matches {
		if m == nil {
			continue
		}
		i1 := entry(m.Pair1ID, m.Pair1)
		i2 := entry(m.Pair2ID, m.Pair2)
		if !m.Played {
			continue
		}

		s1, s2 := &table[i1], &table[i2]
		s1.MatchesPlayed++
		s2.MatchesPlayed++
		s1.Points += m.Score1
		s2.Points += m.Score2

		switch {
		case m.Score1 > m.Score2:
			s1.Wins++
			s2.Losses++
		case m.Score1 < m.Score2:
			s1.Losses++
			s2.Wins++
		default:
			s1.Draws++
			s2.Draws++
		}
	}

	sort.SliceStable(table, func(i, j int) bool {
		return table[i].Points > table[j].Points
	})
	return table
}

// CheckRoundTotals sums both scores of the played matches in every round and
// flags the rounds whose total differs from the most common total. When two
// totals are equally common, the one seen in the lowest round wins. Rounds
// without a played match are left out.
func CheckRoundTotals(matches []*models.Match) models.ScoreCheck {
	totals := make(map[int]int)
	for _, m := range matches {
		if m == nil || !m.Played {
			continue
		}
		totals[m.Round] += m.Score1 + m.Score2
	}

	check := models.ScoreCheck{
		Rounds:    make([]models.RoundTotal, 0, len(totals)),
		Deviating: []int{},
	}
	if len(totals) == 0 {
		return check
	}

	for round, total := range totals {
		check.Rounds = append(check.Rounds, models.RoundTotal{Round: round, Total: total})
	}
	sort.Slice(check.Rounds, func(i, j int) bool {
		return check.Rounds[i].Round < check.Rounds[j].Round
	})

	freq := make(map[int]int)
	for _, rt := range check.Rounds {
		freq[rt.Total]++
	}
	mode, best := check.Rounds[0].Total, 0
	for _, rt := range check.Rounds {
		if freq[rt.Total] > best {
			mode, best = rt.Total, freq[rt.Total]
		}
	}
	check.ExpectedTotal = mode

	for _, rt := range check.Rounds {
		if rt.Total != mode {
			check.Deviating = append(check.Deviating, rt.Round)
		}
	}
	return check
}
