package brackets

import (
	"context"

	"github.com/Dosada05/doubles-rounds/models"
)

// byeSlot marks the synthetic seat added to odd-sized rosters.
const byeSlot = -1

type RoundRobinGenerator struct{}

func NewRoundRobinGenerator() BracketGenerator {
	return &RoundRobinGenerator{}
}

func (g *RoundRobinGenerator) GetName() string {
	return "RoundRobin"
}

// RoundCount returns the number of rounds a single round-robin over n pairs needs.
func RoundCount(n int) int {
	if n < 2 {
		return 0
	}
	if n%2 != 0 {
		return n
	}
	return n - 1
}

// GenerateBracket builds a single round-robin with the circle method. Pairs are
// seated in the order given; seat 0 stays fixed and the rest rotate one step
// after every round, so each two pairs meet exactly once.
func (g *RoundRobinGenerator) GenerateBracket(ctx context.Context, params GenerateBracketParams) ([]*BracketMatch, error) {
	pairs := params.Pairs
	n := len(pairs)
	if n < 2 {
		return nil, ErrNotEnoughPairs
	}

	m := n
	if n%2 != 0 {
		m++
	}
	seats := make([]int, m)
	for i := 0; i < n; i++ {
		seats[i] = i
	}
	if m != n {
		seats[n] = byeSlot
	}

	rounds := m - 1
	half := m / 2
	matches := make([]*BracketMatch, 0, rounds*half)

	for r := 0; r < rounds; r++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		order := 0
		for i := 0; i < half; i++ {
			a, b := seats[i], seats[m-1-i]
			switch {
			case a == byeSlot:
				matches = append(matches, &BracketMatch{Round: r + 1, IsBye: true, ByePairID: pairs[b].ID})
			case b == byeSlot:
				matches = append(matches, &BracketMatch{Round: r + 1, IsBye: true, ByePairID: pairs[a].ID})
			default:
				order++
				matches = append(matches, &BracketMatch{
					Round:        r + 1,
					OrderInRound: order,
					Pair1ID:      pairs[a].ID,
					Pair2ID:      pairs[b].ID,
				})
			}
		}

		// last seat moves to seat 1, seats 1..m-2 shift right
		last := seats[m-1]
		copy(seats[2:], seats[1:m-1])
		seats[1] = last
	}

	return matches, nil
}

// ToMatches converts the real pairings into unsaved match rows.
func ToMatches(tournamentID int, bracket []*BracketMatch) []*models.Match {
	out := make([]*models.Match, 0, len(bracket))
	for _, bm := range bracket {
		if bm.IsBye {
			continue
		}
		out = append(out, &models.Match{
			TournamentID: tournamentID,
			Round:        bm.Round,
			Pair1ID:      bm.Pair1ID,
			Pair2ID:      bm.Pair2ID,
		})
	}
	return out
}
