package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPairDisplayName(t *testing.T) {
	assert.Equal(t, "Ann / Bea", Pair{Player1: "Ann", Player2: "Bea"}.DisplayName())
}

func TestScheduleByRound(t *testing.T) {
	s := Schedule{
		Rounds: 3,
		Matches: []*Match{
			{ID: 1, Round: 1}, {ID: 2, Round: 3}, {ID: 3, Round: 1}, {ID: 4, Round: 2}, {ID: 5, Round: 7},
		},
	}

	grouped := s.ByRound()
	assert.Len(t, grouped, 3)
	assert.Equal(t, []*Match{s.Matches[0], s.Matches[2]}, grouped[0])
	assert.Equal(t, []*Match{s.Matches[3]}, grouped[1])
	assert.Equal(t, []*Match{s.Matches[1]}, grouped[2])
}

func TestScoreCheckConsistent(t *testing.T) {
	assert.True(t, ScoreCheck{Deviating: []int{}}.Consistent())
	assert.False(t, ScoreCheck{Deviating: []int{2}}.Consistent())
}
