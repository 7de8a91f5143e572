package brackets

import (
	"context"
	"errors"

	"github.com/Dosada05/doubles-rounds/models"
)

// ErrNotEnoughPairs is returned when fewer than two pairs are given.
var ErrNotEnoughPairs = errors.New("not enough pairs to generate a schedule (minimum 2)")

type GenerateBracketParams struct {
	Tournament *models.Tournament
	Pairs      []*models.Pair
}

// BracketMatch is one generated pairing. Bye entries carry IsBye and never
// become stored matches.
type BracketMatch struct {
	Round        int
	OrderInRound int

	Pair1ID int
	Pair2ID int

	IsBye     bool
	ByePairID int
}

type BracketGenerator interface {
	GenerateBracket(ctx context.Context, params GenerateBracketParams) ([]*BracketMatch, error)

	GetName() string
}
