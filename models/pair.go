package models

import "time"

// Pair is a registered doubles team. ID is assigned by the database and is
// monotonic, so ordering by ID is registration order.
type Pair struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	Player1      string    `json:"player1" db:"player1"`
	Player2      string    `json:"player2" db:"player2"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// DisplayName joins both player names the way the board shows them.
func (p Pair) DisplayName() string {
	return p.Player1 + " / " + p.Player2
}

// Roster is the derived active/waitlist view of a tournament's pairs.
type Roster struct {
	Active   []*Pair `json:"active"`
	Waitlist []*Pair `json:"waitlist"`
}
