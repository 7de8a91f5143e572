// Package events publishes tournament domain events for downstream consumers
// (notifications, analytics). Publishing is best effort: callers log failures
// and carry on.
package events

import "context"

const (
	ScheduleGenerated = "schedule.generated"
	MatchScored       = "match.scored"
	TournamentCleared = "tournament.cleared"
)

type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
	Close() error
}

type ScheduleGeneratedEvent struct {
	TournamentSlug string `json:"tournament_slug"`
	Rounds         int    `json:"rounds"`
	Matches        int    `json:"matches"`
	ActivePairs    int    `json:"active_pairs"`
	GeneratedAt    string `json:"generated_at"`
}

type MatchScoredEvent struct {
	TournamentSlug string `json:"tournament_slug"`
	MatchID        int    `json:"match_id"`
	Round          int    `json:"round"`
	Pair1ID        int    `json:"pair1_id"`
	Pair2ID        int    `json:"pair2_id"`
	Score1         int    `json:"score1"`
	Score2         int    `json:"score2"`
	RecordedAt     string `json:"recorded_at"`
}

type TournamentClearedEvent struct {
	TournamentSlug string `json:"tournament_slug"`
	MatchesDeleted int64  `json:"matches_deleted"`
	PairsDeleted   int64  `json:"pairs_deleted"`
}

type noopPublisher struct{}

// NewNoopPublisher is used when no broker is configured.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, string, interface{}) error { return nil }

func (noopPublisher) Close() error { return nil }
