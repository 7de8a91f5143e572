package services

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/Dosada05/doubles-rounds/events"
	"github.com/Dosada05/doubles-rounds/repositories"
)

// Notifier pushes a message to every websocket client watching a room.
type Notifier interface {
	BroadcastToRoom(roomID string, message interface{})
}

// NotificationMessage is the websocket envelope.
type NotificationMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
	RoomID  string      `json:"room_id,omitempty"`
}

const (
	MessageScheduleGenerated = "SCHEDULE_GENERATED"
	MessageStandingsUpdated  = "STANDINGS_UPDATED"
	MessageRosterUpdated     = "ROSTER_UPDATED"
	MessageTournamentCleared = "TOURNAMENT_CLEARED"
)

// RoomID is the websocket room for a tournament.
func RoomID(slug string) string {
	return "tournament_" + slug
}

func notify(n Notifier, slug, msgType string, payload interface{}) {
	if n == nil {
		return
	}
	room := RoomID(slug)
	n.BroadcastToRoom(room, NotificationMessage{Type: msgType, Payload: payload, RoomID: room})
}

// publishEvent never fails the caller; broker errors are only logged.
func publishEvent(ctx context.Context, p events.Publisher, logger *slog.Logger, routingKey string, payload interface{}) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, routingKey, payload); err != nil {
		logger.Warn("failed to publish event", slog.String("routing_key", routingKey), slog.Any("error", err))
	}
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

var slugPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

func normalizeName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// handleRepositoryError translates repository sentinels into service errors.
func handleRepositoryError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrTournamentNotFound),
		errors.Is(err, repositories.ErrPairTournamentInvalid),
		errors.Is(err, repositories.ErrMatchTournamentInvalid):
		return ErrTournamentNotFound
	case errors.Is(err, repositories.ErrPairNotFound):
		return ErrPairNotFound
	case errors.Is(err, repositories.ErrMatchNotFound):
		return ErrMatchNotFound
	case errors.Is(err, repositories.ErrTournamentSlugConflict):
		return ErrSlugConflict
	case errors.Is(err, repositories.ErrTournamentInvalidLimit):
		return ErrInvalidCapacity
	case errors.Is(err, repositories.ErrPairInUse):
		return ErrPairScheduled
	default:
		return err
	}
}
