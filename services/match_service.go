package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/doubles-rounds/events"
	"github.com/Dosada05/doubles-rounds/models"
	"github.com/Dosada05/doubles-rounds/repositories"
)

type RecordScoreInput struct {
	Score1 int `json:"score1"`
	Score2 int `json:"score2"`
}

type MatchService interface {
	// RecordScore overwrites both scores and marks the match played. Two
	// writers on the same match race; the last one wins.
	RecordScore(ctx context.Context, matchID int, input RecordScoreInput) (*models.Match, error)
}

type matchService struct {
	tournamentRepo repositories.TournamentRepository
	matchRepo      repositories.MatchRepository
	notifier       Notifier
	publisher      events.Publisher
	logger         *slog.Logger
}

func NewMatchService(
	tournamentRepo repositories.TournamentRepository,
	matchRepo repositories.MatchRepository,
	notifier Notifier,
	publisher events.Publisher,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		tournamentRepo: tournamentRepo,
		matchRepo:      matchRepo,
		notifier:       notifier,
		publisher:      publisher,
		logger:         logger,
	}
}

func (s *matchService) RecordScore(ctx context.Context, matchID int, input RecordScoreInput) (*models.Match, error) {
	if input.Score1 < 0 || input.Score2 < 0 {
		return nil, ErrInvalidScore
	}

	match, err := s.matchRepo.UpdateScore(ctx, matchID, input.Score1, input.Score2)
	if err != nil {
		err = handleRepositoryError(err)
		if !errors.Is(err, ErrNotFound) {
			s.logger.Error("failed to record score", slog.Int("match_id", matchID), slog.Any("error", err))
		}
		return nil, err
	}

	s.logger.Info("score recorded",
		slog.Int("match_id", match.ID),
		slog.Int("score1", match.Score1),
		slog.Int("score2", match.Score2),
	)

	tournament, err := s.tournamentRepo.GetByID(ctx, nil, match.TournamentID)
	if err != nil {
		// The score is stored; only the fan-out is lost.
		s.logger.Warn("skipping score fan-out", slog.Int("match_id", match.ID), slog.Any("error", err))
		return match, nil
	}

	publishEvent(ctx, s.publisher, s.logger, events.MatchScored, events.MatchScoredEvent{
		TournamentSlug: tournament.Slug,
		MatchID:        match.ID,
		Round:          match.Round,
		Pair1ID:        match.Pair1ID,
		Pair2ID:        match.Pair2ID,
		Score1:         match.Score1,
		Score2:         match.Score2,
		RecordedAt:     timestamp(),
	})

	if s.notifier != nil {
		view, err := s.standingsView(ctx, tournament.ID)
		if err != nil {
			s.logger.Warn("skipping standings broadcast", slog.String("slug", tournament.Slug), slog.Any("error", err))
			return match, nil
		}
		if !view.ScoreCheck.Consistent() {
			s.logger.Info("round score totals deviate",
				slog.String("slug", tournament.Slug),
				slog.Int("expected_total", view.ScoreCheck.ExpectedTotal),
				slog.Any("rounds", view.ScoreCheck.Deviating),
			)
		}
		notify(s.notifier, tournament.Slug, MessageStandingsUpdated, view)
	}
	return match, nil
}

func (s *matchService) standingsView(ctx context.Context, tournamentID int) (*StandingsView, error) {
	matches, err := s.matchRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return newStandingsView(matches), nil
}
