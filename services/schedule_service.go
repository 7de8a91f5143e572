package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/doubles-rounds/brackets"
	"github.com/Dosada05/doubles-rounds/events"
	"github.com/Dosada05/doubles-rounds/models"
	"github.com/Dosada05/doubles-rounds/repositories"
)

// ScheduleService owns the one-shot schedule generation.
type ScheduleService interface {
	// GenerateSchedule builds the full round-robin for the active pairs. It
	// runs at most once per tournament; a second call returns
	// ErrAlreadyGenerated until the tournament is cleared.
	GenerateSchedule(ctx context.Context, slug string) (*models.Schedule, error)
	ListMatches(ctx context.Context, slug string) ([]*models.Match, error)
}

type scheduleService struct {
	tx             repositories.Transactor
	tournamentRepo repositories.TournamentRepository
	pairRepo       repositories.PairRepository
	matchRepo      repositories.MatchRepository
	generator      brackets.BracketGenerator
	notifier       Notifier
	publisher      events.Publisher
	logger         *slog.Logger
}

func NewScheduleService(
	tx repositories.Transactor,
	tournamentRepo repositories.TournamentRepository,
	pairRepo repositories.PairRepository,
	matchRepo repositories.MatchRepository,
	generator brackets.BracketGenerator,
	notifier Notifier,
	publisher events.Publisher,
	logger *slog.Logger,
) ScheduleService {
	return &scheduleService{
		tx:             tx,
		tournamentRepo: tournamentRepo,
		pairRepo:       pairRepo,
		matchRepo:      matchRepo,
		generator:      generator,
		notifier:       notifier,
		publisher:      publisher,
		logger:         logger,
	}
}

func (s *scheduleService) GenerateSchedule(ctx context.Context, slug string) (*models.Schedule, error) {
	var (
		schedule *models.Schedule
		active   []*models.Pair
	)

	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		// The row lock serialises generators for the same tournament; the
		// second one sees the first one's matches below.
		tournament, err := s.tournamentRepo.GetBySlugForUpdate(ctx, exec, slug)
		if err != nil {
			return handleRepositoryError(err)
		}

		existing, err := s.matchRepo.CountByTournament(ctx, exec, tournament.ID)
		if err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadyGenerated
		}

		pairs, err := s.pairRepo.ListByTournament(ctx, exec, tournament.ID)
		if err != nil {
			return fmt.Errorf("failed to list pairs: %w", err)
		}
		active = SplitRoster(pairs, tournament.MaxPairs).Active
		if len(active) < 2 {
			return ErrInsufficientParticipants
		}

		bracket, err := s.generator.GenerateBracket(ctx, brackets.GenerateBracketParams{
			Tournament: tournament,
			Pairs:      active,
		})
		if err != nil {
			if errors.Is(err, brackets.ErrNotEnoughPairs) {
				return ErrInsufficientParticipants
			}
			return fmt.Errorf("failed to generate %s bracket: %w", s.generator.GetName(), err)
		}

		matches := brackets.ToMatches(tournament.ID, bracket)
		if err := s.matchRepo.CreateBatch(ctx, exec, matches); err != nil {
			return fmt.Errorf("failed to store schedule: %w", err)
		}

		byID := make(map[int]*models.Pair, len(active))
		for _, p := range active {
			byID[p.ID] = p
		}
		for _, m := range matches {
			m.Pair1 = byID[m.Pair1ID]
			m.Pair2 = byID[m.Pair2ID]
		}

		schedule = &models.Schedule{
			Rounds:  brackets.RoundCount(len(active)),
			Matches: matches,
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrAlreadyGenerated) && !errors.Is(err, ErrInsufficientParticipants) {
			s.logger.Error("schedule generation failed", slog.String("slug", slug), slog.Any("error", err))
		}
		return nil, err
	}

	s.logger.Info("schedule generated",
		slog.String("slug", slug),
		slog.Int("active_pairs", len(active)),
		slog.Int("rounds", schedule.Rounds),
		slog.Int("matches", len(schedule.Matches)),
	)
	notify(s.notifier, slug, MessageScheduleGenerated, schedule)
	publishEvent(ctx, s.publisher, s.logger, events.ScheduleGenerated, events.ScheduleGeneratedEvent{
		TournamentSlug: slug,
		Rounds:         schedule.Rounds,
		Matches:        len(schedule.Matches),
		ActivePairs:    len(active),
		GeneratedAt:    timestamp(),
	})
	return schedule, nil
}

func (s *scheduleService) ListMatches(ctx context.Context, slug string) ([]*models.Match, error) {
	tournament, err := s.tournamentRepo.GetBySlug(ctx, nil, slug)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	matches, err := s.matchRepo.ListByTournament(ctx, nil, tournament.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for %s: %w", slug, err)
	}
	return matches, nil
}
