package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/doubles-rounds/models"
	"github.com/Dosada05/doubles-rounds/repositories"
)

type RegisterPairInput struct {
	Player1 string `json:"player1"`
	Player2 string `json:"player2"`
}

// ParticipantService is the roster manager: sign-ups, active/waitlist views
// and removal.
type ParticipantService interface {
	// RegisterPair always appends; capacity never blocks a sign-up, overflow
	// pairs land on the waitlist.
	RegisterPair(ctx context.Context, slug string, input RegisterPairInput) (*models.Pair, error)
	GetRoster(ctx context.Context, slug string) (*models.Roster, error)
	ListActive(ctx context.Context, slug string) ([]*models.Pair, error)
	ListWaitlisted(ctx context.Context, slug string) ([]*models.Pair, error)
	// RemovePair fails with ErrPairScheduled once the pair is in any match.
	RemovePair(ctx context.Context, pairID int) error
}

type participantService struct {
	tx             repositories.Transactor
	tournamentRepo repositories.TournamentRepository
	pairRepo       repositories.PairRepository
	matchRepo      repositories.MatchRepository
	notifier       Notifier
	logger         *slog.Logger
}

func NewParticipantService(
	tx repositories.Transactor,
	tournamentRepo repositories.TournamentRepository,
	pairRepo repositories.PairRepository,
	matchRepo repositories.MatchRepository,
	notifier Notifier,
	logger *slog.Logger,
) ParticipantService {
	return &participantService{
		tx:             tx,
		tournamentRepo: tournamentRepo,
		pairRepo:       pairRepo,
		matchRepo:      matchRepo,
		notifier:       notifier,
		logger:         logger,
	}
}

func (s *participantService) RegisterPair(ctx context.Context, slug string, input RegisterPairInput) (*models.Pair, error) {
	player1 := normalizeName(input.Player1)
	player2 := normalizeName(input.Player2)
	if player1 == "" || player2 == "" {
		return nil, ErrPairNamesRequired
	}

	tournament, err := s.tournamentRepo.GetBySlug(ctx, nil, slug)
	if err != nil {
		return nil, handleRepositoryError(err)
	}

	pair := &models.Pair{
		TournamentID: tournament.ID,
		Player1:      player1,
		Player2:      player2,
	}
	if err := s.pairRepo.Create(ctx, pair); err != nil {
		return nil, fmt.Errorf("failed to register pair in %s: %w", slug, handleRepositoryError(err))
	}

	s.logger.Info("pair registered",
		slog.String("slug", slug),
		slog.Int("pair_id", pair.ID),
	)
	s.broadcastRoster(ctx, tournament)
	return pair, nil
}

func (s *participantService) GetRoster(ctx context.Context, slug string) (*models.Roster, error) {
	tournament, err := s.tournamentRepo.GetBySlug(ctx, nil, slug)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	return s.rosterOf(ctx, tournament)
}

func (s *participantService) rosterOf(ctx context.Context, tournament *models.Tournament) (*models.Roster, error) {
	pairs, err := s.pairRepo.ListByTournament(ctx, nil, tournament.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pairs for %s: %w", tournament.Slug, err)
	}
	roster := SplitRoster(pairs, tournament.MaxPairs)
	return &roster, nil
}

func (s *participantService) ListActive(ctx context.Context, slug string) ([]*models.Pair, error) {
	roster, err := s.GetRoster(ctx, slug)
	if err != nil {
		return nil, err
	}
	return roster.Active, nil
}

func (s *participantService) ListWaitlisted(ctx context.Context, slug string) ([]*models.Pair, error) {
	roster, err := s.GetRoster(ctx, slug)
	if err != nil {
		return nil, err
	}
	return roster.Waitlist, nil
}

func (s *participantService) RemovePair(ctx context.Context, pairID int) error {
	var (
		tournament *models.Tournament
		removed    *models.Pair
	)

	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		pair, err := s.pairRepo.FindByID(ctx, exec, pairID)
		if err != nil {
			return handleRepositoryError(err)
		}
		removed = pair

		// Same row lock as schedule generation, so a removal cannot race a
		// schedule that is being written.
		tournament, err = s.tournamentRepo.GetByIDForUpdate(ctx, exec, pair.TournamentID)
		if err != nil {
			return handleRepositoryError(err)
		}

		scheduled, err := s.matchRepo.ExistsForPair(ctx, exec, pairID)
		if err != nil {
			return err
		}
		if scheduled {
			return ErrPairScheduled
		}

		return handleRepositoryError(s.pairRepo.Delete(ctx, exec, pairID))
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrConflict) {
			s.logger.Error("failed to remove pair", slog.Int("pair_id", pairID), slog.Any("error", err))
		}
		return err
	}

	s.logger.Info("pair removed",
		slog.String("slug", tournament.Slug),
		slog.Int("pair_id", pairID),
		slog.String("pair", removed.DisplayName()),
	)
	s.broadcastRoster(ctx, tournament)
	return nil
}

func (s *participantService) broadcastRoster(ctx context.Context, tournament *models.Tournament) {
	if s.notifier == nil {
		return
	}
	roster, err := s.rosterOf(ctx, tournament)
	if err != nil {
		s.logger.Warn("skipping roster broadcast", slog.String("slug", tournament.Slug), slog.Any("error", err))
		return
	}
	notify(s.notifier, tournament.Slug, MessageRosterUpdated, roster)
}
