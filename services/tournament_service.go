package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/doubles-rounds/events"
	"github.com/Dosada05/doubles-rounds/models"
	"github.com/Dosada05/doubles-rounds/repositories"
	"github.com/google/uuid"
)

type CreateTournamentInput struct {
	Name     string  `json:"name"`
	Slug     *string `json:"slug,omitempty"`
	MaxPairs *int    `json:"max_pairs,omitempty"`
}

type UpdateCapacityInput struct {
	MaxPairs *int `json:"max_pairs"`
}

type TournamentService interface {
	CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error)
	GetTournament(ctx context.Context, slug string) (*models.Tournament, error)
	ListTournaments(ctx context.Context) ([]*models.Tournament, error)
	UpdateCapacity(ctx context.Context, slug string, input UpdateCapacityInput) (*models.Tournament, error)
	// ClearTournament removes every match and pair so the tournament can be
	// filled and generated again.
	ClearTournament(ctx context.Context, slug string) error
	DeleteTournament(ctx context.Context, slug string) error
}

type tournamentService struct {
	tx             repositories.Transactor
	tournamentRepo repositories.TournamentRepository
	pairRepo       repositories.PairRepository
	matchRepo      repositories.MatchRepository
	notifier       Notifier
	publisher      events.Publisher
	logger         *slog.Logger
}

func NewTournamentService(
	tx repositories.Transactor,
	tournamentRepo repositories.TournamentRepository,
	pairRepo repositories.PairRepository,
	matchRepo repositories.MatchRepository,
	notifier Notifier,
	publisher events.Publisher,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		tx:             tx,
		tournamentRepo: tournamentRepo,
		pairRepo:       pairRepo,
		matchRepo:      matchRepo,
		notifier:       notifier,
		publisher:      publisher,
		logger:         logger,
	}
}

func validateCapacity(maxPairs *int) error {
	if maxPairs != nil && *maxPairs <= 0 {
		return ErrInvalidCapacity
	}
	return nil
}

func (s *tournamentService) CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	name := normalizeName(input.Name)
	if name == "" {
		return nil, ErrTournamentNameRequired
	}
	if err := validateCapacity(input.MaxPairs); err != nil {
		return nil, err
	}

	slug := uuid.NewString()
	if input.Slug != nil && strings.TrimSpace(*input.Slug) != "" {
		slug = strings.TrimSpace(*input.Slug)
		if !slugPattern.MatchString(slug) {
			return nil, ErrInvalidSlug
		}
	}

	tournament := &models.Tournament{
		Slug:     slug,
		Name:     name,
		MaxPairs: input.MaxPairs,
	}
	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		return nil, handleRepositoryError(err)
	}

	s.logger.Info("tournament created", slog.String("slug", tournament.Slug), slog.Int("id", tournament.ID))
	return tournament, nil
}

func (s *tournamentService) GetTournament(ctx context.Context, slug string) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetBySlug(ctx, nil, slug)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	return tournament, nil
}

func (s *tournamentService) ListTournaments(ctx context.Context) ([]*models.Tournament, error) {
	tournaments, err := s.tournamentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	return tournaments, nil
}

func (s *tournamentService) UpdateCapacity(ctx context.Context, slug string, input UpdateCapacityInput) (*models.Tournament, error) {
	if err := validateCapacity(input.MaxPairs); err != nil {
		return nil, err
	}

	// Same row lock as generation and removal, so the active set cannot
	// change under either of them.
	var tournament *models.Tournament
	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		t, err := s.tournamentRepo.GetBySlugForUpdate(ctx, exec, slug)
		if err != nil {
			return handleRepositoryError(err)
		}
		if err := s.tournamentRepo.UpdateMaxPairs(ctx, exec, t.ID, input.MaxPairs); err != nil {
			return handleRepositoryError(err)
		}
		t.MaxPairs = input.MaxPairs
		tournament = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("tournament capacity updated", slog.String("slug", slug), slog.Any("max_pairs", input.MaxPairs))
	return tournament, nil
}

func (s *tournamentService) ClearTournament(ctx context.Context, slug string) error {
	var cleared events.TournamentClearedEvent

	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		tournament, err := s.tournamentRepo.GetBySlugForUpdate(ctx, exec, slug)
		if err != nil {
			return handleRepositoryError(err)
		}
		// Matches first: they reference pairs with ON DELETE RESTRICT.
		matches, err := s.matchRepo.DeleteByTournament(ctx, exec, tournament.ID)
		if err != nil {
			return err
		}
		pairs, err := s.pairRepo.DeleteByTournament(ctx, exec, tournament.ID)
		if err != nil {
			return err
		}
		cleared = events.TournamentClearedEvent{
			TournamentSlug: slug,
			MatchesDeleted: matches,
			PairsDeleted:   pairs,
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Error("failed to clear tournament", slog.String("slug", slug), slog.Any("error", err))
		}
		return err
	}

	s.logger.Info("tournament cleared",
		slog.String("slug", slug),
		slog.Int64("matches_deleted", cleared.MatchesDeleted),
		slog.Int64("pairs_deleted", cleared.PairsDeleted),
	)
	notify(s.notifier, slug, MessageTournamentCleared, cleared)
	publishEvent(ctx, s.publisher, s.logger, events.TournamentCleared, cleared)
	return nil
}

func (s *tournamentService) DeleteTournament(ctx context.Context, slug string) error {
	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		tournament, err := s.tournamentRepo.GetBySlugForUpdate(ctx, exec, slug)
		if err != nil {
			return handleRepositoryError(err)
		}
		if _, err := s.matchRepo.DeleteByTournament(ctx, exec, tournament.ID); err != nil {
			return err
		}
		if _, err := s.pairRepo.DeleteByTournament(ctx, exec, tournament.ID); err != nil {
			return err
		}
		return handleRepositoryError(s.tournamentRepo.Delete(ctx, exec, tournament.ID))
	})
	if err != nil {
		return err
	}

	s.logger.Info("tournament deleted", slog.String("slug", slug))
	return nil
}
