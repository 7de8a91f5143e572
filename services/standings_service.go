package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/doubles-rounds/models"
	"github.com/Dosada05/doubles-rounds/repositories"
	"github.com/Dosada05/doubles-rounds/standings"
	"github.com/Dosada05/doubles-rounds/storage"
	"golang.org/x/sync/errgroup"
)

// StandingsView is the leaderboard together with its score diagnostic.
type StandingsView struct {
	Standings  []models.Standing `json:"standings"`
	ScoreCheck models.ScoreCheck `json:"score_check"`
}

func newStandingsView(matches []*models.Match) *StandingsView {
	return &StandingsView{
		Standings:  standings.Compute(matches),
		ScoreCheck: standings.CheckRoundTotals(matches),
	}
}

// Snapshot is the document uploaded by ExportSnapshot.
type Snapshot struct {
	Tournament *models.Tournament `json:"tournament"`
	StandingsView
	ExportedAt string `json:"exported_at"`
}

type StandingsService interface {
	// GetStandings recomputes the leaderboard from the stored matches on
	// every call.
	GetStandings(ctx context.Context, slug string) (*StandingsView, error)
	GetBoard(ctx context.Context, slug string) (*models.Board, error)
	ExportSnapshot(ctx context.Context, slug string) (*storage.UploadResult, error)
}

type standingsService struct {
	tournamentRepo repositories.TournamentRepository
	pairRepo       repositories.PairRepository
	matchRepo      repositories.MatchRepository
	uploader       storage.FileUploader
	logger         *slog.Logger
	now            func() time.Time
}

// NewStandingsService accepts a nil uploader; ExportSnapshot then returns
// ErrStorageNotConfigured.
func NewStandingsService(
	tournamentRepo repositories.TournamentRepository,
	pairRepo repositories.PairRepository,
	matchRepo repositories.MatchRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) StandingsService {
	return &standingsService{
		tournamentRepo: tournamentRepo,
		pairRepo:       pairRepo,
		matchRepo:      matchRepo,
		uploader:       uploader,
		logger:         logger,
		now:            time.Now,
	}
}

func (s *standingsService) GetStandings(ctx context.Context, slug string) (*StandingsView, error) {
	tournament, err := s.tournamentRepo.GetBySlug(ctx, nil, slug)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	matches, err := s.matchRepo.ListByTournament(ctx, nil, tournament.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for %s: %w", slug, err)
	}
	return newStandingsView(matches), nil
}

func (s *standingsService) GetBoard(ctx context.Context, slug string) (*models.Board, error) {
	tournament, err := s.tournamentRepo.GetBySlug(ctx, nil, slug)
	if err != nil {
		return nil, handleRepositoryError(err)
	}

	var (
		pairs   []*models.Pair
		matches []*models.Match
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		pairs, err = s.pairRepo.ListByTournament(gctx, nil, tournament.ID)
		if err != nil {
			return fmt.Errorf("failed to list pairs: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		matches, err = s.matchRepo.ListByTournament(gctx, nil, tournament.ID)
		if err != nil {
			return fmt.Errorf("failed to list matches: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	roster := SplitRoster(pairs, tournament.MaxPairs)
	view := newStandingsView(matches)
	return &models.Board{
		Tournament: tournament,
		Active:     roster.Active,
		Waitlist:   roster.Waitlist,
		Matches:    matches,
		Standings:  view.Standings,
		ScoreCheck: view.ScoreCheck,
	}, nil
}

func (s *standingsService) ExportSnapshot(ctx context.Context, slug string) (*storage.UploadResult, error) {
	if s.uploader == nil {
		return nil, ErrStorageNotConfigured
	}

	tournament, err := s.tournamentRepo.GetBySlug(ctx, nil, slug)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	matches, err := s.matchRepo.ListByTournament(ctx, nil, tournament.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for %s: %w", slug, err)
	}

	now := s.now().UTC()
	body, err := json.Marshal(Snapshot{
		Tournament:    tournament,
		StandingsView: *newStandingsView(matches),
		ExportedAt:    now.Format(time.RFC3339),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	key := fmt.Sprintf("standings/%s/%d.json", tournament.Slug, now.Unix())
	result, err := s.uploader.Upload(ctx, key, "application/json", bytes.NewReader(body))
	if err != nil {
		s.logger.Error("snapshot upload failed", slog.String("slug", slug), slog.String("key", key), slog.Any("error", err))
		return nil, fmt.Errorf("failed to upload snapshot: %w", err)
	}

	s.logger.Info("standings snapshot exported", slog.String("slug", slug), slog.String("location", result.Location))
	return result, nil
}
