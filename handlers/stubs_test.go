package handlers

import (
	"context"

	"github.com/Dosada05/doubles-rounds/models"
	"github.com/Dosada05/doubles-rounds/services"
	"github.com/Dosada05/doubles-rounds/storage"
)

type stubTournamentService struct {
	create func(ctx context.Context, input services.CreateTournamentInput) (*models.Tournament, error)
	get    func(ctx context.Context, slug string) (*models.Tournament, error)
	list   func(ctx context.Context) ([]*models.Tournament, error)
	update func(ctx context.Context, slug string, input services.UpdateCapacityInput) (*models.Tournament, error)
	clear  func(ctx context.Context, slug string) error
	delete func(ctx context.Context, slug string) error
}

func (s *stubTournamentService) CreateTournament(ctx context.Context, input services.CreateTournamentInput) (*models.Tournament, error) {
	return s.create(ctx, input)
}

func (s *stubTournamentService) GetTournament(ctx context.Context, slug string) (*models.Tournament, error) {
	return s.get(ctx, slug)
}

func (s *stubTournamentService) ListTournaments(ctx context.Context) ([]*models.Tournament, error) {
	return s.list(ctx)
}

func (s *stubTournamentService) UpdateCapacity(ctx context.Context, slug string, input services.UpdateCapacityInput) (*models.Tournament, error) {
	return s.update(ctx, slug, input)
}

func (s *stubTournamentService) ClearTournament(ctx context.Context, slug string) error {
	return s.clear(ctx, slug)
}

func (s *stubTournamentService) DeleteTournament(ctx context.Context, slug string) error {
	return s.delete(ctx, slug)
}

type stubParticipantService struct {
	register func(ctx context.Context, slug string, input services.RegisterPairInput) (*models.Pair, error)
	roster   func(ctx context.Context, slug string) (*models.Roster, error)
	remove   func(ctx context.Context, pairID int) error
}

func (s *stubParticipantService) RegisterPair(ctx context.Context, slug string, input services.RegisterPairInput) (*models.Pair, error) {
	return s.register(ctx, slug, input)
}

func (s *stubParticipantService) GetRoster(ctx context.Context, slug string) (*models.Roster, error) {
	return s.roster(ctx, slug)
}

func (s *stubParticipantService) ListActive(ctx context.Context, slug string) ([]*models.Pair, error) {
	r, err := s.roster(ctx, slug)
	if err != nil {
		return nil, err
	}
	return r.Active, nil
}

func (s *stubParticipantService) ListWaitlisted(ctx context.Context, slug string) ([]*models.Pair, error) {
	r, err := s.roster(ctx, slug)
	if err != nil {
		return nil, err
	}
	return r.Waitlist, nil
}

func (s *stubParticipantService) RemovePair(ctx context.Context, pairID int) error {
	return s.remove(ctx, pairID)
}

type stubScheduleService struct {
	generate func(ctx context.Context, slug string) (*models.Schedule, error)
	list     func(ctx context.Context, slug string) ([]*models.Match, error)
}

func (s *stubScheduleService) GenerateSchedule(ctx context.Context, slug string) (*models.Schedule, error) {
	return s.generate(ctx, slug)
}

func (s *stubScheduleService) ListMatches(ctx context.Context, slug string) ([]*models.Match, error) {
	return s.list(ctx, slug)
}

type stubMatchService struct {
	record func(ctx context.Context, matchID int, input services.RecordScoreInput) (*models.Match, error)
}

func (s *stubMatchService) RecordScore(ctx context.Context, matchID int, input services.RecordScoreInput) (*models.Match, error) {
	return s.record(ctx, matchID, input)
}

type stubStandingsService struct {
	standings func(ctx context.Context, slug string) (*services.StandingsView, error)
	board     func(ctx context.Context, slug string) (*models.Board, error)
	export    func(ctx context.Context, slug string) (*storage.UploadResult, error)
}

func (s *stubStandingsService) GetStandings(ctx context.Context, slug string) (*services.StandingsView, error) {
	return s.standings(ctx, slug)
}

func (s *stubStandingsService) GetBoard(ctx context.Context, slug string) (*models.Board, error) {
	return s.board(ctx, slug)
}

func (s *stubStandingsService) ExportSnapshot(ctx context.Context, slug string) (*storage.UploadResult, error) {
	return s.export(ctx, slug)
}
