package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/doubles-rounds/models"
)

var (
	ErrMatchNotFound          = errors.New("match not found")
	ErrMatchPairInvalid       = errors.New("match pair conflict or invalid")
	ErrMatchTournamentInvalid = errors.New("match tournament conflict or invalid")
)

type MatchRepository interface {
	// CreateBatch inserts every match through exec. Callers pass a
	// transaction so the batch is all-or-nothing.
	CreateBatch(ctx context.Context, exec SQLExecutor, matches []*models.Match) error
	CountByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) (int, error)
	ExistsForPair(ctx context.Context, exec SQLExecutor, pairID int) (bool, error)
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]*models.Match, error)
	GetByID(ctx context.Context, id int) (*models.Match, error)
	UpdateScore(ctx context.Context, id int, score1, score2 int) (*models.Match, error)
	DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) (int64, error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresMatchRepository) CreateBatch(ctx context.Context, exec SQLExecutor, matches []*models.Match) error {
	if len(matches) == 0 {
		return nil
	}
	executor := r.getExecutor(exec)

	query := `
		INSERT INTO matches (tournament_id, round, pair1_id, pair2_id, score1, score2, played)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	for _, m := range matches {
		err := executor.QueryRowContext(ctx, query,
			m.TournamentID, m.Round, m.Pair1ID, m.Pair2ID, m.Score1, m.Score2, m.Played,
		).Scan(&m.ID)
		if err != nil {
			return fmt.Errorf("CreateBatch failed for round %d (%d vs %d): %w", m.Round, m.Pair1ID, m.Pair2ID, r.handleMatchError(err))
		}
	}
	return nil
}

func (r *postgresMatchRepository) CountByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) (int, error) {
	var count int
	err := r.getExecutor(exec).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM matches WHERE tournament_id = $1`, tournamentID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count matches for tournament %d: %w", tournamentID, err)
	}
	return count, nil
}

func (r *postgresMatchRepository) ExistsForPair(ctx context.Context, exec SQLExecutor, pairID int) (bool, error) {
	var exists bool
	err := r.getExecutor(exec).QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM matches WHERE pair1_id = $1 OR pair2_id = $1)`, pairID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check matches for pair %d: %w", pairID, err)
	}
	return exists, nil
}

func (r *postgresMatchRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]*models.Match, error) {
	query := `
		SELECT
			m.id, m.tournament_id, m.round, m.pair1_id, m.pair2_id, m.score1, m.score2, m.played,
			p1.player1, p1.player2, p1.created_at,
			p2.player1, p2.player2, p2.created_at
		FROM matches m
		JOIN pairs p1 ON m.pair1_id = p1.id
		JOIN pairs p2 ON m.pair2_id = p2.id
		WHERE m.tournament_id = $1
		ORDER BY m.round ASC, m.id ASC`

	rows, err := r.getExecutor(exec).QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		var m models.Match
		var p1, p2 models.Pair
		if err := rows.Scan(
			&m.ID, &m.TournamentID, &m.Round, &m.Pair1ID, &m.Pair2ID, &m.Score1, &m.Score2, &m.Played,
			&p1.Player1, &p1.Player2, &p1.CreatedAt,
			&p2.Player1, &p2.Player2, &p2.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		p1.ID, p1.TournamentID = m.Pair1ID, m.TournamentID
		p2.ID, p2.TournamentID = m.Pair2ID, m.TournamentID
		m.Pair1, m.Pair2 = &p1, &p2
		matches = append(matches, &m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match rows iteration: %w", err)
	}
	return matches, nil
}

func (r *postgresMatchRepository) scanMatch(row rowScanner) (*models.Match, error) {
	m := &models.Match{}
	err := row.Scan(&m.ID, &m.TournamentID, &m.Round, &m.Pair1ID, &m.Pair2ID, &m.Score1, &m.Score2, &m.Played)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan match: %w", err)
	}
	return m, nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `
		SELECT id, tournament_id, round, pair1_id, pair2_id, score1, score2, played
		FROM matches
		WHERE id = $1`
	return r.scanMatch(r.db.QueryRowContext(ctx, query, id))
}

// UpdateScore records a result and marks the match played. Concurrent writes
// to the same match are last-write-wins.
func (r *postgresMatchRepository) UpdateScore(ctx context.Context, id int, score1, score2 int) (*models.Match, error) {
	query := `
		UPDATE matches
		SET score1 = $1, score2 = $2, played = TRUE
		WHERE id = $3
		RETURNING id, tournament_id, round, pair1_id, pair2_id, score1, score2, played`
	return r.scanMatch(r.db.QueryRowContext(ctx, query, score1, score2, id))
}

func (r *postgresMatchRepository) DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) (int64, error) {
	result, err := r.getExecutor(exec).ExecContext(ctx, `DELETE FROM matches WHERE tournament_id = $1`, tournamentID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete matches of tournament %d: %w", tournamentID, err)
	}
	return result.RowsAffected()
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	pqErr, ok := asPQError(err)
	if !ok {
		return err
	}
	switch pqErr.Constraint {
	case "matches_tournament_id_fkey":
		return ErrMatchTournamentInvalid
	case "matches_pair1_id_fkey", "matches_pair2_id_fkey", "matches_check":
		return ErrMatchPairInvalid
	}
	return err
}
