package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/doubles-rounds/models"
)

var (
	ErrPairNotFound          = errors.New("pair not found")
	ErrPairTournamentInvalid = errors.New("pair tournament conflict or invalid")
	ErrPairInUse             = errors.New("pair is referenced by scheduled matches")
)

// PairRepository stores registered pairs. Lists are always in registration
// order (ascending id).
type PairRepository interface {
	Create(ctx context.Context, p *models.Pair) error
	FindByID(ctx context.Context, exec SQLExecutor, id int) (*models.Pair, error)
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]*models.Pair, error)
	Delete(ctx context.Context, exec SQLExecutor, id int) error
	DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) (int64, error)
}

type postgresPairRepository struct {
	db *sql.DB
}

func NewPostgresPairRepository(db *sql.DB) PairRepository {
	return &postgresPairRepository{db: db}
}

func (r *postgresPairRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresPairRepository) Create(ctx context.Context, p *models.Pair) error {
	query := `
		INSERT INTO pairs (tournament_id, player1, player2)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, p.TournamentID, p.Player1, p.Player2).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		if pqErr, ok := asPQError(err); ok && pqErr.Code == pqForeignKeyViolation {
			return ErrPairTournamentInvalid
		}
		return fmt.Errorf("failed to create pair: %w", err)
	}
	return nil
}

func (r *postgresPairRepository) scanPair(row rowScanner, p *models.Pair) error {
	return row.Scan(&p.ID, &p.TournamentID, &p.Player1, &p.Player2, &p.CreatedAt)
}

func (r *postgresPairRepository) FindByID(ctx context.Context, exec SQLExecutor, id int) (*models.Pair, error) {
	query := `SELECT id, tournament_id, player1, player2, created_at FROM pairs WHERE id = $1`

	p := &models.Pair{}
	if err := r.scanPair(r.getExecutor(exec).QueryRowContext(ctx, query, id), p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPairNotFound
		}
		return nil, fmt.Errorf("failed to find pair: %w", err)
	}
	return p, nil
}

func (r *postgresPairRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]*models.Pair, error) {
	query := `
		SELECT id, tournament_id, player1, player2, created_at
		FROM pairs
		WHERE tournament_id = $1
		ORDER BY id ASC`

	rows, err := r.getExecutor(exec).QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pairs by tournament: %w", err)
	}
	defer rows.Close()

	pairs := make([]*models.Pair, 0)
	for rows.Next() {
		var p models.Pair
		if err := r.scanPair(rows, &p); err != nil {
			return nil, fmt.Errorf("failed to scan pair row: %w", err)
		}
		pairs = append(pairs, &p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pair rows: %w", err)
	}
	return pairs, nil
}

func (r *postgresPairRepository) Delete(ctx context.Context, exec SQLExecutor, id int) error {
	result, err := r.getExecutor(exec).ExecContext(ctx, `DELETE FROM pairs WHERE id = $1`, id)
	if err != nil {
		if pqErr, ok := asPQError(err); ok && pqErr.Code == pqForeignKeyViolation {
			return ErrPairInUse
		}
		return fmt.Errorf("failed to delete pair: %w", err)
	}
	return checkAffectedRows(result, ErrPairNotFound)
}

func (r *postgresPairRepository) DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) (int64, error) {
	result, err := r.getExecutor(exec).ExecContext(ctx, `DELETE FROM pairs WHERE tournament_id = $1`, tournamentID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete pairs of tournament %d: %w", tournamentID, err)
	}
	return result.RowsAffected()
}
