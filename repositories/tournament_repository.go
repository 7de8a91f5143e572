package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/doubles-rounds/models"
)

var (
	ErrTournamentNotFound     = errors.New("tournament not found")
	ErrTournamentSlugConflict = errors.New("tournament slug already exists")
	ErrTournamentInvalidLimit = errors.New("tournament max_pairs must be positive")
)

type TournamentRepository interface {
	Create(ctx context.Context, t *models.Tournament) error
	GetBySlug(ctx context.Context, exec SQLExecutor, slug string) (*models.Tournament, error)
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Tournament, error)
	// GetBySlugForUpdate locks the tournament row until the surrounding
	// transaction ends. exec must be a transaction.
	GetBySlugForUpdate(ctx context.Context, exec SQLExecutor, slug string) (*models.Tournament, error)
	GetByIDForUpdate(ctx context.Context, exec SQLExecutor, id int) (*models.Tournament, error)
	List(ctx context.Context) ([]*models.Tournament, error)
	UpdateMaxPairs(ctx context.Context, exec SQLExecutor, id int, maxPairs *int) error
	Delete(ctx context.Context, exec SQLExecutor, id int) error
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const selectTournamentSQL = `SELECT id, slug, name, max_pairs, created_at FROM tournaments`

func (r *postgresTournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	query := `
		INSERT INTO tournaments (slug, name, max_pairs)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, t.Slug, t.Name, t.MaxPairs).Scan(&t.ID, &t.CreatedAt)
	return r.handleTournamentError(err)
}

func (r *postgresTournamentRepository) scanTournament(row rowScanner) (*models.Tournament, error) {
	t := &models.Tournament{}
	var maxPairs sql.NullInt64
	if err := row.Scan(&t.ID, &t.Slug, &t.Name, &maxPairs, &t.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to scan tournament: %w", err)
	}
	if maxPairs.Valid {
		v := int(maxPairs.Int64)
		t.MaxPairs = &v
	}
	return t, nil
}

func (r *postgresTournamentRepository) GetBySlug(ctx context.Context, exec SQLExecutor, slug string) (*models.Tournament, error) {
	row := r.getExecutor(exec).QueryRowContext(ctx, selectTournamentSQL+` WHERE slug = $1`, slug)
	return r.scanTournament(row)
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Tournament, error) {
	row := r.getExecutor(exec).QueryRowContext(ctx, selectTournamentSQL+` WHERE id = $1`, id)
	return r.scanTournament(row)
}

func (r *postgresTournamentRepository) GetBySlugForUpdate(ctx context.Context, exec SQLExecutor, slug string) (*models.Tournament, error) {
	row := r.getExecutor(exec).QueryRowContext(ctx, selectTournamentSQL+` WHERE slug = $1 FOR UPDATE`, slug)
	return r.scanTournament(row)
}

func (r *postgresTournamentRepository) GetByIDForUpdate(ctx context.Context, exec SQLExecutor, id int) (*models.Tournament, error) {
	row := r.getExecutor(exec).QueryRowContext(ctx, selectTournamentSQL+` WHERE id = $1 FOR UPDATE`, id)
	return r.scanTournament(row)
}

func (r *postgresTournamentRepository) List(ctx context.Context) ([]*models.Tournament, error) {
	rows, err := r.db.QueryContext(ctx, selectTournamentSQL+` ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	defer rows.Close()

	tournaments := make([]*models.Tournament, 0)
	for rows.Next() {
		t, err := r.scanTournament(rows)
		if err != nil {
			return nil, err
		}
		tournaments = append(tournaments, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tournament rows: %w", err)
	}
	return tournaments, nil
}

func (r *postgresTournamentRepository) UpdateMaxPairs(ctx context.Context, exec SQLExecutor, id int, maxPairs *int) error {
	result, err := r.getExecutor(exec).ExecContext(ctx, `UPDATE tournaments SET max_pairs = $1 WHERE id = $2`, maxPairs, id)
	if err != nil {
		return r.handleTournamentError(err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) Delete(ctx context.Context, exec SQLExecutor, id int) error {
	result, err := r.getExecutor(exec).ExecContext(ctx, `DELETE FROM tournaments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tournament %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) handleTournamentError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := asPQError(err); ok {
		switch pqErr.Code {
		case pqUniqueViolation:
			if pqErr.Constraint == "tournaments_slug_key" {
				return ErrTournamentSlugConflict
			}
		case pqCheckViolation:
			if pqErr.Constraint == "tournaments_max_pairs_check" {
				return ErrTournamentInvalidLimit
			}
		}
	}
	return fmt.Errorf("tournament query failed: %w", err)
}
