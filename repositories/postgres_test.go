package repositories

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/Dosada05/doubles-rounds/db"
	"github.com/Dosada05/doubles-rounds/models"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB rebuilds the schema in the database named by TEST_DATABASE_URL
// and skips the test when it is unset.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping Postgres integration test")
	}

	conn, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	_, err = conn.Exec(`
		DROP TABLE IF EXISTS matches CASCADE;
		DROP TABLE IF EXISTS pairs CASCADE;
		DROP TABLE IF EXISTS tournaments CASCADE;
	`)
	require.NoError(t, err)
	require.NoError(t, db.CreateSchema(context.Background(), conn))
	return conn
}

type testRepos struct {
	tx          Transactor
	tournaments TournamentRepository
	pairs       PairRepository
	matches     MatchRepository
}

func newTestRepos(conn *sql.DB) testRepos {
	return testRepos{
		tx:          NewTransactor(conn),
		tournaments: NewPostgresTournamentRepository(conn),
		pairs:       NewPostgresPairRepository(conn),
		matches:     NewPostgresMatchRepository(conn),
	}
}

func seedTournament(t *testing.T, r testRepos, slug string, pairs int) (*models.Tournament, []*models.Pair) {
	t.Helper()
	ctx := context.Background()
	tour := &models.Tournament{Slug: slug, Name: "Club " + slug}
	require.NoError(t, r.tournaments.Create(ctx, tour))

	out := make([]*models.Pair, 0, pairs)
	for i := 0; i < pairs; i++ {
		p := &models.Pair{TournamentID: tour.ID, Player1: "P" + string(rune('A'+i)), Player2: "Q" + string(rune('A'+i))}
		require.NoError(t, r.pairs.Create(ctx, p))
		out = append(out, p)
	}
	return tour, out
}

func TestTournamentRepository(t *testing.T) {
	conn := setupTestDB(t)
	r := newTestRepos(conn)
	ctx := context.Background()

	limit := 4
	tour := &models.Tournament{Slug: "club", Name: "Club", MaxPairs: &limit}
	require.NoError(t, r.tournaments.Create(ctx, tour))
	assert.NotZero(t, tour.ID)
	assert.False(t, tour.CreatedAt.IsZero())

	err := r.tournaments.Create(ctx, &models.Tournament{Slug: "club", Name: "Other"})
	assert.ErrorIs(t, err, ErrTournamentSlugConflict)

	zero := 0
	err = r.tournaments.Create(ctx, &models.Tournament{Slug: "zero", Name: "Zero", MaxPairs: &zero})
	assert.ErrorIs(t, err, ErrTournamentInvalidLimit)

	got, err := r.tournaments.GetBySlug(ctx, nil, "club")
	require.NoError(t, err)
	require.NotNil(t, got.MaxPairs)
	assert.Equal(t, 4, *got.MaxPairs)

	require.NoError(t, r.tournaments.UpdateMaxPairs(ctx, nil, tour.ID, nil))
	got, err = r.tournaments.GetByID(ctx, nil, tour.ID)
	require.NoError(t, err)
	assert.Nil(t, got.MaxPairs)

	_, err = r.tournaments.GetBySlug(ctx, nil, "missing")
	assert.ErrorIs(t, err, ErrTournamentNotFound)
	assert.ErrorIs(t, r.tournaments.UpdateMaxPairs(ctx, nil, 9999, nil), ErrTournamentNotFound)

	second := &models.Tournament{Slug: "second", Name: "Second"}
	require.NoError(t, r.tournaments.Create(ctx, second))
	list, err := r.tournaments.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	require.NoError(t, r.tournaments.Delete(ctx, nil, second.ID))
	assert.ErrorIs(t, r.tournaments.Delete(ctx, nil, second.ID), ErrTournamentNotFound)
}

func TestPairRepository(t *testing.T) {
	conn := setupTestDB(t)
	r := newTestRepos(conn)
	ctx := context.Background()

	tour, pairs := seedTournament(t, r, "pairs", 3)

	list, err := r.pairs.ListByTournament(ctx, nil, tour.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i := range list {
		assert.Equal(t, pairs[i].ID, list[i].ID)
	}

	err = r.pairs.Create(ctx, &models.Pair{TournamentID: 9999, Player1: "a", Player2: "b"})
	assert.ErrorIs(t, err, ErrPairTournamentInvalid)

	require.NoError(t, r.pairs.Delete(ctx, nil, pairs[1].ID))
	_, err = r.pairs.FindByID(ctx, nil, pairs[1].ID)
	assert.ErrorIs(t, err, ErrPairNotFound)
	assert.ErrorIs(t, r.pairs.Delete(ctx, nil, pairs[1].ID), ErrPairNotFound)

	n, err := r.pairs.DeleteByTournament(ctx, nil, tour.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestMatchRepository(t *testing.T) {
	conn := setupTestDB(t)
	r := newTestRepos(conn)
	ctx := context.Background()

	tour, pairs := seedTournament(t, r, "matches", 3)
	batch := []*models.Match{
		{TournamentID: tour.ID, Round: 2, Pair1ID: pairs[0].ID, Pair2ID: pairs[2].ID},
		{TournamentID: tour.ID, Round: 1, Pair1ID: pairs[0].ID, Pair2ID: pairs[1].ID},
	}
	require.NoError(t, r.matches.CreateBatch(ctx, nil, batch))
	assert.NotZero(t, batch[0].ID)

	count, err := r.matches.CountByTournament(ctx, nil, tour.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	list, err := r.matches.ListByTournament(ctx, nil, tour.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 1, list[0].Round)
	assert.Equal(t, "PA", list[0].Pair1.Player1)
	assert.Equal(t, "QB", list[0].Pair2.Player2)

	updated, err := r.matches.UpdateScore(ctx, batch[1].ID, 6, 3)
	require.NoError(t, err)
	assert.True(t, updated.Played)
	assert.Equal(t, 6, updated.Score1)

	got, err := r.matches.GetByID(ctx, batch[1].ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Score2)

	_, err = r.matches.UpdateScore(ctx, 9999, 1, 1)
	assert.ErrorIs(t, err, ErrMatchNotFound)

	scheduled, err := r.matches.ExistsForPair(ctx, nil, pairs[1].ID)
	require.NoError(t, err)
	assert.True(t, scheduled)

	assert.ErrorIs(t, r.pairs.Delete(ctx, nil, pairs[1].ID), ErrPairInUse)

	err = r.matches.CreateBatch(ctx, nil, []*models.Match{{TournamentID: tour.ID, Round: 1, Pair1ID: pairs[0].ID, Pair2ID: pairs[0].ID}})
	assert.ErrorIs(t, err, ErrMatchPairInvalid)

	n, err := r.matches.DeleteByTournament(ctx, nil, tour.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestTransactorRollsBack(t *testing.T) {
	conn := setupTestDB(t)
	r := newTestRepos(conn)
	ctx := context.Background()
	tour, pairs := seedTournament(t, r, "rollback", 2)

	boom := errors.New("boom")
	err := r.tx.WithinTx(ctx, func(exec SQLExecutor) error {
		if err := r.matches.CreateBatch(ctx, exec, []*models.Match{
			{TournamentID: tour.ID, Round: 1, Pair1ID: pairs[0].ID, Pair2ID: pairs[1].ID},
		}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	count, err := r.matches.CountByTournament(ctx, nil, tour.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

// Concurrent check-then-insert under the tournament row lock lets exactly
// one writer through.
func TestConcurrentGenerationIsSerialised(t *testing.T) {
	conn := setupTestDB(t)
	r := newTestRepos(conn)
	ctx := context.Background()
	tour, pairs := seedTournament(t, r, "race", 2)

	const writers = 6
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		inserted int
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := r.tx.WithinTx(ctx, func(exec SQLExecutor) error {
				locked, err := r.tournaments.GetBySlugForUpdate(ctx, exec, "race")
				if err != nil {
					return err
				}
				n, err := r.matches.CountByTournament(ctx, exec, locked.ID)
				if err != nil || n > 0 {
					return err
				}
				if err := r.matches.CreateBatch(ctx, exec, []*models.Match{
					{TournamentID: locked.ID, Round: 1, Pair1ID: pairs[0].ID, Pair2ID: pairs[1].ID},
				}); err != nil {
					return err
				}
				mu.Lock()
				inserted++
				mu.Unlock()
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, inserted)
	count, err := r.matches.CountByTournament(ctx, nil, tour.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
