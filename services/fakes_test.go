package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/Dosada05/doubles-rounds/brackets"
	"github.com/Dosada05/doubles-rounds/models"
	"github.com/Dosada05/doubles-rounds/repositories"
	"github.com/Dosada05/doubles-rounds/storage"
)

// memStore backs the fake repositories. Transactions snapshot the store and
// restore it when the callback fails, which is enough to observe rollback.
type memStore struct {
	mu          sync.Mutex
	txMu        sync.Mutex
	tournaments map[int]*models.Tournament
	pairs       map[int]*models.Pair
	matches     map[int]*models.Match
	nextID      int

	failCreateBatch error
	failListPairs   error
}

func newMemStore() *memStore {
	return &memStore{
		tournaments: map[int]*models.Tournament{},
		pairs:       map[int]*models.Pair{},
		matches:     map[int]*models.Match{},
	}
}

func (s *memStore) id() int {
	s.nextID++
	return s.nextID
}

func (s *memStore) snapshot() (map[int]*models.Tournament, map[int]*models.Pair, map[int]*models.Match, int) {
	ts := make(map[int]*models.Tournament, len(s.tournaments))
	for k, v := range s.tournaments {
		c := *v
		ts[k] = &c
	}
	ps := make(map[int]*models.Pair, len(s.pairs))
	for k, v := range s.pairs {
		c := *v
		ps[k] = &c
	}
	ms := make(map[int]*models.Match, len(s.matches))
	for k, v := range s.matches {
		c := *v
		ms[k] = &c
	}
	return ts, ps, ms, s.nextID
}

// WithinTx serialises transactions, standing in for the tournament row lock.
func (s *memStore) WithinTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	ts, ps, ms, next := s.snapshot()
	s.mu.Unlock()

	if err := fn(nil); err != nil {
		s.mu.Lock()
		s.tournaments, s.pairs, s.matches, s.nextID = ts, ps, ms, next
		s.mu.Unlock()
		return err
	}
	return nil
}

type fakeTournamentRepo struct{ s *memStore }

func (r fakeTournamentRepo) Create(ctx context.Context, t *models.Tournament) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.tournaments {
		if existing.Slug == t.Slug {
			return repositories.ErrTournamentSlugConflict
		}
	}
	t.ID = r.s.id()
	t.CreatedAt = time.Now()
	c := *t
	r.s.tournaments[t.ID] = &c
	return nil
}

func (r fakeTournamentRepo) GetBySlug(ctx context.Context, exec repositories.SQLExecutor, slug string) (*models.Tournament, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.tournaments {
		if t.Slug == slug {
			c := *t
			return &c, nil
		}
	}
	return nil, repositories.ErrTournamentNotFound
}

func (r fakeTournamentRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Tournament, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	c := *t
	return &c, nil
}

func (r fakeTournamentRepo) GetBySlugForUpdate(ctx context.Context, exec repositories.SQLExecutor, slug string) (*models.Tournament, error) {
	return r.GetBySlug(ctx, exec, slug)
}

func (r fakeTournamentRepo) GetByIDForUpdate(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Tournament, error) {
	return r.GetByID(ctx, exec, id)
}

func (r fakeTournamentRepo) List(ctx context.Context) ([]*models.Tournament, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*models.Tournament, 0, len(r.s.tournaments))
	for _, t := range r.s.tournaments {
		c := *t
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r fakeTournamentRepo) UpdateMaxPairs(ctx context.Context, exec repositories.SQLExecutor, id int, maxPairs *int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tournaments[id]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	t.MaxPairs = maxPairs
	return nil
}

func (r fakeTournamentRepo) Delete(ctx context.Context, exec repositories.SQLExecutor, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tournaments[id]; !ok {
		return repositories.ErrTournamentNotFound
	}
	delete(r.s.tournaments, id)
	return nil
}

type fakePairRepo struct{ s *memStore }

func (r fakePairRepo) Create(ctx context.Context, p *models.Pair) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tournaments[p.TournamentID]; !ok {
		return repositories.ErrPairTournamentInvalid
	}
	p.ID = r.s.id()
	c := *p
	r.s.pairs[p.ID] = &c
	return nil
}

func (r fakePairRepo) FindByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Pair, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.pairs[id]
	if !ok {
		return nil, repositories.ErrPairNotFound
	}
	c := *p
	return &c, nil
}

func (r fakePairRepo) ListByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) ([]*models.Pair, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failListPairs != nil {
		return nil, r.s.failListPairs
	}
	out := make([]*models.Pair, 0)
	for _, p := range r.s.pairs {
		if p.TournamentID == tournamentID {
			c := *p
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakePairRepo) Delete(ctx context.Context, exec repositories.SQLExecutor, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.pairs[id]; !ok {
		return repositories.ErrPairNotFound
	}
	for _, m := range r.s.matches {
		if m.Pair1ID == id || m.Pair2ID == id {
			return repositories.ErrPairInUse
		}
	}
	delete(r.s.pairs, id)
	return nil
}

func (r fakePairRepo) DeleteByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, p := range r.s.pairs {
		if p.TournamentID == tournamentID {
			delete(r.s.pairs, id)
			n++
		}
	}
	return n, nil
}

type fakeMatchRepo struct{ s *memStore }

func (r fakeMatchRepo) CreateBatch(ctx context.Context, exec repositories.SQLExecutor, matches []*models.Match) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, m := range matches {
		// Fail halfway so a missing rollback would leave rows behind.
		if r.s.failCreateBatch != nil && i == len(matches)/2 {
			return r.s.failCreateBatch
		}
		m.ID = r.s.id()
		c := *m
		c.Pair1, c.Pair2 = nil, nil
		r.s.matches[m.ID] = &c
	}
	return nil
}

func (r fakeMatchRepo) CountByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, m := range r.s.matches {
		if m.TournamentID == tournamentID {
			n++
		}
	}
	return n, nil
}

func (r fakeMatchRepo) ExistsForPair(ctx context.Context, exec repositories.SQLExecutor, pairID int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.matches {
		if m.Pair1ID == pairID || m.Pair2ID == pairID {
			return true, nil
		}
	}
	return false, nil
}

func (r fakeMatchRepo) ListByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) ([]*models.Match, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*models.Match, 0)
	for _, m := range r.s.matches {
		if m.TournamentID != tournamentID {
			continue
		}
		c := *m
		if p, ok := r.s.pairs[c.Pair1ID]; ok {
			pc := *p
			c.Pair1 = &pc
		}
		if p, ok := r.s.pairs[c.Pair2ID]; ok {
			pc := *p
			c.Pair2 = &pc
		}
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Round != out[j].Round {
			return out[i].Round < out[j].Round
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r fakeMatchRepo) GetByID(ctx context.Context, id int) (*models.Match, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	c := *m
	return &c, nil
}

func (r fakeMatchRepo) UpdateScore(ctx context.Context, id int, score1, score2 int) (*models.Match, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	m.Score1, m.Score2, m.Played = score1, score2, true
	c := *m
	return &c, nil
}

func (r fakeMatchRepo) DeleteByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, m := range r.s.matches {
		if m.TournamentID == tournamentID {
			delete(r.s.matches, id)
			n++
		}
	}
	return n, nil
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []NotificationMessage
}

func (n *recordingNotifier) BroadcastToRoom(roomID string, message interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if msg, ok := message.(NotificationMessage); ok {
		n.messages = append(n.messages, msg)
	}
}

func (n *recordingNotifier) types() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.messages))
	for _, m := range n.messages {
		out = append(out, m.Type)
	}
	return out
}

type publishedEvent struct {
	key     string
	payload interface{}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{key: routingKey, payload: payload})
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

type fakeUploader struct {
	key         string
	contentType string
	body        []byte
	err         error
}

func (u *fakeUploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	if u.err != nil {
		return nil, u.err
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	u.key, u.contentType, u.body = key, contentType, body
	return &storage.UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *fakeUploader) Delete(ctx context.Context, key string) error { return nil }

func (u *fakeUploader) GetPublicURL(key string) string { return "https://cdn.test/" + key }

var errBoom = errors.New("boom")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fixture wires every service against one in-memory store.
type fixture struct {
	store       *memStore
	notifier    *recordingNotifier
	publisher   *recordingPublisher
	uploader    *fakeUploader
	tournaments TournamentService
	pairs       ParticipantService
	schedule    ScheduleService
	scores      MatchService
	standings   StandingsService
}

func newFixture() *fixture {
	store := newMemStore()
	f := &fixture{
		store:     store,
		notifier:  &recordingNotifier{},
		publisher: &recordingPublisher{},
		uploader:  &fakeUploader{},
	}
	tr, pr, mr := fakeTournamentRepo{store}, fakePairRepo{store}, fakeMatchRepo{store}
	logger := discardLogger()

	f.tournaments = NewTournamentService(store, tr, pr, mr, f.notifier, f.publisher, logger)
	f.pairs = NewParticipantService(store, tr, pr, mr, f.notifier, logger)
	f.schedule = NewScheduleService(store, tr, pr, mr, brackets.NewRoundRobinGenerator(), f.notifier, f.publisher, logger)
	f.scores = NewMatchService(tr, mr, f.notifier, f.publisher, logger)
	f.standings = NewStandingsService(tr, pr, mr, f.uploader, logger)
	return f
}
