package app

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"typespeed/internal/model"
	"typespeed/internal/repository"
)

type fakeUserStore struct {
	mu        sync.Mutex
	users     map[uint]*model.User
	nextID    uint
	createErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uint]*model.User)}
}

func (s *fakeUserStore) Create(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	for _, u := range s.users {
		if u.Username == user.Username {
			return repository.ErrDuplicateUsername
		}
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	s.nextID++
	user.ID = s.nextID
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *fakeUserStore) find(match func(*model.User) bool) *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if match(u) {
			clone := *u
			return &clone
		}
	}
	return nil
}

func (s *fakeUserStore) GetByUsername(_ context.Context, username string) (*model.User, error) {
	return s.find(func(u *model.User) bool { return u.Username == username }), nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	return s.find(func(u *model.User) bool { return u.Email == email }), nil
}

func (s *fakeUserStore) GetByID(_ context.Context, id uint) (*model.User, error) {
	return s.find(func(u *model.User) bool { return u.ID == id }), nil
}

func (s *fakeUserStore) List(_ context.Context) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	slices.SortFunc(out, func(a, b model.User) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

// fakeScoreStore joins against a fakeUserStore the way the SQL repository
// joins against the users table.
type fakeScoreStore struct {
	mu        sync.Mutex
	users     *fakeUserStore
	scores    []model.Score
	topCalls  int
	createErr error
}

func newFakeScoreStore(users *fakeUserStore) *fakeScoreStore {
	return &fakeScoreStore{users: users}
}

func (s *fakeScoreStore) Create(_ context.Context, score *model.Score) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	score.ID = uint(len(s.scores) + 1)
	s.scores = append(s.scores, *score)
	return nil
}

func (s *fakeScoreStore) entries() []model.ScoreEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.ScoreEntry, 0, len(s.scores))
	for _, sc := range s.scores {
		owner, _ := s.users.GetByID(context.Background(), sc.UserID)
		if owner == nil {
			continue
		}
		out = append(out, model.ScoreEntry{
			ID: sc.ID, UserID: sc.UserID, WPM: sc.WPM, Accuracy: sc.Accuracy,
			Duration: sc.Duration, Timestamp: sc.Timestamp, Username: owner.Username,
		})
	}
	return out
}

func (s *fakeScoreStore) ListWithUsernames(_ context.Context) ([]model.ScoreEntry, error) {
	out := s.entries()
	slices.SortFunc(out, func(a, b model.ScoreEntry) int {
		if c := b.Timestamp.Compare(a.Timestamp); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return out, nil
}

func (s *fakeScoreStore) TopByDuration(_ context.Context, duration, limit int) ([]model.ScoreEntry, error) {
	s.mu.Lock()
	s.topCalls++
	s.mu.Unlock()

	var out []model.ScoreEntry
	for _, e := range s.entries() {
		if e.Duration == duration {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, func(a, b model.ScoreEntry) int { return cmp.Compare(b.WPM, a.WPM) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakeScoreStore) BestByUserAndDuration(ctx context.Context, userID uint, duration int) (*model.ScoreEntry, error) {
	var best *model.ScoreEntry
	for _, e := range s.entries() {
		if e.UserID != userID || e.Duration != duration {
			continue
		}
		if best == nil || e.WPM > best.WPM {
			e := e
			best = &e
		}
	}
	return best, nil
}

type fakeLeaderboardCache struct {
	mu          sync.Mutex
	tops        map[int][]model.ScoreEntry
	invalidated []int
	getErr      error
}

func newFakeLeaderboardCache() *fakeLeaderboardCache {
	return &fakeLeaderboardCache{tops: make(map[int][]model.ScoreEntry)}
}

func (c *fakeLeaderboardCache) GetTop(_ context.Context, duration int) ([]model.ScoreEntry, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	entries, ok := c.tops[duration]
	return entries, ok, nil
}

func (c *fakeLeaderboardCache) SetTop(_ context.Context, duration int, entries []model.ScoreEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tops[duration] = entries
	return nil
}

func (c *fakeLeaderboardCache) InvalidateTop(_ context.Context, duration int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.tops, duration)
	c.invalidated = append(c.invalidated, duration)
	return nil
}

type fakePublisher struct {
	events []model.ScoreRecordedEvent
	err    error
}

func (p *fakePublisher) PublishScoreRecorded(_ context.Context, event model.ScoreRecordedEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}
