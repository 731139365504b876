// Package memory is an in-process implementation of the repository interfaces.
// It enforces the same uniqueness rules and cascades as the Postgres schema and
// backs STORAGE_DRIVER=memory as well as the HTTP tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/votiy-api/internal/domain/entity"
	"github.com/oksasatya/votiy-api/internal/domain/repository"
)

type Store struct {
	mu      sync.RWMutex
	now     func() time.Time
	users   map[string]entity.User
	polls   map[int64]entity.Poll
	options map[int64]entity.PollOption
	votes   map[int64]entity.PollVote
	seq     int64
}

func NewStore() *Store {
	return &Store{
		now:     time.Now,
		users:   map[string]entity.User{},
		polls:   map[int64]entity.Poll{},
		options: map[int64]entity.PollOption{},
		votes:   map[int64]entity.PollVote{},
	}
}

func (s *Store) Users() *UserRepository             { return &UserRepository{s: s} }
func (s *Store) Polls() *PollRepository             { return &PollRepository{s: s} }
func (s *Store) PollOptions() *PollOptionRepository { return &PollOptionRepository{s: s} }
func (s *Store) PollVotes() *PollVoteRepository     { return &PollVoteRepository{s: s} }

// nextID hands out ids shared by every table; callers hold the write lock.
func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

// tick returns a strictly increasing timestamp so "newest first" ordering is stable.
func (s *Store) tick() time.Time {
	return s.now().Add(time.Duration(s.seq) * time.Microsecond)
}

type UserRepository struct{ s *Store }

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return repository.Conflict("user already exists with this email", "23505")
		}
	}
	r.s.nextID()
	u.ID = uuid.NewString()
	u.CreatedAt = r.s.tick()
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.NotFound("user")
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.NotFound("user")
}

func (r *UserRepository) List(_ context.Context) ([]entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *UserRepository) Update(_ context.Context, id string, patch entity.UserPatch) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.NotFound("user")
	}
	if patch.FirstName != nil {
		u.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		u.LastName = *patch.LastName
	}
	if patch.Phone != nil {
		phone := *patch.Phone
		u.Phone = &phone
	}
	r.s.users[id] = u
	return &u, nil
}

func (r *UserRepository) UpdatePassword(_ context.Context, id, hash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return repository.NotFound("user")
	}
	u.Password = hash
	r.s.users[id] = u
	return nil
}

func (r *UserRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.users, id)
	for pid, p := range r.s.polls {
		if p.CreatorID == id {
			r.s.deletePoll(pid)
		}
	}
	for vid, v := range r.s.votes {
		if v.UserID == id {
			delete(r.s.votes, vid)
		}
	}
	return nil
}

func (r *UserRepository) Ping(context.Context) error { return nil }

var _ repository.UserRepository = (*UserRepository)(nil)
