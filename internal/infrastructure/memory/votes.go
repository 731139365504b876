package memory

import (
	"context"
	"sort"

	"github.com/oksasatya/votiy-api/internal/domain/entity"
	"github.com/oksasatya/votiy-api/internal/domain/repository"
)

type PollVoteRepository struct{ s *Store }

// Create checks and inserts under one write lock, matching the atomic insert of the SQL store.
func (r *PollVoteRepository) Create(_ context.Context, v *entity.PollVote) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.votes {
		if existing.PollID == v.PollID && existing.UserID == v.UserID {
			return repository.Conflict("user has already voted on this poll", "23505")
		}
	}
	if _, ok := r.s.polls[v.PollID]; !ok {
		return &repository.Error{Kind: repository.KindInvalid, Message: "poll does not exist", RawCode: "23503"}
	}
	if _, ok := r.s.options[v.OptionID]; !ok {
		return &repository.Error{Kind: repository.KindInvalid, Message: "poll option does not exist", RawCode: "23503"}
	}
	if _, ok := r.s.users[v.UserID]; !ok {
		return &repository.Error{Kind: repository.KindInvalid, Message: "user does not exist", RawCode: "23503"}
	}
	v.ID = r.s.nextID()
	v.CreatedAt = r.s.tick()
	v.User, v.Option, v.Poll = nil, nil, nil
	r.s.votes[v.ID] = *v
	return nil
}

// join fills the user, option and poll summaries; callers hold a lock.
func (s *Store) join(v entity.PollVote) entity.PollVote {
	if u, ok := s.users[v.UserID]; ok {
		v.User = &entity.VoteUser{ID: u.ID, Email: u.Email, FirstName: u.FirstName, LastName: u.LastName}
	}
	if o, ok := s.options[v.OptionID]; ok {
		v.Option = &entity.VoteOption{ID: o.ID, Text: o.Text, Description: o.Description}
	}
	if p, ok := s.polls[v.PollID]; ok {
		v.Poll = &entity.VotePoll{ID: p.ID, Title: p.Title}
	}
	return v
}

func (r *PollVoteRepository) GetByID(_ context.Context, id int64) (*entity.PollVote, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	v, ok := r.s.votes[id]
	if !ok {
		return nil, repository.NotFound("poll vote")
	}
	v = r.s.join(v)
	return &v, nil
}

func (r *PollVoteRepository) List(_ context.Context, f repository.VoteFilter) ([]entity.PollVote, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []entity.PollVote{}
	for _, v := range r.s.votes {
		if f.PollID != 0 && v.PollID != f.PollID {
			continue
		}
		if f.UserID != "" && v.UserID != f.UserID {
			continue
		}
		out = append(out, r.s.join(v))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *PollVoteRepository) UpdateOption(_ context.Context, id, optionID int64) (*entity.PollVote, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.votes[id]
	if !ok {
		return nil, repository.NotFound("poll vote")
	}
	if _, ok := r.s.options[optionID]; !ok {
		return nil, &repository.Error{Kind: repository.KindInvalid, Message: "poll option does not exist", RawCode: "23503"}
	}
	v.OptionID = optionID
	r.s.votes[id] = v
	v = r.s.join(v)
	return &v, nil
}

func (r *PollVoteRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.votes, id)
	return nil
}

func (r *PollVoteRepository) Tally(_ context.Context, pollID int64) ([]entity.OptionTally, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []entity.OptionTally{}
	for _, o := range r.s.optionsOf(pollID) {
		t := entity.OptionTally{OptionID: o.ID, Text: o.Text}
		for _, v := range r.s.votes {
			if v.PollID == pollID && v.OptionID == o.ID {
				t.Votes++
			}
		}
		out = append(out, t)
	}
	return out, nil
}

var _ repository.PollVoteRepository = (*PollVoteRepository)(nil)
