package memory

import (
	"context"
	"sort"

	"github.com/oksasatya/votiy-api/internal/domain/entity"
	"github.com/oksasatya/votiy-api/internal/domain/repository"
)

type PollRepository struct{ s *Store }

func (r *PollRepository) Create(_ context.Context, p *entity.Poll, options []entity.PollOption) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[p.CreatorID]; !ok {
		return &repository.Error{Kind: repository.KindInvalid, Message: "creator does not exist", RawCode: "23503"}
	}
	p.ID = r.s.nextID()
	p.CreatedAt = r.s.tick()
	stored := *p
	stored.Creator, stored.Options = nil, nil
	r.s.polls[p.ID] = stored

	p.Options = make([]entity.PollOption, 0, len(options))
	for _, o := range options {
		o.ID = r.s.nextID()
		o.PollID = p.ID
		o.CreatedAt = r.s.tick()
		r.s.options[o.ID] = o
		p.Options = append(p.Options, o)
	}
	return nil
}

// hydrate attaches creator and ordered options; callers hold a lock.
func (s *Store) hydrate(p entity.Poll) entity.Poll {
	if u, ok := s.users[p.CreatorID]; ok {
		p.Creator = &entity.CreatorName{FirstName: u.FirstName, LastName: u.LastName}
	}
	p.Options = s.optionsOf(p.ID)
	return p
}

func (s *Store) optionsOf(pollID int64) []entity.PollOption {
	out := []entity.PollOption{}
	for _, o := range s.options {
		if pollID == 0 || o.PollID == pollID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].OrderIndex != out[j].OrderIndex {
			return out[i].OrderIndex < out[j].OrderIndex
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *Store) deletePoll(id int64) {
	delete(s.polls, id)
	for oid, o := range s.options {
		if o.PollID == id {
			delete(s.options, oid)
		}
	}
	for vid, v := range s.votes {
		if v.PollID == id {
			delete(s.votes, vid)
		}
	}
}

func (r *PollRepository) GetByID(_ context.Context, id int64) (*entity.Poll, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.polls[id]
	if !ok {
		return nil, repository.NotFound("poll")
	}
	p = r.s.hydrate(p)
	return &p, nil
}

func (r *PollRepository) List(_ context.Context, f repository.PollFilter) ([]entity.Poll, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []entity.Poll{}
	for _, p := range r.s.polls {
		if f.CreatorID != "" && p.CreatorID != f.CreatorID {
			continue
		}
		if f.PublicOnly && !p.IsPublic {
			continue
		}
		out = append(out, r.s.hydrate(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *PollRepository) Update(_ context.Context, id int64, patch entity.PollPatch) (*entity.Poll, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.polls[id]
	if !ok {
		return nil, repository.NotFound("poll")
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.StartDate != nil {
		t := *patch.StartDate
		p.StartDate = &t
	}
	if patch.EndDate != nil {
		t := *patch.EndDate
		p.EndDate = &t
	}
	if patch.IsPublic != nil {
		p.IsPublic = *patch.IsPublic
	}
	r.s.polls[id] = p
	p = r.s.hydrate(p)
	return &p, nil
}

func (r *PollRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.deletePoll(id)
	return nil
}

var _ repository.PollRepository = (*PollRepository)(nil)

type PollOptionRepository struct{ s *Store }

func (r *PollOptionRepository) Create(_ context.Context, o *entity.PollOption) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.polls[o.PollID]; !ok {
		return &repository.Error{Kind: repository.KindInvalid, Message: "poll does not exist", RawCode: "23503"}
	}
	o.ID = r.s.nextID()
	o.CreatedAt = r.s.tick()
	r.s.options[o.ID] = *o
	return nil
}

func (r *PollOptionRepository) GetByID(_ context.Context, id int64) (*entity.PollOption, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.options[id]
	if !ok {
		return nil, repository.NotFound("poll option")
	}
	return &o, nil
}

func (r *PollOptionRepository) List(_ context.Context, pollID int64) ([]entity.PollOption, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.optionsOf(pollID), nil
}

func (r *PollOptionRepository) Update(_ context.Context, id int64, patch entity.PollOptionPatch) (*entity.PollOption, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.options[id]
	if !ok {
		return nil, repository.NotFound("poll option")
	}
	if patch.Text != nil {
		o.Text = *patch.Text
	}
	if patch.Description != nil {
		d := *patch.Description
		o.Description = &d
	}
	if patch.OrderIndex != nil {
		o.OrderIndex = *patch.OrderIndex
	}
	r.s.options[id] = o
	return &o, nil
}

func (r *PollOptionRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.options, id)
	for vid, v := range r.s.votes {
		if v.OptionID == id {
			delete(r.s.votes, vid)
		}
	}
	return nil
}

var _ repository.PollOptionRepository = (*PollOptionRepository)(nil)
