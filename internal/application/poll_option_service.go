package application

import (
	"context"
	"strings"

	"github.com/oksasatya/votiy-api/internal/domain/entity"
	repo "github.com/oksasatya/votiy-api/internal/domain/repository"
)

type PollOptionService struct {
	Options repo.PollOptionRepository
	// Polls, when set, refreshes the poll cache and index after option writes.
	Polls *PollService
}

func NewPollOptionService(options repo.PollOptionRepository, polls *PollService) *PollOptionService {
	return &PollOptionService{Options: options, Polls: polls}
}

type CreateOptionInput struct {
	PollID      int64
	Text        string
	Description *string
	OrderIndex  int
}

// List returns all options, or those of one poll when pollID is non-zero.
func (s *PollOptionService) List(ctx context.Context, pollID int64) ([]entity.PollOption, error) {
	opts, err := s.Options.List(ctx, pollID)
	if err != nil {
		return nil, fromStore(err, nil)
	}
	return opts, nil
}

func (s *PollOptionService) Get(ctx context.Context, id int64) (*entity.PollOption, error) {
	o, err := s.Options.GetByID(ctx, id)
	if err != nil {
		return nil, fromStore(err, ErrOptionNotFound)
	}
	return o, nil
}

func (s *PollOptionService) Create(ctx context.Context, in CreateOptionInput) (*entity.PollOption, error) {
	text := strings.TrimSpace(in.Text)
	if in.PollID <= 0 || text == "" {
		return nil, validationError("Poll ID and text are required", nil)
	}
	o := &entity.PollOption{PollID: in.PollID, Text: text, Description: in.Description, OrderIndex: in.OrderIndex}
	if err := s.Options.Create(ctx, o); err != nil {
		return nil, fromStore(err, nil)
	}
	s.touch(ctx, o.PollID)
	return o, nil
}

func (s *PollOptionService) Update(ctx context.Context, id int64, patch entity.PollOptionPatch) (*entity.PollOption, error) {
	if patch.Text != nil {
		t := strings.TrimSpace(*patch.Text)
		if t == "" {
			return nil, validationError("Validation failed", map[string]string{"text": "must not be empty"})
		}
		patch.Text = &t
	}
	if patch.Empty() {
		return s.Get(ctx, id)
	}
	o, err := s.Options.Update(ctx, id, patch)
	if err != nil {
		return nil, fromStore(err, ErrOptionNotFound)
	}
	s.touch(ctx, o.PollID)
	return o, nil
}

// Delete succeeds when the option is already gone. Votes for it go with it.
func (s *PollOptionService) Delete(ctx context.Context, id int64) error {
	o, err := s.Options.GetByID(ctx, id)
	if err != nil {
		if repo.KindOf(err) == repo.KindNotFound {
			return nil
		}
		return fromStore(err, nil)
	}
	if err := s.Options.Delete(ctx, id); err != nil && repo.KindOf(err) != repo.KindNotFound {
		return fromStore(err, nil)
	}
	s.touch(ctx, o.PollID)
	return nil
}

func (s *PollOptionService) touch(ctx context.Context, pollID int64) {
	if s.Polls != nil {
		s.Polls.changed(ctx, pollID)
	}
}
