package application

import (
	"context"

	"github.com/oksasatya/votiy-api/internal/domain/entity"
	repo "github.com/oksasatya/votiy-api/internal/domain/repository"
)

type PollVoteService struct {
	Votes   repo.PollVoteRepository
	Options repo.PollOptionRepository
}

func NewPollVoteService(votes repo.PollVoteRepository, options repo.PollOptionRepository) *PollVoteService {
	return &PollVoteService{Votes: votes, Options: options}
}

type CastVoteInput struct {
	PollID   int64
	OptionID int64
	UserID   string
}

func (s *PollVoteService) List(ctx context.Context, f repo.VoteFilter) ([]entity.PollVote, error) {
	votes, err := s.Votes.List(ctx, f)
	if err != nil {
		return nil, fromStore(err, nil)
	}
	return votes, nil
}

func (s *PollVoteService) Get(ctx context.Context, id int64) (*entity.PollVote, error) {
	v, err := s.Votes.GetByID(ctx, id)
	if err != nil {
		return nil, fromStore(err, ErrVoteNotFound)
	}
	return v, nil
}

// checkOption makes sure optionID is a choice of pollID. Options never move
// between polls, so the check cannot go stale before the write.
func (s *PollVoteService) checkOption(ctx context.Context, pollID, optionID int64) error {
	o, err := s.Options.GetByID(ctx, optionID)
	if err != nil {
		if repo.KindOf(err) == repo.KindNotFound {
			return validationError("Poll option does not exist", nil)
		}
		return fromStore(err, nil)
	}
	if o.PollID != pollID {
		return validationError("Option does not belong to this poll", nil)
	}
	return nil
}

// Cast records a vote with one conditional insert; a second vote by the
// same user on the same poll fails with ErrAlreadyVoted.
func (s *PollVoteService) Cast(ctx context.Context, in CastVoteInput) (*entity.PollVote, error) {
	if in.PollID <= 0 || in.OptionID <= 0 || in.UserID == "" {
		return nil, validationError("Poll ID, option ID, and user ID are required", nil)
	}
	if err := s.checkOption(ctx, in.PollID, in.OptionID); err != nil {
		return nil, err
	}
	v := &entity.PollVote{PollID: in.PollID, OptionID: in.OptionID, UserID: in.UserID}
	if err := s.Votes.Create(ctx, v); err != nil {
		if repo.KindOf(err) == repo.KindConflict {
			return nil, ErrAlreadyVoted
		}
		return nil, fromStore(err, nil)
	}
	return v, nil
}

// ChangeOption moves an existing vote to another option of the same poll.
func (s *PollVoteService) ChangeOption(ctx context.Context, id, optionID int64) (*entity.PollVote, error) {
	if optionID <= 0 {
		return nil, validationError("Option ID is required", nil)
	}
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkOption(ctx, current.PollID, optionID); err != nil {
		return nil, err
	}
	v, err := s.Votes.UpdateOption(ctx, id, optionID)
	if err != nil {
		return nil, fromStore(err, ErrVoteNotFound)
	}
	return v, nil
}

// Delete succeeds when the vote is already gone.
func (s *PollVoteService) Delete(ctx context.Context, id int64) error {
	if err := s.Votes.Delete(ctx, id); err != nil && repo.KindOf(err) != repo.KindNotFound {
		return fromStore(err, nil)
	}
	return nil
}

// Results counts votes per option of a poll, zero-vote options included.
func (s *PollVoteService) Results(ctx context.Context, pollID int64) ([]entity.OptionTally, error) {
	tally, err := s.Votes.Tally(ctx, pollID)
	if err != nil {
		return nil, fromStore(err, nil)
	}
	return tally, nil
}
