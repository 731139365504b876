package repository

import (
	"context"

	"github.com/oksasatya/votiy-api/internal/domain/entity"
)

// PollFilter narrows poll listings. Zero values mean "no filter".
type PollFilter struct {
	CreatorID  string
	PublicOnly bool
}

// PollRepository stores polls. Listings and Get return polls with their options attached.
type PollRepository interface {
	// Create inserts the poll together with its options atomically.
	Create(ctx context.Context, p *entity.Poll, options []entity.PollOption) error
	GetByID(ctx context.Context, id int64) (*entity.Poll, error)
	List(ctx context.Context, f PollFilter) ([]entity.Poll, error)
	Update(ctx context.Context, id int64, patch entity.PollPatch) (*entity.Poll, error)
	Delete(ctx context.Context, id int64) error
}

// PollOptionRepository stores poll options ordered by order_index.
type PollOptionRepository interface {
	Create(ctx context.Context, o *entity.PollOption) error
	GetByID(ctx context.Context, id int64) (*entity.PollOption, error)
	// List returns all options, or those of one poll when pollID is non-zero.
	List(ctx context.Context, pollID int64) ([]entity.PollOption, error)
	Update(ctx context.Context, id int64, patch entity.PollOptionPatch) (*entity.PollOption, error)
	Delete(ctx context.Context, id int64) error
}

// VoteFilter narrows vote listings. Zero values mean "no filter".
type VoteFilter struct {
	PollID int64
	UserID string
}

// PollVoteRepository stores votes. At most one vote exists per (poll, user).
type PollVoteRepository interface {
	// Create inserts v only when the user has not voted on the poll yet; otherwise
	// it inserts nothing and returns a KindConflict error.
	Create(ctx context.Context, v *entity.PollVote) error
	GetByID(ctx context.Context, id int64) (*entity.PollVote, error)
	List(ctx context.Context, f VoteFilter) ([]entity.PollVote, error)
	UpdateOption(ctx context.Context, id, optionID int64) (*entity.PollVote, error)
	Delete(ctx context.Context, id int64) error
	Tally(ctx context.Context, pollID int64) ([]entity.OptionTally, error)
}
