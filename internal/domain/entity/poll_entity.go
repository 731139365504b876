package entity

import "time"

// Poll is owned by its creator for its whole lifetime.
type Poll struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	StartDate   *time.Time   `json:"start_date"`
	EndDate     *time.Time   `json:"end_date"`
	CreatorID   string       `json:"creator_id"`
	IsPublic    bool         `json:"is_public"`
	CreatedAt   time.Time    `json:"created_at"`
	Creator     *CreatorName `json:"creator,omitempty"`
	Options     []PollOption `json:"options"`
}

// CreatorName is the slice of the owning user shown next to public polls.
type CreatorName struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// PollPatch holds a partial poll update.
type PollPatch struct {
	Title       *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
	IsPublic    *bool
}

func (p PollPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.StartDate == nil && p.EndDate == nil && p.IsPublic == nil
}

// PollOption is one choice of a poll; OrderIndex only drives display order.
type PollOption struct {
	ID          int64     `json:"id"`
	PollID      int64     `json:"poll_id"`
	Text        string    `json:"text"`
	Description *string   `json:"description"`
	OrderIndex  int       `json:"order_index"`
	CreatedAt   time.Time `json:"created_at"`
}

type PollOptionPatch struct {
	Text        *string
	Description *string
	OrderIndex  *int
}

func (p PollOptionPatch) Empty() bool {
	return p.Text == nil && p.Description == nil && p.OrderIndex == nil
}

// PollVote records a user's choice. A user holds at most one vote per poll.
type PollVote struct {
	ID        int64       `json:"id"`
	PollID    int64       `json:"poll_id"`
	OptionID  int64       `json:"option_id"`
	UserID    string      `json:"user_id"`
	CreatedAt time.Time   `json:"created_at"`
	User      *VoteUser   `json:"user,omitempty"`
	Option    *VoteOption `json:"option,omitempty"`
	Poll      *VotePoll   `json:"poll,omitempty"`
}

type VoteUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type VoteOption struct {
	ID          int64   `json:"id"`
	Text        string  `json:"text"`
	Description *string `json:"description"`
}

type VotePoll struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// OptionTally is the number of votes cast for one option.
type OptionTally struct {
	OptionID int64  `json:"option_id"`
	Text     string `json:"text"`
	Votes    int64  `json:"votes"`
}
