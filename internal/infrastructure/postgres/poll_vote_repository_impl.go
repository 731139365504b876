package postgres

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/votiy-api/internal/domain/entity"
	"github.com/oksasatya/votiy-api/internal/domain/repository"
)

const voteSelect = `
	SELECT v.id, v.poll_id, v.option_id, v.user_id::text, v.created_at,
	       u.id::text, u.email, u.first_name, u.last_name,
	       o.id, o.text, o.description,
	       p.id, p.title
	FROM poll_votes v
	LEFT JOIN users u ON u.id = v.user_id
	LEFT JOIN poll_options o ON o.id = v.option_id
	LEFT JOIN polls p ON p.id = v.poll_id`

type PollVoteRepository struct {
	pool *pgxpool.Pool
}

func NewPollVoteRepository(pool *pgxpool.Pool) *PollVoteRepository {
	return &PollVoteRepository{pool: pool}
}

func scanVote(row pgx.Row) (*entity.PollVote, error) {
	v := &entity.PollVote{}
	var (
		uID, uEmail, uFirst, uLast *string
		oID                        *int64
		oText, oDesc               *string
		pID                        *int64
		pTitle                     *string
	)
	if err := row.Scan(&v.ID, &v.PollID, &v.OptionID, &v.UserID, &v.CreatedAt,
		&uID, &uEmail, &uFirst, &uLast, &oID, &oText, &oDesc, &pID, &pTitle); err != nil {
		return nil, err
	}
	if uID != nil {
		v.User = &entity.VoteUser{ID: *uID, Email: deref(uEmail), FirstName: deref(uFirst), LastName: deref(uLast)}
	}
	if oID != nil {
		v.Option = &entity.VoteOption{ID: *oID, Text: deref(oText), Description: oDesc}
	}
	if pID != nil {
		v.Poll = &entity.VotePoll{ID: *pID, Title: deref(pTitle)}
	}
	return v, nil
}

// Create is a single conditional insert guarded by poll_votes_poll_id_user_id_key,
// so concurrent duplicates cannot both succeed.
func (r *PollVoteRepository) Create(ctx context.Context, v *entity.PollVote) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO poll_votes (poll_id, option_id, user_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (poll_id, user_id) DO NOTHING
		RETURNING id, created_at
	`, v.PollID, v.OptionID, v.UserID).Scan(&v.ID, &v.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.Conflict("user has already voted on this poll", codeUniqueViolation)
	}
	return translate(err, "poll vote")
}

func (r *PollVoteRepository) GetByID(ctx context.Context, id int64) (*entity.PollVote, error) {
	v, err := scanVote(r.pool.QueryRow(ctx, voteSelect+` WHERE v.id = $1`, id))
	return v, translate(err, "poll vote")
}

func (r *PollVoteRepository) List(ctx context.Context, f repository.VoteFilter) ([]entity.PollVote, error) {
	var where []string
	var args []any
	if f.PollID != 0 {
		args = append(args, f.PollID)
		where = append(where, "v.poll_id = $"+strconv.Itoa(len(args)))
	}
	if f.UserID != "" {
		args = append(args, f.UserID)
		where = append(where, "v.user_id = $"+strconv.Itoa(len(args)))
	}
	q := voteSelect
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY v.created_at DESC, v.id DESC"

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, translate(err, "poll vote")
	}
	defer rows.Close()

	out := []entity.PollVote{}
	for rows.Next() {
		v, err := scanVote(rows)
		if err != nil {
			return nil, translate(err, "poll vote")
		}
		out = append(out, *v)
	}
	return out, translate(rows.Err(), "poll vote")
}

func (r *PollVoteRepository) UpdateOption(ctx context.Context, id, optionID int64) (*entity.PollVote, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE poll_votes SET option_id = $1 WHERE id = $2`, optionID, id)
	if err != nil {
		return nil, translate(err, "poll vote")
	}
	if tag.RowsAffected() == 0 {
		return nil, repository.NotFound("poll vote")
	}
	return r.GetByID(ctx, id)
}

func (r *PollVoteRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM poll_votes WHERE id = $1`, id)
	return translate(err, "poll vote")
}

// Tally counts votes per option of a poll, including options nobody picked.
func (r *PollVoteRepository) Tally(ctx context.Context, pollID int64) ([]entity.OptionTally, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT o.id, o.text, COUNT(v.id)
		FROM poll_options o
		LEFT JOIN poll_votes v ON v.option_id = o.id AND v.poll_id = o.poll_id
		WHERE o.poll_id = $1
		GROUP BY o.id, o.text, o.order_index
		ORDER BY o.order_index, o.id
	`, pollID)
	if err != nil {
		return nil, translate(err, "poll vote")
	}
	defer rows.Close()

	out := []entity.OptionTally{}
	for rows.Next() {
		var t entity.OptionTally
		if err := rows.Scan(&t.OptionID, &t.Text, &t.Votes); err != nil {
			return nil, translate(err, "poll vote")
		}
		out = append(out, t)
	}
	return out, translate(rows.Err(), "poll vote")
}

var _ repository.PollVoteRepository = (*PollVoteRepository)(nil)
