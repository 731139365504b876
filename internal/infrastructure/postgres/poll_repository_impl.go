package postgres

import (
	"context"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/votiy-api/internal/domain/entity"
	"github.com/oksasatya/votiy-api/internal/domain/repository"
)

const pollSelect = `
	SELECT p.id, p.title, COALESCE(p.description, ''), p.start_date, p.end_date,
	       p.creator_id::text, p.is_public, p.created_at,
	       u.first_name, u.last_name
	FROM polls p
	LEFT JOIN users u ON u.id = p.creator_id`

type PollRepository struct {
	pool *pgxpool.Pool
}

func NewPollRepository(pool *pgxpool.Pool) *PollRepository {
	return &PollRepository{pool: pool}
}

func scanPoll(row pgx.Row) (*entity.Poll, error) {
	p := &entity.Poll{}
	var first, last *string
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.StartDate, &p.EndDate,
		&p.CreatorID, &p.IsPublic, &p.CreatedAt, &first, &last); err != nil {
		return nil, err
	}
	if first != nil || last != nil {
		p.Creator = &entity.CreatorName{FirstName: deref(first), LastName: deref(last)}
	}
	return p, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (r *PollRepository) Create(ctx context.Context, p *entity.Poll, options []entity.PollOption) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return translate(err, "poll")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, `
		INSERT INTO polls (title, description, start_date, end_date, creator_id, is_public)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, p.Title, p.Description, p.StartDate, p.EndDate, p.CreatorID, p.IsPublic).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return translate(err, "poll")
	}

	p.Options = make([]entity.PollOption, 0, len(options))
	for _, o := range options {
		o.PollID = p.ID
		err := tx.QueryRow(ctx, `
			INSERT INTO poll_options (poll_id, text, description, order_index)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at
		`, o.PollID, o.Text, o.Description, o.OrderIndex).Scan(&o.ID, &o.CreatedAt)
		if err != nil {
			return translate(err, "poll option")
		}
		p.Options = append(p.Options, o)
	}
	return translate(tx.Commit(ctx), "poll")
}

func (r *PollRepository) GetByID(ctx context.Context, id int64) (*entity.Poll, error) {
	p, err := scanPoll(r.pool.QueryRow(ctx, pollSelect+` WHERE p.id = $1`, id))
	if err != nil {
		return nil, translate(err, "poll")
	}
	if err := r.attachOptions(ctx, []*entity.Poll{p}); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PollRepository) List(ctx context.Context, f repository.PollFilter) ([]entity.Poll, error) {
	var where []string
	var args []any
	if f.CreatorID != "" {
		args = append(args, f.CreatorID)
		where = append(where, "p.creator_id = $"+strconv.Itoa(len(args)))
	}
	if f.PublicOnly {
		where = append(where, "p.is_public")
	}
	q := pollSelect
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY p.created_at DESC, p.id DESC"

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, translate(err, "poll")
	}
	defer rows.Close()

	var ptrs []*entity.Poll
	for rows.Next() {
		p, err := scanPoll(rows)
		if err != nil {
			return nil, translate(err, "poll")
		}
		ptrs = append(ptrs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "poll")
	}
	if err := r.attachOptions(ctx, ptrs); err != nil {
		return nil, err
	}

	out := make([]entity.Poll, 0, len(ptrs))
	for _, p := range ptrs {
		out = append(out, *p)
	}
	return out, nil
}

// attachOptions loads the options of all given polls in one query.
func (r *PollRepository) attachOptions(ctx context.Context, polls []*entity.Poll) error {
	if len(polls) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(polls))
	byID := make(map[int64]*entity.Poll, len(polls))
	for _, p := range polls {
		p.Options = []entity.PollOption{}
		ids = append(ids, p.ID)
		byID[p.ID] = p
	}
	rows, err := r.pool.Query(ctx, `SELECT `+optionColumns+` FROM poll_options
		WHERE poll_id = ANY($1) ORDER BY poll_id, order_index, id`, ids)
	if err != nil {
		return translate(err, "poll option")
	}
	defer rows.Close()
	for rows.Next() {
		o, err := scanOption(rows)
		if err != nil {
			return translate(err, "poll option")
		}
		if p := byID[o.PollID]; p != nil {
			p.Options = append(p.Options, *o)
		}
	}
	return translate(rows.Err(), "poll option")
}

func (r *PollRepository) Update(ctx context.Context, id int64, patch entity.PollPatch) (*entity.Poll, error) {
	if patch.Empty() {
		return r.GetByID(ctx, id)
	}
	var b setBuilder
	if patch.Title != nil {
		b.add("title", *patch.Title)
	}
	if patch.Description != nil {
		b.add("description", *patch.Description)
	}
	if patch.StartDate != nil {
		b.add("start_date", *patch.StartDate)
	}
	if patch.EndDate != nil {
		b.add("end_date", *patch.EndDate)
	}
	if patch.IsPublic != nil {
		b.add("is_public", *patch.IsPublic)
	}
	set, args, idArg := b.build(id)
	tag, err := r.pool.Exec(ctx, `UPDATE polls SET `+set+` WHERE id = `+idArg, args...)
	if err != nil {
		return nil, translate(err, "poll")
	}
	if tag.RowsAffected() == 0 {
		return nil, repository.NotFound("poll")
	}
	return r.GetByID(ctx, id)
}

func (r *PollRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM polls WHERE id = $1`, id)
	return translate(err, "poll")
}

var _ repository.PollRepository = (*PollRepository)(nil)
