package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/votiy-api/internal/domain/entity"
	"github.com/oksasatya/votiy-api/internal/domain/repository"
)

const optionColumns = `id, poll_id, text, description, order_index, created_at`

type PollOptionRepository struct {
	pool *pgxpool.Pool
}

func NewPollOptionRepository(pool *pgxpool.Pool) *PollOptionRepository {
	return &PollOptionRepository{pool: pool}
}

func scanOption(row pgx.Row) (*entity.PollOption, error) {
	o := &entity.PollOption{}
	if err := row.Scan(&o.ID, &o.PollID, &o.Text, &o.Description, &o.OrderIndex, &o.CreatedAt); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *PollOptionRepository) Create(ctx context.Context, o *entity.PollOption) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO poll_options (poll_id, text, description, order_index)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, o.PollID, o.Text, o.Description, o.OrderIndex).Scan(&o.ID, &o.CreatedAt)
	return translate(err, "poll option")
}

func (r *PollOptionRepository) GetByID(ctx context.Context, id int64) (*entity.PollOption, error) {
	o, err := scanOption(r.pool.QueryRow(ctx, `SELECT `+optionColumns+` FROM poll_options WHERE id = $1`, id))
	return o, translate(err, "poll option")
}

func (r *PollOptionRepository) List(ctx context.Context, pollID int64) ([]entity.PollOption, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if pollID != 0 {
		rows, err = r.pool.Query(ctx, `SELECT `+optionColumns+` FROM poll_options WHERE poll_id = $1 ORDER BY order_index, id`, pollID)
	} else {
		rows, err = r.pool.Query(ctx, `SELECT `+optionColumns+` FROM poll_options ORDER BY order_index, id`)
	}
	if err != nil {
		return nil, translate(err, "poll option")
	}
	defer rows.Close()

	out := []entity.PollOption{}
	for rows.Next() {
		o, err := scanOption(rows)
		if err != nil {
			return nil, translate(err, "poll option")
		}
		out = append(out, *o)
	}
	return out, translate(rows.Err(), "poll option")
}

func (r *PollOptionRepository) Update(ctx context.Context, id int64, patch entity.PollOptionPatch) (*entity.PollOption, error) {
	if patch.Empty() {
		return r.GetByID(ctx, id)
	}
	var b setBuilder
	if patch.Text != nil {
		b.add("text", *patch.Text)
	}
	if patch.Description != nil {
		b.add("description", *patch.Description)
	}
	if patch.OrderIndex != nil {
		b.add("order_index", *patch.OrderIndex)
	}
	set, args, idArg := b.build(id)
	o, err := scanOption(r.pool.QueryRow(ctx, `UPDATE poll_options SET `+set+` WHERE id = `+idArg+` RETURNING `+optionColumns, args...))
	return o, translate(err, "poll option")
}

func (r *PollOptionRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM poll_options WHERE id = $1`, id)
	return translate(err, "poll option")
}

var _ repository.PollOptionRepository = (*PollOptionRepository)(nil)
