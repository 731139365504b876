package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/votiy-api/internal/domain/entity"
	"github.com/oksasatya/votiy-api/internal/domain/repository"
)

const userColumns = `id::text, email, password_hash, first_name, last_name, phone, created_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName, &u.Phone, &u.CreatedAt); err != nil {
		return nil, err
	}
	return u, nil
}

// Create relies on users_email_key: a taken email inserts nothing and yields no row.
func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, first_name, last_name, phone)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO NOTHING
		RETURNING id::text, created_at
	`, u.Email, u.Password, u.FirstName, u.LastName, u.Phone)

	if err := row.Scan(&u.ID, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.Conflict("user already exists with this email", codeUniqueViolation)
		}
		return translate(err, "user")
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	return u, translate(err, "user")
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	return u, translate(err, "user")
}

func (r *UserRepository) List(ctx context.Context) ([]entity.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, translate(err, "user")
	}
	defer rows.Close()

	out := []entity.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, translate(err, "user")
		}
		out = append(out, *u)
	}
	return out, translate(rows.Err(), "user")
}

func (r *UserRepository) Update(ctx context.Context, id string, patch entity.UserPatch) (*entity.User, error) {
	if patch.Empty() {
		return r.GetByID(ctx, id)
	}
	var b setBuilder
	if patch.FirstName != nil {
		b.add("first_name", *patch.FirstName)
	}
	if patch.LastName != nil {
		b.add("last_name", *patch.LastName)
	}
	if patch.Phone != nil {
		b.add("phone", *patch.Phone)
	}
	set, args, idArg := b.build(id)
	u, err := scanUser(r.pool.QueryRow(ctx, `UPDATE users SET `+set+` WHERE id = `+idArg+` RETURNING `+userColumns, args...))
	return u, translate(err, "user")
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, hash string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, hash, id)
	if err != nil {
		return translate(err, "user")
	}
	if tag.RowsAffected() == 0 {
		return repository.NotFound("user")
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	return translate(err, "user")
}

func (r *UserRepository) Ping(ctx context.Context) error {
	return translate(r.pool.Ping(ctx), "database")
}

var _ repository.UserRepository = (*UserRepository)(nil)
