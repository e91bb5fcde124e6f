package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"expertqa/internal/db"
	"expertqa/internal/models"
	"github.com/jackc/pgx/v5"
)

const userColumns = "id, name, password_hash, is_admin, is_expert, created_at"

type UserRepo struct {
	pool    db.Querier
	timeout time.Duration
}

func NewUserRepo(pool db.Querier, timeout time.Duration) *UserRepo {
	return &UserRepo{pool: pool, timeout: timeout}
}

func (r *UserRepo) GetByName(ctx context.Context, name string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	q, err := db.QuerierFrom(ctx, r.pool)
	if err != nil {
		return nil, err
	}

	row := q.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE name = $1", name)
	user, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("get user by name: %w", err)
	}
	return user, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	q, err := db.QuerierFrom(ctx, r.pool)
	if err != nil {
		return nil, err
	}

	row := q.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
	user, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return user, nil
}

// Create inserts a plain user. The unique index on name decides races, so a
// concurrent registration of the same name yields ErrDuplicateName.
func (r *UserRepo) Create(ctx context.Context, name, passwordHash string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	q, err := db.QuerierFrom(ctx, r.pool)
	if err != nil {
		return nil, err
	}

	row := q.QueryRow(ctx, `
		INSERT INTO users (name, password_hash, is_admin, is_expert)
		VALUES ($1, $2, FALSE, FALSE)
		ON CONFLICT (name) DO NOTHING
		RETURNING `+userColumns,
		name, passwordHash,
	)
	user, err := scanUser(row)
	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("insert user %q: %w", name, ErrDuplicateName)
	}
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

func (r *UserRepo) List(ctx context.Context) ([]models.User, error) {
	return r.list(ctx, "SELECT "+userColumns+" FROM users ORDER BY id")
}

func (r *UserRepo) ListExperts(ctx context.Context) ([]models.User, error) {
	return r.list(ctx, "SELECT "+userColumns+" FROM users WHERE is_expert ORDER BY name")
}

func (r *UserRepo) SetExpert(ctx context.Context, id int64, expert bool) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	q, err := db.QuerierFrom(ctx, r.pool)
	if err != nil {
		return err
	}

	tag, err := q.Exec(ctx, "UPDATE users SET is_expert = $1 WHERE id = $2", expert, id)
	if err != nil {
		return fmt.Errorf("set expert flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("set expert flag for user %d: %w", id, ErrNotFound)
	}
	return nil
}

func (r *UserRepo) list(ctx context.Context, query string, args ...any) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	q, err := db.QuerierFrom(ctx, r.pool)
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

func scanUser(row scanner) (*models.User, error) {
	var user models.User
	if err := row.Scan(
		&user.ID,
		&user.Name,
		&user.PasswordHash,
		&user.IsAdmin,
		&user.IsExpert,
		&user.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
