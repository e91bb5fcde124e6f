package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// EnsureAdmin makes sure a user called name exists with the admin flag set.
// A missing user is created with password; an existing user keeps its
// password and only gains the flag.
func EnsureAdmin(ctx context.Context, q Querier, timeout time.Duration, name, password string, cost int) error {
	exists, err := userExists(ctx, q, timeout, name)
	if err != nil {
		return err
	}

	if exists {
		return SetAdmin(ctx, q, timeout, name, true)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	ctxInsert, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	_, err = q.Exec(ctxInsert, `
		INSERT INTO users (name, password_hash, is_admin, is_expert)
		VALUES ($1, $2, TRUE, FALSE)
		ON CONFLICT (name) DO UPDATE SET is_admin = TRUE
	`, name, string(hash))
	if err != nil {
		return fmt.Errorf("insert admin %s: %w", name, err)
	}
	return nil
}

// ErrUserMissing is returned by SetAdmin when no user has the given name.
var ErrUserMissing = errors.New("user does not exist")

func SetAdmin(ctx context.Context, q Querier, timeout time.Duration, name string, admin bool) error {
	ctxUpdate, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	tag, err := q.Exec(ctxUpdate, "UPDATE users SET is_admin = $1 WHERE name = $2", admin, name)
	if err != nil {
		return fmt.Errorf("set admin flag for %s: %w", name, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("set admin flag for %s: %w", name, ErrUserMissing)
	}
	return nil
}

func userExists(ctx context.Context, q Querier, timeout time.Duration, name string) (bool, error) {
	ctxCheck, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	row := q.QueryRow(ctxCheck, "SELECT EXISTS(SELECT 1 FROM users WHERE name = $1)", name)
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return exists, nil
}
