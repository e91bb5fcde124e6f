package services

import (
	"context"
	"errors"

	"expertqa/internal/models"
	"expertqa/internal/repo"
)

type IdentityResolver struct {
	users UserStore
}

func NewIdentityResolver(users UserStore) *IdentityResolver {
	return &IdentityResolver{users: users}
}

// Resolve maps a session username to its user. An empty name or a name
// with no matching row resolves to anonymous (nil, nil); the caller keeps
// the session as it is.
func (r *IdentityResolver) Resolve(ctx context.Context, name string) (*models.User, error) {
	if name == "" {
		return nil, nil
	}

	user, err := r.users.GetByName(ctx, name)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, translate("resolve session user", err)
	}
	return user, nil
}
