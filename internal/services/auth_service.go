package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"expertqa/internal/metrics"
	"expertqa/internal/models"
	"expertqa/internal/repo"
	"expertqa/internal/utils"
	"go.opentelemetry.io/otel/attribute"
)

const (
	msgIncorrectUsername = "Incorrect username"
	msgIncorrectPassword = "Incorrect password"
	msgUserExists        = "User already exists"
)

type AuthService struct {
	users  UserStore
	hasher PasswordHasher
	logger *slog.Logger
}

func NewAuthService(users UserStore, hasher PasswordHasher, logger *slog.Logger) *AuthService {
	return &AuthService{users: users, hasher: hasher, logger: logger}
}

// Register creates a plain user (neither admin nor expert). The caller
// starts a session for the returned user.
func (s *AuthService) Register(ctx context.Context, name, password string) (*models.User, error) {
	ctx, span := tracer.Start(ctx, "AuthService.Register")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" || password == "" {
		return nil, utils.ErrBadRequest.WithMessage("name and password are required")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w: %w", utils.ErrInternal, err)
	}

	user, err := s.users.Create(ctx, name, hash)
	if errors.Is(err, repo.ErrDuplicateName) {
		return nil, utils.ErrDuplicateName.WithMessage(msgUserExists)
	}
	if err != nil {
		return nil, translate("register", err)
	}

	span.SetAttributes(attribute.Int64("user.id", user.ID))
	metrics.RecordEvent(metrics.EventRegistered)
	s.logger.Info("user registered", "user_id", user.ID, "name", user.Name)
	return user, nil
}

// Login checks name and password. The two failure messages differ so the
// form can tell the user which field was wrong.
func (s *AuthService) Login(ctx context.Context, name, password string) (*models.User, error) {
	ctx, span := tracer.Start(ctx, "AuthService.Login")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" || password == "" {
		return nil, utils.ErrBadRequest.WithMessage("name and password are required")
	}

	user, err := s.users.GetByName(ctx, name)
	if errors.Is(err, repo.ErrNotFound) {
		metrics.RecordEvent(metrics.EventLoginFailed)
		return nil, utils.ErrInvalidCredentials.WithMessage(msgIncorrectUsername)
	}
	if err != nil {
		return nil, translate("login", err)
	}

	if !s.hasher.Verify(user.PasswordHash, password) {
		metrics.RecordEvent(metrics.EventLoginFailed)
		s.logger.Debug("login rejected", "name", name)
		return nil, utils.ErrInvalidCredentials.WithMessage(msgIncorrectPassword)
	}

	metrics.RecordEvent(metrics.EventLoggedIn)
	return user, nil
}
