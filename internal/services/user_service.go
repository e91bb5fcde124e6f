package services

import (
	"context"
	"log/slog"

	"expertqa/internal/metrics"
	"expertqa/internal/models"
	"go.opentelemetry.io/otel/attribute"
)

type UserService struct {
	users  UserStore
	logger *slog.Logger
}

func NewUserService(users UserStore, logger *slog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

func (s *UserService) List(ctx context.Context, actor *models.User) ([]models.User, error) {
	if err := Require(actor, Authenticated, Admin); err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "UserService.List")
	defer span.End()

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, translate("list users", err)
	}
	return users, nil
}

func (s *UserService) Promote(ctx context.Context, actor *models.User, targetID int64) error {
	return s.setExpert(ctx, actor, targetID, true)
}

func (s *UserService) Demote(ctx context.Context, actor *models.User, targetID int64) error {
	return s.setExpert(ctx, actor, targetID, false)
}

func (s *UserService) setExpert(ctx context.Context, actor *models.User, targetID int64, expert bool) error {
	if err := Require(actor, Authenticated, Admin); err != nil {
		return err
	}

	ctx, span := tracer.Start(ctx, "UserService.SetExpert")
	defer span.End()
	span.SetAttributes(attribute.Int64("target.id", targetID), attribute.Bool("expert", expert))

	if err := s.users.SetExpert(ctx, targetID, expert); err != nil {
		return translate("set expert flag", err)
	}

	event := metrics.EventDemoted
	if expert {
		event = metrics.EventPromoted
	}
	metrics.RecordEvent(event)
	s.logger.Info("expert flag changed", "target_id", targetID, "expert", expert, "admin_id", actor.ID)
	return nil
}
