package services

import (
	"context"
	"errors"
	"fmt"

	"expertqa/internal/models"
	"expertqa/internal/repo"
	"expertqa/internal/utils"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("expertqa/services")

// UserStore is satisfied by *repo.UserRepo.
type UserStore interface {
	GetByName(ctx context.Context, name string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	Create(ctx context.Context, name, passwordHash string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	ListExperts(ctx context.Context) ([]models.User, error)
	SetExpert(ctx context.Context, id int64, expert bool) error
}

// QuestionStore is satisfied by *repo.QuestionRepo.
type QuestionStore interface {
	Create(ctx context.Context, text string, askerID, expertID int64) (*models.Question, error)
	GetDetail(ctx context.Context, id int64) (*models.QuestionDetail, error)
	ListAnswered(ctx context.Context) ([]models.QuestionDetail, error)
	ListUnanswered(ctx context.Context, expertID int64) ([]models.QuestionDetail, error)
	Answer(ctx context.Context, id, expertID int64, text string) error
}

var (
	_ UserStore     = (*repo.UserRepo)(nil)
	_ QuestionStore = (*repo.QuestionRepo)(nil)
)

// translate maps repository sentinels onto the application error kinds.
// Anything else is wrapped and left for the handler to report as internal.
func translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repo.ErrNotFound):
		return utils.ErrNotFound
	case errors.Is(err, repo.ErrDuplicateName):
		return utils.ErrDuplicateName
	case errors.Is(err, repo.ErrAlreadyAnswered):
		return utils.ErrAlreadyAnswered
	case errors.Is(err, repo.ErrNotAssigned):
		return utils.ErrNotAuthorized.WithMessage("question is assigned to another expert")
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
