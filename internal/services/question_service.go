package services

import (
	"context"
	"log/slog"
	"strings"

	"expertqa/internal/metrics"
	"expertqa/internal/models"
	"expertqa/internal/utils"
	"go.opentelemetry.io/otel/attribute"
)

type QuestionService struct {
	questions QuestionStore
	users     UserStore
	logger    *slog.Logger
}

func NewQuestionService(questions QuestionStore, users UserStore, logger *slog.Logger) *QuestionService {
	return &QuestionService{questions: questions, users: users, logger: logger}
}

// ListAnswered is public.
func (s *QuestionService) ListAnswered(ctx context.Context) ([]models.QuestionDetail, error) {
	ctx, span := tracer.Start(ctx, "QuestionService.ListAnswered")
	defer span.End()

	items, err := s.questions.ListAnswered(ctx)
	if err != nil {
		return nil, translate("list answered questions", err)
	}
	return items, nil
}

// Get is public.
func (s *QuestionService) Get(ctx context.Context, id int64) (*models.QuestionDetail, error) {
	ctx, span := tracer.Start(ctx, "QuestionService.Get")
	defer span.End()

	detail, err := s.questions.GetDetail(ctx, id)
	if err != nil {
		return nil, translate("get question", err)
	}
	return detail, nil
}

func (s *QuestionService) Experts(ctx context.Context, actor *models.User) ([]models.User, error) {
	if err := Require(actor, Authenticated); err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "QuestionService.Experts")
	defer span.End()

	experts, err := s.users.ListExperts(ctx)
	if err != nil {
		return nil, translate("list experts", err)
	}
	return experts, nil
}

func (s *QuestionService) Ask(ctx context.Context, actor *models.User, text string, expertID int64) (*models.Question, error) {
	if err := Require(actor, Authenticated); err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "QuestionService.Ask")
	defer span.End()

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, utils.ErrBadRequest.WithMessage("question is required")
	}

	question, err := s.questions.Create(ctx, text, actor.ID, expertID)
	if err != nil {
		err = translate("ask question", err)
		if appErr := utils.AsAppError(err); appErr != nil && appErr.Code == utils.CodeNotFound {
			return nil, appErr.WithMessage("expert not found")
		}
		return nil, err
	}

	span.SetAttributes(attribute.Int64("question.id", question.ID), attribute.Int64("expert.id", expertID))
	metrics.RecordEvent(metrics.EventQuestionAsked)
	s.logger.Info("question asked", "question_id", question.ID, "asker_id", actor.ID, "expert_id", expertID)
	return question, nil
}

// AnswerForm loads a question for its assigned expert.
func (s *QuestionService) AnswerForm(ctx context.Context, actor *models.User, id int64) (*models.QuestionDetail, error) {
	if err := Require(actor, Authenticated, Expert); err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "QuestionService.AnswerForm")
	defer span.End()

	detail, err := s.questions.GetDetail(ctx, id)
	if err != nil {
		return nil, translate("load answer form", err)
	}
	if detail.ExpertID != actor.ID {
		return nil, utils.ErrNotAuthorized.WithMessage("question is assigned to another expert")
	}
	return detail, nil
}

// Answer records the assigned expert's answer. A question accepts exactly
// one answer; later attempts fail with ErrAlreadyAnswered.
func (s *QuestionService) Answer(ctx context.Context, actor *models.User, id int64, text string) error {
	if err := Require(actor, Authenticated, Expert); err != nil {
		return err
	}

	ctx, span := tracer.Start(ctx, "QuestionService.Answer")
	defer span.End()
	span.SetAttributes(attribute.Int64("question.id", id))

	text = strings.TrimSpace(text)
	if text == "" {
		return utils.ErrBadRequest.WithMessage("answer is required")
	}

	if err := s.questions.Answer(ctx, id, actor.ID, text); err != nil {
		return translate("answer question", err)
	}

	metrics.RecordEvent(metrics.EventAnswered)
	s.logger.Info("question answered", "question_id", id, "expert_id", actor.ID)
	return nil
}

func (s *QuestionService) Unanswered(ctx context.Context, actor *models.User) ([]models.QuestionDetail, error) {
	if err := Require(actor, Authenticated, Expert); err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "QuestionService.Unanswered")
	defer span.End()

	items, err := s.questions.ListUnanswered(ctx, actor.ID)
	if err != nil {
		return nil, translate("list unanswered questions", err)
	}
	return items, nil
}
