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

const questionColumns = "id, question_text, asker_id, expert_id, answer_text, created_at, answered_at"

const detailQuery = `
	SELECT q.id, q.question_text, q.asker_id, q.expert_id, q.answer_text, q.created_at, q.answered_at,
	askers.name, experts.name
	FROM questions q
	JOIN users AS askers ON askers.id = q.asker_id
	JOIN users AS experts ON experts.id = q.expert_id
`

type QuestionRepo struct {
	pool    db.Querier
	timeout time.Duration
}

func NewQuestionRepo(pool db.Querier, timeout time.Duration) *QuestionRepo {
	return &QuestionRepo{pool: pool, timeout: timeout}
}

// Create stores an unanswered question. The insert selects the expert row
// with is_expert set, so a target that is not an expert at this moment
// inserts nothing and yields ErrNotFound.
func (r *QuestionRepo) Create(ctx context.Context, text string, askerID, expertID int64) (*models.Question, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	q, err := db.QuerierFrom(ctx, r.pool)
	if err != nil {
		return nil, err
	}

	row := q.QueryRow(ctx, `
		INSERT INTO questions (question_text, asker_id, expert_id)
		SELECT $1, $2, u.id FROM users u WHERE u.id = $3 AND u.is_expert
		RETURNING `+questionColumns,
		text, askerID, expertID,
	)

	var question models.Question
	if err := row.Scan(
		&question.ID,
		&question.QuestionText,
		&question.AskerID,
		&question.ExpertID,
		&question.AnswerText,
		&question.CreatedAt,
		&question.AnsweredAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("insert question for expert %d: %w", expertID, ErrNotFound)
		}
		return nil, fmt.Errorf("insert question: %w", err)
	}
	return &question, nil
}

func (r *QuestionRepo) GetDetail(ctx context.Context, id int64) (*models.QuestionDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	q, err := db.QuerierFrom(ctx, r.pool)
	if err != nil {
		return nil, err
	}

	row := q.QueryRow(ctx, detailQuery+" WHERE q.id = $1", id)
	detail, err := scanDetail(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("get question %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get question: %w", err)
	}
	return detail, nil
}

func (r *QuestionRepo) ListAnswered(ctx context.Context) ([]models.QuestionDetail, error) {
	return r.listDetails(ctx, detailQuery+`
		WHERE q.answer_text IS NOT NULL
		ORDER BY q.answered_at DESC, q.id DESC`)
}

func (r *QuestionRepo) ListUnanswered(ctx context.Context, expertID int64) ([]models.QuestionDetail, error) {
	return r.listDetails(ctx, detailQuery+`
		WHERE q.expert_id = $1 AND q.answer_text IS NULL
		ORDER BY q.id`, expertID)
}

// Answer sets answer_text once. The guarded update is the whole transition;
// the follow-up read only runs to explain a refusal.
func (r *QuestionRepo) Answer(ctx context.Context, id, expertID int64, text string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	q, err := db.QuerierFrom(ctx, r.pool)
	if err != nil {
		return err
	}

	tag, err := q.Exec(ctx, `
		UPDATE questions
		SET answer_text = $1, answered_at = NOW()
		WHERE id = $2 AND expert_id = $3 AND answer_text IS NULL
	`, text, id, expertID)
	if err != nil {
		return fmt.Errorf("answer question: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var assigned int64
	var answered bool
	err = q.QueryRow(ctx, "SELECT expert_id, answer_text IS NOT NULL FROM questions WHERE id = $1", id).
		Scan(&assigned, &answered)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return fmt.Errorf("answer question %d: %w", id, ErrNotFound)
	case err != nil:
		return fmt.Errorf("inspect question: %w", err)
	case assigned != expertID:
		return fmt.Errorf("answer question %d: %w", id, ErrNotAssigned)
	case answered:
		return fmt.Errorf("answer question %d: %w", id, ErrAlreadyAnswered)
	default:
		return fmt.Errorf("answer question %d: no rows updated", id)
	}
}

func (r *QuestionRepo) listDetails(ctx context.Context, query string, args ...any) ([]models.QuestionDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	q, err := db.QuerierFrom(ctx, r.pool)
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	details := []models.QuestionDetail{}
	for rows.Next() {
		detail, err := scanDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		details = append(details, *detail)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}
	return details, nil
}

func scanDetail(row scanner) (*models.QuestionDetail, error) {
	var d models.QuestionDetail
	if err := row.Scan(
		&d.ID,
		&d.QuestionText,
		&d.AskerID,
		&d.ExpertID,
		&d.AnswerText,
		&d.CreatedAt,
		&d.AnsweredAt,
		&d.AskerName,
		&d.ExpertName,
	); err != nil {
		return nil, err
	}
	return &d, nil
}
