package models

import "time"

type Question struct {
	ID           int64      `json:"id"`
	QuestionText string     `json:"question_text"`
	AskerID      int64      `json:"asker_id"`
	ExpertID     int64      `json:"expert_id"`
	AnswerText   *string    `json:"answer_text,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	AnsweredAt   *time.Time `json:"answered_at,omitempty"`
}

// Answered reports whether the assigned expert has answered.
func (q Question) Answered() bool {
	return q.AnswerText != nil
}

// QuestionDetail is a question joined to the names of its asker and expert.
type QuestionDetail struct {
	Question
	AskerName  string `json:"asker_name"`
	ExpertName string `json:"expert_name"`
}
