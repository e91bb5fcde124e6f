package handlers

import (
	"time"

	"expertqa/internal/http/middleware"
	"expertqa/internal/models"
	"github.com/gin-gonic/gin"
)

// View-models handed to the client, one per route.

type UserView struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	IsAdmin  bool   `json:"is_admin"`
	IsExpert bool   `json:"is_expert"`
}

type FormView struct {
	User  *UserView `json:"user"`
	Error string    `json:"error,omitempty"`
}

type QuestionSummary struct {
	ID           int64   `json:"id"`
	QuestionText string  `json:"question_text"`
	AskerName    string  `json:"asker_name"`
	ExpertName   string  `json:"expert_name,omitempty"`
	AnswerText   *string `json:"answer_text,omitempty"`
}

type HomeView struct {
	User      *UserView         `json:"user"`
	Questions []QuestionSummary `json:"questions"`
}

type QuestionDetailView struct {
	ID           int64      `json:"id"`
	QuestionText string     `json:"question_text"`
	AnswerText   *string    `json:"answer_text"`
	AskerName    string     `json:"asker_name"`
	ExpertName   string     `json:"expert_name"`
	AnsweredAt   *time.Time `json:"answered_at,omitempty"`
}

type QuestionView struct {
	User     *UserView          `json:"user"`
	Question QuestionDetailView `json:"question"`
}

type ExpertOption struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type AskView struct {
	User    *UserView      `json:"user"`
	Experts []ExpertOption `json:"experts"`
}

type AnswerView struct {
	User     *UserView       `json:"user"`
	Question QuestionSummary `json:"question"`
}

type UnansweredView struct {
	User      *UserView         `json:"user"`
	Questions []QuestionSummary `json:"questions"`
}

type UsersView struct {
	User  *UserView  `json:"user"`
	Users []UserView `json:"users"`
}

func viewer(c *gin.Context) *UserView {
	user := middleware.CurrentUser(c)
	if user == nil {
		return nil
	}
	v := userToView(*user)
	return &v
}

func userToView(u models.User) UserView {
	return UserView{ID: u.ID, Name: u.Name, IsAdmin: u.IsAdmin, IsExpert: u.IsExpert}
}

// summarize builds list rows. Answered rows also carry the expert and the
// answer so the home page shows each pair.
func summarize(items []models.QuestionDetail, answered bool) []QuestionSummary {
	out := make([]QuestionSummary, 0, len(items))
	for _, item := range items {
		s := QuestionSummary{ID: item.ID, QuestionText: item.QuestionText, AskerName: item.AskerName}
		if answered {
			s.ExpertName = item.ExpertName
			s.AnswerText = item.AnswerText
		}
		out = append(out, s)
	}
	return out
}

func detailToView(d models.QuestionDetail) QuestionDetailView {
	return QuestionDetailView{
		ID:           d.ID,
		QuestionText: d.QuestionText,
		AnswerText:   d.AnswerText,
		AskerName:    d.AskerName,
		ExpertName:   d.ExpertName,
		AnsweredAt:   d.AnsweredAt,
	}
}
