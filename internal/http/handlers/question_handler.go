package handlers

import (
	"net/http"

	"expertqa/internal/http/middleware"
	"expertqa/internal/services"
	"expertqa/internal/utils"
	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	questions *services.QuestionService
}

type AskForm struct {
	Question string `form:"question" binding:"required"`
	Expert   int64  `form:"expert" binding:"required"`
}

type AnswerForm struct {
	Answer string `form:"answer" binding:"required"`
}

func NewQuestionHandler(questions *services.QuestionService) *QuestionHandler {
	return &QuestionHandler{questions: questions}
}

func (h *QuestionHandler) Home(c *gin.Context) {
	items, err := h.questions.ListAnswered(c.Request.Context())
	if err != nil {
		respondFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, HomeView{User: viewer(c), Questions: summarize(items, true)})
}

func (h *QuestionHandler) Question(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondFailure(c, err)
		return
	}

	detail, err := h.questions.Get(c.Request.Context(), id)
	if err != nil {
		respondFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, QuestionView{User: viewer(c), Question: detailToView(*detail)})
}

func (h *QuestionHandler) AskForm(c *gin.Context) {
	experts, err := h.questions.Experts(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		respondFailure(c, err)
		return
	}

	options := make([]ExpertOption, 0, len(experts))
	for _, e := range experts {
		options = append(options, ExpertOption{ID: e.ID, Name: e.Name})
	}
	c.JSON(http.StatusOK, AskView{User: viewer(c), Experts: options})
}

func (h *QuestionHandler) Ask(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if err := services.Require(actor, services.Authenticated); err != nil {
		respondFailure(c, err)
		return
	}

	var form AskForm
	if err := c.ShouldBind(&form); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	if _, err := h.questions.Ask(c.Request.Context(), actor, form.Question, form.Expert); err != nil {
		respondFailure(c, err)
		return
	}
	redirect(c, pathHome)
}

func (h *QuestionHandler) AnswerForm(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if err := services.Require(actor, services.Authenticated, services.Expert); err != nil {
		respondFailure(c, err)
		return
	}

	id, err := parseID(c, "id")
	if err != nil {
		respondFailure(c, err)
		return
	}

	detail, err := h.questions.AnswerForm(c.Request.Context(), actor, id)
	if err != nil {
		respondFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, AnswerView{
		User: viewer(c),
		Question: QuestionSummary{
			ID:           detail.ID,
			QuestionText: detail.QuestionText,
			AskerName:    detail.AskerName,
		},
	})
}

func (h *QuestionHandler) Answer(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if err := services.Require(actor, services.Authenticated, services.Expert); err != nil {
		respondFailure(c, err)
		return
	}

	id, err := parseID(c, "id")
	if err != nil {
		respondFailure(c, err)
		return
	}

	var form AnswerForm
	if err := c.ShouldBind(&form); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	if err := h.questions.Answer(c.Request.Context(), actor, id, form.Answer); err != nil {
		respondFailure(c, err)
		return
	}
	redirect(c, pathUnanswered)
}

func (h *QuestionHandler) Unanswered(c *gin.Context) {
	items, err := h.questions.Unanswered(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		respondFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, UnansweredView{User: viewer(c), Questions: summarize(items, false)})
}
