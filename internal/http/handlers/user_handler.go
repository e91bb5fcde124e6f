package handlers

import (
	"net/http"

	"expertqa/internal/http/middleware"
	"expertqa/internal/services"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		respondFailure(c, err)
		return
	}

	views := make([]UserView, 0, len(users))
	for _, u := range users {
		views = append(views, userToView(u))
	}
	c.JSON(http.StatusOK, UsersView{User: viewer(c), Users: views})
}

func (h *UserHandler) Promote(c *gin.Context) {
	h.setExpert(c, true)
}

func (h *UserHandler) Demote(c *gin.Context) {
	h.setExpert(c, false)
}

func (h *UserHandler) setExpert(c *gin.Context, expert bool) {
	actor := middleware.CurrentUser(c)

	// Role check first so anonymous callers are redirected even with a bad id.
	if err := services.Require(actor, services.Authenticated, services.Admin); err != nil {
		respondFailure(c, err)
		return
	}

	id, err := parseID(c, "user_id")
	if err != nil {
		respondFailure(c, err)
		return
	}

	if expert {
		err = h.users.Promote(c.Request.Context(), actor, id)
	} else {
		err = h.users.Demote(c.Request.Context(), actor, id)
	}
	if err != nil {
		respondFailure(c, err)
		return
	}
	redirect(c, pathUsers)
}
