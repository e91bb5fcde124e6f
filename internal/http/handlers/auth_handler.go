package handlers

import (
	"net/http"

	"expertqa/internal/services"
	"expertqa/internal/session"
	"expertqa/internal/utils"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth     *services.AuthService
	sessions session.Store
}

type CredentialsForm struct {
	Name     string `form:"name" binding:"required"`
	Password string `form:"password" binding:"required"`
}

func NewAuthHandler(auth *services.AuthService, sessions session.Store) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions}
}

func (h *AuthHandler) LoginForm(c *gin.Context) {
	c.JSON(http.StatusOK, FormView{User: viewer(c)})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var form CredentialsForm
	if err := c.ShouldBind(&form); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	user, err := h.auth.Login(c.Request.Context(), form.Name, form.Password)
	if err != nil {
		h.formFailure(c, err, utils.CodeInvalidCredentials)
		return
	}

	if err := h.sessions.Set(c, user.Name); err != nil {
		respondFailure(c, err)
		return
	}
	redirect(c, pathHome)
}

func (h *AuthHandler) RegisterForm(c *gin.Context) {
	c.JSON(http.StatusOK, FormView{User: viewer(c)})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var form CredentialsForm
	if err := c.ShouldBind(&form); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	user, err := h.auth.Register(c.Request.Context(), form.Name, form.Password)
	if err != nil {
		h.formFailure(c, err, utils.CodeDuplicateName)
		return
	}

	if err := h.sessions.Set(c, user.Name); err != nil {
		respondFailure(c, err)
		return
	}
	redirect(c, pathHome)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.sessions.Clear(c); err != nil {
		respondFailure(c, err)
		return
	}
	redirect(c, pathHome)
}

// formFailure re-renders the form when the error is the one the form
// expects, carrying the message for display.
func (h *AuthHandler) formFailure(c *gin.Context, err error, formCode string) {
	appErr := utils.AsAppError(err)
	if appErr == nil || appErr.Code != formCode {
		respondFailure(c, err)
		return
	}
	c.JSON(appErr.Status, FormView{User: viewer(c), Error: appErr.Message})
}
