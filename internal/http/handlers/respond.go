package handlers

import (
	"net/http"
	"strconv"

	"expertqa/internal/utils"
	"github.com/gin-gonic/gin"
)

const (
	pathHome       = "/"
	pathLogin      = "/login"
	pathUsers      = "/users"
	pathUnanswered = "/unanswered"
)

func redirect(c *gin.Context, path string) {
	c.Redirect(http.StatusFound, path)
}

// respondFailure turns refused capabilities into redirects and everything
// else into a JSON error. Internal and unknown errors are attached for the
// request log.
func respondFailure(c *gin.Context, err error) {
	appErr := utils.AsAppError(err)
	if appErr == nil {
		_ = c.Error(err)
		utils.RespondError(c, err)
		return
	}

	switch appErr.Code {
	case utils.CodeInternal:
		_ = c.Error(err)
		utils.RespondError(c, appErr)
	case utils.CodeNotAuthenticated:
		redirect(c, pathLogin)
	case utils.CodeNotAuthorized:
		redirect(c, pathHome)
	default:
		utils.RespondError(c, appErr)
	}
}

func parseID(c *gin.Context, param string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		return 0, utils.ErrBadRequest.WithMessage("invalid " + param)
	}
	return id, nil
}
