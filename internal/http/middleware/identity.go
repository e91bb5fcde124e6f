package middleware

import (
	"context"

	"expertqa/internal/models"
	"expertqa/internal/session"
	"expertqa/internal/utils"
	"github.com/gin-gonic/gin"
)

const currentUserKey = "current_user"

type Resolver interface {
	Resolve(ctx context.Context, name string) (*models.User, error)
}

// Identity resolves the session username to the current user. A session
// naming a user that no longer exists leaves the request anonymous and the
// cookie untouched.
func Identity(store session.Store, resolver Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		name, err := store.Get(c)
		if err != nil {
			_ = c.Error(err)
			utils.RespondError(c, err)
			c.Abort()
			return
		}

		user, err := resolver.Resolve(c.Request.Context(), name)
		if err != nil {
			_ = c.Error(err)
			utils.RespondError(c, err)
			c.Abort()
			return
		}

		if user != nil {
			c.Set(currentUserKey, user)
		}
		c.Next()
	}
}

// CurrentUser returns nil for anonymous requests.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}
