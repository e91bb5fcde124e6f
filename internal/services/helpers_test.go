package services

import (
	"io"
	"log/slog"
	"testing"

	"expertqa/internal/models"
	"expertqa/internal/testutil"
	"expertqa/internal/utils"
	"github.com/stretchr/testify/assert"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixture struct {
	store     *testutil.Store
	auth      *AuthService
	questions *QuestionService
	users     *UserService
	identity  *IdentityResolver
}

func newFixture() *fixture {
	store := testutil.NewStore()
	logger := discardLogger()
	return &fixture{
		store:     store,
		auth:      NewAuthService(store.Users(), testutil.PlainHasher{}, logger),
		questions: NewQuestionService(store.Questions(), store.Users(), logger),
		users:     NewUserService(store.Users(), logger),
		identity:  NewIdentityResolver(store.Users()),
	}
}

func (f *fixture) user(name string, admin, expert bool) *models.User {
	u := f.store.AddUser(name, "plain$pw", admin, expert)
	return &u
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	appErr := utils.AsAppError(err)
	if assert.NotNil(t, appErr, "expected AppError, got %v", err) {
		assert.Equal(t, code, appErr.Code)
	}
}
