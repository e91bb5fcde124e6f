// Package testutil holds in-memory stand-ins for the Postgres repositories.
// They follow the same sentinel contract as package repo.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"expertqa/internal/models"
	"expertqa/internal/repo"
)

type Store struct {
	mu        sync.Mutex
	users     []models.User
	questions []models.Question
}

func NewStore() *Store {
	return &Store{}
}

// Users and Questions are views over one Store so question joins can see
// user names.
func (s *Store) Users() *UserStore         { return &UserStore{s} }
func (s *Store) Questions() *QuestionStore { return &QuestionStore{s} }

// AddUser inserts a user directly, bypassing registration.
func (s *Store) AddUser(name, passwordHash string, admin, expert bool) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addUserLocked(name, passwordHash, admin, expert)
}

func (s *Store) addUserLocked(name, passwordHash string, admin, expert bool) models.User {
	user := models.User{
		ID:           int64(len(s.users) + 1),
		Name:         name,
		PasswordHash: passwordHash,
		IsAdmin:      admin,
		IsExpert:     expert,
		CreatedAt:    time.Now(),
	}
	s.users = append(s.users, user)
	return user
}

// CountUsersNamed reports how many rows carry name.
func (s *Store) CountUsersNamed(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, u := range s.users {
		if u.Name == name {
			n++
		}
	}
	return n
}

// Question returns a copy of the stored row.
func (s *Store) Question(id int64) (models.Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, q := range s.questions {
		if q.ID == id {
			return q, true
		}
	}
	return models.Question{}, false
}

func (s *Store) userByID(id int64) (*models.User, int) {
	for i := range s.users {
		if s.users[i].ID == id {
			return &s.users[i], i
		}
	}
	return nil, -1
}

func (s *Store) detail(q models.Question) models.QuestionDetail {
	d := models.QuestionDetail{Question: q}
	if u, _ := s.userByID(q.AskerID); u != nil {
		d.AskerName = u.Name
	}
	if u, _ := s.userByID(q.ExpertID); u != nil {
		d.ExpertName = u.Name
	}
	return d
}

type UserStore struct{ s *Store }

func (u *UserStore) GetByName(_ context.Context, name string) (*models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	for _, user := range u.s.users {
		if user.Name == name {
			out := user
			return &out, nil
		}
	}
	return nil, fmt.Errorf("get user by name: %w", repo.ErrNotFound)
}

func (u *UserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	if user, _ := u.s.userByID(id); user != nil {
		out := *user
		return &out, nil
	}
	return nil, fmt.Errorf("get user by id: %w", repo.ErrNotFound)
}

func (u *UserStore) Create(_ context.Context, name, passwordHash string) (*models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	for _, user := range u.s.users {
		if user.Name == name {
			return nil, fmt.Errorf("insert user %q: %w", name, repo.ErrDuplicateName)
		}
	}

	user := u.s.addUserLocked(name, passwordHash, false, false)
	return &user, nil
}

func (u *UserStore) List(_ context.Context) ([]models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	out := make([]models.User, len(u.s.users))
	copy(out, u.s.users)
	return out, nil
}

func (u *UserStore) ListExperts(_ context.Context) ([]models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	out := []models.User{}
	for _, user := range u.s.users {
		if user.IsExpert {
			out = append(out, user)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (u *UserStore) SetExpert(_ context.Context, id int64, expert bool) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	user, _ := u.s.userByID(id)
	if user == nil {
		return fmt.Errorf("set expert flag for user %d: %w", id, repo.ErrNotFound)
	}
	user.IsExpert = expert
	return nil
}

type QuestionStore struct{ s *Store }

func (q *QuestionStore) Create(_ context.Context, text string, askerID, expertID int64) (*models.Question, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()

	expert, _ := q.s.userByID(expertID)
	if expert == nil || !expert.IsExpert {
		return nil, fmt.Errorf("insert question for expert %d: %w", expertID, repo.ErrNotFound)
	}

	question := models.Question{
		ID:           int64(len(q.s.questions) + 1),
		QuestionText: text,
		AskerID:      askerID,
		ExpertID:     expertID,
		CreatedAt:    time.Now(),
	}
	q.s.questions = append(q.s.questions, question)
	return &question, nil
}

func (q *QuestionStore) GetDetail(_ context.Context, id int64) (*models.QuestionDetail, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()

	for _, question := range q.s.questions {
		if question.ID == id {
			d := q.s.detail(question)
			return &d, nil
		}
	}
	return nil, fmt.Errorf("get question %d: %w", id, repo.ErrNotFound)
}

func (q *QuestionStore) ListAnswered(_ context.Context) ([]models.QuestionDetail, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()

	out := []models.QuestionDetail{}
	for _, question := range q.s.questions {
		if question.AnswerText != nil {
			out = append(out, q.s.detail(question))
		}
	}
	return out, nil
}

func (q *QuestionStore) ListUnanswered(_ context.Context, expertID int64) ([]models.QuestionDetail, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()

	out := []models.QuestionDetail{}
	for _, question := range q.s.questions {
		if question.ExpertID == expertID && question.AnswerText == nil {
			out = append(out, q.s.detail(question))
		}
	}
	return out, nil
}

func (q *QuestionStore) Answer(_ context.Context, id, expertID int64, text string) error {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()

	for i := range q.s.questions {
		question := &q.s.questions[i]
		if question.ID != id {
			continue
		}
		if question.ExpertID != expertID {
			return fmt.Errorf("answer question %d: %w", id, repo.ErrNotAssigned)
		}
		if question.AnswerText != nil {
			return fmt.Errorf("answer question %d: %w", id, repo.ErrAlreadyAnswered)
		}
		now := time.Now()
		answer := text
		question.AnswerText = &answer
		question.AnsweredAt = &now
		return nil
	}
	return fmt.Errorf("answer question %d: %w", id, repo.ErrNotFound)
}

// PlainHasher stores passwords with a visible prefix. Tests only.
type PlainHasher struct{}

func (PlainHasher) Hash(plain string) (string, error) { return "plain$" + plain, nil }

func (PlainHasher) Verify(hash, plain string) bool { return hash == "plain$"+plain }
