package services

import (
	"testing"

	"expertqa/internal/models"
	"expertqa/internal/utils"
	"github.com/stretchr/testify/assert"
)

func TestRequire(t *testing.T) {
	plain := &models.User{ID: 1, Name: "carol"}
	expert := &models.User{ID: 2, Name: "bob", IsExpert: true}
	admin := &models.User{ID: 3, Name: "root", IsAdmin: true}

	tests := []struct {
		name string
		user *models.User
		caps []Capability
		want error
	}{
		{"anonymous needs login", nil, []Capability{Authenticated}, utils.ErrNotAuthenticated},
		{"anonymous expert route", nil, []Capability{Authenticated, Expert}, utils.ErrNotAuthenticated},
		{"anonymous admin route", nil, []Capability{Authenticated, Admin}, utils.ErrNotAuthenticated},
		{"plain user authenticated", plain, []Capability{Authenticated}, nil},
		{"plain user not expert", plain, []Capability{Authenticated, Expert}, utils.ErrNotAuthorized},
		{"plain user not admin", plain, []Capability{Authenticated, Admin}, utils.ErrNotAuthorized},
		{"expert passes", expert, []Capability{Authenticated, Expert}, nil},
		{"expert is not admin", expert, []Capability{Authenticated, Admin}, utils.ErrNotAuthorized},
		{"admin is not expert", admin, []Capability{Authenticated, Expert}, utils.ErrNotAuthorized},
		{"admin passes", admin, []Capability{Authenticated, Admin}, nil},
		{"no capabilities", nil, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Require(tt.user, tt.caps...)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
