package services

import (
	"expertqa/internal/models"
	"expertqa/internal/utils"
)

// Capability decides whether the resolved user may run an operation.
// A nil user is anonymous.
type Capability func(user *models.User) error

func Authenticated(user *models.User) error {
	if user == nil {
		return utils.ErrNotAuthenticated
	}
	return nil
}

func Expert(user *models.User) error {
	if user == nil {
		return utils.ErrNotAuthenticated
	}
	if !user.IsExpert {
		return utils.ErrNotAuthorized.WithMessage("experts only")
	}
	return nil
}

func Admin(user *models.User) error {
	if user == nil {
		return utils.ErrNotAuthenticated
	}
	if !user.IsAdmin {
		return utils.ErrNotAuthorized.WithMessage("admins only")
	}
	return nil
}

// Require runs caps in order and returns the first refusal.
func Require(user *models.User, caps ...Capability) error {
	for _, capability := range caps {
		if err := capability(user); err != nil {
			return err
		}
	}
	return nil
}
