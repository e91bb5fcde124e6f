package repo

import "errors"

var (
	ErrNotFound        = errors.New("record not found")
	ErrDuplicateName   = errors.New("name already taken")
	ErrAlreadyAnswered = errors.New("question already answered")
	ErrNotAssigned     = errors.New("question assigned to another expert")
)

type scanner interface {
	Scan(dest ...any) error
}
