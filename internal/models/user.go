package models

import "time"

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	IsExpert     bool      `json:"is_expert"`
	CreatedAt    time.Time `json:"created_at"`
}
