package model

import "time"

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
	RoleClient   = "client"
)

type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"` // admin / employee / client
	CreatedAt    time.Time `json:"created_at"`
}

// UserRef is the short projection embedded in other payloads.
type UserRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
