package domain

import (
	"errors"
	"time"
)

// ErrUserExists is returned by user stores when the username is already taken.
var ErrUserExists = errors.New("user already exists")

// Roles carried in issued tokens.
const (
	RoleUser  = "User"
	RoleAdmin = "Admin"
)

// User is an API account able to obtain tokens.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// LoginHistory records one login attempt, successful or not.
type LoginHistory struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Success   bool      `json:"success"`
	IPAddress string    `json:"ip_address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
