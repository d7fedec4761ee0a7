package model

import "time"

// User roles.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is a panel account. PasswordHash and TOTPSecret never leave the server.
type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	DisplayName   *string   `json:"display_name,omitempty"`
	Role          string    `json:"role"`
	Status        string    `json:"status"`
	TwoFAEnabled  bool      `json:"two_fa_enabled"`
	TOTPSecret    *string   `json:"-"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
