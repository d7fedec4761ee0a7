package model

import "time"

// DatabaseUser optionally references one Database; a nil DatabaseID means
// the user exists but has not been granted on any database yet.
type DatabaseUser struct {
	ID         string    `json:"id"`
	DatabaseID *string   `json:"database_id,omitempty"`
	Username   string    `json:"username"`
	Privileges []string  `json:"privileges"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
