package model

import "time"

// Autoresponder is the singleton auto-reply configuration for an email account.
type Autoresponder struct {
	ID             string     `json:"id"`
	EmailAccountID string     `json:"email_account_id"`
	Subject        string     `json:"subject"`
	Body           string     `json:"body"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	Enabled        bool       `json:"enabled"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
