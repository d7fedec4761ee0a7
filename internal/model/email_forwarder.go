package model

import "time"

type EmailForwarder struct {
	ID             string    `json:"id"`
	EmailAccountID string    `json:"email_account_id"`
	Destination    string    `json:"destination"`
	KeepCopy       bool      `json:"keep_copy"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
