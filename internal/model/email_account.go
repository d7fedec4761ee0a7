package model

import "time"

type EmailAccount struct {
	ID           string    `json:"id"`
	DomainID     string    `json:"domain_id"`
	Address      string    `json:"address"`
	DisplayName  string    `json:"display_name"`
	PasswordHash string    `json:"-"`
	QuotaBytes   int64     `json:"quota_bytes"`
	UsedBytes    int64     `json:"used_bytes"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
