package model

import "time"

type Database struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Engine        string    `json:"engine"`
	SizeBytes     int64     `json:"size_bytes"`
	Status        string    `json:"status"`
	StatusMessage *string   `json:"status_message,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
