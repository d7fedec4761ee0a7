package model

import "time"

type Domain struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	DocumentRoot  string    `json:"document_root"`
	PHPVersion    string    `json:"php_version"`
	Status        string    `json:"status"`
	StatusMessage *string   `json:"status_message,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
