package model

import "time"

// Subdomain is a host label under a domain, served from its own directory.
type Subdomain struct {
	ID           string    `json:"id"`
	DomainID     string    `json:"domain_id"`
	Host         string    `json:"host"`
	DocumentRoot string    `json:"document_root"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
