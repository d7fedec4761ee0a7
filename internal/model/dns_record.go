package model

import "time"

type DNSRecord struct {
	ID        string    `json:"id"`
	DomainID  string    `json:"domain_id"`
	Type      string    `json:"type"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	TTL       int       `json:"ttl"`
	Priority  *int      `json:"priority,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
