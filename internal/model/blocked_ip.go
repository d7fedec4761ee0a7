package model

import "time"

// BlockedIP is a firewall deny entry, either a single address or a CIDR range.
type BlockedIP struct {
	ID        string    `json:"id"`
	CIDR      string    `json:"cidr"`
	Reason    *string   `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
