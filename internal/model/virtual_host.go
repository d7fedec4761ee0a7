package model

import "time"

// VirtualHost is a web-server vhost bound to a domain.
type VirtualHost struct {
	ID            string    `json:"id"`
	DomainID      string    `json:"domain_id"`
	ServerAliases []string  `json:"server_aliases"`
	DocumentRoot  string    `json:"document_root"`
	PHPVersion    string    `json:"php_version"`
	ModSecurity   bool      `json:"mod_security"`
	AutoSSL       bool      `json:"auto_ssl"`
	SSLStatus     string    `json:"ssl_status"`
	Status        string    `json:"status"`
	StatusMessage *string   `json:"status_message,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SSL issuance states for a vhost.
const (
	SSLNone    = "none"
	SSLPending = "pending"
	SSLIssued  = "issued"
	SSLFailed  = "failed"
)
