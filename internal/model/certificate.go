package model

import "time"

type Certificate struct {
	ID        string     `json:"id"`
	DomainID  string     `json:"domain_id"`
	Type      string     `json:"type"`
	CertPEM   string     `json:"cert_pem,omitempty"`
	KeyPEM    string     `json:"key_pem,omitempty"`
	ChainPEM  string     `json:"chain_pem,omitempty"`
	Subject   string     `json:"subject"`
	Issuer    string     `json:"issuer"`
	NotBefore *time.Time `json:"not_before,omitempty"`
	NotAfter  *time.Time `json:"not_after,omitempty"`
	Status    string     `json:"status"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

const (
	CertTypeAutoSSL = "autossl"
	CertTypeCustom  = "custom"
)
