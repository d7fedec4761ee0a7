package request

// CreateDNSRecord holds the request body for adding a DNS record to a domain.
type CreateDNSRecord struct {
	Type     string `json:"type" validate:"required,oneof=A AAAA CNAME MX TXT SRV CAA NS PTR"`
	Name     string `json:"name" validate:"required,min=1,max=253"`
	Content  string `json:"content" validate:"required,min=1,max=4096"`
	TTL      int    `json:"ttl" validate:"omitempty,min=60,max=604800"`
	Priority *int   `json:"priority"`
}

// UpdateDNSRecord holds the request body for updating a DNS record.
// The record type is immutable; delete and recreate to change it.
type UpdateDNSRecord struct {
	Name     string `json:"name" validate:"required,min=1,max=253"`
	Content  string `json:"content" validate:"required,min=1,max=4096"`
	TTL      int    `json:"ttl" validate:"omitempty,min=60,max=604800"`
	Priority *int   `json:"priority"`
}
