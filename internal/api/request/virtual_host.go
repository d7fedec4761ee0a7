package request

import "fmt"

// CreateVirtualHost holds the request body for creating a vhost on a domain.
type CreateVirtualHost struct {
	ServerAliases []string `json:"server_aliases" validate:"omitempty,max=32"`
	DocumentRoot  string   `json:"document_root" validate:"required,min=1,max=4096"`
	PHPVersion    string   `json:"php_version" validate:"omitempty,max=16"`
}

// Validate checks each server alias is a valid hostname.
func (c *CreateVirtualHost) Validate() error {
	for _, alias := range c.ServerAliases {
		if !IsValidHostname(alias) {
			return fmt.Errorf("server alias %q is not a valid hostname", alias)
		}
	}
	return nil
}

// UpdateVirtualHost holds the request body for updating a vhost.
type UpdateVirtualHost struct {
	ServerAliases []string `json:"server_aliases" validate:"omitempty,max=32"`
	DocumentRoot  *string  `json:"document_root" validate:"omitempty,min=1,max=4096"`
	PHPVersion    *string  `json:"php_version" validate:"omitempty,max=16"`
}

// Validate checks each server alias is a valid hostname.
func (u *UpdateVirtualHost) Validate() error {
	for _, alias := range u.ServerAliases {
		if !IsValidHostname(alias) {
			return fmt.Errorf("server alias %q is not a valid hostname", alias)
		}
	}
	return nil
}

// SetToggle carries the desired value for a boolean switch such as
// ModSecurity or AutoSSL.
type SetToggle struct {
	Enabled *bool `json:"enabled" validate:"required"`
}
