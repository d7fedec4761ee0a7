package request

import (
	"fmt"
	"strings"
)

// CreateDomain holds the request body for adding a domain.
type CreateDomain struct {
	Name         string `json:"name" validate:"required,min=1,max=253"`
	DocumentRoot string `json:"document_root" validate:"required,min=1,max=4096"`
	PHPVersion   string `json:"php_version" validate:"omitempty,max=16"`
}

// Validate checks the domain name beyond struct tags.
func (c *CreateDomain) Validate() error {
	if !IsValidHostname(c.Name) {
		return fmt.Errorf("domain name %q is not a valid hostname", c.Name)
	}
	return nil
}

// UpdateDomain holds the request body for updating a domain.
type UpdateDomain struct {
	DocumentRoot *string `json:"document_root" validate:"omitempty,min=1,max=4096"`
	PHPVersion   *string `json:"php_version" validate:"omitempty,max=16"`
}

// CreateSubdomain holds the request body for adding a subdomain.
type CreateSubdomain struct {
	Host         string `json:"host" validate:"required,min=1,max=63"`
	DocumentRoot string `json:"document_root" validate:"required,min=1,max=4096"`
}

// Validate checks the subdomain host is a single DNS label. Dotted hosts are
// rejected; nesting deeper belongs on the parent zone's records, and the
// underscore convention is for service records, not subdomains.
func (c *CreateSubdomain) Validate() error {
	if strings.ContainsAny(c.Host, "._") || !isValidLabel(c.Host) {
		return fmt.Errorf("subdomain host %q is not a valid DNS label", c.Host)
	}
	return nil
}

// UpdateSubdomain holds the request body for updating a subdomain.
type UpdateSubdomain struct {
	DocumentRoot string `json:"document_root" validate:"required,min=1,max=4096"`
}
