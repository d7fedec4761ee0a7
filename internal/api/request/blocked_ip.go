package request

import (
	"fmt"
	"net"
)

// CreateBlockedIP holds the request body for blocking an IP or CIDR range.
type CreateBlockedIP struct {
	CIDR   string  `json:"cidr" validate:"required,min=1,max=64"`
	Reason *string `json:"reason" validate:"omitempty,max=255"`
}

// Normalize validates the input and returns it in canonical CIDR form.
// A bare address becomes a /32 (or /128 for IPv6).
func (c *CreateBlockedIP) Normalize() (string, error) {
	if _, ipnet, err := net.ParseCIDR(c.CIDR); err == nil {
		return ipnet.String(), nil
	}
	ip := net.ParseIP(c.CIDR)
	if ip == nil {
		return "", fmt.Errorf("%q is not a valid IP address or CIDR range", c.CIDR)
	}
	if ip.To4() != nil {
		return ip.String() + "/32", nil
	}
	return ip.String() + "/128", nil
}
