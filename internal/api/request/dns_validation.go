package request

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// ValidateDNSRecord validates record content, name, and priority based on the
// record type.
func ValidateDNSRecord(recordType, name, content string, priority *int) error {
	if err := validateRecordName(name); err != nil {
		return err
	}
	if err := validateRecordContent(recordType, content); err != nil {
		return err
	}
	return validateRecordPriority(recordType, priority)
}

// validateRecordName checks that the DNS record name is valid.
// Accepts "@" for zone apex, "*" or wildcard prefixes like "*.sub", and
// standard hostnames.
func validateRecordName(name string) error {
	if name == "@" || name == "*" {
		return nil
	}
	check := name
	if strings.HasPrefix(name, "*.") {
		check = name[2:]
		if check == "" {
			return fmt.Errorf("record name: wildcard must be followed by a hostname")
		}
	}
	if !IsValidHostname(check) {
		return fmt.Errorf("record name %q is not a valid DNS name", name)
	}
	return nil
}

func validateRecordContent(recordType, content string) error {
	switch recordType {
	case "A":
		ip := net.ParseIP(content)
		if ip == nil || ip.To4() == nil {
			return fmt.Errorf("A record content must be a valid IPv4 address")
		}
	case "AAAA":
		ip := net.ParseIP(content)
		if ip == nil || ip.To4() != nil {
			return fmt.Errorf("AAAA record content must be a valid IPv6 address")
		}
	case "CNAME", "NS", "PTR":
		if !IsValidHostname(content) {
			return fmt.Errorf("%s record content must be a valid hostname", recordType)
		}
	case "MX":
		if !IsValidHostname(content) {
			return fmt.Errorf("MX record content must be a valid hostname")
		}
	case "TXT":
		if content == "" {
			return fmt.Errorf("TXT record content must not be empty")
		}
		if len(content) > 4096 {
			return fmt.Errorf("TXT record content must not exceed 4096 characters")
		}
	case "SRV":
		if err := validateSRVContent(content); err != nil {
			return err
		}
	case "CAA":
		if err := validateCAAContent(content); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported record type %q", recordType)
	}
	return nil
}

// validateRecordPriority enforces priority requirements per record type.
func validateRecordPriority(recordType string, priority *int) error {
	switch recordType {
	case "MX", "SRV":
		if priority == nil {
			return fmt.Errorf("%s record requires a priority value", recordType)
		}
		if *priority < 0 || *priority > 65535 {
			return fmt.Errorf("%s record priority must be between 0 and 65535", recordType)
		}
	default:
		if priority != nil {
			return fmt.Errorf("%s record must not have a priority value", recordType)
		}
	}
	return nil
}

// IsValidHostname checks if s is a valid DNS hostname. Labels separated by
// dots, each label 1-63 chars, alphanumeric plus hyphens, no leading/trailing
// hyphens, total max 253 chars.
func IsValidHostname(s string) bool {
	if s == "" || len(s) > 253 {
		return false
	}
	// Remove trailing dot (FQDN notation).
	s = strings.TrimSuffix(s, ".")
	if s == "" {
		return false
	}
	labels := strings.Split(s, ".")
	for _, label := range labels {
		if !isValidLabel(label) {
			return false
		}
	}
	return true
}

func isValidLabel(label string) bool {
	n := len(label)
	if n == 0 || n > 63 {
		return false
	}
	if label[0] == '-' || label[n-1] == '-' {
		return false
	}
	for _, c := range label {
		if !((c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-' || c == '_') {
			return false
		}
	}
	return true
}

// validateSRVContent validates SRV record content: "{weight} {port} {target}".
func validateSRVContent(content string) error {
	parts := strings.Fields(content)
	if len(parts) != 3 {
		return fmt.Errorf("SRV record content must be in format: weight port target")
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil || w < 0 || w > 65535 {
		return fmt.Errorf("SRV record weight must be an integer between 0 and 65535")
	}
	p, err := strconv.Atoi(parts[1])
	if err != nil || p < 0 || p > 65535 {
		return fmt.Errorf("SRV record port must be an integer between 0 and 65535")
	}
	if parts[2] != "." && !IsValidHostname(parts[2]) {
		return fmt.Errorf("SRV record target must be a valid hostname")
	}
	return nil
}

// validateCAAContent validates CAA record content: '{flag} {tag} "{value}"'.
func validateCAAContent(content string) error {
	parts := strings.SplitN(content, " ", 3)
	if len(parts) < 3 {
		return fmt.Errorf("CAA record content must be in format: flag tag value")
	}
	flag, err := strconv.Atoi(parts[0])
	if err != nil || flag < 0 || flag > 255 {
		return fmt.Errorf("CAA record flag must be an integer between 0 and 255")
	}
	switch parts[1] {
	case "issue", "issuewild", "iodef":
	default:
		return fmt.Errorf("CAA record tag must be issue, issuewild, or iodef")
	}
	if strings.TrimSpace(parts[2]) == "" {
		return fmt.Errorf("CAA record value must not be empty")
	}
	return nil
}
