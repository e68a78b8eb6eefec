package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid reports whether the domain part of the address
// resolves to a host that could receive mail. The address is normalized
// first so the probe matches what registration stores.
func IsEmailDomainValid(email string) bool {
	domain, ok := EmailDomain(email)
	if !ok {
		return false
	}

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}

// EmailDomain extracts the lowercased domain part of an address. A
// trailing root dot is stripped so "user@example.com." resolves the same
// as "user@example.com".
func EmailDomain(email string) (string, bool) {
	email = strings.ToLower(strings.TrimSpace(email))

	at := strings.LastIndex(email, "@")
	if at < 1 || at == len(email)-1 {
		return "", false
	}

	domain := strings.TrimSuffix(email[at+1:], ".")
	if domain == "" || strings.ContainsAny(domain, " \t") {
		return "", false
	}

	return domain, true
}
