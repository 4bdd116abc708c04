package webpush

import (
	"errors"
	"net"
	"net/url"
	"strings"
)

// trustedDomains are the known push service providers. An endpoint host
// must equal one of these exactly or be a dot-separated subdomain of it.
var trustedDomains = []string{
	"fcm.googleapis.com",                // Google FCM
	"updates.push.services.mozilla.com", // Mozilla autopush
	"notify.windows.com",                // Microsoft WNS
}

// internalSuffixes are hostname suffixes that point inside a private
// network rather than at a public push service.
var internalSuffixes = []string{".local", ".internal", ".lan"}

// Validation errors, one per rule so the caller can tell the user
// exactly why an endpoint was rejected.
var (
	ErrMalformedURL    = errors.New("endpoint is not a valid absolute URL")
	ErrInsecureScheme  = errors.New("endpoint must use the https scheme")
	ErrUntrustedDomain = errors.New("endpoint host is not a known push service domain")
	ErrMissingPath     = errors.New("endpoint is missing a subscription path")
	ErrInternalAddress = errors.New("endpoint points at an internal address")
)

// ValidateEndpoint checks a push subscription endpoint against the trust
// policy. Rules run in a fixed order and the first failure is returned,
// so a rejected endpoint always carries the most specific reason.
// An endpoint that passes is well-formed, https, on a known provider
// domain, carries a per-subscription path and is provably external.
func ValidateEndpoint(endpoint string) error {
	u, err := url.Parse(endpoint)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return ErrMalformedURL
	}

	if u.Scheme != "https" {
		return ErrInsecureScheme
	}

	host := strings.ToLower(u.Hostname())
	if !isTrustedHost(host) {
		return ErrUntrustedDomain
	}

	if strings.Trim(u.Path, "/") == "" {
		return ErrMissingPath
	}

	if isInternalHost(host) {
		return ErrInternalAddress
	}

	return nil
}

// isTrustedHost matches on exact equality or a "."-prefixed suffix.
// Plain suffix matching would let "evilfcm.googleapis.com" impersonate
// "fcm.googleapis.com".
func isTrustedHost(host string) bool {
	for _, domain := range trustedDomains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

func isInternalHost(host string) bool {
	if ip := net.ParseIP(host); ip != nil {
		return ip.IsLoopback() ||
			ip.IsPrivate() ||
			ip.IsLinkLocalUnicast() ||
			ip.IsLinkLocalMulticast() ||
			ip.IsUnspecified()
	}

	if host == "localhost" {
		return true
	}
	for _, suffix := range internalSuffixes {
		if strings.HasSuffix(host, suffix) {
			return true
		}
	}
	return false
}
