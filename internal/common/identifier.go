package common

import (
	"errors"
	"regexp"
	"slices"
	"strings"
)

// ErrReservedSubdomain is returned when a space requests a reserved subdomain
var ErrReservedSubdomain = errors.New("subdomain is reserved")

// ErrInvalidIdentifier is returned for malformed content type or field identifiers
var ErrInvalidIdentifier = errors.New("invalid identifier format")

// ErrInvalidLocale is returned for malformed locale codes
var ErrInvalidLocale = errors.New("invalid locale code")

// Subdomains that cannot be claimed by spaces
var reservedSubdomains = []string{
	"www",
	"api",
	"admin",
	"app",
	"cdn",
	"static",
	"assets",
	"mail",
	"status",
}

// Subdomain: lowercase DNS label, 2-63 chars, no leading/trailing hyphen
var subdomainPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])$`)

// Content type and field identifiers: letter first, then letters/digits/underscore
var identifierPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]{0,63}$`)

// Locale codes: language or language-REGION (en, en-US, ko-KR)
var localePattern = regexp.MustCompile(`^[a-z]{2,3}(-[A-Z]{2})?$`)

// ValidateSubdomain validates a space subdomain
// Returns error if the subdomain is malformed or reserved
func ValidateSubdomain(subdomain string) error {
	s := strings.ToLower(strings.TrimSpace(subdomain))
	if !subdomainPattern.MatchString(s) {
		return ErrInvalidSubdomain
	}
	if slices.Contains(reservedSubdomains, s) {
		return ErrReservedSubdomain
	}
	return nil
}

// IsReservedSubdomain checks if a subdomain is on the reserved list
func IsReservedSubdomain(subdomain string) bool {
	return slices.Contains(reservedSubdomains, strings.ToLower(subdomain))
}

// ValidateIdentifier validates a content type or field identifier
func ValidateIdentifier(id string) error {
	if !identifierPattern.MatchString(id) {
		return ErrInvalidIdentifier
	}
	return nil
}

// ValidateLocale validates a locale code such as "en-US"
func ValidateLocale(code string) error {
	if !localePattern.MatchString(code) {
		return ErrInvalidLocale
	}
	return nil
}
