package services

import (
	"net/url"
	"strings"

	"github.com/wadjakorntonsri/qr-shortener/pkg/core/domain"
)

const defaultScheme = "https://"

// ValidateURL normalizes user input into an absolute URL. Input without an
// http(s) prefix gets https:// prepended. Only structure is checked: the
// result must carry both a scheme and a host.
func ValidateURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if !hasHTTPScheme(candidate) {
		candidate = defaultScheme + candidate
	}

	u, err := url.Parse(candidate)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", domain.ErrInvalidURL
	}
	return candidate, nil
}

func hasHTTPScheme(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
