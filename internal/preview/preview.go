// Package preview validates preview URLs and serves a local reverse proxy
// pointed at a detected dev-server port.
package preview

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateURL accepts only plain http/https URLs with a host and no
// suspicious embedded characters. Rejected URLs never reach the preview
// surface.
func ValidateURL(raw string) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return fmt.Errorf("empty URL")
	}
	if strings.ContainsAny(trimmed, " \t\n\"'<>") {
		return fmt.Errorf("URL contains disallowed characters")
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return fmt.Errorf("parse URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("disallowed scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("URL has no host")
	}
	return nil
}

// LocalURL builds the preview URL for a detected dev-server port.
func LocalURL(port int) string {
	return fmt.Sprintf("http://localhost:%d", port)
}
