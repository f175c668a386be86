package source

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// sanitizeMediaTarget validates that a media target is safe to pass to an
// external decoder process. Prevents flag injection through crafted paths.
func sanitizeMediaTarget(target string) (string, error) {
	t := strings.TrimSpace(target)
	if t == "" {
		return "", fmt.Errorf("empty media target")
	}

	// Reject control characters
	if strings.ContainsAny(t, "\x00\n\r") {
		return "", fmt.Errorf("invalid control characters in media target")
	}

	// Prevent flag injection: targets must not start with -
	if strings.HasPrefix(t, "-") {
		return "", fmt.Errorf("media target must not start with '-' (looks like a flag)")
	}

	// If it contains "://", validate as URL
	if strings.Contains(t, "://") {
		u, err := url.Parse(t)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return t, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	// Treat as local file path
	return filepath.Clean(t), nil
}
