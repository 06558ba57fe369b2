package bookmark

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateURL checks that a candidate bookmark URL is an absolute
// http / https URL and does not point back at localhost or the
// application's own serving host [selfHost]. An empty [selfHost]
// disables the self-host check.
func ValidateURL(rawURL, selfHost string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil || !parsed.IsAbs() || parsed.Hostname() == "" {
		return fmt.Errorf("%w: must be an absolute URL", ErrInvalidURL)
	}

	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
	default:
		return fmt.Errorf(
			"%w: unsupported scheme %q, only http / https are allowed",
			ErrInvalidURL, parsed.Scheme,
		)
	}

	host := strings.ToLower(parsed.Hostname())
	if host == "localhost" {
		return fmt.Errorf("%w: localhost is not bookmarkable", ErrInvalidURL)
	}

	if selfHost != "" && host == strings.ToLower(selfHost) {
		return fmt.Errorf(
			"%w: refusing to bookmark the application's own host",
			ErrInvalidURL,
		)
	}

	return nil
}
