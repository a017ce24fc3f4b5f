package git

import (
	"fmt"
	"net/url"
)

// ParseBaseURL validates a configured platform URL. It
// must be an absolute http or https URL with a host.
func ParseBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf(
			"%w: url %q: %w", ErrAuthConfigInvalid, raw, err,
		)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf(
			"%w: url %q: scheme must be http or https",
			ErrAuthConfigInvalid, raw,
		)
	}

	if u.Host == "" {
		return nil, fmt.Errorf(
			"%w: url %q: missing host",
			ErrAuthConfigInvalid, raw,
		)
	}

	return u, nil
}

// CheckToken rejects an empty token.
func CheckToken(token string) error {
	if token == "" {
		return fmt.Errorf(
			"%w: token must be set", ErrAuthConfigInvalid,
		)
	}

	return nil
}
