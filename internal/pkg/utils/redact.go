package utils

import (
	"errors"
	"net/url"
)

const redacted = "REDACTED"

// RedactURL replaces the values of the given query parameters in rawURL.
func RedactURL(rawURL string, params ...string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return redacted
	}
	q := u.Query()
	changed := false
	for _, p := range params {
		if q.Has(p) {
			q.Set(p, redacted)
			changed = true
		}
	}
	if changed {
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// RedactURLError rewrites the URL carried by a *url.Error so credentials
// passed as query parameters do not reach logs or callers. Other errors are
// returned unchanged.
func RedactURLError(err error, params ...string) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}
	return &url.Error{
		Op:  urlErr.Op,
		URL: RedactURL(urlErr.URL, params...),
		Err: urlErr.Err,
	}
}
