package crawler

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
)

// ErrInvalidURL is returned when a link cannot be resolved into a usable
// absolute http(s) URL.
var ErrInvalidURL = errors.New("crawler: invalid url")

// NormalizeURL resolves href against base, lower-cases scheme and host,
// strips default ports and the fragment, sorts and re-encodes the query,
// and rejects anything whose scheme is not http or https.
func NormalizeURL(base, href string) (string, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("%w: parse base %q: %v", ErrInvalidURL, base, err)
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("%w: parse href %q: %v", ErrInvalidURL, href, err)
	}
	resolved := baseURL.ResolveReference(ref)

	scheme := strings.ToLower(resolved.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", fmt.Errorf("%w: scheme %q", ErrInvalidURL, resolved.Scheme)
	}
	resolved.Scheme = scheme
	resolved.Host = stripDefaultPort(strings.ToLower(resolved.Host), scheme)
	resolved.Fragment = ""
	resolved.RawFragment = ""

	if resolved.RawQuery != "" {
		values, err := url.ParseQuery(resolved.RawQuery)
		if err != nil {
			return "", fmt.Errorf("%w: query %q: %v", ErrInvalidURL, resolved.RawQuery, err)
		}
		resolved.RawQuery = values.Encode()
	}

	return resolved.String(), nil
}

func stripDefaultPort(host, scheme string) string {
	h, port, err := net.SplitHostPort(host)
	if err != nil {
		return host
	}
	if (scheme == "http" && port == "80") || (scheme == "https" && port == "443") {
		return h
	}
	return host
}
