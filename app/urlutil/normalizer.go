// Package urlutil normalizes URLs found in feeds and scraped pages. Every
// function is total: a URL that cannot be parsed is returned unchanged so a
// bad link never aborts the pipeline.
package urlutil

import (
	"net/url"
	"strings"
)

// ToAbsolute resolves rawURL against baseURL. Protocol-relative URLs are
// upgraded to https.
func ToAbsolute(rawURL, baseURL string) string {
	if rawURL == "" {
		return ""
	}
	if strings.HasPrefix(rawURL, "//") {
		return "https:" + rawURL
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return rawURL
	}
	ref, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	return base.ResolveReference(ref).String()
}

// PreferHTTPS rewrites an http scheme to https, leaving everything else
// untouched.
func PreferHTTPS(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	if u.Scheme != "http" {
		return rawURL
	}
	u.Scheme = "https"
	return u.String()
}

// Encode re-encodes a URL so it is safe to embed in markup (spaces and other
// raw characters become percent escapes).
func Encode(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.String()
}

// WithImageProxy routes the scheme-stripped URL through the proxy endpoint as
// a URL-encoded query parameter. No-op when either argument is empty.
func WithImageProxy(rawURL, proxyEndpoint string) string {
	if rawURL == "" || proxyEndpoint == "" {
		return rawURL
	}

	stripped := strings.TrimPrefix(rawURL, "https://")
	stripped = strings.TrimPrefix(stripped, "http://")

	return proxyEndpoint + "?url=" + url.QueryEscape(stripped)
}

// Hostname returns the host of rawURL, or an empty string when it cannot be
// parsed.
func Hostname(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
