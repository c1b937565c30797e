package utils

import (
	"crypto/md5"
	"fmt"
	"net/url"
	"strings"
)

// ArticleID derives the stable content address for a URL. The same URL
// always yields the same id, so storage can insert-or-skip across runs.
func ArticleID(rawURL string) string {
	return HashString(NormalizeURL(rawURL))
}

// NormalizeURL lowercases the scheme and host and strips a trailing
// slash so trivially different spellings of one URL collapse together.
func NormalizeURL(rawURL string) string {
	trimmed := strings.TrimSpace(rawURL)

	u, err := url.Parse(trimmed)
	if err != nil || u.Host == "" {
		return strings.TrimSuffix(trimmed, "/")
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.Path = strings.TrimSuffix(u.Path, "/")

	return u.String()
}

func HashString(input string) string {
	hash := md5.Sum([]byte(input))
	return fmt.Sprintf("%x", hash)
}
