// Package matching contains the pure visitor-to-campaign matching logic:
// URL normalization, prefix matching, and the campaign match pass over a
// content link index. Nothing here touches storage or the network.
package matching

import (
	"net/url"
	"strings"
)

// Normalize reduces a raw URL to a comparable canonical form: only the path
// component is kept (scheme, host, query, and fragment are discarded),
// exactly one trailing slash is stripped, and the result is lowercased.
// Unparseable input normalizes to the empty string. Idempotent.
func Normalize(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	path := u.Path
	if path == "" {
		return ""
	}

	// Strip exactly one trailing slash; repeated slashes are preserved.
	if strings.HasSuffix(path, "/") {
		path = path[:len(path)-1]
	}

	return strings.ToLower(path)
}

// Matches reports whether a normalized content path is a literal prefix of a
// normalized visitor path. Empty input on either side never matches.
//
// This is deliberately a prefix test, not a segment-boundary test: a content
// link /blog/post-1 matches visitor paths /blog/post-1-extended and
// /blog/post-123 as well as /blog/post-1 itself.
func Matches(visitorPath, contentPath string) bool {
	if visitorPath == "" || contentPath == "" {
		return false
	}
	return strings.HasPrefix(visitorPath, contentPath)
}
