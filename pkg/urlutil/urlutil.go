package urlutil

import (
	"net/url"
	"strings"
)

// JoinBase appends a site-relative path to a base URL by plain concatenation,
// the way canonical and schema URLs are built for the site:
//
//	JoinBase("https://terroirai.com", "/blog") == "https://terroirai.com/blog"
//	JoinBase("https://terroirai.com", "/")     == "https://terroirai.com/"
//	JoinBase("https://terroirai.com", "")      == "https://terroirai.com"
//
// A trailing slash on base is dropped when path already starts with one.
func JoinBase(base string, path string) string {
	if path == "" {
		return base
	}
	if strings.HasSuffix(base, "/") && strings.HasPrefix(path, "/") {
		base = strings.TrimRight(base, "/")
	}
	return base + path
}

// QueryValue returns a pointer to the first value of key in the URL's query,
// or nil when the key is absent. A present but empty parameter yields a
// pointer to "".
func QueryValue(u *url.URL, key string) *string {
	if u == nil {
		return nil
	}
	query := u.Query()
	if !query.Has(key) {
		return nil
	}
	value := query.Get(key)
	return &value
}

// CleanPath normalizes a navigation path:
//   - empty becomes "/"
//   - a leading slash is ensured
//   - trailing slashes are removed, except for root "/"
//
// Properties:
//   - Pure and deterministic
//   - Idempotent: CleanPath(CleanPath(p)) == CleanPath(p)
func CleanPath(path string) string {
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return stripTrailingSlash(path)
}

// stripTrailingSlash removes trailing slashes from a path.
func stripTrailingSlash(path string) string {
	for len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}
	return path
}
