package splitter

import "strings"

// Slug derives a file name (without extension) from an API path.
// A single leading and a single trailing slash are removed and the remaining
// slashes are replaced with dashes: /users/{id}/orders -> users-{id}-orders.
// Different paths may produce the same slug, e.g. /a/b and /a-b.
func Slug(path string) string {
	path = strings.TrimPrefix(path, "/")
	path = strings.TrimSuffix(path, "/")
	return strings.ReplaceAll(path, "/", "-")
}
