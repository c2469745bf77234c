package remote

import "strings"

// QuotePath single-quotes path for the remote shell. A leading "~/" is left
// outside the quotes so the remote shell still expands it.
func QuotePath(path string) string {
	switch {
	case path == "~":
		return "~"
	case strings.HasPrefix(path, "~/"):
		return "~/" + quote(path[2:])
	default:
		return quote(path)
	}
}

// quote wraps s in single quotes, closing and reopening around embedded ones.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
