package postgres

import (
	"strconv"
	"strings"
)

func sanitizeSort(s, def string, allowed ...string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, a := range allowed {
		if s == a {
			return s
		}
	}
	return def
}

func sanitizeOrder(o, def string) string {
	switch strings.ToLower(strings.TrimSpace(o)) {
	case "asc", "desc":
		return o
	default:
		return def
	}
}

// small helper to avoid fmt for positional arg building.
func itoa(i int) string { return strconv.Itoa(i) }
