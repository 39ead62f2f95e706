package common

import (
	"strconv"
	"strings"
)

// ParsePositiveInt reads a query parameter as a positive integer.
// Empty, malformed, and non-positive input return fallback and false.
func ParsePositiveInt(raw string, fallback int) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return fallback, false
	}
	return n, true
}
