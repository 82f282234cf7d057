package util

import (
	"strconv"
	"strings"
)

// ParseIntDefault parses string to int or returns default if empty/invalid.
func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

// NormalizeKey lower-cases and trims a card name for use as a cache key.
func NormalizeKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
