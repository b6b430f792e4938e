package model

import (
	"strconv"
	"strings"
)

// ParseTagged splits a confidence-tagged value of the form "<level>-<value>".
// The level must be a positive integer; higher levels are more trusted.
func ParseTagged(s string) (level int, value string, ok bool) {
	head, tail, found := strings.Cut(strings.TrimSpace(s), "-")
	if !found {
		return 0, "", false
	}
	level, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil || level < 1 {
		return 0, "", false
	}
	return level, strings.TrimSpace(tail), true
}

// FormatTagged is the inverse of ParseTagged.
func FormatTagged(level int, value string) string {
	return strconv.Itoa(level) + "-" + value
}
