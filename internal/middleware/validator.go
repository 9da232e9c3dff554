package middleware

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Input validation and sanitization utilities

var identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,63}$`)

// ValidateIdentifier checks SQL table names before they reach the reader
func ValidateIdentifier(kind, name string) error {
	if name == "" {
		return fmt.Errorf("%s cannot be empty", kind)
	}
	if !identifierRe.MatchString(name) {
		return fmt.Errorf("invalid %s %q (letters, digits, underscore only, max 64 chars)", kind, name)
	}
	return nil
}

// ValidateColumn checks the selected text column name
func ValidateColumn(column string) error {
	if strings.TrimSpace(column) == "" {
		return fmt.Errorf("column cannot be empty")
	}
	if len(column) > 256 {
		return fmt.Errorf("column name too long")
	}
	return nil
}

// ValidateObjectKey validates object storage keys
func ValidateObjectKey(key string) error {
	if key == "" {
		return fmt.Errorf("object key cannot be empty")
	}
	if len(key) > 1024 {
		return fmt.Errorf("object key too long")
	}

	// Block path traversal attempts
	for _, part := range strings.Split(strings.TrimPrefix(key, "/"), "/") {
		if part == ".." {
			return fmt.Errorf("path traversal detected")
		}
	}

	dangerous := []string{"\x00", "\\", "\n", "\r"}
	for _, d := range dangerous {
		if strings.Contains(key, d) {
			return fmt.Errorf("invalid characters in object key")
		}
	}
	return nil
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	// Remove control characters
	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}

// ValidateTopK parses the k query param: default when empty, capped at max.
func ValidateTopK(raw string, def, max int) (int, error) {
	if raw == "" {
		return def, nil
	}
	k, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("k must be an integer")
	}
	if k < 1 {
		return 0, fmt.Errorf("k must be at least 1")
	}
	if k > max {
		return max, nil
	}
	return k, nil
}

// ValidateLimit validates preview row limit
func ValidateLimit(limit int) int {
	if limit <= 0 {
		return 5 // default
	}
	if limit > 100 {
		return 100 // max limit
	}
	return limit
}
