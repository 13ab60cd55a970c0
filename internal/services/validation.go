package services

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// ValidationError carries a field → message map so forms can render
// errors inline. No store write happens once validation fails.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

type fieldErrors map[string]string

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: f}
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func validEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// validPhone accepts digits with common separators. Numbers are stored
// and matched verbatim; this only rejects obvious garbage.
var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ().-]{5,}$`)

func validPhone(s string) bool {
	return phonePattern.MatchString(s)
}
