package console

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/ragar/ragarctl/internal/domain"
)

// ErrUnknownField is returned by a session's Set for a field it does not have
var ErrUnknownField = errors.New("unknown field")

// ErrSessionClosed is returned when submitting a session that is not open
var ErrSessionClosed = errors.New("form is not open")

func unknownField(field string) error {
	return fmt.Errorf("%w %q", ErrUnknownField, field)
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return domain.NewInvalidInputError(field + " is required")
	}
	return nil
}

// splitList parses a comma-separated list, trimming entries and dropping blanks and repeats
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" && !slices.Contains(out, part) {
			out = append(out, part)
		}
	}
	return out
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func optionalInt(field, s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, domain.NewInvalidInputError(field + " must be a whole number")
	}
	return &n, nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func intString(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}
