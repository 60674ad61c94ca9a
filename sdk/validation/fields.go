// Package validation holds the field-level checks shared by request inputs
// and repositories. Checks never stop early; every failure is collected.
package validation

import (
	"net/mail"
	"net/url"
	"slices"
	"strings"
	"unicode/utf8"
)

// FieldError is a single failed rule on a named field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors collects every failing field of one input.
type FieldErrors []FieldError

// Add records msg against field.
func (fe *FieldErrors) Add(field, msg string) {
	*fe = append(*fe, FieldError{Field: field, Message: msg})
}

// Len returns the number of recorded failures.
func (fe FieldErrors) Len() int {
	return len(fe)
}

// Err returns fe as an error, or nil when nothing failed.
func (fe FieldErrors) Err() error {
	if len(fe) == 0 {
		return nil
	}
	return &fe
}

// Fields returns the failing field names in insertion order.
func (fe FieldErrors) Fields() []string {
	out := make([]string, 0, len(fe))
	for _, f := range fe {
		if !slices.Contains(out, f.Field) {
			out = append(out, f.Field)
		}
	}
	return out
}

func (fe *FieldErrors) Error() string {
	var b strings.Builder
	for i, f := range *fe {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(f.Field)
		b.WriteString(": ")
		b.WriteString(f.Message)
	}
	return b.String()
}

// NonBlank reports whether s has content after trimming whitespace.
func NonBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}

// MaxLen reports whether s is at most n characters.
func MaxLen(s string, n int) bool {
	return utf8.RuneCountInString(s) <= n
}

// MinLen reports whether s is at least n characters.
func MinLen(s string, n int) bool {
	return utf8.RuneCountInString(s) >= n
}

// OneOf reports whether v is in allowed.
func OneOf[T comparable](v T, allowed ...T) bool {
	return slices.Contains(allowed, v)
}

// Email reports whether s is a bare address such as "a@b.example".
func Email(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Name == "" && addr.Address == s && strings.Contains(addr.Address[strings.LastIndex(addr.Address, "@"):], ".")
}

// URL reports whether s is an absolute http or https URL with a host.
func URL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// ISODate reports whether s parses with ParseISODate.
func ISODate(s string) bool {
	_, err := ParseISODate(s)
	return err == nil
}
