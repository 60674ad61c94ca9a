package validation

import "time"

func StringPtr(s string) *string {
	return &s
}

func IntPtr(i int) *int {
	return &i
}

func TimePtr(t time.Time) *time.Time {
	return &t
}

// GetStringOrEmpty returns the string value or an empty string if nil
func GetStringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// GetStringOrDefault returns the string value or a default value if nil
func GetStringOrDefault(s *string, defaultValue string) string {
	if s == nil {
		return defaultValue
	}
	return *s
}

// ISOLayout is RFC3339 with fixed milliseconds, the shape browsers produce
// from Date.toISOString.
const ISOLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTime renders t in ISOLayout in UTC.
func FormatTime(t time.Time) string {
	return t.UTC().Format(ISOLayout)
}

// FormatTimePtr renders t in ISOLayout in UTC, or nil when t is nil.
func FormatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatTime(*t)
	return &s
}
