package validation_test

import (
	"errors"
	"testing"
	"time"

	"github.com/jrazmi/tasktrack/sdk/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldErrors_CollectAll(t *testing.T) {
	var fe validation.FieldErrors
	require.NoError(t, fe.Err())

	fe.Add("title", "Title is required.")
	fe.Add("status", "Status must be todo, in-progress or done.")
	fe.Add("title", "Title must be at most 200 characters.")

	assert.Equal(t, 3, fe.Len())
	assert.Equal(t, []string{"title", "status"}, fe.Fields())

	err := fe.Err()
	require.Error(t, err)

	var got *validation.FieldErrors
	require.True(t, errors.As(err, &got))
	assert.Len(t, *got, 3)
	assert.Contains(t, err.Error(), "status: Status must be")
}

func TestChecks(t *testing.T) {
	assert.True(t, validation.NonBlank(" a "))
	assert.False(t, validation.NonBlank(" \t\n"))

	assert.True(t, validation.MaxLen("héllo", 5))
	assert.False(t, validation.MaxLen("héllo!", 5))
	assert.True(t, validation.MinLen("123456", 6))
	assert.False(t, validation.MinLen("12345", 6))

	assert.True(t, validation.OneOf("done", "todo", "in-progress", "done"))
	assert.False(t, validation.OneOf("bogus", "todo", "in-progress", "done"))
}

func TestEmail(t *testing.T) {
	for _, ok := range []string{"a@b.co", "first.last+tag@example.org"} {
		assert.True(t, validation.Email(ok), ok)
	}
	for _, bad := range []string{"", "nope", "a@b", "Name <a@b.co>", " a@b.co"} {
		assert.False(t, validation.Email(bad), bad)
	}
}

func TestURL(t *testing.T) {
	assert.True(t, validation.URL("https://cdn.example.com/a.png"))
	assert.True(t, validation.URL("http://localhost:8080/x"))
	assert.False(t, validation.URL("ftp://example.com/a.png"))
	assert.False(t, validation.URL("/relative/path"))
	assert.False(t, validation.URL("https://"))
}

func TestParseISODate(t *testing.T) {
	cases := map[string]time.Time{
		"2025-03-04":                time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC),
		"2025-03-04T10:11:12":       time.Date(2025, 3, 4, 10, 11, 12, 0, time.UTC),
		"2025-03-04T10:11:12Z":      time.Date(2025, 3, 4, 10, 11, 12, 0, time.UTC),
		"2025-03-04T10:11:12+02:00": time.Date(2025, 3, 4, 8, 11, 12, 0, time.UTC),
		"2025-03-04T10:11:12.5Z":    time.Date(2025, 3, 4, 10, 11, 12, 500_000_000, time.UTC),
	}
	for in, want := range cases {
		got, err := validation.ParseISODate(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), "%s: got %s", in, got)
	}

	for _, bad := range []string{"", "03/04/2025", "tomorrow", "2025-13-01"} {
		assert.False(t, validation.ISODate(bad), bad)
	}
}

func TestFormatTime(t *testing.T) {
	ts := time.Date(2026, 3, 9, 14, 5, 6, 789_000_000, time.FixedZone("X", 3600))
	assert.Equal(t, "2026-03-09T13:05:06.789Z", validation.FormatTime(ts))
	assert.Nil(t, validation.FormatTimePtr(nil))
	assert.Equal(t, "2026-03-09T13:05:06.789Z", *validation.FormatTimePtr(&ts))
}
