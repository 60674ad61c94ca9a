package schema_test

import (
	"io/fs"
	"testing"

	"github.com/jrazmi/tasktrack/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresMigrations(t *testing.T) {
	names, err := fs.Glob(schema.PostgresMigrations(), "*.sql")
	require.NoError(t, err)
	assert.Equal(t, []string{"00001_create_users.sql", "00002_create_tasks.sql"}, names)

	data, err := fs.ReadFile(schema.PostgresMigrations(), "00002_create_tasks.sql")
	require.NoError(t, err)
	assert.Contains(t, string(data), "-- +goose Up")
	assert.Contains(t, string(data), "-- +goose Down")
}
