package userspgxstore

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jrazmi/tasktrack/core/repositories/usersrepo"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	assert.ErrorIs(t, mapError(pgx.ErrNoRows), usersrepo.ErrNotFound)
	assert.ErrorIs(t, mapError(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})), usersrepo.ErrDuplicateEmail)

	other := fmt.Errorf("connection reset")
	assert.Equal(t, other, mapError(other))
}
