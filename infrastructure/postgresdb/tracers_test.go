package postgresdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrettyPrintSQL(t *testing.T) {
	in := `SELECT id, title
		FROM tasks
		WHERE ( user_id = $1 )
		ORDER BY created_at DESC`

	assert.Equal(t, "SELECT id, title FROM tasks WHERE(user_id = $1)ORDER BY created_at DESC", prettyPrintSQL(in))
}
