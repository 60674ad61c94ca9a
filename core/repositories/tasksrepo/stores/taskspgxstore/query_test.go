package taskspgxstore

import (
	"testing"
	"time"

	"github.com/jrazmi/tasktrack/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktrack/core/scaffolding/fop"
	"github.com/jrazmi/tasktrack/sdk/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const owner = "6f1c7c1e-9a57-4d43-a1a4-55b6f0f1d2a1"

func TestListQuery_OwnerOnly(t *testing.T) {
	filter := tasksrepo.ParseQueryFilter(owner, "", "", "")

	sql, args, err := listQuery(filter, fop.NewPage(3, 10)).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT id, user_id, title, description, status, priority, due_date, version, created_at, updated_at "+
			"FROM tasks WHERE (user_id = $1) ORDER BY created_at DESC, id DESC LIMIT 10 OFFSET 20",
		sql)
	assert.Equal(t, []any{owner}, args)
}

func TestListQuery_AllFilters(t *testing.T) {
	filter := tasksrepo.ParseQueryFilter(owner, " 50%_off ", "done", "high")

	sql, args, err := listQuery(filter, fop.NewPage(1, 20)).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "WHERE (user_id = $1 AND status = $2 AND priority = $3 AND (title ILIKE $4 OR description ILIKE $5))")
	assert.Equal(t, []any{owner, "done", "high", `%50\%\_off%`, `%50\%\_off%`}, args)
}

func TestCountQuery_DropsUnknownEnums(t *testing.T) {
	filter := tasksrepo.ParseQueryFilter(owner, "", "bogus", "urgent")

	sql, args, err := countQuery(filter).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT COUNT(*) FROM tasks WHERE (user_id = $1)", sql)
	assert.Equal(t, []any{owner}, args)
}

func TestGetAndDeleteQuery_ScopeToOwner(t *testing.T) {
	sql, args, err := getQuery(owner, "task-id").ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "WHERE (id = $1 AND user_id = $2)")
	assert.Equal(t, []any{"task-id", owner}, args)

	sql, args, err = deleteQuery(owner, "task-id").ToSql()
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM tasks WHERE (id = $1 AND user_id = $2)", sql)
	assert.Equal(t, []any{"task-id", owner}, args)
}

func TestUpdateQuery_OnlyPresentFields(t *testing.T) {
	upd := tasksrepo.UpdateTask{
		Title:   validation.StringPtr("Ship it"),
		DueDate: tasksrepo.Null[time.Time](),
	}

	sql, args, err := updateQuery(owner, "task-id", upd).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "UPDATE tasks SET version = version + 1, updated_at = NOW(), title = $1, due_date = $2 WHERE (id = $3 AND user_id = $4)")
	assert.Contains(t, sql, "RETURNING id, user_id, title")
	assert.NotContains(t, sql, "status")
	assert.NotContains(t, sql, "description =")
	require.Len(t, args, 4)
	assert.Equal(t, "Ship it", args[0])
	assert.Nil(t, args[1])
}

func TestUpdateQuery_ExpectedVersion(t *testing.T) {
	status := tasksrepo.StatusDone
	upd := tasksrepo.UpdateTask{Status: &status, ExpectedVersion: validation.IntPtr(4)}

	sql, args, err := updateQuery(owner, "task-id", upd).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "WHERE (id = $2 AND user_id = $3 AND version = $4)")
	assert.Equal(t, []any{"done", "task-id", owner, 4}, args)
}

func TestInsertQuery(t *testing.T) {
	task := tasksrepo.Task{
		ID:       "task-id",
		UserID:   owner,
		Title:    "Write tests",
		Status:   tasksrepo.StatusTodo,
		Priority: tasksrepo.PriorityMedium,
		Version:  1,
	}

	sql, args, err := insertQuery(task).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "INSERT INTO tasks (id,user_id,title,description,status,priority,due_date,version) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)")
	require.Len(t, args, 8)
	assert.Equal(t, "todo", args[4])
	assert.Equal(t, "medium", args[5])
}
