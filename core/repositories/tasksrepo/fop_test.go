package tasksrepo_test

import (
	"testing"

	"github.com/jrazmi/tasktrack/core/repositories/tasksrepo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQueryFilter(t *testing.T) {
	f := tasksrepo.ParseQueryFilter("owner", "  milk ", "done", "high")
	assert.Equal(t, "owner", f.OwnerID)
	require.NotNil(t, f.Search)
	assert.Equal(t, "milk", *f.Search)
	require.NotNil(t, f.Status)
	assert.Equal(t, tasksrepo.StatusDone, *f.Status)
	require.NotNil(t, f.Priority)
	assert.Equal(t, tasksrepo.PriorityHigh, *f.Priority)

	f = tasksrepo.ParseQueryFilter("owner", "   ", "DONE", "critical")
	assert.Equal(t, tasksrepo.QueryFilter{OwnerID: "owner"}, f)
}

func TestQueryFilter_MatchesOwnerFirst(t *testing.T) {
	f := tasksrepo.ParseQueryFilter("alice", "", "", "")
	assert.True(t, f.Matches(tasksrepo.Task{UserID: "alice"}))
	assert.False(t, f.Matches(tasksrepo.Task{UserID: "bob"}))
}
