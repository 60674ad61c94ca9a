package commands_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/jrazmi/tasktrack/app/tasktrack/commands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer

	cmd := commands.NewRootCommand("v1.2.3")
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "tasktrack v1.2.3\n", out)
}

func TestMigrateMemoryDriver(t *testing.T) {
	t.Setenv("TTCMD_JWT_SECRET", "secret")
	t.Setenv("TTCMD_LOG_OUTPUT", "DISCARD")

	out, err := execute(t, "migrate", "--env-prefix", "TTCMD")
	require.NoError(t, err)
	assert.Equal(t, "store driver \"memory\" needs no migration\n", out)
}

func TestMissingSecretFailsBeforeRunning(t *testing.T) {
	_, err := execute(t, "migrate", "--env-prefix", "TTCMD_EMPTY")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TTCMD_EMPTY_JWT_SECRET")
}

func TestConfigFileFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasktrack.yaml")
	require.NoError(t, os.WriteFile(path, []byte("auth:\n  jwt_secret: file-secret\nstore:\n  driver: cassandra\n"), 0o600))

	_, err := execute(t, "migrate", "--env-prefix", "TTCMD_FILE", "--config", path)
	assert.EqualError(t, err, `unknown store driver "cassandra"`)
}

func TestEnvFileFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("TTCMD_DOTENV_JWT_SECRET=from-dotenv\nTTCMD_DOTENV_LOG_OUTPUT=DISCARD\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("TTCMD_DOTENV_JWT_SECRET")
		os.Unsetenv("TTCMD_DOTENV_LOG_OUTPUT")
	})

	out, err := execute(t, "migrate", "--env-prefix", "TTCMD_DOTENV", "--env-file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "needs no migration")
}
