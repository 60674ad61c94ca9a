package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jrazmi/tasktrack/app/tasktrack/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TTCFG_JWT_SECRET", "s3cret")

	cfg, err := config.Load("TTCFG", "")
	require.NoError(t, err)

	assert.Equal(t, config.DriverMemory, cfg.Store.Driver)
	assert.Equal(t, 168*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "/api", cfg.Server.ApiRoute)
	assert.Equal(t, ":5000", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:3001"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 20, cfg.RateLimit.Requests)
	assert.False(t, cfg.Redis.Enabled())
}

func TestLoadRequiresSecret(t *testing.T) {
	_, err := config.Load("TTCFG_MISSING", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TTCFG_MISSING_JWT_SECRET")
}

func TestLoadYAMLThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasktrack.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: ":7000"
  cors_origins: ["https://tasks.example.com"]
auth:
  jwt_secret: from-file
  token_ttl: 1h
store:
  driver: postgres
`), 0o600))

	t.Setenv("TTYAML_PORT", ":9000")

	cfg, err := config.Load("TTYAML", path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Port, "env wins over file")
	assert.Equal(t, []string{"https://tasks.example.com"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "from-file", cfg.Auth.JWTSecret)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, config.DriverPostgres, cfg.Store.Driver)
	assert.Equal(t, "/api", cfg.Server.ApiRoute, "defaults fill what the file leaves out")
}

func TestValidateRejectsUnknownDriver(t *testing.T) {
	t.Setenv("TTBAD_JWT_SECRET", "x")
	t.Setenv("TTBAD_STORE_DRIVER", "sqlite")

	_, err := config.Load("TTBAD", "")
	assert.EqualError(t, err, `unknown store driver "sqlite"`)
}
