package environment_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jrazmi/tasktrack/sdk/environment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nested struct {
	URL string `yaml:"url" env:"DB_URL" default:"postgres://localhost"`
}

type testConfig struct {
	Port    string        `yaml:"port" env:"PORT" default:"8080"`
	Timeout time.Duration `yaml:"timeout" env:"TIMEOUT" default:"5s"`
	Debug   bool          `yaml:"debug" env:"DEBUG"`
	Limit   int           `yaml:"limit" env:"LIMIT" default:"10"`
	Origins []string      `yaml:"origins" env:"ORIGINS" separator:";"`
	DB      nested        `yaml:"db"`
}

func TestGetNamespaceEnvKey(t *testing.T) {
	assert.Equal(t, "APP_PORT", environment.GetNamespaceEnvKey("APP", "PORT"))
	assert.Equal(t, "PORT", environment.GetNamespaceEnvKey("", "PORT"))
}

func TestGetNamespaceEnvOrDefault(t *testing.T) {
	t.Setenv("APP_PRESENT", "yes")
	assert.Equal(t, "yes", environment.GetNamespaceEnvOrDefault("APP", "PRESENT", "no"))
	assert.Equal(t, "no", environment.GetNamespaceEnvOrDefault("APP", "ABSENT_FOR_TEST", "no"))
}

func TestParseEnvTags_Defaults(t *testing.T) {
	var cfg testConfig
	require.NoError(t, environment.ParseEnvTags("ENVTEST_DEFAULTS", &cfg))

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.False(t, cfg.Debug)
	assert.Equal(t, 10, cfg.Limit)
	assert.Nil(t, cfg.Origins)
	assert.Equal(t, "postgres://localhost", cfg.DB.URL)
}

func TestParseEnvTags_FromEnv(t *testing.T) {
	t.Setenv("ENVTEST_PORT", "9000")
	t.Setenv("ENVTEST_TIMEOUT", "1m")
	t.Setenv("ENVTEST_DEBUG", "true")
	t.Setenv("ENVTEST_LIMIT", "42")
	t.Setenv("ENVTEST_ORIGINS", "http://a.test; http://b.test;")
	t.Setenv("ENVTEST_DB_URL", "postgres://db")

	var cfg testConfig
	require.NoError(t, environment.ParseEnvTags("ENVTEST", &cfg))

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, time.Minute, cfg.Timeout)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 42, cfg.Limit)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Origins)
	assert.Equal(t, "postgres://db", cfg.DB.URL)
}

func TestParseEnvTags_Required(t *testing.T) {
	var cfg struct {
		Secret string `env:"SECRET" required:"true"`
	}
	err := environment.ParseEnvTags("ENVTEST_REQ", &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENVTEST_REQ_SECRET")
}

func TestParseEnvTags_BadValue(t *testing.T) {
	t.Setenv("ENVTEST_BAD_LIMIT", "many")
	var cfg testConfig
	assert.Error(t, environment.ParseEnvTags("ENVTEST_BAD", &cfg))
}

func TestParseEnvTags_NotPointer(t *testing.T) {
	assert.Error(t, environment.ParseEnvTags("X", testConfig{}))
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: \"7000\"\nlimit: 3\ndb:\n  url: postgres://file\n"), 0o600))
	t.Setenv("ENVTEST_YAML_LIMIT", "4")

	var cfg testConfig
	require.NoError(t, environment.Load("ENVTEST_YAML", path, &cfg))

	assert.Equal(t, "7000", cfg.Port, "file value kept when env unset")
	assert.Equal(t, 4, cfg.Limit, "env overrides file")
	assert.Equal(t, "postgres://file", cfg.DB.URL)
	assert.Equal(t, 5*time.Second, cfg.Timeout, "default fills the rest")
}

func TestLoadYAML_MissingFile(t *testing.T) {
	var cfg testConfig
	assert.NoError(t, environment.LoadYAML("", &cfg))
	assert.Error(t, environment.LoadYAML(filepath.Join(t.TempDir(), "nope.yaml"), &cfg))
}

func TestLoadPath_MissingIsFine(t *testing.T) {
	assert.NoError(t, environment.LoadPath(filepath.Join(t.TempDir(), ".env")))
}
