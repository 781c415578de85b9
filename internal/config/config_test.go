package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildtrack/wildtrack/pkg/errors"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("MONGODB_DB_NAME", "wildtrack_test")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("NATS_URL", "nats://localhost:4222")

	s, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mongodb://localhost:27017", s.MongoURI)
	assert.Equal(t, "wildtrack_test", s.DatabaseName)
	assert.Equal(t, 9090, s.ServerPort)
	assert.Equal(t, "nats://localhost:4222", s.NATSURL)
	assert.Equal(t, "/api/v1", s.PathPrefix)
	assert.Equal(t, 10*time.Second, s.StoreTimeout)
}

func TestLoadMissingURI(t *testing.T) {
	t.Setenv("MONGODB_URI", "")
	t.Setenv("MONGODB_DB_NAME", "wildtrack_test")

	_, err := Load()
	require.Error(t, err)

	var cfgErr *errors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "mongodb", cfgErr.Component)
}

func TestLoadMissingDBName(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("MONGODB_DB_NAME", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadEnvFilesPrecedence(t *testing.T) {
	const key = "WILDTRACK_ENVFILE_TEST"
	require.NoError(t, os.Unsetenv(key))
	t.Cleanup(func() { _ = os.Unsetenv(key) })

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(key+"=base\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.local"), []byte(key+"=local\n"), 0o644))
	oldWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(oldWD) })

	LoadEnvFiles()
	assert.Equal(t, "base", os.Getenv(key), "already-set variables are never overwritten")
}

func TestValidate(t *testing.T) {
	s := &Settings{
		MongoURI:     "mongodb://localhost:27017",
		DatabaseName: "wildtrack",
		ServerPort:   8080,
	}
	require.NoError(t, s.Validate())
	assert.Equal(t, 10*time.Second, s.StoreTimeout, "zero timeout should fall back to default")

	s.ServerPort = 70000
	assert.Error(t, s.Validate())
}
