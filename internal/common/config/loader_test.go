package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile_Defaults(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: http://api.example.test/
session:
  file_path: /tmp/internmatch-test.json
`)

	cfg, err := LoadFromFile(path)

	require.NoError(t, err)
	assert.Equal(t, "http://api.example.test", cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout())
	assert.Equal(t, 100, cfg.API.PerPage)
	assert.Equal(t, 0, cfg.API.AdminPerPage)
	assert.Equal(t, SessionStoreFile, cfg.Session.Store)
	assert.Equal(t, "/", cfg.Roles.Redirect)
	assert.Equal(t, "admin", cfg.Roles.Admin.Marker)
	assert.Equal(t, "company-access-granted", cfg.Roles.Company.Token)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromFile_FileStoreGetsDefaultPath(t *testing.T) {
	path := writeConfig(t, "api:\n  base_url: https://api.example.test\n")

	cfg, err := LoadFromFile(path)

	require.NoError(t, err)
	assert.NotEmpty(t, cfg.Session.FilePath)
}

func TestLoadFromFile_EnvironmentOverrides(t *testing.T) {
	t.Setenv("INTERNMATCH_API_PER_PAGE", "25")
	t.Setenv("TEST_API_HOST", "https://from-env.example.test")
	t.Setenv("REDIS_ADDRESS", "localhost:6390")
	path := writeConfig(t, `
api:
  base_url: ${TEST_API_HOST}
session:
  store: redis
`)

	cfg, err := LoadFromFile(path)

	require.NoError(t, err)
	assert.Equal(t, 25, cfg.API.PerPage)
	assert.Equal(t, "https://from-env.example.test", cfg.API.BaseURL)
	assert.Equal(t, "localhost:6390", cfg.Database.Redis.Address)
}

func TestLoadFromFile_Invalid(t *testing.T) {
	t.Setenv("REDIS_ADDRESS", "")
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "base url without scheme",
			body: "api:\n  base_url: api.example.test\n",
			want: "api.base_url must be an http(s) URL",
		},
		{
			name: "redis store without address",
			body: "api:\n  base_url: http://x.test\nsession:\n  store: redis\n",
			want: "database.redis.address is required",
		},
		{
			name: "unknown store",
			body: "api:\n  base_url: http://x.test\nsession:\n  store: sqlite\n",
			want: "session.store must be",
		},
		{
			name: "role without token",
			body: "api:\n  base_url: http://x.test\nroles:\n  admin:\n    token: \"\"\n",
			want: "roles.admin.marker and roles.admin.token are required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 1500*time.Millisecond, GetDuration(1500))
	assert.Equal(t, time.Duration(0), GetDuration(0))
}
