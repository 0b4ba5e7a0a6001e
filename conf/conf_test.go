package conf_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/damrufest/judgeboard/conf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := conf.Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://judgingbackend.damrufest.org", cfg.Client.BaseURL)
	assert.Equal(t, ":8080", cfg.Server.ListenAddr)
}

func TestLoadMissingFileIsFine(t *testing.T) {
	cfg, err := conf.Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, conf.Default(), cfg)
}

func TestLoadTomlFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "judgeboard.toml")
	body := `
[client]
base_url = "http://localhost:8080"

[server]
listen_addr = ":9090"
jwt_key = "testkey"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := conf.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.Client.BaseURL)
	assert.Equal(t, ":9090", cfg.Server.ListenAddr)
	assert.Equal(t, "testkey", cfg.Server.JwtKey)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("JUDGEBOARD_API_URL", "http://127.0.0.1:7777")

	cfg, err := conf.Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:7777", cfg.Client.BaseURL)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[client\nbase_url"), 0o644))

	_, err := conf.Load(path)
	assert.Error(t, err)
}
