package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestParse_Defaults(t *testing.T) {
	t.Parallel()
	cfg, err := parse([]string{"--dir", "/logs"}, envOf(nil))
	require.NoError(t, err)

	want := Default()
	want.Dir = "/logs"
	assert.Equal(t, want, cfg)
}

func TestParse_EnvThenFlags(t *testing.T) {
	t.Parallel()
	env := envOf(map[string]string{
		EnvDir:             "/from-env",
		EnvListen:          "127.0.0.1:9000",
		EnvRefreshInterval: "30s",
		EnvWatch:           "false",
	})

	cfg, err := parse([]string{"--refresh-interval", "2s", "-v"}, env)
	require.NoError(t, err)

	assert.Equal(t, "/from-env", cfg.Dir)
	assert.Equal(t, "127.0.0.1:9000", cfg.Listen)
	assert.Equal(t, 2*time.Second, cfg.RefreshInterval)
	assert.False(t, cfg.Watch)
	assert.True(t, cfg.Verbose)
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	_, err := parse(nil, envOf(nil))
	assert.ErrorIs(t, err, ErrNoDirectory)

	_, err = parse(nil, envOf(map[string]string{EnvDir: "/x", EnvDebounce: "soon"}))
	assert.ErrorContains(t, err, EnvDebounce)

	_, err = parse([]string{"--dir", "/x", "--watch=false", "--refresh-interval", "0"}, envOf(nil))
	assert.Error(t, err)

	_, err = parse([]string{"--dir", "/x", "--unknown"}, envOf(nil))
	assert.Error(t, err)
}
