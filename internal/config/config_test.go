package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmoiron/mctext/markup"
)

func TestLoad_Defaults(t *testing.T) {
	v, err := New("")
	require.NoError(t, err)
	c, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8222", c.Server.Addr)
	assert.Equal(t, 8, c.Parse.MaxDepth)
	assert.Equal(t, 32768, c.Parse.MaxLength)
	assert.False(t, c.Parse.Strict)
	lvl, err := c.Log.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mctext.yml")
	data := "server:\n  addr: 0.0.0.0:9000\nparse:\n  strict: true\n  max_depth: 0\nlog:\n  level: warn\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	t.Setenv("MCTEXT_SERVER_ADDR", "127.0.0.1:9999")

	v, err := New(path)
	require.NoError(t, err)
	c, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9999", c.Server.Addr)
	assert.True(t, c.Parse.Strict)
	assert.Equal(t, 0, c.Parse.MaxDepth)
	lvl, err := c.Log.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lvl)

	_, err = c.Parser().Parse("<wobble>")
	assert.ErrorIs(t, err, markup.ErrUnknownTag)
	_, err = c.Parser().Parse(`<hover:show_text:"x">y</hover>`)
	assert.ErrorIs(t, err, markup.ErrDepthExceeded)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	c := Config{Server: ServerConfig{Addr: "x"}, Log: LogConfig{Level: "loud"}}
	assert.ErrorContains(t, c.Validate(), "log.level")

	c.Log.Level = "debug"
	c.Parse.MaxLength = -1
	assert.ErrorContains(t, c.Validate(), "max_length")

	c.Parse.MaxLength = 0
	c.Server.Addr = ""
	assert.ErrorContains(t, c.Validate(), "server.addr")
}

func TestSlogLevel_Verbose(t *testing.T) {
	lvl, err := LogConfig{Level: "error", Verbose: 2}.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
}
