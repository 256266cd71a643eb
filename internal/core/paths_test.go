package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaths(t *testing.T) {
	p := newPaths("/home/reader")

	assert.Equal(t, "/home/reader", p.HomeDir)
	assert.Equal(t, filepath.Join("/home/reader", ".autocomplete"), p.DataDir)
	assert.Equal(t, filepath.Join(p.DataDir, "autocomplete.log"), p.LogFile)
	assert.Equal(t, filepath.Join(p.DataDir, "config.yaml"), p.ConfigFile)
}

func TestDefaultPathsCreateDataDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	ResetPaths()
	t.Cleanup(ResetPaths)

	require.Equal(t, home, HomeDir())

	info, err := os.Stat(DataDir())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, filepath.Join(home, ".autocomplete", "autocomplete.log"), LogFile())
	assert.Equal(t, filepath.Join(home, ".autocomplete", "config.yaml"), ConfigFile())
}
