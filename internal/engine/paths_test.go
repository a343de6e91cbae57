package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionText(t *testing.T) {
	assert.Equal(t, "Babylon v0.1.1\nWritten by: JohnLesterDev\n", VersionText())
}

func TestInitPaths(t *testing.T) {
	base := t.TempDir()

	p, err := InitPaths(base)
	require.NoError(t, err)

	wantRoot := filepath.Join(base, Author, Name)
	assert.Equal(t, wantRoot+string(filepath.Separator), p.Root)
	assert.Equal(t, filepath.Join(wantRoot, "config"), p.Config)
	assert.Equal(t, filepath.Join(wantRoot, ".log"), p.LogFile())
	assert.Equal(t, filepath.Join(wantRoot, "config", "babylon.cfg"), p.ConfigFile())

	for _, dir := range []string{p.Root, p.Config} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}

	// Second call sees existing directories and still succeeds.
	_, err = InitPaths(base)
	assert.NoError(t, err)
}
