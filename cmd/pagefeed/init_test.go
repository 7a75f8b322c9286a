package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumluvv/pagefeed/internal/config"
)

func TestNewInitCmd(t *testing.T) {
	t.Parallel()

	cmd := NewInitCmd()

	output := cmd.Flags().Lookup("output")
	require.NotNil(t, output)
	assert.Equal(t, "o", output.Shorthand)
	assert.Equal(t, config.DefaultConfigFile, output.DefValue)

	force := cmd.Flags().Lookup("force")
	require.NotNil(t, force)
	assert.Equal(t, "f", force.Shorthand)
}

func TestRunInitCmd(t *testing.T) {
	t.Parallel()

	t.Run("template loads with default tuning", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t)

		file, err := config.LoadConfigFile(path)
		require.NoError(t, err)

		assert.Equal(t, config.DefaultTuning(), file.Tuning)
		assert.Empty(t, file.Sites)
		assert.Empty(t, file.Stopwords)
		assert.Equal(t, "zh-CN,zh;q=0.9,en;q=0.8", file.Defaults.Headers["Accept-Language"])
	})

	t.Run("refuses to overwrite without force", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t)

		_, _, err := execute(t, "init", "-o", path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")

		stdout, _, err := execute(t, "init", "-f", "-o", path)
		require.NoError(t, err)
		assert.Contains(t, stdout, "Created configuration file")
	})

	t.Run("creates parent directories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "nested", "dir", "pagefeed.yaml")

		_, _, err := execute(t, "init", "-o", path)
		require.NoError(t, err)

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.False(t, info.IsDir())
	})
}
