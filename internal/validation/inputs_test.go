package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateInputFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "panel.csv")
	require.NoError(t, os.WriteFile(good, []byte("a,b\n1,2\n"), 0644))

	v := NewInputValidator(nil)

	t.Run("existing file", func(t *testing.T) {
		assert.NoError(t, v.ValidateInputFile(good, "panel"))
	})

	t.Run("missing file", func(t *testing.T) {
		err := v.ValidateInputFile(filepath.Join(dir, "nope.csv"), "panel")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("directory instead of file", func(t *testing.T) {
		err := v.ValidateInputFile(dir, "panel")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "directory")
	})

	t.Run("empty file passes with warning", func(t *testing.T) {
		empty := filepath.Join(dir, "empty.csv")
		require.NoError(t, os.WriteFile(empty, nil, 0644))
		assert.NoError(t, v.ValidateInputFile(empty, "panel"))
	})
}

func TestValidateInputFiles(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.csv")
	require.NoError(t, os.WriteFile(first, []byte("x"), 0644))

	v := NewInputValidator(nil)

	err := v.ValidateInputFiles([]InputFile{
		{Path: first, Name: "first"},
		{Path: filepath.Join(dir, "missing.csv"), Name: "second"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "second")
}
