package staging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAndRemove(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())

	d, err := New("run42")
	require.NoError(t, err)

	info, err := os.Stat(d.Path())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.True(t, strings.Contains(filepath.Base(d.Path()), "run42"))

	// Populate it; Remove must take the contents with it.
	require.NoError(t, os.MkdirAll(filepath.Join(d.Path(), "com", "x"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(d.Path(), "com", "x", "A.class"), []byte{0xCA, 0xFE}, 0644))

	require.NoError(t, d.Remove())
	_, err = os.Stat(d.Path())
	assert.True(t, os.IsNotExist(err))
}

func TestRemoveIdempotent(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())

	d, err := New("run")
	require.NoError(t, err)
	require.NoError(t, d.Remove())
	assert.NoError(t, d.Remove())
}

func TestNewDirectoriesAreDistinct(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())

	a, err := New("same")
	require.NoError(t, err)
	defer func() { _ = a.Remove() }()
	b, err := New("same")
	require.NoError(t, err)
	defer func() { _ = b.Remove() }()

	assert.NotEqual(t, a.Path(), b.Path())
}
