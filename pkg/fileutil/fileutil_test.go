package fileutil_test

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terroirai/terroir-web/pkg/fileutil"
)

func TestEnsureDir(t *testing.T) {
	root := t.TempDir()

	err := fileutil.EnsureDir(root, "blog", "post")
	require.Nil(t, err)

	info, statErr := os.Stat(filepath.Join(root, "blog", "post"))
	require.NoError(t, statErr)
	assert.True(t, info.IsDir())

	// idempotent
	assert.Nil(t, fileutil.EnsureDir(root, "blog", "post"))
}

func TestEnsureDir_PathIsFile(t *testing.T) {
	root := t.TempDir()
	blocker := filepath.Join(root, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	err := fileutil.EnsureDir(blocker, "child")
	require.NotNil(t, err)

	var fileErr *fileutil.FileError
	require.ErrorAs(t, err, &fileErr)
	assert.Equal(t, fileutil.ErrCausePathError, fileErr.Cause)
	assert.Equal(t, filepath.Join(blocker, "child"), fileErr.Path)
	assert.ErrorIs(t, err, syscall.ENOTDIR)
}

func TestWriteFileAtomic(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "contact", "index.html")

	require.Nil(t, fileutil.WriteFileAtomic(target, []byte("first")))
	require.Nil(t, fileutil.WriteFileAtomic(target, []byte("second")))

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "second", string(content))

	entries, err := os.ReadDir(filepath.Dir(target))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}
