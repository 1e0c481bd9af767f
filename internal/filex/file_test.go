package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) func() {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	return func() { _ = os.Chdir(old) }
}

func TestEnsureDir_CreatesUnderBase(t *testing.T) {
	base := t.TempDir()

	got, err := EnsureDir(base, "images")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(base, "images"), got)

	fi, err := os.Stat(got)
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm()&0o700)
	}
}

func TestEnsureDir_EmptyBaseUsesCWD(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	got, err := EnsureDir("", "exports")
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(filepath.Join(tmp, "exports"))
	require.NoError(t, err)
	gotResolved, err := filepath.EvalSymlinks(got)
	require.NoError(t, err)
	require.Equal(t, want, gotResolved)
}

func TestEnsureDir_Idempotent(t *testing.T) {
	base := t.TempDir()

	first, err := EnsureDir(base, "images")
	require.NoError(t, err)
	second, err := EnsureDir(base, "images")
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.jpg")

	require.NoError(t, WriteFileAtomic(path, strings.NewReader("v1")))
	require.NoError(t, WriteFileAtomic(path, strings.NewReader("v2")))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "v2", string(b))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
}

func TestWriteFileAtomic_MissingDir(t *testing.T) {
	err := WriteFileAtomic(filepath.Join(t.TempDir(), "nope", "x"), strings.NewReader("x"))
	require.Error(t, err)
}

func TestRemoveIfExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	require.NoError(t, RemoveIfExists(path))
	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err))

	require.NoError(t, RemoveIfExists(path))
}
