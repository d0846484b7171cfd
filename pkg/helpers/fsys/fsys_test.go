package fsys

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/stretchr/testify/require"
)

func testMkdirAllLstat(t *testing.T, fs billy.Filesystem, root string) {
	t.Helper()
	requires := require.New(t)

	requires.NoError(fs.MkdirAll(filepath.Join(root, "a/b/c"), 0o755))
	info, err := fs.Lstat(filepath.Join(root, "a/b"))
	requires.NoError(err)
	requires.True(info.IsDir())
}

func testSymlinkTargetIsVerbatim(t *testing.T, fs billy.Filesystem, root string) {
	t.Helper()
	requires := require.New(t)

	for name, target := range map[string]string{
		"rel":      "target.txt",
		"up":       "../elsewhere/target.txt",
		"abs":      "/definitely/not/existing",
		"dangling": "missing",
	} {
		link := filepath.Join(root, name)
		requires.NoError(fs.Symlink(target, link))

		got, err := fs.Readlink(link)
		requires.NoError(err)
		requires.Equal(target, got, name)

		info, err := fs.Lstat(link)
		requires.NoError(err)
		requires.NotZero(info.Mode()&os.ModeSymlink, name)
	}
}

func testReadDirDoesNotFollowLinks(t *testing.T, fs billy.Filesystem, root string) {
	t.Helper()
	requires := require.New(t)

	dir := filepath.Join(root, "listing")
	requires.NoError(fs.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	requires.NoError(fs.Symlink("sub", filepath.Join(dir, "sublink")))

	entries, err := fs.ReadDir(dir)
	requires.NoError(err)
	requires.Len(entries, 2)
	for _, e := range entries {
		switch e.Name() {
		case "sub":
			requires.True(e.IsDir())
		case "sublink":
			requires.False(e.IsDir())
		default:
			t.Fatalf("unexpected entry %q", e.Name())
		}
	}
}

// runSuite runs the checks the mirrorer relies on against a billy.Filesystem.
func runSuite(t *testing.T, fs billy.Filesystem, root string) {
	t.Helper()
	testMkdirAllLstat(t, fs, root)
	testSymlinkTargetIsVerbatim(t, fs, root)
	testReadDirDoesNotFollowLinks(t, fs, root)
}

func TestBaseOSFS_Suite(t *testing.T) {
	runSuite(t, NewBaseOSFS(), t.TempDir())
}

func TestBaseOSFS_Chtimes(t *testing.T) {
	requires := require.New(t)
	fs := NewBaseOSFS()
	path := filepath.Join(t.TempDir(), "f.txt")
	requires.NoError(os.WriteFile(path, []byte("abc"), 0o644))

	mtime := time.Date(2001, 2, 3, 4, 5, 6, 0, time.UTC)
	requires.NoError(fs.Chtimes(path, time.Now(), mtime))

	info, err := fs.Stat(path)
	requires.NoError(err)
	requires.True(mtime.Equal(info.ModTime()))
	requires.Equal(string(filepath.Separator), fs.Root())
}
