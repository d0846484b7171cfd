package iout

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"syscall"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"dirmirror/pkg/helpers/fsys"
)

var ErrNotRegular = errors.New("not a regular file")

// readerWithContext allows to perform a cancellable read operation.
type readerWithContext struct {
	ctx context.Context
	r   io.Reader
}

func newReaderWithContext(ctx context.Context, r io.Reader) io.Reader {
	return &readerWithContext{ctx: ctx, r: r}
}

func (r *readerWithContext) Read(p []byte) (int, error) {
	select {
	case <-r.ctx.Done():
		return 0, r.ctx.Err()
	default:
		return r.r.Read(p)
	}
}

// IsErrNotDir reports whether err was caused by a path component that is not a directory.
func IsErrNotDir(err error) bool {
	return errors.Is(err, syscall.ENOTDIR)
}

// EnsureDirExists creates the directory (with parents) unless it exists already.
func EnsureDirExists(bfs billy.Filesystem, path string) error {
	if err := bfs.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("cannot make dir: %w", err)
	}
	return nil
}

// RemoveAll removes the path and, for a directory, everything below it.
func RemoveAll(bfs billy.Filesystem, path string) error {
	if err := util.RemoveAll(bfs, path); err != nil {
		return fmt.Errorf("cannot remove entry: %w", err)
	}
	return nil
}

// Remove removes a file, a symlink or an empty directory.
func Remove(bfs billy.Filesystem, path string) error {
	if err := bfs.Remove(path); err != nil {
		return fmt.Errorf("cannot remove entry: %w", err)
	}
	return nil
}

// CopyFile copies the regular file at the source path over the destination path.
// A symlink found at the destination is replaced rather than written through.
// When the filesystem supports it, the copy gets the same modTime as the source file.
func CopyFile(ctx context.Context, bfs billy.Filesystem, srcPath, dstPath string) error {
	srcInfo, err := bfs.Lstat(srcPath)
	if err != nil {
		return fmt.Errorf("cannot stat source: %w", err)
	}
	if !srcInfo.Mode().IsRegular() {
		return fmt.Errorf("cannot copy %q: %w", srcPath, ErrNotRegular)
	}
	if err := removeIfSymlink(bfs, dstPath); err != nil {
		return err
	}
	if err := copyFileContents(ctx, bfs, srcPath, dstPath, srcInfo.Mode().Perm()); err != nil {
		return fmt.Errorf("cannot copy file: %w", err)
	}
	if ch, ok := bfs.(fsys.Chtimer); ok {
		if err := ch.Chtimes(dstPath, time.Now(), srcInfo.ModTime()); err != nil {
			return fmt.Errorf("cannot set file modification time: %w", err)
		}
	}
	return nil
}

// CopySymlink recreates the source symlink at the destination with the very same target string.
// Whatever non-directory entry exists at the destination is replaced.
func CopySymlink(bfs billy.Filesystem, srcPath, dstPath string) error {
	target, err := bfs.Readlink(srcPath)
	if err != nil {
		return fmt.Errorf("cannot read link: %w", err)
	}
	dstInfo, err := bfs.Lstat(dstPath)
	switch {
	case err == nil && dstInfo.IsDir():
		return fmt.Errorf("cannot replace directory %q with a symlink: %w", dstPath, syscall.EISDIR)
	case err == nil:
		if err := Remove(bfs, dstPath); err != nil {
			return err
		}
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("cannot stat destination: %w", err)
	}
	if err := bfs.Symlink(target, dstPath); err != nil {
		return fmt.Errorf("cannot create symlink: %w", err)
	}
	return nil
}

func removeIfSymlink(bfs billy.Filesystem, path string) error {
	info, err := bfs.Lstat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("cannot stat destination: %w", err)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return nil
	}
	return Remove(bfs, path)
}

func copyFileContents(ctx context.Context, bfs billy.Filesystem, src, dst string, perm os.FileMode) error {
	in, err := bfs.Open(src)
	if err != nil {
		return fmt.Errorf("cannot open file: %w", err)
	}
	defer in.Close()

	out, err := bfs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("cannot create file: %w", err)
	}

	if _, err = io.Copy(out, newReaderWithContext(ctx, in)); err != nil {
		_ = out.Close()
		return fmt.Errorf("cannot read/write file content: %w", err)
	}
	if s, ok := out.(interface{ Sync() error }); ok {
		if err := s.Sync(); err != nil {
			_ = out.Close()
			return err
		}
	}
	return out.Close()
}
