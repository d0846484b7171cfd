package mirror

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"

	"dirmirror/internal/model"
	"dirmirror/pkg/helpers/iout"
)

// actionExecutor performs (or pretends to perform) the operations decided by both passes.
// Destination probes go through it as well, so that a simulated run sees the tree it would have produced.
type actionExecutor interface {
	Execute(ctx context.Context, op *model.Operation) error
	Lstat(path string) (os.FileInfo, error)
	Readlink(path string) (string, error)
	ReadDir(path string) ([]os.FileInfo, error)
}

func newExecutor(fsys billy.Filesystem, dryRun bool) actionExecutor {
	if dryRun {
		return &dryRunExecutor{fs: fsys, removed: make(map[string]struct{})}
	}
	return &liveExecutor{fs: fsys}
}

type liveExecutor struct {
	fs billy.Filesystem
}

func (e *liveExecutor) Execute(ctx context.Context, op *model.Operation) error {
	var err error
	switch op.Kind {
	case model.OpKindMakeDir:
		err = iout.EnsureDirExists(e.fs, op.Dst)
	case model.OpKindRemoveDir:
		err = iout.RemoveAll(e.fs, op.Dst)
	case model.OpKindRemoveFile, model.OpKindRemoveSymlink:
		err = iout.Remove(e.fs, op.Dst)
	case model.OpKindCopyFile:
		err = iout.CopyFile(ctx, e.fs, op.Src, op.Dst)
	case model.OpKindCopySymlink:
		err = iout.CopySymlink(e.fs, op.Src, op.Dst)
	default:
		err = fmt.Errorf("%w: %q", errUnknownOperation, op.Kind)
	}
	if err != nil {
		return err
	}
	op.Complete(false)
	return nil
}

func (e *liveExecutor) Lstat(path string) (os.FileInfo, error) {
	return e.fs.Lstat(path)
}

func (e *liveExecutor) Readlink(path string) (string, error) {
	return e.fs.Readlink(path)
}

func (e *liveExecutor) ReadDir(path string) ([]os.FileInfo, error) {
	return e.fs.ReadDir(path)
}

// dryRunExecutor never touches the filesystem. It remembers what it would have removed and hides
// those entries (with everything below them) from later probes.
type dryRunExecutor struct {
	fs      billy.Filesystem
	removed map[string]struct{}
}

func (e *dryRunExecutor) Execute(_ context.Context, op *model.Operation) error {
	switch op.Kind {
	case model.OpKindRemoveDir, model.OpKindRemoveFile, model.OpKindRemoveSymlink:
		e.removed[filepath.Clean(op.Dst)] = struct{}{}
	case model.OpKindMakeDir, model.OpKindCopyFile, model.OpKindCopySymlink:
	default:
		return fmt.Errorf("%w: %q", errUnknownOperation, op.Kind)
	}
	op.Complete(true)
	return nil
}

func (e *dryRunExecutor) hidden(path string) bool {
	p := filepath.Clean(path)
	for {
		if _, ok := e.removed[p]; ok {
			return true
		}
		parent := filepath.Dir(p)
		if parent == p {
			return false
		}
		p = parent
	}
}

func (e *dryRunExecutor) Lstat(path string) (os.FileInfo, error) {
	if e.hidden(path) {
		return nil, notExistErr("lstat", path)
	}
	return e.fs.Lstat(path)
}

func (e *dryRunExecutor) Readlink(path string) (string, error) {
	if e.hidden(path) {
		return "", notExistErr("readlink", path)
	}
	return e.fs.Readlink(path)
}

func (e *dryRunExecutor) ReadDir(path string) ([]os.FileInfo, error) {
	if e.hidden(path) {
		return nil, notExistErr("readdir", path)
	}
	return e.fs.ReadDir(path)
}
