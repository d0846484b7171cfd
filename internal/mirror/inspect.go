package mirror

import (
	"errors"
	"io/fs"
	"os"

	"dirmirror/internal/model"
	"dirmirror/pkg/helpers/iout"
)

type linkStatus int

const (
	notSymlink linkStatus = iota
	isSymlink
	inaccessible
)

type lstater interface {
	Lstat(path string) (os.FileInfo, error)
}

// inspectLink classifies the path without following it. A failed query (permissions, the entry
// vanished after listing) is reported as inaccessible together with the cause.
func inspectLink(fsys lstater, path string) (linkStatus, os.FileInfo, error) {
	info, err := fsys.Lstat(path)
	if err != nil {
		return inaccessible, nil, err
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return isSymlink, info, nil
	}
	return notSymlink, info, nil
}

// probe looks up the counterpart of an entry in the other tree.
// Absence is a normal outcome, not an error.
func probe(fsys lstater, path string) (model.PathInfo, error) {
	info, err := fsys.Lstat(path)
	switch {
	case err == nil:
		return model.NewPathInfo(path, info), nil
	case isNotExist(err):
		return model.PathInfo{Kind: model.KindAbsent, FullPath: path}, nil
	default:
		return model.PathInfo{Kind: model.KindInaccessible, FullPath: path}, err
	}
}

// isNotExist also covers a path whose parent turned out to be a file.
func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || iout.IsErrNotDir(err)
}

func notExistErr(op, path string) error {
	return &fs.PathError{Op: op, Path: path, Err: fs.ErrNotExist}
}
