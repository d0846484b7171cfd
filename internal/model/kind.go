package model

import "io/fs"

// Kind is the classification of one tree node. Symlinks are never followed when classifying.
type Kind int

const (
	KindAbsent Kind = iota
	KindDir
	KindFile
	KindSymlink
	KindInaccessible
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindDir:
		return "directory"
	case KindFile:
		return "file"
	case KindSymlink:
		return "symlink"
	case KindInaccessible:
		return "inaccessible"
	}
	return "unknown"
}

// KindOf classifies a mode obtained by a non-following (lstat-like) query.
// Anything that is neither a directory nor a symlink counts as a file.
func KindOf(mode fs.FileMode) Kind {
	switch {
	case mode&fs.ModeSymlink != 0:
		return KindSymlink
	case mode.IsDir():
		return KindDir
	default:
		return KindFile
	}
}
