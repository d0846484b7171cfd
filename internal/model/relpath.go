package model

import (
	"path"
	"path/filepath"
)

// RelPath is a path relative to the roots of both trees, kept as separate name segments
// so that the source and destination locations are derived without string concatenation.
type RelPath []string

// Root is the relative path of the trees roots themselves.
func Root() RelPath {
	return nil
}

func (p RelPath) IsRoot() bool {
	return len(p) == 0
}

// Join returns a new path with the name appended; p itself is never modified.
func (p RelPath) Join(name string) RelPath {
	joined := make(RelPath, len(p), len(p)+1)
	copy(joined, p)
	return append(joined, name)
}

// Name is the last segment, or "" for the root.
func (p RelPath) Name() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// Under resolves the relative path against a tree root.
func (p RelPath) Under(root string) string {
	if len(p) == 0 {
		return root
	}
	return filepath.Join(append([]string{root}, p...)...)
}

func (p RelPath) String() string {
	if len(p) == 0 {
		return "."
	}
	return path.Join(p...)
}
