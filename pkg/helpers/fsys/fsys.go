// Package fsys provides the go-billy filesystems the mirrorer works on.
package fsys

import (
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
)

// BaseOSFS is a billy.Filesystem that acts like the native filesystem: paths are used as given
// (absolute or relative to the working directory) and symlink targets are neither rewritten nor followed.
type BaseOSFS struct {
	osfs.ChrootOS
}

// Chroot returns a new filesystem rooted at the provided path.
func (b *BaseOSFS) Chroot(path string) (billy.Filesystem, error) {
	return osfs.New(path), nil
}

// Root returns the root path for this filesystem.
func (b *BaseOSFS) Root() string {
	return string(filepath.Separator)
}

// Chtimes changes the access and modification times of the named file.
func (b *BaseOSFS) Chtimes(name string, atime, mtime time.Time) error {
	return os.Chtimes(name, atime, mtime)
}

// NewBaseOSFS creates a new OS filesystem that acts like the native filesystem.
func NewBaseOSFS() *BaseOSFS {
	return &BaseOSFS{}
}

// NewInMemoryFS creates a new in-memory filesystem.
func NewInMemoryFS() billy.Filesystem {
	return memfs.New()
}

// Chtimer is implemented by filesystems able to set modification times.
type Chtimer interface {
	Chtimes(name string, atime, mtime time.Time) error
}

var _ billy.Filesystem = (*BaseOSFS)(nil)
var _ Chtimer = (*BaseOSFS)(nil)
