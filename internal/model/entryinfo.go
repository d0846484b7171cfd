package model

import (
	"io/fs"
	"time"
)

// PathInfo holds info about one dir entry in a file tree (of either source OR destination directory).
type PathInfo struct {
	Kind       Kind
	FullPath   string
	Size       int64 // in bytes
	ModTime    time.Time
	LinkTarget string // only for symlinks, as stored on disk
}

// NewPathInfo builds PathInfo from the result of a non-following stat.
func NewPathInfo(fullPath string, info fs.FileInfo) PathInfo {
	if info == nil {
		return PathInfo{Kind: KindAbsent, FullPath: fullPath}
	}
	return PathInfo{
		Kind:     KindOf(info.Mode()),
		FullPath: fullPath,
		Size:     info.Size(),
		ModTime:  info.ModTime(),
	}
}

func (p PathInfo) Exists() bool {
	return p.Kind != KindAbsent
}

// EntryInfo holds info about same dir entry in BOTH file trees (source and destination).
type EntryInfo struct {
	Rel              RelPath
	SrcInfo, DstInfo PathInfo
}

// IsStale reports whether the destination regular file has to be overwritten by the source one.
// Sizes are compared first, then the source must be strictly newer. Equal size and an
// equal-or-older source are treated as identical, contents are never read.
func (e EntryInfo) IsStale() bool {
	if !e.DstInfo.Exists() {
		return true
	}
	if e.SrcInfo.Size != e.DstInfo.Size {
		return true
	}
	return e.SrcInfo.ModTime.After(e.DstInfo.ModTime)
}

// KindMismatch is true when both sides exist, but one is a directory and the other is not.
func (e EntryInfo) KindMismatch() bool {
	if !e.SrcInfo.Exists() || !e.DstInfo.Exists() {
		return false
	}
	return (e.SrcInfo.Kind == KindDir) != (e.DstInfo.Kind == KindDir)
}

// LinkDiffers compares symlink targets verbatim.
func (e EntryInfo) LinkDiffers() bool {
	return e.SrcInfo.LinkTarget != e.DstInfo.LinkTarget
}
