package mirror

import (
	"context"
	"fmt"
	"os"

	"dirmirror/internal/model"
)

// mirror walks the source tree and brings every entry over to the destination tree:
// missing directories are created, new and stale files copied, symlinks recreated.
func (m *Mirrorer) mirror(ctx context.Context) error {
	m.log.Debug("mirror pass started")
	return m.walk(ctx, m.opts.SrcDir, m.fs.ReadDir, func(rel model.RelPath, info os.FileInfo) bool {
		return m.mirrorEntry(ctx, rel, info)
	})
}

func (m *Mirrorer) mirrorEntry(ctx context.Context, rel model.RelPath, info os.FileInfo) bool {
	src, dst := rel.Under(m.opts.SrcDir), rel.Under(m.opts.DstDir)

	if info.IsDir() {
		dstInfo, err := probe(m.exec, dst)
		switch {
		case err != nil:
			m.skip(dst, "cannot inspect", err)
			return false
		case !dstInfo.Exists():
			// in a dry run the walk descends anyway, so that everything below gets decided too
			return m.apply(ctx, model.OpKindMakeDir, "", dst)
		case dstInfo.Kind != model.KindDir:
			m.skip(dst, "cannot mirror directory", fmt.Errorf("%w: destination is a %s", ErrKindConflict, dstInfo.Kind))
			return false
		}
		return true
	}

	status, srcStat, err := inspectLink(m.fs, src)
	switch {
	case status == inaccessible:
		m.skip(src, "cannot inspect", err)
	case status == isSymlink:
		m.mirrorSymlink(ctx, rel, src, dst)
	case !srcStat.Mode().IsRegular():
		m.skip(src, "cannot mirror", fmt.Errorf("%w: %s", ErrUnsupportedKind, srcStat.Mode().Type()))
	default:
		m.mirrorFile(ctx, rel, src, dst, srcStat)
	}
	return false
}

// mirrorSymlink recreates the source link unless the destination already is a link with the same target.
// The pointed-to file is never read.
func (m *Mirrorer) mirrorSymlink(ctx context.Context, rel model.RelPath, src, dst string) {
	srcTarget, err := m.fs.Readlink(src)
	if err != nil {
		m.skip(src, "cannot read link", err)
		return
	}

	status, dstStat, err := inspectLink(m.exec, dst)
	switch {
	case status == isSymlink:
		dstTarget, err := m.exec.Readlink(dst)
		if err != nil {
			m.skip(dst, "cannot read link", err)
			return
		}
		entry := model.EntryInfo{
			Rel:     rel,
			SrcInfo: model.PathInfo{Kind: model.KindSymlink, FullPath: src, LinkTarget: srcTarget},
			DstInfo: model.PathInfo{Kind: model.KindSymlink, FullPath: dst, LinkTarget: dstTarget},
		}
		if !entry.LinkDiffers() {
			return
		}
	case status == notSymlink && dstStat.IsDir():
		m.skip(dst, "cannot mirror symlink", fmt.Errorf("%w: destination is a directory", ErrKindConflict))
		return
	case status == inaccessible && !isNotExist(err):
		m.skip(dst, "cannot inspect", err)
		return
	}
	m.apply(ctx, model.OpKindCopySymlink, src, dst)
}

// mirrorFile copies the file when the destination lacks it or the change classifier finds it stale.
func (m *Mirrorer) mirrorFile(ctx context.Context, rel model.RelPath, src, dst string, srcStat os.FileInfo) {
	dstInfo, err := probe(m.exec, dst)
	if err != nil {
		m.skip(dst, "cannot inspect", err)
		return
	}
	entry := model.EntryInfo{Rel: rel, SrcInfo: model.NewPathInfo(src, srcStat), DstInfo: dstInfo}
	switch {
	case entry.DstInfo.Kind == model.KindDir:
		m.skip(dst, "cannot mirror file", fmt.Errorf("%w: destination is a directory", ErrKindConflict))
		return
	case entry.DstInfo.Kind == model.KindSymlink:
		// left over only when pruning it failed; replaced, never compared
	case !entry.IsStale():
		return
	}
	m.apply(ctx, model.OpKindCopyFile, src, dst)
}
