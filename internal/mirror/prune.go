package mirror

import (
	"context"
	"os"

	"dirmirror/internal/log"
	"dirmirror/internal/model"
)

// prune walks the destination tree and removes every entry without a counterpart of the same kind
// at the same relative path of the source tree. Freshness is left to the mirror pass.
func (m *Mirrorer) prune(ctx context.Context) error {
	m.log.Debug("prune pass started")
	return m.walk(ctx, m.opts.DstDir, m.exec.ReadDir, func(rel model.RelPath, info os.FileInfo) bool {
		return m.pruneEntry(ctx, rel, info)
	})
}

func (m *Mirrorer) pruneEntry(ctx context.Context, rel model.RelPath, info os.FileInfo) bool {
	src, dst := rel.Under(m.opts.SrcDir), rel.Under(m.opts.DstDir)

	if info.IsDir() {
		srcInfo, err := probe(m.fs, src)
		if err != nil {
			m.skip(dst, "cannot inspect source counterpart", err)
			return false
		}
		entry := model.EntryInfo{Rel: rel, SrcInfo: srcInfo, DstInfo: model.NewPathInfo(dst, info)}
		if entry.SrcInfo.Exists() && !entry.KindMismatch() {
			return true
		}
		m.apply(ctx, model.OpKindRemoveDir, "", dst)
		return false
	}

	status, dstStat, err := inspectLink(m.exec, dst)
	switch status {
	case inaccessible:
		m.skip(dst, "cannot inspect", err)
	case isSymlink:
		// any failure to read a link at the source side counts as "no link there"
		if _, err := m.fs.Readlink(src); err != nil {
			m.log.Debug("source has no symlink here", log.String("path", src), log.Cause(err))
			m.apply(ctx, model.OpKindRemoveSymlink, "", dst)
		}
	case notSymlink:
		srcInfo, err := probe(m.fs, src)
		if err != nil {
			m.skip(dst, "cannot inspect source counterpart", err)
			return false
		}
		entry := model.EntryInfo{Rel: rel, SrcInfo: srcInfo, DstInfo: model.NewPathInfo(dst, dstStat)}
		if !entry.SrcInfo.Exists() || entry.KindMismatch() {
			m.apply(ctx, model.OpKindRemoveFile, "", dst)
		}
	}
	return false
}
