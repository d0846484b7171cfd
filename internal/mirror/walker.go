package mirror

import (
	"context"
	"os"

	"dirmirror/internal/log"
	"dirmirror/internal/model"
)

type listFunc func(path string) ([]os.FileInfo, error)

// visitFunc handles one child and reports whether the walk has to descend into it.
type visitFunc func(rel model.RelPath, info os.FileInfo) bool

type frame struct {
	rel      model.RelPath
	children []os.FileInfo
	next     int
}

// walk is a depth-first traversal of the tree under root with an explicit stack, visiting
// children in listing order and descending right after a child asks for it, like a recursion would.
// A directory that cannot be listed is skipped, its siblings are still visited.
func (m *Mirrorer) walk(ctx context.Context, root string, list listFunc, visit visitFunc) error {
	var stack []*frame
	push := func(rel model.RelPath) {
		dir := rel.Under(root)
		children, err := list(dir)
		if err != nil {
			if rel.IsRoot() && isNotExist(err) {
				m.log.Debug("nothing to walk", log.String("path", dir))
				return
			}
			m.skip(dir, "cannot list directory", err)
			return
		}
		stack = append(stack, &frame{rel: rel, children: children})
	}

	push(model.Root())
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		top := stack[len(stack)-1]
		if top.next >= len(top.children) {
			stack = stack[:len(stack)-1]
			continue
		}
		info := top.children[top.next]
		top.next++

		rel := top.rel.Join(info.Name())
		if visit(rel, info) {
			push(rel)
		}
	}
	return nil
}
