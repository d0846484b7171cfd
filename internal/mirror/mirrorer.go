package mirror

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-git/go-billy/v5"

	"dirmirror/internal/log"
	"dirmirror/internal/model"
)

type Options struct {
	SrcDir string
	DstDir string
	DryRun bool
	// Out receives the transcript, one line per decided operation.
	Out io.Writer
	// PassSeparator, when set, is written to Out between the prune and the mirror passes.
	PassSeparator string
}

// Mirrorer makes the destination tree an exact reflection of the source tree.
// It runs two sequential passes: prune (remove what the source lacks) and mirror (create and update).
type Mirrorer struct {
	log  log.Logger
	fs   billy.Filesystem
	opts Options
	out  io.Writer

	// per run state
	exec   actionExecutor
	result *Result
}

func New(logger log.Logger, fsys billy.Filesystem, opts Options) *Mirrorer {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	return &Mirrorer{log: logger, fs: fsys, opts: opts, out: out}
}

// Run performs both passes. The returned error is only about the run as a whole: a failed
// precondition or an interruption. Entries that had to be skipped are reported by the Result.
func (m *Mirrorer) Run(ctx context.Context) (*Result, error) {
	m.exec = newExecutor(m.fs, m.opts.DryRun)
	m.result = newResult(m.opts.DryRun)

	start := time.Now()
	m.log.Info("mirroring started", log.String("source", m.opts.SrcDir),
		log.String("destination", m.opts.DstDir), log.Bool("dryRun", m.opts.DryRun))

	if err := m.checkSource(); err != nil {
		return m.result, err
	}
	if err := m.prepareDestination(ctx); err != nil {
		return m.result, err
	}

	if err := m.prune(ctx); err != nil {
		return m.result, err
	}
	if m.opts.PassSeparator != "" {
		_, _ = fmt.Fprintln(m.out, m.opts.PassSeparator)
	}
	if err := m.mirror(ctx); err != nil {
		return m.result, err
	}

	m.log.Info("mirroring finished", log.String("took", time.Since(start).String()),
		log.Int("operations", len(m.result.Operations)), log.Int("skipped", len(m.result.Skipped)))
	m.log.Debug("mirroring transcript", log.Any("lines", m.result.Transcript()))
	return m.result, nil
}

func (m *Mirrorer) checkSource() error {
	info, err := m.fs.Stat(m.opts.SrcDir)
	if err != nil {
		if isNotExist(err) {
			return fmt.Errorf("%w: %q does not exist", ErrSourceNotDir, m.opts.SrcDir)
		}
		return fmt.Errorf("cannot access source %q: %w", m.opts.SrcDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %q", ErrSourceNotDir, m.opts.SrcDir)
	}
	return nil
}

func (m *Mirrorer) prepareDestination(ctx context.Context) error {
	info, err := m.fs.Stat(m.opts.DstDir)
	switch {
	case err == nil && info.IsDir():
		return nil
	case err == nil:
		return fmt.Errorf("%w: %q", ErrDestinationNotDir, m.opts.DstDir)
	case !isNotExist(err):
		return fmt.Errorf("cannot access destination %q: %w", m.opts.DstDir, err)
	}
	if !m.apply(ctx, model.OpKindMakeDir, "", m.opts.DstDir) {
		return fmt.Errorf("cannot create destination %q", m.opts.DstDir)
	}
	return nil
}

// apply writes the transcript line first and then hands the operation to the executor.
func (m *Mirrorer) apply(ctx context.Context, kind model.OperationKind, src, dst string) bool {
	op := model.NewOperation(kind, src, dst)
	_, _ = fmt.Fprintln(m.out, op.String())
	m.log.Debug("operation decided", log.Uint64("opID", op.ID), log.String("kind", string(op.Kind)),
		log.String("dst", op.Dst))

	if err := m.exec.Execute(ctx, op); err != nil {
		op.Fail(err)
		m.result.add(op)
		m.skip(dst, string(kind)+" failed", err)
		return false
	}
	m.result.add(op)
	return true
}

func (m *Mirrorer) skip(path, reason string, err error) {
	m.result.addSkipped(path, reason, err)
	m.log.Warn("entry skipped: "+reason, log.String("path", path), log.Cause(err))
}
