package mirror

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"dirmirror/internal/model"
)

// SkippedEntry is an entry the run had to leave as it was.
type SkippedEntry struct {
	Path   string
	Reason string
	Err    error
}

func (s SkippedEntry) Error() string {
	return fmt.Sprintf("%s %s: %v", s.Reason, s.Path, s.Err)
}

func (s SkippedEntry) Unwrap() error {
	return s.Err
}

// Result describes one run: every operation in the order it was decided and every skipped entry.
type Result struct {
	DryRun     bool
	Operations []*model.Operation
	Skipped    []SkippedEntry

	Copied          int
	DirsCreated     int
	DirsRemoved     int
	FilesRemoved    int
	SymlinksRemoved int
}

func newResult(dryRun bool) *Result {
	return &Result{DryRun: dryRun}
}

func (r *Result) add(op *model.Operation) {
	r.Operations = append(r.Operations, op)
	if op.Status == model.OpStatusFailed {
		return
	}
	if op.IsCopy() {
		r.Copied++
		return
	}
	switch op.Kind {
	case model.OpKindMakeDir:
		r.DirsCreated++
	case model.OpKindRemoveDir:
		r.DirsRemoved++
	case model.OpKindRemoveFile:
		r.FilesRemoved++
	case model.OpKindRemoveSymlink:
		r.SymlinksRemoved++
	}
}

func (r *Result) addSkipped(path, reason string, err error) {
	r.Skipped = append(r.Skipped, SkippedEntry{Path: path, Reason: reason, Err: err})
}

// Clean is true when nothing had to be skipped.
func (r *Result) Clean() bool {
	return len(r.Skipped) == 0
}

func (r *Result) Removed() int {
	return r.DirsRemoved + r.FilesRemoved + r.SymlinksRemoved
}

// Err joins all skipped entries, nil for a clean run.
func (r *Result) Err() error {
	var merr *multierror.Error
	for _, s := range r.Skipped {
		merr = multierror.Append(merr, s)
	}
	return merr.ErrorOrNil()
}

// Transcript returns the decision lines of the run.
func (r *Result) Transcript() []string {
	lines := make([]string, 0, len(r.Operations))
	for _, op := range r.Operations {
		lines = append(lines, op.String())
	}
	return lines
}

func (r *Result) Summary() string {
	return fmt.Sprintf("%d copied, %d directories created, %d removed, %d skipped",
		r.Copied, r.DirsCreated, r.Removed(), len(r.Skipped))
}
