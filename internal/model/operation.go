package model

import (
	"fmt"
	"time"

	"dirmirror/pkg/helpers/ut"
)

// OperationStatus is a status of a mirroring operation.
type OperationStatus string

const (
	OpStatusScheduled = "scheduled"
	OpStatusCompleted = "completed"
	OpStatusSimulated = "simulated" // dry run: logged, but nothing was changed
	OpStatusFailed    = "failed"
)

type OperationKind string

const (
	OpKindMakeDir       = "make_dir"
	OpKindRemoveDir     = "remove_dir"
	OpKindRemoveFile    = "remove_file"
	OpKindRemoveSymlink = "remove_symlink"
	OpKindCopyFile      = "copy_file"
	OpKindCopySymlink   = "copy_symlink"
)

var generateOperationID = ut.CreateUint64IDGenerator()

// Operation - a single mutation of the destination tree, decided by one of the passes.
type Operation struct {
	ID          uint64          `json:"id"`
	Status      OperationStatus `json:"status"`
	Kind        OperationKind   `json:"kind"`
	Src         string          `json:"src,omitempty"`
	Dst         string          `json:"dst"`
	Err         error           `json:"-"`
	ScheduledAt time.Time       `json:"scheduledAt"`
	CompletedAt *time.Time      `json:"completedAt,omitempty"`
}

func NewOperation(kind OperationKind, src, dst string) *Operation {
	return &Operation{
		ID:          generateOperationID(),
		Status:      OpStatusScheduled,
		Kind:        kind,
		Src:         src,
		Dst:         dst,
		ScheduledAt: time.Now(),
	}
}

func (op *Operation) Complete(simulated bool) {
	now := time.Now()
	op.CompletedAt = &now
	op.Status = OpStatusCompleted
	if simulated {
		op.Status = OpStatusSimulated
	}
}

func (op *Operation) Fail(err error) {
	now := time.Now()
	op.CompletedAt = &now
	op.Status = OpStatusFailed
	op.Err = err
}

// IsCopy is true for operations that bring content from the source tree.
func (op *Operation) IsCopy() bool {
	return op.Kind == OpKindCopyFile || op.Kind == OpKindCopySymlink
}

// String renders the operation as a transcript line.
func (op *Operation) String() string {
	switch op.Kind {
	case OpKindMakeDir:
		return "Creating directory: " + op.Dst
	case OpKindRemoveDir:
		return "Removing directory: " + op.Dst
	case OpKindRemoveFile:
		return "Removing file: " + op.Dst
	case OpKindRemoveSymlink:
		return "Removing symlink: " + op.Dst
	case OpKindCopyFile, OpKindCopySymlink:
		return fmt.Sprintf("Copying %s to %s", op.Src, op.Dst)
	}
	return fmt.Sprintf("%s %s", op.Kind, op.Dst)
}
