package mirror

import "errors"

var (
	ErrSourceNotDir      = errors.New("source is not a directory")
	ErrDestinationNotDir = errors.New("destination is not a directory")
	ErrKindConflict      = errors.New("entry kind conflict")
	ErrUnsupportedKind   = errors.New("unsupported entry kind")

	errUnknownOperation = errors.New("unknown operation")
)
