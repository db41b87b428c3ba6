package question

import "errors"

var (
	// ErrInputMissing means no file, or a file without a name, was supplied.
	ErrInputMissing = errors.New("no input file supplied")
	// ErrProcessing matches every *ProcessingError.
	ErrProcessing = errors.New("failed to process file")
	// ErrNotFound is returned when a record id does not exist.
	ErrNotFound = errors.New("question not found")
)

// ProcessingError reports which ingest stage failed.
type ProcessingError struct {
	Stage string
	Err   error
}

func (e *ProcessingError) Error() string {
	return e.Stage + ": " + e.Err.Error()
}

func (e *ProcessingError) Unwrap() error { return e.Err }

func (e *ProcessingError) Is(target error) bool { return target == ErrProcessing }
