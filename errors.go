package elemental

import "github.com/pkg/errors"

var (
	// ErrNotFound is returned by Fit when the training file does not exist.
	ErrNotFound = errors.New("training file not found")
	// ErrInvalidState is returned when Evaluate, Save or Model is called before a successful Fit.
	ErrInvalidState = errors.New("trainer has not been fitted")
	// ErrIO is returned when the trained model cannot be written.
	ErrIO = errors.New("model i/o failure")
)

// ioError matches ErrIO and unwraps to the failure that caused it.
type ioError struct {
	path string
	err  error
}

func (e *ioError) Error() string {
	return ErrIO.Error() + ": saving model to " + e.path + ": " + e.err.Error()
}

func (e *ioError) Is(target error) bool {
	return target == ErrIO
}

func (e *ioError) Unwrap() error {
	return e.err
}
