package protocol

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionClosed indicates an operation was attempted on a Session after Close.
	ErrSessionClosed = errors.New("session closed")

	// ErrAuthentication indicates the element rejected a locked object during unlock. The element
	// cannot distinguish a tampered blob from a blob locked under a different key or key class, so
	// both conditions surface as ErrAuthentication.
	ErrAuthentication = errors.New("authentication failed: locked object rejected by element")

	// ErrInvalidArgument indicates a malformed input (wrong digest width, undecodable signature,
	// out-of-range slot or channel) that was rejected before reaching hardware.
	ErrInvalidArgument = errors.New("invalid argument")
)

// DeviceError indicates the element or the bus faulted while executing an otherwise well-formed
// request. The underlying fault is preserved in Err.
type DeviceError struct {
	Op  string
	Err error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("element %s failed: %s", e.Op, e.Err)
}

func (e *DeviceError) Unwrap() error {
	return e.Err
}

// NewDeviceError wraps a fault reported by the element during the named operation.
func NewDeviceError(op string, err error) *DeviceError {
	return &DeviceError{Op: op, Err: err}
}

// IOError indicates a filesystem failure while reading a source or writing a destination.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// IsInvalidArgument reports whether err was caused by malformed caller input.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// IsAuthenticationError reports whether err indicates an integrity check failure during unlock.
func IsAuthenticationError(err error) bool {
	return errors.Is(err, ErrAuthentication)
}

// IsDeviceError reports whether err originated from the element or the bus.
func IsDeviceError(err error) bool {
	var devErr *DeviceError
	return errors.As(err, &devErr)
}

// IsIOError reports whether err originated from filesystem I/O.
func IsIOError(err error) bool {
	var ioErr *IOError
	return errors.As(err, &ioErr)
}

// InvalidArgument returns an error wrapping ErrInvalidArgument with a description of the rejected
// input.
func InvalidArgument(format string, a ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, a...))
}
