package element

import (
	"os"

	"github.com/silicontrust/element-command/pkg/protocol"
)

// A Source supplies the input bytes for a lock or unlock operation. Sources are either files
// (File) or in-memory byte sequences (Bytes).
type Source interface {
	readAll() ([]byte, error)
}

// A Destination receives the output of a lock or unlock operation: either a file (File) or a
// caller-owned buffer (NewBuffer). The pipeline populates a Destination only after the element
// has confirmed the operation, so no partial output is ever observable.
type Destination interface {
	write([]byte) error
}

// PathEndpoint is a file path usable as both a Source and a Destination.
type PathEndpoint string

// File returns an endpoint reading from or writing to the file at path. As a Destination, the
// file is created or truncated; if writing fails after that point, the file is removed rather
// than left partial. A destination the pipeline could not open is left untouched.
func File(path string) PathEndpoint {
	return PathEndpoint(path)
}

func (p PathEndpoint) readAll() ([]byte, error) {
	data, err := os.ReadFile(string(p))
	if err != nil {
		return nil, &protocol.IOError{Op: "read", Path: string(p), Err: err}
	}
	return data, nil
}

func (p PathEndpoint) write(data []byte) error {
	return writeFileExact(string(p), data, 0o600)
}

// writeFileExact writes data to path, creating or truncating the file. A failure before the open
// leaves the path untouched; a failure after it removes the file so no partial destination
// survives.
func writeFileExact(path string, data []byte, perm os.FileMode) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return &protocol.IOError{Op: "create", Path: path, Err: err}
	}
	_, werr := f.Write(data)
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		os.Remove(path)
		return &protocol.IOError{Op: "write", Path: path, Err: werr}
	}
	return nil
}

type bytesSource struct {
	data []byte
}

// Bytes returns a Source reading from an in-memory byte sequence. An empty (or nil) slice is
// valid input.
func Bytes(data []byte) Source {
	return bytesSource{data: data}
}

func (b bytesSource) readAll() ([]byte, error) {
	return b.data, nil
}

// A Buffer is a Destination that collects output into memory. The backing slice is allocated at
// exactly the needed size and owned by the caller after the operation returns.
type Buffer struct {
	data []byte
}

// NewBuffer returns an empty buffer Destination.
func NewBuffer() *Buffer {
	return &Buffer{}
}

func (b *Buffer) write(data []byte) error {
	b.data = data
	return nil
}

// Bytes returns the collected output, or nil if no operation has written to the buffer.
func (b *Buffer) Bytes() []byte {
	return b.data
}
