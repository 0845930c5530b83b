package element

import (
	"os"

	"github.com/silicontrust/element-command/pkg/connector"
	"github.com/silicontrust/element-command/pkg/protocol"
)

// randomChunkSize bounds single bus transactions when filling files with random data.
const randomChunkSize = 4096

// Random returns n bytes from the element's true random number generator.
func (s *Session) Random(n int) ([]byte, error) {
	if n < 0 {
		return nil, protocol.InvalidArgument("random byte count %d is negative", n)
	}
	if n == 0 {
		return []byte{}, nil
	}
	var data []byte
	err := s.bus("random", func(c connector.Connector) error {
		var busErr error
		data, busErr = c.Random(n)
		return busErr
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// CreateRandomFile fills the file at path with n random bytes, fetched from the element in
// bus-sized chunks. On any failure the partially written file is removed.
func (s *Session) CreateRandomFile(path string, n int) error {
	if n < 0 {
		return protocol.InvalidArgument("random byte count %d is negative", n)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return &protocol.IOError{Op: "create", Path: path, Err: err}
	}
	for remaining := n; remaining > 0; {
		chunk := remaining
		if chunk > randomChunkSize {
			chunk = randomChunkSize
		}
		data, err := s.Random(chunk)
		if err != nil {
			f.Close()
			os.Remove(path)
			return err
		}
		if _, err := f.Write(data); err != nil {
			f.Close()
			os.Remove(path)
			return &protocol.IOError{Op: "write", Path: path, Err: err}
		}
		remaining -= chunk
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return &protocol.IOError{Op: "close", Path: path, Err: err}
	}
	return nil
}
