package element

import (
	"errors"

	"github.com/silicontrust/element-command/pkg/connector"
	"github.com/silicontrust/element-command/pkg/protocol"
)

// Lock encrypts and authenticates the source bytes under the given key class, writing the
// resulting locked object to dst. The blob's internal layout is defined by the element firmware
// and is only ever round-tripped, never reinterpreted.
//
// The four source/destination shape combinations (file or buffer on either end) are
// instantiations of this one pipeline; see also the LockFile and LockBytes conveniences.
func (s *Session) Lock(src Source, dst Destination, class KeyClass) error {
	plaintext, err := src.readAll()
	if err != nil {
		return err
	}
	var blob []byte
	err = s.bus("lock", func(c connector.Connector) error {
		var busErr error
		blob, busErr = c.EncryptAuth(plaintext, class)
		return busErr
	})
	if err != nil {
		return err
	}
	return dst.write(blob)
}

// Unlock verifies a locked object's integrity and, only after the element confirms authenticity,
// writes the recovered plaintext to dst. The key class must match the class used to lock;
// a mismatch is indistinguishable from tampering and surfaces as protocol.ErrAuthentication.
func (s *Session) Unlock(src Source, dst Destination, class KeyClass) error {
	blob, err := src.readAll()
	if err != nil {
		return err
	}
	var plaintext []byte
	err = s.bus("unlock", func(c connector.Connector) error {
		var busErr error
		plaintext, busErr = c.DecryptVerify(blob, class)
		return busErr
	})
	if err != nil {
		if errors.Is(err, connector.ErrAuthFail) {
			return protocol.ErrAuthentication
		}
		return err
	}
	return dst.write(plaintext)
}

// LockBytes locks an in-memory payload and returns the locked object.
func (s *Session) LockBytes(plaintext []byte, class KeyClass) ([]byte, error) {
	buf := NewBuffer()
	if err := s.Lock(Bytes(plaintext), buf, class); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnlockBytes unlocks an in-memory locked object and returns the plaintext.
func (s *Session) UnlockBytes(blob []byte, class KeyClass) ([]byte, error) {
	buf := NewBuffer()
	if err := s.Unlock(Bytes(blob), buf, class); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// LockFile locks the contents of srcPath into dstPath.
func (s *Session) LockFile(srcPath, dstPath string, class KeyClass) error {
	return s.Lock(File(srcPath), File(dstPath), class)
}

// UnlockFile unlocks the locked object at srcPath into dstPath.
func (s *Session) UnlockFile(srcPath, dstPath string, class KeyClass) error {
	return s.Unlock(File(srcPath), File(dstPath), class)
}
