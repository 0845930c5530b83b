package element

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/silicontrust/element-command/pkg/protocol"
)

func TestFileEndpoint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "endpoint")
	if err := File(path).write([]byte("payload")); err != nil {
		t.Fatalf("write: %s", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %s", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("destination file mode = %o, want 600", perm)
	}
	data, err := File(path).readAll()
	if err != nil {
		t.Fatalf("readAll: %s", err)
	}
	if string(data) != "payload" {
		t.Errorf("readAll = %q", data)
	}
}

func TestFileEndpointReadMissing(t *testing.T) {
	_, err := File(filepath.Join(t.TempDir(), "absent")).readAll()
	if !protocol.IsIOError(err) {
		t.Fatalf("reading a missing file returned %v, want an I/O error", err)
	}
}

func TestFileEndpointWriteFailureRemoves(t *testing.T) {
	// Writing into a missing directory fails at create time and must not leave a file behind.
	path := filepath.Join(t.TempDir(), "no-such-dir", "out")
	if err := File(path).write([]byte("x")); !protocol.IsIOError(err) {
		t.Fatalf("write into missing directory returned %v, want an I/O error", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("partial destination left behind")
	}
}

// A destination the pipeline never managed to open must survive the failure untouched.
func TestFileEndpointWriteKeepsUnopenedDestination(t *testing.T) {
	target := filepath.Join(t.TempDir(), "occupied")
	if err := os.Mkdir(target, 0o755); err != nil {
		t.Fatalf("Mkdir: %s", err)
	}
	if err := File(target).write([]byte("x")); !protocol.IsIOError(err) {
		t.Fatalf("write to a directory path returned %v, want an I/O error", err)
	}
	info, err := os.Stat(target)
	if err != nil {
		t.Fatalf("pre-existing destination is gone: %s", err)
	}
	if !info.IsDir() {
		t.Error("pre-existing destination was replaced")
	}
}

func TestBytesAndBuffer(t *testing.T) {
	data, err := Bytes([]byte{1, 2, 3}).readAll()
	if err != nil {
		t.Fatalf("readAll: %s", err)
	}
	if !bytes.Equal(data, []byte{1, 2, 3}) {
		t.Errorf("readAll = %v", data)
	}

	empty, err := Bytes(nil).readAll()
	if err != nil || len(empty) != 0 {
		t.Errorf("nil source readAll = %v, %v", empty, err)
	}

	buf := NewBuffer()
	if buf.Bytes() != nil {
		t.Error("fresh buffer is not empty")
	}
	if err := buf.write([]byte("collected")); err != nil {
		t.Fatalf("write: %s", err)
	}
	if string(buf.Bytes()) != "collected" {
		t.Errorf("Bytes = %q", buf.Bytes())
	}
}
