// Package connector defines the boundary between the element API and the hardware transport.
package connector

import (
	"errors"

	"github.com/silicontrust/element-command/pkg/protocol"
)

// KeyClass selects which of the element's two symmetric keys a lock or unlock operation uses.
type KeyClass int

const (
	// KeyClassOneWay key material never leaves the device. Objects locked with it cannot be
	// unlocked anywhere else.
	KeyClassOneWay KeyClass = iota

	// KeyClassShared key material is derivable by a designated counterpart, so objects locked with
	// it can be unlocked by that counterpart (and vice versa).
	KeyClassShared
)

func (c KeyClass) String() string {
	if c == KeyClassShared {
		return "shared"
	}
	return "one-way"
}

// Axis identifies an accelerometer axis for tap sensitivity configuration.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
	AxisAll
)

// ActionFlags is the per-channel perimeter breach action bitset persisted inside the element.
type ActionFlags uint32

const (
	ActionNotify       ActionFlags = 1 << 0
	ActionSelfDestruct ActionFlags = 1 << 1
)

// EventClass distinguishes the element's two asynchronous physical event sources.
type EventClass int

const (
	EventTap EventClass = iota
	EventPerimeter
)

// Event is an asynchronous notification pushed by the element.
type Event struct {
	Class EventClass
	// Channel is the perimeter channel that triggered, for EventPerimeter events.
	Channel int
	// Timestamp is the element's RTC reading when the event occurred, in epoch seconds.
	Timestamp uint32
}

// EventBufferSize is the number of undelivered notifications a Connector must be able to queue.
const EventBufferSize = 8

// ErrAuthFail is returned by DecryptVerify when the element rejects a locked object's integrity
// check. The element does not report why: a tampered blob and a wrong key class are
// indistinguishable from outside the hardware.
var ErrAuthFail = errors.New("element reported authentication failure")

// Connector executes primitive operations on a secure element.
//
// Calls are synchronous and may block on the physical bus. Implementations are not required to be
// re-entrant; the Session layer serializes access so that at most one call per Connector is in
// flight. Returned byte slices must be freshly allocated on every call; the caller assumes
// exclusive ownership.
type Connector interface {
	// Random returns n bytes from the element's true random number generator.
	Random(n int) ([]byte, error)

	// EncryptAuth encrypts and authenticates plaintext under the named key class, returning the
	// locked object as an opaque blob whose layout is defined by the element firmware.
	EncryptAuth(plaintext []byte, class KeyClass) ([]byte, error)

	// DecryptVerify checks a locked object's integrity and, only on success, returns the
	// plaintext. Integrity failure is reported as ErrAuthFail.
	DecryptVerify(blob []byte, class KeyClass) ([]byte, error)

	// Sign signs a digest with the private key in the given slot, returning the signature in the
	// element's native encoding (fixed-width R||S).
	Sign(digest []byte, slot int) ([]byte, error)

	// Verify checks a native-encoding signature over digest against the element's own public key
	// for the slot. A cryptographic mismatch returns (false, nil); faults return a non-nil error.
	Verify(digest []byte, slot int, sig []byte) (bool, error)

	// VerifyForeign checks a signature against a caller-supplied uncompressed public key on the
	// given curve. The signature is parsed strictly according to encoding.
	VerifyForeign(digest, pubkey []byte, curve protocol.Curve, sig []byte, encoding protocol.SignatureEncoding) (bool, error)

	// ExportPublicKey returns the uncompressed public curve point for the slot.
	ExportPublicKey(slot int) ([]byte, error)

	// GetTime reads the element's RTC. If precise is true the call blocks until the next second
	// boundary (up to one second).
	GetTime(precise bool) (uint32, error)

	// ReadAccelerometer returns the most recent x, y, z axis samples.
	ReadAccelerometer() ([3]protocol.AxisData, error)

	// ReadTamperLog returns one epoch-second timestamp per perimeter channel; 0 means the channel
	// has not triggered since it was last cleared.
	ReadTamperLog() ([]uint32, error)

	// ClearTamperLog erases all recorded perimeter timestamps and re-arms every channel.
	ClearTamperLog() error

	// SetChannelAction persists the breach action bitset for a perimeter channel.
	SetChannelAction(channel int, flags ActionFlags) error

	// SetTapSensitivity configures tap detection sensitivity for an axis as a percentage;
	// 0 disables detection on the axis, 100 is maximum sensitivity.
	SetTapSensitivity(axis Axis, pct float32) error

	// LEDOn, LEDOff and LEDFlash control the element's status LED. A numFlashes of zero flashes
	// indefinitely.
	LEDOn() error
	LEDOff() error
	LEDFlash(onMs, offMs, numFlashes uint32) error

	// SetI2CAddr moves the element to a new bus address (i2c models only). The element resets
	// itself after the change.
	SetI2CAddr(addr int) error

	// Events returns a read-only channel carrying tap and perimeter notifications.
	//
	// The element only notifies on perimeter channels whose action flags include ActionNotify.
	// Implementations must be thread safe and must close the channel from Close.
	Events() <-chan Event

	// Close releases the transport. Repeated calls must be idempotent; the behavior of all other
	// methods is undefined after Close.
	Close()
}
