// Package simulated provides a software secure element for development and testing. One Element
// holds the device state (symmetric keys, signing slots, tamper channels, clock); each Connect
// call returns a fresh connector over that state, so sessions can be closed and reopened against
// the same simulated hardware.
package simulated

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	secpecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/silicontrust/element-command/internal/sigencode"
	"github.com/silicontrust/element-command/pkg/connector"
	"github.com/silicontrust/element-command/pkg/protocol"
)

const (
	// NumChannels is the number of perimeter detect channels the simulated element exposes.
	NumChannels = 2

	// MaxSlot is the highest signing key slot the simulated element supports.
	MaxSlot = 15

	blobVersion = 0x01
	nonceSize   = 12
)

var errSelfDestructed = errors.New("element key store destroyed")

type tamperChannel struct {
	timestamp uint32
	actions   connector.ActionFlags
}

// Element is the simulated device. Its state outlives individual connections.
type Element struct {
	mu sync.Mutex

	oneWayKey [32]byte
	sharedKey [32]byte
	slots     map[int]*ecdsa.PrivateKey
	destroyed bool

	channels [NumChannels]tamperChannel
	accel    [3]protocol.AxisData
	clock    func() uint32

	conns map[*Conn]struct{}
}

// New returns a simulated element with freshly generated key material, all perimeter channels
// armed, and no breach actions configured.
func New() *Element {
	e := &Element{
		slots: make(map[int]*ecdsa.PrivateKey),
		conns: make(map[*Conn]struct{}),
		clock: func() uint32 { return uint32(time.Now().Unix()) },
	}
	if _, err := rand.Read(e.oneWayKey[:]); err != nil {
		panic(err)
	}
	if _, err := rand.Read(e.sharedKey[:]); err != nil {
		panic(err)
	}
	return e
}

// Connect returns a connector over the element. Each connector has an independent notification
// channel; closing one does not affect the element or other connectors.
func (e *Element) Connect() connector.Connector {
	c := &Conn{
		element: e,
		events:  make(chan connector.Event, connector.EventBufferSize),
	}
	e.mu.Lock()
	e.conns[c] = struct{}{}
	e.mu.Unlock()
	return c
}

// SetClock overrides the element's RTC, for tests that need deterministic timestamps.
func (e *Element) SetClock(clock func() uint32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clock = clock
}

// SharedKey exposes the shared key class material, standing in for the counterpart (such as a
// cloud service) that can derive it.
func (e *Element) SharedKey() []byte {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]byte(nil), e.sharedKey[:]...)
}

// SetSharedKey installs counterpart-provided shared key material, allowing two simulated
// elements to unlock each other's shared-class objects.
func (e *Element) SetSharedKey(key []byte) error {
	if len(key) != len(e.sharedKey) {
		return fmt.Errorf("shared key must be %d bytes", len(e.sharedKey))
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	copy(e.sharedKey[:], key)
	return nil
}

// TriggerTap simulates an accelerometer tap along the given axis and direction and notifies all
// connected listeners.
func (e *Element) TriggerTap(axis connector.Axis, direction protocol.TapDirection) {
	e.mu.Lock()
	for i := range e.accel {
		e.accel[i].TapDirection = protocol.TapNone
	}
	if axis >= connector.AxisX && axis <= connector.AxisZ {
		e.accel[axis].TapDirection = direction
		e.accel[axis].G = 1.5 * float64(direction)
	}
	ts := e.clock()
	e.mu.Unlock()
	e.notify(connector.Event{Class: connector.EventTap, Timestamp: ts})
}

// TriggerPerimeter simulates a physical breach on a channel. If the channel is armed, the
// timestamp is recorded and the configured actions run; while a channel holds an event, further
// triggers are ignored (first-event-wins) until ClearTamperLog re-arms it.
func (e *Element) TriggerPerimeter(channel int) {
	if channel < 0 || channel >= NumChannels {
		return
	}
	e.mu.Lock()
	ch := &e.channels[channel]
	if ch.timestamp != 0 {
		e.mu.Unlock()
		return
	}
	ts := e.clock()
	if ts == 0 {
		// 0 is reserved for "no event recorded".
		ts = 1
	}
	ch.timestamp = ts
	actions := ch.actions
	if actions&connector.ActionSelfDestruct != 0 {
		e.destroyed = true
	}
	e.mu.Unlock()
	if actions&connector.ActionNotify != 0 {
		e.notify(connector.Event{Class: connector.EventPerimeter, Channel: channel, Timestamp: ts})
	}
}

func (e *Element) notify(event connector.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for c := range e.conns {
		select {
		case c.events <- event:
		default:
			// Listener queue full; the latch semantics upstream make dropping safe.
		}
	}
}

func (e *Element) key(class connector.KeyClass) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.destroyed {
		return nil, errSelfDestructed
	}
	switch class {
	case connector.KeyClassOneWay:
		return e.oneWayKey[:], nil
	case connector.KeyClassShared:
		return e.sharedKey[:], nil
	}
	return nil, fmt.Errorf("unsupported key class %d", int(class))
}

func (e *Element) slotKey(slot int) (*ecdsa.PrivateKey, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.destroyed {
		return nil, errSelfDestructed
	}
	if slot < 0 || slot > MaxSlot {
		return nil, fmt.Errorf("slot %d outside supported range 0-%d", slot, MaxSlot)
	}
	key, ok := e.slots[slot]
	if !ok {
		var err error
		key, err = ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		if err != nil {
			return nil, err
		}
		e.slots[slot] = key
	}
	return key, nil
}

// Conn is one connection to a simulated element.
type Conn struct {
	element *Element

	closeMu sync.Mutex
	closed  bool
	events  chan connector.Event
}

var _ connector.Connector = (*Conn)(nil)

func (c *Conn) Random(n int) ([]byte, error) {
	data := make([]byte, n)
	if _, err := rand.Read(data); err != nil {
		return nil, err
	}
	return data, nil
}

func (c *Conn) EncryptAuth(plaintext []byte, class connector.KeyClass) ([]byte, error) {
	key, err := c.element.key(class)
	if err != nil {
		return nil, err
	}
	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	blob := make([]byte, 0, 1+nonceSize+len(plaintext)+aead.Overhead())
	blob = append(blob, blobVersion)
	blob = append(blob, nonce...)
	return aead.Seal(blob, nonce, plaintext, []byte{blobVersion}), nil
}

func (c *Conn) DecryptVerify(blob []byte, class connector.KeyClass) ([]byte, error) {
	key, err := c.element.key(class)
	if err != nil {
		return nil, err
	}
	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}
	// Any structural defect is indistinguishable from tampering from outside the firmware.
	if len(blob) < 1+nonceSize+aead.Overhead() || blob[0] != blobVersion {
		return nil, connector.ErrAuthFail
	}
	nonce := blob[1 : 1+nonceSize]
	plaintext, err := aead.Open(nil, nonce, blob[1+nonceSize:], []byte{blobVersion})
	if err != nil {
		return nil, connector.ErrAuthFail
	}
	return plaintext, nil
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func (c *Conn) Sign(digest []byte, slot int) ([]byte, error) {
	key, err := c.element.slotKey(slot)
	if err != nil {
		return nil, err
	}
	r, s, err := ecdsa.Sign(rand.Reader, key, digest)
	if err != nil {
		return nil, err
	}
	return sigencode.EncodeRaw(r, s, protocol.CurveP256.CoordinateSize())
}

func (c *Conn) Verify(digest []byte, slot int, sig []byte) (bool, error) {
	key, err := c.element.slotKey(slot)
	if err != nil {
		return false, err
	}
	r, s, err := sigencode.ParseRaw(sig, protocol.CurveP256.CoordinateSize())
	if err != nil {
		return false, nil
	}
	return ecdsa.Verify(&key.PublicKey, digest, r, s), nil
}

func (c *Conn) VerifyForeign(digest, pubkey []byte, curve protocol.Curve, sig []byte, encoding protocol.SignatureEncoding) (bool, error) {
	r, s, err := parseSignature(sig, curve, encoding)
	if err != nil {
		return false, err
	}
	switch curve {
	case protocol.CurveP256:
		// Validate the point before verifying; off-curve points are a caller fault.
		if _, err := ecdh.P256().NewPublicKey(pubkey); err != nil {
			return false, fmt.Errorf("invalid P-256 public key: %w", err)
		}
		coordSize := curve.CoordinateSize()
		pub := ecdsa.PublicKey{
			Curve: elliptic.P256(),
			X:     new(big.Int).SetBytes(pubkey[1 : 1+coordSize]),
			Y:     new(big.Int).SetBytes(pubkey[1+coordSize:]),
		}
		return ecdsa.Verify(&pub, digest, r, s), nil
	case protocol.CurveSecp256k1:
		pub, err := secp256k1.ParsePubKey(pubkey)
		if err != nil {
			return false, fmt.Errorf("invalid secp256k1 public key: %w", err)
		}
		var rs, ss secp256k1.ModNScalar
		if overflow := rs.SetByteSlice(r.Bytes()); overflow {
			return false, nil
		}
		if overflow := ss.SetByteSlice(s.Bytes()); overflow {
			return false, nil
		}
		return secpecdsa.NewSignature(&rs, &ss).Verify(digest, pub), nil
	}
	return false, fmt.Errorf("unsupported curve %d", int(curve))
}

func parseSignature(sig []byte, curve protocol.Curve, encoding protocol.SignatureEncoding) (*big.Int, *big.Int, error) {
	switch encoding {
	case protocol.EncodingRaw:
		return sigencode.ParseRaw(sig, curve.CoordinateSize())
	case protocol.EncodingDER:
		return sigencode.ParseDER(sig)
	}
	return nil, nil, fmt.Errorf("unsupported signature encoding %d", int(encoding))
}

func (c *Conn) ExportPublicKey(slot int) ([]byte, error) {
	key, err := c.element.slotKey(slot)
	if err != nil {
		return nil, err
	}
	coordSize := protocol.CurveP256.CoordinateSize()
	point := make([]byte, 1+2*coordSize)
	point[0] = 0x04
	key.PublicKey.X.FillBytes(point[1 : 1+coordSize])
	key.PublicKey.Y.FillBytes(point[1+coordSize:])
	return point, nil
}

func (c *Conn) GetTime(precise bool) (uint32, error) {
	// The simulated clock has no sub-second phase, so precise reads do not block.
	c.element.mu.Lock()
	defer c.element.mu.Unlock()
	return c.element.clock(), nil
}

func (c *Conn) ReadAccelerometer() ([3]protocol.AxisData, error) {
	c.element.mu.Lock()
	defer c.element.mu.Unlock()
	return c.element.accel, nil
}

func (c *Conn) ReadTamperLog() ([]uint32, error) {
	c.element.mu.Lock()
	defer c.element.mu.Unlock()
	timestamps := make([]uint32, NumChannels)
	for i := range c.element.channels {
		timestamps[i] = c.element.channels[i].timestamp
	}
	return timestamps, nil
}

func (c *Conn) ClearTamperLog() error {
	c.element.mu.Lock()
	defer c.element.mu.Unlock()
	for i := range c.element.channels {
		c.element.channels[i].timestamp = 0
	}
	return nil
}

func (c *Conn) SetChannelAction(channel int, flags connector.ActionFlags) error {
	if channel < 0 || channel >= NumChannels {
		return fmt.Errorf("channel %d outside supported range 0-%d", channel, NumChannels-1)
	}
	c.element.mu.Lock()
	defer c.element.mu.Unlock()
	c.element.channels[channel].actions = flags
	return nil
}

func (c *Conn) SetTapSensitivity(axis connector.Axis, pct float32) error {
	if axis < connector.AxisX || axis > connector.AxisAll {
		return fmt.Errorf("unknown axis %d", int(axis))
	}
	return nil
}

func (c *Conn) LEDOn() error { return nil }

func (c *Conn) LEDOff() error { return nil }

func (c *Conn) LEDFlash(onMs, offMs, numFlashes uint32) error { return nil }

func (c *Conn) SetI2CAddr(addr int) error { return nil }

func (c *Conn) Events() <-chan connector.Event {
	return c.events
}

func (c *Conn) Close() {
	c.closeMu.Lock()
	defer c.closeMu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.element.mu.Lock()
	delete(c.element.conns, c)
	c.element.mu.Unlock()
	close(c.events)
}
