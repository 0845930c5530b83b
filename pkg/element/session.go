// Package element is the public client API for a secure element: symmetric lock/unlock of
// payloads, ECDSA signing and verification, true random generation, and physical tamper
// detection. All cryptographic operations execute inside the element; this package orchestrates
// I/O shapes, key selection, and error classification around the hardware boundary.
package element

import (
	"errors"
	"sync"

	"github.com/silicontrust/element-command/internal/log"
	"github.com/silicontrust/element-command/pkg/connector"
	"github.com/silicontrust/element-command/pkg/protocol"
)

// KeyClass selects the one-way or shared symmetric key for lock and unlock operations.
type KeyClass = connector.KeyClass

const (
	KeyClassOneWay = connector.KeyClassOneWay
	KeyClassShared = connector.KeyClassShared
)

// ErrElementInUse indicates a Session is already open on the connector. Simultaneous access to
// the same physical device from two sessions is undefined at the hardware layer, so only one live
// Session per device is permitted.
var ErrElementInUse = errors.New("element already has an open session")

var (
	openLock     sync.Mutex
	openSessions = make(map[connector.Connector]*Session)
)

type eventLatch struct {
	pending bool
	signal  chan struct{} // closed when pending flips to true; replaced when consumed
}

// A Session is an open handle to one secure element. Sessions serialize all bus operations, so
// methods may be called from multiple goroutines, but a long-running call (such as an event wait)
// does not hold the bus.
type Session struct {
	conn connector.Connector

	// busMu serializes connector calls; the element bus is not re-entrant. The closed flag is
	// guarded by busMu so a call never races Close.
	busMu  sync.Mutex
	closed bool

	eventMu sync.Mutex
	latches map[connector.EventClass]*eventLatch

	closeNotify  chan struct{}
	listenerDone chan struct{}
}

// Open creates a Session on conn and starts draining its event notifications. At most one
// Session may be open per connector; a second Open fails with ErrElementInUse until the first
// Session is closed.
func Open(conn connector.Connector) (*Session, error) {
	if conn == nil {
		return nil, protocol.InvalidArgument("nil connector")
	}
	s := &Session{
		conn: conn,
		latches: map[connector.EventClass]*eventLatch{
			connector.EventTap:       {signal: make(chan struct{})},
			connector.EventPerimeter: {signal: make(chan struct{})},
		},
		closeNotify:  make(chan struct{}),
		listenerDone: make(chan struct{}),
	}

	openLock.Lock()
	if _, ok := openSessions[conn]; ok {
		openLock.Unlock()
		return nil, ErrElementInUse
	}
	openSessions[conn] = s
	openLock.Unlock()

	go s.listen()
	return s, nil
}

// Close releases the session and its connector. Blocked waits return ErrSessionClosed. Close is
// idempotent; all other methods fail with ErrSessionClosed afterwards.
func (s *Session) Close() error {
	s.busMu.Lock()
	if s.closed {
		s.busMu.Unlock()
		return nil
	}
	s.closed = true
	s.busMu.Unlock()

	close(s.closeNotify)
	s.conn.Close()
	<-s.listenerDone

	openLock.Lock()
	delete(openSessions, s.conn)
	openLock.Unlock()
	return nil
}

// listen drains the connector's notification channel into per-class latches. It exits when the
// connector closes the channel.
func (s *Session) listen() {
	defer close(s.listenerDone)
	for event := range s.conn.Events() {
		s.record(event)
	}
	log.Debug("element: event listener stopped")
}

// record latches an event. Waits are level-triggered: the latch stays set until a wait consumes
// it, and further events of the same class coalesce into the already-set latch.
func (s *Session) record(event connector.Event) {
	s.eventMu.Lock()
	defer s.eventMu.Unlock()
	latch, ok := s.latches[event.Class]
	if !ok {
		log.Warning("element: dropping event with unknown class %d", event.Class)
		return
	}
	if !latch.pending {
		latch.pending = true
		close(latch.signal)
	}
	log.Debug("element: event class=%d channel=%d ts=%d", event.Class, event.Channel, event.Timestamp)
}

// consume atomically takes a pending event of the given class, re-arming the latch signal.
func (s *Session) consume(class connector.EventClass) bool {
	s.eventMu.Lock()
	defer s.eventMu.Unlock()
	latch := s.latches[class]
	if !latch.pending {
		return false
	}
	latch.pending = false
	latch.signal = make(chan struct{})
	return true
}

// signalChannel returns the channel that is closed when an event of the given class is latched.
func (s *Session) signalChannel(class connector.EventClass) <-chan struct{} {
	s.eventMu.Lock()
	defer s.eventMu.Unlock()
	return s.latches[class].signal
}

// bus runs fn with exclusive access to the connector, classifying faults as DeviceError under the
// named operation. Auth failures and closed-session errors pass through unclassified so callers
// can map them to their own taxonomy.
func (s *Session) bus(op string, fn func(connector.Connector) error) error {
	s.busMu.Lock()
	defer s.busMu.Unlock()
	if s.closed {
		return protocol.ErrSessionClosed
	}
	if err := fn(s.conn); err != nil {
		if errors.Is(err, connector.ErrAuthFail) {
			return err
		}
		return protocol.NewDeviceError(op, err)
	}
	return nil
}

// isClosed reports the session state without acquiring the bus for long.
func (s *Session) isClosed() bool {
	s.busMu.Lock()
	defer s.busMu.Unlock()
	return s.closed
}
