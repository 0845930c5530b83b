package element

import (
	"time"

	"github.com/silicontrust/element-command/pkg/connector"
	"github.com/silicontrust/element-command/pkg/protocol"
)

// ActionFlags is the per-channel perimeter breach action bitset.
type ActionFlags = connector.ActionFlags

// Perimeter breach action flags, persisted per channel inside the element.
const (
	ActionNotify       = connector.ActionNotify
	ActionSelfDestruct = connector.ActionSelfDestruct
)

// waitEvent blocks until an event of the given class is latched or the timeout elapses.
// A zero timeout polls the latch and returns immediately. Waits are level-triggered: an
// unconsumed event recorded before the call satisfies the wait. There is no cancellation signal
// besides the timeout; callers wanting early cancellation pass a short timeout and re-issue.
func (s *Session) waitEvent(class connector.EventClass, timeout time.Duration) (bool, error) {
	if timeout < 0 {
		return false, protocol.InvalidArgument("negative timeout")
	}
	if s.isClosed() {
		return false, protocol.ErrSessionClosed
	}
	if s.consume(class) {
		return true, nil
	}
	if timeout == 0 {
		return false, nil
	}
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	for {
		// Fetching the signal channel after the failed consume is safe: if an event lands in
		// between, the channel we fetch is already closed and the select wakes immediately.
		signal := s.signalChannel(class)
		select {
		case <-signal:
			if s.consume(class) {
				return true, nil
			}
			// Another waiter took the event; keep waiting out the timeout.
		case <-deadline.C:
			return false, nil
		case <-s.closeNotify:
			return false, protocol.ErrSessionClosed
		}
	}
}

// WaitForTap blocks until the accelerometer detects a tap or the timeout elapses. The boolean
// reports whether a tap occurred; elapsing is an ordinary outcome, not an error. A zero timeout
// polls and returns immediately.
func (s *Session) WaitForTap(timeout time.Duration) (bool, error) {
	return s.waitEvent(connector.EventTap, timeout)
}

// WaitForPerimeterEvent blocks until a perimeter breach notification arrives or the timeout
// elapses, with the same contract as WaitForTap. The element only notifies on channels whose
// action flags include ActionNotify; see SetPerimeterEventAction.
func (s *Session) WaitForPerimeterEvent(timeout time.Duration) (bool, error) {
	return s.waitEvent(connector.EventPerimeter, timeout)
}

// AccelerometerData returns the most recent x, y and z axis samples, each carrying a g-force
// reading and the tap direction that triggered the last tap event, if any. It may be called
// concurrently with a pending WaitForTap.
func (s *Session) AccelerometerData() (x, y, z protocol.AxisData, err error) {
	var axes [3]protocol.AxisData
	err = s.bus("read accelerometer", func(c connector.Connector) error {
		var busErr error
		axes, busErr = c.ReadAccelerometer()
		return busErr
	})
	if err != nil {
		return protocol.AxisData{}, protocol.AxisData{}, protocol.AxisData{}, err
	}
	return axes[0], axes[1], axes[2], nil
}

// PerimeterDetectInfo returns one epoch-second timestamp per perimeter channel. A timestamp of 0
// means the channel has not triggered since it was last cleared. A triggered channel holds the
// timestamp of its first breach until ClearPerimeterEvents re-arms it, preserving forensic
// evidence of the first event.
func (s *Session) PerimeterDetectInfo() ([]uint32, error) {
	var timestamps []uint32
	err := s.bus("read tamper log", func(c connector.Connector) error {
		var busErr error
		timestamps, busErr = c.ReadTamperLog()
		return busErr
	})
	if err != nil {
		return nil, err
	}
	return timestamps, nil
}

// ClearPerimeterEvents erases all recorded perimeter timestamps and re-arms every channel. Until
// called, a triggered channel ignores further physical triggers (first-event-wins).
func (s *Session) ClearPerimeterEvents() error {
	return s.bus("clear tamper log", func(c connector.Connector) error {
		return c.ClearTamperLog()
	})
}

// SetPerimeterEventAction persists the breach action bitset (ActionNotify, ActionSelfDestruct)
// for a perimeter channel. This is configuration, not a per-wait parameter: it is stored inside
// the element and takes effect for subsequent events only.
func (s *Session) SetPerimeterEventAction(channel int, flags ActionFlags) error {
	if channel < 0 {
		return protocol.InvalidArgument("perimeter channel %d is negative", channel)
	}
	if flags&^(ActionNotify|ActionSelfDestruct) != 0 {
		return protocol.InvalidArgument("unknown action flags %#x", uint32(flags))
	}
	return s.bus("set channel action", func(c connector.Connector) error {
		return c.SetChannelAction(channel, flags)
	})
}

// SetTapSensitivity configures tap detection sensitivity for an axis. A percentage of 0 shuts
// detection down along the axis; 100 is maximum sensitivity.
func (s *Session) SetTapSensitivity(axis connector.Axis, pct float32) error {
	if pct < 0 || pct > 100 {
		return protocol.InvalidArgument("sensitivity %.1f%% outside [0, 100]", pct)
	}
	return s.bus("set tap sensitivity", func(c connector.Connector) error {
		return c.SetTapSensitivity(axis, pct)
	})
}
