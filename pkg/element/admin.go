package element

import (
	"github.com/silicontrust/element-command/pkg/connector"
	"github.com/silicontrust/element-command/pkg/protocol"
)

// Administrative pass-throughs. These are one-shot calls with no orchestration of their own; they
// exist so applications do not need to reach below the Session layer.

// LEDOn turns the element's status LED on.
func (s *Session) LEDOn() error {
	return s.bus("led on", func(c connector.Connector) error { return c.LEDOn() })
}

// LEDOff turns the element's status LED off.
func (s *Session) LEDOff() error {
	return s.bus("led off", func(c connector.Connector) error { return c.LEDOff() })
}

// LEDFlash flashes the LED with the given on/off cycle times. A numFlashes of zero flashes
// indefinitely.
func (s *Session) LEDFlash(onMs, offMs, numFlashes uint32) error {
	return s.bus("led flash", func(c connector.Connector) error {
		return c.LEDFlash(onMs, offMs, numFlashes)
	})
}

// GetTime reads the element's real-time clock as epoch seconds. If precise is true, the call
// returns after the next second boundary falls, blocking up to one second.
func (s *Session) GetTime(precise bool) (uint32, error) {
	var t uint32
	err := s.bus("get time", func(c connector.Connector) error {
		var busErr error
		t, busErr = c.GetTime(precise)
		return busErr
	})
	if err != nil {
		return 0, err
	}
	return t, nil
}

// SetI2CAddr moves the element to a new i2c bus address (i2c models only). Valid addresses are
// 0x30–0x37 and 0x60–0x67; the element resets itself after a successful change.
func (s *Session) SetI2CAddr(addr int) error {
	if !(addr >= 0x30 && addr <= 0x37) && !(addr >= 0x60 && addr <= 0x67) {
		return protocol.InvalidArgument("i2c address %#x outside 0x30-0x37 and 0x60-0x67", addr)
	}
	return s.bus("set i2c address", func(c connector.Connector) error {
		return c.SetI2CAddr(addr)
	})
}
