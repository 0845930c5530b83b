package element

import (
	"testing"

	"github.com/silicontrust/element-command/pkg/protocol"
)

func TestGetTime(t *testing.T) {
	device, session := newTestSession(t)
	device.SetClock(func() uint32 { return 1700000000 })
	for _, precise := range []bool{false, true} {
		epoch, err := session.GetTime(precise)
		if err != nil {
			t.Fatalf("GetTime(%t): %s", precise, err)
		}
		if epoch != 1700000000 {
			t.Errorf("GetTime(%t) = %d, want 1700000000", precise, epoch)
		}
	}
}

func TestSetI2CAddrValidation(t *testing.T) {
	_, session := newTestSession(t)
	for _, addr := range []int{0x30, 0x37, 0x60, 0x67} {
		if err := session.SetI2CAddr(addr); err != nil {
			t.Errorf("SetI2CAddr(%#x): %s", addr, err)
		}
	}
	for _, addr := range []int{-1, 0x00, 0x2f, 0x38, 0x5f, 0x68, 0x100} {
		if err := session.SetI2CAddr(addr); !protocol.IsInvalidArgument(err) {
			t.Errorf("SetI2CAddr(%#x) returned %v, want invalid argument", addr, err)
		}
	}
}

func TestLEDControls(t *testing.T) {
	_, session := newTestSession(t)
	if err := session.LEDOn(); err != nil {
		t.Errorf("LEDOn: %s", err)
	}
	if err := session.LEDFlash(100, 100, 3); err != nil {
		t.Errorf("LEDFlash: %s", err)
	}
	if err := session.LEDOff(); err != nil {
		t.Errorf("LEDOff: %s", err)
	}
}
