package element

import (
	"errors"
	"testing"
	"time"

	"github.com/silicontrust/element-command/pkg/connector"
	"github.com/silicontrust/element-command/pkg/protocol"
)

func TestWaitForTapTimesOut(t *testing.T) {
	_, session := newTestSession(t)
	start := time.Now()
	tapped, err := session.WaitForTap(50 * time.Millisecond)
	if err != nil {
		t.Fatalf("WaitForTap: %s", err)
	}
	if tapped {
		t.Fatal("WaitForTap reported a tap that never happened")
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("WaitForTap returned after %s, before the timeout", elapsed)
	}
}

func TestWaitForTapZeroTimeoutPolls(t *testing.T) {
	_, session := newTestSession(t)
	start := time.Now()
	tapped, err := session.WaitForTap(0)
	if err != nil {
		t.Fatalf("WaitForTap: %s", err)
	}
	if tapped {
		t.Fatal("poll reported a tap that never happened")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("zero-timeout wait blocked for %s", elapsed)
	}
}

func TestWaitForTapNegativeTimeout(t *testing.T) {
	_, session := newTestSession(t)
	if _, err := session.WaitForTap(-time.Second); !protocol.IsInvalidArgument(err) {
		t.Errorf("negative timeout returned %v, want invalid argument", err)
	}
}

func TestWaitForTapSeesEvent(t *testing.T) {
	device, session := newTestSession(t)
	go func() {
		time.Sleep(20 * time.Millisecond)
		device.TriggerTap(connector.AxisX, protocol.TapPositive)
	}()
	tapped, err := session.WaitForTap(5 * time.Second)
	if err != nil {
		t.Fatalf("WaitForTap: %s", err)
	}
	if !tapped {
		t.Fatal("WaitForTap timed out despite a tap")
	}

	x, _, _, err := session.AccelerometerData()
	if err != nil {
		t.Fatalf("AccelerometerData: %s", err)
	}
	if x.TapDirection != protocol.TapPositive {
		t.Errorf("x axis tap direction = %d, want positive", x.TapDirection)
	}
}

// An event recorded before the wait starts satisfies the wait.
func TestWaitForTapLevelTriggered(t *testing.T) {
	device, session := newTestSession(t)
	device.TriggerTap(connector.AxisZ, protocol.TapNegative)

	tapped, err := session.WaitForTap(5 * time.Second)
	if err != nil {
		t.Fatalf("WaitForTap: %s", err)
	}
	if !tapped {
		t.Fatal("wait did not observe the earlier tap")
	}

	// The wait consumed the event; a poll now finds nothing.
	tapped, err = session.WaitForTap(0)
	if err != nil {
		t.Fatalf("WaitForTap: %s", err)
	}
	if tapped {
		t.Error("consumed tap event observed twice")
	}
}

func TestPerimeterFirstEventWins(t *testing.T) {
	device, session := newTestSession(t)
	var now uint32 = 1000
	device.SetClock(func() uint32 { now++; return now })

	if err := session.SetPerimeterEventAction(0, ActionNotify); err != nil {
		t.Fatalf("SetPerimeterEventAction: %s", err)
	}

	device.TriggerPerimeter(0)
	breached, err := session.WaitForPerimeterEvent(5 * time.Second)
	if err != nil {
		t.Fatalf("WaitForPerimeterEvent: %s", err)
	}
	if !breached {
		t.Fatal("WaitForPerimeterEvent timed out despite a breach")
	}

	info, err := session.PerimeterDetectInfo()
	if err != nil {
		t.Fatalf("PerimeterDetectInfo: %s", err)
	}
	if len(info) != 2 {
		t.Fatalf("PerimeterDetectInfo returned %d channels, want 2", len(info))
	}
	if info[0] == 0 {
		t.Fatal("breached channel reports no timestamp")
	}
	if info[1] != 0 {
		t.Errorf("untouched channel reports timestamp %d", info[1])
	}
	first := info[0]

	// Further triggers on a latched channel are ignored until it is cleared.
	device.TriggerPerimeter(0)
	info, err = session.PerimeterDetectInfo()
	if err != nil {
		t.Fatalf("PerimeterDetectInfo: %s", err)
	}
	if info[0] != first {
		t.Errorf("timestamp moved from %d to %d on a latched channel", first, info[0])
	}

	if err := session.ClearPerimeterEvents(); err != nil {
		t.Fatalf("ClearPerimeterEvents: %s", err)
	}
	info, err = session.PerimeterDetectInfo()
	if err != nil {
		t.Fatalf("PerimeterDetectInfo: %s", err)
	}
	if info[0] != 0 || info[1] != 0 {
		t.Fatalf("timestamps not cleared: %v", info)
	}

	// Cleared channels re-arm.
	device.TriggerPerimeter(0)
	info, err = session.PerimeterDetectInfo()
	if err != nil {
		t.Fatalf("PerimeterDetectInfo: %s", err)
	}
	if info[0] <= first {
		t.Errorf("re-armed channel recorded timestamp %d, want later than %d", info[0], first)
	}
}

// Channels without ActionNotify record silently; no wait is woken.
func TestPerimeterSilentChannel(t *testing.T) {
	device, session := newTestSession(t)
	device.TriggerPerimeter(1)

	breached, err := session.WaitForPerimeterEvent(100 * time.Millisecond)
	if err != nil {
		t.Fatalf("WaitForPerimeterEvent: %s", err)
	}
	if breached {
		t.Error("wait woken by a channel with no notify action")
	}

	info, err := session.PerimeterDetectInfo()
	if err != nil {
		t.Fatalf("PerimeterDetectInfo: %s", err)
	}
	if info[1] == 0 {
		t.Error("silent channel did not record its timestamp")
	}
}

func TestWaitAfterClose(t *testing.T) {
	_, session := newTestSession(t)
	session.Close()
	if _, err := session.WaitForTap(time.Second); !errors.Is(err, protocol.ErrSessionClosed) {
		t.Errorf("WaitForTap after Close returned %v, want ErrSessionClosed", err)
	}
}

func TestCloseUnblocksWait(t *testing.T) {
	_, session := newTestSession(t)
	go func() {
		time.Sleep(20 * time.Millisecond)
		session.Close()
	}()
	start := time.Now()
	_, err := session.WaitForPerimeterEvent(30 * time.Second)
	if !errors.Is(err, protocol.ErrSessionClosed) {
		t.Fatalf("interrupted wait returned %v, want ErrSessionClosed", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("wait outlived Close by %s", elapsed)
	}
}

func TestSetPerimeterEventActionValidation(t *testing.T) {
	_, session := newMockSession(t)
	if err := session.SetPerimeterEventAction(-1, ActionNotify); !protocol.IsInvalidArgument(err) {
		t.Errorf("negative channel returned %v, want invalid argument", err)
	}
	if err := session.SetPerimeterEventAction(0, connector.ActionFlags(1<<7)); !protocol.IsInvalidArgument(err) {
		t.Errorf("unknown flag returned %v, want invalid argument", err)
	}
}

func TestSetTapSensitivityValidation(t *testing.T) {
	_, session := newTestSession(t)
	if err := session.SetTapSensitivity(connector.AxisAll, 50); err != nil {
		t.Fatalf("SetTapSensitivity: %s", err)
	}
	if err := session.SetTapSensitivity(connector.AxisX, 150); !protocol.IsInvalidArgument(err) {
		t.Errorf("sensitivity above 100%% returned %v, want invalid argument", err)
	}
}
