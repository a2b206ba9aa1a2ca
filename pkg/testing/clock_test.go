package testing

import (
	"testing"
	"time"

	"github.com/go-drift/webanim/pkg/timing"
)

func TestFakeClock_Advance(t *testing.T) {
	clk := NewFakeClock()
	start := clk.Now()

	clk.Advance(100 * time.Millisecond)
	elapsed := clk.Now().Sub(start)

	if elapsed != 100*time.Millisecond {
		t.Errorf("expected 100ms elapsed, got %v", elapsed)
	}
}

func TestFakeClock_AdvanceIgnoresNegative(t *testing.T) {
	clk := NewFakeClock()
	start := clk.Now()
	clk.Advance(-time.Second)
	if !clk.Now().Equal(start) {
		t.Errorf("negative Advance moved the clock to %v", clk.Now())
	}
}

func TestFakeClock_AdvanceMillis(t *testing.T) {
	clk := NewFakeClock()
	start := clk.Now()
	clk.AdvanceMillis(12.5)
	if got := clk.Now().Sub(start); got != 12500*time.Microsecond {
		t.Errorf("expected 12.5ms elapsed, got %v", got)
	}
}

func TestFakeClock_Set(t *testing.T) {
	clk := NewFakeClock()
	target := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	clk.Set(target)
	if !clk.Now().Equal(target) {
		t.Errorf("expected %v, got %v", target, clk.Now())
	}
}

func TestTester_InstallsClock(t *testing.T) {
	tester := NewTesterWithT(t)
	clk := tester.Clock()
	if clk == nil {
		t.Fatal("expected non-nil clock")
	}

	start := timing.Now()
	clk.Advance(500 * time.Millisecond)
	if timing.Now().Sub(start) != 500*time.Millisecond {
		t.Error("timing clock does not follow the fake clock")
	}
}

func TestTester_CleanupRestoresClock(t *testing.T) {
	tester := NewTester()
	fake := tester.Clock()
	tester.Cleanup()
	if prev := timing.SetClock(fake); prev == fake {
		t.Error("Cleanup should restore the previous clock")
	} else {
		timing.SetClock(prev)
	}
}
