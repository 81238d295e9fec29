package usage

import (
	"testing"
	"time"
)

func TestMegabytes(t *testing.T) {
	tests := []struct {
		name  string
		bytes uint64
		want  int
	}{
		{"zero", 0, 0},
		{"below half", 512*1024 - 1, 0},
		{"exactly half rounds up", 512 * 1024, 1},
		{"one", 1024 * 1024, 1},
		{"rounds down", 10*1024*1024 + 400*1024, 10},
		{"rounds up", 10*1024*1024 + 600*1024, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Megabytes(tt.bytes); got != tt.want {
				t.Errorf("Megabytes(%d) = %d, want %d", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestTimer(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	timer := &Timer{now: func() time.Time { return now }}
	timer.Start()

	now = now.Add(3*time.Second + 900*time.Millisecond)
	if got := timer.Elapsed(); got != 3900*time.Millisecond {
		t.Errorf("Elapsed() = %v", got)
	}
	if got := timer.Seconds(); got != 3 {
		t.Errorf("Seconds() = %d, want 3", got)
	}
}

func TestStartTimer(t *testing.T) {
	timer := StartTimer()
	if timer.Elapsed() < 0 {
		t.Error("Elapsed() < 0")
	}
	var zero Timer
	zero.Start()
	if zero.Elapsed() < 0 {
		t.Error("zero Timer Elapsed() < 0")
	}
}

func TestPeakMemory(t *testing.T) {
	if PeakMemory() == 0 {
		t.Error("PeakMemory() = 0")
	}
}
