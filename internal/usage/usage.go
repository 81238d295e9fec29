// Package usage measures the wall-clock time and peak memory of a run.
package usage

import (
	"math"
	"time"
)

// Timer measures elapsed wall-clock time from Start.
type Timer struct {
	start time.Time
	now   func() time.Time
}

// StartTimer returns a running timer.
func StartTimer() *Timer {
	t := &Timer{now: time.Now}
	t.Start()
	return t
}

// Start (re)starts the timer.
func (t *Timer) Start() {
	if t.now == nil {
		t.now = time.Now
	}
	t.start = t.now()
}

// Elapsed returns the time since Start.
func (t *Timer) Elapsed() time.Duration {
	if t.now == nil {
		t.now = time.Now
	}
	return t.now().Sub(t.start)
}

// Seconds returns the elapsed time in whole seconds.
func (t *Timer) Seconds() int {
	return int(t.Elapsed() / time.Second)
}

// PeakMemory returns the peak resident memory of the process in bytes.
func PeakMemory() uint64 {
	return peakRSS()
}

// Megabytes converts bytes to mebibytes rounded to the nearest integer.
func Megabytes(bytes uint64) int {
	return int(math.Round(float64(bytes) / (1024 * 1024)))
}
