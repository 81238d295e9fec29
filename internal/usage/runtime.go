package usage

import "runtime"

// runtimeSys is the memory obtained from the OS by the Go runtime, used where
// the OS does not report peak RSS.
func runtimeSys() uint64 {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return ms.Sys
}
