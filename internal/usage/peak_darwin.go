package usage

import "syscall"

func peakRSS() uint64 {
	var ru syscall.Rusage
	if err := syscall.Getrusage(syscall.RUSAGE_SELF, &ru); err != nil {
		return runtimeSys()
	}
	// Darwin reports bytes.
	return uint64(ru.Maxrss)
}
